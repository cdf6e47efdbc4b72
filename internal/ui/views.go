package ui

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/forkify/internal/controller"
	"github.com/five82/forkify/internal/state"
)

// Sender delivers messages to the running program; *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Default view messages, shown when a view is asked to render an empty message.
const (
	welcomeMessage       = "Start by searching for a recipe or an ingredient. Have fun!"
	recipeErrorMessage   = "We could not find that recipe. Please try another one!"
	resultsErrorMessage  = "No recipes found for your query! Please try again!"
	uploadSuccessMessage = "Recipe was successfully uploaded :)"
	uploadErrorMessage   = "Upload failed. Please check the form and try again."
	noBookmarksMessage   = "No bookmarks yet. Find a nice recipe and bookmark it :)"
)

// Messages sent from the controller side into the program.
type (
	recipeMsg struct {
		recipe  state.Recipe
		partial bool
	}
	recipeSpinnerMsg struct{}
	recipeErrorMsg   struct{ text string }
	welcomeMsg       struct{}

	resultsMsg struct {
		items   []state.SearchResultItem
		partial bool
	}
	resultsSpinnerMsg struct{}
	resultsErrorMsg   struct{ text string }

	paginationMsg struct{ search state.SearchState }

	bookmarksMsg struct {
		items   []state.Recipe
		partial bool
	}

	uploadSpinnerMsg struct{}
	uploadMessageMsg struct{ text string }
	uploadErrorMsg   struct{ text string }
	uploadCloseMsg   struct{}

	// resetMsg clears every panel, like a page reload wiping the DOM.
	resetMsg struct{}
)

// Bridge implements the controller's views by sending messages to the
// program. The search query is handed over through the bridge because the
// input lives inside the program's update loop.
type Bridge struct {
	send Sender

	mu    sync.Mutex
	query string
}

// NewBridge returns a Bridge delivering to send.
func NewBridge(send Sender) *Bridge {
	return &Bridge{send: send}
}

// Views returns every controller view backed by this bridge.
func (b *Bridge) Views() controller.Views {
	return controller.Views{
		Recipe:     recipeView{b},
		Results:    resultsView{b},
		Pagination: paginationView{b},
		Bookmarks:  bookmarksView{b},
		Search:     searchView{b},
		Upload:     uploadView{b},
	}
}

// Reset clears every panel.
func (b *Bridge) Reset() {
	b.send.Send(resetMsg{})
}

func (b *Bridge) submitQuery(q string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = strings.TrimSpace(q)
}

func (b *Bridge) takeQuery() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.query
	b.query = ""
	return q
}

type recipeView struct{ b *Bridge }

func (v recipeView) Render(r state.Recipe)  { v.b.send.Send(recipeMsg{recipe: r}) }
func (v recipeView) Update(r state.Recipe)  { v.b.send.Send(recipeMsg{recipe: r, partial: true}) }
func (v recipeView) RenderSpinner()         { v.b.send.Send(recipeSpinnerMsg{}) }
func (v recipeView) RenderError(msg string) { v.b.send.Send(recipeErrorMsg{text: orDefault(msg, recipeErrorMessage)}) }
func (v recipeView) RenderWelcome()         { v.b.send.Send(welcomeMsg{}) }

type resultsView struct{ b *Bridge }

func (v resultsView) Render(items []state.SearchResultItem) {
	v.b.send.Send(resultsMsg{items: items})
}

func (v resultsView) Update(items []state.SearchResultItem) {
	v.b.send.Send(resultsMsg{items: items, partial: true})
}

func (v resultsView) RenderSpinner() { v.b.send.Send(resultsSpinnerMsg{}) }

func (v resultsView) RenderError(msg string) {
	v.b.send.Send(resultsErrorMsg{text: orDefault(msg, resultsErrorMessage)})
}

type paginationView struct{ b *Bridge }

func (v paginationView) Render(s state.SearchState) { v.b.send.Send(paginationMsg{search: s}) }

type bookmarksView struct{ b *Bridge }

func (v bookmarksView) Render(items []state.Recipe) { v.b.send.Send(bookmarksMsg{items: items}) }
func (v bookmarksView) Update(items []state.Recipe) {
	v.b.send.Send(bookmarksMsg{items: items, partial: true})
}

type searchView struct{ b *Bridge }

func (v searchView) Query() string { return v.b.takeQuery() }

type uploadView struct{ b *Bridge }

func (v uploadView) RenderSpinner() { v.b.send.Send(uploadSpinnerMsg{}) }
func (v uploadView) RenderMessage(msg string) {
	v.b.send.Send(uploadMessageMsg{text: orDefault(msg, uploadSuccessMessage)})
}
func (v uploadView) RenderError(msg string) {
	v.b.send.Send(uploadErrorMsg{text: orDefault(msg, uploadErrorMessage)})
}
func (v uploadView) Close() { v.b.send.Send(uploadCloseMsg{}) }

func orDefault(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
