package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/prefs"
	"github.com/five82/forkify/internal/state"
)

// Publisher delivers user events; *event.Bus implements it.
type Publisher interface {
	Publish(ctx context.Context, ev event.Event) bool
}

// Navigator is the current location; *nav.Location implements it.
type Navigator interface {
	Hash() string
	Navigate(ctx context.Context, id string)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Bus       Publisher
	Location  Navigator
	Bridge    *Bridge
	Prefs     *prefs.Store
	ThemeName string
	LogPath   string // shown in the session log overlay
	Logger    *zap.Logger
}

type focusPane int

const (
	paneResults focusPane = iota
	paneRecipe
	paneBookmarks
	paneCount
)

type panelState int

const (
	panelEmpty panelState = iota
	panelLoading
	panelError
	panelReady
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx    context.Context
	bus    Publisher
	loc    Navigator
	bridge *Bridge
	prefs  *prefs.Store
	log    *zap.Logger

	logPath string

	// UI state
	keys      keyMap
	theme     Theme
	width     int
	height    int
	ready     bool
	focus     focusPane
	searching bool
	showHelp  bool

	search  textinput.Model
	spinner spinner.Model
	help    help.Model

	// Recipe panel
	recipe         state.Recipe
	recipeState    panelState
	recipeText     string
	recipeViewport viewport.Model

	// Results panel
	results       []state.SearchResultItem
	resultsState  panelState
	resultsText   string
	resultsCursor int
	searchState   state.SearchState
	pager         paginator.Model

	// Bookmarks panel
	bookmarks       []state.Recipe
	bookmarksCursor int

	// Upload overlay
	showUpload bool
	upload     uploadForm

	// Session log overlay
	showLogs    bool
	logViewport viewport.Model
	logErr      error
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	theme := GetTheme(themeName)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search over 1,000,000 recipes..."
	search.CharLimit = 80
	search.Width = 40

	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.ArabicFormat = "Page %d of %d"

	return Model{
		ctx:     ctx,
		bus:     opts.Bus,
		loc:     opts.Location,
		bridge:  opts.Bridge,
		prefs:   opts.Prefs,
		log:     log.Named("ui"),
		logPath: opts.LogPath,
		keys:    DefaultKeyMap(),
		theme:   theme,
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		pager:   pager,

		logViewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.recipeViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case welcomeMsg:
		m.recipe = state.Recipe{}
		m.recipeState = panelEmpty
		m.recipeText = welcomeMessage
		m.refreshRecipe(true)
		return m, nil

	case recipeSpinnerMsg:
		m.recipeState = panelLoading
		return m, m.spinner.Tick

	case recipeErrorMsg:
		m.recipeState = panelError
		m.recipeText = msg.text
		m.refreshRecipe(true)
		return m, nil

	case recipeMsg:
		m.recipe = msg.recipe
		m.recipeState = panelReady
		m.refreshRecipe(!msg.partial)
		return m, nil

	case resultsSpinnerMsg:
		m.resultsState = panelLoading
		return m, m.spinner.Tick

	case resultsErrorMsg:
		m.resultsState = panelError
		m.resultsText = msg.text
		m.results = nil
		return m, nil

	case resultsMsg:
		m.applyResults(msg)
		return m, nil

	case paginationMsg:
		m.searchState = msg.search
		m.pager.PerPage = max(msg.search.ResultsPerPage, 1)
		m.pager.SetTotalPages(len(msg.search.Results))
		m.pager.Page = max(msg.search.Page-1, 0)
		return m, nil

	case bookmarksMsg:
		m.bookmarks = msg.items
		m.bookmarksCursor = clampCursor(m.bookmarksCursor, len(m.bookmarks))
		return m, nil

	case uploadSpinnerMsg:
		m.upload.status = uploadSending
		m.upload.message = ""
		return m, m.spinner.Tick

	case uploadMessageMsg:
		m.upload.status = uploadDone
		m.upload.message = msg.text
		return m, nil

	case uploadErrorMsg:
		m.upload.status = uploadFailed
		m.upload.message = msg.text
		return m, nil

	case uploadCloseMsg:
		m.showUpload = false
		m.upload = uploadForm{}
		return m, nil

	case logsMsg:
		m.applyLogs(msg)
		return m, nil

	case resetMsg:
		m.results = nil
		m.resultsState = panelEmpty
		m.resultsText = ""
		m.resultsCursor = 0
		m.searchState = state.SearchState{}
		m.pager.TotalPages = 0
		return m, nil
	}

	return m, nil
}

func (m *Model) applyResults(msg resultsMsg) {
	if msg.partial {
		// Update only refreshes what is on screen, e.g. the active marker.
		if len(msg.items) > 0 {
			m.results = msg.items
			m.resultsState = panelReady
		} else if m.resultsState == panelLoading {
			m.resultsState = panelEmpty
		}
		m.resultsCursor = clampCursor(m.resultsCursor, len(m.results))
		return
	}
	if len(msg.items) == 0 {
		m.results = nil
		m.resultsState = panelError
		m.resultsText = resultsErrorMessage
		return
	}
	m.results = msg.items
	m.resultsState = panelReady
	m.resultsCursor = 0
}

func (m Model) loading() bool {
	return m.recipeState == panelLoading ||
		m.resultsState == panelLoading ||
		(m.showUpload && m.upload.status == uploadSending)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showUpload {
		return m.renderUpload()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showUpload {
		return m.handleUploadKey(msg)
	}
	if m.showLogs {
		return m.handleLogsKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.refreshRecipe(false)
		return m, m.saveTheme(m.theme.Name)

	case key.Matches(msg, m.keys.FocusSearch):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Tab):
		m.focus = (m.focus + 1) % paneCount
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.focus = (m.focus + paneCount - 1) % paneCount
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		return m, m.loadLogs()

	case key.Matches(msg, m.keys.Upload):
		m.showUpload = true
		m.upload = newUploadForm(m.width)
		return m, m.upload.focusField(0)

	case key.Matches(msg, m.keys.ServingsUp):
		return m, m.changeServings(1)

	case key.Matches(msg, m.keys.ServingsDown):
		return m, m.changeServings(-1)

	case key.Matches(msg, m.keys.Bookmark):
		if m.recipeState != panelReady {
			return m, nil
		}
		return m, m.publish(event.Event{Kind: event.BookmarkToggle})
	}

	switch m.focus {
	case paneResults:
		return m.handleResultsKey(msg)
	case paneBookmarks:
		return m.handleBookmarksKey(msg)
	case paneRecipe:
		var cmd tea.Cmd
		m.recipeViewport, cmd = m.recipeViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		query := strings.TrimSpace(m.search.Value())
		m.search.SetValue("")
		m.search.Blur()
		m.searching = false
		if query == "" {
			return m, nil
		}
		m.focus = paneResults
		if m.bridge != nil {
			m.bridge.submitQuery(query)
		}
		return m, m.publish(event.Event{Kind: event.Search})

	case key.Matches(msg, m.keys.Escape):
		m.search.Blur()
		m.searching = false
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// changeServings asks for delta more servings; the count never drops below 1.
func (m Model) changeServings(delta int) tea.Cmd {
	if m.recipeState != panelReady {
		return nil
	}
	next := m.recipe.Servings + delta
	if next < 1 {
		return nil
	}
	return m.publish(event.Event{Kind: event.Servings, Servings: next})
}

func (m Model) publish(ev event.Event) tea.Cmd {
	if m.bus == nil {
		return nil
	}
	bus, ctx := m.bus, m.ctx
	return func() tea.Msg {
		bus.Publish(ctx, ev)
		return nil
	}
}

func (m Model) navigate(id string) tea.Cmd {
	if m.loc == nil || id == "" {
		return nil
	}
	loc, ctx := m.loc, m.ctx
	return func() tea.Msg {
		loc.Navigate(ctx, id)
		return nil
	}
}

func (m Model) saveTheme(name string) tea.Cmd {
	if m.prefs == nil {
		return nil
	}
	store, log := m.prefs, m.log
	return func() tea.Msg {
		if err := store.Update(func(p *prefs.Prefs) { p.Theme = name }); err != nil {
			log.Warn("save theme failed", zap.Error(err))
		}
		return nil
	}
}

func (m Model) activeID() string {
	if m.loc == nil {
		return ""
	}
	return m.loc.Hash()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	bodyHeight := max(m.height-2, 4)
	leftWidth := m.leftWidth()
	rightWidth := max(m.width-leftWidth, 10)
	resultsHeight := bodyHeight * 3 / 5
	bookmarksHeight := bodyHeight - resultsHeight

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderResults(leftWidth, resultsHeight),
		m.renderBookmarks(leftWidth, bookmarksHeight),
	)
	right := m.renderRecipe(rightWidth, bodyHeight)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) leftWidth() int {
	w := m.width * 2 / 5
	if w < 30 {
		w = min(30, m.width/2)
	}
	return max(w, 10)
}

func (m *Model) layout() {
	bodyHeight := max(m.height-2, 4)
	m.recipeViewport.Width = max(m.width-m.leftWidth()-4, 1)
	m.recipeViewport.Height = max(bodyHeight-2, 1)
	m.search.Width = max(m.width/3, 20)
	m.help.Width = m.width
	m.layoutLogs()
	m.refreshRecipe(false)
}

func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(cursor, 0), n-1)
}

// NewProgram builds the Bubble Tea program and the bridge that feeds it.
// The bridge blocks on Send until the program is running.
func NewProgram(opts Options) (*tea.Program, *Bridge) {
	bridge := &Bridge{}
	opts.Bridge = bridge
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.send = p
	return p, bridge
}
