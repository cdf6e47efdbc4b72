package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/forkify/internal/event"
	"github.com/five82/forkify/internal/forkify"
	"github.com/five82/forkify/internal/kv"
	"github.com/five82/forkify/internal/nav"
	"github.com/five82/forkify/internal/state"
)

type fakeAPI struct {
	mu      sync.Mutex
	recipes map[string]forkify.Recipe
	results []forkify.RecipeSummary
	err     error
	calls   int
}

func (f *fakeAPI) FetchRecipe(ctx context.Context, id string) (*forkify.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.recipes[id]
	if !ok {
		return nil, forkify.ErrNotFound
	}
	return &r, nil
}

func (f *fakeAPI) SearchRecipes(ctx context.Context, query string) ([]forkify.RecipeSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeAPI) CreateRecipe(ctx context.Context, recipe forkify.NewRecipe) (*forkify.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &forkify.Recipe{ID: "new1", Title: recipe.Title, Servings: forkify.Int(recipe.Servings), Key: "k"}, nil
}

// recorder implements every view and logs calls in order.
type recorder struct {
	mu    sync.Mutex
	calls []string
	query string
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.calls
	r.calls = nil
	return out
}

type recipeView struct{ *recorder }

func (v recipeView) Render(rc state.Recipe) {
	v.add("recipe.render %s servings=%d bookmarked=%v", rc.ID, rc.Servings, rc.Bookmarked)
}
func (v recipeView) Update(rc state.Recipe) {
	v.add("recipe.update %s servings=%d bookmarked=%v", rc.ID, rc.Servings, rc.Bookmarked)
}
func (v recipeView) RenderSpinner()         { v.add("recipe.spinner") }
func (v recipeView) RenderError(msg string) { v.add("recipe.error %q", msg) }
func (v recipeView) RenderWelcome()         { v.add("recipe.welcome") }

type resultsView struct{ *recorder }

func (v resultsView) Render(items []state.SearchResultItem) { v.add("results.render %d", len(items)) }
func (v resultsView) Update(items []state.SearchResultItem) { v.add("results.update %d", len(items)) }
func (v resultsView) RenderSpinner()                        { v.add("results.spinner") }
func (v resultsView) RenderError(msg string)                { v.add("results.error %q", msg) }

type paginationView struct{ *recorder }

func (v paginationView) Render(s state.SearchState) {
	v.add("pagination.render page=%d of=%d", s.Page, s.TotalPages())
}

type bookmarksView struct{ *recorder }

func (v bookmarksView) Render(b []state.Recipe) { v.add("bookmarks.render %d", len(b)) }
func (v bookmarksView) Update(b []state.Recipe) { v.add("bookmarks.update %d", len(b)) }

type searchView struct{ *recorder }

func (v searchView) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	q := v.query
	v.query = ""
	return q
}

type uploadView struct{ *recorder }

func (v uploadView) RenderSpinner()           { v.add("upload.spinner") }
func (v uploadView) RenderMessage(msg string) { v.add("upload.message %q", msg) }
func (v uploadView) RenderError(msg string)   { v.add("upload.error %q", msg) }
func (v uploadView) Close()                   { v.add("upload.close") }

type harness struct {
	api     *fakeAPI
	mem     *kv.MemStore
	store   *state.Store
	rec     *recorder
	bus     *event.Bus
	loc     *nav.Location
	ctrl    *Controller
	delays  []time.Duration
	pending []func()
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		api: &fakeAPI{recipes: map[string]forkify.Recipe{
			"r1": {ID: "r1", Title: "Soup", Servings: 2, Ingredients: []forkify.Ingredient{{Quantity: ptr(1), Unit: "l", Description: "water"}}},
		}},
		mem: kv.NewMemStore(),
		rec: &recorder{},
		bus: event.NewBus(),
	}
	h.store = state.NewStore(h.api, h.mem, state.Options{ResultsPerPage: 10})
	if err := h.store.Restore(); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	h.loc = nav.New(h.bus, "")
	views := Views{
		Recipe:     recipeView{h.rec},
		Results:    resultsView{h.rec},
		Pagination: paginationView{h.rec},
		Bookmarks:  bookmarksView{h.rec},
		Search:     searchView{h.rec},
		Upload:     uploadView{h.rec},
	}
	ctrl, err := New(h.store, views, h.loc, Options{
		After: func(d time.Duration, fn func()) {
			h.delays = append(h.delays, d)
			h.pending = append(h.pending, fn)
		},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	h.ctrl = ctrl
	if err := ctrl.Start(h.bus); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	return h
}

func (h *harness) publish(ev event.Event) {
	h.bus.Publish(context.Background(), ev)
}

func ptr(v float64) *float64 { return &v }

func summaries(n int) []forkify.RecipeSummary {
	out := make([]forkify.RecipeSummary, n)
	for i := range out {
		out[i] = forkify.RecipeSummary{ID: fmt.Sprintf("s%d", i), Title: "Pasta"}
	}
	return out
}

func assertCalls(t *testing.T, h *harness, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, h.rec.take()); diff != "" {
		t.Fatalf("view calls mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RequiresEveryView(t *testing.T) {
	store := state.NewStore(&fakeAPI{}, kv.NewMemStore(), state.Options{})
	rec := &recorder{}
	_, err := New(store, Views{Recipe: recipeView{rec}}, nav.New(event.NewBus(), ""), Options{})
	if err == nil || !strings.Contains(err.Error(), "results view") {
		t.Fatalf("New error = %v, want missing results view", err)
	}
}

func TestStart_RendersWelcomeAndRegistersOnce(t *testing.T) {
	h := newHarness(t)
	assertCalls(t, h, "recipe.welcome", "bookmarks.render 0")

	for _, kind := range []event.Kind{event.HashChange, event.Search, event.Paginate, event.Servings, event.BookmarkToggle, event.Upload, event.Reload} {
		if n := h.bus.Subscribers(kind); n != 1 {
			t.Fatalf("%s subscribers = %d, want 1", kind, n)
		}
	}
	if err := h.ctrl.Start(h.bus); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second Start error = %v, want ErrAlreadyStarted", err)
	}
	if n := h.bus.Subscribers(event.Search); n != 1 {
		t.Fatalf("search subscribers after second Start = %d, want 1", n)
	}
}

func TestControlRecipe_LoadsAndRenders(t *testing.T) {
	h := newHarness(t)
	h.rec.take()

	h.loc.Navigate(context.Background(), "r1")
	assertCalls(t, h,
		"recipe.spinner",
		"results.update 0",
		"bookmarks.update 0",
		"recipe.render r1 servings=2 bookmarked=false",
	)
}

func TestControlRecipe_EmptyHashIsNoop(t *testing.T) {
	h := newHarness(t)
	h.rec.take()

	h.publish(event.Event{Kind: event.HashChange})
	assertCalls(t, h)
	if h.api.calls != 0 {
		t.Fatalf("API calls = %d, want 0", h.api.calls)
	}
}

func TestControlRecipe_FailureRendersError(t *testing.T) {
	h := newHarness(t)
	h.rec.take()

	h.loc.Navigate(context.Background(), "missing")
	assertCalls(t, h, "recipe.spinner", "results.update 0", `recipe.error ""`)
	if _, ok := h.store.Recipe(); ok {
		t.Fatalf("failed load set a recipe")
	}
}

func TestControlSearch_RendersFirstPage(t *testing.T) {
	h := newHarness(t)
	h.api.results = summaries(25)
	h.rec.take()

	h.rec.query = "pasta"
	h.publish(event.Event{Kind: event.Search})
	assertCalls(t, h, "results.spinner", "results.render 10", "pagination.render page=1 of=3")

	if h.rec.query != "" {
		t.Fatalf("query not consumed")
	}
}

func TestControlSearch_EmptyQueryIsNoop(t *testing.T) {
	h := newHarness(t)
	h.rec.take()

	h.rec.query = "   "
	h.publish(event.Event{Kind: event.Search})
	assertCalls(t, h)
	if h.api.calls != 0 {
		t.Fatalf("API calls = %d, want 0", h.api.calls)
	}
}

func TestControlSearch_FailureRendersError(t *testing.T) {
	h := newHarness(t)
	h.api.err = forkify.ErrNetwork
	h.rec.take()

	h.rec.query = "pasta"
	h.publish(event.Event{Kind: event.Search})
	assertCalls(t, h, "results.spinner", `results.error ""`)
}

func TestControlPagination_RendersRequestedPage(t *testing.T) {
	h := newHarness(t)
	h.api.results = summaries(25)
	h.rec.query = "pasta"
	h.publish(event.Event{Kind: event.Search})
	h.rec.take()

	h.publish(event.Event{Kind: event.Paginate, Page: 3})
	assertCalls(t, h, "results.render 5", "pagination.render page=3 of=3")
}

func TestControlServings_UpdatesRecipe(t *testing.T) {
	h := newHarness(t)
	h.loc.Navigate(context.Background(), "r1")
	h.rec.take()

	h.publish(event.Event{Kind: event.Servings, Servings: 4})
	assertCalls(t, h, "recipe.update r1 servings=4 bookmarked=false")

	recipe, _ := h.store.Recipe()
	if got := *recipe.Ingredients[0].Quantity; got != 2 {
		t.Fatalf("quantity = %v, want 2", got)
	}

	h.publish(event.Event{Kind: event.Servings, Servings: 0})
	assertCalls(t, h)
}

func TestControlBookmark_Toggles(t *testing.T) {
	h := newHarness(t)
	h.loc.Navigate(context.Background(), "r1")
	h.rec.take()

	h.publish(event.Event{Kind: event.BookmarkToggle})
	assertCalls(t, h, "recipe.update r1 servings=2 bookmarked=true", "bookmarks.render 1")
	if !h.store.IsBookmarked("r1") {
		t.Fatalf("r1 not bookmarked")
	}

	h.publish(event.Event{Kind: event.BookmarkToggle})
	assertCalls(t, h, "recipe.update r1 servings=2 bookmarked=false", "bookmarks.render 0")
	if h.store.IsBookmarked("r1") {
		t.Fatalf("r1 still bookmarked")
	}
}

func TestControlBookmark_NoRecipeIsNoop(t *testing.T) {
	h := newHarness(t)
	h.rec.take()

	h.publish(event.Event{Kind: event.BookmarkToggle})
	assertCalls(t, h)
}

func TestControlUpload_SuccessClosesAndReloads(t *testing.T) {
	h := newHarness(t)
	h.rec.take()

	h.publish(event.Event{Kind: event.Upload, Fields: map[string]string{
		state.FieldTitle:    "Cake",
		state.FieldServings: "3",
		"ingredient-1":      "1,kg,flour",
	}})
	assertCalls(t, h,
		"upload.spinner",
		"recipe.render new1 servings=3 bookmarked=true",
		`upload.message ""`,
		"bookmarks.render 1",
	)
	if h.loc.Hash() != "new1" {
		t.Fatalf("Hash = %q, want new1", h.loc.Hash())
	}
	if len(h.pending) != 1 || h.delays[0] != DefaultCloseDelay {
		t.Fatalf("scheduled = %d with delays %v, want one at %v", len(h.pending), h.delays, DefaultCloseDelay)
	}

	// The uploaded recipe is served by the API after the reload.
	h.api.recipes["new1"] = forkify.Recipe{ID: "new1", Title: "Cake", Servings: 3, Key: "k"}
	h.pending[0]()
	assertCalls(t, h,
		"upload.close",
		"recipe.welcome",
		"bookmarks.render 1",
		"recipe.spinner",
		"results.update 0",
		"bookmarks.update 1",
		"recipe.render new1 servings=3 bookmarked=true",
	)
}

func TestControlUpload_ValidationErrorKeepsForm(t *testing.T) {
	h := newHarness(t)
	h.rec.take()

	h.publish(event.Event{Kind: event.Upload, Fields: map[string]string{"ingredient-1": "kg,apples"}})
	calls := h.rec.take()
	if len(calls) != 2 || calls[0] != "upload.spinner" || !strings.HasPrefix(calls[1], "upload.error") {
		t.Fatalf("calls = %v, want spinner then error", calls)
	}
	if !strings.Contains(calls[1], "wrong ingredient format") {
		t.Fatalf("error = %s, want format message", calls[1])
	}
	if h.api.calls != 0 || len(h.pending) != 0 {
		t.Fatalf("validation failure made %d calls and scheduled %d closes", h.api.calls, len(h.pending))
	}
}

func TestControlReload_RestoresPersistedBookmarks(t *testing.T) {
	h := newHarness(t)
	if err := h.mem.Put(state.BookmarksKey, []byte(`[{"id":"a"},{"id":"b"}]`)); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	h.rec.take()

	h.loc.Reload(context.Background())
	assertCalls(t, h, "recipe.welcome", "bookmarks.render 2")
}
