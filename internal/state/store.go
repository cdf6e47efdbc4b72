package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/forkify/internal/forkify"
	"github.com/five82/forkify/internal/kv"
)

// BookmarksKey is the key-value entry holding the serialized bookmarks.
const BookmarksKey = "bookmarks"

// DefaultResultsPerPage is used when Options.ResultsPerPage is not positive.
const DefaultResultsPerPage = 10

type opKind int

const (
	opRecipe opKind = iota
	opSearch
	opUpload
	opCount
)

// Options configure a Store.
type Options struct {
	ResultsPerPage int
	Logger         *zap.Logger
}

// Snapshot is a copy of the application state at a point in time.
type Snapshot struct {
	Recipe    *Recipe // nil until a recipe is loaded
	Search    SearchState
	Bookmarks []Recipe
}

// Store owns the recipe, search and bookmark state.
type Store struct {
	api forkify.RecipeService
	kv  kv.Store
	log *zap.Logger

	mu        sync.RWMutex
	recipe    *Recipe
	search    SearchState
	bookmarks []Recipe
	tokens    [opCount]uint64
}

// NewStore builds an empty Store. Call Restore once at startup to load
// persisted bookmarks.
func NewStore(api forkify.RecipeService, store kv.Store, opts Options) *Store {
	perPage := opts.ResultsPerPage
	if perPage <= 0 {
		perPage = DefaultResultsPerPage
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		api:    api,
		kv:     store,
		log:    log,
		search: SearchState{Page: 1, ResultsPerPage: perPage},
	}
}

// Restore resets the recipe and search state and rehydrates bookmarks from
// the key-value store. A missing entry leaves bookmarks empty. In-flight
// requests issued before Restore are discarded when they complete.
func (s *Store) Restore() error {
	raw, err := s.kv.Get(BookmarksKey)
	var bookmarks []Recipe
	switch {
	case errors.Is(err, kv.ErrNoKey):
		err = nil
	case err != nil:
		err = fmt.Errorf("read bookmarks: %w", err)
	default:
		if decodeErr := json.Unmarshal(raw, &bookmarks); decodeErr != nil {
			err = fmt.Errorf("decode bookmarks: %w", decodeErr)
			bookmarks = nil
		} else {
			err = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipe = nil
	s.search = SearchState{Page: 1, ResultsPerPage: s.search.ResultsPerPage}
	s.bookmarks = bookmarks
	for i := range s.tokens {
		s.tokens[i]++
	}
	s.log.Debug("bookmarks restored", zap.Int("count", len(bookmarks)))
	return err
}

// LoadRecipe fetches a recipe and makes it the current one. On failure the
// previous recipe is left untouched.
func (s *Store) LoadRecipe(ctx context.Context, id string) error {
	token := s.begin(opRecipe)

	payload, err := s.api.FetchRecipe(ctx, id)
	if err != nil {
		return fmt.Errorf("load recipe %s: %w", id, err)
	}
	recipe := recipeFromAPI(*payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isLatest(opRecipe, token) {
		return ErrSuperseded
	}
	s.recipe = &recipe
	s.log.Debug("recipe loaded", zap.String("id", recipe.ID), zap.Int("ingredients", len(recipe.Ingredients)))
	return nil
}

// LoadSearchResults runs a search and replaces the search state with its
// results, resetting the page to 1. A failed search stores nothing.
func (s *Store) LoadSearchResults(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrEmptyQuery
	}
	token := s.begin(opSearch)

	payload, err := s.api.SearchRecipes(ctx, query)
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}
	results := make([]SearchResultItem, len(payload))
	for i, r := range payload {
		results[i] = resultFromAPI(r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isLatest(opSearch, token) {
		return ErrSuperseded
	}
	s.search = SearchState{
		Query:          query,
		Page:           1,
		Results:        results,
		ResultsPerPage: s.search.ResultsPerPage,
	}
	s.log.Debug("search loaded", zap.String("query", query), zap.Int("results", len(results)))
	return nil
}

// ResultsPage makes page the current page and returns its slice of the
// results. Pages below 1 are treated as 1; pages past the end are empty.
func (s *Store) ResultsPage(page int) []SearchResultItem {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search.Page = page
	return s.pageLocked(page)
}

// CurrentResultsPage returns the slice for the current page.
func (s *Store) CurrentResultsPage() []SearchResultItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageLocked(s.search.Page)
}

func (s *Store) pageLocked(page int) []SearchResultItem {
	perPage := s.search.ResultsPerPage
	start := perPage * (page - 1)
	end := perPage * page
	n := len(s.search.Results)
	if start >= n {
		return nil
	}
	if end > n {
		end = n
	}
	return cloneResults(s.search.Results[start:end])
}

// UpdateServings rescales every ingredient quantity to newServings and
// records the new servings. Nil quantities stay nil. The caller is
// responsible for passing a positive value.
func (s *Store) UpdateServings(newServings int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recipe == nil {
		return
	}
	old := s.recipe.Servings
	if old > 0 {
		for i := range s.recipe.Ingredients {
			q := s.recipe.Ingredients[i].Quantity
			if q == nil {
				continue
			}
			scaled := *q * float64(newServings) / float64(old)
			s.recipe.Ingredients[i].Quantity = &scaled
		}
	}
	s.recipe.Servings = newServings
}

// AddBookmark appends recipe to the bookmarks and persists them. Duplicate
// ids are not checked.
func (s *Store) AddBookmark(recipe Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addBookmarkLocked(recipe)
	return s.persistLocked()
}

func (s *Store) addBookmarkLocked(recipe Recipe) {
	recipe = cloneRecipe(recipe)
	recipe.Bookmarked = false
	s.bookmarks = append(s.bookmarks, recipe)
}

// RemoveBookmark removes the first bookmark with the given id and persists
// the rest. An unknown id is a no-op.
func (s *Store) RemoveBookmark(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.bookmarkIndexLocked(id)
	if idx < 0 {
		s.log.Debug("bookmark not found", zap.String("id", id))
		return nil
	}
	s.bookmarks = append(s.bookmarks[:idx:idx], s.bookmarks[idx+1:]...)
	return s.persistLocked()
}

// ToggleBookmark bookmarks the current recipe, or removes its bookmark when
// it already has one, under a single lock. It returns the updated recipe and
// false when no recipe is loaded.
func (s *Store) ToggleBookmark() (Recipe, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recipe == nil {
		return Recipe{}, false, nil
	}
	if idx := s.bookmarkIndexLocked(s.recipe.ID); idx >= 0 {
		s.bookmarks = append(s.bookmarks[:idx:idx], s.bookmarks[idx+1:]...)
	} else {
		s.addBookmarkLocked(*s.recipe)
	}
	err := s.persistLocked()
	return s.recipeLocked(), true, err
}

// IsBookmarked reports whether a bookmark with the given id exists.
func (s *Store) IsBookmarked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookmarkIndexLocked(id) >= 0
}

func (s *Store) bookmarkIndexLocked(id string) int {
	for i, b := range s.bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() error {
	bookmarks := s.bookmarks
	if bookmarks == nil {
		bookmarks = []Recipe{}
	}
	raw, err := json.Marshal(bookmarks)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	if err := s.kv.Put(BookmarksKey, raw); err != nil {
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	return nil
}

// UploadRecipe validates the upload form, posts it, makes the stored recipe
// current and bookmarks it. Validation failures return a *ValidationError
// before any request is made.
func (s *Store) UploadRecipe(ctx context.Context, fields map[string]string) error {
	payload, err := buildUpload(fields)
	if err != nil {
		return err
	}
	token := s.begin(opUpload)

	created, err := s.api.CreateRecipe(ctx, payload)
	if err != nil {
		return fmt.Errorf("upload recipe: %w", err)
	}
	recipe := recipeFromAPI(*created)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isLatest(opUpload, token) {
		return ErrSuperseded
	}
	s.recipe = &recipe
	s.addBookmarkLocked(recipe)
	s.log.Info("recipe uploaded", zap.String("id", recipe.ID))
	return s.persistLocked()
}

// Recipe returns the current recipe, if any.
func (s *Store) Recipe() (Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.recipe == nil {
		return Recipe{}, false
	}
	return s.recipeLocked(), true
}

func (s *Store) recipeLocked() Recipe {
	r := cloneRecipe(*s.recipe)
	r.Bookmarked = s.bookmarkIndexLocked(r.ID) >= 0
	return r
}

// Search returns a copy of the search state.
func (s *Store) Search() SearchState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	search := s.search
	search.Results = cloneResults(s.search.Results)
	return search
}

// Bookmarks returns a copy of the bookmarks in insertion order.
func (s *Store) Bookmarks() []Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecipes(s.bookmarks)
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Search:    s.search,
		Bookmarks: cloneRecipes(s.bookmarks),
	}
	snap.Search.Results = cloneResults(s.search.Results)
	if s.recipe != nil {
		r := s.recipeLocked()
		snap.Recipe = &r
	}
	return snap
}

func (s *Store) begin(kind opKind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[kind]++
	return s.tokens[kind]
}

func (s *Store) isLatest(kind opKind, token uint64) bool {
	return s.tokens[kind] == token
}
