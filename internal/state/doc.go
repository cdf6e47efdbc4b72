// Package state owns the application state of Forkify: the current recipe,
// the latest search and the bookmarks.
//
// # Overview
//
// The Store is the single place where state is loaded, transformed and
// mutated. The controller calls its operations in response to UI events and
// reads the result back before rendering. It is constructed explicitly and
// passed by reference; there is no package-level state.
//
// # Core Types
//
// Store:
//   - Holds the current Recipe (or none), the SearchState and the bookmarks
//   - Talks to the API through forkify.RecipeService
//   - Persists bookmarks through kv.Store under BookmarksKey
//
// Snapshot:
//   - Copy of the state at a point in time, safe to hand to the UI
//   - Recipe.Bookmarked is computed while the snapshot is taken
//
// # Operations
//
//	LoadRecipe(ctx, id)          fetch and replace the current recipe
//	LoadSearchResults(ctx, q)    fetch and replace the search, page = 1
//	ResultsPage(p)               set the page and return its slice
//	UpdateServings(n)            rescale ingredient quantities
//	AddBookmark(r) / RemoveBookmark(id)
//	UploadRecipe(ctx, fields)    validate, post, make current, bookmark
//	Restore()                    reset and rehydrate bookmarks from storage
//
// # Derived Bookmark Flag
//
// The bookmarked flag of the current recipe is not stored. It is computed
// from the bookmark list every time the recipe is read, so the flag and the
// list cannot drift apart.
//
// # Concurrency Model
//
// UI handlers run on Bubble Tea command goroutines, so the Store guards its
// fields with a sync.RWMutex. The lock is never held across network I/O:
// operations fetch first, then lock and apply.
//
// Each network operation kind (recipe, search, upload) carries a monotonic
// request token. A response is applied only if no newer request of the same
// kind was issued in the meantime; otherwise the operation returns
// ErrSuperseded and leaves state untouched. Restore invalidates every
// outstanding token.
//
// # Error Propagation
//
//   - API failures are wrapped and returned; forkify.ErrNetwork,
//     forkify.ErrNotFound and forkify.ErrApplication survive errors.Is
//   - Upload input problems return *ValidationError (errors.Is ErrValidation)
//     before any request is sent
//   - A failed load or search leaves the previous state as it was
//   - Removing an unknown bookmark is silently ignored
//
// # Persistence
//
// Every bookmark change rewrites the whole list as one JSON array. The
// derived Bookmarked flag is never written.
package state
