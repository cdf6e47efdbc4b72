// Package controller wires user events to the state store and the views.
//
// Each event kind has exactly one handler. A handler reads what it needs
// from the views or the location, runs one store operation, then pushes
// the resulting state back out to the views. Handlers never return errors:
// failures become a view error state plus a log entry.
//
// Handler summary:
//
//	HashChange      load the recipe named by the location
//	Search          run the query typed into the search view
//	Paginate        show another page of the current results
//	Servings        rescale the current recipe
//	BookmarkToggle  add or remove the current recipe from bookmarks
//	Upload          post the upload form, then close it and reload
//	Reload          restore persisted state and reopen the current recipe
//
// Requests superseded by a newer request of the same kind are dropped
// without touching any view.
package controller
