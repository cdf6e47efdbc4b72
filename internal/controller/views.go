package controller

import "github.com/five82/forkify/internal/state"

// RecipeView shows the current recipe.
type RecipeView interface {
	Render(recipe state.Recipe)
	// Update refreshes a recipe that is already on screen (servings,
	// bookmark flag) without rebuilding the whole panel.
	Update(recipe state.Recipe)
	RenderSpinner()
	// RenderError shows msg, or the view's default message when msg is empty.
	RenderError(msg string)
	RenderWelcome()
}

// ResultsView shows one page of search results.
type ResultsView interface {
	Render(items []state.SearchResultItem)
	Update(items []state.SearchResultItem)
	RenderSpinner()
	RenderError(msg string)
}

// PaginationView shows the page controls for a search.
type PaginationView interface {
	Render(search state.SearchState)
}

// BookmarksView shows the bookmark list.
type BookmarksView interface {
	Render(bookmarks []state.Recipe)
	Update(bookmarks []state.Recipe)
}

// SearchView is the search input.
type SearchView interface {
	// Query returns the submitted query and clears the input.
	Query() string
}

// UploadView is the recipe upload form.
type UploadView interface {
	RenderSpinner()
	RenderMessage(msg string)
	RenderError(msg string)
	Close()
}

// Views groups every render target the controller drives.
type Views struct {
	Recipe     RecipeView
	Results    ResultsView
	Pagination PaginationView
	Bookmarks  BookmarksView
	Search     SearchView
	Upload     UploadView
}

func (v Views) validate() error {
	switch {
	case v.Recipe == nil:
		return errMissingView("recipe")
	case v.Results == nil:
		return errMissingView("results")
	case v.Pagination == nil:
		return errMissingView("pagination")
	case v.Bookmarks == nil:
		return errMissingView("bookmarks")
	case v.Search == nil:
		return errMissingView("search")
	case v.Upload == nil:
		return errMissingView("upload")
	}
	return nil
}
