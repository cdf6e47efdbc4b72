package state

import "github.com/five82/forkify/internal/forkify"

// Recipe is the full recipe shown in the detail panel. Bookmarked is derived
// from the bookmark list whenever a snapshot is taken and is never persisted.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Publisher   string       `json:"publisher"`
	SourceURL   string       `json:"sourceUrl"`
	ImageURL    string       `json:"imageUrl"`
	Servings    int          `json:"servings"`
	CookingTime int          `json:"cookingTime"`
	Ingredients []Ingredient `json:"ingredients"`
	Key         string       `json:"key,omitempty"`
	Bookmarked  bool         `json:"-"`
}

// UserGenerated reports whether the recipe was uploaded by the user.
func (r Recipe) UserGenerated() bool {
	return r.Key != ""
}

// Ingredient is one ingredient line. A nil Quantity is kept nil through
// servings scaling.
type Ingredient struct {
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
}

// SearchResultItem is the lightweight projection shown in the results list.
type SearchResultItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	ImageURL  string `json:"imageUrl"`
	Key       string `json:"key,omitempty"`
}

// SearchState is the latest successful search plus the visible page.
type SearchState struct {
	Query          string
	Page           int
	Results        []SearchResultItem
	ResultsPerPage int
}

// TotalPages returns how many pages the results span.
func (s SearchState) TotalPages() int {
	if s.ResultsPerPage <= 0 || len(s.Results) == 0 {
		return 0
	}
	return (len(s.Results) + s.ResultsPerPage - 1) / s.ResultsPerPage
}

func recipeFromAPI(r forkify.Recipe) Recipe {
	out := Recipe{
		ID:          r.ID,
		Title:       r.Title,
		Publisher:   r.Publisher,
		SourceURL:   r.SourceURL,
		ImageURL:    r.ImageURL,
		Servings:    int(r.Servings),
		CookingTime: int(r.CookingTime),
		Key:         r.Key,
	}
	if len(r.Ingredients) > 0 {
		out.Ingredients = make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			out.Ingredients[i] = Ingredient{
				Quantity:    copyQuantity(ing.Quantity),
				Unit:        ing.Unit,
				Description: ing.Description,
			}
		}
	}
	return out
}

func resultFromAPI(r forkify.RecipeSummary) SearchResultItem {
	return SearchResultItem{
		ID:        r.ID,
		Title:     r.Title,
		Publisher: r.Publisher,
		ImageURL:  r.ImageURL,
		Key:       r.Key,
	}
}

func copyQuantity(q *float64) *float64 {
	if q == nil {
		return nil
	}
	v := *q
	return &v
}

func cloneRecipe(r Recipe) Recipe {
	dup := r
	if r.Ingredients != nil {
		dup.Ingredients = make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			ing.Quantity = copyQuantity(ing.Quantity)
			dup.Ingredients[i] = ing
		}
	}
	return dup
}

func cloneRecipes(items []Recipe) []Recipe {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Recipe, len(items))
	for i, r := range items {
		dup[i] = cloneRecipe(r)
	}
	return dup
}

func cloneResults(items []SearchResultItem) []SearchResultItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]SearchResultItem, len(items))
	copy(dup, items)
	return dup
}
