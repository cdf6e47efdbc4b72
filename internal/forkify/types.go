package forkify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// envelope mirrors the outer shape shared by every Forkify response.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Results int             `json:"results"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) failed() bool {
	switch strings.ToLower(strings.TrimSpace(e.Status)) {
	case "fail", "error":
		return true
	}
	return false
}

type recipeData struct {
	Recipe Recipe `json:"recipe"`
}

type searchData struct {
	Recipes []RecipeSummary `json:"recipes"`
}

// Recipe mirrors the payload returned for a single recipe.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Publisher   string       `json:"publisher"`
	SourceURL   string       `json:"source_url"`
	ImageURL    string       `json:"image_url"`
	Servings    Int          `json:"servings"`
	CookingTime Int          `json:"cooking_time"`
	Ingredients []Ingredient `json:"ingredients"`
	Key         string       `json:"key,omitempty"`
}

// Ingredient is a single ingredient line. A nil Quantity means the API sent
// null ("salt, to taste").
type Ingredient struct {
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
}

// RecipeSummary mirrors an entry of /recipes?search=.
type RecipeSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	ImageURL  string `json:"image_url"`
	Key       string `json:"key,omitempty"`
}

// NewRecipe is the upload payload for POST /recipes.
type NewRecipe struct {
	Title       string       `json:"title"`
	ImageURL    string       `json:"image_url"`
	SourceURL   string       `json:"source_url"`
	Servings    int          `json:"servings"`
	Publisher   string       `json:"publisher"`
	CookingTime int          `json:"cooking_time"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Int decodes a JSON number or a quoted number. User uploads made through
// older clients stored servings and cooking time as strings.
type Int int

// UnmarshalJSON implements the json.Unmarshaler interface for Int.
func (n *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		data = []byte(s)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", string(data), err)
	}
	*n = Int(f)
	return nil
}
