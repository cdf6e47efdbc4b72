package state

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/five82/forkify/internal/forkify"
)

// Upload form field names.
const (
	FieldTitle       = "title"
	FieldSourceURL   = "sourceUrl"
	FieldImage       = "image"
	FieldPublisher   = "publisher"
	FieldCookingTime = "cookingTime"
	FieldServings    = "servings"

	ingredientPrefix = "ingredient"
)

const ingredientFormatReason = `wrong ingredient format, use "quantity,unit,description"`

// ParseIngredients collects every non-empty ingredient* field in natural
// order (ingredient-2 before ingredient-10). Each value must hold exactly
// three comma separated tokens; the quantity may be empty.
func ParseIngredients(fields map[string]string) ([]Ingredient, error) {
	keys := ingredientKeys(fields)
	out := make([]Ingredient, 0, len(keys))
	for _, key := range keys {
		value := fields[key]
		parts := strings.Split(value, ",")
		if len(parts) != 3 {
			return nil, &ValidationError{Field: key, Value: value, Reason: ingredientFormatReason}
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		var quantity *float64
		if parts[0] != "" {
			q, err := strconv.ParseFloat(parts[0], 64)
			if err != nil || math.IsNaN(q) || math.IsInf(q, 0) {
				return nil, &ValidationError{Field: key, Value: value, Reason: "quantity is not a number"}
			}
			quantity = &q
		}
		out = append(out, Ingredient{Quantity: quantity, Unit: parts[1], Description: parts[2]})
	}
	return out, nil
}

func ingredientKeys(fields map[string]string) []string {
	var keys []string
	for key, value := range fields {
		if !strings.HasPrefix(key, ingredientPrefix) || strings.TrimSpace(value) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, iok := ingredientIndex(keys[i])
		nj, jok := ingredientIndex(keys[j])
		if iok && jok && ni != nj {
			return ni < nj
		}
		if iok != jok {
			return iok
		}
		return keys[i] < keys[j]
	})
	return keys
}

func ingredientIndex(key string) (int, bool) {
	suffix := strings.TrimLeft(strings.TrimPrefix(key, ingredientPrefix), "-_ ")
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}

func buildUpload(fields map[string]string) (forkify.NewRecipe, error) {
	ingredients, err := ParseIngredients(fields)
	if err != nil {
		return forkify.NewRecipe{}, err
	}
	servings, err := parseCount(fields, FieldServings)
	if err != nil {
		return forkify.NewRecipe{}, err
	}
	cookingTime, err := parseCount(fields, FieldCookingTime)
	if err != nil {
		return forkify.NewRecipe{}, err
	}

	payload := forkify.NewRecipe{
		Title:       strings.TrimSpace(fields[FieldTitle]),
		ImageURL:    strings.TrimSpace(fields[FieldImage]),
		SourceURL:   strings.TrimSpace(fields[FieldSourceURL]),
		Servings:    servings,
		Publisher:   strings.TrimSpace(fields[FieldPublisher]),
		CookingTime: cookingTime,
		Ingredients: make([]forkify.Ingredient, len(ingredients)),
	}
	for i, ing := range ingredients {
		payload.Ingredients[i] = forkify.Ingredient{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		}
	}
	return payload, nil
}

// parseCount converts a numeric form field. The wire payload is typed, so a
// value that is not a whole number cannot be sent.
func parseCount(fields map[string]string, field string) (int, error) {
	raw := strings.TrimSpace(fields[field])
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: fields[field], Reason: "must be a whole number"}
	}
	return n, nil
}
