package ui

import (
	"testing"

	"github.com/five82/forkify/internal/state"
)

func TestFormatQuantity(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{0.5, "1/2"},
		{1.5, "1 1/2"},
		{0.25, "1/4"},
		{0.75, "3/4"},
		{0.3333333, "1/3"},
		{2.125, "2 1/8"},
		{0.999, "1"},
		{0.17, "0.17"},
		{0, "0"},
	}
	for _, tc := range cases {
		if got := formatQuantity(tc.in); got != tc.want {
			t.Fatalf("formatQuantity(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatIngredient(t *testing.T) {
	q := 0.5
	cases := []struct {
		in   state.Ingredient
		want string
	}{
		{state.Ingredient{Quantity: &q, Unit: "cup", Description: "rice"}, "1/2 cup rice"},
		{state.Ingredient{Quantity: nil, Unit: "", Description: "salt"}, "salt"},
		{state.Ingredient{Quantity: &q, Description: "lemon"}, "1/2 lemon"},
	}
	for _, tc := range cases {
		if got := formatIngredient(tc.in); got != tc.want {
			t.Fatalf("formatIngredient(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
