package ui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/five82/forkify/internal/state"
)

// fractionDenominators are tried in order when printing a quantity as a
// kitchen fraction.
var fractionDenominators = []int{2, 3, 4, 8}

const fractionTolerance = 0.01

// formatQuantity prints q as a whole number, a mixed fraction such as
// "1 1/2", or a short decimal when no common fraction is close enough.
func formatQuantity(q float64) string {
	if q < 0 {
		return "-" + formatQuantity(-q)
	}
	whole := math.Floor(q)
	frac := q - whole
	if frac < fractionTolerance {
		return strconv.FormatFloat(whole, 'f', -1, 64)
	}
	if 1-frac < fractionTolerance {
		return strconv.FormatFloat(whole+1, 'f', -1, 64)
	}

	for _, den := range fractionDenominators {
		num := math.Round(frac * float64(den))
		if num == 0 || math.Abs(frac-num/float64(den)) > fractionTolerance {
			continue
		}
		n, d := reduce(int(num), den)
		if whole == 0 {
			return fmt.Sprintf("%d/%d", n, d)
		}
		return fmt.Sprintf("%.0f %d/%d", whole, n, d)
	}
	return strconv.FormatFloat(math.Round(q*100)/100, 'f', -1, 64)
}

func reduce(n, d int) (int, int) {
	a, b := n, d
	for b != 0 {
		a, b = b, a%b
	}
	return n / a, d / a
}

// formatIngredient renders one ingredient line without its bullet.
func formatIngredient(ing state.Ingredient) string {
	out := ""
	if ing.Quantity != nil {
		out = formatQuantity(*ing.Quantity) + " "
	}
	if ing.Unit != "" {
		out += ing.Unit + " "
	}
	return out + ing.Description
}
