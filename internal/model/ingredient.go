package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidQuantity = errors.New("quantity must be a non-negative number like 2, 1.5 or 1 1/2")

// Ingredient names are stored lowercase and shared between recipes
type Ingredient struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// NormalizeIngredientName is the lookup key for an ingredient
func NormalizeIngredientName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

type RecipeIngredient struct {
	ID            string  `db:"id"`
	RecipeID      string  `db:"recipe_id"`
	IngredientID  string  `db:"ingredient_id"`
	MeasurementID *string `db:"measurement_id"`
	Quantity      float64 `db:"quantity"`
	SortOrder     int     `db:"sort_order"`

	// Joined fields (not in recipe_ingredient)
	IngredientName  string `db:"ingredient_name"`
	MeasurementName string `db:"measurement_name"`
}

// Measurement returns the measurement name pluralized for the quantity
func (ri *RecipeIngredient) Measurement() string {
	return PluralizeMeasurement(ri.MeasurementName, ri.Quantity)
}

// QuantityDisplay renders common fractions ("1 1/2") and falls back to decimals
func (ri *RecipeIngredient) QuantityDisplay() string {
	return FormatQuantity(ri.Quantity)
}

var fractions = []struct {
	value float64
	text  string
}{
	{0.125, "1/8"},
	{0.25, "1/4"},
	{1.0 / 3, "1/3"},
	{0.5, "1/2"},
	{2.0 / 3, "2/3"},
	{0.75, "3/4"},
}

func FormatQuantity(q float64) string {
	if q <= 0 {
		return "0"
	}

	whole, frac := math.Modf(q)
	if frac < 0.01 {
		return strconv.FormatFloat(whole, 'f', -1, 64)
	}

	for _, f := range fractions {
		if math.Abs(frac-f.value) < 0.01 {
			if whole == 0 {
				return f.text
			}
			return strconv.FormatFloat(whole, 'f', -1, 64) + " " + f.text
		}
	}

	return strconv.FormatFloat(q, 'f', -1, 64)
}

// Display is the full line shown in a recipe, e.g. "2 cups flour"
func (ri *RecipeIngredient) Display() string {
	parts := []string{ri.QuantityDisplay()}
	if m := ri.Measurement(); m != "" {
		parts = append(parts, m)
	}
	parts = append(parts, ri.IngredientName)
	return strings.Join(parts, " ")
}

// ParseQuantity reads decimals ("1.5"), fractions ("3/4") and mixed numbers ("1 1/2")
func ParseQuantity(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, ErrInvalidQuantity
	}

	mixed := len(fields) == 2

	var total float64
	for i, f := range fields {
		var v float64
		if num, den, ok := strings.Cut(f, "/"); ok {
			if mixed && i == 0 {
				// "1/2 1/2" is not a mixed number
				return 0, ErrInvalidQuantity
			}
			n, err1 := strconv.ParseFloat(num, 64)
			d, err2 := strconv.ParseFloat(den, 64)
			if err1 != nil || err2 != nil || d == 0 {
				return 0, ErrInvalidQuantity
			}
			v = n / d
		} else {
			if i > 0 {
				// only the last part of a mixed number may be a fraction
				return 0, ErrInvalidQuantity
			}
			n, err := strconv.ParseFloat(f, 64)
			if err != nil || (mixed && n != math.Trunc(n)) {
				return 0, ErrInvalidQuantity
			}
			v = n
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrInvalidQuantity
		}
		total += v
	}
	if math.IsInf(total, 0) {
		return 0, ErrInvalidQuantity
	}
	return total, nil
}
