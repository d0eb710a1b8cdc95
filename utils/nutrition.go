package utils

import (
	"math"

	"backend/models"
)

// ScaleNutrition converts per-100g nutrient values to the given consumed
// mass. A nil set stays nil (the unknown cannot be scaled) and each nil
// field stays nil rather than collapsing to zero. Calories round to the
// nearest integer, the gram fields to one decimal. Pure function.
func ScaleNutrition(n *models.Nutrition, grams float64) *models.Nutrition {
	if n == nil {
		return nil
	}
	factor := grams / 100.0
	return &models.Nutrition{
		Calories: scaleField(n.Calories, factor, 0),
		Fiber:    scaleField(n.Fiber, factor, 1),
		Sugar:    scaleField(n.Sugar, factor, 1),
		Protein:  scaleField(n.Protein, factor, 1),
		Water:    scaleField(n.Water, factor, 1),
	}
}

func scaleField(v *float64, factor float64, decimals int) *float64 {
	if v == nil {
		return nil
	}
	out := RoundTo(*v*factor, decimals)
	return &out
}

// RoundTo rounds half away from zero to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// SumFoodTags folds a day's food tags into running totals. Each tag is
// scaled for its own total grams and only then summed — never sum first and
// scale once, because rounding happens per tag. Unknown values contribute
// zero; an empty list yields zero totals, never an absent result. Addition
// is commutative, so list order does not affect the outcome.
func SumFoodTags(tags []models.FoodTag) models.DailyTotals {
	var t models.DailyTotals
	for _, tag := range tags {
		scaled := ScaleNutrition(tag.Nutrition, tag.TotalGrams())
		if scaled == nil {
			continue
		}
		t.Calories += deref(scaled.Calories)
		t.Fiber += deref(scaled.Fiber)
		t.Sugar += deref(scaled.Sugar)
		t.Protein += deref(scaled.Protein)
	}
	t.Fiber = RoundTo(t.Fiber, 1)
	t.Sugar = RoundTo(t.Sugar, 1)
	t.Protein = RoundTo(t.Protein, 1)
	return t
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float64Ptr is a small helper for building nutrition literals.
func Float64Ptr(v float64) *float64 { return &v }
