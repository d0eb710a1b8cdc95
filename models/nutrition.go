package models

// Nutrition holds nutrient values, either per 100 g (from a food search
// result) or scaled to a consumed mass. A nil field means "unknown"; zero
// means "measured and absent" — the two are never conflated.
type Nutrition struct {
	Calories *float64 `json:"calories"`
	Fiber    *float64 `json:"fiber"`
	Sugar    *float64 `json:"sugar"`
	Protein  *float64 `json:"protein"`
	Water    *float64 `json:"water,omitempty"`
}

// FoodTag is one confirmed consumption entry in a day's draft: a food name,
// how many servings, the estimated gram weight per serving, and the per-100g
// nutrient reference (nil for manual/unknown foods). Immutable once created
// except for removal from the draft.
type FoodTag struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Servings        float64    `json:"servings"`
	GramsPerServing float64    `json:"gramsPerServing"`
	Nutrition       *Nutrition `json:"nutrition"`
}

// TotalGrams is the consumed mass the tag represents.
func (t FoodTag) TotalGrams() float64 {
	return t.Servings * t.GramsPerServing
}

// DailyTotals are derived running sums across a day's food tags. The totals
// themselves are never nil: unknown contributions count as zero, and an
// empty day sums to zero.
type DailyTotals struct {
	Calories float64 `json:"calories"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Protein  float64 `json:"protein"`
}
