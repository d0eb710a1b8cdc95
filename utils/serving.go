package utils

import "strings"

// servingRule maps food-name keywords to an estimated gram weight for one
// serving. Rules are evaluated top to bottom and the first match wins, so
// more specific keywords sit above generic ones — "banana yogurt" resolves
// by the banana rule, never by enumeration order of a map.
type servingRule struct {
	keywords []string
	grams    float64
}

var servingRules = []servingRule{
	{[]string{"cereal", "oatmeal"}, 30},
	{[]string{"puree", "baby food"}, 60},
	{[]string{"banana"}, 120},
	{[]string{"apple"}, 100},
	{[]string{"milk", "formula"}, 240},
	{[]string{"yogurt"}, 150},
	{[]string{"rice"}, 80},
	{[]string{"bread"}, 30},
	{[]string{"juice"}, 120},
	{[]string{"egg"}, 50},
	{[]string{"chicken", "meat"}, 85},
	{[]string{"cheese"}, 28},
	{[]string{"chips"}, 28},
}

// DefaultServingGrams is the fallback when no keyword matches. Unmatched
// names are a deliberate lossy approximation, not an error.
const DefaultServingGrams = 100.0

// ServingGrams estimates the gram weight of one serving from the food name.
// Matching is case-insensitive substring search in rule order.
func ServingGrams(foodName string) float64 {
	name := strings.ToLower(foodName)
	for _, r := range servingRules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return r.grams
			}
		}
	}
	return DefaultServingGrams
}

type unitRule struct {
	keywords []string
	units    []string
}

var unitRules = []unitRule{
	{[]string{"juice", "milk", "water"}, []string{"ml", "fl oz", "cup"}},
	{[]string{"cereal", "powder"}, []string{"g", "tbsp", "tsp"}},
	{[]string{"fruit", "vegetable"}, []string{"g", "oz", "piece", "slice"}},
	{[]string{"babyfood"}, []string{"g", "jar", "tbsp"}},
}

var defaultUnits = []string{"g", "oz", "tbsp", "tsp"}

// AvailableUnits suggests plausible measurement units for display. The
// suggestions never feed gram math; ServingGrams is the only weight source.
func AvailableUnits(foodName string) []string {
	name := strings.ToLower(foodName)
	for _, r := range unitRules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return append([]string(nil), r.units...)
			}
		}
	}
	return append([]string(nil), defaultUnits...)
}

// ResolveServing bundles both heuristics for one food name.
func ResolveServing(foodName string) (gramsPerServing float64, availableUnits []string) {
	return ServingGrams(foodName), AvailableUnits(foodName)
}
