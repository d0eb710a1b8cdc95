package utils

import (
	"testing"

	"backend/models"
)

func TestScaleNutritionNil(t *testing.T) {
	if got := ScaleNutrition(nil, 60); got != nil {
		t.Fatalf("ScaleNutrition(nil) = %v, want nil", got)
	}
}

func TestScaleNutritionPreservesNilFields(t *testing.T) {
	n := &models.Nutrition{Calories: Float64Ptr(100)}
	got := ScaleNutrition(n, 50)
	if got.Calories == nil || *got.Calories != 50 {
		t.Errorf("Calories = %v, want 50", got.Calories)
	}
	if got.Fiber != nil || got.Sugar != nil || got.Protein != nil || got.Water != nil {
		t.Errorf("unknown fields must stay nil, got %+v", got)
	}
}

// 60g of oatmeal at {68 kcal, 1.7 fiber, 0.3 sugar, 2.4 protein} per 100g.
func TestScaleNutritionRounding(t *testing.T) {
	n := &models.Nutrition{
		Calories: Float64Ptr(68),
		Fiber:    Float64Ptr(1.7),
		Sugar:    Float64Ptr(0.3),
		Protein:  Float64Ptr(2.4),
	}
	got := ScaleNutrition(n, 60)

	if *got.Calories != 41 {
		t.Errorf("Calories = %v, want 41", *got.Calories)
	}
	if *got.Fiber != 1.0 {
		t.Errorf("Fiber = %v, want 1.0", *got.Fiber)
	}
	if *got.Sugar != 0.2 {
		t.Errorf("Sugar = %v, want 0.2", *got.Sugar)
	}
	if *got.Protein != 1.4 {
		t.Errorf("Protein = %v, want 1.4", *got.Protein)
	}
}

func TestScaleNutritionDoesNotMutateInput(t *testing.T) {
	n := &models.Nutrition{Calories: Float64Ptr(68), Fiber: Float64Ptr(1.7)}
	_ = ScaleNutrition(n, 60)
	if *n.Calories != 68 || *n.Fiber != 1.7 {
		t.Errorf("input mutated: %+v", n)
	}
}

func TestSumFoodTagsEmpty(t *testing.T) {
	got := SumFoodTags(nil)
	if got != (models.DailyTotals{}) {
		t.Errorf("SumFoodTags(nil) = %+v, want zero totals", got)
	}
}

func TestSumFoodTagsScalesEachTagFirst(t *testing.T) {
	tags := []models.FoodTag{
		{
			Name: "oatmeal", Servings: 2, GramsPerServing: 30,
			Nutrition: &models.Nutrition{
				Calories: Float64Ptr(68),
				Fiber:    Float64Ptr(1.7),
				Sugar:    Float64Ptr(0.3),
				Protein:  Float64Ptr(2.4),
			},
		},
		{
			Name: "banana", Servings: 1, GramsPerServing: 120,
			Nutrition: &models.Nutrition{
				Calories: Float64Ptr(89),
				Fiber:    Float64Ptr(2.6),
				Sugar:    Float64Ptr(12.2),
				Protein:  Float64Ptr(1.1),
			},
		},
		{Name: "mystery snack", Servings: 1, GramsPerServing: 100}, // no data, contributes zero
	}

	got := SumFoodTags(tags)

	// oatmeal 60g: {41, 1.0, 0.2, 1.4}; banana 120g: {107, 3.1, 14.6, 1.3}
	want := models.DailyTotals{Calories: 148, Fiber: 4.1, Sugar: 14.8, Protein: 2.7}
	if got != want {
		t.Errorf("SumFoodTags = %+v, want %+v", got, want)
	}
}

func TestSumFoodTagsOrderIndependent(t *testing.T) {
	a := models.FoodTag{Name: "a", Servings: 1, GramsPerServing: 80,
		Nutrition: &models.Nutrition{Fiber: Float64Ptr(2.3)}}
	b := models.FoodTag{Name: "b", Servings: 3, GramsPerServing: 50,
		Nutrition: &models.Nutrition{Fiber: Float64Ptr(1.1)}}

	forward := SumFoodTags([]models.FoodTag{a, b})
	reversed := SumFoodTags([]models.FoodTag{b, a})
	if forward != reversed {
		t.Errorf("ordering changed totals: %+v vs %+v", forward, reversed)
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     float64
	}{
		{1.25, 1, 1.3},
		{1.24, 1, 1.2},
		{40.8, 0, 41},
		{-1.25, 1, -1.3},
	}
	for _, tt := range tests {
		if got := RoundTo(tt.v, tt.decimals); got != tt.want {
			t.Errorf("RoundTo(%v, %d) = %v, want %v", tt.v, tt.decimals, got, tt.want)
		}
	}
}
