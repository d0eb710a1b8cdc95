package services

import (
	"strings"
	"testing"
	"time"

	"backend/models"
	"backend/utils"
)

func intPtr(v int) *int { return &v }

func TestBuildDailyLogMissingFields(t *testing.T) {
	svc := NewLogService(nil)

	tests := []struct {
		name  string
		draft DailyLogDraft
		want  []string
	}{
		{
			"missing stool type",
			DailyLogDraft{ChildID: 1, Hydration: models.HydrationNormal},
			[]string{"stoolType"},
		},
		{
			"missing hydration",
			DailyLogDraft{ChildID: 1, StoolType: intPtr(4)},
			[]string{"hydration"},
		},
		{
			"missing both reported in one pass",
			DailyLogDraft{ChildID: 1},
			[]string{"stoolType", "hydration"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BuildDailyLog(tt.draft)
			mre := utils.AsMissingRequiredField(err)
			if mre == nil {
				t.Fatalf("err = %v, want MissingRequiredFieldError", err)
			}
			if len(mre.Fields) != len(tt.want) {
				t.Fatalf("Fields = %v, want %v", mre.Fields, tt.want)
			}
			for i, f := range tt.want {
				if mre.Fields[i] != f {
					t.Errorf("Fields[%d] = %q, want %q", i, mre.Fields[i], f)
				}
			}
		})
	}
}

func TestBuildDailyLogValidation(t *testing.T) {
	svc := NewLogService(nil)

	base := func() DailyLogDraft {
		return DailyLogDraft{ChildID: 1, StoolType: intPtr(4), Hydration: models.HydrationNormal}
	}

	t.Run("stool type out of range", func(t *testing.T) {
		d := base()
		d.StoolType = intPtr(8)
		if _, err := svc.BuildDailyLog(d); err == nil {
			t.Error("stoolType 8 should be rejected")
		}
	})

	t.Run("unknown hydration label", func(t *testing.T) {
		d := base()
		d.Hydration = "Soggy"
		if _, err := svc.BuildDailyLog(d); err == nil {
			t.Error("unknown hydration label should be rejected")
		}
	})

	t.Run("zero servings", func(t *testing.T) {
		d := base()
		d.Foods = []FoodTagInput{{Name: "banana", Servings: 0}}
		if _, err := svc.BuildDailyLog(d); err == nil {
			t.Error("zero servings should be rejected")
		}
	})

	t.Run("bad log date", func(t *testing.T) {
		d := base()
		d.LogDate = "29/08/2026"
		if _, err := svc.BuildDailyLog(d); err == nil {
			t.Error("non-ISO date should be rejected")
		}
	})
}

func TestBuildDailyLogDefaults(t *testing.T) {
	svc := NewLogService(nil)

	entry, err := svc.BuildDailyLog(DailyLogDraft{
		ChildID:   1,
		StoolType: intPtr(4),
		Hydration: models.HydrationGood,
		Foods:     []FoodTagInput{{Name: "banana", Servings: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if entry.LogDate != time.Now().UTC().Format("2006-01-02") {
		t.Errorf("LogDate = %q, want today's UTC date", entry.LogDate)
	}

	food := entry.Foods[0]
	if food.GramsEst != 120 {
		t.Errorf("GramsEst = %v, want 120 from the banana serving rule", food.GramsEst)
	}
	if food.Unit != "serving" {
		t.Errorf("Unit = %q, want default \"serving\"", food.Unit)
	}
	if food.TagID == "" {
		t.Error("TagID should be generated")
	}
	if food.Calories != nil {
		t.Error("no nutrition submitted, snapshot must stay nil")
	}
}

func TestBuildDailyLogSnapshotIsBakedAtSubmission(t *testing.T) {
	svc := NewLogService(nil)

	nutrition := &models.Nutrition{
		Calories: utils.Float64Ptr(68),
		Fiber:    utils.Float64Ptr(1.7),
	}
	entry, err := svc.BuildDailyLog(DailyLogDraft{
		ChildID:   1,
		LogDate:   "2026-08-28",
		StoolType: intPtr(4),
		Hydration: models.HydrationNormal,
		Foods: []FoodTagInput{{
			Name:      "oatmeal",
			Servings:  2,
			Unit:      "g",
			Nutrition: nutrition,
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	food := entry.Foods[0]
	if food.GramsEst != 60 {
		t.Fatalf("GramsEst = %v, want 60 (2 x 30g oatmeal servings)", food.GramsEst)
	}
	if *food.Calories != 41 || *food.Fiber != 1.0 {
		t.Errorf("snapshot = {%v, %v}, want {41, 1.0}", *food.Calories, *food.Fiber)
	}

	// Mutating the submitted reference afterwards must not reach the
	// stored snapshot.
	*nutrition.Calories = 999
	if *food.Calories != 41 {
		t.Error("snapshot shares memory with the submitted nutrition")
	}
}

func TestDraftTotals(t *testing.T) {
	svc := NewLogService(nil)

	foods := []FoodTagInput{
		{
			Name: "oatmeal", Servings: 2,
			Nutrition: &models.Nutrition{
				Calories: utils.Float64Ptr(68),
				Fiber:    utils.Float64Ptr(1.7),
				Sugar:    utils.Float64Ptr(0.3),
				Protein:  utils.Float64Ptr(2.4),
			},
		},
		{Name: "mystery snack", Servings: 1}, // no nutrition, counts zero
	}

	got := svc.DraftTotals(foods)
	want := models.DailyTotals{Calories: 41, Fiber: 1.0, Sugar: 0.2, Protein: 1.4}
	if got != want {
		t.Errorf("DraftTotals = %+v, want %+v", got, want)
	}

	if empty := svc.DraftTotals(nil); empty != (models.DailyTotals{}) {
		t.Errorf("DraftTotals(nil) = %+v, want zero totals", empty)
	}
}

func TestSevereSignal(t *testing.T) {
	mk := func(stoolType, freq int) models.DailyLog {
		return models.DailyLog{StoolType: stoolType, StoolFrequency: freq}
	}

	tests := []struct {
		name      string
		latest    models.DailyLog
		previous  models.DailyLog
		wantAlert bool
		wantPart  string
	}{
		{"two loose days", mk(6, 3), mk(7, 4), true, "loose stools"},
		{"one loose day only", mk(6, 3), mk(4, 2), false, ""},
		{"two days without movement", mk(4, 0), mk(4, 0), true, "no bowel movement"},
		{"single quiet day", mk(4, 0), mk(4, 1), false, ""},
		{"normal days", mk(4, 2), mk(3, 2), false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := severeSignal(tt.latest, tt.previous, "Mia")
			if (msg != "") != tt.wantAlert {
				t.Fatalf("severeSignal = %q, wantAlert=%v", msg, tt.wantAlert)
			}
			if tt.wantAlert && !strings.Contains(msg, tt.wantPart) {
				t.Errorf("msg = %q, want it to mention %q", msg, tt.wantPart)
			}
		})
	}
}
