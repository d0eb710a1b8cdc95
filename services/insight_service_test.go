package services

import (
	"strings"
	"testing"

	"backend/models"
)

func TestEvaluateInsight(t *testing.T) {
	mk := func(stoolType, freq int, hydration string) models.DailyLog {
		return models.DailyLog{
			LogDate:        "2026-08-28",
			StoolType:      stoolType,
			StoolFrequency: freq,
			Hydration:      hydration,
		}
	}

	tests := []struct {
		name       string
		latest     models.DailyLog
		previous   models.DailyLog
		wantStatus string
	}{
		{"all healthy", mk(4, 2, models.HydrationGood), mk(4, 2, models.HydrationGood), "good"},
		{"stable frequency carries a watch day", mk(2, 2, ""), mk(4, 2, ""), "watch"},
		{"loose stool with good hydration", mk(6, 3, models.HydrationNormal), mk(4, 2, ""), "watch"},
		{"everything off", mk(7, 6, models.HydrationLow), mk(4, 2, ""), "caution"},
		{"hard stool low hydration stable freq", mk(1, 1, models.HydrationLow), mk(1, 1, ""), "caution"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateInsight(tt.latest, tt.previous)
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.ComparedLogsCount != 1 {
				t.Errorf("ComparedLogsCount = %d, want 1", got.ComparedLogsCount)
			}
			if got.Title == "" || len(got.Suggestions) == 0 {
				t.Error("insight must carry a title and suggestions")
			}
		})
	}
}

func TestGuidanceFor(t *testing.T) {
	tests := []struct {
		name      string
		stoolType *int
		hydration string
		wantType  string
		wantPart  string
	}{
		{"hard stools", intPtr(2), models.HydrationGood, "hard", "high-fiber"},
		{"loose stools", intPtr(6), models.HydrationGood, "solid", "binding"},
		{"hard beats low hydration", intPtr(1), models.HydrationLow, "hard", "high-fiber"},
		{"low hydration alone", intPtr(4), models.HydrationLow, "normal", "fluid-rich"},
		{"nothing notable", intPtr(4), models.HydrationNormal, "normal", "balanced"},
		{"no log at all", nil, "", "normal", "balanced"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GuidanceFor(tt.stoolType, tt.hydration)
			if got.RecommendedType != tt.wantType {
				t.Errorf("RecommendedType = %q, want %q", got.RecommendedType, tt.wantType)
			}
			if !strings.Contains(got.Message, tt.wantPart) {
				t.Errorf("Message = %q, want it to mention %q", got.Message, tt.wantPart)
			}
		})
	}
}

func TestIsFiberRankingQuestion(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Which foods have the most fiber?", true},
		{"what is HIGH FIBER for a baby", true},
		{"foods rich in fiber please", true},
		{"top fiber options?", true},
		{"is banana good for digestion", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsFiberRankingQuestion(tt.msg); got != tt.want {
			t.Errorf("IsFiberRankingQuestion(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

func TestFiberRankingReply(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		got := FiberRankingReply(nil)
		if !strings.Contains(got, "couldn't find fiber data") {
			t.Errorf("reply = %q", got)
		}
	})

	t.Run("formats ranked list", func(t *testing.T) {
		got := FiberRankingReply([]FiberFood{
			{Name: "Lentil mash", Fiber: 7.9},
			{Name: "Pear", Fiber: 3.1},
		})
		if !strings.Contains(got, "Lentil mash (7.9g/100g), Pear (3.1g/100g)") {
			t.Errorf("reply = %q", got)
		}
		if !strings.Contains(got, "introduce fiber gradually") {
			t.Errorf("reply = %q, missing the caution sentence", got)
		}
	})
}

func TestNutritionTotalsRounding(t *testing.T) {
	var totals NutritionTotals
	totals.add(models.DailyLogFood{Fiber: f64(1.04), Protein: f64(2.0)})
	totals.add(models.DailyLogFood{Fiber: f64(1.02), Calories: f64(100.0)})
	totals.add(models.DailyLogFood{}) // all-nil snapshot contributes zero

	got := totals.rounded()
	if got.Fiber != 2.1 {
		t.Errorf("Fiber = %v, want 2.1", got.Fiber)
	}
	if got.Calories != 100 || got.Protein != 2 {
		t.Errorf("totals = %+v", got)
	}
}

func f64(v float64) *float64 { return &v }
