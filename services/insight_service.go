package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"backend/models"
	"backend/utils"
)

// InsightService derives deterministic summaries, trend scores, and feeding
// recommendations from stored logs. Nothing here calls a model; output is
// reproducible from the database alone.
type InsightService struct {
	db *gorm.DB
}

func NewInsightService(db *gorm.DB) *InsightService {
	return &InsightService{db: db}
}

// NutritionTotals accumulates stored food snapshots; nil nutrient values
// count as zero.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Protein  float64 `json:"protein"`
	Water    float64 `json:"water"`
}

func (t *NutritionTotals) add(f models.DailyLogFood) {
	t.Calories += deref(f.Calories)
	t.Fiber += deref(f.Fiber)
	t.Sugar += deref(f.Sugar)
	t.Protein += deref(f.Protein)
	t.Water += deref(f.Water)
}

func (t NutritionTotals) rounded() NutritionTotals {
	return NutritionTotals{
		Calories: utils.RoundTo(t.Calories, 1),
		Fiber:    utils.RoundTo(t.Fiber, 1),
		Sugar:    utils.RoundTo(t.Sugar, 1),
		Protein:  utils.RoundTo(t.Protein, 1),
		Water:    utils.RoundTo(t.Water, 1),
	}
}

type Summary struct {
	Summary         string          `json:"summary"`
	NutritionTotals NutritionTotals `json:"nutritionTotals"`
	RecentLogsCount int             `json:"recentLogsCount"`
}

// Summary condenses the last seven logs into one sentence plus nutrient
// totals from the stored snapshots.
func (s *InsightService) Summary(childID uint) (Summary, error) {
	var logs []models.DailyLog
	if err := s.db.Preload("Foods").
		Where("child_id = ?", childID).
		Order("created_at desc").
		Limit(7).
		Find(&logs).Error; err != nil {
		return Summary{}, fmt.Errorf("load recent logs: %w", err)
	}

	if len(logs) == 0 {
		return Summary{
			Summary: "No logs yet. Add a daily log to start personalized tracking insights.",
		}, nil
	}

	var totals NutritionTotals
	for _, l := range logs {
		for _, f := range l.Foods {
			totals.add(f)
		}
	}

	latest := logs[0]
	stoolText := "needs attention"
	if latest.StoolType >= 3 && latest.StoolType <= 5 {
		stoolText = "within expected range"
	}
	hydrationText := strings.ToLower(latest.Hydration)
	if hydrationText == "" {
		hydrationText = "unknown"
	}

	return Summary{
		Summary: fmt.Sprintf(
			"From the last %d log(s), digestion trend is %s. Hydration is %s, with total fiber %.1fg and protein %.1fg recorded.",
			len(logs), stoolText, hydrationText, totals.Fiber, totals.Protein),
		NutritionTotals: totals.rounded(),
		RecentLogsCount: len(logs),
	}, nil
}

type DailyInsight struct {
	ChildID           uint     `json:"childId"`
	CurrentLogDate    string   `json:"currentLogDate,omitempty"`
	ComparedLogsCount int      `json:"comparedLogsCount"`
	Status            string   `json:"status"` // good|watch|caution
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Suggestions       []string `json:"suggestions"`
}

// DailyInsight compares the latest two logs for a child.
func (s *InsightService) DailyInsight(childID uint) (DailyInsight, error) {
	var logs []models.DailyLog
	if err := s.db.Where("child_id = ?", childID).
		Order("created_at desc").
		Limit(2).
		Find(&logs).Error; err != nil {
		return DailyInsight{}, fmt.Errorf("load logs for insight: %w", err)
	}

	switch len(logs) {
	case 0:
		return DailyInsight{
			ChildID:     childID,
			Status:      "watch",
			Title:       "No logs yet",
			Description: "Add a daily log so we can start trend tracking.",
			Suggestions: []string{"Log stool type, hydration, and meals once daily."},
		}, nil
	case 1:
		return DailyInsight{
			ChildID:        childID,
			CurrentLogDate: logs[0].LogDate,
			Status:         "watch",
			Title:          "Need one more log for comparison",
			Description:    "We saved today's entry. Add another day to compare trends.",
			Suggestions:    []string{"Continue logging at the same time each day."},
		}, nil
	}

	insight := EvaluateInsight(logs[0], logs[1])
	insight.ChildID = childID
	return insight, nil
}

// EvaluateInsight scores the latest log against the previous one. Stool in
// the 3..5 band and adequate hydration each earn a point, poor values cost
// one, and a stable stool frequency earns one more.
func EvaluateInsight(latest, previous models.DailyLog) DailyInsight {
	score := 0

	if latest.StoolType >= 3 && latest.StoolType <= 5 {
		score++
	} else {
		score--
	}

	switch strings.ToLower(latest.Hydration) {
	case "normal", "good":
		score++
	case "low":
		score--
	}

	if abs(latest.StoolFrequency-previous.StoolFrequency) <= 1 {
		score++
	}

	insight := DailyInsight{
		CurrentLogDate:    latest.LogDate,
		ComparedLogsCount: 1,
	}
	switch {
	case score >= 2:
		insight.Status = "good"
		insight.Title = "Digestion trend looks stable"
		insight.Description = "Today's stool and hydration pattern look consistent with a healthy trend."
		insight.Suggestions = []string{
			"Keep meal timing and hydration consistent.",
			"Continue offering fiber-rich fruits and vegetables.",
		}
	case score >= 0:
		insight.Status = "watch"
		insight.Title = "Mild variation detected"
		insight.Description = "There are small shifts from the previous log. Keep monitoring tomorrow's pattern."
		insight.Suggestions = []string{
			"Offer water more frequently through the day.",
			"Keep meals simple and avoid multiple new foods at once.",
		}
	default:
		insight.Status = "caution"
		insight.Title = "Digestive pattern needs attention"
		insight.Description = "Compared with the previous log, stool and hydration suggest increased digestive stress."
		insight.Suggestions = []string{
			"Prioritize hydration and soft, gentle meals.",
			"If severe symptoms continue, contact your pediatrician.",
		}
	}
	return insight
}

type FeedingGuidance struct {
	RecommendedType string `json:"recommendedType"`
	Message         string `json:"message"`
}

// GuidanceFor maps the latest stool type and hydration to a feeding focus.
// Hard stools beat loose stools beat low hydration when several apply.
func GuidanceFor(stoolType *int, hydration string) FeedingGuidance {
	if stoolType != nil && *stoolType <= 2 {
		return FeedingGuidance{
			RecommendedType: "hard",
			Message:         "Focus on soft, high-fiber foods and extra fluids today.",
		}
	}
	if stoolType != nil && *stoolType >= 6 {
		return FeedingGuidance{
			RecommendedType: "solid",
			Message:         "Choose gentle binding foods and keep hydration steady.",
		}
	}
	if strings.EqualFold(hydration, models.HydrationLow) {
		return FeedingGuidance{
			RecommendedType: "normal",
			Message:         "Add more fluid-rich foods and offer water frequently.",
		}
	}
	return FeedingGuidance{
		RecommendedType: "normal",
		Message:         "Maintain a balanced meal pattern based on age and recent tolerance.",
	}
}

type MealRecommendation struct {
	Name        string         `json:"name"`
	MealType    string         `json:"mealType"`
	Description string         `json:"description"`
	Texture     string         `json:"texture"`
	AgeRange    map[string]int `json:"ageRange"`
	Reason      string         `json:"reason"`
	Nutrients   map[string]any `json:"nutrients"`
}

type RecommendationGroup struct {
	Category string           `json:"category"`
	Reason   string           `json:"reason"`
	Items    []map[string]any `json:"items"`
}

type Recommendations struct {
	Child               map[string]any        `json:"child"`
	Condition           map[string]any        `json:"condition"`
	FeedingGuidance     FeedingGuidance       `json:"feedingGuidance"`
	MealRecommendations []MealRecommendation  `json:"mealRecommendations"`
	Recommendations     []RecommendationGroup `json:"recommendations"`
}

// Recommendations assembles age-matched catalog meals plus feeding guidance
// from the latest log. When no meal fits the age window, the youngest eight
// catalog entries stand in so the parent always sees something.
func (s *InsightService) Recommendations(child models.Child) (Recommendations, error) {
	var latest models.DailyLog
	var latestPtr *models.DailyLog
	err := s.db.Where("child_id = ?", child.ID).
		Order("created_at desc").
		First(&latest).Error
	if err == nil {
		latestPtr = &latest
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Recommendations{}, fmt.Errorf("load latest log: %w", err)
	}

	var meals []models.MealCatalog
	if err := s.db.Where("min_age_months <= ? AND max_age_months >= ?", child.AgeMonths, child.AgeMonths).
		Order("meal_type asc, id asc").
		Find(&meals).Error; err != nil {
		return Recommendations{}, fmt.Errorf("load meal catalog: %w", err)
	}
	if len(meals) == 0 {
		if err := s.db.Order("min_age_months asc, meal_type asc, id asc").
			Limit(8).
			Find(&meals).Error; err != nil {
			return Recommendations{}, fmt.Errorf("load meal catalog fallback: %w", err)
		}
	}

	reason := "Matched by age profile"
	if latestPtr != nil {
		reason = "Matched by age and current digestion pattern"
	}

	recs := make([]MealRecommendation, 0, len(meals))
	for _, m := range meals {
		recs = append(recs, MealRecommendation{
			Name:        m.Name,
			MealType:    m.MealType,
			Description: m.Description,
			Texture:     m.Texture,
			AgeRange:    map[string]int{"minMonths": m.MinAgeMonths, "maxMonths": m.MaxAgeMonths},
			Reason:      reason,
			Nutrients: map[string]any{
				"calories": m.Calories,
				"fiber":    m.Fiber,
				"sugar":    m.Sugar,
				"protein":  m.Protein,
			},
		})
	}

	grouped := map[string][]map[string]any{}
	var order []string
	for _, r := range recs {
		category := capitalize(r.MealType)
		if category == "" {
			category = "General"
		}
		if _, seen := grouped[category]; !seen {
			order = append(order, category)
		}
		grouped[category] = append(grouped[category], map[string]any{
			"name":      r.Name,
			"quantity":  nil,
			"unit":      nil,
			"nutrients": r.Nutrients,
		})
	}
	groups := make([]RecommendationGroup, 0, len(order))
	for _, category := range order {
		groups = append(groups, RecommendationGroup{
			Category: category,
			Reason:   "Age-appropriate meal options",
			Items:    grouped[category],
		})
	}

	condition := map[string]any{"stoolType": nil, "hydration": nil}
	var stoolPtr *int
	hydration := ""
	if latestPtr != nil {
		st := latestPtr.StoolType
		stoolPtr = &st
		hydration = latestPtr.Hydration
		condition["stoolType"] = latestPtr.StoolType
		condition["hydration"] = latestPtr.Hydration
	}

	return Recommendations{
		Child: map[string]any{
			"id":   child.ID,
			"name": child.Name,
			"age":  child.AgeMonths,
		},
		Condition:           condition,
		FeedingGuidance:     GuidanceFor(stoolPtr, hydration),
		MealRecommendations: recs,
		Recommendations:     groups,
	}, nil
}

type FiberFood struct {
	Name  string  `json:"name"`
	Fiber float64 `json:"fiber"`
}

// TopFiberFoods ranks catalog entries by fiber, keeping the highest value
// when the same name appears more than once.
func (s *InsightService) TopFiberFoods(limit int) ([]FiberFood, error) {
	var meals []models.MealCatalog
	if err := s.db.Where("fiber IS NOT NULL").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("load catalog for fiber ranking: %w", err)
	}

	best := map[string]FiberFood{}
	for _, m := range meals {
		if m.Name == "" || m.Fiber == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(m.Name))
		if cur, ok := best[key]; !ok || *m.Fiber > cur.Fiber {
			best[key] = FiberFood{Name: m.Name, Fiber: *m.Fiber}
		}
	}

	ranked := make([]FiberFood, 0, len(best))
	for _, f := range best {
		ranked = append(ranked, f)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Fiber > ranked[j].Fiber })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

var fiberRankingPatterns = []string{
	"most fiber",
	"highest fiber",
	"high fiber",
	"rich in fiber",
	"top fiber",
}

// IsFiberRankingQuestion detects questions that can be answered directly
// from the catalog instead of the model.
func IsFiberRankingQuestion(message string) bool {
	text := strings.ToLower(message)
	for _, p := range fiberRankingPatterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// FiberRankingReply formats the deterministic answer for a fiber question.
func FiberRankingReply(foods []FiberFood) string {
	if len(foods) == 0 {
		return "I couldn't find fiber data right now. Please try again in a moment."
	}
	parts := make([]string, 0, len(foods))
	for _, f := range foods {
		parts = append(parts, fmt.Sprintf("%s (%.1fg/100g)", f.Name, f.Fiber))
	}
	return fmt.Sprintf(
		"From our nutrition database, top high-fiber options are: %s. For babies, introduce fiber gradually with enough fluids to avoid constipation.",
		strings.Join(parts, ", "))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
