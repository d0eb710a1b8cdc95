package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"backend/models"
	"backend/utils"
)

// LogService validates, bakes, and stores daily logs. Nutrition snapshots
// are computed once at save time from the submitted per-100g values; they
// never change afterwards.
type LogService struct {
	db *gorm.DB
}

func NewLogService(db *gorm.DB) *LogService {
	return &LogService{db: db}
}

// FoodTagInput is one food as submitted by the client. Nutrition is per
// 100 g and may be nil when the lookup had no data.
type FoodTagInput struct {
	Name            string            `json:"name" binding:"required"`
	Servings        float64           `json:"servings"`
	GramsPerServing float64           `json:"gramsPerServing"`
	Unit            string            `json:"unit"`
	Nutrition       *models.Nutrition `json:"nutrition"`
}

// DailyLogDraft is the submission payload before validation.
type DailyLogDraft struct {
	ChildID        uint           `json:"childId" binding:"required"`
	LogDate        string         `json:"logDate"`
	StoolType      *int           `json:"stoolType"`
	StoolFrequency *int           `json:"stoolFrequency"`
	Hydration      string         `json:"hydration"`
	Foods          []FoodTagInput `json:"foods"`
}

// BuildDailyLog turns a draft into a persistable log. Every missing
// required field is reported in one pass so the parent fixes the form once.
func (s *LogService) BuildDailyLog(draft DailyLogDraft) (*models.DailyLog, error) {
	var missing []string
	if draft.StoolType == nil {
		missing = append(missing, "stoolType")
	}
	if draft.Hydration == "" {
		missing = append(missing, "hydration")
	}
	if len(missing) > 0 {
		return nil, &utils.MissingRequiredFieldError{Fields: missing}
	}

	if *draft.StoolType < 1 || *draft.StoolType > 7 {
		return nil, fmt.Errorf("stoolType must be between 1 and 7, got %d", *draft.StoolType)
	}
	switch draft.Hydration {
	case models.HydrationLow, models.HydrationNormal, models.HydrationGood:
	default:
		return nil, fmt.Errorf("hydration must be one of Low, Normal, Good, got %q", draft.Hydration)
	}

	logDate := draft.LogDate
	if logDate == "" {
		logDate = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", logDate); err != nil {
		return nil, fmt.Errorf("logDate must be YYYY-MM-DD: %w", err)
	}

	frequency := 0
	if draft.StoolFrequency != nil {
		if *draft.StoolFrequency < 0 {
			return nil, fmt.Errorf("stoolFrequency cannot be negative")
		}
		frequency = *draft.StoolFrequency
	}

	foods := make([]models.DailyLogFood, 0, len(draft.Foods))
	for _, f := range draft.Foods {
		if f.Name == "" {
			return nil, fmt.Errorf("food name is required")
		}
		if f.Servings <= 0 {
			return nil, fmt.Errorf("servings for %q must be greater than zero", f.Name)
		}
		gramsPerServing := f.GramsPerServing
		if gramsPerServing <= 0 {
			gramsPerServing = utils.ServingGrams(f.Name)
		}
		unit := f.Unit
		if unit == "" {
			unit = "serving"
		}
		gramsEst := f.Servings * gramsPerServing

		food := models.DailyLogFood{
			TagID:    uuid.NewString(),
			Name:     f.Name,
			Quantity: f.Servings,
			Unit:     unit,
			GramsEst: gramsEst,
		}
		if scaled := utils.ScaleNutrition(f.Nutrition, gramsEst); scaled != nil {
			food.Calories = scaled.Calories
			food.Fiber = scaled.Fiber
			food.Sugar = scaled.Sugar
			food.Protein = scaled.Protein
			food.Water = scaled.Water
		}
		foods = append(foods, food)
	}

	return &models.DailyLog{
		ChildID:        draft.ChildID,
		LogDate:        logDate,
		StoolType:      *draft.StoolType,
		StoolFrequency: frequency,
		Hydration:      draft.Hydration,
		Foods:          foods,
	}, nil
}

// SaveDailyLog validates ownership, persists the log, and raises a realtime
// alert when two consecutive logs show a severe signal.
func (s *LogService) SaveDailyLog(parentID uint, draft DailyLogDraft) (*models.DailyLog, error) {
	var child models.Child
	if err := s.db.Where("id = ? AND parent_id = ?", draft.ChildID, parentID).
		First(&child).Error; err != nil {
		return nil, fmt.Errorf("child not found for this user: %w", err)
	}

	entry, err := s.BuildDailyLog(draft)
	if err != nil {
		return nil, err
	}

	var previous models.DailyLog
	hasPrevious := s.db.Where("child_id = ?", draft.ChildID).
		Order("created_at desc").
		First(&previous).Error == nil

	if err := s.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("save daily log: %w", err)
	}

	if hasPrevious {
		if msg := severeSignal(*entry, previous, child.Name); msg != "" {
			EmitAlert(parentID, "red_flag", msg)
		}
	}
	return entry, nil
}

// DraftTotals aggregates the day's submitted foods into running nutrient
// sums, scaling each entry for its own consumed mass before summing.
func (s *LogService) DraftTotals(foods []FoodTagInput) models.DailyTotals {
	tags := make([]models.FoodTag, 0, len(foods))
	for _, f := range foods {
		gramsPerServing := f.GramsPerServing
		if gramsPerServing <= 0 {
			gramsPerServing = utils.ServingGrams(f.Name)
		}
		tags = append(tags, models.FoodTag{
			Name:            f.Name,
			Servings:        f.Servings,
			GramsPerServing: gramsPerServing,
			Nutrition:       f.Nutrition,
		})
	}
	return utils.SumFoodTags(tags)
}

// severeSignal reports a message when the same alarming pattern shows up in
// two consecutive logs. One bad day alone never alerts.
func severeSignal(latest, previous models.DailyLog, childName string) string {
	if latest.StoolType >= 6 && previous.StoolType >= 6 {
		return fmt.Sprintf("%s has had very loose stools for two days in a row. Keep fluids up and consider contacting your pediatrician.", childName)
	}
	if latest.StoolFrequency == 0 && previous.StoolFrequency == 0 {
		return fmt.Sprintf("%s has had no bowel movement for two days in a row. Offer fiber-rich foods and fluids, and contact your pediatrician if this continues.", childName)
	}
	return ""
}

// ListLogs returns a child's logs with food snapshots, newest first.
func (s *LogService) ListLogs(parentID, childID uint) ([]models.DailyLog, error) {
	var child models.Child
	if err := s.db.Where("id = ? AND parent_id = ?", childID, parentID).
		First(&child).Error; err != nil {
		return nil, fmt.Errorf("child not found for this user: %w", err)
	}

	var logs []models.DailyLog
	if err := s.db.Preload("Foods").
		Where("child_id = ?", childID).
		Order("created_at desc").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	return logs, nil
}
