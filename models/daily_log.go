package models

import (
	"gorm.io/gorm"
)

// Hydration labels a parent can pick for the day.
const (
	HydrationLow    = "Low"
	HydrationNormal = "Normal"
	HydrationGood   = "Good"
)

// DailyLog is one day's recorded digestion/feeding observations for one
// child. A new save is a new log, never an edit of an old one.
type DailyLog struct {
	gorm.Model
	ChildID        uint   `gorm:"index;not null"`
	LogDate        string `gorm:"type:date;not null"` // calendar day, not a timestamp
	StoolType      int    // Bristol scale 1..7
	StoolFrequency int
	Hydration      string `gorm:"size:10"`
	Foods          []DailyLogFood
}

// DailyLogFood stores the nutrition snapshot for one logged food, scaled to
// the estimated consumed mass at submission time. Later changes to the food
// database never alter a saved log.
type DailyLogFood struct {
	gorm.Model
	DailyLogID uint
	TagID      string `gorm:"type:varchar(64)"`
	Name       string `gorm:"not null"`
	Quantity   float64 // servings
	Unit       string
	GramsEst   float64
	Calories   *float64
	Fiber      *float64
	Sugar      *float64
	Protein    *float64
	Water      *float64
}

// Snapshot returns the stored scaled nutrition, or nil when the food was
// logged without nutrient data.
func (f *DailyLogFood) Snapshot() *Nutrition {
	if f.Calories == nil && f.Fiber == nil && f.Sugar == nil && f.Protein == nil && f.Water == nil {
		return nil
	}
	return &Nutrition{
		Calories: f.Calories,
		Fiber:    f.Fiber,
		Sugar:    f.Sugar,
		Protein:  f.Protein,
		Water:    f.Water,
	}
}
