package models

import (
	"gorm.io/gorm"
)

// MealCatalog is an age-banded meal suggestion used for deterministic
// recommendations and catalog lookups (e.g. fiber ranking). Nutrients are
// per meal; nil means unknown.
type MealCatalog struct {
	gorm.Model
	Name         string `gorm:"not null"`
	MealType     string `gorm:"size:30"` // breakfast|lunch|dinner|snack
	Description  string
	Texture      string `gorm:"size:30"`
	MinAgeMonths int
	MaxAgeMonths int
	Calories     *float64
	Fiber        *float64
	Sugar        *float64
	Protein      *float64
}
