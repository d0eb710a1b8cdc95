package models

import (
	"strings"

	"gorm.io/gorm"
)

// Child is one tracked baby profile belonging to a parent account.
type Child struct {
	gorm.Model
	ParentID  uint   `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	AgeMonths int
	WeightKg  float64
	Allergies string // comma-separated, e.g. "peanut,egg"
}

// AllergyList splits the stored allergy string into trimmed entries.
func (c *Child) AllergyList() []string {
	if strings.TrimSpace(c.Allergies) == "" {
		return nil
	}
	parts := strings.Split(c.Allergies, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
