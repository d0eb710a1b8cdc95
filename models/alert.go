package models

import "time"

// Alert is a digestion red-flag notification for a parent, e.g. watery
// stool on consecutive days.
type Alert struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Type      string `gorm:"size:30"` // "red_flag" | "info"
	Message   string `gorm:"type:text"`
	CreatedAt time.Time
}
