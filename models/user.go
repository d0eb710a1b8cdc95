package models

import (
	"gorm.io/gorm"
)

// User is a parent account.
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	FullName string
}
