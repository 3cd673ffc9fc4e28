package models

import "time"

// User is the operator account for the JSON API. The system is
// single-operator; the first user is seeded from the environment.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
