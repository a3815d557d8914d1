package models

import (
	"time"
)

type Professor struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Department string    `json:"department"`
	University string    `json:"university"`
	UserID     *uint     `json:"user_id,omitempty" gorm:"uniqueIndex"` // nil for walk-in professors
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Reviews []Review `json:"reviews,omitempty"`
}
