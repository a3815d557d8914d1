package models

import (
	"time"
)

// Course is a derived cache of course codes seen in reviews. The listing
// endpoints compute from review rows; this table and the redis index only
// accelerate autocomplete and are rebuilt idempotently.
type Course struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}
