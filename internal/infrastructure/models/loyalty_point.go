package models

import (
	"time"

	"github.com/google/uuid"
)

type LoyaltyPoint struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Points    int        `gorm:"not null"` // positive = grant, negative = redemption
	Source    string     `gorm:"type:varchar(30);not null;index"`
	ExpiresAt *time.Time `gorm:"index"`
	CreatedAt time.Time
}
