package models

import (
	"time"

	"github.com/google/uuid"
)

type Referral struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code       string     `gorm:"type:varchar(12);not null;uniqueIndex"`
	ReferrerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReferredID *uuid.UUID `gorm:"type:uuid;index"`
	Status     string     `gorm:"type:varchar(10);not null;index"`
	CreatedAt  time.Time
	AppliedAt  *time.Time
	RewardedAt *time.Time
}
