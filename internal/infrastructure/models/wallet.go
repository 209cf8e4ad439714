package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type WalletTransaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WalletID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type      string          `gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Source    string          `gorm:"type:varchar(30);not null;index"`
	CreatedAt time.Time

	// Relations
	Wallet Wallet `gorm:"foreignKey:WalletID;references:ID"`
}
