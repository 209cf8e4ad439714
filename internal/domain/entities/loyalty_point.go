package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PointSource records why a loyalty point event was written
type PointSource string

const (
	PointSourceOrder           PointSource = "ORDER"
	PointSourceReferral        PointSource = "REFERRAL"
	PointSourceReferralWelcome PointSource = "REFERRAL_WELCOME"
	PointSourceRedemption      PointSource = "REDEMPTION"
)

// LoyaltyPoint is one grant (positive) or redemption (negative) event.
// Rows are immutable once written; the available balance is derived by
// summing unexpired rows. Redemption rows never expire, so a redemption
// reduces future availability permanently.
type LoyaltyPoint struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	Points    int         `json:"points"`
	Source    PointSource `json:"source"`
	ExpiresAt null.Time   `json:"expiresAt,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// GrantPointsInput represents input for granting loyalty points
type GrantPointsInput struct {
	UserID        string `json:"userId" binding:"required"`
	Points        int    `json:"points" binding:"required"`
	Source        string `json:"source"`
	ExpiresInDays *int   `json:"expiresInDays"`
}

// RedeemPointsInput represents input for redeeming loyalty points
type RedeemPointsInput struct {
	UserID         string `json:"userId" binding:"required"`
	PointsToRedeem int    `json:"pointsToRedeem" binding:"required"`
}
