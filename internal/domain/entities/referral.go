package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ReferralStatus is the referral lifecycle state. It only moves forward:
// CREATED -> APPLIED -> REWARDED.
type ReferralStatus string

const (
	ReferralStatusCreated  ReferralStatus = "CREATED"
	ReferralStatusApplied  ReferralStatus = "APPLIED"
	ReferralStatusRewarded ReferralStatus = "REWARDED"
)

// Referral tracks one referral relationship. Code is globally unique and
// immutable; ReferredID is set at most once; REWARDED is terminal.
type Referral struct {
	ID         uuid.UUID      `json:"id"`
	Code       string         `json:"code"`
	ReferrerID uuid.UUID      `json:"referrerId"`
	ReferredID *uuid.UUID     `json:"referredId,omitempty"`
	Status     ReferralStatus `json:"status"`
	CreatedAt  time.Time      `json:"createdAt"`
	AppliedAt  null.Time      `json:"appliedAt,omitempty"`
	RewardedAt null.Time      `json:"rewardedAt,omitempty"`
}

// CreateReferralInput represents input for issuing a referral code
type CreateReferralInput struct {
	ReferrerID string `json:"referrerId" binding:"required"`
}

// ApplyReferralInput represents input for registering with a referral code
type ApplyReferralInput struct {
	Code           string `json:"code" binding:"required"`
	ReferredUserID string `json:"referredUserId" binding:"required"`
}

// CreditReferralInput represents input for paying out a referral.
// Amounts default to the configured bonuses when omitted.
type CreditReferralInput struct {
	ReferrerAmount *string `json:"referrerAmount"`
	ReferredAmount *string `json:"referredAmount"`
}
