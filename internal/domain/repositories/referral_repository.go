package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"wash-loop.backend/internal/domain/entities"
)

// ReferralRepository defines referral data operations
type ReferralRepository interface {
	// Create inserts a new referral. Returns ErrAlreadyExists when the
	// generated code collides with an existing one.
	Create(ctx context.Context, referral *entities.Referral) error
	// GetByID returns the referral or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Referral, error)
	// GetByCode returns the referral or ErrNotFound.
	GetByCode(ctx context.Context, code string) (*entities.Referral, error)
	// MarkApplied sets referred_id and advances CREATED -> APPLIED. The
	// update is conditional on referred_id being unset; a lost race or a
	// second apply returns ErrAlreadyApplied.
	MarkApplied(ctx context.Context, id, referredID uuid.UUID, at time.Time) error
	// MarkRewarded advances APPLIED -> REWARDED. The update is conditional
	// on the current status, so exactly one caller wins; losers get
	// ErrAlreadyRewarded, and a referral still in CREATED gets
	// ErrNotApplied.
	MarkRewarded(ctx context.Context, id uuid.UUID, at time.Time) error
}
