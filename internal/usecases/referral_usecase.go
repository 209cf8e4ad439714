package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"wash-loop.backend/internal/domain/entities"
	domainerrors "wash-loop.backend/internal/domain/errors"
	"wash-loop.backend/internal/domain/repositories"
)

const (
	referralCodePrefix = "WL-"
	referralCodeLength = 4
	codeAttempts       = 5
)

// ReferralUsecase issues referral codes, records their application by new
// users and performs the one-time reward payout to both parties.
type ReferralUsecase struct {
	referralRepo repositories.ReferralRepository
	wallet       *WalletUsecase
	loyalty      *LoyaltyUsecase
	uow          repositories.UnitOfWork

	referrerBonus    decimal.Decimal
	referredBonus    decimal.Decimal
	pointsExpiryDays int
}

// NewReferralUsecase creates a new referral usecase
func NewReferralUsecase(
	referralRepo repositories.ReferralRepository,
	wallet *WalletUsecase,
	loyalty *LoyaltyUsecase,
	uow repositories.UnitOfWork,
	referrerBonus, referredBonus decimal.Decimal,
	pointsExpiryDays int,
) *ReferralUsecase {
	return &ReferralUsecase{
		referralRepo:     referralRepo,
		wallet:           wallet,
		loyalty:          loyalty,
		uow:              uow,
		referrerBonus:    referrerBonus,
		referredBonus:    referredBonus,
		pointsExpiryDays: pointsExpiryDays,
	}
}

// Create issues a new referral code for the referrer, retrying on the rare
// code collision. The store's unique index is the source of truth.
func (u *ReferralUsecase) Create(ctx context.Context, referrerID uuid.UUID) (*entities.Referral, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		referral := &entities.Referral{
			Code:       newReferralCode(),
			ReferrerID: referrerID,
		}
		err := u.referralRepo.Create(ctx, referral)
		if err == nil {
			return referral, nil
		}
		if !errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("referral code space exhausted after %d attempts", codeAttempts)
}

// Apply registers a new user against a referral code and advances the
// referral to APPLIED. The claim is a conditional update, so a code can be
// applied exactly once even under concurrent attempts.
func (u *ReferralUsecase) Apply(ctx context.Context, code string, referredUserID uuid.UUID) (*entities.Referral, error) {
	referral, err := u.referralRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if referral.ReferrerID == referredUserID {
		return nil, domainerrors.ErrSelfReferral
	}
	if referral.ReferredID != nil {
		return nil, domainerrors.ErrAlreadyApplied
	}

	if err := u.referralRepo.MarkApplied(ctx, referral.ID, referredUserID, time.Now()); err != nil {
		return nil, err
	}
	return u.referralRepo.GetByID(ctx, referral.ID)
}

// Credit pays out a referral: the referrer receives a wallet credit plus
// matching loyalty points, and the referred user (when registered) receives
// the welcome equivalents. Zero amounts fall back to the configured
// bonuses. The status transition and all four writes commit atomically, and
// the conditional APPLIED -> REWARDED update makes the payout happen at
// most once.
func (u *ReferralUsecase) Credit(ctx context.Context, referralID uuid.UUID, referrerAmount, referredAmount decimal.Decimal) (*entities.Referral, error) {
	if referrerAmount.IsZero() {
		referrerAmount = u.referrerBonus
	}
	if referredAmount.IsZero() {
		referredAmount = u.referredBonus
	}
	if referrerAmount.IsNegative() || referredAmount.IsNegative() {
		return nil, domainerrors.ErrInvalidAmount
	}

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.referralRepo.MarkRewarded(ctx, referralID, time.Now()); err != nil {
			return err
		}

		// Read after the claim: an apply that committed just before the
		// transition must be included in the payout.
		referral, err := u.referralRepo.GetByID(ctx, referralID)
		if err != nil {
			return err
		}

		if err := u.payout(ctx, referral.ReferrerID, referrerAmount, entities.SourceReferralReward, entities.PointSourceReferral); err != nil {
			return err
		}
		if referral.ReferredID != nil {
			if err := u.payout(ctx, *referral.ReferredID, referredAmount, entities.SourceReferralWelcome, entities.PointSourceReferralWelcome); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u.referralRepo.GetByID(ctx, referralID)
}

// payout credits one party's wallet and grants floor(amount) points with
// the configured expiry.
func (u *ReferralUsecase) payout(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, txSource entities.TransactionSource, pointSource entities.PointSource) error {
	if _, err := u.wallet.Credit(ctx, userID, amount, txSource); err != nil {
		return err
	}
	if points := int(amount.Floor().IntPart()); points > 0 {
		expiry := u.pointsExpiryDays
		if _, err := u.loyalty.Grant(ctx, userID, points, pointSource, &expiry); err != nil {
			return err
		}
	}
	return nil
}

// newReferralCode derives a short human-readable code from a random UUID,
// e.g. WL-9F3A.
func newReferralCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return referralCodePrefix + raw[:referralCodeLength]
}
