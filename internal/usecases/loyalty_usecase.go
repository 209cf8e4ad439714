package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"wash-loop.backend/internal/domain/entities"
	domainerrors "wash-loop.backend/internal/domain/errors"
	"wash-loop.backend/internal/domain/repositories"
)

// LoyaltyUsecase grants and redeems loyalty points. Points are recorded as
// signed immutable events; redemption converts points to wallet currency
// through the wallet ledger.
type LoyaltyUsecase struct {
	pointRepo  repositories.LoyaltyPointRepository
	walletRepo repositories.WalletRepository
	wallet     *WalletUsecase
	uow        repositories.UnitOfWork

	// Currency units credited per redeemed point. 1 keeps compatibility
	// with the historical behavior.
	redemptionRate int64
}

// NewLoyaltyUsecase creates a new loyalty usecase
func NewLoyaltyUsecase(
	pointRepo repositories.LoyaltyPointRepository,
	walletRepo repositories.WalletRepository,
	wallet *WalletUsecase,
	uow repositories.UnitOfWork,
	redemptionRate int,
) *LoyaltyUsecase {
	if redemptionRate <= 0 {
		redemptionRate = 1
	}
	return &LoyaltyUsecase{
		pointRepo:      pointRepo,
		walletRepo:     walletRepo,
		wallet:         wallet,
		uow:            uow,
		redemptionRate: int64(redemptionRate),
	}
}

// Grant issues points to a user. When expiresInDays is nil the grant never
// expires.
func (u *LoyaltyUsecase) Grant(ctx context.Context, userID uuid.UUID, points int, source entities.PointSource, expiresInDays *int) (*entities.LoyaltyPoint, error) {
	if points <= 0 {
		return nil, domainerrors.ErrInvalidPoints
	}
	if source == "" {
		source = entities.PointSourceOrder
	}

	point := &entities.LoyaltyPoint{
		UserID: userID,
		Points: points,
		Source: source,
	}
	if expiresInDays != nil {
		point.ExpiresAt.SetValid(time.Now().AddDate(0, 0, *expiresInDays))
	}

	if err := u.pointRepo.Create(ctx, point); err != nil {
		return nil, err
	}
	return point, nil
}

// AvailableBalance returns the redeemable point total as of the given
// instant (zero time means now).
func (u *LoyaltyUsecase) AvailableBalance(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return u.pointRepo.AvailableBalance(ctx, userID, asOf)
}

// Redeem converts points into wallet currency. The availability check, the
// negative point event and the wallet credit run in one transaction holding
// the user's wallet row, so concurrent redemptions cannot overdraw.
func (u *LoyaltyUsecase) Redeem(ctx context.Context, userID uuid.UUID, pointsToRedeem int) (*entities.LoyaltyPoint, *entities.WalletTransaction, error) {
	if pointsToRedeem <= 0 {
		return nil, nil, domainerrors.ErrInvalidPoints
	}

	var (
		point    *entities.LoyaltyPoint
		walletTx *entities.WalletTransaction
	)

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		// The wallet row doubles as the per-user serialization point.
		if _, err := u.walletRepo.GetOrCreate(ctx, userID); err != nil {
			return err
		}
		if err := u.walletRepo.Lock(ctx, userID); err != nil {
			return err
		}

		available, err := u.pointRepo.AvailableBalance(ctx, userID, time.Now())
		if err != nil {
			return err
		}
		if available < pointsToRedeem {
			return domainerrors.ErrInsufficientPoints
		}

		point = &entities.LoyaltyPoint{
			UserID: userID,
			Points: -pointsToRedeem,
			Source: entities.PointSourceRedemption,
		}
		if err := u.pointRepo.Create(ctx, point); err != nil {
			return err
		}

		amount := decimal.NewFromInt(int64(pointsToRedeem) * u.redemptionRate)
		walletTx, err = u.wallet.Credit(ctx, userID, amount, entities.SourcePointsRedemption)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return point, walletTx, nil
}

// History returns the user's point events newest first
func (u *LoyaltyUsecase) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LoyaltyPoint, int, error) {
	return u.pointRepo.ListByUserID(ctx, userID, limit, offset)
}
