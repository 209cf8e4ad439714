package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"wash-loop.backend/internal/domain/entities"
)

// MockWalletRepository is a mock implementation of WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if w := args.Get(0); w != nil {
		return w.(*entities.Wallet), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if w := args.Get(0); w != nil {
		return w.(*entities.Wallet), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepository) Lock(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockWalletRepository) AppendTransaction(ctx context.Context, tx *entities.WalletTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletRepository) AddToBalance(ctx context.Context, walletID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, walletID, delta)
	return args.Error(0)
}

func (m *MockWalletRepository) SumTransactions(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletRepository) ListTransactions(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entities.WalletTransaction, int, error) {
	args := m.Called(ctx, walletID, limit, offset)
	if txs := args.Get(0); txs != nil {
		return txs.([]*entities.WalletTransaction), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

// MockLoyaltyPointRepository is a mock implementation of LoyaltyPointRepository
type MockLoyaltyPointRepository struct {
	mock.Mock
}

func (m *MockLoyaltyPointRepository) Create(ctx context.Context, point *entities.LoyaltyPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockLoyaltyPointRepository) AvailableBalance(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error) {
	args := m.Called(ctx, userID, asOf)
	return args.Int(0), args.Error(1)
}

func (m *MockLoyaltyPointRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LoyaltyPoint, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if points := args.Get(0); points != nil {
		return points.([]*entities.LoyaltyPoint), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

// MockReferralRepository is a mock implementation of ReferralRepository
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) Create(ctx context.Context, referral *entities.Referral) error {
	args := m.Called(ctx, referral)
	return args.Error(0)
}

func (m *MockReferralRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Referral, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*entities.Referral), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReferralRepository) GetByCode(ctx context.Context, code string) (*entities.Referral, error) {
	args := m.Called(ctx, code)
	if r := args.Get(0); r != nil {
		return r.(*entities.Referral), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReferralRepository) MarkApplied(ctx context.Context, id, referredID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, referredID, at)
	return args.Error(0)
}

func (m *MockReferralRepository) MarkRewarded(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockUnitOfWork runs the callback inline unless primed with an error
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
