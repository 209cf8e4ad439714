package usecases

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"wash-loop.backend/internal/domain/entities"
	domainerrors "wash-loop.backend/internal/domain/errors"
)

func amountEq(expected string) interface{} {
	want := decimal.RequireFromString(expected)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func TestWalletUsecase_Credit(t *testing.T) {
	walletRepo := new(MockWalletRepository)
	uow := new(MockUnitOfWork)
	usecase := NewWalletUsecase(walletRepo, uow)

	userID := uuid.New()
	wallet := &entities.Wallet{ID: uuid.New(), UserID: userID}

	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	walletRepo.On("GetOrCreate", mock.Anything, userID).Return(wallet, nil)
	walletRepo.On("AppendTransaction", mock.Anything, mock.AnythingOfType("*entities.WalletTransaction")).Return(nil)
	walletRepo.On("AddToBalance", mock.Anything, wallet.ID, amountEq("100")).Return(nil)

	tx, err := usecase.Credit(context.Background(), userID, decimal.NewFromInt(100), entities.SourceOrderRefund)

	require.NoError(t, err)
	assert.Equal(t, wallet.ID, tx.WalletID)
	assert.Equal(t, entities.TransactionTypeCredit, tx.Type)
	assert.Equal(t, entities.SourceOrderRefund, tx.Source)
	walletRepo.AssertExpectations(t)
}

func TestWalletUsecase_Debit_NegatesBalanceDelta(t *testing.T) {
	walletRepo := new(MockWalletRepository)
	uow := new(MockUnitOfWork)
	usecase := NewWalletUsecase(walletRepo, uow)

	userID := uuid.New()
	wallet := &entities.Wallet{ID: uuid.New(), UserID: userID}

	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	walletRepo.On("GetOrCreate", mock.Anything, userID).Return(wallet, nil)
	walletRepo.On("AppendTransaction", mock.Anything, mock.AnythingOfType("*entities.WalletTransaction")).Return(nil)
	walletRepo.On("AddToBalance", mock.Anything, wallet.ID, amountEq("-40")).Return(nil)

	tx, err := usecase.Debit(context.Background(), userID, decimal.NewFromInt(40), entities.SourcePointsRedemption)

	require.NoError(t, err)
	assert.Equal(t, entities.TransactionTypeDebit, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(40)), "ledger amount stays positive, sign lives in the type")
	walletRepo.AssertExpectations(t)
}

func TestWalletUsecase_Mutate_InvalidAmount(t *testing.T) {
	walletRepo := new(MockWalletRepository)
	uow := new(MockUnitOfWork)
	usecase := NewWalletUsecase(walletRepo, uow)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := usecase.Credit(context.Background(), uuid.New(), amount, entities.SourceManualTopup)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

		_, err = usecase.Debit(context.Background(), uuid.New(), amount, entities.SourceManualTopup)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
	}
	walletRepo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
}

func TestWalletUsecase_Credit_DefaultsSource(t *testing.T) {
	walletRepo := new(MockWalletRepository)
	uow := new(MockUnitOfWork)
	usecase := NewWalletUsecase(walletRepo, uow)

	userID := uuid.New()
	wallet := &entities.Wallet{ID: uuid.New(), UserID: userID}

	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	walletRepo.On("GetOrCreate", mock.Anything, userID).Return(wallet, nil)
	walletRepo.On("AppendTransaction", mock.Anything, mock.MatchedBy(func(tx *entities.WalletTransaction) bool {
		return tx.Source == entities.SourceManualTopup
	})).Return(nil)
	walletRepo.On("AddToBalance", mock.Anything, wallet.ID, mock.Anything).Return(nil)

	_, err := usecase.Credit(context.Background(), userID, decimal.NewFromInt(10), "")
	require.NoError(t, err)
	walletRepo.AssertExpectations(t)
}

func TestWalletUsecase_GetBalance(t *testing.T) {
	walletRepo := new(MockWalletRepository)
	usecase := NewWalletUsecase(walletRepo, new(MockUnitOfWork))

	userID := uuid.New()
	walletRepo.On("GetByUserID", mock.Anything, userID).
		Return(&entities.Wallet{ID: uuid.New(), UserID: userID, Balance: decimal.RequireFromString("42.50")}, nil)

	balance, err := usecase.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("42.50")))
}

func TestWalletUsecase_GetBalance_NoWalletIsZero(t *testing.T) {
	walletRepo := new(MockWalletRepository)
	usecase := NewWalletUsecase(walletRepo, new(MockUnitOfWork))

	walletRepo.On("GetByUserID", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)

	balance, err := usecase.GetBalance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestWalletUsecase_ListTransactions_NoWalletIsEmpty(t *testing.T) {
	walletRepo := new(MockWalletRepository)
	usecase := NewWalletUsecase(walletRepo, new(MockUnitOfWork))

	walletRepo.On("GetByUserID", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)

	txs, total, err := usecase.ListTransactions(context.Background(), uuid.New(), 20, 0)
	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.Zero(t, total)
}
