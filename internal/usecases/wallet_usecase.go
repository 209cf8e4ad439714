package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"wash-loop.backend/internal/domain/entities"
	domainerrors "wash-loop.backend/internal/domain/errors"
	"wash-loop.backend/internal/domain/repositories"
)

// WalletUsecase maintains per-user wallets as derived balances over an
// append-only transaction ledger.
type WalletUsecase struct {
	walletRepo repositories.WalletRepository
	uow        repositories.UnitOfWork
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(walletRepo repositories.WalletRepository, uow repositories.UnitOfWork) *WalletUsecase {
	return &WalletUsecase{walletRepo: walletRepo, uow: uow}
}

// Credit appends a CREDIT ledger entry and raises the cached balance.
// The wallet is created lazily on first use.
func (u *WalletUsecase) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, source entities.TransactionSource) (*entities.WalletTransaction, error) {
	return u.mutate(ctx, userID, amount, source, entities.TransactionTypeCredit)
}

// Debit appends a DEBIT ledger entry and lowers the cached balance.
// Balances are allowed to go negative; callers that need a floor must
// check GetBalance first.
func (u *WalletUsecase) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, source entities.TransactionSource) (*entities.WalletTransaction, error) {
	return u.mutate(ctx, userID, amount, source, entities.TransactionTypeDebit)
}

func (u *WalletUsecase) mutate(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, source entities.TransactionSource, txType entities.TransactionType) (*entities.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}
	if source == "" {
		source = entities.SourceManualTopup
	}

	tx := &entities.WalletTransaction{
		Type:   txType,
		Amount: amount,
		Source: source,
	}

	// Ledger entry and cached balance move together or not at all.
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		wallet, err := u.walletRepo.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		tx.WalletID = wallet.ID
		if err := u.walletRepo.AppendTransaction(ctx, tx); err != nil {
			return err
		}
		return u.walletRepo.AddToBalance(ctx, wallet.ID, tx.SignedAmount())
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// GetBalance returns the cached balance; a user without a wallet has zero.
func (u *WalletUsecase) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

// ListTransactions returns the user's ledger history newest first
func (u *WalletUsecase) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.WalletTransaction, int, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return []*entities.WalletTransaction{}, 0, nil
		}
		return nil, 0, err
	}
	return u.walletRepo.ListTransactions(ctx, wallet.ID, limit, offset)
}
