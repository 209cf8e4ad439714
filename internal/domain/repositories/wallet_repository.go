package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"wash-loop.backend/internal/domain/entities"
)

// WalletRepository defines wallet and ledger data operations
type WalletRepository interface {
	// GetOrCreate returns the user's wallet, creating it with a zero
	// balance if absent. Creation is an atomic upsert keyed on user_id.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	// GetByUserID returns the user's wallet or ErrNotFound.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	// Lock claims the user's wallet row for the remainder of the current
	// transaction, serializing concurrent mutations for that user.
	Lock(ctx context.Context, userID uuid.UUID) error
	// AppendTransaction writes one immutable ledger entry.
	AppendTransaction(ctx context.Context, tx *entities.WalletTransaction) error
	// AddToBalance atomically adjusts the cached balance by delta.
	AddToBalance(ctx context.Context, walletID uuid.UUID, delta decimal.Decimal) error
	// SumTransactions returns the signed sum of the wallet's ledger.
	SumTransactions(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error)
	// ListTransactions returns ledger entries newest first with the total count.
	ListTransactions(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entities.WalletTransaction, int, error)
}
