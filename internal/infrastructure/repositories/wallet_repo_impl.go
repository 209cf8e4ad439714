package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"wash-loop.backend/internal/domain/entities"
	domainerrors "wash-loop.backend/internal/domain/errors"
	"wash-loop.backend/internal/infrastructure/models"
)

// WalletRepository implements wallet and ledger data operations
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetOrCreate returns the user's wallet, inserting a zero-balance row if
// none exists. ON CONFLICT DO NOTHING keyed on user_id makes concurrent
// first-time credits converge on a single row.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	db := GetDB(ctx, r.db)

	now := time.Now()
	m := &models.Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(m).Error; err != nil {
		return nil, err
	}

	// Re-read so a lost upsert race still returns the winning row.
	return r.GetByUserID(ctx, userID)
}

// GetByUserID gets a wallet by user ID
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return walletToEntity(&m), nil
}

// Lock claims the user's wallet row until the ambient transaction ends.
// A plain UPDATE takes a row lock on every backend we run on; SELECT ...
// FOR UPDATE is not portable to the sqlite driver used in tests.
func (r *WalletRepository) Lock(ctx context.Context, userID uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("updated_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// AppendTransaction writes one immutable ledger entry
func (r *WalletRepository) AppendTransaction(ctx context.Context, tx *entities.WalletTransaction) error {
	m := &models.WalletTransaction{
		ID:        uuid.New(),
		WalletID:  tx.WalletID,
		Type:      string(tx.Type),
		Amount:    tx.Amount,
		Source:    string(tx.Source),
		CreatedAt: time.Now(),
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	tx.ID = m.ID
	tx.CreatedAt = m.CreatedAt
	return nil
}

// AddToBalance atomically adjusts the cached balance by delta
func (r *WalletRepository) AddToBalance(ctx context.Context, walletID uuid.UUID, delta decimal.Decimal) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SumTransactions returns the signed sum of the wallet's ledger entries
func (r *WalletRepository) SumTransactions(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	db := GetDB(ctx, r.db)
	row := db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(CASE WHEN type = ? THEN -amount ELSE amount END), 0)
		FROM wallet_transactions
		WHERE wallet_id = ?`,
		string(entities.TransactionTypeDebit), walletID,
	).Row()

	var sum decimal.Decimal
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// ListTransactions returns ledger entries newest first with the total count
func (r *WalletRepository) ListTransactions(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entities.WalletTransaction, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.WalletTransaction{}).
		Where("wallet_id = ?", walletID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.WalletTransaction
	if err := db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var txs []*entities.WalletTransaction
	for i := range ms {
		txs = append(txs, transactionToEntity(&ms[i]))
	}
	return txs, int(total), nil
}

func walletToEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:        m.ID,
		UserID:    m.UserID,
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func transactionToEntity(m *models.WalletTransaction) *entities.WalletTransaction {
	return &entities.WalletTransaction{
		ID:        m.ID,
		WalletID:  m.WalletID,
		Type:      entities.TransactionType(m.Type),
		Amount:    m.Amount,
		Source:    entities.TransactionSource(m.Source),
		CreatedAt: m.CreatedAt,
	}
}
