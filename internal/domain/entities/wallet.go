package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes ledger entry direction
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

// TransactionSource records why a ledger entry was written
type TransactionSource string

const (
	SourceOrderRefund      TransactionSource = "ORDER_REFUND"
	SourcePointsRedemption TransactionSource = "POINTS_REDEMPTION"
	SourceReferralReward   TransactionSource = "REFERRAL_REWARD"
	SourceReferralWelcome  TransactionSource = "REFERRAL_WELCOME"
	SourceManualTopup      TransactionSource = "MANUAL_TOPUP"
)

// Wallet represents a user's monetary wallet. The balance is a cached view
// over the append-only transaction ledger and must always equal the signed
// sum of the wallet's transactions.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// WalletTransaction is one immutable ledger entry. Amount is always
// positive; Type carries the sign.
type WalletTransaction struct {
	ID        uuid.UUID         `json:"id"`
	WalletID  uuid.UUID         `json:"walletId"`
	Type      TransactionType   `json:"type"`
	Amount    decimal.Decimal   `json:"amount"`
	Source    TransactionSource `json:"source"`
	CreatedAt time.Time         `json:"createdAt"`
}

// SignedAmount returns the amount with the sign implied by the type.
func (t *WalletTransaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// WalletMutationInput represents input for crediting or debiting a wallet
type WalletMutationInput struct {
	UserID string `json:"userId" binding:"required"`
	Amount string `json:"amount" binding:"required"`
	Source string `json:"source"`
}
