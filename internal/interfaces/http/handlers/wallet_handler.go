package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"wash-loop.backend/internal/domain/entities"
	domainerrors "wash-loop.backend/internal/domain/errors"
	"wash-loop.backend/internal/interfaces/http/response"
	"wash-loop.backend/internal/usecases"
)

type walletService interface {
	Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, source entities.TransactionSource) (*entities.WalletTransaction, error)
	Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, source entities.TransactionSource) (*entities.WalletTransaction, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.WalletTransaction, int, error)
}

// WalletHandler handles wallet ledger endpoints
type WalletHandler struct {
	walletUsecase walletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// Credit credits a user's wallet
// POST /api/v1/wallets/credit
func (h *WalletHandler) Credit(c *gin.Context) {
	h.mutate(c, h.walletUsecase.Credit)
}

// Debit debits a user's wallet
// POST /api/v1/wallets/debit
func (h *WalletHandler) Debit(c *gin.Context) {
	h.mutate(c, h.walletUsecase.Debit)
}

func (h *WalletHandler) mutate(c *gin.Context, op func(context.Context, uuid.UUID, decimal.Decimal, entities.TransactionSource) (*entities.WalletTransaction, error)) {
	var input entities.WalletMutationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid amount"))
		return
	}

	tx, err := op(c.Request.Context(), userID, amount, entities.TransactionSource(input.Source))
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidAmount) {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": tx})
}

// GetBalance returns the user's wallet balance
// GET /api/v1/wallets/:userId/balance
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	balance, err := h.walletUsecase.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"userId":  userID,
		"balance": balance,
	})
}

// ListTransactions returns the user's ledger history
// GET /api/v1/wallets/:userId/transactions
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	limit, offset := parsePagination(c)
	txs, total, err := h.walletUsecase.ListTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	if txs == nil {
		txs = []*entities.WalletTransaction{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": txs,
		"total":        total,
		"limit":        limit,
		"offset":       offset,
	})
}

// parsePagination normalizes limit/offset query parameters
func parsePagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
