package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wash-loop.backend/internal/domain/entities"
	domainerrors "wash-loop.backend/internal/domain/errors"
	"wash-loop.backend/internal/interfaces/http/response"
	"wash-loop.backend/internal/usecases"
)

type loyaltyService interface {
	Grant(ctx context.Context, userID uuid.UUID, points int, source entities.PointSource, expiresInDays *int) (*entities.LoyaltyPoint, error)
	AvailableBalance(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error)
	Redeem(ctx context.Context, userID uuid.UUID, pointsToRedeem int) (*entities.LoyaltyPoint, *entities.WalletTransaction, error)
	History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LoyaltyPoint, int, error)
}

// LoyaltyHandler handles loyalty point endpoints
type LoyaltyHandler struct {
	loyaltyUsecase loyaltyService
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(loyaltyUsecase *usecases.LoyaltyUsecase) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyUsecase: loyaltyUsecase}
}

// GrantPoints grants loyalty points to a user
// POST /api/v1/loyalty/points
func (h *LoyaltyHandler) GrantPoints(c *gin.Context) {
	var input entities.GrantPointsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	point, err := h.loyaltyUsecase.Grant(c.Request.Context(), userID, input.Points, entities.PointSource(input.Source), input.ExpiresInDays)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidPoints) {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"point": point})
}

// GetBalance returns the user's redeemable point balance
// GET /api/v1/loyalty/:userId/balance
func (h *LoyaltyHandler) GetBalance(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	balance, err := h.loyaltyUsecase.AvailableBalance(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"userId":  userID,
		"balance": balance,
	})
}

// Redeem converts loyalty points into wallet credit
// POST /api/v1/loyalty/redeem
func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	var input entities.RedeemPointsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	point, tx, err := h.loyaltyUsecase.Redeem(c.Request.Context(), userID, input.PointsToRedeem)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidPoints) {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
		if errors.Is(err, domainerrors.ErrInsufficientPoints) {
			response.Error(c, domainerrors.Conflict("Insufficient loyalty points", err))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"point":       point,
		"transaction": tx,
	})
}

// History returns the user's point events
// GET /api/v1/loyalty/:userId/history
func (h *LoyaltyHandler) History(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	limit, offset := parsePagination(c)
	points, total, err := h.loyaltyUsecase.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	if points == nil {
		points = []*entities.LoyaltyPoint{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"points": points,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
