package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"wash-loop.backend/internal/domain/entities"
	domainerrors "wash-loop.backend/internal/domain/errors"
	"wash-loop.backend/internal/interfaces/http/response"
	"wash-loop.backend/internal/usecases"
)

type referralService interface {
	Create(ctx context.Context, referrerID uuid.UUID) (*entities.Referral, error)
	Apply(ctx context.Context, code string, referredUserID uuid.UUID) (*entities.Referral, error)
	Credit(ctx context.Context, referralID uuid.UUID, referrerAmount, referredAmount decimal.Decimal) (*entities.Referral, error)
}

// ReferralHandler handles referral endpoints
type ReferralHandler struct {
	referralUsecase referralService
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referralUsecase *usecases.ReferralUsecase) *ReferralHandler {
	return &ReferralHandler{referralUsecase: referralUsecase}
}

// Create issues a new referral code
// POST /api/v1/referrals
func (h *ReferralHandler) Create(c *gin.Context) {
	var input entities.CreateReferralInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	referrerID, err := uuid.Parse(input.ReferrerID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid referrer ID"))
		return
	}

	referral, err := h.referralUsecase.Create(c.Request.Context(), referrerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"referral": referral})
}

// Apply registers a new user against a referral code
// POST /api/v1/referrals/apply
func (h *ReferralHandler) Apply(c *gin.Context) {
	var input entities.ApplyReferralInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	referredUserID, err := uuid.Parse(input.ReferredUserID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid referred user ID"))
		return
	}

	referral, err := h.referralUsecase.Apply(c.Request.Context(), input.Code, referredUserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Referral code not found"))
			return
		}
		if errors.Is(err, domainerrors.ErrAlreadyApplied) {
			response.Error(c, domainerrors.Conflict("Referral code already applied", err))
			return
		}
		if errors.Is(err, domainerrors.ErrSelfReferral) {
			response.Error(c, domainerrors.Conflict("Cannot apply your own referral code", err))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"referral": referral})
}

// Credit pays out a referral to both parties
// POST /api/v1/referrals/:id/credit
func (h *ReferralHandler) Credit(c *gin.Context) {
	referralID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid referral ID"))
		return
	}

	// Body is optional: omitted amounts fall back to configured bonuses.
	var input entities.CreditReferralInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	referrerAmount, err := parseOptionalAmount(input.ReferrerAmount)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid referrer amount"))
		return
	}
	referredAmount, err := parseOptionalAmount(input.ReferredAmount)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid referred amount"))
		return
	}

	referral, err := h.referralUsecase.Credit(c.Request.Context(), referralID, referrerAmount, referredAmount)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Referral not found"))
			return
		}
		if errors.Is(err, domainerrors.ErrNotApplied) {
			response.Error(c, domainerrors.Conflict("Referral has not been applied", err))
			return
		}
		if errors.Is(err, domainerrors.ErrAlreadyRewarded) {
			response.Error(c, domainerrors.Conflict("Referral already rewarded", err))
			return
		}
		if errors.Is(err, domainerrors.ErrInvalidAmount) {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"referral": referral})
}

// parseOptionalAmount returns zero for nil, signalling "use the default".
func parseOptionalAmount(s *string) (decimal.Decimal, error) {
	if s == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*s)
}
