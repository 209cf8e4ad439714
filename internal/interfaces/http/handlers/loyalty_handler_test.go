package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"wash-loop.backend/internal/domain/entities"
	domainerrors "wash-loop.backend/internal/domain/errors"
)

type mockLoyaltyService struct {
	mock.Mock
}

func (m *mockLoyaltyService) Grant(ctx context.Context, userID uuid.UUID, points int, source entities.PointSource, expiresInDays *int) (*entities.LoyaltyPoint, error) {
	args := m.Called(ctx, userID, points, source, expiresInDays)
	if p := args.Get(0); p != nil {
		return p.(*entities.LoyaltyPoint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoyaltyService) AvailableBalance(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error) {
	args := m.Called(ctx, userID, asOf)
	return args.Int(0), args.Error(1)
}

func (m *mockLoyaltyService) Redeem(ctx context.Context, userID uuid.UUID, pointsToRedeem int) (*entities.LoyaltyPoint, *entities.WalletTransaction, error) {
	args := m.Called(ctx, userID, pointsToRedeem)
	var point *entities.LoyaltyPoint
	var tx *entities.WalletTransaction
	if p := args.Get(0); p != nil {
		point = p.(*entities.LoyaltyPoint)
	}
	if t := args.Get(1); t != nil {
		tx = t.(*entities.WalletTransaction)
	}
	return point, tx, args.Error(2)
}

func (m *mockLoyaltyService) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LoyaltyPoint, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if points := args.Get(0); points != nil {
		return points.([]*entities.LoyaltyPoint), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func newLoyaltyRouter(svc loyaltyService) *gin.Engine {
	h := &LoyaltyHandler{loyaltyUsecase: svc}
	r := gin.New()
	r.POST("/loyalty/points", h.GrantPoints)
	r.POST("/loyalty/redeem", h.Redeem)
	r.GET("/loyalty/:userId/balance", h.GetBalance)
	r.GET("/loyalty/:userId/history", h.History)
	return r
}

func TestLoyaltyHandler_GrantPoints(t *testing.T) {
	svc := new(mockLoyaltyService)
	r := newLoyaltyRouter(svc)

	userID := uuid.New()
	svc.On("Grant", mock.Anything, userID, 50, entities.PointSourceOrder, mock.MatchedBy(func(d *int) bool {
		return d != nil && *d == 90
	})).Return(&entities.LoyaltyPoint{ID: uuid.New(), UserID: userID, Points: 50}, nil)

	body := fmt.Sprintf(`{"userId":%q,"points":50,"source":"ORDER","expiresInDays":90}`, userID)
	w := performRequest(r, http.MethodPost, "/loyalty/points", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestLoyaltyHandler_GrantPoints_InvalidPoints(t *testing.T) {
	svc := new(mockLoyaltyService)
	r := newLoyaltyRouter(svc)

	svc.On("Grant", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrInvalidPoints)

	body := fmt.Sprintf(`{"userId":%q,"points":-10}`, uuid.New())
	w := performRequest(r, http.MethodPost, "/loyalty/points", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoyaltyHandler_GetBalance(t *testing.T) {
	svc := new(mockLoyaltyService)
	r := newLoyaltyRouter(svc)

	userID := uuid.New()
	svc.On("AvailableBalance", mock.Anything, userID, mock.AnythingOfType("time.Time")).Return(75, nil)

	w := performRequest(r, http.MethodGet, "/loyalty/"+userID.String()+"/balance", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, float64(75), payload["balance"])
}

func TestLoyaltyHandler_Redeem(t *testing.T) {
	svc := new(mockLoyaltyService)
	r := newLoyaltyRouter(svc)

	userID := uuid.New()
	svc.On("Redeem", mock.Anything, userID, 40).Return(
		&entities.LoyaltyPoint{ID: uuid.New(), UserID: userID, Points: -40, Source: entities.PointSourceRedemption},
		&entities.WalletTransaction{ID: uuid.New(), Type: entities.TransactionTypeCredit, Amount: decimal.NewFromInt(40), Source: entities.SourcePointsRedemption},
		nil,
	)

	body := fmt.Sprintf(`{"userId":%q,"pointsToRedeem":40}`, userID)
	w := performRequest(r, http.MethodPost, "/loyalty/redeem", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestLoyaltyHandler_Redeem_Insufficient(t *testing.T) {
	svc := new(mockLoyaltyService)
	r := newLoyaltyRouter(svc)

	svc.On("Redeem", mock.Anything, mock.Anything, 500).
		Return(nil, nil, domainerrors.ErrInsufficientPoints)

	body := fmt.Sprintf(`{"userId":%q,"pointsToRedeem":500}`, uuid.New())
	w := performRequest(r, http.MethodPost, "/loyalty/redeem", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoyaltyHandler_Redeem_BadUserID(t *testing.T) {
	svc := new(mockLoyaltyService)
	r := newLoyaltyRouter(svc)

	w := performRequest(r, http.MethodPost, "/loyalty/redeem", `{"userId":"nope","pointsToRedeem":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoyaltyHandler_History(t *testing.T) {
	svc := new(mockLoyaltyService)
	r := newLoyaltyRouter(svc)

	userID := uuid.New()
	svc.On("History", mock.Anything, userID, 20, 0).Return(nil, 0, nil)

	w := performRequest(r, http.MethodGet, "/loyalty/"+userID.String()+"/history", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.NotNil(t, payload["points"], "empty history must serialize as [] not null")
}
