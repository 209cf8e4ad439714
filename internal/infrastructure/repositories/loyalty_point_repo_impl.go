package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wash-loop.backend/internal/domain/entities"
	"wash-loop.backend/internal/infrastructure/models"
)

// LoyaltyPointRepository implements loyalty point data operations
type LoyaltyPointRepository struct {
	db *gorm.DB
}

// NewLoyaltyPointRepository creates a new loyalty point repository
func NewLoyaltyPointRepository(db *gorm.DB) *LoyaltyPointRepository {
	return &LoyaltyPointRepository{db: db}
}

// Create writes one immutable point event
func (r *LoyaltyPointRepository) Create(ctx context.Context, point *entities.LoyaltyPoint) error {
	m := &models.LoyaltyPoint{
		ID:        uuid.New(),
		UserID:    point.UserID,
		Points:    point.Points,
		Source:    string(point.Source),
		ExpiresAt: point.ExpiresAt.Ptr(),
		CreatedAt: time.Now(),
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	point.ID = m.ID
	point.CreatedAt = m.CreatedAt
	return nil
}

// AvailableBalance sums points over rows that are unexpired as of asOf.
// Redemption rows have no expiry, so past redemptions reduce the result
// even after the grants they drew from would have lapsed.
func (r *LoyaltyPointRepository) AvailableBalance(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error) {
	db := GetDB(ctx, r.db)
	row := db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(points), 0)
		FROM loyalty_points
		WHERE user_id = ? AND (expires_at IS NULL OR expires_at > ?)`,
		userID, asOf,
	).Row()

	var total int
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ListByUserID returns point events newest first with the total count
func (r *LoyaltyPointRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LoyaltyPoint, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.LoyaltyPoint{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.LoyaltyPoint
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var points []*entities.LoyaltyPoint
	for i := range ms {
		points = append(points, loyaltyPointToEntity(&ms[i]))
	}
	return points, int(total), nil
}

func loyaltyPointToEntity(m *models.LoyaltyPoint) *entities.LoyaltyPoint {
	p := &entities.LoyaltyPoint{
		ID:        m.ID,
		UserID:    m.UserID,
		Points:    m.Points,
		Source:    entities.PointSource(m.Source),
		CreatedAt: m.CreatedAt,
	}
	if m.ExpiresAt != nil {
		p.ExpiresAt.SetValid(*m.ExpiresAt)
	}
	return p
}
