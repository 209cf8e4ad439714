package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wash-loop.backend/internal/domain/entities"
	domainerrors "wash-loop.backend/internal/domain/errors"
	"wash-loop.backend/internal/infrastructure/models"
)

// ReferralRepository implements referral data operations
type ReferralRepository struct {
	db *gorm.DB
}

// NewReferralRepository creates a new referral repository
func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// Create inserts a new referral. Code uniqueness is enforced by the store;
// a collision surfaces as ErrAlreadyExists so the caller can retry with a
// fresh code.
func (r *ReferralRepository) Create(ctx context.Context, referral *entities.Referral) error {
	m := &models.Referral{
		ID:         uuid.New(),
		Code:       referral.Code,
		ReferrerID: referral.ReferrerID,
		Status:     string(entities.ReferralStatusCreated),
		CreatedAt:  time.Now(),
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}

	referral.ID = m.ID
	referral.Status = entities.ReferralStatusCreated
	referral.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a referral by ID
func (r *ReferralRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Referral, error) {
	var m models.Referral
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return referralToEntity(&m), nil
}

// GetByCode gets a referral by its unique code
func (r *ReferralRepository) GetByCode(ctx context.Context, code string) (*entities.Referral, error) {
	var m models.Referral
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return referralToEntity(&m), nil
}

// MarkApplied claims the referral for a referred user. The WHERE clause
// requires referred_id to still be unset, so of two concurrent applies
// exactly one updates a row; the other gets ErrAlreadyApplied.
func (r *ReferralRepository) MarkApplied(ctx context.Context, id, referredID uuid.UUID, at time.Time) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Referral{}).
		Where("id = ? AND referred_id IS NULL", id).
		Updates(map[string]interface{}{
			"referred_id": referredID,
			"status":      string(entities.ReferralStatusApplied),
			"applied_at":  at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.explainNoRows(ctx, id, domainerrors.ErrAlreadyApplied)
	}
	return nil
}

// MarkRewarded performs the one-way APPLIED -> REWARDED transition. The
// conditional WHERE serializes concurrent payouts: exactly one caller wins,
// the rest get ErrAlreadyRewarded.
func (r *ReferralRepository) MarkRewarded(ctx context.Context, id uuid.UUID, at time.Time) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Referral{}).
		Where("id = ? AND status = ?", id, string(entities.ReferralStatusApplied)).
		Updates(map[string]interface{}{
			"status":      string(entities.ReferralStatusRewarded),
			"rewarded_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.explainRewardConflict(ctx, id)
	}
	return nil
}

// explainNoRows distinguishes a missing referral from a lost conditional
// update on an existing one.
func (r *ReferralRepository) explainNoRows(ctx context.Context, id uuid.UUID, conflict error) error {
	db := GetDB(ctx, r.db)
	var count int64
	if err := db.WithContext(ctx).Model(&models.Referral{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return conflict
}

// explainRewardConflict names the actual state that blocked the reward
// transition: missing row, never applied, or already rewarded.
func (r *ReferralRepository) explainRewardConflict(ctx context.Context, id uuid.UUID) error {
	var m models.Referral
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Select("status").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNotFound
		}
		return err
	}
	if m.Status == string(entities.ReferralStatusCreated) {
		return domainerrors.ErrNotApplied
	}
	return domainerrors.ErrAlreadyRewarded
}

func referralToEntity(m *models.Referral) *entities.Referral {
	ref := &entities.Referral{
		ID:         m.ID,
		Code:       m.Code,
		ReferrerID: m.ReferrerID,
		ReferredID: m.ReferredID,
		Status:     entities.ReferralStatus(m.Status),
		CreatedAt:  m.CreatedAt,
	}
	if m.AppliedAt != nil {
		ref.AppliedAt.SetValid(*m.AppliedAt)
	}
	if m.RewardedAt != nil {
		ref.RewardedAt.SetValid(*m.RewardedAt)
	}
	return ref
}
