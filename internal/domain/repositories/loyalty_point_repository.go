package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"wash-loop.backend/internal/domain/entities"
)

// LoyaltyPointRepository defines loyalty point data operations
type LoyaltyPointRepository interface {
	// Create writes one immutable point event (grant or redemption).
	Create(ctx context.Context, point *entities.LoyaltyPoint) error
	// AvailableBalance sums points over rows that have not expired as of
	// the given instant. Redemption rows carry no expiry and always count.
	AvailableBalance(ctx context.Context, userID uuid.UUID, asOf time.Time) (int, error)
	// ListByUserID returns point events newest first with the total count.
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LoyaltyPoint, int, error)
}
