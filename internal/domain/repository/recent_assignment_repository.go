package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dispatch/internal/domain/entity"
)

// RecentAssignmentRepository tracks assignment history for the fairness pass.
type RecentAssignmentRepository interface {
	// CountSince returns how many assignments the partner received within
	// the trailing window.
	CountSince(ctx context.Context, partnerID uuid.UUID, window time.Duration) (int, error)

	// Record persists a committed assignment for future fairness lookups.
	Record(ctx context.Context, assignment *entity.Assignment) error
}
