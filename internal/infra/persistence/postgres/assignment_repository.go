package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"dispatch/internal/domain/entity"
	domainerrors "dispatch/internal/domain/errors"
	"dispatch/internal/domain/repository"
	"dispatch/internal/infra/persistence/model"
)

// assignmentRepository implements the repository.RecentAssignmentRepository interface.
type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository is the constructor for assignmentRepository.
func NewAssignmentRepository(db *gorm.DB) repository.RecentAssignmentRepository {
	return &assignmentRepository{
		db: db,
	}
}

// CountSince returns how many assignments the partner received within the
// trailing window.
func (repo *assignmentRepository) CountSince(ctx context.Context, partnerID uuid.UUID, window time.Duration) (int, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.AssignmentModel{}).
		Where("partner_id = ? AND assigned_at >= ?", partnerID, time.Now().Add(-window)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count recent assignments")
	}

	return int(count), nil
}

// Record persists a committed assignment for future fairness lookups.
func (repo *assignmentRepository) Record(ctx context.Context, assignment *entity.Assignment) error {
	assignmentM := &model.AssignmentModel{
		DeliveryID:              assignment.DeliveryID,
		PartnerID:               assignment.PartnerID,
		CompositeScore:          assignment.Score.Composite,
		Confidence:              assignment.Confidence,
		EstimatedArrivalMinutes: assignment.EstimatedArrivalMinutes,
		AssignedAt:              assignment.AssignedAt,
	}

	if err := repo.db.WithContext(ctx).Create(assignmentM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to record assignment")
	}

	return nil
}
