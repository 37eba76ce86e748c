// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"dispatch/internal/domain/entity"
	domainerrors "dispatch/internal/domain/errors"
	"dispatch/internal/domain/repository"
	"dispatch/internal/infra/persistence/model"
)

// partnerRepository implements the repository.PartnerRepository interface.
type partnerRepository struct {
	db *gorm.DB
}

// NewPartnerRepository is the constructor for partnerRepository.
func NewPartnerRepository(db *gorm.DB) repository.PartnerRepository {
	return &partnerRepository{
		db: db,
	}
}

// ListCandidates retrieves partner snapshots within radiusKm of the center
// using a PostGIS ST_DWithin query over the partner location.
func (repo *partnerRepository) ListCandidates(ctx context.Context, center entity.GeoPoint, radiusKm float64, filters repository.CandidateFilters) ([]*entity.Partner, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.PartnerModel{}).
		Where(
			"ST_DWithin(ST_SetSRID(ST_MakePoint(lon, lat), 4326)::geography, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)",
			center.Lon, center.Lat, radiusKm*1000,
		)

	if filters.OnlyOnline {
		query = query.Where("is_online = ?", true)
	}
	if filters.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if filters.OnlyVerified {
		query = query.Where("is_verified = ?", true)
	}
	if filters.Vehicle != nil {
		query = query.Where("vehicle = ?", string(*filters.Vehicle))
	}

	var partnerModels []*model.PartnerModel
	if err := query.Find(&partnerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list candidate partners")
	}

	partners := make([]*entity.Partner, 0, len(partnerModels))
	for _, partnerM := range partnerModels {
		partner, err := partnerM.ToDomain()
		if err != nil {
			return nil, err
		}
		partners = append(partners, partner)
	}

	return partners, nil
}

// GetByID retrieves a partner snapshot by its unique ID.
func (repo *partnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error) {
	var partnerM model.PartnerModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&partnerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPartnerNotFound
		}

		return nil, errors.Wrap(err, "failed to find partner by ID")
	}

	return partnerM.ToDomain()
}

// IncrementActive claims one unit of partner capacity. The conditional UPDATE
// is the compare-and-increment: two concurrent claims against a partner with
// one free slot race on rows affected, and exactly one wins.
func (repo *partnerRepository) IncrementActive(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PartnerModel{}).
		Where("id = ? AND active_delivery_count < max_capacity", id).
		Update("active_delivery_count", gorm.Expr("active_delivery_count + 1"))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to increment active delivery count")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing partner from a full one.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.PartnerModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check partner existence")
		}
		if count == 0 {
			return repository.ErrPartnerNotFound
		}

		return repository.ErrCapacityConflict
	}

	return nil
}

// DecrementActive releases one unit of partner capacity, flooring at zero.
func (repo *partnerRepository) DecrementActive(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PartnerModel{}).
		Where("id = ? AND active_delivery_count > 0", id).
		Update("active_delivery_count", gorm.Expr("active_delivery_count - 1"))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement active delivery count")
	}

	return nil
}
