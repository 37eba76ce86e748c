// Package memory provides in-memory repository implementations for local
// development and tests. The capacity write path has the same
// compare-and-increment semantics as the PostgreSQL implementation.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/repository"
)

// PartnerRepository is a threadsafe in-memory partner store.
type PartnerRepository struct {
	mu       sync.RWMutex
	partners map[uuid.UUID]*entity.Partner
}

// NewPartnerRepository creates an empty in-memory partner repository.
func NewPartnerRepository() *PartnerRepository {
	return &PartnerRepository{
		partners: make(map[uuid.UUID]*entity.Partner),
	}
}

// Seed inserts or replaces partner snapshots.
func (repo *PartnerRepository) Seed(partners ...*entity.Partner) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, partner := range partners {
		clone := *partner
		repo.partners[partner.ID] = &clone
	}
}

// ListCandidates retrieves partner snapshots within radiusKm of the center
// matching the given filters.
func (repo *PartnerRepository) ListCandidates(_ context.Context, center entity.GeoPoint, radiusKm float64, filters repository.CandidateFilters) ([]*entity.Partner, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var matched []*entity.Partner
	for _, partner := range repo.partners {
		if filters.OnlyOnline && !partner.IsOnline {
			continue
		}
		if filters.OnlyAvailable && !partner.IsAvailable {
			continue
		}
		if filters.OnlyVerified && !partner.IsVerified {
			continue
		}
		if filters.Vehicle != nil && partner.Vehicle != *filters.Vehicle {
			continue
		}
		if partner.Location.DistanceKm(center) > radiusKm {
			continue
		}

		clone := *partner
		matched = append(matched, &clone)
	}

	return matched, nil
}

// GetByID retrieves a partner snapshot by its unique ID.
func (repo *PartnerRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Partner, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	partner, ok := repo.partners[id]
	if !ok {
		return nil, repository.ErrPartnerNotFound
	}

	clone := *partner

	return &clone, nil
}

// IncrementActive atomically claims one unit of partner capacity.
func (repo *PartnerRepository) IncrementActive(_ context.Context, id uuid.UUID) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	partner, ok := repo.partners[id]
	if !ok {
		return repository.ErrPartnerNotFound
	}
	if partner.ActiveDeliveryCount >= partner.MaxCapacity {
		return repository.ErrCapacityConflict
	}

	partner.ActiveDeliveryCount++

	return nil
}

// DecrementActive releases one unit of partner capacity, flooring at zero.
func (repo *PartnerRepository) DecrementActive(_ context.Context, id uuid.UUID) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	partner, ok := repo.partners[id]
	if !ok {
		return repository.ErrPartnerNotFound
	}
	if partner.ActiveDeliveryCount > 0 {
		partner.ActiveDeliveryCount--
	}

	return nil
}
