// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"github.com/google/uuid"

	"dispatch/internal/domain/entity"
	"dispatch/internal/errors"
)

// Domain-specific errors for partner persistence.
var (
	// ErrPartnerNotFound is returned when a partner does not exist.
	ErrPartnerNotFound = errors.New("partner not found")
	// ErrCapacityConflict is returned when a capacity increment would exceed
	// the partner's maximum. Dispatch retries the next-ranked candidate.
	ErrCapacityConflict = errors.New("partner is at capacity")
)

// CandidateFilters narrows the candidate set returned by ListCandidates.
type CandidateFilters struct {
	OnlyOnline    bool
	OnlyAvailable bool
	OnlyVerified  bool
	Vehicle       *entity.VehicleType
}

// ActiveCandidates is the filter set used by dispatch: online, available,
// verified partners of any vehicle type.
func ActiveCandidates() CandidateFilters {
	return CandidateFilters{
		OnlyOnline:    true,
		OnlyAvailable: true,
		OnlyVerified:  true,
	}
}

// PartnerRepository defines the interface for partner-related persistence.
// IncrementActive is the single serialized write path for the capacity
// counter: implementations must guarantee that two concurrent increments
// against the same partner never push ActiveDeliveryCount past MaxCapacity.
type PartnerRepository interface {
	// ListCandidates retrieves partner snapshots within radiusKm of center
	// matching the given filters.
	ListCandidates(ctx context.Context, center entity.GeoPoint, radiusKm float64, filters CandidateFilters) ([]*entity.Partner, error)

	// GetByID retrieves a partner snapshot by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Partner, error)

	// IncrementActive atomically increments the partner's active delivery
	// count. Returns ErrCapacityConflict when the partner is already at
	// capacity (compare-and-increment semantics).
	IncrementActive(ctx context.Context, id uuid.UUID) error

	// DecrementActive atomically decrements the partner's active delivery
	// count, flooring at zero.
	DecrementActive(ctx context.Context, id uuid.UUID) error
}
