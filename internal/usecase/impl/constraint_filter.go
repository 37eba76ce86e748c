// Package impl contains the concrete implementations of the usecase layer.
package impl

import (
	"fmt"

	"dispatch/config"
	"dispatch/internal/domain/entity"
)

// Eligibility is the outcome of checking one partner against one request.
// Reasons are kept for both outcomes: pass reasons feed assignment
// observability, fail reasons feed NoEligiblePartner aggregation.
type Eligibility struct {
	Eligible bool
	Reasons  []string
}

// ConstraintFilter is a pure predicate deciding whether a partner may be
// scored for a request at all. It has no side effects and touches no clock.
type ConstraintFilter struct {
	cfg config.ConstraintsConfig
}

// NewConstraintFilter creates a filter from configuration, falling back to
// the shipped thresholds for unset values.
func NewConstraintFilter(cfg *config.ConstraintsConfig) *ConstraintFilter {
	resolved := config.DefaultDispatchConfig().Constraints
	if cfg != nil {
		if cfg.MinRating > 0 {
			resolved.MinRating = cfg.MinRating
		}
		if cfg.MaxDistanceKm > 0 {
			resolved.MaxDistanceKm = cfg.MaxDistanceKm
		}
		if cfg.HighPriorityMinRating > 0 {
			resolved.HighPriorityMinRating = cfg.HighPriorityMinRating
		}
		if len(cfg.VehicleEnvelopes) > 0 {
			resolved.VehicleEnvelopes = cfg.VehicleEnvelopes
		}
	}

	return &ConstraintFilter{cfg: resolved}
}

// Check runs every hard constraint; all must pass.
func (f *ConstraintFilter) Check(partner *entity.Partner, request *entity.DeliveryRequest) Eligibility {
	var reasons []string

	if partner.AtCapacity() {
		reasons = append(reasons, fmt.Sprintf("at capacity (%d/%d active)",
			partner.ActiveDeliveryCount, partner.MaxCapacity))
	}

	if partner.RatingAvg < f.cfg.MinRating {
		reasons = append(reasons, fmt.Sprintf("rating %.1f below minimum %.1f",
			partner.RatingAvg, f.cfg.MinRating))
	}

	distanceKm := partner.Location.DistanceKm(request.Pickup)
	if distanceKm > f.cfg.MaxDistanceKm {
		reasons = append(reasons, fmt.Sprintf("pickup %.1fkm away exceeds maximum %.1fkm",
			distanceKm, f.cfg.MaxDistanceKm))
	}

	envelope, ok := f.cfg.VehicleEnvelopes[string(partner.Vehicle)]
	if !ok {
		reasons = append(reasons, fmt.Sprintf("unknown vehicle type %q", partner.Vehicle))
	} else {
		if request.WeightKg > envelope.MaxWeightKg {
			reasons = append(reasons, fmt.Sprintf("weight %.1fkg exceeds %s limit %.1fkg",
				request.WeightKg, partner.Vehicle, envelope.MaxWeightKg))
		}
		if distanceKm > envelope.MaxDistanceKm {
			reasons = append(reasons, fmt.Sprintf("pickup %.1fkm away exceeds %s range %.1fkm",
				distanceKm, partner.Vehicle, envelope.MaxDistanceKm))
		}
	}

	if !partner.ServesPoint(request.Pickup) {
		reasons = append(reasons, "pickup outside partner service areas")
	}

	if request.Priority.IsUrgent() && partner.RatingAvg < f.cfg.HighPriorityMinRating {
		reasons = append(reasons, fmt.Sprintf("%s priority requires rating >= %.1f, partner has %.1f",
			request.Priority, f.cfg.HighPriorityMinRating, partner.RatingAvg))
	}

	return Eligibility{
		Eligible: len(reasons) == 0,
		Reasons:  reasons,
	}
}
