// Package usecase defines the application service interfaces of the engine.
package usecase

import (
	"context"

	"dispatch/internal/domain/entity"
)

// DispatchUsecase selects the best partner for a single delivery request and
// commits the assignment against partner capacity.
type DispatchUsecase interface {
	// FindBestPartner runs the full selection pipeline: candidate retrieval,
	// constraint filtering, scoring, urgency boost, fairness pass, and the
	// capacity-checked commit. Returns domain errors ErrNoCandidates or
	// ErrNoEligiblePartner when the pipeline empties out.
	FindBestPartner(ctx context.Context, request *entity.DeliveryRequest) (*entity.Assignment, error)
}
