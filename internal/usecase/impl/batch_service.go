package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"
	"dispatch/internal/infra/optimizer"
	"dispatch/internal/usecase"
)

type batchService struct {
	filter *ConstraintFilter
	scorer *PartnerScorer
	engine *optimizer.Engine
	clock  service.Clock
	logger *slog.Logger
}

// NewBatchService creates the batch assignment service.
func NewBatchService(
	filter *ConstraintFilter,
	scorer *PartnerScorer,
	engine *optimizer.Engine,
	clock service.Clock,
	logger *slog.Logger,
) usecase.BatchUsecase {
	if clock == nil {
		clock = service.NewSystemClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &batchService{
		filter: filter,
		scorer: scorer,
		engine: engine,
		clock:  clock,
		logger: logger,
	}
}

// AssignBatch implements usecase.BatchUsecase. Deliveries are walked once in
// priority order; each takes the highest-scoring partner that still has room
// on its working copy.
func (s *batchService) AssignBatch(ctx context.Context, deliveries []entity.DeliveryRequest, partners []*entity.Partner) (*usecase.BatchResult, error) {
	ordered := make([]entity.DeliveryRequest, len(deliveries))
	copy(ordered, deliveries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}

		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	// Working copies so the callers' snapshots stay untouched.
	pool := make([]*entity.Partner, len(partners))
	for i, p := range partners {
		clone := *p
		pool[i] = &clone
	}

	result := &usecase.BatchResult{}
	perPartner := make(map[uuid.UUID][]entity.DeliveryRequest)

	for _, delivery := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := delivery.Validate(); err != nil {
			result.Unassigned = append(result.Unassigned, usecase.UnassignedDelivery{
				Delivery: delivery,
				Reasons:  []string{err.Error()},
			})

			continue
		}

		best, reasons := s.pickPartner(pool, &delivery)
		if best == nil {
			result.Unassigned = append(result.Unassigned, usecase.UnassignedDelivery{
				Delivery: delivery,
				Reasons:  reasons,
			})

			continue
		}

		best.Partner.ActiveDeliveryCount++
		perPartner[best.Partner.ID] = append(perPartner[best.Partner.ID], delivery)

		reasons = componentReasons(best.Score)
		if len(reasons) == 0 {
			reasons = append(reasons, "best available composite score")
		}

		result.Assignments = append(result.Assignments, &entity.Assignment{
			DeliveryID:              delivery.ID,
			PartnerID:               best.Partner.ID,
			Score:                   best.Score,
			Confidence:              scoreConfidence(best.Score),
			Reasons:                 reasons,
			EstimatedArrivalMinutes: best.ArrivalMinutes,
			AssignedAt:              s.clock.Now(),
		})
	}

	result.Batches = s.buildBatches(ctx, pool, perPartner)
	result.UtilizationRate = utilizationRate(len(result.Assignments), len(deliveries))

	s.logger.Info("batch assignment complete",
		slog.Int("deliveries", len(deliveries)),
		slog.Int("assigned", len(result.Assignments)),
		slog.Int("unassigned", len(result.Unassigned)),
		slog.Float64("utilization_rate", result.UtilizationRate),
	)

	return result, nil
}

// pickPartner returns the highest-scoring eligible partner from the pool, or
// nil plus the collected rejection reasons.
func (s *batchService) pickPartner(pool []*entity.Partner, delivery *entity.DeliveryRequest) (*scoredCandidate, []string) {
	var (
		best    *scoredCandidate
		reasons []string
	)

	for _, partner := range pool {
		eligibility := s.filter.Check(partner, delivery)
		if !eligibility.Eligible {
			for _, reason := range eligibility.Reasons {
				reasons = append(reasons, fmt.Sprintf("partner %s: %s", partner.ID, reason))
			}

			continue
		}

		score := s.scorer.Score(partner, delivery)
		if best == nil || score.Composite > best.Score.Composite {
			best = &scoredCandidate{
				Partner:        partner,
				Score:          score,
				ArrivalMinutes: s.scorer.EstimateArrivalMinutes(partner, delivery.Pickup),
			}
		}
	}

	return best, reasons
}

// buildBatches groups each partner's deliveries and optimizes a route over
// their stops. Route optimization is best effort; a batch without a route is
// still a valid assignment set.
func (s *batchService) buildBatches(ctx context.Context, pool []*entity.Partner, perPartner map[uuid.UUID][]entity.DeliveryRequest) []*entity.Batch {
	batches := make([]*entity.Batch, 0, len(perPartner))
	for _, partner := range pool {
		deliveries, ok := perPartner[partner.ID]
		if !ok {
			continue
		}

		batch := &entity.Batch{
			PartnerID:         partner.ID,
			Deliveries:        deliveries,
			RemainingCapacity: partner.RemainingCapacity(),
		}

		route, err := s.engine.Optimize(ctx, batchWaypoints(deliveries), partner.Vehicle)
		if err != nil {
			s.logger.Warn("failed to optimize batch route",
				slog.String("partner_id", partner.ID.String()),
				slog.Int("deliveries", len(deliveries)),
				slog.String("error", err.Error()),
			)
		} else {
			batch.Route = route
		}

		batches = append(batches, batch)
	}

	sort.Slice(batches, func(i, j int) bool {
		return len(batches[i].Deliveries) > len(batches[j].Deliveries)
	})

	return batches
}

func batchWaypoints(deliveries []entity.DeliveryRequest) []entity.Waypoint {
	waypoints := make([]entity.Waypoint, 0, len(deliveries)*2)
	for _, d := range deliveries {
		waypoints = append(waypoints,
			entity.Waypoint{Point: d.Pickup, Kind: entity.WaypointPickup, DeliveryID: d.ID},
			entity.Waypoint{Point: d.Dropoff, Kind: entity.WaypointDelivery, DeliveryID: d.ID},
		)
	}

	return waypoints
}

// utilizationRate is the percentage of the batch's deliveries that found a
// partner.
func utilizationRate(assigned, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(assigned) / float64(total) * 100
}
