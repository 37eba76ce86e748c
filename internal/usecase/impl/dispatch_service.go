package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"dispatch/config"
	"dispatch/internal/domain/entity"
	domainerrors "dispatch/internal/domain/errors"
	"dispatch/internal/domain/repository"
	"dispatch/internal/domain/service"
	"dispatch/internal/errors"
	"dispatch/internal/usecase"
)

const (
	confidenceBase = 70.0
	confidenceMin  = 50.0
	confidenceMax  = 95.0

	urgencyRatingBoost  = 10.0
	urgencyArrivalBoost = 5.0
	urgencyRatingBar    = 4.5
	urgencyArrivalBarMin = 10.0
)

// scoredCandidate is a partner that survived filtering, carrying its scores
// through the boost and fairness passes.
type scoredCandidate struct {
	Partner           *entity.Partner
	Score             entity.ScoreBreakdown
	ArrivalMinutes    float64
	RecentAssignments int
}

// attemptState tracks the dispatch attempts in flight for one delivery. The
// entry lives only while at least one attempt is running.
type attemptState struct {
	seq       uint64
	committed uint64
	inflight  int
}

type dispatchService struct {
	partners  repository.PartnerRepository
	filter    *ConstraintFilter
	scorer    *PartnerScorer
	balancer  *LoadBalancer
	publisher service.EventPublisher
	clock     service.Clock
	logger    *slog.Logger
	cfg       config.SelectorConfig

	// attempts guards against stale dispatch attempts: a widened-radius
	// retry must not overwrite an assignment a newer attempt already made.
	mu       sync.Mutex
	attempts map[uuid.UUID]*attemptState
}

// DispatchServiceParams bundles the dispatch service dependencies.
type DispatchServiceParams struct {
	Partners  repository.PartnerRepository
	Filter    *ConstraintFilter
	Scorer    *PartnerScorer
	Balancer  *LoadBalancer
	Publisher service.EventPublisher
	Clock     service.Clock
	Logger    *slog.Logger
	Selector  *config.SelectorConfig
}

// NewDispatchService creates the partner selection service.
func NewDispatchService(params DispatchServiceParams) usecase.DispatchUsecase {
	resolved := config.DefaultDispatchConfig().Selector
	if params.Selector != nil {
		if params.Selector.DefaultRadiusKm > 0 {
			resolved.DefaultRadiusKm = params.Selector.DefaultRadiusKm
		}
		if params.Selector.UrgentRadiusKm > 0 {
			resolved.UrgentRadiusKm = params.Selector.UrgentRadiusKm
		}
		if params.Selector.LowPriorityRadiusKm > 0 {
			resolved.LowPriorityRadiusKm = params.Selector.LowPriorityRadiusKm
		}
		if params.Selector.MaxCommitRetries > 0 {
			resolved.MaxCommitRetries = params.Selector.MaxCommitRetries
		}
	}
	clock := params.Clock
	if clock == nil {
		clock = service.NewSystemClock()
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &dispatchService{
		partners:  params.Partners,
		filter:    params.Filter,
		scorer:    params.Scorer,
		balancer:  params.Balancer,
		publisher: params.Publisher,
		clock:     clock,
		logger:    logger,
		cfg:       resolved,
		attempts:  make(map[uuid.UUID]*attemptState),
	}
}

// FindBestPartner implements usecase.DispatchUsecase.
func (s *dispatchService) FindBestPartner(ctx context.Context, request *entity.DeliveryRequest) (*entity.Assignment, error) {
	if err := request.Validate(); err != nil {
		return nil, domainerrors.ErrValidation.WithDetails(err.Error())
	}

	attempt := s.beginAttempt(request.ID)
	defer s.endAttempt(request.ID)

	candidates, err := s.partners.ListCandidates(ctx, request.Pickup, s.searchRadiusKm(request), repository.ActiveCandidates())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list candidate partners")
	}
	if len(candidates) == 0 {
		return nil, domainerrors.ErrNoCandidates.WithDetails(
			fmt.Sprintf("no partners within %.0fkm of pickup", s.searchRadiusKm(request)))
	}

	ranked, rejections := s.filterAndScore(candidates, request)
	if len(ranked) == 0 {
		return nil, domainerrors.ErrNoEligiblePartner.WithReasons(rejections)
	}

	s.applyUrgencyBoost(ranked, request)
	s.balancer.Rebalance(ctx, ranked)

	return s.commit(ctx, request, ranked, attempt)
}

// searchRadiusKm widens the candidate search for urgent work and narrows it
// for low-priority work.
func (s *dispatchService) searchRadiusKm(request *entity.DeliveryRequest) float64 {
	switch {
	case request.Priority.IsUrgent() || request.Type == entity.DeliveryExpress:
		return s.cfg.UrgentRadiusKm
	case request.Priority == entity.PriorityLow:
		return s.cfg.LowPriorityRadiusKm
	default:
		return s.cfg.DefaultRadiusKm
	}
}

func (s *dispatchService) filterAndScore(candidates []*entity.Partner, request *entity.DeliveryRequest) ([]*scoredCandidate, []string) {
	ranked := make([]*scoredCandidate, 0, len(candidates))
	var rejections []string

	for _, partner := range candidates {
		eligibility := s.filter.Check(partner, request)
		if !eligibility.Eligible {
			for _, reason := range eligibility.Reasons {
				rejections = append(rejections, fmt.Sprintf("partner %s: %s", partner.ID, reason))
			}

			continue
		}

		ranked = append(ranked, &scoredCandidate{
			Partner:        partner,
			Score:          s.scorer.Score(partner, request),
			ArrivalMinutes: s.scorer.EstimateArrivalMinutes(partner, request.Pickup),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Composite > ranked[j].Score.Composite
	})

	return ranked, rejections
}

// applyUrgencyBoost lifts fast, highly rated candidates for urgent work.
func (s *dispatchService) applyUrgencyBoost(ranked []*scoredCandidate, request *entity.DeliveryRequest) {
	if !request.Priority.IsUrgent() && request.Type != entity.DeliveryExpress {
		return
	}

	for _, candidate := range ranked {
		if candidate.Partner.RatingAvg >= urgencyRatingBar {
			candidate.Score.Composite = clampScore(candidate.Score.Composite + urgencyRatingBoost)
		}
		if candidate.ArrivalMinutes <= urgencyArrivalBarMin {
			candidate.Score.Composite = clampScore(candidate.Score.Composite + urgencyArrivalBoost)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Composite > ranked[j].Score.Composite
	})
}

// commit walks the ranking and claims capacity on the first partner that still
// has room. Losing the capacity race moves on to the next candidate instead of
// failing the dispatch.
func (s *dispatchService) commit(ctx context.Context, request *entity.DeliveryRequest, ranked []*scoredCandidate, attempt uint64) (*entity.Assignment, error) {
	limit := s.cfg.MaxCommitRetries + 1
	if limit > len(ranked) {
		limit = len(ranked)
	}

	for _, candidate := range ranked[:limit] {
		if err := s.partners.IncrementActive(ctx, candidate.Partner.ID); err != nil {
			if errors.Is(err, repository.ErrCapacityConflict) {
				s.logger.Debug("lost capacity race, trying next candidate",
					slog.String("partner_id", candidate.Partner.ID.String()),
					slog.String("delivery_id", request.ID.String()),
				)

				continue
			}

			return nil, errors.Wrap(err, "failed to claim partner capacity")
		}

		if !s.finishAttempt(request.ID, attempt) {
			// A newer attempt already committed this delivery; release the
			// capacity we just claimed and discard this result.
			if err := s.partners.DecrementActive(ctx, candidate.Partner.ID); err != nil {
				s.logger.Warn("failed to release capacity for stale attempt",
					slog.String("partner_id", candidate.Partner.ID.String()),
					slog.String("error", err.Error()),
				)
			}

			return nil, domainerrors.ErrCapacityExhausted.WithDetails("superseded by a newer dispatch attempt")
		}

		assignment := s.buildAssignment(request, candidate)
		s.recordAndPublish(ctx, assignment)

		return assignment, nil
	}

	return nil, domainerrors.ErrCapacityExhausted.WithDetails(
		fmt.Sprintf("tried %d ranked candidates", limit))
}

func (s *dispatchService) buildAssignment(request *entity.DeliveryRequest, candidate *scoredCandidate) *entity.Assignment {
	return &entity.Assignment{
		DeliveryID:              request.ID,
		PartnerID:               candidate.Partner.ID,
		Score:                   candidate.Score,
		Confidence:              scoreConfidence(candidate.Score),
		Reasons:                 s.selectionReasons(candidate),
		EstimatedArrivalMinutes: candidate.ArrivalMinutes,
		AssignedAt:              s.clock.Now(),
	}
}

func (s *dispatchService) recordAndPublish(ctx context.Context, assignment *entity.Assignment) {
	if recorder := s.balancer; recorder != nil && recorder.recent != nil {
		if err := recorder.recent.Record(ctx, assignment); err != nil {
			s.logger.Warn("failed to record assignment for fairness history",
				slog.String("partner_id", assignment.PartnerID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.publisher == nil {
		return
	}
	event := &service.AssignmentEvent{
		DeliveryID:              assignment.DeliveryID.String(),
		PartnerID:               assignment.PartnerID.String(),
		CompositeScore:          assignment.Score.Composite,
		Confidence:              assignment.Confidence,
		EstimatedArrivalMinutes: assignment.EstimatedArrivalMinutes,
		Reasons:                 assignment.Reasons,
	}
	if err := s.publisher.PublishAssignmentEvent(ctx, event); err != nil {
		// Publishing is best effort; the assignment already committed.
		s.logger.Warn("failed to publish assignment event",
			slog.String("delivery_id", assignment.DeliveryID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// scoreConfidence derives a [50, 95] confidence figure from component
// strengths.
func scoreConfidence(score entity.ScoreBreakdown) float64 {
	confidence := confidenceBase

	if score.Distance >= 80 {
		confidence += 10
	} else if score.Distance < 40 {
		confidence -= 10
	}

	if score.Rating >= 80 {
		confidence += 8
	} else if score.Rating < 40 {
		confidence -= 15
	}

	if score.Availability >= 70 {
		confidence += 5
	} else if score.Availability < 30 {
		confidence -= 10
	}

	if score.Experience >= 70 {
		confidence += 5
	}
	if score.Efficiency >= 80 {
		confidence += 7
	}

	if confidence < confidenceMin {
		return confidenceMin
	}
	if confidence > confidenceMax {
		return confidenceMax
	}

	return confidence
}

// componentReasons turns component strengths into human-readable reasons for
// observability.
func componentReasons(score entity.ScoreBreakdown) []string {
	var reasons []string

	if score.Distance >= 80 {
		reasons = append(reasons, "very close to pickup")
	}
	if score.Rating >= 80 {
		reasons = append(reasons, "highly rated partner")
	}
	if score.Availability >= 80 {
		reasons = append(reasons, "plenty of spare capacity")
	}
	if score.Experience >= 70 {
		reasons = append(reasons, "experienced partner")
	}
	if score.Efficiency >= 80 {
		reasons = append(reasons, "excellent completion rate")
	}

	return reasons
}

func (s *dispatchService) selectionReasons(candidate *scoredCandidate) []string {
	reasons := componentReasons(candidate.Score)
	if candidate.RecentAssignments == 0 {
		reasons = append(reasons, "no recent assignments")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "best available composite score")
	}

	return reasons
}

// beginAttempt registers a new dispatch attempt for a delivery and returns its
// sequence number.
func (s *dispatchService) beginAttempt(deliveryID uuid.UUID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.attempts[deliveryID]
	if !ok {
		state = &attemptState{}
		s.attempts[deliveryID] = state
	}
	state.seq++
	state.inflight++

	return state.seq
}

// endAttempt releases one in-flight attempt and drops the delivery's tracking
// entry once none remain, so the map stays bounded by concurrent work rather
// than dispatch history.
func (s *dispatchService) endAttempt(deliveryID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.attempts[deliveryID]
	if !ok {
		return
	}
	state.inflight--
	if state.inflight <= 0 {
		delete(s.attempts, deliveryID)
	}
}

// finishAttempt marks the attempt committed unless a newer attempt for the
// same delivery already did.
func (s *dispatchService) finishAttempt(deliveryID uuid.UUID, attempt uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.attempts[deliveryID]
	if !ok {
		return true
	}
	if state.committed > attempt {
		return false
	}
	state.committed = attempt

	return true
}
