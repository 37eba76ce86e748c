package impl

import (
	"time"

	"dispatch/config"
	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"
)

const (
	// neutralScore substitutes for components whose input metrics are absent,
	// keeping dispatch resilient to incomplete partner data.
	neutralScore = 50.0

	// arrivalOverheadMin is the fixed handover overhead added to every ETA.
	arrivalOverheadMin = 2.0
)

// PartnerScorer computes the six-dimension score breakdown for an eligible
// partner. It is pure apart from the injected clock (rush hour, tenure,
// location staleness).
type PartnerScorer struct {
	cfg   config.ScoringConfig
	clock service.Clock
}

// NewPartnerScorer creates a scorer from configuration, falling back to the
// shipped weights and speed table for unset values.
func NewPartnerScorer(cfg *config.ScoringConfig, clock service.Clock) *PartnerScorer {
	resolved := config.DefaultDispatchConfig().Scoring
	if cfg != nil {
		if cfg.Weights != (config.ScoreWeights{}) {
			resolved.Weights = cfg.Weights
		}
		if len(cfg.VehicleSpeedsKmh) > 0 {
			resolved.VehicleSpeedsKmh = cfg.VehicleSpeedsKmh
		}
		if cfg.RushHourFactor > 0 {
			resolved.RushHourFactor = cfg.RushHourFactor
		}
		if cfg.UrbanFactor > 0 {
			resolved.UrbanFactor = cfg.UrbanFactor
		}
	}
	if clock == nil {
		clock = service.NewSystemClock()
	}

	return &PartnerScorer{cfg: resolved, clock: clock}
}

// Score computes all components and the weighted composite for a partner.
func (s *PartnerScorer) Score(partner *entity.Partner, request *entity.DeliveryRequest) entity.ScoreBreakdown {
	now := s.clock.Now()
	distanceKm := partner.Location.DistanceKm(request.Pickup)

	breakdown := entity.ScoreBreakdown{
		Distance:     s.distanceScore(distanceKm),
		Rating:       s.ratingScore(partner),
		Availability: s.availabilityScore(partner, now),
		Experience:   s.experienceScore(partner, now),
		Efficiency:   s.efficiencyScore(partner, now),
		Reliability:  s.reliabilityScore(partner, now),
	}

	w := s.cfg.Weights
	breakdown.Composite = clampScore(
		w.Distance*breakdown.Distance +
			w.Rating*breakdown.Rating +
			w.Availability*breakdown.Availability +
			w.Experience*breakdown.Experience +
			w.Efficiency*breakdown.Efficiency +
			w.Reliability*breakdown.Reliability)

	return breakdown
}

// EstimateArrivalMinutes estimates travel time from the partner to the pickup,
// including rush-hour and urban slowdowns plus a fixed handover overhead.
func (s *PartnerScorer) EstimateArrivalMinutes(partner *entity.Partner, pickup entity.GeoPoint) float64 {
	speed := s.cfg.VehicleSpeedsKmh[string(partner.Vehicle)]
	if speed <= 0 {
		speed = 25 // unknown vehicle, assume a middling urban speed
	}

	distanceKm := partner.Location.DistanceKm(pickup)
	factor := s.cfg.UrbanFactor
	if s.isRushHour(s.clock.Now()) {
		factor *= s.cfg.RushHourFactor
	}

	return distanceKm/speed*60*factor + arrivalOverheadMin
}

func (s *PartnerScorer) distanceScore(distanceKm float64) float64 {
	score := 100 - 8*distanceKm
	if distanceKm <= 2 {
		score += 20
	}
	if distanceKm > 10 {
		score -= (distanceKm - 10) * 15
	}

	return clampScore(score)
}

func (s *PartnerScorer) ratingScore(partner *entity.Partner) float64 {
	if partner.RatingAvg <= 0 {
		return neutralScore
	}

	score := partner.RatingAvg / 5 * 100

	// Few deliveries mean the average is not trustworthy yet; very many
	// mean it is earned.
	switch {
	case partner.TotalDeliveries < 10:
		score *= 0.7
	case partner.TotalDeliveries < 50:
		score *= 0.85
	case partner.TotalDeliveries > 500:
		score *= 1.1
	}

	switch {
	case partner.RatingAvg >= 4.8:
		score += 10
	case partner.RatingAvg >= 4.5:
		score += 5
	}
	if partner.RatingAvg < 3.5 {
		score -= 20
	}

	return clampScore(score)
}

func (s *PartnerScorer) availabilityScore(partner *entity.Partner, now time.Time) float64 {
	if partner.MaxCapacity <= 0 {
		return neutralScore
	}

	util := partner.Utilization()
	score := (1 - util) * 100

	switch {
	case util == 0:
		score += 20
	case util < 0.5:
		score += 10
	}
	if util > 0.8 {
		score -= 15
	}

	// A stale location makes the availability claim doubtful.
	if !partner.LastLocationUpdateAt.IsZero() {
		stale := now.Sub(partner.LastLocationUpdateAt)
		switch {
		case stale > 30*time.Minute:
			score *= 0.7
		case stale > 15*time.Minute:
			score *= 0.85
		}
	}

	return clampScore(score)
}

func (s *PartnerScorer) experienceScore(partner *entity.Partner, now time.Time) float64 {
	tenureMonths := partner.TenureMonths(now)

	score := minFloat(80, float64(partner.TotalDeliveries)/10) + minFloat(20, tenureMonths*2)

	switch {
	case partner.TotalDeliveries >= 1000:
		score += 15
	case partner.TotalDeliveries >= 500:
		score += 10
	case partner.TotalDeliveries >= 100:
		score += 5
	}

	if partner.Vehicle == entity.VehicleMotorcycle && partner.TotalDeliveries > 200 {
		score += 5
	}

	return clampScore(score)
}

func (s *PartnerScorer) efficiencyScore(partner *entity.Partner, now time.Time) float64 {
	if partner.TotalDeliveries <= 0 {
		return neutralScore
	}

	successRate := partner.SuccessRate()
	score := 0.7 * successRate

	avgPerDay := s.averageDeliveriesPerDay(partner, now)
	switch {
	case avgPerDay >= 8 && avgPerDay <= 12:
		score += 30
	case avgPerDay >= 6 && avgPerDay <= 15:
		score += 25
	case avgPerDay >= 4 && avgPerDay <= 18:
		score += 20
	default:
		score += 10
	}

	if successRate >= 95 && avgPerDay >= 8 {
		score += 10
	}

	return clampScore(score)
}

func (s *PartnerScorer) reliabilityScore(partner *entity.Partner, now time.Time) float64 {
	if partner.RatingAvg <= 0 {
		return neutralScore
	}

	score := partner.RatingAvg / 5 * 80

	switch {
	case partner.RatingAvg >= 4.8:
		score += 20
	case partner.RatingAvg >= 4.5:
		score += 15
	case partner.RatingAvg >= 4.0:
		score += 10
	case partner.RatingAvg >= 3.5:
		score += 5
	}

	if partner.TenureMonths(now) > 6 && partner.RatingAvg >= 4.0 {
		score += 5
	}

	return clampScore(score)
}

func (s *PartnerScorer) averageDeliveriesPerDay(partner *entity.Partner, now time.Time) float64 {
	if partner.JoinedAt.IsZero() || !now.After(partner.JoinedAt) {
		return 0
	}

	days := now.Sub(partner.JoinedAt).Hours() / 24
	if days < 1 {
		days = 1
	}

	return float64(partner.TotalDeliveries) / days
}

func (s *PartnerScorer) isRushHour(now time.Time) bool {
	hour := now.Hour()

	return (hour >= 8 && hour < 10) || (hour >= 17 && hour < 19)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}

	return score
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}
