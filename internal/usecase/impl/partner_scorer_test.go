package impl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"
)

// noonClock avoids the rush-hour multiplier in deterministic tests.
func noonClock() service.Clock {
	return service.FixedClock{At: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
}

func rushHourClock() service.Clock {
	return service.FixedClock{At: time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)}
}

func TestPartnerScorer_ComponentsStayInRange(t *testing.T) {
	scorer := NewPartnerScorer(nil, noonClock())
	request := standardRequest()

	partners := []*entity.Partner{
		eligiblePartner(),
		{Location: entity.GeoPoint{Lat: 25.040, Lon: 121.530}, Vehicle: entity.VehicleCar},
		{
			Location:             entity.GeoPoint{Lat: 25.200, Lon: 121.700},
			Vehicle:              entity.VehicleBicycle,
			RatingAvg:            5,
			TotalDeliveries:      2000,
			SuccessfulDeliveries: 2000,
			MaxCapacity:          10,
			JoinedAt:             time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, partner := range partners {
		breakdown := scorer.Score(partner, request)

		for name, score := range map[string]float64{
			"distance":     breakdown.Distance,
			"rating":       breakdown.Rating,
			"availability": breakdown.Availability,
			"experience":   breakdown.Experience,
			"efficiency":   breakdown.Efficiency,
			"reliability":  breakdown.Reliability,
			"composite":    breakdown.Composite,
		} {
			assert.GreaterOrEqual(t, score, 0.0, name)
			assert.LessOrEqual(t, score, 100.0, name)
		}
	}
}

func TestPartnerScorer_NearbyPartnerMaxesDistanceScore(t *testing.T) {
	scorer := NewPartnerScorer(nil, noonClock())

	partner := eligiblePartner()
	request := standardRequest()
	request.Pickup = partner.Location // zero distance

	breakdown := scorer.Score(partner, request)

	assert.InDelta(t, 100.0, breakdown.Distance, 0.001)
	assert.Greater(t, breakdown.Composite, 70.0)
}

func TestPartnerScorer_DistanceScoreDecreasesWithDistance(t *testing.T) {
	scorer := NewPartnerScorer(nil, noonClock())
	partner := eligiblePartner()

	var previous float64 = 101
	// Pickups progressively further north of the partner, inside the band
	// where the score has not yet bottomed out at zero.
	for _, latOffset := range []float64{0.02, 0.04, 0.06, 0.08} {
		request := standardRequest()
		request.Pickup = entity.GeoPoint{
			Lat: partner.Location.Lat + latOffset,
			Lon: partner.Location.Lon,
		}

		breakdown := scorer.Score(partner, request)
		assert.Less(t, breakdown.Distance, previous)
		previous = breakdown.Distance
	}
}

func TestPartnerScorer_RatingConfidenceScaling(t *testing.T) {
	scorer := NewPartnerScorer(nil, noonClock())
	request := standardRequest()

	rookie := eligiblePartner()
	rookie.RatingAvg = 4.0
	rookie.TotalDeliveries = 5
	rookie.SuccessfulDeliveries = 5

	veteran := eligiblePartner()
	veteran.RatingAvg = 4.0
	veteran.TotalDeliveries = 600
	veteran.SuccessfulDeliveries = 570

	rookieScore := scorer.Score(rookie, request)
	veteranScore := scorer.Score(veteran, request)

	// Same average, but the rookie's is discounted and the veteran's boosted.
	assert.InDelta(t, 56.0, rookieScore.Rating, 0.001)  // 80 * 0.7
	assert.InDelta(t, 88.0, veteranScore.Rating, 0.001) // 80 * 1.1
	assert.Greater(t, veteranScore.Rating, rookieScore.Rating)
}

func TestPartnerScorer_UnratedPartnerGetsNeutralScores(t *testing.T) {
	scorer := NewPartnerScorer(nil, noonClock())

	partner := eligiblePartner()
	partner.RatingAvg = 0
	partner.TotalDeliveries = 0
	partner.SuccessfulDeliveries = 0

	breakdown := scorer.Score(partner, standardRequest())

	assert.InDelta(t, neutralScore, breakdown.Rating, 0.001)
	assert.InDelta(t, neutralScore, breakdown.Efficiency, 0.001)
	assert.InDelta(t, neutralScore, breakdown.Reliability, 0.001)
}

func TestPartnerScorer_IdlePartnerAvailabilityBonus(t *testing.T) {
	scorer := NewPartnerScorer(nil, noonClock())

	idle := eligiblePartner()
	idle.ActiveDeliveryCount = 0
	idle.LastLocationUpdateAt = time.Time{}

	busy := eligiblePartner()
	busy.ActiveDeliveryCount = 4
	busy.MaxCapacity = 4
	busy.LastLocationUpdateAt = time.Time{}

	idleScore := scorer.Score(idle, standardRequest())
	busyScore := scorer.Score(busy, standardRequest())

	assert.InDelta(t, 100.0, idleScore.Availability, 0.001) // (1-0)*100 + 20, clamped
	assert.InDelta(t, 0.0, busyScore.Availability, 0.001)   // (1-1)*100 - 15, clamped
}

func TestPartnerScorer_StaleLocationDiscountsAvailability(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	scorer := NewPartnerScorer(nil, service.FixedClock{At: now})

	fresh := eligiblePartner()
	fresh.ActiveDeliveryCount = 2
	fresh.MaxCapacity = 4
	fresh.LastLocationUpdateAt = now.Add(-1 * time.Minute)

	stale := eligiblePartner()
	stale.ActiveDeliveryCount = 2
	stale.MaxCapacity = 4
	stale.LastLocationUpdateAt = now.Add(-45 * time.Minute)

	freshScore := scorer.Score(fresh, standardRequest())
	staleScore := scorer.Score(stale, standardRequest())

	assert.InDelta(t, 50.0, freshScore.Availability, 0.001)
	assert.InDelta(t, 35.0, staleScore.Availability, 0.001) // 50 * 0.7
}

func TestPartnerScorer_CompositeIsWeightedSum(t *testing.T) {
	scorer := NewPartnerScorer(nil, noonClock())

	partner := eligiblePartner()
	breakdown := scorer.Score(partner, standardRequest())

	expected := 0.30*breakdown.Distance +
		0.20*breakdown.Rating +
		0.15*breakdown.Availability +
		0.15*breakdown.Experience +
		0.10*breakdown.Efficiency +
		0.10*breakdown.Reliability

	require.LessOrEqual(t, expected, 100.0)
	assert.InDelta(t, expected, breakdown.Composite, 0.001)
}

func TestPartnerScorer_EstimateArrivalMinutes(t *testing.T) {
	scorer := NewPartnerScorer(nil, noonClock())

	partner := eligiblePartner() // motorcycle, 30 km/h
	pickup := standardRequest().Pickup

	distanceKm := partner.Location.DistanceKm(pickup)
	expected := distanceKm/30*60*1.2 + arrivalOverheadMin

	assert.InDelta(t, expected, scorer.EstimateArrivalMinutes(partner, pickup), 0.001)
}

func TestPartnerScorer_RushHourSlowsArrival(t *testing.T) {
	offPeak := NewPartnerScorer(nil, noonClock())
	peak := NewPartnerScorer(nil, rushHourClock())

	partner := eligiblePartner()
	pickup := standardRequest().Pickup

	offPeakETA := offPeak.EstimateArrivalMinutes(partner, pickup)
	peakETA := peak.EstimateArrivalMinutes(partner, pickup)

	travelOffPeak := offPeakETA - arrivalOverheadMin
	travelPeak := peakETA - arrivalOverheadMin

	assert.InDelta(t, travelOffPeak*1.3, travelPeak, 0.001)
}
