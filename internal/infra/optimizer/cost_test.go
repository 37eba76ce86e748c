package optimizer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"
	"dispatch/internal/errors"
	mockSvc "dispatch/internal/mocks/service"
)

func newPairModel(t *testing.T) *costModel {
	t.Helper()

	return newCostModel(context.Background(), costModelInput{
		waypoints:        pairWaypoints([4]float64{25.040, 121.530, 25.060, 121.550}),
		roadFactor:       1.3,
		speedKmh:         30,
		rushHourFactor:   1.3,
		urbanFactor:      1.2,
		pickupDwellMin:   3,
		deliveryDwellMin: 5,
		clock:            testClock(),
	})
}

func TestCostModel_DistanceMatrixIsRoadFactored(t *testing.T) {
	model := newPairModel(t)

	direct := model.waypoints[0].Point.DistanceKm(model.waypoints[1].Point)

	assert.InDelta(t, direct*1.3, model.distKm[0][1], 0.001)
	assert.InDelta(t, model.distKm[0][1], model.distKm[1][0], 0.001)
	assert.Zero(t, model.distKm[0][0])
}

func TestCostModel_DurationIncludesUrbanSlowdownAndDwell(t *testing.T) {
	model := newPairModel(t)

	travel := model.distKm[0][1] / 30 * 60 * 1.2 // midday, no rush factor
	assert.InDelta(t, travel, model.durMin[0][1], 0.001)

	// Dwell at both stops on top of the travel leg.
	assert.InDelta(t, travel+3+5, model.pathDurationMin([]int{0, 1}), 0.001)
}

func TestCostModel_RushHourStretchesDurations(t *testing.T) {
	waypoints := pairWaypoints([4]float64{25.040, 121.530, 25.060, 121.550})

	midday := newCostModel(context.Background(), costModelInput{
		waypoints: waypoints, roadFactor: 1.3, speedKmh: 30,
		rushHourFactor: 1.3, urbanFactor: 1.2,
		clock: testClock(),
	})
	peak := newCostModel(context.Background(), costModelInput{
		waypoints: waypoints, roadFactor: 1.3, speedKmh: 30,
		rushHourFactor: 1.3, urbanFactor: 1.2,
		clock: service.FixedClock{At: time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)},
	})

	assert.InDelta(t, midday.durMin[0][1]*1.3, peak.durMin[0][1], 0.001)
}

func TestCostModel_TrafficDurationsTakePrecedence(t *testing.T) {
	traffic := mockSvc.NewMockTrafficProvider(t)
	traffic.EXPECT().
		SegmentDuration(mock.Anything, mock.AnythingOfType("entity.GeoPoint"), mock.AnythingOfType("entity.GeoPoint")).
		Return(10*time.Minute, nil)

	model := newCostModel(context.Background(), costModelInput{
		waypoints:      pairWaypoints([4]float64{25.040, 121.530, 25.060, 121.550}),
		roadFactor:     1.3,
		speedKmh:       30,
		rushHourFactor: 1.3,
		urbanFactor:    1.2,
		traffic:        traffic,
		clock:          testClock(),
	})

	assert.InDelta(t, 10.0, model.durMin[0][1], 0.001)
}

func TestCostModel_TrafficFailureFallsBackToSpeedEstimate(t *testing.T) {
	traffic := mockSvc.NewMockTrafficProvider(t)
	traffic.EXPECT().
		SegmentDuration(mock.Anything, mock.AnythingOfType("entity.GeoPoint"), mock.AnythingOfType("entity.GeoPoint")).
		Return(time.Duration(0), errors.New("provider offline"))

	model := newCostModel(context.Background(), costModelInput{
		waypoints:      pairWaypoints([4]float64{25.040, 121.530, 25.060, 121.550}),
		roadFactor:     1.3,
		speedKmh:       30,
		rushHourFactor: 1.3,
		urbanFactor:    1.2,
		traffic:        traffic,
		clock:          testClock(),
	})

	expected := model.distKm[0][1] / 30 * 60 * 1.2
	assert.InDelta(t, expected, model.durMin[0][1], 0.001)
}

func TestCostModel_TourCostPenalizesPrecedenceViolations(t *testing.T) {
	model := newPairModel(t)

	feasible := model.tourCost([]int{0, 1})
	inverted := model.tourCost([]int{1, 0})

	assert.InDelta(t, feasible+precedencePenaltyKm, inverted, 0.001)
}

func TestCostModel_RepairPrecedenceSwapsInvertedPairs(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	waypoints := []entity.Waypoint{
		{Point: entity.GeoPoint{Lat: 25.040, Lon: 121.530}, Kind: entity.WaypointPickup, DeliveryID: a},
		{Point: entity.GeoPoint{Lat: 25.050, Lon: 121.540}, Kind: entity.WaypointDelivery, DeliveryID: a},
		{Point: entity.GeoPoint{Lat: 25.045, Lon: 121.520}, Kind: entity.WaypointPickup, DeliveryID: b},
		{Point: entity.GeoPoint{Lat: 25.035, Lon: 121.555}, Kind: entity.WaypointDelivery, DeliveryID: b},
	}

	model := newCostModel(context.Background(), costModelInput{
		waypoints: waypoints, roadFactor: 1.3, speedKmh: 30,
		rushHourFactor: 1.3, urbanFactor: 1.2,
		clock: testClock(),
	})

	// Both pairs inverted.
	order := []int{1, 3, 2, 0}
	require.Equal(t, 2, model.precedenceViolations(order))

	model.repairPrecedence(order)

	assert.Zero(t, model.precedenceViolations(order))
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, order)
}
