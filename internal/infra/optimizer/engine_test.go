package optimizer

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/config"
	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"
)

func testClock() service.Clock {
	// Midday, outside both rush-hour windows.
	return service.FixedClock{At: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
}

func newTestEngine(seed int64) *Engine {
	cfg := *config.DefaultOptimizerConfig()
	cfg.Seed = seed
	cfg.MaxIterations = 2000

	return NewEngine(
		cfg,
		config.DefaultDispatchConfig().Scoring,
		nil,
		testClock(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

// pairWaypoints builds pickup/delivery stop pairs from coordinate pairs.
func pairWaypoints(pairs ...[4]float64) []entity.Waypoint {
	waypoints := make([]entity.Waypoint, 0, len(pairs)*2)
	for _, p := range pairs {
		id := uuid.New()
		waypoints = append(waypoints,
			entity.Waypoint{Point: entity.GeoPoint{Lat: p[0], Lon: p[1]}, Kind: entity.WaypointPickup, DeliveryID: id},
			entity.Waypoint{Point: entity.GeoPoint{Lat: p[2], Lon: p[3]}, Kind: entity.WaypointDelivery, DeliveryID: id},
		)
	}

	return waypoints
}

func TestEngine_SinglePairUsesRoadFactoredDistance(t *testing.T) {
	engine := newTestEngine(7)

	waypoints := pairWaypoints([4]float64{25.040, 121.530, 25.060, 121.550})
	direct := waypoints[0].Point.DistanceKm(waypoints[1].Point)

	route, err := engine.Optimize(context.Background(), waypoints, entity.VehicleMotorcycle)

	require.NoError(t, err)
	require.Len(t, route.Waypoints, 2)
	assert.Equal(t, entity.WaypointPickup, route.Waypoints[0].Kind)
	assert.InDelta(t, direct*1.3, route.TotalDistanceKm, 0.001)
	assert.Greater(t, route.EstimatedDurationMin, 0.0)
	assert.NotEmpty(t, route.Algorithm)
	assert.NoError(t, route.ValidatePrecedence())
}

func TestEngine_SingleWaypointShortCircuits(t *testing.T) {
	engine := newTestEngine(7)

	waypoints := []entity.Waypoint{
		{Point: entity.GeoPoint{Lat: 25.040, Lon: 121.530}, Kind: entity.WaypointPlain},
	}

	route, err := engine.Optimize(context.Background(), waypoints, entity.VehicleCar)

	require.NoError(t, err)
	require.Len(t, route.Waypoints, 1)
	assert.Zero(t, route.TotalDistanceKm)
}

func TestEngine_RouteAlwaysVisitsPickupFirst(t *testing.T) {
	engine := newTestEngine(99)

	// Stops deliberately interleaved so the identity order already violates
	// precedence for the second delivery.
	a := uuid.New()
	b := uuid.New()
	waypoints := []entity.Waypoint{
		{Point: entity.GeoPoint{Lat: 25.040, Lon: 121.530}, Kind: entity.WaypointPickup, DeliveryID: a},
		{Point: entity.GeoPoint{Lat: 25.071, Lon: 121.562}, Kind: entity.WaypointDelivery, DeliveryID: b},
		{Point: entity.GeoPoint{Lat: 25.055, Lon: 121.541}, Kind: entity.WaypointDelivery, DeliveryID: a},
		{Point: entity.GeoPoint{Lat: 25.048, Lon: 121.519}, Kind: entity.WaypointPickup, DeliveryID: b},
	}

	route, err := engine.Optimize(context.Background(), waypoints, entity.VehicleMotorcycle)

	require.NoError(t, err)
	assert.NoError(t, route.ValidatePrecedence())
	assert.Len(t, route.Waypoints, 4)
}

func TestEngine_DeterministicUnderFixedSeed(t *testing.T) {
	waypoints := pairWaypoints(
		[4]float64{25.040, 121.530, 25.061, 121.552},
		[4]float64{25.052, 121.517, 25.033, 121.544},
		[4]float64{25.078, 121.539, 25.046, 121.561},
	)

	first, err := newTestEngine(1234).Optimize(context.Background(), waypoints, entity.VehicleMotorcycle)
	require.NoError(t, err)

	second, err := newTestEngine(1234).Optimize(context.Background(), waypoints, entity.VehicleMotorcycle)
	require.NoError(t, err)

	assert.InDelta(t, first.TotalDistanceKm, second.TotalDistanceKm, 0.000001)
	assert.InDelta(t, first.EstimatedDurationMin, second.EstimatedDurationMin, 0.000001)
	assert.InDelta(t, first.CompositeScore, second.CompositeScore, 0.000001)
}

func TestEngine_RejectsEmptyWaypoints(t *testing.T) {
	engine := newTestEngine(7)

	route, err := engine.Optimize(context.Background(), nil, entity.VehicleCar)

	require.Error(t, err)
	assert.Nil(t, route)
}

func TestEngine_RejectsUnknownVehicle(t *testing.T) {
	engine := newTestEngine(7)

	waypoints := pairWaypoints([4]float64{25.040, 121.530, 25.060, 121.550})

	_, err := engine.Optimize(context.Background(), waypoints, entity.VehicleType("HOVERBOARD"))

	assert.ErrorIs(t, err, entity.ErrUnknownVehicleType)
}

func TestEngine_RejectsInvalidCoordinate(t *testing.T) {
	engine := newTestEngine(7)

	waypoints := pairWaypoints([4]float64{95.0, 121.530, 25.060, 121.550})

	_, err := engine.Optimize(context.Background(), waypoints, entity.VehicleCar)

	assert.ErrorIs(t, err, entity.ErrInvalidCoordinate)
}

func TestEngine_RejectsPickupWithoutDelivery(t *testing.T) {
	engine := newTestEngine(7)

	waypoints := []entity.Waypoint{
		{Point: entity.GeoPoint{Lat: 25.040, Lon: 121.530}, Kind: entity.WaypointPickup, DeliveryID: uuid.New()},
		{Point: entity.GeoPoint{Lat: 25.060, Lon: 121.550}, Kind: entity.WaypointPlain},
	}

	_, err := engine.Optimize(context.Background(), waypoints, entity.VehicleCar)

	assert.ErrorIs(t, err, entity.ErrIncompletePair)
}

func TestEngine_PlainWaypointsNeedNoPairing(t *testing.T) {
	engine := newTestEngine(7)

	waypoints := []entity.Waypoint{
		{Point: entity.GeoPoint{Lat: 25.040, Lon: 121.530}, Kind: entity.WaypointPlain},
		{Point: entity.GeoPoint{Lat: 25.055, Lon: 121.545}, Kind: entity.WaypointPlain},
		{Point: entity.GeoPoint{Lat: 25.048, Lon: 121.560}, Kind: entity.WaypointPlain},
	}

	route, err := engine.Optimize(context.Background(), waypoints, entity.VehicleBicycle)

	require.NoError(t, err)
	assert.Len(t, route.Waypoints, 3)
}

func TestEngine_WinnerBeatsIdentityTour(t *testing.T) {
	engine := newTestEngine(321)

	// Zig-zag input order; any sensible search finds a shorter path.
	waypoints := pairWaypoints(
		[4]float64{25.040, 121.530, 25.090, 121.580},
		[4]float64{25.042, 121.532, 25.088, 121.578},
		[4]float64{25.044, 121.534, 25.086, 121.576},
	)

	route, err := engine.Optimize(context.Background(), waypoints, entity.VehicleMotorcycle)
	require.NoError(t, err)

	identity := make([]entity.Waypoint, len(waypoints))
	copy(identity, waypoints)
	var identityDistance float64
	for i := 1; i < len(identity); i++ {
		identityDistance += identity[i-1].Point.DistanceKm(identity[i].Point) * 1.3
	}

	assert.LessOrEqual(t, route.TotalDistanceKm, identityDistance+0.001)
	assert.NoError(t, route.ValidatePrecedence())
}

func TestEngine_WinnerAtLeastMatchesNearestNeighbor(t *testing.T) {
	engine := newTestEngine(55)

	waypoints := pairWaypoints(
		[4]float64{25.040, 121.530, 25.061, 121.552},
		[4]float64{25.052, 121.517, 25.033, 121.544},
		[4]float64{25.078, 121.539, 25.046, 121.561},
	)

	route, err := engine.Optimize(context.Background(), waypoints, entity.VehicleMotorcycle)
	require.NoError(t, err)

	// Rebuild the greedy baseline over an identical cost model; the racing
	// winner can never score below it.
	model := newCostModel(context.Background(), costModelInput{
		waypoints:        waypoints,
		roadFactor:       1.3,
		speedKmh:         30,
		rushHourFactor:   1.3,
		urbanFactor:      1.2,
		pickupDwellMin:   3,
		deliveryDwellMin: 5,
		clock:            testClock(),
	})
	baseline, err := NewNearestNeighborSolver().Solve(context.Background(), model, nil)
	require.NoError(t, err)
	model.repairPrecedence(baseline.Order)
	baselineRoute := engine.buildRoute(model, baseline, "nearest-neighbor-2opt")

	assert.GreaterOrEqual(t, route.CompositeScore, baselineRoute.CompositeScore-0.000001)
}

func TestImprovementQuality_Bounds(t *testing.T) {
	assert.Zero(t, improvementQuality(0, 5))
	assert.Zero(t, improvementQuality(10, 12))
	assert.InDelta(t, 50.0, improvementQuality(10, 5), 0.001)
	assert.InDelta(t, 100.0, improvementQuality(10, 0), 0.001)
}

func TestCompositeScore_PrefersShorterRoutes(t *testing.T) {
	short := compositeScore(5, 20, "nearest-neighbor-2opt", 4, 50)
	long := compositeScore(30, 90, "nearest-neighbor-2opt", 4, 50)

	assert.Greater(t, short, long)
}

func TestCompositeScore_AlgorithmWeightBreaksTies(t *testing.T) {
	genetic := compositeScore(5, 20, "genetic-algorithm", 4, 50)
	nearest := compositeScore(5, 20, "nearest-neighbor-2opt", 4, 50)

	assert.InDelta(t, 0.20*(95-80), genetic-nearest, 0.001)
}

func TestEngine_ContextTimeoutWiredToErrors(t *testing.T) {
	engine := newTestEngine(7)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	waypoints := pairWaypoints(
		[4]float64{25.040, 121.530, 25.061, 121.552},
		[4]float64{25.052, 121.517, 25.033, 121.544},
	)

	_, err := engine.Optimize(ctx, waypoints, entity.VehicleMotorcycle)

	// Every solver sees an already-cancelled context.
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
