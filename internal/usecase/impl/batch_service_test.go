package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/config"
	"dispatch/internal/domain/entity"
	"dispatch/internal/infra/optimizer"
	"dispatch/internal/usecase"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine() *optimizer.Engine {
	cfg := *config.DefaultOptimizerConfig()
	cfg.Seed = 42
	cfg.MaxIterations = 2000

	return optimizer.NewEngine(cfg, config.DefaultDispatchConfig().Scoring, nil, noonClock(), quietLogger())
}

func newBatchService() usecase.BatchUsecase {
	return NewBatchService(
		NewConstraintFilter(nil),
		NewPartnerScorer(nil, noonClock()),
		testEngine(),
		noonClock(),
		quietLogger(),
	)
}

func TestBatchService_UrgentDeliveryWinsScarceCapacity(t *testing.T) {
	svc := newBatchService()

	partner := eligiblePartner()
	partner.ActiveDeliveryCount = partner.MaxCapacity - 1 // room for one

	low := *standardRequest()
	low.Priority = entity.PriorityLow
	low.CreatedAt = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	urgent := *standardRequest()
	urgent.Priority = entity.PriorityUrgent
	urgent.CreatedAt = time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

	result, err := svc.AssignBatch(context.Background(), []entity.DeliveryRequest{low, urgent}, []*entity.Partner{partner})

	require.NoError(t, err)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, urgent.ID, result.Assignments[0].DeliveryID)

	require.Len(t, result.Unassigned, 1)
	assert.Equal(t, low.ID, result.Unassigned[0].Delivery.ID)
	assert.Contains(t, result.Unassigned[0].Reasons[0], "at capacity")
}

func TestBatchService_NeverExceedsPartnerCapacity(t *testing.T) {
	svc := newBatchService()

	partner := eligiblePartner()
	partner.ActiveDeliveryCount = 2
	partner.MaxCapacity = 4

	deliveries := []entity.DeliveryRequest{*standardRequest(), *standardRequest(), *standardRequest()}

	result, err := svc.AssignBatch(context.Background(), deliveries, []*entity.Partner{partner})

	require.NoError(t, err)
	assert.Len(t, result.Assignments, 2)
	assert.Len(t, result.Unassigned, 1)
	assert.InDelta(t, 2.0/3.0*100, result.UtilizationRate, 0.001)

	require.Len(t, result.Batches, 1)
	batch := result.Batches[0]
	assert.Equal(t, partner.ID, batch.PartnerID)
	assert.Len(t, batch.Deliveries, 2)
	assert.Equal(t, 0, batch.RemainingCapacity)
}

func TestBatchService_UtilizationRateIsAssignedShare(t *testing.T) {
	svc := newBatchService()

	// Plenty of spare capacity; the rate reflects the batch, not the pool.
	partner := eligiblePartner()
	partner.ActiveDeliveryCount = 0
	partner.MaxCapacity = 10

	deliveries := []entity.DeliveryRequest{*standardRequest(), *standardRequest()}

	result, err := svc.AssignBatch(context.Background(), deliveries, []*entity.Partner{partner})

	require.NoError(t, err)
	require.Len(t, result.Assignments, 2)
	assert.InDelta(t, 100.0, result.UtilizationRate, 0.001)

	empty, err := svc.AssignBatch(context.Background(), nil, []*entity.Partner{eligiblePartner()})
	require.NoError(t, err)
	assert.Zero(t, empty.UtilizationRate)
}

func TestBatchService_ReasonsDerivedFromComponents(t *testing.T) {
	svc := newBatchService()

	partner := eligiblePartner()
	request := *standardRequest()
	request.Pickup = partner.Location // distance component maxed

	result, err := svc.AssignBatch(context.Background(), []entity.DeliveryRequest{request}, []*entity.Partner{partner})

	require.NoError(t, err)
	require.Len(t, result.Assignments, 1)
	assert.Contains(t, result.Assignments[0].Reasons, "very close to pickup")
	assert.NotContains(t, result.Assignments[0].Reasons, "batch assignment")
}

func TestBatchService_PartnerSnapshotsNotMutated(t *testing.T) {
	svc := newBatchService()

	partner := eligiblePartner()
	before := partner.ActiveDeliveryCount

	_, err := svc.AssignBatch(context.Background(), []entity.DeliveryRequest{*standardRequest()}, []*entity.Partner{partner})

	require.NoError(t, err)
	assert.Equal(t, before, partner.ActiveDeliveryCount)
}

func TestBatchService_InvalidDeliveryGoesUnassigned(t *testing.T) {
	svc := newBatchService()

	bad := *standardRequest()
	bad.Pickup.Lat = 95

	result, err := svc.AssignBatch(context.Background(), []entity.DeliveryRequest{bad}, []*entity.Partner{eligiblePartner()})

	require.NoError(t, err)
	assert.Empty(t, result.Assignments)
	require.Len(t, result.Unassigned, 1)
	assert.NotEmpty(t, result.Unassigned[0].Reasons)
}

func TestBatchService_BatchRouteVisitsPickupsBeforeDropoffs(t *testing.T) {
	svc := newBatchService()

	partner := eligiblePartner()
	partner.ActiveDeliveryCount = 0

	first := *standardRequest()
	second := *standardRequest()
	second.Pickup = entity.GeoPoint{Lat: 25.050, Lon: 121.540}
	second.Dropoff = entity.GeoPoint{Lat: 25.035, Lon: 121.525}

	result, err := svc.AssignBatch(context.Background(), []entity.DeliveryRequest{first, second}, []*entity.Partner{partner})

	require.NoError(t, err)
	require.Len(t, result.Batches, 1)

	route := result.Batches[0].Route
	require.NotNil(t, route)
	assert.NoError(t, route.ValidatePrecedence())
	assert.Len(t, route.Waypoints, 4)
	assert.Greater(t, route.TotalDistanceKm, 0.0)
}

func TestBatchService_LargerBatchesSortFirst(t *testing.T) {
	svc := newBatchService()

	// The nearby partner outranks the distant one on every delivery, so it
	// fills up before the distant partner sees any work.
	near := eligiblePartner()
	near.ActiveDeliveryCount = 0
	near.MaxCapacity = 2

	far := eligiblePartner()
	far.ActiveDeliveryCount = 0
	far.Location = entity.GeoPoint{Lat: 25.100, Lon: 121.530}

	deliveries := []entity.DeliveryRequest{*standardRequest(), *standardRequest(), *standardRequest()}

	result, err := svc.AssignBatch(context.Background(), deliveries, []*entity.Partner{far, near})

	require.NoError(t, err)
	require.Len(t, result.Batches, 2)
	assert.Equal(t, near.ID, result.Batches[0].PartnerID)
	assert.Len(t, result.Batches[0].Deliveries, 2)
	assert.Equal(t, far.ID, result.Batches[1].PartnerID)
	assert.Len(t, result.Batches[1].Deliveries, 1)
}

func TestBatchService_CancelledContextStopsAssignment(t *testing.T) {
	svc := newBatchService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.AssignBatch(ctx, []entity.DeliveryRequest{*standardRequest()}, []*entity.Partner{eligiblePartner()})

	require.Error(t, err)
	assert.Nil(t, result)
}
