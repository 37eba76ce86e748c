package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/repository"
)

func seededPartner() *entity.Partner {
	return &entity.Partner{
		ID:          uuid.New(),
		Location:    entity.GeoPoint{Lat: 25.040, Lon: 121.530},
		Vehicle:     entity.VehicleMotorcycle,
		MaxCapacity: 4,
		IsOnline:    true,
		IsAvailable: true,
		IsVerified:  true,
	}
}

func TestPartnerRepository_ListCandidatesFiltersRadiusAndFlags(t *testing.T) {
	repo := NewPartnerRepository()
	ctx := context.Background()

	near := seededPartner()
	far := seededPartner()
	far.Location = entity.GeoPoint{Lat: 25.300, Lon: 121.530} // ~29km away
	offline := seededPartner()
	offline.IsOnline = false
	repo.Seed(near, far, offline)

	candidates, err := repo.ListCandidates(ctx, entity.GeoPoint{Lat: 25.040, Lon: 121.530}, 10, repository.ActiveCandidates())

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, near.ID, candidates[0].ID)
}

func TestPartnerRepository_ListCandidatesVehicleFilter(t *testing.T) {
	repo := NewPartnerRepository()
	ctx := context.Background()

	rider := seededPartner()
	cyclist := seededPartner()
	cyclist.Vehicle = entity.VehicleBicycle
	repo.Seed(rider, cyclist)

	vehicle := entity.VehicleBicycle
	filters := repository.ActiveCandidates()
	filters.Vehicle = &vehicle

	candidates, err := repo.ListCandidates(ctx, rider.Location, 10, filters)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, cyclist.ID, candidates[0].ID)
}

func TestPartnerRepository_SnapshotsAreClones(t *testing.T) {
	repo := NewPartnerRepository()
	ctx := context.Background()

	partner := seededPartner()
	repo.Seed(partner)

	snapshot, err := repo.GetByID(ctx, partner.ID)
	require.NoError(t, err)

	snapshot.ActiveDeliveryCount = 99

	fresh, err := repo.GetByID(ctx, partner.ID)
	require.NoError(t, err)
	assert.Zero(t, fresh.ActiveDeliveryCount)
}

func TestPartnerRepository_GetByIDUnknown(t *testing.T) {
	repo := NewPartnerRepository()

	_, err := repo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrPartnerNotFound)
}

func TestPartnerRepository_IncrementActiveStopsAtCapacity(t *testing.T) {
	repo := NewPartnerRepository()
	ctx := context.Background()

	partner := seededPartner()
	partner.MaxCapacity = 2
	repo.Seed(partner)

	require.NoError(t, repo.IncrementActive(ctx, partner.ID))
	require.NoError(t, repo.IncrementActive(ctx, partner.ID))
	assert.ErrorIs(t, repo.IncrementActive(ctx, partner.ID), repository.ErrCapacityConflict)

	snapshot, err := repo.GetByID(ctx, partner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.ActiveDeliveryCount)
}

func TestPartnerRepository_ConcurrentIncrementsNeverOverClaim(t *testing.T) {
	repo := NewPartnerRepository()
	ctx := context.Background()

	partner := seededPartner()
	partner.MaxCapacity = 5
	repo.Seed(partner)

	const attempts = 50
	var wg sync.WaitGroup
	successes := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.IncrementActive(ctx, partner.ID); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	assert.Len(t, successes, 5)

	snapshot, err := repo.GetByID(ctx, partner.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, snapshot.ActiveDeliveryCount)
}

func TestPartnerRepository_DecrementActiveFloorsAtZero(t *testing.T) {
	repo := NewPartnerRepository()
	ctx := context.Background()

	partner := seededPartner()
	repo.Seed(partner)

	require.NoError(t, repo.DecrementActive(ctx, partner.ID))

	snapshot, err := repo.GetByID(ctx, partner.ID)
	require.NoError(t, err)
	assert.Zero(t, snapshot.ActiveDeliveryCount)
}
