package impl

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/domain/entity"
)

func eligiblePartner() *entity.Partner {
	return &entity.Partner{
		ID:                   uuid.New(),
		Location:             entity.GeoPoint{Lat: 25.040, Lon: 121.530},
		Vehicle:              entity.VehicleMotorcycle,
		RatingAvg:            4.6,
		TotalDeliveries:      320,
		SuccessfulDeliveries: 300,
		ActiveDeliveryCount:  1,
		MaxCapacity:          4,
		IsOnline:             true,
		IsAvailable:          true,
		IsVerified:           true,
		JoinedAt:             time.Now().AddDate(-1, 0, 0),
		LastLocationUpdateAt: time.Now(),
	}
}

func standardRequest() *entity.DeliveryRequest {
	return &entity.DeliveryRequest{
		ID:        uuid.New(),
		Pickup:    entity.GeoPoint{Lat: 25.045, Lon: 121.535},
		Dropoff:   entity.GeoPoint{Lat: 25.060, Lon: 121.550},
		Priority:  entity.PriorityNormal,
		Type:      entity.DeliveryStandard,
		WeightKg:  3,
		CreatedAt: time.Now(),
	}
}

func TestConstraintFilter_EligiblePartnerPasses(t *testing.T) {
	filter := NewConstraintFilter(nil)

	eligibility := filter.Check(eligiblePartner(), standardRequest())

	assert.True(t, eligibility.Eligible)
	assert.Empty(t, eligibility.Reasons)
}

func TestConstraintFilter_AtCapacityRejected(t *testing.T) {
	filter := NewConstraintFilter(nil)

	partner := eligiblePartner()
	partner.ActiveDeliveryCount = partner.MaxCapacity

	eligibility := filter.Check(partner, standardRequest())

	require.False(t, eligibility.Eligible)
	assert.Contains(t, eligibility.Reasons[0], "at capacity")
}

func TestConstraintFilter_LowRatingRejected(t *testing.T) {
	filter := NewConstraintFilter(nil)

	partner := eligiblePartner()
	partner.RatingAvg = 3.2

	eligibility := filter.Check(partner, standardRequest())

	require.False(t, eligibility.Eligible)
	assert.Contains(t, eligibility.Reasons[0], "below minimum")
}

func TestConstraintFilter_WeightExceedsVehicleEnvelope(t *testing.T) {
	filter := NewConstraintFilter(nil)

	partner := eligiblePartner()
	partner.Vehicle = entity.VehicleBicycle
	request := standardRequest()
	request.WeightKg = 7 // bicycle limit is 5kg

	eligibility := filter.Check(partner, request)

	require.False(t, eligibility.Eligible)
	assert.Contains(t, eligibility.Reasons[0], "exceeds BICYCLE limit")
}

func TestConstraintFilter_DistanceExceedsWalkingRange(t *testing.T) {
	filter := NewConstraintFilter(nil)

	partner := eligiblePartner()
	partner.Vehicle = entity.VehicleWalking
	request := standardRequest()
	request.WeightKg = 1
	// About 5.6km north of the partner, past the 3km walking range.
	request.Pickup = entity.GeoPoint{Lat: 25.090, Lon: 121.530}

	eligibility := filter.Check(partner, request)

	require.False(t, eligibility.Eligible)
	assert.Contains(t, eligibility.Reasons[0], "WALKING range")
}

func TestConstraintFilter_UnknownVehicleRejected(t *testing.T) {
	filter := NewConstraintFilter(nil)

	partner := eligiblePartner()
	partner.Vehicle = entity.VehicleType("HOVERBOARD")

	eligibility := filter.Check(partner, standardRequest())

	require.False(t, eligibility.Eligible)
	assert.Contains(t, eligibility.Reasons[0], "unknown vehicle type")
}

func TestConstraintFilter_HighPriorityRequiresHigherRating(t *testing.T) {
	filter := NewConstraintFilter(nil)

	partner := eligiblePartner()
	partner.RatingAvg = 3.8 // clears the 3.5 floor but not the urgent bar
	request := standardRequest()
	request.Priority = entity.PriorityHigh

	eligibility := filter.Check(partner, request)

	require.False(t, eligibility.Eligible)
	require.Len(t, eligibility.Reasons, 1)
	assert.Contains(t, eligibility.Reasons[0], "rating >= 4.0")
}

func TestConstraintFilter_PickupOutsideServiceAreas(t *testing.T) {
	filter := NewConstraintFilter(nil)

	partner := eligiblePartner()
	partner.ServiceAreas = []entity.ServiceArea{
		{
			Name: "east-district",
			Boundary: orb.Polygon{
				orb.Ring{
					{121.560, 25.030},
					{121.580, 25.030},
					{121.580, 25.050},
					{121.560, 25.050},
					{121.560, 25.030},
				},
			},
		},
	}

	eligibility := filter.Check(partner, standardRequest())

	require.False(t, eligibility.Eligible)
	assert.Contains(t, eligibility.Reasons[0], "outside partner service areas")
}

func TestConstraintFilter_NoServiceAreasServesEverywhere(t *testing.T) {
	filter := NewConstraintFilter(nil)

	partner := eligiblePartner()
	partner.ServiceAreas = nil

	eligibility := filter.Check(partner, standardRequest())

	assert.True(t, eligibility.Eligible)
}
