package entity

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestPartner_Utilization(t *testing.T) {
	partner := &Partner{ActiveDeliveryCount: 1, MaxCapacity: 4}
	assert.InDelta(t, 0.25, partner.Utilization(), 0.001)

	partner.ActiveDeliveryCount = 4
	assert.InDelta(t, 1.0, partner.Utilization(), 0.001)
	assert.True(t, partner.AtCapacity())
	assert.Zero(t, partner.RemainingCapacity())

	// Unset capacity counts as fully loaded.
	unset := &Partner{}
	assert.InDelta(t, 1.0, unset.Utilization(), 0.001)
	assert.True(t, unset.AtCapacity())
}

func TestPartner_SuccessRate(t *testing.T) {
	partner := &Partner{TotalDeliveries: 320, SuccessfulDeliveries: 300}
	assert.InDelta(t, 93.75, partner.SuccessRate(), 0.001)

	assert.Zero(t, (&Partner{}).SuccessRate())
}

func TestPartner_TenureMonths(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	partner := &Partner{JoinedAt: now.AddDate(0, 0, -90)}
	assert.InDelta(t, 3.0, partner.TenureMonths(now), 0.001)

	assert.Zero(t, (&Partner{}).TenureMonths(now))
	assert.Zero(t, (&Partner{JoinedAt: now.AddDate(0, 1, 0)}).TenureMonths(now))
}

func TestPartner_ServesPoint(t *testing.T) {
	area := ServiceArea{
		Name: "downtown",
		Boundary: orb.Polygon{
			orb.Ring{
				{121.520, 25.030},
				{121.550, 25.030},
				{121.550, 25.060},
				{121.520, 25.060},
				{121.520, 25.030},
			},
		},
	}
	partner := &Partner{ServiceAreas: []ServiceArea{area}}

	assert.True(t, partner.ServesPoint(GeoPoint{Lat: 25.045, Lon: 121.535}))
	assert.False(t, partner.ServesPoint(GeoPoint{Lat: 25.045, Lon: 121.580}))

	// No configured areas means the partner serves everywhere.
	assert.True(t, (&Partner{}).ServesPoint(GeoPoint{Lat: 0, Lon: 0}))
}

func TestVehicleType_Valid(t *testing.T) {
	for _, vehicle := range KnownVehicleTypes {
		assert.True(t, vehicle.Valid(), string(vehicle))
	}
	assert.False(t, VehicleType("HOVERBOARD").Valid())
	assert.False(t, VehicleType("").Valid())
}
