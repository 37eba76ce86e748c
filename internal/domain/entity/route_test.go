package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoute_ValidatePrecedence(t *testing.T) {
	id := uuid.New()
	route := &Route{Waypoints: []Waypoint{
		{Point: GeoPoint{Lat: 25.040, Lon: 121.530}, Kind: WaypointPickup, DeliveryID: id},
		{Point: GeoPoint{Lat: 25.060, Lon: 121.550}, Kind: WaypointDelivery, DeliveryID: id},
	}}

	assert.NoError(t, route.ValidatePrecedence())
}

func TestRoute_ValidatePrecedence_DeliveryBeforePickup(t *testing.T) {
	id := uuid.New()
	route := &Route{Waypoints: []Waypoint{
		{Point: GeoPoint{Lat: 25.060, Lon: 121.550}, Kind: WaypointDelivery, DeliveryID: id},
		{Point: GeoPoint{Lat: 25.040, Lon: 121.530}, Kind: WaypointPickup, DeliveryID: id},
	}}

	assert.ErrorIs(t, route.ValidatePrecedence(), ErrPrecedenceViolated)
}

func TestRoute_ValidatePrecedence_MissingStop(t *testing.T) {
	pickupOnly := &Route{Waypoints: []Waypoint{
		{Point: GeoPoint{Lat: 25.040, Lon: 121.530}, Kind: WaypointPickup, DeliveryID: uuid.New()},
	}}
	assert.ErrorIs(t, pickupOnly.ValidatePrecedence(), ErrIncompletePair)

	deliveryOnly := &Route{Waypoints: []Waypoint{
		{Point: GeoPoint{Lat: 25.060, Lon: 121.550}, Kind: WaypointDelivery, DeliveryID: uuid.New()},
	}}
	assert.ErrorIs(t, deliveryOnly.ValidatePrecedence(), ErrIncompletePair)
}

func TestRoute_ValidatePrecedence_PlainWaypointsIgnored(t *testing.T) {
	route := &Route{Waypoints: []Waypoint{
		{Point: GeoPoint{Lat: 25.040, Lon: 121.530}, Kind: WaypointPlain},
		{Point: GeoPoint{Lat: 25.060, Lon: 121.550}, Kind: WaypointPlain},
	}}

	assert.NoError(t, route.ValidatePrecedence())
}

func TestGeoPoint_Valid(t *testing.T) {
	assert.True(t, GeoPoint{Lat: 25.040, Lon: 121.530}.Valid())
	assert.True(t, GeoPoint{Lat: -90, Lon: 180}.Valid())
	assert.False(t, GeoPoint{Lat: 95, Lon: 121.530}.Valid())
	assert.False(t, GeoPoint{Lat: 25.040, Lon: -181}.Valid())
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	taipeiMain := GeoPoint{Lat: 25.0478, Lon: 121.5170}
	taipei101 := GeoPoint{Lat: 25.0340, Lon: 121.5645}

	distance := taipeiMain.DistanceKm(taipei101)

	assert.InDelta(t, 5.0, distance, 0.5)
	assert.Zero(t, taipeiMain.DistanceKm(taipeiMain))
	assert.InDelta(t, distance, taipei101.DistanceKm(taipeiMain), 0.000001)
}
