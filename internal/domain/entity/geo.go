// Package entity contains the core business objects of the dispatch engine.
package entity

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// GeoPoint is a geographic coordinate in WGS84.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point converts the coordinate to an orb.Point (lon, lat order).
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// Valid reports whether the coordinate is within WGS84 bounds.
func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// DistanceKm returns the haversine distance to another point in kilometers.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	return geo.DistanceHaversine(p.Point(), other.Point()) / 1000.0
}

// ServiceArea is a named polygon a partner is willing to serve.
// Boundaries are parsed once at the persistence boundary; scoring and
// filtering logic only ever sees typed geometry.
type ServiceArea struct {
	Name     string      `json:"name"`
	Boundary orb.Polygon `json:"boundary"`
}

// Contains reports whether the point falls inside the area boundary.
func (a ServiceArea) Contains(p GeoPoint) bool {
	return planar.PolygonContains(a.Boundary, p.Point())
}
