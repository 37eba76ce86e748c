package service

import (
	"context"
	"time"

	"dispatch/internal/domain/entity"
	"dispatch/internal/errors"
)

// ErrNoTrafficData is returned when the provider has no estimate for a segment.
// Callers fall back to haversine-derived estimates.
var ErrNoTrafficData = errors.New("no traffic data for segment")

// TrafficProvider supplies live travel-time estimates for route segments.
// Lookups must respect the caller's context deadline; a timeout or error is
// never fatal and the caller falls back to distance-based estimates.
type TrafficProvider interface {
	SegmentDuration(ctx context.Context, from, to entity.GeoPoint) (time.Duration, error)
}
