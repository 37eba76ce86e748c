package usecase

import (
	"context"

	"dispatch/internal/domain/entity"
)

// RouteUsecase computes an efficient multi-stop route over a waypoint set.
type RouteUsecase interface {
	// OptimizeRoute races the configured solvers over the waypoints and
	// returns the best route by composite score. The returned route always
	// satisfies pickup-before-delivery precedence. Returns
	// ErrOptimizationFailed only when every solver failed or timed out.
	OptimizeRoute(ctx context.Context, waypoints []entity.Waypoint, vehicle entity.VehicleType) (*entity.Route, error)
}
