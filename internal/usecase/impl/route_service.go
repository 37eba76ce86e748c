package impl

import (
	"context"
	"log/slog"

	"dispatch/internal/domain/entity"
	domainerrors "dispatch/internal/domain/errors"
	"dispatch/internal/errors"
	"dispatch/internal/infra/optimizer"
	"dispatch/internal/usecase"
)

type routeService struct {
	engine *optimizer.Engine
	logger *slog.Logger
}

// NewRouteService creates the route optimization service on top of the solver
// engine.
func NewRouteService(engine *optimizer.Engine, logger *slog.Logger) usecase.RouteUsecase {
	if logger == nil {
		logger = slog.Default()
	}

	return &routeService{engine: engine, logger: logger}
}

// OptimizeRoute implements usecase.RouteUsecase.
func (s *routeService) OptimizeRoute(ctx context.Context, waypoints []entity.Waypoint, vehicle entity.VehicleType) (*entity.Route, error) {
	route, err := s.engine.Optimize(ctx, waypoints, vehicle)
	if err != nil {
		return nil, mapOptimizeError(err)
	}

	// The engine repairs orderings; a violation here means a solver bug, not
	// bad input.
	if err := route.ValidatePrecedence(); err != nil {
		s.logger.Error("optimized route violates precedence",
			slog.String("algorithm", route.Algorithm),
			slog.String("error", err.Error()),
		)

		return nil, domainerrors.ErrOptimizationFailed.WithDetails(err.Error())
	}

	return route, nil
}

func mapOptimizeError(err error) error {
	switch {
	case errors.Is(err, entity.ErrInvalidCoordinate):
		return domainerrors.ErrInvalidCoordinate.WithDetails(err.Error())
	case errors.Is(err, entity.ErrUnknownVehicleType):
		return domainerrors.ErrUnknownVehicleType.WithDetails(err.Error())
	case errors.Is(err, entity.ErrIncompletePair):
		return domainerrors.ErrValidation.WithDetails(err.Error())
	default:
		return domainerrors.ErrOptimizationFailed.WithDetails(err.Error())
	}
}
