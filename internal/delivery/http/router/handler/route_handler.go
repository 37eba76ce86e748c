package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"dispatch/internal/delivery/http/response"
	"dispatch/internal/domain/entity"
	"dispatch/internal/usecase"
)

// RouteHandlerParams holds dependencies for RouteHandler, injected by Fx.
type RouteHandlerParams struct {
	fx.In

	RouteUC usecase.RouteUsecase
	Logger  *slog.Logger
}

// RouteHandler holds dependencies for route optimization handlers
type RouteHandler struct {
	routeUC usecase.RouteUsecase
	logger  *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler
func NewRouteHandler(params RouteHandlerParams) *RouteHandler {
	return &RouteHandler{
		routeUC: params.RouteUC,
		logger:  params.Logger,
	}
}

// WaypointInput represents one stop in the optimization request
type WaypointInput struct {
	Lat        float64 `json:"lat" validate:"min=-90,max=90"`
	Lon        float64 `json:"lon" validate:"min=-180,max=180"`
	Kind       string  `json:"kind" validate:"omitempty,oneof=PICKUP DELIVERY WAYPOINT"`
	DeliveryID string  `json:"delivery_id" validate:"omitempty,uuid"`
}

// OptimizeRouteRequest represents the request body for route optimization
type OptimizeRouteRequest struct {
	Waypoints []WaypointInput `json:"waypoints" validate:"required,min=1,dive"`
	Vehicle   string          `json:"vehicle" validate:"required,oneof=BICYCLE MOTORCYCLE CAR SCOOTER WALKING"`
}

// OptimizeRoute handles computing the best multi-stop route
func (h *RouteHandler) OptimizeRoute(c echo.Context) error {
	var req OptimizeRouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	waypoints := make([]entity.Waypoint, 0, len(req.Waypoints))
	for _, w := range req.Waypoints {
		waypoint := entity.Waypoint{
			Point: entity.GeoPoint{Lat: w.Lat, Lon: w.Lon},
			Kind:  entity.WaypointKind(w.Kind),
		}
		if waypoint.Kind == "" {
			waypoint.Kind = entity.WaypointPlain
		}
		if w.DeliveryID != "" {
			id, err := uuid.Parse(w.DeliveryID)
			if err != nil {
				return response.BadRequest(c, "INVALID_ID", "Invalid delivery ID in waypoint")
			}
			waypoint.DeliveryID = id
		}
		waypoints = append(waypoints, waypoint)
	}

	route, err := h.routeUC.OptimizeRoute(c.Request().Context(), waypoints, entity.VehicleType(req.Vehicle))
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, route, "Route optimized successfully")
}
