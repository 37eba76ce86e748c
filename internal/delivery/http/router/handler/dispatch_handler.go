// Package handler contains the HTTP request handlers.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"dispatch/internal/delivery/http/response"
	"dispatch/internal/domain/entity"
	domainerrors "dispatch/internal/domain/errors"
	"dispatch/internal/usecase"
)

// DispatchHandlerParams holds dependencies for DispatchHandler, injected by Fx.
type DispatchHandlerParams struct {
	fx.In

	DispatchUC usecase.DispatchUsecase
	Logger     *slog.Logger
}

// DispatchHandler holds dependencies for dispatch-related handlers
type DispatchHandler struct {
	dispatchUC usecase.DispatchUsecase
	logger     *slog.Logger
}

// NewDispatchHandler is the constructor for DispatchHandler
func NewDispatchHandler(params DispatchHandlerParams) *DispatchHandler {
	return &DispatchHandler{
		dispatchUC: params.DispatchUC,
		logger:     params.Logger,
	}
}

// DispatchRequest represents the request body for dispatching a delivery
type DispatchRequest struct {
	DeliveryID string  `json:"delivery_id" validate:"omitempty,uuid"`
	PickupLat  float64 `json:"pickup_lat" validate:"min=-90,max=90"`
	PickupLon  float64 `json:"pickup_lon" validate:"min=-180,max=180"`
	DropoffLat float64 `json:"dropoff_lat" validate:"min=-90,max=90"`
	DropoffLon float64 `json:"dropoff_lon" validate:"min=-180,max=180"`
	Priority   string  `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	Type       string  `json:"type" validate:"omitempty,oneof=STANDARD EXPRESS SCHEDULED"`
	WeightKg   float64 `json:"weight_kg" validate:"min=0"`
}

// toEntity converts the DTO into a domain delivery request.
func (r *DispatchRequest) toEntity() (*entity.DeliveryRequest, error) {
	id := uuid.New()
	if r.DeliveryID != "" {
		parsed, err := uuid.Parse(r.DeliveryID)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	deliveryType := entity.DeliveryType(r.Type)
	if r.Type == "" {
		deliveryType = entity.DeliveryStandard
	}

	return &entity.DeliveryRequest{
		ID:        id,
		Pickup:    entity.GeoPoint{Lat: r.PickupLat, Lon: r.PickupLon},
		Dropoff:   entity.GeoPoint{Lat: r.DropoffLat, Lon: r.DropoffLon},
		Priority:  entity.ParsePriority(r.Priority),
		Type:      deliveryType,
		WeightKg:  r.WeightKg,
		CreatedAt: time.Now(),
	}, nil
}

// Dispatch handles selecting the best partner for a delivery request
func (h *DispatchHandler) Dispatch(c echo.Context) error {
	var req DispatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid dispatch input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	request, err := req.toEntity()
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid delivery ID")
	}

	assignment, err := h.dispatchUC.FindBestPartner(c.Request().Context(), request)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, assignment, "Partner assigned successfully")
}

// handleAppError handles application errors
func handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.HTTPCode(), response.Response{
			Success: false,
			Code:    appErr.HTTPCode(),
			Message: appErr.Message(),
			Error: &response.ErrorInfo{
				Code:    appErr.ErrorCode(),
				Details: appErr.Details(),
				Reasons: appErr.Reasons(),
			},
		})
	}

	return errors.WithStack(err)
}
