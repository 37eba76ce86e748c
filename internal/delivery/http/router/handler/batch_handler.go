package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"dispatch/internal/delivery/http/response"
	"dispatch/internal/domain/entity"
	"dispatch/internal/usecase"
)

// BatchHandlerParams holds dependencies for BatchHandler, injected by Fx.
type BatchHandlerParams struct {
	fx.In

	BatchUC usecase.BatchUsecase
	Logger  *slog.Logger
}

// BatchHandler holds dependencies for batch assignment handlers
type BatchHandler struct {
	batchUC usecase.BatchUsecase
	logger  *slog.Logger
}

// NewBatchHandler is the constructor for BatchHandler
func NewBatchHandler(params BatchHandlerParams) *BatchHandler {
	return &BatchHandler{
		batchUC: params.BatchUC,
		logger:  params.Logger,
	}
}

// BatchDeliveryInput represents one delivery in a batch request
type BatchDeliveryInput struct {
	ID         string  `json:"id" validate:"omitempty,uuid"`
	PickupLat  float64 `json:"pickup_lat" validate:"min=-90,max=90"`
	PickupLon  float64 `json:"pickup_lon" validate:"min=-180,max=180"`
	DropoffLat float64 `json:"dropoff_lat" validate:"min=-90,max=90"`
	DropoffLon float64 `json:"dropoff_lon" validate:"min=-180,max=180"`
	Priority   string  `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	Type       string  `json:"type" validate:"omitempty,oneof=STANDARD EXPRESS SCHEDULED"`
	WeightKg   float64 `json:"weight_kg" validate:"min=0"`
	CreatedAt  string  `json:"created_at" validate:"omitempty"`
}

// BatchPartnerInput represents one partner snapshot in a batch request
type BatchPartnerInput struct {
	ID                   string  `json:"id" validate:"required,uuid"`
	Lat                  float64 `json:"lat" validate:"min=-90,max=90"`
	Lon                  float64 `json:"lon" validate:"min=-180,max=180"`
	Vehicle              string  `json:"vehicle" validate:"required,oneof=BICYCLE MOTORCYCLE CAR SCOOTER WALKING"`
	RatingAvg            float64 `json:"rating_avg" validate:"min=0,max=5"`
	TotalDeliveries      int     `json:"total_deliveries" validate:"min=0"`
	SuccessfulDeliveries int     `json:"successful_deliveries" validate:"min=0"`
	ActiveDeliveryCount  int     `json:"active_delivery_count" validate:"min=0"`
	MaxCapacity          int     `json:"max_capacity" validate:"min=0"`
}

// AssignBatchRequest represents the request body for batch assignment.
// Partner snapshots come inline so the endpoint can plan against any pool,
// live or simulated.
type AssignBatchRequest struct {
	Deliveries []BatchDeliveryInput `json:"deliveries" validate:"required,min=1,dive"`
	Partners   []BatchPartnerInput  `json:"partners" validate:"required,min=1,dive"`
}

// AssignBatch handles assigning a batch of deliveries across a partner pool
func (h *BatchHandler) AssignBatch(c echo.Context) error {
	var req AssignBatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid batch input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	deliveries := make([]entity.DeliveryRequest, 0, len(req.Deliveries))
	for _, d := range req.Deliveries {
		delivery, err := d.toEntity()
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid delivery ID in batch")
		}
		deliveries = append(deliveries, *delivery)
	}

	partners := make([]*entity.Partner, 0, len(req.Partners))
	for _, p := range req.Partners {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid partner ID in batch")
		}
		partners = append(partners, &entity.Partner{
			ID:                   id,
			Location:             entity.GeoPoint{Lat: p.Lat, Lon: p.Lon},
			Vehicle:              entity.VehicleType(p.Vehicle),
			RatingAvg:            p.RatingAvg,
			TotalDeliveries:      p.TotalDeliveries,
			SuccessfulDeliveries: p.SuccessfulDeliveries,
			ActiveDeliveryCount:  p.ActiveDeliveryCount,
			MaxCapacity:          p.MaxCapacity,
			IsOnline:             true,
			IsAvailable:          true,
			IsVerified:           true,
		})
	}

	result, err := h.batchUC.AssignBatch(c.Request().Context(), deliveries, partners)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result, "Batch assigned successfully")
}

func (d *BatchDeliveryInput) toEntity() (*entity.DeliveryRequest, error) {
	id := uuid.New()
	if d.ID != "" {
		parsed, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	createdAt := time.Now()
	if d.CreatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, d.CreatedAt); err == nil {
			createdAt = parsed
		}
	}

	deliveryType := entity.DeliveryType(d.Type)
	if d.Type == "" {
		deliveryType = entity.DeliveryStandard
	}

	return &entity.DeliveryRequest{
		ID:        id,
		Pickup:    entity.GeoPoint{Lat: d.PickupLat, Lon: d.PickupLon},
		Dropoff:   entity.GeoPoint{Lat: d.DropoffLat, Lon: d.DropoffLon},
		Priority:  entity.ParsePriority(d.Priority),
		Type:      deliveryType,
		WeightKg:  d.WeightKg,
		CreatedAt: createdAt,
	}, nil
}
