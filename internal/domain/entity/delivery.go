package entity

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency class of a delivery request. Higher values sort first
// in batch assignment.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

// String returns the canonical name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityNormal:
		return "NORMAL"
	case PriorityHigh:
		return "HIGH"
	case PriorityUrgent:
		return "URGENT"
	default:
		return "UNKNOWN"
	}
}

// ParsePriority converts a priority name to its Priority value.
// Unknown names fall back to NORMAL.
func ParsePriority(s string) Priority {
	switch s {
	case "LOW":
		return PriorityLow
	case "HIGH":
		return PriorityHigh
	case "URGENT":
		return PriorityUrgent
	default:
		return PriorityNormal
	}
}

// IsUrgent reports whether the priority qualifies for expedited handling.
func (p Priority) IsUrgent() bool {
	return p == PriorityHigh || p == PriorityUrgent
}

// DeliveryType is the service class of a delivery request.
type DeliveryType string

const (
	DeliveryStandard  DeliveryType = "STANDARD"
	DeliveryExpress   DeliveryType = "EXPRESS"
	DeliveryScheduled DeliveryType = "SCHEDULED"
)

// DeliveryRequest is an immutable delivery order handed in by the
// order-management collaborator.
type DeliveryRequest struct {
	ID        uuid.UUID    `json:"id"`
	Pickup    GeoPoint     `json:"pickup"`
	Dropoff   GeoPoint     `json:"dropoff"`
	Priority  Priority     `json:"priority"`
	Type      DeliveryType `json:"type"`
	WeightKg  float64      `json:"weight_kg"`
	CreatedAt time.Time    `json:"created_at"`
}

// Validate checks the request coordinates and weight.
func (r *DeliveryRequest) Validate() error {
	if !r.Pickup.Valid() {
		return ErrInvalidCoordinate
	}
	if !r.Dropoff.Valid() {
		return ErrInvalidCoordinate
	}
	if r.WeightKg < 0 {
		return ErrInvalidWeight
	}

	return nil
}
