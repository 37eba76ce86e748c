package entity

import (
	"github.com/google/uuid"

	"dispatch/internal/errors"
)

// Sentinel validation errors shared across entities.
var (
	// ErrInvalidCoordinate is returned for coordinates outside WGS84 bounds.
	ErrInvalidCoordinate = errors.New("coordinate outside valid bounds")
	// ErrInvalidWeight is returned for negative package weights.
	ErrInvalidWeight = errors.New("weight must not be negative")
	// ErrUnknownVehicleType is returned for unsupported vehicle types.
	ErrUnknownVehicleType = errors.New("unknown vehicle type")
	// ErrPrecedenceViolated is returned when a delivery stop precedes its pickup.
	ErrPrecedenceViolated = errors.New("pickup must precede its delivery")
	// ErrIncompletePair is returned when a delivery is missing its pickup or delivery stop.
	ErrIncompletePair = errors.New("delivery is missing a pickup or delivery waypoint")
)

// WaypointKind distinguishes the role of a stop within a route.
type WaypointKind string

const (
	WaypointPickup   WaypointKind = "PICKUP"
	WaypointDelivery WaypointKind = "DELIVERY"
	WaypointPlain    WaypointKind = "WAYPOINT"
)

// Waypoint is a single stop in a route. Pickup and delivery stops carry the
// delivery they belong to; plain waypoints have a nil delivery ID.
type Waypoint struct {
	Point      GeoPoint     `json:"point"`
	Kind       WaypointKind `json:"kind"`
	DeliveryID uuid.UUID    `json:"delivery_id,omitempty"`
}

// Route is an ordered tour over a waypoint set produced by the optimizer.
type Route struct {
	Waypoints            []Waypoint `json:"waypoints"`
	TotalDistanceKm      float64    `json:"total_distance_km"`
	EstimatedDurationMin float64    `json:"estimated_duration_min"`
	Algorithm            string     `json:"algorithm"`
	CompositeScore       float64    `json:"composite_score"`
}

// ValidatePrecedence checks that for every delivery present, its pickup stop
// appears before its delivery stop.
func (r *Route) ValidatePrecedence() error {
	return ValidateWaypointPrecedence(r.Waypoints)
}

// ValidateWaypointPrecedence verifies the pickup-before-delivery invariant over
// an ordered waypoint slice and that every referenced delivery has both stops.
func ValidateWaypointPrecedence(waypoints []Waypoint) error {
	pickupIdx := make(map[uuid.UUID]int)
	deliveryIdx := make(map[uuid.UUID]int)
	for i, w := range waypoints {
		if w.DeliveryID == uuid.Nil {
			continue
		}
		switch w.Kind {
		case WaypointPickup:
			pickupIdx[w.DeliveryID] = i
		case WaypointDelivery:
			deliveryIdx[w.DeliveryID] = i
		}
	}

	for id, di := range deliveryIdx {
		pi, ok := pickupIdx[id]
		if !ok {
			return errors.Wrapf(ErrIncompletePair, "delivery %s", id)
		}
		if pi > di {
			return errors.Wrapf(ErrPrecedenceViolated, "delivery %s", id)
		}
	}
	for id := range pickupIdx {
		if _, ok := deliveryIdx[id]; !ok {
			return errors.Wrapf(ErrIncompletePair, "delivery %s", id)
		}
	}

	return nil
}

// Batch is the set of deliveries assigned to one partner in a batch run,
// together with the optimized route over their stops.
type Batch struct {
	PartnerID         uuid.UUID         `json:"partner_id"`
	Deliveries        []DeliveryRequest `json:"deliveries"`
	Route             *Route            `json:"route,omitempty"`
	RemainingCapacity int               `json:"remaining_capacity"`
}
