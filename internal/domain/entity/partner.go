package entity

import (
	"time"

	"github.com/google/uuid"
)

// VehicleType is the transport mode of a delivery partner.
type VehicleType string

const (
	VehicleBicycle    VehicleType = "BICYCLE"
	VehicleMotorcycle VehicleType = "MOTORCYCLE"
	VehicleCar        VehicleType = "CAR"
	VehicleScooter    VehicleType = "SCOOTER"
	VehicleWalking    VehicleType = "WALKING"
)

// KnownVehicleTypes lists every supported vehicle type.
var KnownVehicleTypes = []VehicleType{
	VehicleBicycle,
	VehicleMotorcycle,
	VehicleCar,
	VehicleScooter,
	VehicleWalking,
}

// Valid reports whether the vehicle type is one of the supported modes.
func (v VehicleType) Valid() bool {
	switch v {
	case VehicleBicycle, VehicleMotorcycle, VehicleCar, VehicleScooter, VehicleWalking:
		return true
	default:
		return false
	}
}

// Partner is a delivery partner snapshot as read from the repository.
// Capacity counters are only ever mutated through the repository write
// path, never on this struct directly.
type Partner struct {
	ID                   uuid.UUID     `json:"id"`
	Location             GeoPoint      `json:"location"`
	Vehicle              VehicleType   `json:"vehicle"`
	RatingAvg            float64       `json:"rating_avg"` // 0 means unrated
	TotalDeliveries      int           `json:"total_deliveries"`
	SuccessfulDeliveries int           `json:"successful_deliveries"`
	ActiveDeliveryCount  int           `json:"active_delivery_count"`
	MaxCapacity          int           `json:"max_capacity"`
	IsOnline             bool          `json:"is_online"`
	IsAvailable          bool          `json:"is_available"`
	IsVerified           bool          `json:"is_verified"`
	ServiceAreas         []ServiceArea `json:"service_areas,omitempty"`
	JoinedAt             time.Time     `json:"joined_at"`
	LastLocationUpdateAt time.Time     `json:"last_location_update_at"`
}

// Utilization returns the active-to-capacity ratio, 1.0 when capacity is unset.
func (p *Partner) Utilization() float64 {
	if p.MaxCapacity <= 0 {
		return 1.0
	}

	return float64(p.ActiveDeliveryCount) / float64(p.MaxCapacity)
}

// AtCapacity reports whether the partner cannot take another delivery.
func (p *Partner) AtCapacity() bool {
	return p.MaxCapacity <= 0 || p.ActiveDeliveryCount >= p.MaxCapacity
}

// RemainingCapacity returns how many more deliveries the partner can carry.
func (p *Partner) RemainingCapacity() int {
	remaining := p.MaxCapacity - p.ActiveDeliveryCount
	if remaining < 0 {
		return 0
	}

	return remaining
}

// SuccessRate returns the completed-delivery percentage, 0 when no history.
func (p *Partner) SuccessRate() float64 {
	if p.TotalDeliveries <= 0 {
		return 0
	}

	return float64(p.SuccessfulDeliveries) / float64(p.TotalDeliveries) * 100
}

// TenureMonths returns whole months of service relative to now.
func (p *Partner) TenureMonths(now time.Time) float64 {
	if p.JoinedAt.IsZero() || now.Before(p.JoinedAt) {
		return 0
	}

	return now.Sub(p.JoinedAt).Hours() / 24 / 30
}

// ServesPoint reports whether the point is inside any of the partner's
// service areas. Partners without configured areas serve everywhere.
func (p *Partner) ServesPoint(point GeoPoint) bool {
	if len(p.ServiceAreas) == 0 {
		return true
	}
	for _, area := range p.ServiceAreas {
		if area.Contains(point) {
			return true
		}
	}

	return false
}
