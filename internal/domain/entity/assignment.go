package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScoreBreakdown holds the six component scores and the weighted composite.
// Every component is clamped to [0, 100].
type ScoreBreakdown struct {
	Distance     float64 `json:"distance"`
	Rating       float64 `json:"rating"`
	Availability float64 `json:"availability"`
	Experience   float64 `json:"experience"`
	Efficiency   float64 `json:"efficiency"`
	Reliability  float64 `json:"reliability"`
	Composite    float64 `json:"composite"`
}

// Assignment is the outcome of dispatching a delivery to a partner.
type Assignment struct {
	DeliveryID              uuid.UUID      `json:"delivery_id"`
	PartnerID               uuid.UUID      `json:"partner_id"`
	Score                   ScoreBreakdown `json:"score"`
	Confidence              float64        `json:"confidence"` // [50, 95]
	Reasons                 []string       `json:"reasons"`
	EstimatedArrivalMinutes float64        `json:"estimated_arrival_minutes"`
	AssignedAt              time.Time      `json:"assigned_at"`
}
