package model

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentModel is the GORM-specific struct for the 'assignments' table.
// Rows double as the fairness history: the load balancer counts them per
// partner over a trailing window.
type AssignmentModel struct {
	ID                      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DeliveryID              uuid.UUID `gorm:"type:uuid;not null;index"`
	PartnerID               uuid.UUID `gorm:"type:uuid;not null;index:idx_assignments_partner_time"`
	CompositeScore          float64   `gorm:"type:decimal(6,2);not null"`
	Confidence              float64   `gorm:"type:decimal(5,2);not null"`
	EstimatedArrivalMinutes float64   `gorm:"type:decimal(6,2);not null"`
	AssignedAt              time.Time `gorm:"not null;index:idx_assignments_partner_time"`
}

// TableName explicitly sets the table name for GORM.
func (AssignmentModel) TableName() string {
	return "assignments"
}
