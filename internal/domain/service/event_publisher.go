package service

import (
	"context"
)

// AssignmentEvent is published after a dispatch commits, for downstream
// consumers (notification workers, analytics).
type AssignmentEvent struct {
	RequestID               string   `json:"request_id,omitempty"` // For distributed tracing
	DeliveryID              string   `json:"delivery_id"`
	PartnerID               string   `json:"partner_id"`
	CompositeScore          float64  `json:"composite_score"`
	Confidence              float64  `json:"confidence"`
	EstimatedArrivalMinutes float64  `json:"estimated_arrival_minutes"`
	Reasons                 []string `json:"reasons,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishAssignmentEvent publishes a committed assignment for async processing.
	PublishAssignmentEvent(ctx context.Context, event *AssignmentEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
