package usecase

import (
	"context"

	"dispatch/internal/domain/entity"
)

// UnassignedDelivery is a delivery no partner could take, with the rejection
// reasons collected during filtering.
type UnassignedDelivery struct {
	Delivery entity.DeliveryRequest `json:"delivery"`
	Reasons  []string               `json:"reasons"`
}

// BatchResult is the outcome of assigning a batch of deliveries.
type BatchResult struct {
	Assignments     []*entity.Assignment `json:"assignments"`
	Batches         []*entity.Batch      `json:"batches"`
	Unassigned      []UnassignedDelivery `json:"unassigned"`
	UtilizationRate float64              `json:"utilization_rate"`
}

// BatchUsecase assigns many pending deliveries across a capacity-constrained
// partner pool in a single greedy pass.
type BatchUsecase interface {
	// AssignBatch processes deliveries in (priority desc, createdAt asc)
	// order against the partners' remaining capacity. Partner snapshots are
	// not mutated; capacity is tracked on working copies.
	AssignBatch(ctx context.Context, deliveries []entity.DeliveryRequest, partners []*entity.Partner) (*BatchResult, error)
}
