package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"dispatch/internal/domain/entity"
)

// AssignmentRepository is a threadsafe in-memory assignment history.
type AssignmentRepository struct {
	mu      sync.RWMutex
	history []*entity.Assignment
}

// NewAssignmentRepository creates an empty in-memory assignment repository.
func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{}
}

// CountSince returns how many assignments the partner received within the
// trailing window.
func (repo *AssignmentRepository) CountSince(_ context.Context, partnerID uuid.UUID, window time.Duration) (int, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	cutoff := time.Now().Add(-window)
	count := 0
	for _, assignment := range repo.history {
		if assignment.PartnerID == partnerID && !assignment.AssignedAt.Before(cutoff) {
			count++
		}
	}

	return count, nil
}

// Record persists a committed assignment for future fairness lookups.
func (repo *AssignmentRepository) Record(_ context.Context, assignment *entity.Assignment) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	clone := *assignment
	repo.history = append(repo.history, &clone)

	return nil
}
