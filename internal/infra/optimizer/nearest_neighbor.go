package optimizer

import (
	"context"
	"math"
	"math/rand"
)

// nearestNeighborSolver builds a tour by repeated nearest-unvisited selection
// and then refines it with 2-opt segment reversals until no reversal shortens
// the tour.
type nearestNeighborSolver struct{}

// NewNearestNeighborSolver returns the NN+2-opt solver.
func NewNearestNeighborSolver() Solver {
	return nearestNeighborSolver{}
}

func (nearestNeighborSolver) Name() string { return "nearest-neighbor-2opt" }

func (s nearestNeighborSolver) Solve(ctx context.Context, model *costModel, _ *rand.Rand) (*Candidate, error) {
	order := s.buildGreedyTour(model)
	initial := model.tourCost(order)

	improved := true
	for improved {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		improved = false
		for i := 0; i < len(order)-1; i++ {
			for j := i + 1; j < len(order); j++ {
				current := model.tourCost(order)
				reverseSegment(order, i, j)
				if model.tourCost(order) < current {
					improved = true
				} else {
					reverseSegment(order, i, j) // undo
				}
			}
		}
	}

	return &Candidate{
		Order:   order,
		Quality: improvementQuality(initial, model.tourCost(order)),
	}, nil
}

func (nearestNeighborSolver) buildGreedyTour(model *costModel) []int {
	n := model.n
	visited := make([]bool, n)
	order := make([]int, 0, n)

	current := 0
	visited[0] = true
	order = append(order, 0)

	for len(order) < n {
		next, best := -1, math.MaxFloat64
		for candidate := 0; candidate < n; candidate++ {
			if visited[candidate] {
				continue
			}
			if d := model.distKm[current][candidate]; d < best {
				best = d
				next = candidate
			}
		}
		visited[next] = true
		order = append(order, next)
		current = next
	}

	return order
}

func reverseSegment(order []int, i, j int) {
	for i < j {
		order[i], order[j] = order[j], order[i]
		i++
		j--
	}
}
