package optimizer

import (
	"context"
	"math/rand"
)

// Candidate is a solver's best tour over the cost model.
type Candidate struct {
	// Order holds waypoint indices in visit order.
	Order []int

	// Quality is a solver-specific figure of merit in [0, 100]: the genetic
	// solver reports its fitness, the others report the relative improvement
	// over their own starting tour.
	Quality float64
}

// Solver is one heuristic search strategy. Implementations are stateless over
// the shared model and draw all randomness from the supplied RNG so runs are
// reproducible under a fixed seed.
type Solver interface {
	Name() string
	Solve(ctx context.Context, model *costModel, rng *rand.Rand) (*Candidate, error)
}

// improvementQuality converts a before/after cost pair into a [0, 100] score.
func improvementQuality(initial, final float64) float64 {
	if initial <= 0 || final >= initial {
		return 0
	}

	quality := (initial - final) / initial * 100
	if quality > 100 {
		return 100
	}

	return quality
}
