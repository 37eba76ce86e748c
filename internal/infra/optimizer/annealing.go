package optimizer

import (
	"context"
	"math"
	"math/rand"

	"dispatch/config"
)

// annealingSolver runs simulated annealing over random position swaps:
// cheaper tours are always accepted, worse ones with probability exp(-Δ/T)
// while the temperature cools geometrically.
type annealingSolver struct {
	cfg config.AnnealingConfig
}

// NewAnnealingSolver returns the simulated annealing solver.
func NewAnnealingSolver(cfg config.AnnealingConfig) Solver {
	if cfg.InitialTemp <= 0 {
		cfg.InitialTemp = 1000
	}
	if cfg.Cooling <= 0 || cfg.Cooling >= 1 {
		cfg.Cooling = 0.995
	}
	if cfg.MinTemp <= 0 {
		cfg.MinTemp = 1
	}

	return annealingSolver{cfg: cfg}
}

func (annealingSolver) Name() string { return "simulated-annealing" }

func (s annealingSolver) Solve(ctx context.Context, model *costModel, rng *rand.Rand) (*Candidate, error) {
	current := identityOrder(model.n)
	rng.Shuffle(len(current), func(i, j int) {
		current[i], current[j] = current[j], current[i]
	})

	currentCost := model.tourCost(current)
	initial := currentCost

	best := append([]int(nil), current...)
	bestCost := currentCost

	checkEvery := 64
	iteration := 0
	for temp := s.cfg.InitialTemp; temp > s.cfg.MinTemp; temp *= s.cfg.Cooling {
		iteration++
		if iteration%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		i, j := rng.Intn(model.n), rng.Intn(model.n)
		if i == j {
			continue
		}

		current[i], current[j] = current[j], current[i]
		candidateCost := model.tourCost(current)
		delta := candidateCost - currentCost

		if delta < 0 || rng.Float64() < math.Exp(-delta/temp) {
			currentCost = candidateCost
			if candidateCost < bestCost {
				bestCost = candidateCost
				copy(best, current)
			}
		} else {
			current[i], current[j] = current[j], current[i] // reject, undo
		}
	}

	return &Candidate{
		Order:   best,
		Quality: improvementQuality(initial, bestCost),
	}, nil
}
