package optimizer

import (
	"context"
	"math"
	"math/rand"

	"dispatch/config"
)

// antColonySolver runs ant colony optimization: each iteration a small colony
// of ants builds tours stochastically, weighting each step by pheromone level
// and inverse distance, then the global best deposits fresh pheromone.
type antColonySolver struct {
	cfg config.AntColonyConfig
}

// NewAntColonySolver returns the ant colony solver.
func NewAntColonySolver(cfg config.AntColonyConfig) Solver {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 100
	}
	if cfg.MaxAnts <= 0 {
		cfg.MaxAnts = 20
	}
	if cfg.Evaporation <= 0 || cfg.Evaporation >= 1 {
		cfg.Evaporation = 0.1
	}
	if cfg.Alpha <= 0 {
		cfg.Alpha = 1
	}
	if cfg.Beta <= 0 {
		cfg.Beta = 2
	}
	if cfg.DepositFactor <= 0 {
		cfg.DepositFactor = 100
	}

	return antColonySolver{cfg: cfg}
}

func (antColonySolver) Name() string { return "ant-colony" }

func (s antColonySolver) Solve(ctx context.Context, model *costModel, rng *rand.Rand) (*Candidate, error) {
	n := model.n
	ants := s.cfg.MaxAnts
	if n < ants {
		ants = n
	}

	pheromone := make([][]float64, n)
	for i := range pheromone {
		pheromone[i] = make([]float64, n)
		for j := range pheromone[i] {
			pheromone[i][j] = 1.0
		}
	}

	var best []int
	bestCost := math.MaxFloat64
	initial := model.tourCost(identityOrder(n))

	for iter := 0; iter < s.cfg.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for ant := 0; ant < ants; ant++ {
			tour := s.buildTour(model, pheromone, rng)
			if cost := model.tourCost(tour); cost < bestCost {
				bestCost = cost
				best = tour
			}
		}

		for i := range pheromone {
			for j := range pheromone[i] {
				pheromone[i][j] *= 1 - s.cfg.Evaporation
			}
		}

		// Only the global best reinforces its trail.
		if best != nil && bestCost > 0 {
			deposit := s.cfg.DepositFactor / bestCost
			for i := 1; i < len(best); i++ {
				pheromone[best[i-1]][best[i]] += deposit
			}
		}
	}

	return &Candidate{
		Order:   best,
		Quality: improvementQuality(initial, bestCost),
	}, nil
}

// buildTour walks one ant from a random start, choosing each next stop with
// probability proportional to pheromone^alpha * (1/distance)^beta.
func (s antColonySolver) buildTour(model *costModel, pheromone [][]float64, rng *rand.Rand) []int {
	n := model.n
	visited := make([]bool, n)
	tour := make([]int, 0, n)

	current := rng.Intn(n)
	visited[current] = true
	tour = append(tour, current)

	weights := make([]float64, n)
	for len(tour) < n {
		var total float64
		for next := 0; next < n; next++ {
			weights[next] = 0
			if visited[next] {
				continue
			}

			distance := model.distKm[current][next]
			if distance <= 0 {
				distance = 1e-6
			}
			weights[next] = math.Pow(pheromone[current][next], s.cfg.Alpha) *
				math.Pow(1/distance, s.cfg.Beta)
			total += weights[next]
		}

		next := s.roulette(weights, total, visited, rng)
		visited[next] = true
		tour = append(tour, next)
		current = next
	}

	return tour
}

func (s antColonySolver) roulette(weights []float64, total float64, visited []bool, rng *rand.Rand) int {
	if total > 0 {
		target := rng.Float64() * total
		for next, w := range weights {
			if visited[next] {
				continue
			}
			target -= w
			if target <= 0 {
				return next
			}
		}
	}

	// All weights underflowed; take the first unvisited stop.
	for next, seen := range visited {
		if !seen {
			return next
		}
	}

	return 0
}
