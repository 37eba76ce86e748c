package optimizer

import (
	"context"
	"math/rand"
	"sort"

	"dispatch/config"
)

// geneticSolver evolves a population of tour permutations with elitism,
// tournament selection, order crossover and swap mutation.
type geneticSolver struct {
	cfg           config.GeneticConfig
	maxIterations int
}

// NewGeneticSolver returns the genetic algorithm solver. The generation count
// is derived from the shared iteration budget divided by population size.
func NewGeneticSolver(cfg config.GeneticConfig, maxIterations int) Solver {
	if cfg.PopulationSize <= 0 {
		cfg.PopulationSize = 100
	}
	if cfg.MutationRate <= 0 {
		cfg.MutationRate = 0.01
	}
	if cfg.EliteFraction <= 0 {
		cfg.EliteFraction = 0.10
	}
	if cfg.TournamentSize <= 0 {
		cfg.TournamentSize = 3
	}
	if cfg.ConvergenceRatio <= 0 {
		cfg.ConvergenceRatio = 0.95
	}
	if maxIterations <= 0 {
		maxIterations = 10000
	}

	return geneticSolver{cfg: cfg, maxIterations: maxIterations}
}

func (geneticSolver) Name() string { return "genetic-algorithm" }

type individual struct {
	order   []int
	fitness float64
}

func (s geneticSolver) Solve(ctx context.Context, model *costModel, rng *rand.Rand) (*Candidate, error) {
	popSize := s.cfg.PopulationSize
	generations := s.maxIterations / popSize
	if generations < 1 {
		generations = 1
	}

	population := make([]individual, popSize)
	for i := range population {
		order := identityOrder(model.n)
		rng.Shuffle(len(order), func(a, b int) {
			order[a], order[b] = order[b], order[a]
		})
		population[i] = individual{order: order, fitness: s.fitness(model, order)}
	}

	eliteCount := int(float64(popSize) * s.cfg.EliteFraction)
	if eliteCount < 1 {
		eliteCount = 1
	}

	for gen := 0; gen < generations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sort.Slice(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		// Early stop once the population has converged on one basin.
		if avg, max := fitnessStats(population); max > 0 && avg/max > s.cfg.ConvergenceRatio {
			break
		}

		next := make([]individual, 0, popSize)
		for i := 0; i < eliteCount; i++ {
			next = append(next, individual{
				order:   append([]int(nil), population[i].order...),
				fitness: population[i].fitness,
			})
		}

		for len(next) < popSize {
			parentA := s.tournament(population, rng)
			parentB := s.tournament(population, rng)
			child := s.orderCrossover(parentA.order, parentB.order, rng)
			s.mutate(child, rng)
			next = append(next, individual{order: child, fitness: s.fitness(model, child)})
		}

		population = next
	}

	sort.Slice(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	best := population[0]

	quality := best.fitness
	if quality > 100 {
		quality = 100
	}

	return &Candidate{Order: best.order, Quality: quality}, nil
}

// fitness rewards short, fast, feasible tours.
func (s geneticSolver) fitness(model *costModel, order []int) float64 {
	cost := model.tourCost(order) + model.pathDurationMin(order)/10
	if cost <= 0 {
		return 10000
	}

	return 10000 / cost
}

func (s geneticSolver) tournament(population []individual, rng *rand.Rand) individual {
	best := population[rng.Intn(len(population))]
	for i := 1; i < s.cfg.TournamentSize; i++ {
		challenger := population[rng.Intn(len(population))]
		if challenger.fitness > best.fitness {
			best = challenger
		}
	}

	return best
}

// orderCrossover (OX) copies a random slice of parent A and fills the rest
// in parent B's relative order.
func (s geneticSolver) orderCrossover(parentA, parentB []int, rng *rand.Rand) []int {
	n := len(parentA)
	start, end := rng.Intn(n), rng.Intn(n)
	if start > end {
		start, end = end, start
	}

	child := make([]int, n)
	taken := make([]bool, n)
	for i := range child {
		child[i] = -1
	}
	for i := start; i <= end; i++ {
		child[i] = parentA[i]
		taken[parentA[i]] = true
	}

	fill := (end + 1) % n
	for _, gene := range append(parentB[end+1:], parentB[:end+1]...) {
		if taken[gene] {
			continue
		}
		child[fill] = gene
		fill = (fill + 1) % n
	}

	return child
}

func (s geneticSolver) mutate(order []int, rng *rand.Rand) {
	for i := range order {
		if rng.Float64() < s.cfg.MutationRate {
			j := rng.Intn(len(order))
			order[i], order[j] = order[j], order[i]
		}
	}
}

func fitnessStats(population []individual) (avg, max float64) {
	for _, ind := range population {
		avg += ind.fitness
		if ind.fitness > max {
			max = ind.fitness
		}
	}
	avg /= float64(len(population))

	return avg, max
}
