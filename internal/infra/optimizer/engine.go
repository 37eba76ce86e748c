package optimizer

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"dispatch/config"
	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"
	"dispatch/internal/errors"
)

// algorithmWeights ranks the solvers by expected solution quality; the weight
// feeds into the composite score used to pick the winning route.
var algorithmWeights = map[string]float64{
	"genetic-algorithm":     95,
	"simulated-annealing":   90,
	"ant-colony":            85,
	"nearest-neighbor-2opt": 80,
}

// Engine races all solvers over one shared cost model and keeps the route
// with the highest composite score.
type Engine struct {
	cfg     config.OptimizerConfig
	scoring config.ScoringConfig
	traffic service.TrafficProvider
	clock   service.Clock
	logger  *slog.Logger
	solvers []Solver
}

// NewEngine wires the four solvers from configuration.
func NewEngine(
	cfg config.OptimizerConfig,
	scoring config.ScoringConfig,
	traffic service.TrafficProvider,
	clock service.Clock,
	logger *slog.Logger,
) *Engine {
	if cfg.SolverTimeout <= 0 {
		cfg.SolverTimeout = 2 * time.Second
	}
	if cfg.RoadFactor <= 0 {
		cfg.RoadFactor = 1.3
	}

	return &Engine{
		cfg:     cfg,
		scoring: scoring,
		traffic: traffic,
		clock:   clock,
		logger:  logger,
		solvers: []Solver{
			NewNearestNeighborSolver(),
			NewAnnealingSolver(cfg.Annealing),
			NewGeneticSolver(cfg.Genetic, cfg.MaxIterations),
			NewAntColonySolver(cfg.AntColony),
		},
	}
}

type solverResult struct {
	solver    string
	candidate *Candidate
	err       error
}

// Optimize finds the best tour over the given waypoints for the vehicle type.
// All solvers run concurrently under their own deadline; any one finishing is
// enough, and only a total wipeout is an error.
func (e *Engine) Optimize(ctx context.Context, waypoints []entity.Waypoint, vehicle entity.VehicleType) (*entity.Route, error) {
	if err := e.validate(waypoints, vehicle); err != nil {
		return nil, err
	}

	speed := e.scoring.VehicleSpeedsKmh[string(vehicle)]
	if speed <= 0 {
		speed = 25
	}
	model := newCostModel(ctx, costModelInput{
		waypoints:        waypoints,
		roadFactor:       e.cfg.RoadFactor,
		speedKmh:         speed,
		rushHourFactor:   e.scoring.RushHourFactor,
		urbanFactor:      e.scoring.UrbanFactor,
		pickupDwellMin:   e.cfg.PickupDwellMin,
		deliveryDwellMin: e.cfg.DeliveryDwellMin,
		traffic:          e.traffic,
		clock:            e.clock,
	})

	if model.n == 1 {
		return e.buildRoute(model, &Candidate{Order: []int{0}, Quality: 0}, "nearest-neighbor-2opt"), nil
	}

	results := make(chan solverResult, len(e.solvers))
	var wg sync.WaitGroup
	for i, solver := range e.solvers {
		wg.Add(1)
		go func(idx int, s Solver) {
			defer wg.Done()

			solverCtx, cancel := context.WithTimeout(ctx, e.cfg.SolverTimeout)
			defer cancel()

			candidate, err := s.Solve(solverCtx, model, e.newRNG(idx))
			results <- solverResult{solver: s.Name(), candidate: candidate, err: err}
		}(i, solver)
	}
	wg.Wait()
	close(results)

	var (
		best      *entity.Route
		bestScore = -1.0
		failures  []error
	)
	for result := range results {
		if result.err != nil {
			e.logger.Warn("solver failed",
				slog.String("solver", result.solver),
				slog.String("error", result.err.Error()),
			)
			failures = append(failures, errors.Wrap(result.err, result.solver))

			continue
		}

		model.repairPrecedence(result.candidate.Order)
		route := e.buildRoute(model, result.candidate, result.solver)
		if route.CompositeScore > bestScore {
			bestScore = route.CompositeScore
			best = route
		}
	}

	if best == nil {
		return nil, errors.Wrap(errors.Join(failures...), "all solvers failed")
	}

	e.logger.Debug("route optimized",
		slog.String("algorithm", best.Algorithm),
		slog.Float64("distance_km", best.TotalDistanceKm),
		slog.Float64("duration_min", best.EstimatedDurationMin),
		slog.Float64("composite_score", best.CompositeScore),
		slog.Int("stops", len(best.Waypoints)),
	)

	return best, nil
}

func (e *Engine) validate(waypoints []entity.Waypoint, vehicle entity.VehicleType) error {
	if len(waypoints) == 0 {
		return errors.New("no waypoints")
	}
	if !vehicle.Valid() {
		return errors.Wrapf(entity.ErrUnknownVehicleType, "%s", vehicle)
	}
	for i, w := range waypoints {
		if !w.Point.Valid() {
			return errors.Wrapf(entity.ErrInvalidCoordinate, "waypoint %d", i)
		}
	}

	return validatePairsComplete(waypoints)
}

// validatePairsComplete rejects inputs where a delivery has a pickup without a
// delivery stop or vice versa; ordering is the solvers' job, completeness the
// caller's.
func validatePairsComplete(waypoints []entity.Waypoint) error {
	kinds := make(map[uuid.UUID][2]bool)
	for _, w := range waypoints {
		if w.DeliveryID == uuid.Nil {
			continue
		}
		pair := kinds[w.DeliveryID]
		switch w.Kind {
		case entity.WaypointPickup:
			pair[0] = true
		case entity.WaypointDelivery:
			pair[1] = true
		}
		kinds[w.DeliveryID] = pair
	}

	for id, pair := range kinds {
		if pair[0] != pair[1] {
			return errors.Wrapf(entity.ErrIncompletePair, "delivery %s", id)
		}
	}

	return nil
}

func (e *Engine) newRNG(solverIndex int) *rand.Rand {
	seed := e.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Offset per solver so colocated solvers explore different trajectories.
	return rand.New(rand.NewSource(seed + int64(solverIndex)))
}

// buildRoute materializes a candidate order into a route and scores it.
func (e *Engine) buildRoute(model *costModel, candidate *Candidate, solver string) *entity.Route {
	ordered := make([]entity.Waypoint, len(candidate.Order))
	for i, idx := range candidate.Order {
		ordered[i] = model.waypoints[idx]
	}

	distance := model.pathDistanceKm(candidate.Order)
	duration := model.pathDurationMin(candidate.Order)

	return &entity.Route{
		Waypoints:            ordered,
		TotalDistanceKm:      distance,
		EstimatedDurationMin: duration,
		Algorithm:            solver,
		CompositeScore:       compositeScore(distance, duration, solver, len(ordered), candidate.Quality),
	}
}

// compositeScore blends distance, duration, algorithm pedigree, stop count and
// solver-reported quality into a single comparable figure.
func compositeScore(distanceKm, durationMin float64, solver string, stops int, quality float64) float64 {
	distanceTerm := 100 - 2*distanceKm
	if distanceTerm < 0 {
		distanceTerm = 0
	}
	durationTerm := 100 - durationMin/2
	if durationTerm < 0 {
		durationTerm = 0
	}
	stopsTerm := 100 - 5*float64(stops)
	if stopsTerm < 0 {
		stopsTerm = 0
	}

	return 0.30*distanceTerm +
		0.25*durationTerm +
		0.20*algorithmWeights[solver] +
		0.15*stopsTerm +
		0.10*quality
}
