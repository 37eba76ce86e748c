// Package optimizer implements the multi-stop route search: four independent
// heuristic solvers raced over a shared immutable cost model, with the best
// tour by composite score kept.
package optimizer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dispatch/internal/domain/entity"
	"dispatch/internal/domain/service"
)

// precedencePenaltyKm is added to a tour's search cost per pickup/delivery
// inversion so every solver is steered toward feasible orderings. Final
// routes are additionally repaired before being returned.
const precedencePenaltyKm = 1000.0

type deliveryPair struct {
	pickup   int
	delivery int
}

// costModel is the shared, immutable view of the problem: waypoints, a
// road-factored distance matrix, per-segment durations, and dwell times.
// Solvers only ever read from it, which is what makes the fan-out safe.
type costModel struct {
	waypoints []entity.Waypoint
	n         int

	distKm   [][]float64
	durMin   [][]float64
	dwellMin []float64

	pairs map[uuid.UUID]deliveryPair
}

type costModelInput struct {
	waypoints        []entity.Waypoint
	roadFactor       float64
	speedKmh         float64
	rushHourFactor   float64
	urbanFactor      float64
	pickupDwellMin   float64
	deliveryDwellMin float64
	traffic          service.TrafficProvider
	clock            service.Clock
}

// newCostModel precomputes all pairwise segment costs. Traffic lookups happen
// here, once, at the boundary; the solvers themselves never do I/O.
func newCostModel(ctx context.Context, in costModelInput) *costModel {
	n := len(in.waypoints)
	m := &costModel{
		waypoints: in.waypoints,
		n:         n,
		distKm:    make([][]float64, n),
		durMin:    make([][]float64, n),
		dwellMin:  make([]float64, n),
		pairs:     make(map[uuid.UUID]deliveryPair),
	}

	slowdown := in.urbanFactor
	if isRushHour(in.clock.Now()) {
		slowdown *= in.rushHourFactor
	}

	for i := 0; i < n; i++ {
		m.distKm[i] = make([]float64, n)
		m.durMin[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}

			distance := in.waypoints[i].Point.DistanceKm(in.waypoints[j].Point) * in.roadFactor
			m.distKm[i][j] = distance

			if duration, ok := trafficDuration(ctx, in.traffic, in.waypoints[i].Point, in.waypoints[j].Point); ok {
				// Traffic-sourced durations already reflect congestion.
				m.durMin[i][j] = duration
			} else {
				m.durMin[i][j] = distance / in.speedKmh * 60 * slowdown
			}
		}

		switch in.waypoints[i].Kind {
		case entity.WaypointPickup:
			m.dwellMin[i] = in.pickupDwellMin
		case entity.WaypointDelivery:
			m.dwellMin[i] = in.deliveryDwellMin
		}
	}

	for i, w := range in.waypoints {
		if w.DeliveryID == uuid.Nil {
			continue
		}
		pair := m.pairs[w.DeliveryID]
		switch w.Kind {
		case entity.WaypointPickup:
			pair.pickup = i
		case entity.WaypointDelivery:
			pair.delivery = i
		}
		m.pairs[w.DeliveryID] = pair
	}

	return m
}

func trafficDuration(ctx context.Context, traffic service.TrafficProvider, from, to entity.GeoPoint) (float64, bool) {
	if traffic == nil {
		return 0, false
	}

	duration, err := traffic.SegmentDuration(ctx, from, to)
	if err != nil {
		return 0, false
	}

	return duration.Minutes(), true
}

// tourCost is the objective the solvers minimize: path distance plus a heavy
// penalty per precedence violation.
func (m *costModel) tourCost(order []int) float64 {
	cost := m.pathDistanceKm(order)
	cost += float64(m.precedenceViolations(order)) * precedencePenaltyKm

	return cost
}

// pathDistanceKm sums segment distances along the tour (open path, no return
// leg).
func (m *costModel) pathDistanceKm(order []int) float64 {
	var total float64
	for i := 1; i < len(order); i++ {
		total += m.distKm[order[i-1]][order[i]]
	}

	return total
}

// pathDurationMin sums segment travel times plus dwell at every stop.
func (m *costModel) pathDurationMin(order []int) float64 {
	var total float64
	for i := 1; i < len(order); i++ {
		total += m.durMin[order[i-1]][order[i]]
	}
	for _, idx := range order {
		total += m.dwellMin[idx]
	}

	return total
}

func (m *costModel) precedenceViolations(order []int) int {
	position := make([]int, m.n)
	for pos, idx := range order {
		position[idx] = pos
	}

	violations := 0
	for _, pair := range m.pairs {
		if position[pair.pickup] > position[pair.delivery] {
			violations++
		}
	}

	return violations
}

// repairPrecedence swaps any inverted pickup/delivery positions in place so
// the invariant holds regardless of what the search produced. Swapping only
// the two offending elements cannot break any other pair.
func (m *costModel) repairPrecedence(order []int) {
	position := make([]int, m.n)
	for pos, idx := range order {
		position[idx] = pos
	}

	for _, pair := range m.pairs {
		pi, di := position[pair.pickup], position[pair.delivery]
		if pi > di {
			order[pi], order[di] = order[di], order[pi]
			position[pair.pickup], position[pair.delivery] = di, pi
		}
	}
}

// identityOrder returns the order 0..n-1.
func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	return order
}

func isRushHour(now time.Time) bool {
	hour := now.Hour()

	return (hour >= 8 && hour < 10) || (hour >= 17 && hour < 19)
}
