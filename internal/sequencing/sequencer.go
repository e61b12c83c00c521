package sequencing

import (
	"fmt"
	"time"

	"github.com/tripframe/itinerary-backend-go/internal/models"
	"github.com/tripframe/itinerary-backend-go/internal/spatial"
)

// StartPlaceID is the synthetic place id for the trip's start location in
// distance-matrix lookups.
const StartPlaceID = "@start"

// Config bounds the combinatorial search.
type Config struct {
	SolverBudget   time.Duration // wall-clock budget for the exact solver
	MaxSolverStops int           // above this, skip straight to the greedy heuristic
}

// DefaultConfig returns the production search bounds.
func DefaultConfig() Config {
	return Config{
		SolverBudget:   2 * time.Second,
		MaxSolverStops: 12,
	}
}

// InfeasibleError reports that no ordering of the confirmed waypoints fits
// the trip window and opening hours, naming the blocking stop.
type InfeasibleError struct {
	StopName string
	Reason   string
}

func (e *InfeasibleError) Error() string {
	if e.StopName == "" {
		return fmt.Sprintf("no feasible route: %s", e.Reason)
	}
	return fmt.Sprintf("no feasible route: %s (%s)", e.StopName, e.Reason)
}

// Result is a sequenced itinerary: the input waypoints with order, arrival
// and departure populated, in visiting order.
type Result struct {
	Waypoints         []models.Waypoint
	TotalTimeMinutes  int
	TotalTravelMeters int
}

// node is one arena entry in the search: index 0 is the start location, the
// rest are waypoints.
type node struct {
	placeID string
	name    string
	lat     float64
	lng     float64
	stay    time.Duration
	opening []models.OpeningInterval
}

// Sequencer orders a confirmed waypoint set into a time-feasible walking
// route. It never performs I/O: the distance matrix is a read-only lookup
// with a deterministic straight-line fallback for missing pairs.
type Sequencer struct {
	cfg Config
}

// NewSequencer creates a sequencer with the given search bounds.
func NewSequencer(cfg Config) *Sequencer {
	if cfg.SolverBudget <= 0 {
		cfg.SolverBudget = DefaultConfig().SolverBudget
	}
	if cfg.MaxSolverStops <= 0 {
		cfg.MaxSolverStops = DefaultConfig().MaxSolverStops
	}
	return &Sequencer{cfg: cfg}
}

// Sequence computes a visiting order and schedule for the waypoints under
// the trip constraints. Zero waypoints are trivially feasible. The exact
// solver runs for small stop counts within a wall-clock budget; otherwise a
// deterministic nearest-feasible-next heuristic takes over. Returns an
// *InfeasibleError when no ordering fits.
func (s *Sequencer) Sequence(constraints models.TripConstraints, waypoints []models.Waypoint, matrix *models.DistanceMatrix) (*Result, error) {
	if !constraints.EndTime.After(constraints.StartTime) {
		return nil, fmt.Errorf("trip end time must be after start time")
	}
	for i := range waypoints {
		if waypoints[i].StayDurationMinutes <= 0 {
			return nil, fmt.Errorf("waypoint %q has non-positive stay duration", waypoints[i].Name)
		}
	}

	if len(waypoints) == 0 {
		return &Result{}, nil
	}

	plan := newPlanner(constraints, waypoints, matrix)

	var order []int
	solved := false
	if len(waypoints) <= s.cfg.MaxSolverStops {
		order, solved = solve(plan, s.cfg.SolverBudget)
	}
	if !solved {
		// Budget exhausted or no feasible order in the exact search; the
		// greedy pass either finds an order or names the blocking stop.
		var err error
		order, err = greedyOrder(plan)
		if err != nil {
			return nil, err
		}
	}

	sched, ok := plan.evaluate(order)
	if !ok {
		// Cannot happen for an order the solver or heuristic accepted.
		return nil, &InfeasibleError{Reason: "schedule validation failed"}
	}
	return plan.buildResult(waypoints, order, sched), nil
}

// planner holds the immutable search arena for one sequencing call.
type planner struct {
	constraints models.TripConstraints
	nodes       []node
	travel      [][]time.Duration
	meters      [][]int
}

func newPlanner(constraints models.TripConstraints, waypoints []models.Waypoint, matrix *models.DistanceMatrix) *planner {
	nodes := make([]node, 0, len(waypoints)+1)
	nodes = append(nodes, node{
		placeID: StartPlaceID,
		name:    "start",
		lat:     constraints.StartLat,
		lng:     constraints.StartLng,
	})
	for i := range waypoints {
		wp := &waypoints[i]
		nodes = append(nodes, node{
			placeID: wp.PlaceID,
			name:    wp.Name,
			lat:     wp.Lat,
			lng:     wp.Lng,
			stay:    time.Duration(wp.StayDurationMinutes) * time.Minute,
			opening: wp.OpeningHours,
		})
	}

	p := &planner{constraints: constraints, nodes: nodes}
	p.precomputeTravel(matrix)
	return p
}

// precomputeTravel fills the pairwise travel table from the matrix, falling
// back to straight-line distance over the configured walking speed for any
// missing pair. Identical coordinates cost zero.
func (p *planner) precomputeTravel(matrix *models.DistanceMatrix) {
	n := len(p.nodes)
	p.travel = make([][]time.Duration, n)
	p.meters = make([][]int, n)
	for i := 0; i < n; i++ {
		p.travel[i] = make([]time.Duration, n)
		p.meters[i] = make([]int, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			a, b := p.nodes[i], p.nodes[j]
			if matrix != nil && a.placeID != "" && b.placeID != "" {
				if leg, ok := matrix.Get(a.placeID, b.placeID); ok {
					p.travel[i][j] = time.Duration(leg.DurationSeconds) * time.Second
					p.meters[i][j] = leg.DistanceMeters
					continue
				}
			}
			dist := spatial.HaversineDistance(a.lat, a.lng, b.lat, b.lng)
			p.travel[i][j] = spatial.WalkingDuration(a.lat, a.lng, b.lat, b.lng, p.constraints.WalkingSpeed)
			p.meters[i][j] = int(dist)
		}
	}
}

// buildResult copies the waypoints with order and schedule populated,
// returned in visiting order.
func (p *planner) buildResult(waypoints []models.Waypoint, order []int, sched schedule) *Result {
	out := make([]models.Waypoint, 0, len(order))
	totalMeters := 0
	prev := 0
	for pos, ni := range order {
		wp := waypoints[ni-1] // node index 1..n maps to waypoint index 0..n-1
		wp.Order = pos
		wp.ArrivalTime = sched.arrivals[pos]
		wp.DepartureTime = sched.departures[pos]
		wp.WaitMinutes = int(sched.waits[pos].Minutes())
		out = append(out, wp)

		totalMeters += p.meters[prev][ni]
		prev = ni
	}

	totalMinutes := 0
	if len(order) > 0 {
		totalMinutes = int(sched.departures[len(order)-1].Sub(p.constraints.StartTime).Minutes())
	}

	return &Result{
		Waypoints:         out,
		TotalTimeMinutes:  totalMinutes,
		TotalTravelMeters: totalMeters,
	}
}
