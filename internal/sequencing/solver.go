package sequencing

import (
	"sort"
	"time"
)

// solverState is the mutable search context for one exact solve.
type solverState struct {
	plan     *planner
	deadline time.Time
	expired  bool

	bestOrder  []int
	bestTravel time.Duration
	haveBest   bool

	order   []int
	visited []bool
	minIn   []time.Duration // cheapest incoming edge per node, for the lower bound
}

// solve runs an exact depth-first branch-and-bound over visiting orders,
// minimizing cumulative travel time under the time-window constraints. It
// stops at the wall-clock budget and reports the best order found so far;
// solved=false means no feasible order was found in budget and the caller
// should fall back to the greedy heuristic.
func solve(plan *planner, budget time.Duration) (order []int, solved bool) {
	n := len(plan.nodes) - 1
	st := &solverState{
		plan:     plan,
		deadline: time.Now().Add(budget),
		order:    make([]int, 0, n),
		visited:  make([]bool, len(plan.nodes)),
		minIn:    make([]time.Duration, len(plan.nodes)),
	}

	for j := 1; j < len(plan.nodes); j++ {
		min := time.Duration(-1)
		for i := range plan.nodes {
			if i == j {
				continue
			}
			if min < 0 || plan.travel[i][j] < min {
				min = plan.travel[i][j]
			}
		}
		if min > 0 {
			st.minIn[j] = min
		}
	}

	st.expand(0, plan.constraints.StartTime, 0)

	if !st.haveBest {
		return nil, false
	}
	return st.bestOrder, true
}

// expand tries every unvisited next stop from the current node, cheapest
// travel first (ties by node index, keeping the search deterministic).
func (st *solverState) expand(current int, now time.Time, travelSoFar time.Duration) {
	if st.expired {
		return
	}
	if time.Now().After(st.deadline) {
		st.expired = true
		return
	}

	plan := st.plan
	n := len(plan.nodes) - 1

	if len(st.order) == n {
		if !st.haveBest || travelSoFar < st.bestTravel {
			st.bestOrder = append(st.bestOrder[:0], st.order...)
			st.bestTravel = travelSoFar
			st.haveBest = true
		}
		return
	}

	// Admissible lower bound: every remaining stop still has to be entered
	// by at least its cheapest incoming leg.
	if st.haveBest {
		bound := travelSoFar
		for j := 1; j <= n; j++ {
			if !st.visited[j] {
				bound += st.minIn[j]
			}
		}
		if bound >= st.bestTravel {
			return
		}
	}

	type move struct {
		next int
		leg  time.Duration
	}
	moves := make([]move, 0, n)
	for j := 1; j <= n; j++ {
		if !st.visited[j] {
			moves = append(moves, move{next: j, leg: plan.travel[current][j]})
		}
	}
	sort.Slice(moves, func(a, b int) bool {
		if moves[a].leg != moves[b].leg {
			return moves[a].leg < moves[b].leg
		}
		return moves[a].next < moves[b].next
	})

	for _, mv := range moves {
		arrival := now.Add(mv.leg)
		_, departure, _, reason := stopVisit(plan.nodes[mv.next], arrival)
		if reason != "" || departure.After(plan.constraints.EndTime) {
			continue
		}

		st.visited[mv.next] = true
		st.order = append(st.order, mv.next)
		st.expand(mv.next, departure, travelSoFar+mv.leg)
		st.order = st.order[:len(st.order)-1]
		st.visited[mv.next] = false

		if st.expired {
			return
		}
	}
}
