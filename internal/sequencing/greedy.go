package sequencing

import (
	"time"
)

// greedyOrder is the deterministic nearest-feasible-next heuristic: from the
// current position, pick the unvisited stop with the lowest travel time whose
// window can still be met, ties broken by lowest stop index. When no
// remaining stop is feasible the heuristic fails with an *InfeasibleError
// naming the first stop (by index) that could not be scheduled.
func greedyOrder(plan *planner) ([]int, error) {
	n := len(plan.nodes) - 1
	visited := make([]bool, len(plan.nodes))
	order := make([]int, 0, n)

	current := 0
	now := plan.constraints.StartTime

	for len(order) < n {
		best := -1
		var bestLeg time.Duration
		var bestDeparture time.Time

		blocked := -1
		blockedReason := ""

		for j := 1; j <= n; j++ {
			if visited[j] {
				continue
			}
			leg := plan.travel[current][j]
			arrival := now.Add(leg)
			_, departure, _, reason := stopVisit(plan.nodes[j], arrival)
			if reason == "" && departure.After(plan.constraints.EndTime) {
				reason = "exceeds trip end time"
			}
			if reason != "" {
				if blocked < 0 {
					blocked = j
					blockedReason = reason
				}
				continue
			}
			if best < 0 || leg < bestLeg {
				best = j
				bestLeg = leg
				bestDeparture = departure
			}
		}

		if best < 0 {
			return nil, &InfeasibleError{
				StopName: plan.nodes[blocked].name,
				Reason:   blockedReason,
			}
		}

		visited[best] = true
		order = append(order, best)
		current = best
		now = bestDeparture
	}

	return order, nil
}
