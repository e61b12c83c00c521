package sequencing

import (
	"time"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

// schedule is the computed timing for one candidate visiting order.
type schedule struct {
	arrivals   []time.Time
	departures []time.Time
	waits      []time.Duration
	travelTime time.Duration
}

// stopVisit schedules a single stop given the raw arrival instant. Arriving
// before opening means waiting to the opening time; the wait counts toward
// trip time but not travel. Arriving after closing makes this position
// infeasible for the stop.
func stopVisit(n node, arrival time.Time) (effArrival, departure time.Time, wait time.Duration, reason string) {
	effArrival = arrival

	if len(n.opening) > 0 {
		window, open := openWindow(n, arrival.Weekday())
		if !open {
			return arrival, time.Time{}, 0, "closed on " + arrival.Weekday().String()
		}

		opens := atMinute(arrival, window.OpenMinute)
		closes := atMinute(arrival, window.CloseMinute)

		if arrival.After(closes) {
			return arrival, time.Time{}, 0, "arrives after closing"
		}
		if arrival.Before(opens) {
			wait = opens.Sub(arrival)
			effArrival = opens
		}
	}

	departure = effArrival.Add(n.stay)
	return effArrival, departure, wait, ""
}

func openWindow(n node, day time.Weekday) (models.OpeningInterval, bool) {
	for _, w := range n.opening {
		if w.Weekday == day {
			return w, true
		}
	}
	return models.OpeningInterval{}, false
}

// atMinute returns the instant at the given minute-of-day on t's date, in t's
// location.
func atMinute(t time.Time, minute int) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, minute, 0, 0, t.Location())
}

// evaluate computes the full schedule for a visiting order (node indices
// 1..n, start excluded). Returns ok=false when any stop's window or the trip
// end time is violated.
func (p *planner) evaluate(order []int) (schedule, bool) {
	sched := schedule{
		arrivals:   make([]time.Time, len(order)),
		departures: make([]time.Time, len(order)),
		waits:      make([]time.Duration, len(order)),
	}

	now := p.constraints.StartTime
	prev := 0
	for pos, ni := range order {
		leg := p.travel[prev][ni]
		arrival := now.Add(leg)

		effArrival, departure, wait, reason := stopVisit(p.nodes[ni], arrival)
		if reason != "" {
			return schedule{}, false
		}
		if departure.After(p.constraints.EndTime) {
			return schedule{}, false
		}

		sched.arrivals[pos] = effArrival
		sched.departures[pos] = departure
		sched.waits[pos] = wait
		sched.travelTime += leg

		now = departure
		prev = ni
	}

	return sched, true
}
