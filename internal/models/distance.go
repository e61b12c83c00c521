package models

// LegEstimate is the walking cost between two places.
type LegEstimate struct {
	DurationSeconds int `json:"duration_seconds"`
	DistanceMeters  int `json:"distance_meters"`
}

// pairKey orders a place-id pair. Walking legs are treated as symmetric, so
// lookups normalize the key direction.
type pairKey struct {
	from string
	to   string
}

// DistanceMatrix maps place-id pairs to walking estimates. It is a read-only
// lookup for the sequencer; missing pairs are resolved by the caller-supplied
// fallback, never here.
type DistanceMatrix struct {
	legs map[pairKey]LegEstimate
}

// NewDistanceMatrix creates an empty matrix.
func NewDistanceMatrix() *DistanceMatrix {
	return &DistanceMatrix{legs: make(map[pairKey]LegEstimate)}
}

// Set records the estimate for a pair in both directions.
func (m *DistanceMatrix) Set(from, to string, leg LegEstimate) {
	m.legs[pairKey{from, to}] = leg
}

// Get returns the estimate for a pair, trying the reverse direction before
// reporting a miss.
func (m *DistanceMatrix) Get(from, to string) (LegEstimate, bool) {
	if leg, ok := m.legs[pairKey{from, to}]; ok {
		return leg, true
	}
	leg, ok := m.legs[pairKey{to, from}]
	return leg, ok
}

// Len returns the number of stored directed pairs.
func (m *DistanceMatrix) Len() int {
	return len(m.legs)
}
