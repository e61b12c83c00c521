package models

// PlaceMatch is one geocoded match for a resolved candidate, as returned by
// the geocoding collaborator. The first/highest-ranked match supplies the
// candidate's coordinates; the remainder become alternatives.
type PlaceMatch struct {
	PlaceID  string  `json:"place_id"`
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Rating   float64 `json:"rating,omitempty"`
	PhotoURL string  `json:"photo_url,omitempty"`
}

// ResolvedCandidate is a deduplicated, confidence-ranked place produced by
// merging near-duplicate candidates. Immutable once created.
type ResolvedCandidate struct {
	Name        string  `json:"name"`       // representative name (highest-confidence member)
	Confidence  float64 `json:"confidence"` // aggregated, clamped to 1.0
	MemberCount int     `json:"member_count"`
	Lat         float64 `json:"lat,omitempty"` // centroid of geo-located members
	Lng         float64 `json:"lng,omitempty"`
	HasCoords   bool    `json:"has_coords"`
	Description string  `json:"description,omitempty"`

	// Alternatives come from the geocoding collaborator, not the resolver.
	Alternatives []PlaceMatch `json:"alternatives,omitempty"`
}

// MergeRecord documents one absorbed duplicate for user-facing transparency.
type MergeRecord struct {
	OriginalName   string `json:"original_name"`
	MergedIntoName string `json:"merged_into_name"`
}
