package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

type fakeGeocoder struct {
	matches map[string][]models.PlaceMatch
	err     error
}

func (f *fakeGeocoder) Lookup(_ context.Context, name, _ string) ([]models.PlaceMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matches[name], nil
}

func TestEnrich(t *testing.T) {
	g := &fakeGeocoder{matches: map[string][]models.PlaceMatch{
		"Joe's Pizza": {
			{PlaceID: "p1", Name: "Joe's Pizza", Lat: 40.7306, Lng: -73.9866},
			{PlaceID: "p2", Name: "Joe's Pizza Broadway", Lat: 40.7548, Lng: -73.9870},
		},
	}}

	candidates := []models.ResolvedCandidate{
		{Name: "Joe's Pizza", Confidence: 0.90},
		{Name: "Nowhere Special", Confidence: 0.60},
	}

	enriched := Enrich(context.Background(), g, candidates, "New York")

	require.Len(t, enriched, 2)
	assert.True(t, enriched[0].HasCoords)
	assert.Equal(t, 40.7306, enriched[0].Lat)
	require.Len(t, enriched[0].Alternatives, 1)
	assert.Equal(t, "p2", enriched[0].Alternatives[0].PlaceID)

	assert.False(t, enriched[1].HasCoords, "no match leaves the candidate ungeocoded")
}

func TestEnrichToleratesLookupFailure(t *testing.T) {
	g := &fakeGeocoder{err: errors.New("quota exceeded")}

	candidates := []models.ResolvedCandidate{{Name: "Joe's Pizza", Confidence: 0.90}}
	enriched := Enrich(context.Background(), g, candidates, "")

	require.Len(t, enriched, 1)
	assert.False(t, enriched[0].HasCoords)
}
