package geocode

import (
	"context"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

// Geocoder resolves a place name to zero or more ranked matches. The
// first/highest-ranked match supplies a resolved candidate's coordinates and
// the remainder populate its alternatives.
type Geocoder interface {
	Lookup(ctx context.Context, name, locality string) ([]models.PlaceMatch, error)
}

// Enrich geocodes each resolved candidate in place: best match coordinates
// plus alternatives. Lookup failures leave the candidate ungeocoded rather
// than failing the batch.
func Enrich(ctx context.Context, g Geocoder, candidates []models.ResolvedCandidate, locality string) []models.ResolvedCandidate {
	out := make([]models.ResolvedCandidate, len(candidates))
	copy(out, candidates)

	for i := range out {
		matches, err := g.Lookup(ctx, out[i].Name, locality)
		if err != nil || len(matches) == 0 {
			continue
		}
		out[i].Lat = matches[0].Lat
		out[i].Lng = matches[0].Lng
		out[i].HasCoords = true
		if len(matches) > 1 {
			out[i].Alternatives = matches[1:]
		}
	}
	return out
}
