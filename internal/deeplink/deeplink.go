// Package deeplink builds map-service navigation URLs for a sequenced
// itinerary.
package deeplink

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

// maxIntermediateStops is the host map service's observed per-link waypoint
// ceiling. Longer itineraries split into chained links, each starting where
// the previous one ended.
const maxIntermediateStops = 9

// Build returns one or more walking-directions URLs covering the itinerary
// in visit order.
func Build(it *models.Itinerary) []string {
	if len(it.Waypoints) == 0 {
		return nil
	}

	origin := coord(it.StartLat, it.StartLng)
	var links []string

	remaining := it.Waypoints
	for len(remaining) > 0 {
		// Each link holds up to maxIntermediateStops waypoints plus a
		// destination.
		chunk := remaining
		if len(chunk) > maxIntermediateStops+1 {
			chunk = chunk[:maxIntermediateStops+1]
		}
		remaining = remaining[len(chunk):]

		dest := chunk[len(chunk)-1]
		via := chunk[:len(chunk)-1]

		links = append(links, directionsURL(origin, dest, via))
		origin = coord(dest.Lat, dest.Lng)
	}

	return links
}

func directionsURL(origin string, dest models.Waypoint, via []models.Waypoint) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", origin)
	q.Set("destination", coord(dest.Lat, dest.Lng))
	q.Set("travelmode", "walking")

	if len(via) > 0 {
		parts := make([]string, len(via))
		for i, wp := range via {
			parts[i] = coord(wp.Lat, wp.Lng)
		}
		q.Set("waypoints", strings.Join(parts, "|"))
	}

	return "https://www.google.com/maps/dir/?" + q.Encode()
}

func coord(lat, lng float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lng)
}
