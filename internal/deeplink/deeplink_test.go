package deeplink

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripframe/itinerary-backend-go/internal/models"
)

func testItinerary(stops int) *models.Itinerary {
	it := &models.Itinerary{StartLat: 37.7955, StartLng: -122.3937}
	for i := 0; i < stops; i++ {
		it.Waypoints = append(it.Waypoints, models.Waypoint{
			Name: fmt.Sprintf("Stop %d", i),
			Lat:  37.79 + float64(i)*0.001,
			Lng:  -122.40,
		})
	}
	return it
}

func TestBuildEmptyItinerary(t *testing.T) {
	assert.Nil(t, Build(testItinerary(0)))
}

func TestBuildSingleLink(t *testing.T) {
	links := Build(testItinerary(3))
	require.Len(t, links, 1)

	parsed, err := url.Parse(links[0])
	require.NoError(t, err)
	q := parsed.Query()

	assert.Equal(t, "www.google.com", parsed.Host)
	assert.Equal(t, "1", q.Get("api"))
	assert.Equal(t, "walking", q.Get("travelmode"))
	assert.Equal(t, "37.795500,-122.393700", q.Get("origin"))
	assert.Equal(t, "37.792000,-122.400000", q.Get("destination"))

	via := strings.Split(q.Get("waypoints"), "|")
	assert.Equal(t, []string{"37.790000,-122.400000", "37.791000,-122.400000"}, via)
}

func TestBuildSplitsLongItinerary(t *testing.T) {
	links := Build(testItinerary(12))
	require.Len(t, links, 2)

	first, err := url.Parse(links[0])
	require.NoError(t, err)
	second, err := url.Parse(links[1])
	require.NoError(t, err)

	// First link: nine intermediate stops plus a destination.
	assert.Len(t, strings.Split(first.Query().Get("waypoints"), "|"), 9)

	// The second link picks up exactly where the first ended.
	assert.Equal(t, first.Query().Get("destination"), second.Query().Get("origin"))

	// Remaining two stops: one via, one destination.
	assert.Len(t, strings.Split(second.Query().Get("waypoints"), "|"), 1)
	assert.Equal(t, "37.801000,-122.400000", second.Query().Get("destination"))
}
