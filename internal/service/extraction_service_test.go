package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripframe/itinerary-backend-go/internal/models"
	"github.com/tripframe/itinerary-backend-go/internal/resolution"
	"github.com/tripframe/itinerary-backend-go/internal/vision"
)

func TestExtractBatchMergesAcrossImages(t *testing.T) {
	s := NewExtractionService(nil, resolution.NewResolver(resolution.DefaultConfig()), nil, nil)

	images := []ImageInput{
		{Index: 0, Regions: []models.TextRegion{{Text: "Joe's Pizza", HasPin: true}}},
		{Index: 1, Regions: []models.TextRegion{{Text: "best slice #JoesPizza"}}},
		{Index: 2},
	}

	result, err := s.ExtractBatch(context.Background(), images, "")
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1, "the pin and hashtag sightings are the same place")
	assert.Equal(t, "Joe's Pizza", result.Candidates[0].Name)
	assert.Equal(t, 2, result.Candidates[0].MemberCount)
	assert.InDelta(t, 1.0, result.Candidates[0].Confidence, 0.06)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, 2, result.Diagnostics[0].ImageIndex)
	assert.Equal(t, "no legible text", result.Diagnostics[0].Reason)
}

func TestExtractBatchUsesVisionSource(t *testing.T) {
	src := &vision.StaticSource{Findings: []models.VisionFinding{
		{Name: "Eiffel Tower", Confidence: 0.92},
	}}
	s := NewExtractionService(src, resolution.NewResolver(resolution.DefaultConfig()), nil, nil)

	images := []ImageInput{
		{Index: 0, ImageData: []byte{0xFF, 0xD8}},
	}

	result, err := s.ExtractBatch(context.Background(), images, "Paris")
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "Eiffel Tower", result.Candidates[0].Name)
	assert.Equal(t, 0.92, result.Candidates[0].Confidence)
	assert.Empty(t, result.Diagnostics)
}

func TestExtractBatchAllFilteredIsNotAnError(t *testing.T) {
	s := NewExtractionService(nil, resolution.NewResolver(resolution.DefaultConfig()), nil, nil)

	images := []ImageInput{
		{Index: 0, Regions: []models.TextRegion{{Text: "#travel #wanderlust"}}},
	}

	result, err := s.ExtractBatch(context.Background(), images, "")
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "no location mentions detected", result.Diagnostics[0].Reason)
}
