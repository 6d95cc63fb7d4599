package service

import (
	"context"

	"barhop/internal/domain/entity"
)

// GeocodeCandidate is one possible resolution of a free-text place search,
// offered to the user for disambiguation.
type GeocodeCandidate struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
}

// Geocoder resolves free-text place names to coordinates and coordinates to
// locality names. No fallback coordinate is applied here: a failed or empty
// lookup is surfaced to the caller as retryable.
type Geocoder interface {
	// SearchPlace converts a free-text query into zero or more candidates.
	SearchPlace(ctx context.Context, query string) ([]GeocodeCandidate, error)

	// ReverseLocality converts a coordinate into a human-readable locality name.
	ReverseLocality(ctx context.Context, coord entity.Coordinates) (string, error)
}
