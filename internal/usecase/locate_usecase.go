package usecase

import (
	"context"

	"barhop/internal/domain/entity"
	"barhop/internal/domain/service"
)

// Resolution sources.
const (
	ResolutionDevice   = "device"
	ResolutionFallback = "fallback"
	ResolutionManual   = "manual"
)

// Resolution is the outcome of resolving the reference coordinate.
type Resolution struct {
	Coordinate entity.Coordinates `json:"coordinate"`
	Source     string             `json:"source"`
	// FallbackReason distinguishes the failure kind when Source is
	// "fallback": permission denied, unavailable, or timed out.
	FallbackReason string `json:"fallbackReason,omitempty"`
}

// LocateUsecase resolves the reference point used for proximity search and
// propagates every resolution into the bars controller.
type LocateUsecase interface {
	// Resolve asks the position source with a bounded wait. Any failure
	// yields the fixed fallback coordinate with a reason; the flow never
	// blocks on a missing device position.
	Resolve(ctx context.Context) Resolution

	// Override replaces the reference coordinate explicitly (map-pin drag,
	// geocode candidate selection). Propagates exactly like a fresh
	// resolution, including triggering a new fetch.
	Override(ctx context.Context, coord entity.Coordinates) Resolution

	// Current returns the last resolution, or nil before the first one.
	Current() *Resolution

	// SearchPlace resolves a free-text place name to candidate coordinates.
	SearchPlace(ctx context.Context, query string) ([]service.GeocodeCandidate, error)

	// ReverseLocality names the locality at a coordinate.
	ReverseLocality(ctx context.Context, coord entity.Coordinates) (string, error)
}
