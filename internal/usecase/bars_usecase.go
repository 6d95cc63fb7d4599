package usecase

import (
	"context"

	"barhop/internal/domain/entity"
)

// FetchState is the lifecycle state of the bars controller.
type FetchState string

const (
	StateIdle    FetchState = "idle"
	StateLoading FetchState = "loading"
	StateSuccess FetchState = "success"
	StateError   FetchState = "error"
)

// BarsSnapshot is a point-in-time view of the controller: the authoritative
// unfiltered record set plus the coordinate actually used to produce it, so
// downstream distance displays and map centering stay consistent with what
// was queried.
type BarsSnapshot struct {
	State         FetchState          `json:"state"`
	Bars          []*entity.Bar       `json:"bars"`
	Coordinate    *entity.Coordinates `json:"coordinate,omitempty"`
	RadiusMeters  int                 `json:"radiusMeters"`
	UsingMockData bool                `json:"usingMockData"`
	ErrorMessage  string              `json:"error,omitempty"`
}

// BarsUsecase owns the fetch lifecycle for nearby bars: loading/error/success
// transitions, automatic refetch on coordinate or radius changes, explicit
// retry, and the built-in mock fallback on any provider failure. It performs
// no filtering; views are derived from the snapshot by the pure pipeline.
type BarsUsecase interface {
	// SetLocation records a new reference coordinate and refetches.
	SetLocation(ctx context.Context, coord entity.Coordinates) BarsSnapshot

	// SetRadius records a new search radius and refetches if a coordinate
	// is known. Without a coordinate the controller stays idle.
	SetRadius(ctx context.Context, radiusMeters int) BarsSnapshot

	// Refetch retries with the last-known coordinate and radius.
	Refetch(ctx context.Context) BarsSnapshot

	// Snapshot returns the current state without side effects.
	Snapshot() BarsSnapshot

	// View applies the filter/sort configuration to the current record set.
	View(cfg entity.ViewConfig) []*entity.Bar

	// FetchOne resolves a single bar by id straight from the provider.
	FetchOne(ctx context.Context, id string) (*entity.Bar, error)
}
