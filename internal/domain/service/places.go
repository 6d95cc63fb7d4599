// Package service defines the boundary interfaces the application layer
// consumes. Implementations live under internal/infra.
package service

import (
	"context"

	"barhop/internal/domain/entity"
	"barhop/internal/errors"
)

// ErrBarNotFound is returned by FetchOne when the upstream place does not exist.
var ErrBarNotFound = errors.New("bar not found")

// PlaceProvider translates one external places API into normalized Bar
// records. Implementations clamp radius and limit to the upstream maxima
// before issuing a request and never return partial success: a non-success
// upstream outcome is always an error carrying status and body.
type PlaceProvider interface {
	// Search returns nearby bars around center, nearest first.
	Search(ctx context.Context, center entity.Coordinates, radiusMeters, limit int) ([]*entity.Bar, error)

	// FetchOne returns a single bar by upstream id.
	// Returns ErrBarNotFound when the id is unknown.
	FetchOne(ctx context.Context, id string) (*entity.Bar, error)
}
