// Package position provides the device position source used by coordinate
// resolution.
package position

import (
	"context"

	"barhop/config"
	"barhop/internal/domain/entity"
	"barhop/internal/domain/service"
)

// fixedSource reports a statically configured position, for deployments that
// sit at a known location.
type fixedSource struct {
	coord entity.Coordinates
}

// New creates a position source from config. Returns nil when no fixed
// position is configured; resolution then falls back to the default city
// center, the same as an unsupported geolocation API.
func New(cfg *config.Config) service.PositionSource {
	if cfg.Locate == nil || cfg.Locate.Fixed == nil {
		return nil
	}

	return &fixedSource{
		coord: entity.Coordinates{
			Latitude:  cfg.Locate.Fixed.Latitude,
			Longitude: cfg.Locate.Fixed.Longitude,
		},
	}
}

// Current yields the configured position, honoring context cancellation.
func (s *fixedSource) Current(ctx context.Context) (entity.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return entity.Coordinates{}, err
	}

	return s.coord, nil
}
