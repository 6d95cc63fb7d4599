// Package places groups the upstream place-data adapters.
package places

import (
	"context"

	"barhop/internal/domain/entity"
	"barhop/internal/domain/service"
)

// Unavailable returns a provider whose every call fails with err. It stands
// in when the configured adapter cannot be constructed, so the bars service
// degrades to its built-in dataset instead of the process refusing to start.
func Unavailable(err error) service.PlaceProvider {
	return &unavailableProvider{err: err}
}

type unavailableProvider struct {
	err error
}

func (p *unavailableProvider) Search(_ context.Context, _ entity.Coordinates, _ int, _ int) ([]*entity.Bar, error) {
	return nil, p.err
}

func (p *unavailableProvider) FetchOne(_ context.Context, _ string) (*entity.Bar, error) {
	return nil, p.err
}
