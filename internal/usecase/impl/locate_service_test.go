package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"barhop/config"
	"barhop/internal/domain/entity"
	"barhop/internal/domain/service"
	"barhop/internal/errors"
	"barhop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePositionSource returns a fixed coordinate or error. When block is set
// it waits for context cancellation instead.
type fakePositionSource struct {
	coord entity.Coordinates
	err   error
	block bool
}

func (s *fakePositionSource) Current(ctx context.Context) (entity.Coordinates, error) {
	if s.block {
		<-ctx.Done()

		return entity.Coordinates{}, ctx.Err()
	}
	if s.err != nil {
		return entity.Coordinates{}, s.err
	}

	return s.coord, nil
}

// fakeBars records the coordinates pushed into the bars controller.
type fakeBars struct {
	mu     sync.Mutex
	coords []entity.Coordinates
}

func (b *fakeBars) SetLocation(_ context.Context, coord entity.Coordinates) usecase.BarsSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.coords = append(b.coords, coord)

	return usecase.BarsSnapshot{State: usecase.StateSuccess}
}

func (b *fakeBars) SetRadius(context.Context, int) usecase.BarsSnapshot { return usecase.BarsSnapshot{} }
func (b *fakeBars) Refetch(context.Context) usecase.BarsSnapshot       { return usecase.BarsSnapshot{} }
func (b *fakeBars) Snapshot() usecase.BarsSnapshot                     { return usecase.BarsSnapshot{} }
func (b *fakeBars) View(entity.ViewConfig) []*entity.Bar               { return nil }
func (b *fakeBars) FetchOne(context.Context, string) (*entity.Bar, error) {
	return nil, service.ErrBarNotFound
}

func (b *fakeBars) received() []entity.Coordinates {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]entity.Coordinates(nil), b.coords...)
}

type fakeGeocoder struct {
	candidates []service.GeocodeCandidate
	locality   string
	err        error
}

func (g *fakeGeocoder) SearchPlace(context.Context, string) ([]service.GeocodeCandidate, error) {
	return g.candidates, g.err
}

func (g *fakeGeocoder) ReverseLocality(context.Context, entity.Coordinates) (string, error) {
	return g.locality, g.err
}

func newTestLocateService(source service.PositionSource, bars usecase.BarsUsecase, timeout time.Duration) usecase.LocateUsecase {
	cfg := &config.Config{Locate: &config.LocateConfig{Timeout: timeout}}

	return NewLocateService(source, &fakeGeocoder{}, bars, cfg, newDiscardLogger())
}

func TestLocateService_DeviceSuccess(t *testing.T) {
	device := entity.Coordinates{Latitude: 59.9139, Longitude: 10.7522}
	bars := &fakeBars{}
	svc := newTestLocateService(&fakePositionSource{coord: device}, bars, time.Second)

	resolution := svc.Resolve(context.Background())

	assert.Equal(t, usecase.ResolutionDevice, resolution.Source)
	assert.Equal(t, device, resolution.Coordinate)
	assert.Empty(t, resolution.FallbackReason)
	assert.Equal(t, []entity.Coordinates{device}, bars.received())
}

func TestLocateService_PermissionDeniedFallsBack(t *testing.T) {
	bars := &fakeBars{}
	svc := newTestLocateService(&fakePositionSource{err: service.ErrPermissionDenied}, bars, time.Second)

	resolution := svc.Resolve(context.Background())

	assert.Equal(t, usecase.ResolutionFallback, resolution.Source)
	assert.Equal(t, fallbackCoordinate, resolution.Coordinate)
	assert.Contains(t, resolution.FallbackReason, "denied")
	// The fallback coordinate still drives a fetch.
	assert.Equal(t, []entity.Coordinates{fallbackCoordinate}, bars.received())
}

func TestLocateService_UnavailableFallsBack(t *testing.T) {
	bars := &fakeBars{}
	svc := newTestLocateService(&fakePositionSource{err: service.ErrPositionUnavailable}, bars, time.Second)

	resolution := svc.Resolve(context.Background())

	assert.Equal(t, usecase.ResolutionFallback, resolution.Source)
	assert.Contains(t, resolution.FallbackReason, "unavailable")
}

func TestLocateService_TimeoutFallsBack(t *testing.T) {
	bars := &fakeBars{}
	svc := newTestLocateService(&fakePositionSource{block: true}, bars, 10*time.Millisecond)

	resolution := svc.Resolve(context.Background())

	assert.Equal(t, usecase.ResolutionFallback, resolution.Source)
	assert.Equal(t, fallbackCoordinate, resolution.Coordinate)
	assert.Contains(t, resolution.FallbackReason, "timed out")
}

func TestLocateService_NilSourceFallsBack(t *testing.T) {
	bars := &fakeBars{}
	svc := newTestLocateService(nil, bars, time.Second)

	resolution := svc.Resolve(context.Background())

	assert.Equal(t, usecase.ResolutionFallback, resolution.Source)
	assert.Equal(t, fallbackCoordinate, resolution.Coordinate)
}

func TestLocateService_OverridePropagates(t *testing.T) {
	manual := entity.Coordinates{Latitude: 63.4305, Longitude: 10.3951}
	bars := &fakeBars{}
	svc := newTestLocateService(&fakePositionSource{err: service.ErrPositionUnavailable}, bars, time.Second)

	resolution := svc.Override(context.Background(), manual)

	assert.Equal(t, usecase.ResolutionManual, resolution.Source)
	assert.Equal(t, manual, resolution.Coordinate)
	assert.Equal(t, []entity.Coordinates{manual}, bars.received())

	current := svc.Current()
	require.NotNil(t, current)
	assert.Equal(t, manual, current.Coordinate)
}

func TestLocateService_CurrentBeforeFirstResolution(t *testing.T) {
	svc := newTestLocateService(nil, &fakeBars{}, time.Second)

	assert.Nil(t, svc.Current())
}

func TestLocateService_SearchPlaceEmptyQuery(t *testing.T) {
	svc := newTestLocateService(nil, &fakeBars{}, time.Second)

	_, err := svc.SearchPlace(context.Background(), "   ")
	assert.Error(t, err)
}

func TestLocateService_SearchPlaceWrapsError(t *testing.T) {
	cfg := &config.Config{}
	geocoder := &fakeGeocoder{err: errors.New("nominatim unreachable")}
	svc := NewLocateService(nil, geocoder, &fakeBars{}, cfg, newDiscardLogger())

	_, err := svc.SearchPlace(context.Background(), "Bergen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nominatim unreachable")
}
