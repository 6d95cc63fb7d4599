package impl

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"barhop/config"
	deliverycontext "barhop/internal/delivery/context"
	"barhop/internal/domain/entity"
	"barhop/internal/domain/service"
	"barhop/internal/errors"
	"barhop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider satisfies service.PlaceProvider with canned responses. An
// optional gate blocks Search until released, for in-flight race tests.
type fakeProvider struct {
	mu    sync.Mutex
	bars  []*entity.Bar
	err   error
	calls int
	gate  chan struct{}
}

func (p *fakeProvider) Search(_ context.Context, _ entity.Coordinates, _ int, _ int) ([]*entity.Bar, error) {
	p.mu.Lock()
	p.calls++
	gate := p.gate
	p.gate = nil
	bars, err := p.bars, p.err
	p.mu.Unlock()

	if gate != nil {
		<-gate
	}

	return bars, err
}

func (p *fakeProvider) FetchOne(_ context.Context, id string) (*entity.Bar, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, bar := range p.bars {
		if bar.ID == id {
			return bar, nil
		}
	}

	return nil, service.ErrBarNotFound
}

func (p *fakeProvider) searchCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.calls
}

func newTestBarsService(provider service.PlaceProvider) usecase.BarsUsecase {
	cfg := &config.Config{
		Places: &config.PlacesConfig{RadiusMeters: 1500, Limit: 50},
	}

	return NewBarsService(provider, nil, cfg, newDiscardLogger())
}

var testCoordinate = entity.Coordinates{Latitude: 60.3913, Longitude: 5.3221}

func TestBarsService_StartsIdle(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestBarsService(provider)

	snapshot := svc.Snapshot()
	assert.Equal(t, usecase.StateIdle, snapshot.State)
	assert.Empty(t, snapshot.Bars)
	assert.Nil(t, snapshot.Coordinate)
	assert.Zero(t, provider.searchCalls(), "no fetch may happen before a coordinate arrives")

	// Radius and refetch without a coordinate leave the controller idle.
	assert.Equal(t, usecase.StateIdle, svc.SetRadius(context.Background(), 3000).State)
	assert.Equal(t, usecase.StateIdle, svc.Refetch(context.Background()).State)
	assert.Zero(t, provider.searchCalls())
}

func TestBarsService_SuccessfulFetch(t *testing.T) {
	provider := &fakeProvider{bars: []*entity.Bar{
		{
			ID:          "near",
			Name:        "Harbour Tap",
			Coordinates: entity.NewLonLat(5.3230, 60.3920),
		},
	}}
	svc := newTestBarsService(provider)

	snapshot := svc.SetLocation(context.Background(), testCoordinate)

	assert.Equal(t, usecase.StateSuccess, snapshot.State)
	assert.False(t, snapshot.UsingMockData)
	assert.Empty(t, snapshot.ErrorMessage)
	require.NotNil(t, snapshot.Coordinate)
	assert.Equal(t, testCoordinate, *snapshot.Coordinate)

	require.Len(t, snapshot.Bars, 1)
	require.NotNil(t, snapshot.Bars[0].Distance, "distance is backfilled from the query coordinate")
	assert.Greater(t, *snapshot.Bars[0].Distance, 0.0)
	assert.Less(t, *snapshot.Bars[0].Distance, 500.0)
}

func TestBarsService_EmptySuccessIsNotAnError(t *testing.T) {
	provider := &fakeProvider{bars: []*entity.Bar{}}
	svc := newTestBarsService(provider)

	snapshot := svc.SetLocation(context.Background(), testCoordinate)

	assert.Equal(t, usecase.StateSuccess, snapshot.State)
	assert.Empty(t, snapshot.Bars)
	assert.False(t, snapshot.UsingMockData, "an empty result set must not trigger the mock fallback")
}

func TestBarsService_ProviderFailureFallsBackToMock(t *testing.T) {
	provider := &fakeProvider{err: errors.New("yelp request failed: status 401: TOKEN_INVALID")}
	svc := newTestBarsService(provider)

	snapshot := svc.SetLocation(context.Background(), testCoordinate)

	assert.Equal(t, usecase.StateError, snapshot.State)
	assert.Contains(t, snapshot.ErrorMessage, "401")
	assert.True(t, snapshot.UsingMockData)
	assert.NotEmpty(t, snapshot.Bars, "the mock dataset keeps the list usable")
}

func TestBarsService_RecoveryClearsErrorAndMockFlag(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream down")}
	svc := newTestBarsService(provider)

	failed := svc.SetLocation(context.Background(), testCoordinate)
	require.Equal(t, usecase.StateError, failed.State)
	require.True(t, failed.UsingMockData)

	provider.mu.Lock()
	provider.err = nil
	provider.bars = []*entity.Bar{{ID: "real", Coordinates: entity.NewLonLat(5.32, 60.39)}}
	provider.mu.Unlock()

	recovered := svc.Refetch(context.Background())

	assert.Equal(t, usecase.StateSuccess, recovered.State)
	assert.False(t, recovered.UsingMockData)
	assert.Empty(t, recovered.ErrorMessage)
	require.Len(t, recovered.Bars, 1)
	assert.Equal(t, "real", recovered.Bars[0].ID)
}

func TestBarsService_SetRadiusRefetches(t *testing.T) {
	provider := &fakeProvider{bars: []*entity.Bar{}}
	svc := newTestBarsService(provider)

	svc.SetLocation(context.Background(), testCoordinate)
	snapshot := svc.SetRadius(context.Background(), 3000)

	assert.Equal(t, 3000, snapshot.RadiusMeters)
	assert.Equal(t, 2, provider.searchCalls())
}

func TestBarsService_StaleFetchDiscarded(t *testing.T) {
	gate := make(chan struct{})
	provider := &fakeProvider{
		bars: []*entity.Bar{{ID: "stale", Coordinates: entity.NewLonLat(5.32, 60.39)}},
		gate: gate,
	}
	svc := newTestBarsService(provider)

	first := make(chan usecase.BarsSnapshot, 1)
	go func() {
		first <- svc.SetLocation(context.Background(), testCoordinate)
	}()

	// Wait for the first fetch to be in flight, then supersede it.
	for provider.searchCalls() == 0 {
		time.Sleep(time.Millisecond)
	}
	provider.mu.Lock()
	provider.bars = []*entity.Bar{{ID: "fresh", Coordinates: entity.NewLonLat(5.33, 60.40)}}
	provider.mu.Unlock()

	newer := svc.SetLocation(context.Background(), entity.Coordinates{Latitude: 60.40, Longitude: 5.33})
	require.Len(t, newer.Bars, 1)
	require.Equal(t, "fresh", newer.Bars[0].ID)

	close(gate)
	stale := <-first

	// The superseded completion must not overwrite the newer result.
	require.Len(t, stale.Bars, 1)
	assert.Equal(t, "fresh", stale.Bars[0].ID)

	final := svc.Snapshot()
	require.Len(t, final.Bars, 1)
	assert.Equal(t, "fresh", final.Bars[0].ID)
	assert.Equal(t, usecase.StateSuccess, final.State)
}

func TestBarsService_LogsThroughRequestScopedLogger(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream down")}
	svc := newTestBarsService(provider)

	captured := &capturingHandler{}
	ctx := deliverycontext.WithLogger(context.Background(), slog.New(captured))

	svc.SetLocation(ctx, testCoordinate)

	assert.Contains(t, captured.captured(), "place search failed, serving mock dataset")
}

func TestBarsService_ViewUsesCurrentRecords(t *testing.T) {
	provider := &fakeProvider{bars: []*entity.Bar{
		{ID: "open", Category: entity.CategoryPub, Coordinates: entity.NewLonLat(5.32, 60.39), IsOpenNow: boolPtr(true)},
		{ID: "closed", Category: entity.CategoryPub, Coordinates: entity.NewLonLat(5.32, 60.39), IsOpenNow: boolPtr(false)},
	}}
	svc := newTestBarsService(provider)
	svc.SetLocation(context.Background(), testCoordinate)

	out := svc.View(entity.ViewConfig{OpenOnly: true})
	require.Len(t, out, 1)
	assert.Equal(t, "open", out[0].ID)
}
