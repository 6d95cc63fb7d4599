package impl

import (
	"context"
	"log/slog"
	"sync"

	"barhop/config"
	deliverycontext "barhop/internal/delivery/context"
	"barhop/internal/domain/entity"
	"barhop/internal/domain/service"
	"barhop/internal/infra/places/mockdata"
	"barhop/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

type barsService struct {
	provider  service.PlaceProvider
	favorites usecase.FavoritesUsecase
	logger    *slog.Logger

	mu         sync.Mutex
	state      usecase.FetchState
	bars       []*entity.Bar
	coord      *entity.Coordinates
	radius     int
	limit      int
	usingMock  bool
	errMessage string
	// generation tags each started fetch; completions of superseded fetches
	// are discarded so the displayed state always reflects the newest query.
	generation uint64
}

// NewBarsService creates the bars controller. It starts idle and does not
// fetch until a coordinate arrives.
func NewBarsService(
	provider service.PlaceProvider,
	favorites usecase.FavoritesUsecase,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.BarsUsecase {
	places := cfg.Places
	if places == nil {
		places = &config.PlacesConfig{RadiusMeters: 1500, Limit: 50}
	}

	return &barsService{
		provider:  provider,
		favorites: favorites,
		logger:    logger,
		state:     usecase.StateIdle,
		radius:    places.RadiusMeters,
		limit:     places.Limit,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (s *barsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// SetLocation records a new reference coordinate and refetches.
func (s *barsService) SetLocation(ctx context.Context, coord entity.Coordinates) usecase.BarsSnapshot {
	s.mu.Lock()
	s.coord = &coord
	radius := s.radius
	s.mu.Unlock()

	return s.fetch(ctx, coord, radius)
}

// SetRadius records a new search radius and refetches with the last-known
// coordinate. Without one the controller stays idle.
func (s *barsService) SetRadius(ctx context.Context, radiusMeters int) usecase.BarsSnapshot {
	s.mu.Lock()
	s.radius = radiusMeters
	coord := s.coord
	s.mu.Unlock()

	if coord == nil {
		return s.Snapshot()
	}

	return s.fetch(ctx, *coord, radiusMeters)
}

// Refetch retries with the last-known coordinate and radius.
func (s *barsService) Refetch(ctx context.Context) usecase.BarsSnapshot {
	s.mu.Lock()
	coord := s.coord
	radius := s.radius
	s.mu.Unlock()

	if coord == nil {
		return s.Snapshot()
	}

	return s.fetch(ctx, *coord, radius)
}

// Snapshot returns the current state without side effects.
func (s *barsService) Snapshot() usecase.BarsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// View applies the filter/sort configuration to the current record set.
func (s *barsService) View(cfg entity.ViewConfig) []*entity.Bar {
	s.mu.Lock()
	bars := s.bars
	s.mu.Unlock()

	favorites := make(map[string]struct{})
	if s.favorites != nil {
		for _, id := range s.favorites.All() {
			favorites[id] = struct{}{}
		}
	}

	return ApplyView(bars, cfg, favorites)
}

// FetchOne resolves a single bar by id straight from the provider.
func (s *barsService) FetchOne(ctx context.Context, id string) (*entity.Bar, error) {
	return s.provider.FetchOne(ctx, id)
}

func (s *barsService) fetch(ctx context.Context, coord entity.Coordinates, radius int) usecase.BarsSnapshot {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state = usecase.StateLoading
	s.mu.Unlock()

	bars, err := s.provider.Search(ctx, coord, radius, s.limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// A newer fetch started while this one was in flight.
		s.log(ctx).Debug("discarding stale fetch result",
			slog.Uint64("generation", gen),
			slog.Uint64("latest", s.generation),
		)

		return s.snapshotLocked()
	}

	if err != nil {
		s.log(ctx).Warn("place search failed, serving mock dataset",
			slog.Float64("latitude", coord.Latitude),
			slog.Float64("longitude", coord.Longitude),
			slog.Any("error", err),
		)
		s.state = usecase.StateError
		s.errMessage = err.Error()
		s.bars = mockdata.Bars()
		s.usingMock = true

		return s.snapshotLocked()
	}

	backfillDistances(bars, coord)

	s.state = usecase.StateSuccess
	s.errMessage = ""
	s.usingMock = false
	s.bars = bars

	return s.snapshotLocked()
}

func (s *barsService) snapshotLocked() usecase.BarsSnapshot {
	return usecase.BarsSnapshot{
		State:         s.state,
		Bars:          s.bars,
		Coordinate:    s.coord,
		RadiusMeters:  s.radius,
		UsingMockData: s.usingMock,
		ErrorMessage:  s.errMessage,
	}
}

// backfillDistances fills in haversine distance from the query coordinate for
// records the provider returned without one.
func backfillDistances(bars []*entity.Bar, coord entity.Coordinates) {
	center := orb.Point{coord.Longitude, coord.Latitude}
	for _, bar := range bars {
		if bar.Distance != nil {
			continue
		}
		d := geo.Distance(center, orb.Point{bar.Coordinates.Longitude(), bar.Coordinates.Latitude()})
		bar.Distance = &d
	}
}
