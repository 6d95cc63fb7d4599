package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"barhop/config"
	deliverycontext "barhop/internal/delivery/context"
	"barhop/internal/domain/entity"
	"barhop/internal/domain/service"
	"barhop/internal/errors"
	"barhop/internal/usecase"
)

const defaultPositionTimeout = 10 * time.Second

// fallbackCoordinate is the fixed city-center reference point used whenever
// device position resolution fails: Bergen, Norway.
var fallbackCoordinate = entity.Coordinates{Latitude: 60.3913, Longitude: 5.3221}

// Fallback reasons, one per failure kind.
const (
	reasonDenied      = "Location access was denied, showing bars around the city center instead"
	reasonUnavailable = "Current position is unavailable, showing bars around the city center instead"
	reasonTimeout     = "The position request timed out, showing bars around the city center instead"
)

type locateService struct {
	source   service.PositionSource
	geocoder service.Geocoder
	bars     usecase.BarsUsecase
	logger   *slog.Logger
	timeout  time.Duration

	mu      sync.Mutex
	current *usecase.Resolution
}

// NewLocateService creates the coordinate provider. The position source may
// be nil when the deployment has no position support; resolution then always
// falls back.
func NewLocateService(
	source service.PositionSource,
	geocoder service.Geocoder,
	bars usecase.BarsUsecase,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.LocateUsecase {
	timeout := defaultPositionTimeout
	if cfg.Locate != nil && cfg.Locate.Timeout > 0 {
		timeout = cfg.Locate.Timeout
	}

	return &locateService{
		source:   source,
		geocoder: geocoder,
		bars:     bars,
		logger:   logger,
		timeout:  timeout,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (s *locateService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// Resolve asks the position source with a bounded wait and falls back to the
// fixed city center on any failure. The resolution, fallback or not, is
// pushed into the bars controller so fetching proceeds either way.
func (s *locateService) Resolve(ctx context.Context) usecase.Resolution {
	resolution := s.resolvePosition(ctx)
	s.store(resolution)
	s.bars.SetLocation(ctx, resolution.Coordinate)

	return resolution
}

func (s *locateService) resolvePosition(ctx context.Context) usecase.Resolution {
	if s.source == nil {
		return usecase.Resolution{
			Coordinate:     fallbackCoordinate,
			Source:         usecase.ResolutionFallback,
			FallbackReason: reasonUnavailable,
		}
	}

	posCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	coord, err := s.source.Current(posCtx)
	if err == nil {
		return usecase.Resolution{Coordinate: coord, Source: usecase.ResolutionDevice}
	}

	reason := reasonUnavailable
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		reason = reasonDenied
	case errors.Is(err, context.DeadlineExceeded):
		reason = reasonTimeout
	}

	s.log(ctx).Info("position resolution failed, using fallback coordinate",
		slog.String("reason", reason),
		slog.Any("error", err),
	)

	return usecase.Resolution{
		Coordinate:     fallbackCoordinate,
		Source:         usecase.ResolutionFallback,
		FallbackReason: reason,
	}
}

// Override replaces the reference coordinate explicitly and propagates it
// exactly like a fresh resolution.
func (s *locateService) Override(ctx context.Context, coord entity.Coordinates) usecase.Resolution {
	resolution := usecase.Resolution{Coordinate: coord, Source: usecase.ResolutionManual}
	s.store(resolution)
	s.bars.SetLocation(ctx, coord)

	return resolution
}

// Current returns the last resolution, or nil before the first one.
func (s *locateService) Current() *usecase.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	resolution := *s.current

	return &resolution
}

// SearchPlace resolves a free-text place name to candidate coordinates.
// Empty results are an error the user retries; no fallback coordinate here.
func (s *locateService) SearchPlace(ctx context.Context, query string) ([]service.GeocodeCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("empty geocode query")
	}

	candidates, err := s.geocoder.SearchPlace(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "geocode search failed")
	}

	return candidates, nil
}

// ReverseLocality names the locality at a coordinate.
func (s *locateService) ReverseLocality(ctx context.Context, coord entity.Coordinates) (string, error) {
	name, err := s.geocoder.ReverseLocality(ctx, coord)
	if err != nil {
		return "", errors.Wrap(err, "reverse geocode failed")
	}

	return name, nil
}

func (s *locateService) store(resolution usecase.Resolution) {
	s.mu.Lock()
	s.current = &resolution
	s.mu.Unlock()
}
