package main

import (
	"context"
	"log/slog"
	"os"

	"barhop/config"
	"barhop/internal/delivery"
	"barhop/internal/delivery/http"
	"barhop/internal/delivery/http/middleware"
	"barhop/internal/delivery/http/router/handler"
	"barhop/internal/domain/service"
	"barhop/internal/errors"
	"barhop/internal/infra/geocode/nominatim"
	logs "barhop/internal/infra/log"
	"barhop/internal/infra/persistence/sqlite"
	"barhop/internal/infra/places"
	"barhop/internal/infra/places/foursquare"
	"barhop/internal/infra/places/yelp"
	"barhop/internal/infra/position"
	"barhop/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		sqlite.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.NewFavoritesRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPlaceProvider,
			newGeocoder,
			position.New,
		),
	)
}

// newPlaceProvider selects the configured place data provider. Credential
// validation happens inside the adapter constructors, before any network
// call; a failed construction degrades to an always-erroring provider so the
// bars service can fall back to its built-in dataset.
func newPlaceProvider(cfg *config.Config, logger *slog.Logger) service.PlaceProvider {
	var (
		provider service.PlaceProvider
		err      error
	)

	switch cfg.Places.Provider {
	case "foursquare":
		provider, err = foursquare.New(cfg.Places.Foursquare, logger)
	case "yelp", "":
		provider, err = yelp.New(cfg.Places.Yelp, logger)
	default:
		err = errors.Errorf("unknown places provider: %s", cfg.Places.Provider)
	}
	if err != nil {
		logger.Warn("place provider unavailable, serving built-in dataset",
			slog.String("provider", cfg.Places.Provider),
			slog.Any("error", err),
		)

		return places.Unavailable(err)
	}

	return provider
}

func newGeocoder(cfg *config.Config, logger *slog.Logger) service.Geocoder {
	return nominatim.New(cfg.Geocode, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewFavoritesService,
			impl.NewBarsService,
			impl.NewLocateService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewBarsHandler,
			handler.NewLocateHandler,
			handler.NewFavoritesHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
