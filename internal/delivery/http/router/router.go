// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"barhop/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	BarsHandler      *handler.BarsHandler
	LocateHandler    *handler.LocateHandler
	FavoritesHandler *handler.FavoritesHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	barsHandler      *handler.BarsHandler
	locateHandler    *handler.LocateHandler
	favoritesHandler *handler.FavoritesHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		barsHandler:      params.BarsHandler,
		locateHandler:    params.LocateHandler,
		favoritesHandler: params.FavoritesHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Reference coordinate resolution
	locationGroup := e.Group("/location")
	{
		locationGroup.GET("", r.locateHandler.GetLocation)
		locationGroup.POST("/resolve", r.locateHandler.ResolveLocation)
		locationGroup.PUT("", r.locateHandler.OverrideLocation)
	}

	// Free-text and reverse geocoding
	geocodeGroup := e.Group("/geocode")
	{
		geocodeGroup.GET("", r.locateHandler.Geocode)
		geocodeGroup.GET("/reverse", r.locateHandler.ReverseGeocode)
	}

	// Bar search and detail
	barsGroup := e.Group("/bars")
	{
		barsGroup.GET("", r.barsHandler.GetBars)
		barsGroup.POST("/refresh", r.barsHandler.RefreshBars)
		barsGroup.PUT("/radius", r.barsHandler.SetRadius)
		barsGroup.GET("/:id", r.barsHandler.GetBar)
	}

	// Favorites
	favoritesGroup := e.Group("/favorites")
	{
		favoritesGroup.GET("", r.favoritesHandler.ListFavorites)
		favoritesGroup.POST("/:id/toggle", r.favoritesHandler.ToggleFavorite)
	}
}
