package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"barhop/internal/delivery/http/response"
	"barhop/internal/domain/entity"
	domainerrors "barhop/internal/domain/errors"
	"barhop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LocateHandlerParams holds dependencies for LocateHandler, injected by Fx.
type LocateHandlerParams struct {
	fx.In

	LocateUC usecase.LocateUsecase
	Logger   *slog.Logger
}

// LocateHandler holds dependencies for location-related handlers
type LocateHandler struct {
	locateUC usecase.LocateUsecase
	logger   *slog.Logger
}

// NewLocateHandler is the constructor for LocateHandler
func NewLocateHandler(params LocateHandlerParams) *LocateHandler {
	return &LocateHandler{
		locateUC: params.LocateUC,
		logger:   params.Logger,
	}
}

// GetLocation returns the current resolution, if any.
func (h *LocateHandler) GetLocation(c echo.Context) error {
	current := h.locateUC.Current()
	if current == nil {
		return response.NotFound(c, "LOCATION_NOT_RESOLVED", "No reference coordinate has been resolved yet")
	}

	return response.Success(c, http.StatusOK, current, "Location retrieved successfully")
}

// ResolveLocation runs device position resolution with fallback.
func (h *LocateHandler) ResolveLocation(c echo.Context) error {
	resolution := h.locateUC.Resolve(c.Request().Context())

	return response.Success(c, http.StatusOK, resolution, "Location resolved")
}

// OverrideLocationRequest represents the request body for an explicit
// coordinate override (map-pin drag, geocode candidate selection).
type OverrideLocationRequest struct {
	// Zero is a legal coordinate, so no required tag here.
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// OverrideLocation replaces the reference coordinate explicitly.
func (h *LocateHandler) OverrideLocation(c echo.Context) error {
	var req OverrideLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid coordinate input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	resolution := h.locateUC.Override(c.Request().Context(), entity.Coordinates{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})

	return response.Success(c, http.StatusOK, resolution, "Location overridden")
}

// Geocode resolves a free-text place name to candidate coordinates.
func (h *LocateHandler) Geocode(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.BadRequest(c, "INVALID_QUERY", "Query parameter q is required")
	}

	candidates, err := h.locateUC.SearchPlace(c.Request().Context(), query)
	if err != nil {
		h.logger.Warn("geocode search failed",
			slog.String("query", query),
			slog.Any("error", err),
		)

		return domainerrors.ErrGeocodeFailed.WithDetails(err.Error())
	}

	if len(candidates) == 0 {
		return domainerrors.ErrGeocodeNoResults
	}

	return response.Success(c, http.StatusOK, candidates, "Geocode candidates retrieved")
}

// ReverseGeocode names the locality at a coordinate.
func (h *LocateHandler) ReverseGeocode(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if latErr != nil || lonErr != nil {
		return response.BadRequest(c, "INVALID_QUERY", "Query parameters lat and lon are required numbers")
	}

	name, err := h.locateUC.ReverseLocality(c.Request().Context(), entity.Coordinates{
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return domainerrors.ErrGeocodeFailed.WithDetails(err.Error())
	}

	return response.Success(c, http.StatusOK, map[string]string{"locality": name}, "Locality retrieved")
}
