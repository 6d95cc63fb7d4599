package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"barhop/internal/delivery/http/response"
	"barhop/internal/domain/entity"
	domainerrors "barhop/internal/domain/errors"
	"barhop/internal/domain/service"
	"barhop/internal/errors"
	"barhop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BarsHandlerParams holds dependencies for BarsHandler, injected by Fx.
type BarsHandlerParams struct {
	fx.In

	BarsUC usecase.BarsUsecase
	Logger *slog.Logger
}

// BarsHandler holds dependencies for bar-related handlers
type BarsHandler struct {
	barsUC usecase.BarsUsecase
	logger *slog.Logger
}

// NewBarsHandler is the constructor for BarsHandler
func NewBarsHandler(params BarsHandlerParams) *BarsHandler {
	return &BarsHandler{
		barsUC: params.BarsUC,
		logger: params.Logger,
	}
}

// barsData is the GET /bars payload: the controller snapshot with the
// filtered/sorted view applied.
type barsData struct {
	State         usecase.FetchState  `json:"state"`
	Coordinate    *entity.Coordinates `json:"coordinate,omitempty"`
	RadiusMeters  int                 `json:"radiusMeters"`
	UsingMockData bool                `json:"usingMockData"`
	Error         string              `json:"error,omitempty"`
	Total         int                 `json:"total"`
	Bars          []*entity.Bar       `json:"bars"`
}

// GetBars returns the current record set filtered and sorted by query params.
func (h *BarsHandler) GetBars(c echo.Context) error {
	cfg, err := viewConfigFromQuery(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY", err.Error())
	}

	snapshot := h.barsUC.Snapshot()
	bars := h.barsUC.View(cfg)

	return response.Success(c, http.StatusOK, barsData{
		State:         snapshot.State,
		Coordinate:    snapshot.Coordinate,
		RadiusMeters:  snapshot.RadiusMeters,
		UsingMockData: snapshot.UsingMockData,
		Error:         snapshot.ErrorMessage,
		Total:         len(bars),
		Bars:          bars,
	}, "Bars retrieved successfully")
}

// RefreshBars retries the last search explicitly.
func (h *BarsHandler) RefreshBars(c echo.Context) error {
	snapshot := h.barsUC.Refetch(c.Request().Context())

	return response.Success(c, http.StatusOK, snapshot, "Refetch completed")
}

// SetRadiusRequest represents the request body for changing the search radius
type SetRadiusRequest struct {
	RadiusMeters int `json:"radiusMeters" validate:"required,min=1"`
}

// SetRadius changes the search radius and refetches.
func (h *BarsHandler) SetRadius(c echo.Context) error {
	var req SetRadiusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid radius input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	snapshot := h.barsUC.SetRadius(c.Request().Context(), req.RadiusMeters)

	return response.Success(c, http.StatusOK, snapshot, "Radius updated")
}

// GetBar resolves a single bar by id straight from the provider.
func (h *BarsHandler) GetBar(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.BadRequest(c, "INVALID_ID", "Missing bar id")
	}

	bar, err := h.barsUC.FetchOne(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBarNotFound) {
			return domainerrors.ErrBarNotFound
		}

		h.logger.Warn("bar detail fetch failed",
			slog.String("id", id),
			slog.Any("error", err),
		)

		return domainerrors.ErrUpstreamFailed.WithDetails(err.Error())
	}

	return response.Success(c, http.StatusOK, bar, "Bar retrieved successfully")
}

func viewConfigFromQuery(c echo.Context) (entity.ViewConfig, error) {
	var cfg entity.ViewConfig

	if raw := c.QueryParam("category"); raw != "" {
		category := entity.Category(raw)
		if !category.Valid() {
			return cfg, errors.Errorf("unknown category: %s", raw)
		}
		cfg.Category = category
	}

	if raw := c.QueryParam("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil || minRating < 0 || minRating > 5 {
			return cfg, errors.Errorf("invalid minRating: %s", raw)
		}
		cfg.MinRating = minRating
	}

	cfg.OpenOnly = c.QueryParam("openOnly") == "true"
	cfg.FavoritesOnly = c.QueryParam("favoritesOnly") == "true"

	if raw := c.QueryParam("sort"); raw != "" {
		switch mode := entity.SortMode(raw); mode {
		case entity.SortDefault, entity.SortRating, entity.SortDistance,
			entity.SortReviews, entity.SortPriceLow, entity.SortPriceHigh:
			cfg.Sort = mode
		default:
			return cfg, errors.Errorf("unknown sort mode: %s", raw)
		}
	}

	return cfg, nil
}
