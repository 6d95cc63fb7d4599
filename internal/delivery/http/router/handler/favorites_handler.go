package handler

import (
	"log/slog"
	"net/http"

	"barhop/internal/delivery/http/response"
	domainerrors "barhop/internal/domain/errors"
	"barhop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// FavoritesHandlerParams holds dependencies for FavoritesHandler, injected by Fx.
type FavoritesHandlerParams struct {
	fx.In

	FavoritesUC usecase.FavoritesUsecase
	Logger      *slog.Logger
}

// FavoritesHandler holds dependencies for favorites-related handlers
type FavoritesHandler struct {
	favoritesUC usecase.FavoritesUsecase
	logger      *slog.Logger
}

// NewFavoritesHandler is the constructor for FavoritesHandler
func NewFavoritesHandler(params FavoritesHandlerParams) *FavoritesHandler {
	return &FavoritesHandler{
		favoritesUC: params.FavoritesUC,
		logger:      params.Logger,
	}
}

// ListFavorites returns the favorite ids in insertion order.
func (h *FavoritesHandler) ListFavorites(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.favoritesUC.All(), "Favorites retrieved successfully")
}

// ToggleFavorite flips membership of one id and persists the set.
func (h *FavoritesHandler) ToggleFavorite(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.BadRequest(c, "INVALID_ID", "Missing bar id")
	}

	isFavorite, err := h.favoritesUC.Toggle(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("favorites persist failed",
			slog.String("id", id),
			slog.Any("error", err),
		)

		return domainerrors.ErrFavoritesPersist.WithDetails(err.Error())
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"id":       id,
		"favorite": isFavorite,
	}, "Favorite toggled")
}
