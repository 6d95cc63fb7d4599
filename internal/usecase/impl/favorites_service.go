package impl

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"barhop/internal/domain/repository"
	"barhop/internal/errors"
	"barhop/internal/usecase"
)

type favoritesService struct {
	repo   repository.FavoritesRepository
	logger *slog.Logger

	mu    sync.Mutex
	ids   []string
	index map[string]struct{}
}

// NewFavoritesService loads the persisted favorites once and keeps them in
// memory; every mutation writes the full set back synchronously.
func NewFavoritesService(repo repository.FavoritesRepository, logger *slog.Logger) (usecase.FavoritesUsecase, error) {
	ids, err := repo.Load(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "load favorites")
	}

	index := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		index[id] = struct{}{}
	}

	return &favoritesService{
		repo:   repo,
		logger: logger,
		ids:    ids,
		index:  index,
	}, nil
}

// Toggle flips membership of id and persists the updated set. On a persist
// failure the in-memory set is rolled back so memory and storage agree.
func (s *favoritesService) Toggle(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevIDs := slices.Clone(s.ids)
	_, wasFavorite := s.index[id]

	if wasFavorite {
		s.ids = slices.DeleteFunc(s.ids, func(existing string) bool { return existing == id })
		delete(s.index, id)
	} else {
		s.ids = append(s.ids, id)
		s.index[id] = struct{}{}
	}

	if err := s.repo.Save(ctx, s.ids); err != nil {
		s.ids = prevIDs
		if wasFavorite {
			s.index[id] = struct{}{}
		} else {
			delete(s.index, id)
		}

		return wasFavorite, errors.Wrap(err, "persist favorites")
	}

	return !wasFavorite, nil
}

// Has reports membership without touching storage.
func (s *favoritesService) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.index[id]

	return ok
}

// All returns the favorite ids in insertion order.
func (s *favoritesService) All() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.ids)
}
