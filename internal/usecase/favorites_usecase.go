package usecase

import "context"

// FavoritesUsecase maintains the persisted set of favorite bar ids. The set
// is loaded once at startup and written back in full on every mutation; it
// is independent of network state.
type FavoritesUsecase interface {
	// Toggle flips membership of id and persists the updated set.
	// Returns whether id is a favorite after the call.
	Toggle(ctx context.Context, id string) (bool, error)

	// Has reports membership without touching storage.
	Has(id string) bool

	// All returns the favorite ids in insertion order.
	All() []string
}
