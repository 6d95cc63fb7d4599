// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
)

// FavoritesRepository persists the set of favorite bar ids as an ordered
// list under a single fixed key in durable local storage. There is no
// eviction, no capacity limit and no migration versioning.
type FavoritesRepository interface {
	// Load returns the persisted id list. An absent key yields an empty
	// list, not an error.
	Load(ctx context.Context) ([]string, error)

	// Save replaces the persisted id list with ids, synchronously.
	Save(ctx context.Context, ids []string) error
}
