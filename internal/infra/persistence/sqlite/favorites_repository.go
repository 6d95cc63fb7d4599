package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"barhop/internal/domain/repository"
	"barhop/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// favoritesKey is the fixed storage key under which the favorites set lives,
// matching the origin-scoped key the web client used.
const favoritesKey = "nearby-bars:favorites"

// favoritesRepository implements repository.FavoritesRepository over the
// key-value table, serializing the set as an ordered JSON list of ids.
type favoritesRepository struct {
	db *gorm.DB
}

// NewFavoritesRepository is the constructor for favoritesRepository.
func NewFavoritesRepository(db *gorm.DB) repository.FavoritesRepository {
	return &favoritesRepository{db: db}
}

// Load returns the persisted id list; an absent key yields an empty list.
func (repo *favoritesRepository) Load(ctx context.Context) ([]string, error) {
	var row kvModel
	err := repo.db.WithContext(ctx).
		Where("key = ?", favoritesKey).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}

		return nil, errors.Wrap(err, "failed to load favorites")
	}

	var ids []string
	if err := json.Unmarshal([]byte(row.Value), &ids); err != nil {
		return nil, errors.Wrap(err, "failed to decode favorites list")
	}

	return ids, nil
}

// Save replaces the persisted id list, synchronously.
func (repo *favoritesRepository) Save(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}

	value, err := json.Marshal(ids)
	if err != nil {
		return errors.Wrap(err, "failed to encode favorites list")
	}

	row := kvModel{Key: favoritesKey, Value: string(value), UpdatedAt: time.Now()}
	err = repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return errors.Wrap(err, "failed to save favorites")
	}

	return nil
}
