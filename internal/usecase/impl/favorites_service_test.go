package impl

import (
	"context"
	"testing"

	"barhop/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFavoritesRepo keeps the last saved id list and can fail on demand.
type fakeFavoritesRepo struct {
	stored  []string
	loadErr error
	saveErr error
	saves   int
}

func (r *fakeFavoritesRepo) Load(context.Context) ([]string, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}

	return append([]string(nil), r.stored...), nil
}

func (r *fakeFavoritesRepo) Save(_ context.Context, ids []string) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.stored = append([]string(nil), ids...)

	return nil
}

func TestFavoritesService_LoadsPersistedSet(t *testing.T) {
	repo := &fakeFavoritesRepo{stored: []string{"a", "b"}}
	svc, err := NewFavoritesService(repo, newDiscardLogger())
	require.NoError(t, err)

	assert.True(t, svc.Has("a"))
	assert.False(t, svc.Has("c"))
	assert.Equal(t, []string{"a", "b"}, svc.All())
}

func TestFavoritesService_LoadFailure(t *testing.T) {
	repo := &fakeFavoritesRepo{loadErr: errors.New("db locked")}

	_, err := NewFavoritesService(repo, newDiscardLogger())
	assert.Error(t, err)
}

func TestFavoritesService_TogglePersistsFullSet(t *testing.T) {
	repo := &fakeFavoritesRepo{}
	svc, err := NewFavoritesService(repo, newDiscardLogger())
	require.NoError(t, err)

	favorite, err := svc.Toggle(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, favorite)
	assert.Equal(t, []string{"a"}, repo.stored)

	favorite, err = svc.Toggle(context.Background(), "b")
	require.NoError(t, err)
	assert.True(t, favorite)
	assert.Equal(t, []string{"a", "b"}, repo.stored, "insertion order is preserved")

	// Toggling again removes the id and persists the shrunken set.
	favorite, err = svc.Toggle(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, favorite)
	assert.Equal(t, []string{"b"}, repo.stored)
	assert.Equal(t, 3, repo.saves)
}

func TestFavoritesService_DoubleToggleRestoresMembership(t *testing.T) {
	repo := &fakeFavoritesRepo{stored: []string{"x"}}
	svc, err := NewFavoritesService(repo, newDiscardLogger())
	require.NoError(t, err)

	_, err = svc.Toggle(context.Background(), "y")
	require.NoError(t, err)
	_, err = svc.Toggle(context.Background(), "y")
	require.NoError(t, err)

	assert.Equal(t, []string{"x"}, svc.All())
	assert.Equal(t, []string{"x"}, repo.stored)
}

func TestFavoritesService_RollbackOnPersistFailure(t *testing.T) {
	repo := &fakeFavoritesRepo{stored: []string{"a"}}
	svc, err := NewFavoritesService(repo, newDiscardLogger())
	require.NoError(t, err)

	repo.saveErr = errors.New("disk full")

	favorite, err := svc.Toggle(context.Background(), "b")
	require.Error(t, err)
	assert.False(t, favorite, "membership is reported as it stood before the failed toggle")
	assert.False(t, svc.Has("b"), "in-memory set rolls back so memory and storage agree")
	assert.Equal(t, []string{"a"}, svc.All())

	// Removal rolls back too.
	favorite, err = svc.Toggle(context.Background(), "a")
	require.Error(t, err)
	assert.True(t, favorite)
	assert.True(t, svc.Has("a"))
	assert.Equal(t, []string{"a"}, svc.All())
}
