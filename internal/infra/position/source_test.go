package position

import (
	"context"
	"testing"

	"barhop/config"
	"barhop/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NilWithoutFixedPosition(t *testing.T) {
	assert.Nil(t, New(&config.Config{}))
	assert.Nil(t, New(&config.Config{Locate: &config.LocateConfig{}}))
}

func TestFixedSource_Current(t *testing.T) {
	source := New(&config.Config{Locate: &config.LocateConfig{
		Fixed: &config.FixedPositionConfig{Latitude: 60.3913, Longitude: 5.3221},
	}})
	require.NotNil(t, source)

	coord, err := source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Coordinates{Latitude: 60.3913, Longitude: 5.3221}, coord)
}

func TestFixedSource_CancelledContext(t *testing.T) {
	source := New(&config.Config{Locate: &config.LocateConfig{
		Fixed: &config.FixedPositionConfig{Latitude: 60.3913, Longitude: 5.3221},
	}})
	require.NotNil(t, source)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.Current(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
