package kernel_test

import (
	"testing"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(48.8566, 2.3522)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 48.8566, p.Latitude(), 1e-9)
		assert.InDelta(t, 2.3522, p.Longitude(), 1e-9)
	})

	t.Run("latitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("longitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -181)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestGeoPoint_DistanceKmTo(t *testing.T) {
	paris, err := kernel.NewGeoPoint(48.8566, 2.3522)
	require.NoError(t, err)
	casablanca, err := kernel.NewGeoPoint(33.5731, -7.5898)
	require.NoError(t, err)

	// Paris to Casablanca is roughly 1900 km.
	distance := paris.DistanceKmTo(casablanca)
	assert.InDelta(t, 1900, distance, 60)

	assert.InDelta(t, 0, paris.DistanceKmTo(paris), 1e-9)
}

func TestGeoPoint_Validate_ZeroValue(t *testing.T) {
	var p kernel.GeoPoint

	require.Error(t, p.Validate())
}
