package relaypoint_test

import (
	"testing"
	"time"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/relaypoint"
	"docurgent/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRelayPoint(t *testing.T) *relaypoint.RelayPoint {
	t.Helper()

	rp, err := relaypoint.NewRelayPoint(relaypoint.NewRelayPointParams{
		ID:           kernel.NewUUID(),
		UserID:       kernel.NewUUID(),
		LocationName: "Tabac de la Gare",
		Address:      "12 Place de la Gare",
		City:         "Paris",
		Country:      "France",
		PostalCode:   "75010",
	})
	require.NoError(t, err)

	return rp
}

func TestNewRelayPoint(t *testing.T) {
	rp := newTestRelayPoint(t)

	require.NoError(t, rp.Validate())
	assert.True(t, rp.Active())
	assert.False(t, rp.Verified(), "new relay points start unverified")
	assert.False(t, rp.IsEligible())
}

func TestNewRelayPoint_Validation(t *testing.T) {
	_, err := relaypoint.NewRelayPoint(relaypoint.NewRelayPointParams{
		ID:      kernel.NewUUID(),
		UserID:  kernel.NewUUID(),
		Address: "12 Place de la Gare",
		City:    "Paris",
		Country: "France",
	})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRelayPoint_Eligibility(t *testing.T) {
	rp := newTestRelayPoint(t)
	now := time.Now().UTC()

	rp.Verify(now)
	assert.True(t, rp.IsEligible())

	rp.Deactivate(now)
	assert.False(t, rp.IsEligible())
}

func TestRestoreRelayPoint(t *testing.T) {
	geo, err := kernel.NewGeoPoint(48.8566, 2.3522)
	require.NoError(t, err)
	created := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)

	rp, err := relaypoint.RestoreRelayPoint(relaypoint.RestoreRelayPointParams{
		NewRelayPointParams: relaypoint.NewRelayPointParams{
			ID:           kernel.NewUUID(),
			UserID:       kernel.NewUUID(),
			LocationName: "Tabac de la Gare",
			Address:      "12 Place de la Gare",
			City:         "Paris",
			Country:      "France",
			Geo:          &geo,
		},
		Verified:  true,
		Active:    true,
		CreatedAt: created,
		UpdatedAt: created,
	})

	require.NoError(t, err)
	assert.True(t, rp.IsEligible())
	require.NotNil(t, rp.Geo())
	assert.Equal(t, created, rp.CreatedAt())
}
