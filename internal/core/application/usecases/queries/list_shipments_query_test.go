package queries_test

import (
	"testing"

	"docurgent/internal/core/application/usecases/queries"
	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listRequester(t *testing.T) actor.Actor {
	t.Helper()

	a, err := actor.NewActor(kernel.NewUUID(), actor.RoleSender)
	require.NoError(t, err)
	return a
}

func TestNewListShipmentsQuery_Defaults(t *testing.T) {
	q, err := queries.NewListShipmentsQuery(listRequester(t), queries.ListShipmentsParams{})

	require.NoError(t, err)
	assert.Equal(t, 1, q.Page())
	assert.Equal(t, 20, q.PageSize())
}

func TestNewListShipmentsQuery_RejectsNegativePage(t *testing.T) {
	_, err := queries.NewListShipmentsQuery(listRequester(t), queries.ListShipmentsParams{Page: -1})

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.NotContains(t, err.Error(), "out of range", "page has no upper bound to report")
}

func TestNewListShipmentsQuery_LargePageIsAllowed(t *testing.T) {
	q, err := queries.NewListShipmentsQuery(listRequester(t), queries.ListShipmentsParams{Page: 10_000})

	require.NoError(t, err)
	assert.Equal(t, 10_000, q.Page())
}

func TestNewListShipmentsQuery_RejectsOversizedPageSize(t *testing.T) {
	_, err := queries.NewListShipmentsQuery(listRequester(t), queries.ListShipmentsParams{PageSize: 101})

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
