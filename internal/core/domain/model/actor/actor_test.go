package actor_test

import (
	"testing"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_String_RoundTrip(t *testing.T) {
	roles := []actor.Role{
		actor.RoleSender,
		actor.RoleTraveler,
		actor.RoleRelayOperator,
		actor.RoleRecipient,
		actor.RoleAdmin,
	}

	for _, role := range roles {
		parsed, err := actor.RoleFromString(role.String())

		require.NoError(t, err, role.String())
		assert.Equal(t, role, parsed)
	}
}

func TestRoleFromString_Invalid(t *testing.T) {
	_, err := actor.RoleFromString("superuser")

	require.Error(t, err)
}

func TestNewActor(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a, err := actor.NewActor(kernel.NewUUID(), actor.RoleTraveler)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, actor.RoleTraveler, a.Role())
	})

	t.Run("invalid_role", func(t *testing.T) {
		_, err := actor.NewActor(kernel.NewUUID(), actor.RoleUnknown)

		require.Error(t, err)
	})

	t.Run("zero_value_invalid", func(t *testing.T) {
		var a actor.Actor

		require.ErrorIs(t, a.Validate(), actor.ErrActorIsNotConstructed)
	})
}
