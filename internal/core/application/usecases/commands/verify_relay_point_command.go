package commands

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/guard"
)

var ErrVerifyRelayPointCommandIsNotConstructed = errors.New(
	"VerifyRelayPointCommand must be created via NewVerifyRelayPointCommand constructor",
)

// VerifyRelayPointCommand represents an admin verifying a registered relay
// point, making it eligible for shipment auto-assignment.
type VerifyRelayPointCommand struct { //nolint:recvcheck //using for validation
	relayPointID kernel.UUID
	admin        actor.Actor

	guard guard.ConstructorGuard
}

// NewVerifyRelayPointCommand creates a command to verify a relay point.
// Admin-only.
func NewVerifyRelayPointCommand(relayPointID kernel.UUID, admin actor.Actor) (VerifyRelayPointCommand, error) {
	cmd := VerifyRelayPointCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		relayPointID.Validate(),
		admin.Validate(),
	); err != nil {
		return VerifyRelayPointCommand{}, err
	}
	if admin.Role() != actor.RoleAdmin {
		return VerifyRelayPointCommand{}, ErrNotAuthorized
	}

	cmd.relayPointID = relayPointID
	cmd.admin = admin

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyRelayPointCommand) Validate() error {
	return c.guard.Validate(ErrVerifyRelayPointCommandIsNotConstructed)
}

// RelayPointID returns the relay point being verified.
func (c VerifyRelayPointCommand) RelayPointID() kernel.UUID {
	return c.relayPointID
}

// Admin returns the acting admin.
func (c VerifyRelayPointCommand) Admin() actor.Actor {
	return c.admin
}
