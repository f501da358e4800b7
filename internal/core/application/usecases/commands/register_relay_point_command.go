package commands

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/guard"
)

var ErrRegisterRelayPointCommandIsNotConstructed = errors.New(
	"RegisterRelayPointCommand must be created via NewRegisterRelayPointCommand constructor",
)

// RegisterRelayPointCommand represents a relay operator registering their
// location in the registry. New relay points start unverified and do not
// receive shipments until an admin verifies them.
type RegisterRelayPointCommand struct { //nolint:recvcheck //using for validation
	relayPointID kernel.UUID
	operator     actor.Actor
	params       RegisterRelayPointParams

	guard guard.ConstructorGuard
}

// RegisterRelayPointParams carries the location details of a relay point.
type RegisterRelayPointParams struct {
	LocationName string
	Address      string
	City         string
	Country      string
	PostalCode   string
	Geo          *kernel.GeoPoint
	Phone        string
	Email        string
}

// NewRegisterRelayPointCommand creates a command to register a relay point.
func NewRegisterRelayPointCommand(relayPointID kernel.UUID, operator actor.Actor, params RegisterRelayPointParams) (RegisterRelayPointCommand, error) {
	cmd := RegisterRelayPointCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		relayPointID.Validate(),
		validateOperator(operator),
	); err != nil {
		return RegisterRelayPointCommand{}, err
	}

	cmd.relayPointID = relayPointID
	cmd.operator = operator
	cmd.params = params

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterRelayPointCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRelayPointCommandIsNotConstructed)
}

// RelayPointID returns the identifier for the new relay point.
func (c RegisterRelayPointCommand) RelayPointID() kernel.UUID {
	return c.relayPointID
}

// Operator returns the registering operator.
func (c RegisterRelayPointCommand) Operator() actor.Actor {
	return c.operator
}

// Params returns the location details.
func (c RegisterRelayPointCommand) Params() RegisterRelayPointParams {
	return c.params
}
