package commands

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/guard"
)

var ErrVerifyTravelerCommandIsNotConstructed = errors.New(
	"VerifyTravelerCommand must be created via NewVerifyTravelerCommand constructor",
)

// VerifyTravelerCommand represents a relay operator checking a traveler's
// code before physically handing the envelope over. Verification is a pure
// read: it neither changes status nor consumes the code.
type VerifyTravelerCommand struct { //nolint:recvcheck //using for validation
	shipmentID   kernel.UUID
	travelerCode string
	operator     actor.Actor

	guard guard.ConstructorGuard
}

// NewVerifyTravelerCommand creates a command to verify a traveler code.
func NewVerifyTravelerCommand(shipmentID kernel.UUID, travelerCode string, operator actor.Actor) (VerifyTravelerCommand, error) {
	cmd := VerifyTravelerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		validateOperator(operator),
	); err != nil {
		return VerifyTravelerCommand{}, err
	}
	if travelerCode == "" {
		return VerifyTravelerCommand{}, ErrCodeIsRequired
	}

	cmd.shipmentID = shipmentID
	cmd.travelerCode = travelerCode
	cmd.operator = operator

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyTravelerCommand) Validate() error {
	return c.guard.Validate(ErrVerifyTravelerCommandIsNotConstructed)
}

// ShipmentID returns the shipment being verified.
func (c VerifyTravelerCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// TravelerCode returns the code presented by the traveler.
func (c VerifyTravelerCommand) TravelerCode() string {
	return c.travelerCode
}

// Operator returns the acting relay operator.
func (c VerifyTravelerCommand) Operator() actor.Actor {
	return c.operator
}

func validateOperator(operator actor.Actor) error {
	if err := operator.Validate(); err != nil {
		return err
	}
	if operator.Role() != actor.RoleRelayOperator && operator.Role() != actor.RoleAdmin {
		return ErrNotAuthorized
	}
	return nil
}
