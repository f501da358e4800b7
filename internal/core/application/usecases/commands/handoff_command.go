package commands

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/guard"
)

var ErrHandoffCommandIsNotConstructed = errors.New(
	"HandoffCommand must be created via NewHandoffCommand constructor",
)

// HandoffCommand represents a relay operator releasing the envelope to the
// assigned traveler against the traveler code.
type HandoffCommand struct { //nolint:recvcheck //using for validation
	shipmentID   kernel.UUID
	travelerCode string
	operator     actor.Actor
	notes        string

	guard guard.ConstructorGuard
}

// NewHandoffCommand creates a command to hand the envelope to the traveler.
func NewHandoffCommand(shipmentID kernel.UUID, travelerCode string, operator actor.Actor, notes string) (HandoffCommand, error) {
	cmd := HandoffCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		validateOperator(operator),
	); err != nil {
		return HandoffCommand{}, err
	}
	if travelerCode == "" {
		return HandoffCommand{}, ErrCodeIsRequired
	}

	cmd.shipmentID = shipmentID
	cmd.travelerCode = travelerCode
	cmd.operator = operator
	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c HandoffCommand) Validate() error {
	return c.guard.Validate(ErrHandoffCommandIsNotConstructed)
}

// ShipmentID returns the shipment being handed off.
func (c HandoffCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// TravelerCode returns the code presented by the traveler.
func (c HandoffCommand) TravelerCode() string {
	return c.travelerCode
}

// Operator returns the acting relay operator.
func (c HandoffCommand) Operator() actor.Actor {
	return c.operator
}

// Notes returns the optional operator notes for the timeline entry.
func (c HandoffCommand) Notes() string {
	return c.notes
}
