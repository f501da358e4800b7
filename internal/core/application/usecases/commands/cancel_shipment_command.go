package commands

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/errs"
	"docurgent/internal/pkg/guard"
)

var ErrCancelShipmentCommandIsNotConstructed = errors.New(
	"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
)

// CancelShipmentCommand represents the sender withdrawing a shipment before
// delivery. The reason is mandatory and lands verbatim on the timeline.
type CancelShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	sender     actor.Actor
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelShipmentCommand creates a command to cancel a shipment.
func NewCancelShipmentCommand(shipmentID kernel.UUID, sender actor.Actor, reason string) (CancelShipmentCommand, error) {
	cmd := CancelShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		sender.Validate(),
	); err != nil {
		return CancelShipmentCommand{}, err
	}
	if sender.Role() != actor.RoleSender && sender.Role() != actor.RoleAdmin {
		return CancelShipmentCommand{}, ErrNotAuthorized
	}
	if reason == "" {
		return CancelShipmentCommand{}, errs.NewValueIsRequiredError("cancellation reason")
	}

	cmd.shipmentID = shipmentID
	cmd.sender = sender
	cmd.reason = reason

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment being cancelled.
func (c CancelShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Sender returns the acting sender.
func (c CancelShipmentCommand) Sender() actor.Actor {
	return c.sender
}

// Reason returns the sender's cancellation reason.
func (c CancelShipmentCommand) Reason() string {
	return c.reason
}
