package commands

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/guard"
)

var ErrConfirmReceiptCommandIsNotConstructed = errors.New(
	"ConfirmReceiptCommand must be created via NewConfirmReceiptCommand constructor",
)

// ConfirmReceiptCommand represents the recipient acknowledging that the
// delivered envelope is in order, moving the shipment to "confirmed".
type ConfirmReceiptCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	recipient  actor.Actor

	guard guard.ConstructorGuard
}

// NewConfirmReceiptCommand creates a command for the recipient's receipt
// acknowledgement.
func NewConfirmReceiptCommand(shipmentID kernel.UUID, recipient actor.Actor) (ConfirmReceiptCommand, error) {
	cmd := ConfirmReceiptCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		recipient.Validate(),
	); err != nil {
		return ConfirmReceiptCommand{}, err
	}
	if recipient.Role() != actor.RoleRecipient && recipient.Role() != actor.RoleAdmin {
		return ConfirmReceiptCommand{}, ErrNotAuthorized
	}

	cmd.shipmentID = shipmentID
	cmd.recipient = recipient

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmReceiptCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceiptCommandIsNotConstructed)
}

// ShipmentID returns the shipment being confirmed.
func (c ConfirmReceiptCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Recipient returns the acting recipient.
func (c ConfirmReceiptCommand) Recipient() actor.Actor {
	return c.recipient
}
