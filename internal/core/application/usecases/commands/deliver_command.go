package commands

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/guard"
)

var ErrDeliverCommandIsNotConstructed = errors.New(
	"DeliverCommand must be created via NewDeliverCommand constructor",
)

// DeliverCommand represents the traveler handing the envelope to the
// recipient against the recipient's delivery code.
type DeliverCommand struct { //nolint:recvcheck //using for validation
	shipmentID   kernel.UUID
	deliveryCode string
	traveler     actor.Actor
	notes        string

	guard guard.ConstructorGuard
}

// NewDeliverCommand creates a command to deliver a shipment to its recipient.
func NewDeliverCommand(shipmentID kernel.UUID, deliveryCode string, traveler actor.Actor, notes string) (DeliverCommand, error) {
	cmd := DeliverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		validateTraveler(traveler),
	); err != nil {
		return DeliverCommand{}, err
	}
	if deliveryCode == "" {
		return DeliverCommand{}, ErrCodeIsRequired
	}

	cmd.shipmentID = shipmentID
	cmd.deliveryCode = deliveryCode
	cmd.traveler = traveler
	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverCommand) Validate() error {
	return c.guard.Validate(ErrDeliverCommandIsNotConstructed)
}

// ShipmentID returns the shipment being delivered.
func (c DeliverCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// DeliveryCode returns the code presented by the recipient.
func (c DeliverCommand) DeliveryCode() string {
	return c.deliveryCode
}

// Traveler returns the acting traveler.
func (c DeliverCommand) Traveler() actor.Actor {
	return c.traveler
}

// Notes returns the optional traveler notes for the timeline entry.
func (c DeliverCommand) Notes() string {
	return c.notes
}
