package commands

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/guard"
)

var ErrConfirmPickupCommandIsNotConstructed = errors.New(
	"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
)

// ConfirmPickupCommand represents the traveler acknowledging on their own
// device that they received the envelope. The shipment must already be
// "with_traveler"; the acknowledgement only adds a timeline entry.
type ConfirmPickupCommand struct { //nolint:recvcheck //using for validation
	shipmentID   kernel.UUID
	travelerCode string
	traveler     actor.Actor
	notes        string

	guard guard.ConstructorGuard
}

// NewConfirmPickupCommand creates a command for the traveler-side pickup
// acknowledgement.
func NewConfirmPickupCommand(shipmentID kernel.UUID, travelerCode string, traveler actor.Actor, notes string) (ConfirmPickupCommand, error) {
	cmd := ConfirmPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		validateTraveler(traveler),
	); err != nil {
		return ConfirmPickupCommand{}, err
	}
	if travelerCode == "" {
		return ConfirmPickupCommand{}, ErrCodeIsRequired
	}

	cmd.shipmentID = shipmentID
	cmd.travelerCode = travelerCode
	cmd.traveler = traveler
	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}

// ShipmentID returns the shipment being acknowledged.
func (c ConfirmPickupCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// TravelerCode returns the traveler's own code.
func (c ConfirmPickupCommand) TravelerCode() string {
	return c.travelerCode
}

// Traveler returns the acting traveler.
func (c ConfirmPickupCommand) Traveler() actor.Actor {
	return c.traveler
}

// Notes returns the optional traveler notes for the timeline entry.
func (c ConfirmPickupCommand) Notes() string {
	return c.notes
}

func validateTraveler(traveler actor.Actor) error {
	if err := traveler.Validate(); err != nil {
		return err
	}
	if traveler.Role() != actor.RoleTraveler {
		return ErrNotAuthorized
	}
	return nil
}
