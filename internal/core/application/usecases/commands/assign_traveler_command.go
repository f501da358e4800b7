package commands

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/guard"
)

var ErrAssignTravelerCommandIsNotConstructed = errors.New(
	"AssignTravelerCommand must be created via NewAssignTravelerCommand constructor",
)

// AssignTravelerCommand represents a request to bind a traveler and their trip
// to a shipment. Assignment happens exactly once, while the shipment is still
// in "created" status.
type AssignTravelerCommand struct { //nolint:recvcheck //using for validation
	shipmentID  kernel.UUID
	travelerID  kernel.UUID
	tripID      kernel.UUID
	requestedBy actor.Actor

	guard guard.ConstructorGuard
}

// NewAssignTravelerCommand creates a command to assign a traveler to a
// shipment. The request can come from the sender accepting an offer or from
// the traveler claiming the shipment.
func NewAssignTravelerCommand(shipmentID, travelerID, tripID kernel.UUID, requestedBy actor.Actor) (AssignTravelerCommand, error) {
	cmd := AssignTravelerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		travelerID.Validate(),
		tripID.Validate(),
		requestedBy.Validate(),
	); err != nil {
		return AssignTravelerCommand{}, err
	}

	cmd.shipmentID = shipmentID
	cmd.travelerID = travelerID
	cmd.tripID = tripID
	cmd.requestedBy = requestedBy

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignTravelerCommand) Validate() error {
	return c.guard.Validate(ErrAssignTravelerCommandIsNotConstructed)
}

// ShipmentID returns the shipment to assign.
func (c AssignTravelerCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// TravelerID returns the traveler being assigned.
func (c AssignTravelerCommand) TravelerID() kernel.UUID {
	return c.travelerID
}

// TripID returns the trip the envelope will travel on.
func (c AssignTravelerCommand) TripID() kernel.UUID {
	return c.tripID
}

// RequestedBy returns the acting user.
func (c AssignTravelerCommand) RequestedBy() actor.Actor {
	return c.requestedBy
}
