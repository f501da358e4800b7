package commands

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents a sender's request to ship a document.
// Encapsulates sender, recipient, and document details plus the offered price.
//
// Example:
//
//	shipmentID := kernel.NewUUID()
//	cmd, err := NewCreateShipmentCommand(shipmentID, sender, CreateShipmentParams{...})
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	handler := NewCreateShipmentCommandHandler(uowFactory, matcher, publisher)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create shipment: %w", err)
//	}
//	// created.Codes() holds the three one-time verification codes
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	sender     actor.Actor
	params     CreateShipmentParams

	guard guard.ConstructorGuard
}

// CreateShipmentParams carries the sender-provided shipment details.
type CreateShipmentParams struct {
	SenderName         string
	SenderPhone        string
	SourceAddress      string
	RecipientName      string
	RecipientPhone     string
	DestinationAddress string
	DocumentType       shipment.DocumentType
	Description        string
	OfferedPrice       kernel.Price
}

// NewCreateShipmentCommand creates a command to register a new shipment.
// Field-level validation is deferred to the aggregate constructor; here only
// the identity, the acting sender, and the document type are checked.
func NewCreateShipmentCommand(shipmentID kernel.UUID, sender actor.Actor, params CreateShipmentParams) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setSender(sender),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	cmd.params = params
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateShipmentCommandIsNotConstructed if validation fails.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Sender returns the acting sender.
func (c CreateShipmentCommand) Sender() actor.Actor {
	return c.sender
}

// Params returns the sender-provided shipment details.
func (c CreateShipmentCommand) Params() CreateShipmentParams {
	return c.params
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setSender(sender actor.Actor) error {
	if err := sender.Validate(); err != nil {
		return err
	}
	if sender.Role() != actor.RoleSender && sender.Role() != actor.RoleAdmin {
		return ErrNotAuthorized
	}

	c.sender = sender
	return nil
}
