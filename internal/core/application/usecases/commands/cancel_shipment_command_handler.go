package commands

import (
	"context"
	"time"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/ports"
)

// CancelShipmentCommandHandler cancels a shipment on the sender's request.
// Delivered and completed shipments cannot be cancelled; the aggregate
// rejects those transitions.
type CancelShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelShipmentCommandHandler creates a handler for shipment cancellation.
func NewCancelShipmentCommandHandler(uowFactory ShipmentUoWFactory, publisher ports.EventPublisher) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command. Only the shipment's own sender
// (or an admin) may cancel.
func (h *CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	s, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if cmd.Sender().Role() != actor.RoleAdmin && !s.IsSender(cmd.Sender().ID()) {
		return ErrNotAuthorized
	}

	now := time.Now().UTC()
	prevStatus := s.Status()
	if err = s.Cancel(cmd.Sender().ID(), cmd.Reason(), now); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, s, prevStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, s, prevStatus, cmd.Sender().ID(), now)

	return nil
}
