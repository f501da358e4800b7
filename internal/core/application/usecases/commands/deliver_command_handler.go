package commands

import (
	"context"
	"time"

	"docurgent/internal/core/ports"
)

// DeliverCommandHandler moves a shipment from "with_traveler" to "delivered"
// when the recipient reads their delivery code back to the traveler. Records
// who completed the delivery and when.
type DeliverCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

// NewDeliverCommandHandler creates a handler for delivery confirmation.
func NewDeliverCommandHandler(uowFactory ShipmentUoWFactory, publisher ports.EventPublisher) DeliverCommandHandler {
	return DeliverCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the delivery command. Only the assigned traveler may
// deliver, even with a valid delivery code.
func (h *DeliverCommandHandler) Handle(ctx context.Context, cmd DeliverCommand) error {
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

	if !s.IsTraveler(cmd.Traveler().ID()) {
		return ErrNotAuthorized
	}

	now := time.Now().UTC()
	prevStatus := s.Status()
	if err = s.Deliver(cmd.DeliveryCode(), cmd.Traveler().ID(), cmd.Notes(), now); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, s, prevStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, s, prevStatus, cmd.Traveler().ID(), now)

	return nil
}
