package commands

import (
	"context"
	"time"

	"docurgent/internal/core/ports"
)

// HandoffCommandHandler moves a shipment from "at_relay_point" to
// "with_traveler" once the operator verifies the traveler code. Under
// concurrent handoffs of the same shipment, only the first commit wins; the
// loser observes an illegal transition from the already-moved status.
type HandoffCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

// NewHandoffCommandHandler creates a handler for the relay-to-traveler handoff.
func NewHandoffCommandHandler(uowFactory ShipmentUoWFactory, publisher ports.EventPublisher) HandoffCommandHandler {
	return HandoffCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the handoff command.
func (h *HandoffCommandHandler) Handle(ctx context.Context, cmd HandoffCommand) error {
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

	now := time.Now().UTC()
	prevStatus := s.Status()
	if err = s.Handoff(cmd.TravelerCode(), cmd.Operator().ID(), cmd.Notes(), now); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, s, prevStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, s, prevStatus, cmd.Operator().ID(), now)

	return nil
}
