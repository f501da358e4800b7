package commands

import (
	"context"
	"time"

	"docurgent/internal/core/ports"
)

// ConfirmReceiptCommandHandler moves a shipment from "delivered" to
// "confirmed" on the recipient's acknowledgement. Confirmation is optional;
// unconfirmed deliveries are finalized by the auto-completion sweep.
type ConfirmReceiptCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

// NewConfirmReceiptCommandHandler creates a handler for receipt confirmation.
func NewConfirmReceiptCommandHandler(uowFactory ShipmentUoWFactory, publisher ports.EventPublisher) ConfirmReceiptCommandHandler {
	return ConfirmReceiptCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the receipt confirmation command.
func (h *ConfirmReceiptCommandHandler) Handle(ctx context.Context, cmd ConfirmReceiptCommand) error {
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
	if err = s.Confirm(cmd.Recipient().ID(), now); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, s, prevStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishStatusChanged(ctx, h.publisher, s, prevStatus, cmd.Recipient().ID(), now)

	return nil
}
