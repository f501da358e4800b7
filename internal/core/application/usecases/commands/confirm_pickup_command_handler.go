package commands

import (
	"context"
	"time"
)

// ConfirmPickupCommandHandler records the traveler's pickup acknowledgement.
// The status stays "with_traveler"; repeating the acknowledgement appends
// another timeline entry and nothing else, so retries are harmless.
type ConfirmPickupCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewConfirmPickupCommandHandler creates a handler for pickup acknowledgement.
func NewConfirmPickupCommandHandler(uowFactory ShipmentUoWFactory) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup acknowledgement command.
func (h *ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd ConfirmPickupCommand) error {
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

	prevStatus := s.Status()
	if err = s.ConfirmPickup(cmd.TravelerCode(), cmd.Traveler().ID(), cmd.Notes(), time.Now().UTC()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, s, prevStatus); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
