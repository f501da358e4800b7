package commands

import (
	"context"
	"time"
)

// VerifyRelayPointCommandHandler marks a relay point as verified.
type VerifyRelayPointCommandHandler struct {
	uowFactory RelayPointUoWFactory
}

// NewVerifyRelayPointCommandHandler creates a handler for relay point
// verification.
func NewVerifyRelayPointCommandHandler(uowFactory RelayPointUoWFactory) VerifyRelayPointCommandHandler {
	return VerifyRelayPointCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the verification command.
func (h *VerifyRelayPointCommandHandler) Handle(ctx context.Context, cmd VerifyRelayPointCommand) error {
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

	relayPointRepo := uow.RelayPointRepository()
	rp, err := relayPointRepo.Get(ctx, cmd.RelayPointID())
	if err != nil {
		return err
	}

	rp.Verify(time.Now().UTC())

	if err = relayPointRepo.Update(ctx, rp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
