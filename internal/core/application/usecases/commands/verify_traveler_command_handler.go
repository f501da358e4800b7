package commands

import (
	"context"

	"docurgent/internal/core/domain/model/shipment"
)

// VerifyTravelerCommandHandler checks a traveler's code against a shipment
// without mutating anything. Operators call this before Handoff to refuse
// impostors early; the code stays valid for the actual handoff.
type VerifyTravelerCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewVerifyTravelerCommandHandler creates a handler for traveler verification.
func NewVerifyTravelerCommandHandler(uowFactory ShipmentUoWFactory) VerifyTravelerCommandHandler {
	return VerifyTravelerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle verifies the presented traveler code. Returns the shipment when the
// code matches, shipment.ErrInvalidCode when it does not. No transaction is
// opened; the repository reads outside any transaction.
func (h *VerifyTravelerCommandHandler) Handle(ctx context.Context, cmd VerifyTravelerCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	if !s.VerifyCode(shipment.CodeKindTraveler, cmd.TravelerCode()) {
		return nil, shipment.NewInvalidCodeError(shipment.CodeKindTraveler, nil)
	}

	return s, nil
}
