package commands

import (
	"context"
	"errors"
	"time"

	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/core/ports"
	"docurgent/internal/pkg/errs"
)

// ErrCodeIsRequired is returned when a workflow command is built without the
// verification code it is gated on.
var ErrCodeIsRequired = errors.New("verification code is required")

// CheckInCommandHandler moves a shipment from "created" to "at_relay_point"
// when the sender drops the envelope off and the operator verifies the
// unique code.
//
// The code is the only identifier the sender presents, so an unknown code and
// a known-but-mismatched code are indistinguishable to the caller: both
// surface as shipment.ErrInvalidCode. The lookup miss is preserved as the
// error's cause for diagnostics.
type CheckInCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

// NewCheckInCommandHandler creates a handler for relay point check-in.
func NewCheckInCommandHandler(uowFactory ShipmentUoWFactory, publisher ports.EventPublisher) CheckInCommandHandler {
	return CheckInCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the check-in command and returns the shipment so the
// caller can show the operator what was accepted.
func (h *CheckInCommandHandler) Handle(ctx context.Context, cmd CheckInCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	s, err := shipmentRepo.GetByUniqueCode(ctx, cmd.UniqueCode())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, shipment.NewInvalidCodeError(shipment.CodeKindUnique, err)
		}
		return nil, err
	}

	now := time.Now().UTC()
	prevStatus := s.Status()
	if err = s.CheckIn(cmd.UniqueCode(), cmd.Operator().ID(), cmd.Notes(), now); err != nil {
		return nil, err
	}

	if err = shipmentRepo.Update(ctx, s, prevStatus); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishStatusChanged(ctx, h.publisher, s, prevStatus, cmd.Operator().ID(), now)

	return s, nil
}
