package commands

import (
	"context"
	"time"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/ports"
)

// AssignTravelerCommandHandler binds a traveler and trip to a shipment.
//
// Authorization: the shipment's sender may assign any traveler; a traveler
// may only claim the shipment for themselves. The assignment is guarded by
// the aggregate so it happens exactly once and only while "created".
type AssignTravelerCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

// NewAssignTravelerCommandHandler creates a handler for traveler assignment.
func NewAssignTravelerCommandHandler(uowFactory ShipmentUoWFactory, publisher ports.EventPublisher) AssignTravelerCommandHandler {
	return AssignTravelerCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the traveler assignment command.
func (h *AssignTravelerCommandHandler) Handle(ctx context.Context, cmd AssignTravelerCommand) error {
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

	if !h.canAssign(cmd, s.SenderID().IsEqual(cmd.RequestedBy().ID())) {
		return ErrNotAuthorized
	}

	prevStatus := s.Status()
	if err = s.AssignTraveler(cmd.TravelerID(), cmd.TripID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, s, prevStatus); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *AssignTravelerCommandHandler) canAssign(cmd AssignTravelerCommand, isSender bool) bool {
	switch cmd.RequestedBy().Role() {
	case actor.RoleSender:
		return isSender
	case actor.RoleTraveler:
		return cmd.RequestedBy().ID().IsEqual(cmd.TravelerID())
	case actor.RoleAdmin:
		return true
	default:
		return false
	}
}
