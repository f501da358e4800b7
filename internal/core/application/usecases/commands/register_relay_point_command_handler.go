package commands

import (
	"context"

	"docurgent/internal/core/domain/model/relaypoint"
)

// RegisterRelayPointCommandHandler persists a newly registered relay point.
type RegisterRelayPointCommandHandler struct {
	uowFactory RelayPointUoWFactory
}

// NewRegisterRelayPointCommandHandler creates a handler for relay point
// registration.
func NewRegisterRelayPointCommandHandler(uowFactory RelayPointUoWFactory) RegisterRelayPointCommandHandler {
	return RegisterRelayPointCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command and returns the created relay
// point.
func (h *RegisterRelayPointCommandHandler) Handle(ctx context.Context, cmd RegisterRelayPointCommand) (*relaypoint.RelayPoint, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p := cmd.Params()
	rp, err := relaypoint.NewRelayPoint(relaypoint.NewRelayPointParams{
		ID:           cmd.RelayPointID(),
		UserID:       cmd.Operator().ID(),
		LocationName: p.LocationName,
		Address:      p.Address,
		City:         p.City,
		Country:      p.Country,
		PostalCode:   p.PostalCode,
		Geo:          p.Geo,
		Phone:        p.Phone,
		Email:        p.Email,
	})
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RelayPointRepository().Add(ctx, rp); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return rp, nil
}
