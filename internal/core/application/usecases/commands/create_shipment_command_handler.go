package commands

import (
	"context"
	"errors"
	"time"

	"docurgent/internal/core/domain/model/relaypoint"
	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/core/domain/services"
	"docurgent/internal/core/ports"
)

// maxCodeMintAttempts bounds the retry loop on unique code collisions. The
// code space is 32^5 per prefix, so a second collision in a row is already
// vanishingly unlikely.
const maxCodeMintAttempts = 3

// CreateShipmentCommandHandler handles the business logic for shipment creation.
// Mints the verification code set, matches an eligible relay point, and
// persists the shipment in "created" status with its first timeline entry.
type CreateShipmentCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.RelayPointMatcher
	publisher  ports.EventPublisher
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
// Requires a UoWFactory for transactional persistence and a matcher for relay
// point selection.
func NewCreateShipmentCommandHandler(
	uowFactory UoWFactory,
	matcher services.RelayPointMatcher,
	publisher ports.EventPublisher,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		publisher:  publisher,
	}
}

// Handle processes the shipment creation command and returns the created
// aggregate so the caller can hand the minted codes to the sender. On a
// unique code collision the whole code set is re-minted and the insert
// retried, up to maxCodeMintAttempts times.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	// Candidate lookup runs outside any transaction; the match is advisory
	// and slight staleness is harmless.
	relayPoints, err := h.uowFactory.Create().RelayPointRepository().GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// Each attempt gets its own transaction. A unique violation aborts the
	// open Postgres transaction, so retrying the insert on the same one would
	// only yield "current transaction is aborted" errors.
	var created *shipment.Shipment
	for attempt := 0; attempt < maxCodeMintAttempts; attempt++ {
		created, err = h.attemptCreate(ctx, cmd, relayPoints, now)
		if err == nil {
			break
		}
		if !errors.Is(err, shipment.ErrUniqueCodeCollision) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	publishStatusChanged(ctx, h.publisher, created, shipment.StatusUnknown, created.SenderID(), now)

	return created, nil
}

// attemptCreate mints one code set and persists the shipment in a fresh
// transaction.
func (h *CreateShipmentCommandHandler) attemptCreate(
	ctx context.Context,
	cmd CreateShipmentCommand,
	relayPoints []*relaypoint.RelayPoint,
	now time.Time,
) (*shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p := cmd.Params()
	created, err := shipment.NewShipment(shipment.NewShipmentParams{
		ID:                 cmd.ShipmentID(),
		SenderID:           cmd.Sender().ID(),
		SenderName:         p.SenderName,
		SenderPhone:        p.SenderPhone,
		SourceAddress:      p.SourceAddress,
		RecipientName:      p.RecipientName,
		RecipientPhone:     p.RecipientPhone,
		DestinationAddress: p.DestinationAddress,
		DocumentType:       p.DocumentType,
		Description:        p.Description,
		OfferedPrice:       p.OfferedPrice,
		Now:                now,
	})
	if err != nil {
		return nil, err
	}

	if err = h.assignRelayPoint(created, relayPoints); err != nil {
		return nil, err
	}

	if err = uow.ShipmentRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// assignRelayPoint matches an eligible relay point. A shipment can exist
// without one; the sender then arranges the drop-off out of band.
func (h *CreateShipmentCommandHandler) assignRelayPoint(s *shipment.Shipment, candidates []*relaypoint.RelayPoint) error {
	matched, err := h.matcher.Match(nil, candidates)
	if errors.Is(err, services.ErrNoRelayPointAvailable) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.AssignRelayPoint(matched.ID())
}
