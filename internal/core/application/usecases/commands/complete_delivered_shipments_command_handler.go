package commands

import (
	"context"
	"time"

	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/core/ports"
)

// CompleteDeliveredShipmentsCommandHandler finalizes stale delivered
// shipments. Runs from the background job; there is no human actor, so the
// completion timeline entries carry no actor identity.
type CompleteDeliveredShipmentsCommandHandler struct {
	uowFactory ShipmentUoWFactory
	publisher  ports.EventPublisher
}

// NewCompleteDeliveredShipmentsCommandHandler creates a handler for the
// auto-completion sweep.
func NewCompleteDeliveredShipmentsCommandHandler(uowFactory ShipmentUoWFactory, publisher ports.EventPublisher) CompleteDeliveredShipmentsCommandHandler {
	return CompleteDeliveredShipmentsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle sweeps "delivered" and "confirmed" shipments whose last update is
// older than the grace period and completes them. Returns how many shipments
// were finalized.
func (h *CompleteDeliveredShipmentsCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveredShipmentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	cutoff := now.Add(-cmd.GracePeriod())
	shipmentRepo := uow.ShipmentRepository()

	var completed []ports.StatusChangedEvent
	for _, status := range []shipment.Status{shipment.StatusDelivered, shipment.StatusConfirmed} {
		stale, err := shipmentRepo.GetAllInStatusUpdatedBefore(ctx, status, cutoff)
		if err != nil {
			return 0, err
		}

		for _, s := range stale {
			prevStatus := s.Status()
			if err = s.Complete(nil, "Completed automatically after delivery", now); err != nil {
				return 0, err
			}
			if err = shipmentRepo.Update(ctx, s, prevStatus); err != nil {
				return 0, err
			}

			completed = append(completed, ports.StatusChangedEvent{
				ShipmentID: s.ID(),
				OldStatus:  prevStatus,
				NewStatus:  s.Status(),
				OccurredAt: now,
			})
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	if h.publisher != nil {
		for _, event := range completed {
			_ = h.publisher.PublishStatusChanged(ctx, event)
		}
	}

	return len(completed), nil
}
