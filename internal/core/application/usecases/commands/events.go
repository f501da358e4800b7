package commands

import (
	"context"
	"time"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/core/ports"
)

// publishStatusChanged emits a status transition event after a successful
// commit. Best-effort: a publish failure never undoes the committed write, so
// the error is dropped here and logged inside the publisher.
func publishStatusChanged(
	ctx context.Context,
	publisher ports.EventPublisher,
	s *shipment.Shipment,
	old shipment.Status,
	actorID kernel.UUID,
	now time.Time,
) {
	if publisher == nil {
		return
	}

	_ = publisher.PublishStatusChanged(ctx, ports.StatusChangedEvent{
		ShipmentID: s.ID(),
		OldStatus:  old,
		NewStatus:  s.Status(),
		ActorID:    &actorID,
		OccurredAt: now,
	})
}
