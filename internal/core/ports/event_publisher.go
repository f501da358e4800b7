package ports

import (
	"context"
	"time"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/shipment"
)

// StatusChangedEvent describes a committed shipment status transition.
type StatusChangedEvent struct {
	ShipmentID kernel.UUID
	OldStatus  shipment.Status
	NewStatus  shipment.Status

	// ActorID identifies who drove the transition; nil for system-driven
	// transitions such as the auto-completion sweep.
	ActorID *kernel.UUID

	OccurredAt time.Time
}

// EventPublisher publishes shipment lifecycle events to downstream consumers
// (notifications, analytics). Publishing is best-effort: it happens after
// commit and a publish failure never rolls back the transition.
type EventPublisher interface {
	// PublishStatusChanged emits a status transition event.
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error

	// Close releases the publisher's underlying resources.
	Close() error
}
