package ports

import (
	"context"
	"time"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment
// aggregates, including their timeline of delivery steps.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate and its pending delivery steps.
	// Returns shipment.ErrUniqueCodeCollision when the shipment's unique code
	// is already taken, so callers can regenerate codes and retry.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate together with
	// any delivery steps recorded since it was loaded. The write only applies
	// when the stored status still equals expectedStatus; a concurrent
	// transition that moved the shipment away loses the race and gets
	// shipment.ErrIllegalTransition.
	Update(ctx context.Context, aggregate *shipment.Shipment, expectedStatus shipment.Status) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByUniqueCode retrieves the shipment holding the given unique code.
	// Used by relay operator check-in, where the code is the only identifier
	// the sender presents.
	GetByUniqueCode(ctx context.Context, code string) (*shipment.Shipment, error)

	// GetAllInStatusUpdatedBefore retrieves shipments sitting in the given
	// status whose last update is older than the cutoff. Used by the
	// auto-completion sweep.
	GetAllInStatusUpdatedBefore(ctx context.Context, status shipment.Status, cutoff time.Time) ([]*shipment.Shipment, error)

	// GetTimeline retrieves the delivery steps of a shipment ordered by
	// completion time, oldest first.
	GetTimeline(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.DeliveryStep, error)
}
