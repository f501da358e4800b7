package ports

import (
	"context"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/relaypoint"
)

// RelayPointRepository defines the persistence contract for relay point
// aggregates.
type RelayPointRepository interface {
	// Add persists a newly registered relay point.
	Add(ctx context.Context, aggregate *relaypoint.RelayPoint) error

	// Update persists changes to an existing relay point.
	Update(ctx context.Context, aggregate *relaypoint.RelayPoint) error

	// Get retrieves a relay point by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*relaypoint.RelayPoint, error)

	// GetAllActive retrieves all active relay points in registration order.
	// Eligibility filtering beyond the active flag is left to the matcher.
	GetAllActive(ctx context.Context) ([]*relaypoint.RelayPoint, error)
}
