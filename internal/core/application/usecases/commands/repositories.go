// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"errors"

	"docurgent/internal/core/ports"
)

// ErrNotAuthorized is returned when the acting user holds the wrong role for
// an operation or is not a participant of the targeted shipment.
var ErrNotAuthorized = errors.New("actor is not authorized to perform this operation")

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// RelayPointRepoFactory provides access to the relay point repository within a transaction.
	RelayPointRepoFactory interface {
		RelayPointRepository() ports.RelayPointRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	// Used when commands only modify shipment aggregates.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// RelayPointUoW manages transactions for relay point registry operations.
	RelayPointUoW interface {
		TxManager
		RelayPointRepoFactory
	}

	// RelayPointUoWFactory creates new relay point unit of work instances.
	RelayPointUoWFactory interface {
		Create() RelayPointUoW
	}

	// UoW manages transactions across both shipment and relay point aggregates.
	// Used for commands that coordinate changes between multiple aggregate types.
	UoW interface {
		TxManager
		ShipmentRepoFactory
		RelayPointRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
