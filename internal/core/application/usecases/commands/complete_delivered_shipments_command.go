package commands

import (
	"errors"
	"time"

	"docurgent/internal/pkg/errs"
	"docurgent/internal/pkg/guard"
)

var ErrCompleteDeliveredShipmentsCommandIsNotConstructed = errors.New(
	"CompleteDeliveredShipmentsCommand must be created via NewCompleteDeliveredShipmentsCommand constructor",
)

// CompleteDeliveredShipmentsCommand represents a sweep that finalizes
// delivered shipments whose recipients never confirmed. Shipments sitting in
// "delivered" or "confirmed" longer than the grace period move to "completed".
type CompleteDeliveredShipmentsCommand struct { //nolint:recvcheck //using for validation
	gracePeriod time.Duration

	guard guard.ConstructorGuard
}

// NewCompleteDeliveredShipmentsCommand creates a sweep command with the given
// grace period. The grace period must be positive.
func NewCompleteDeliveredShipmentsCommand(gracePeriod time.Duration) (CompleteDeliveredShipmentsCommand, error) {
	if gracePeriod <= 0 {
		return CompleteDeliveredShipmentsCommand{},
			errs.NewValueIsInvalidError("grace period")
	}

	return CompleteDeliveredShipmentsCommand{
		gracePeriod: gracePeriod,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveredShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveredShipmentsCommandIsNotConstructed)
}

// GracePeriod returns how long a delivered shipment may wait for recipient
// confirmation before being finalized.
func (c CompleteDeliveredShipmentsCommand) GracePeriod() time.Duration {
	return c.gracePeriod
}
