package shipment

import (
	"errors"
	"time"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/errs"
	"docurgent/internal/pkg/guard"
)

// ErrDeliveryStepIsNotConstructed is returned when a DeliveryStep was not
// created through its constructor.
var ErrDeliveryStepIsNotConstructed = errors.New(
	"DeliveryStep must be created via NewDeliveryStep or RestoreDeliveryStep")

// DeliveryStep is one timeline entry in a shipment's audit trail. Steps are
// append-only: they are created alongside every status change and never
// mutated or deleted afterwards. The actor reference is optional because
// system-driven steps (auto-completion) have no human actor.
type DeliveryStep struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	name        string
	completed   bool
	completedAt time.Time
	actorID     *kernel.UUID
	notes       string

	guard guard.ConstructorGuard
}

// NewDeliveryStep creates a completed timeline entry for a shipment.
func NewDeliveryStep(
	id kernel.UUID,
	shipmentID kernel.UUID,
	name string,
	actorID *kernel.UUID,
	notes string,
	completedAt time.Time,
) (*DeliveryStep, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("step name")
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return nil, err
		}
	}
	if completedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("completedAt")
	}

	return &DeliveryStep{
		id:          id,
		shipmentID:  shipmentID,
		name:        name,
		completed:   true,
		completedAt: completedAt,
		actorID:     actorID,
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryStep reconstructs a timeline entry from persistence.
func RestoreDeliveryStep(
	id kernel.UUID,
	shipmentID kernel.UUID,
	name string,
	completed bool,
	completedAt time.Time,
	actorID *kernel.UUID,
	notes string,
) (*DeliveryStep, error) {
	step, err := NewDeliveryStep(id, shipmentID, name, actorID, notes, completedAt)
	if err != nil {
		return nil, err
	}
	step.completed = completed
	return step, nil
}

// ID returns the step's unique identifier.
func (s *DeliveryStep) ID() kernel.UUID {
	return s.id
}

// ShipmentID returns the owning shipment's identifier.
func (s *DeliveryStep) ShipmentID() kernel.UUID {
	return s.shipmentID
}

// Name returns the human-readable step label.
func (s *DeliveryStep) Name() string {
	return s.name
}

// Completed reports whether the step has been completed.
func (s *DeliveryStep) Completed() bool {
	return s.completed
}

// CompletedAt returns the completion timestamp.
func (s *DeliveryStep) CompletedAt() time.Time {
	return s.completedAt
}

// ActorID returns the acting actor, or nil for system-driven steps.
func (s *DeliveryStep) ActorID() *kernel.UUID {
	return s.actorID
}

// Notes returns the free-text notes attached to the step.
func (s *DeliveryStep) Notes() string {
	return s.notes
}

// Validate ensures the step was created through a constructor.
func (s *DeliveryStep) Validate() error {
	if s == nil {
		return ErrDeliveryStepIsNotConstructed
	}
	return s.guard.Validate(ErrDeliveryStepIsNotConstructed)
}
