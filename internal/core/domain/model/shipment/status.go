package shipment

import (
	"errors"
	"fmt"

	"docurgent/internal/pkg/errs"
)

// ErrIllegalTransition indicates that an operation was attempted while the
// shipment was outside the operation's required status precondition.
var ErrIllegalTransition = errors.New("illegal status transition")

// IllegalTransitionError carries the rejected operation and the status the
// shipment was in when the operation was attempted.
type IllegalTransitionError struct {
	Operation string
	From      Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s shipment in status %s", ErrIllegalTransition, e.Operation, e.From)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// NewIllegalTransitionError creates an IllegalTransitionError.
func NewIllegalTransitionError(operation string, from Status) *IllegalTransitionError {
	return &IllegalTransitionError{Operation: operation, From: from}
}

// Status represents the lifecycle state of a shipment. It implements the
// workflow state machine; transitions are monotonic along the graph below,
// with cancellation as the only sideways exit.
//
//	Created ──> AtRelayPoint ──> WithTraveler ──> Delivered ──┬──> Completed
//	   │             │                │                       │        ▲
//	   │             │                │                   Confirmed ───┘
//	   └─────────────┴────────────────┴──(and Confirmed)──> Cancelled
//
// Delivered and Completed can never be cancelled. Completed and Cancelled
// are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusCreated is the initial status: the shipment exists and its codes
	// are minted, but the envelope is still with the sender.
	StatusCreated

	// StatusAtRelayPoint means the relay point verified the sender's unique
	// code and now custodies the envelope.
	StatusAtRelayPoint

	// StatusWithTraveler means the relay point handed the envelope to the
	// assigned traveler.
	StatusWithTraveler

	// StatusDelivered means the traveler confirmed delivery with the
	// recipient's delivery code.
	StatusDelivered

	// StatusConfirmed means the recipient acknowledged receipt.
	StatusConfirmed

	// StatusCompleted is the terminal success state.
	StatusCompleted

	// StatusCancelled is the terminal cancellation state.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:      "unknown",
		StatusCreated:      "created",
		StatusAtRelayPoint: "at_relay_point",
		StatusWithTraveler: "with_traveler",
		StatusDelivered:    "delivered",
		StatusConfirmed:    "confirmed",
		StatusCompleted:    "completed",
		StatusCancelled:    "cancelled",
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CheckIn transitions Created -> AtRelayPoint.
func (s Status) CheckIn() (Status, error) {
	if s != StatusCreated {
		return StatusUnknown, NewIllegalTransitionError("check in", s)
	}
	return StatusAtRelayPoint, nil
}

// Handoff transitions AtRelayPoint -> WithTraveler.
func (s Status) Handoff() (Status, error) {
	if s != StatusAtRelayPoint {
		return StatusUnknown, NewIllegalTransitionError("hand off", s)
	}
	return StatusWithTraveler, nil
}

// ValidatePickup checks that pickup confirmation is allowed. Pickup is a
// deliberate no-op transition: the status was already set to WithTraveler by
// the relay point's handoff, the traveler merely acknowledges it.
func (s Status) ValidatePickup() error {
	if s != StatusWithTraveler {
		return NewIllegalTransitionError("confirm pickup for", s)
	}
	return nil
}

// Deliver transitions WithTraveler -> Delivered.
func (s Status) Deliver() (Status, error) {
	if s != StatusWithTraveler {
		return StatusUnknown, NewIllegalTransitionError("deliver", s)
	}
	return StatusDelivered, nil
}

// Confirm transitions Delivered -> Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != StatusDelivered {
		return StatusUnknown, NewIllegalTransitionError("confirm", s)
	}
	return StatusConfirmed, nil
}

// Complete transitions Delivered or Confirmed -> Completed.
func (s Status) Complete() (Status, error) {
	if s != StatusDelivered && s != StatusConfirmed {
		return StatusUnknown, NewIllegalTransitionError("complete", s)
	}
	return StatusCompleted, nil
}

// ValidateAssign checks that traveler assignment is allowed. Assignment does
// not change the status; it is only legal while the shipment is Created.
func (s Status) ValidateAssign() error {
	if s != StatusCreated {
		return NewIllegalTransitionError("assign", s)
	}
	return nil
}

// Cancel transitions any non-terminal status except Delivered to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == StatusDelivered || s == StatusUnknown {
		return StatusUnknown, NewIllegalTransitionError("cancel", s)
	}
	return StatusCancelled, nil
}
