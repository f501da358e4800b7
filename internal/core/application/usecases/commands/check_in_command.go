package commands

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/pkg/guard"
)

var ErrCheckInCommandIsNotConstructed = errors.New(
	"CheckInCommand must be created via NewCheckInCommand constructor",
)

// CheckInCommand represents a relay operator accepting an envelope drop-off.
// The sender presents only the unique code; the shipment is looked up by it.
type CheckInCommand struct { //nolint:recvcheck //using for validation
	uniqueCode string
	operator   actor.Actor
	notes      string

	guard guard.ConstructorGuard
}

// NewCheckInCommand creates a command to check a shipment in at a relay point.
// Only relay operators may check shipments in.
func NewCheckInCommand(uniqueCode string, operator actor.Actor, notes string) (CheckInCommand, error) {
	cmd := CheckInCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUniqueCode(uniqueCode),
		cmd.setOperator(operator),
	); err != nil {
		return CheckInCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckInCommand) Validate() error {
	return c.guard.Validate(ErrCheckInCommandIsNotConstructed)
}

// UniqueCode returns the code presented by the sender.
func (c CheckInCommand) UniqueCode() string {
	return c.uniqueCode
}

// Operator returns the acting relay operator.
func (c CheckInCommand) Operator() actor.Actor {
	return c.operator
}

// Notes returns the optional operator notes for the timeline entry.
func (c CheckInCommand) Notes() string {
	return c.notes
}

func (c *CheckInCommand) setUniqueCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}

	c.uniqueCode = code
	return nil
}

func (c *CheckInCommand) setOperator(operator actor.Actor) error {
	if err := validateOperator(operator); err != nil {
		return err
	}

	c.operator = operator
	return nil
}
