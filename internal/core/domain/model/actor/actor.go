// Package actor defines the authenticated caller identity used by the role
// gateways: a user identifier plus a closed set of role variants. The closed
// set replaces runtime attribute inspection with exhaustive checks.
package actor

import (
	"errors"
	"fmt"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/errs"
	"docurgent/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when using an Actor that was not
// created through NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor")

// Role is the closed set of actor roles in the courier workflow.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleSender creates shipments and may cancel them.
	RoleSender

	// RoleTraveler carries envelopes and confirms pickup and delivery.
	RoleTraveler

	// RoleRelayOperator staffs a relay point: check-in, verification, handoff.
	RoleRelayOperator

	// RoleRecipient receives envelopes and may confirm receipt.
	RoleRecipient

	// RoleAdmin manages the relay point registry.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleSender:        "sender",
		RoleTraveler:      "traveler",
		RoleRelayOperator: "relay_operator",
		RoleRecipient:     "recipient",
		RoleAdmin:         "admin",
	}
}

// RoleFromString parses the wire representation of a role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the wire representation of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the role is one of the defined variants.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the authenticated caller of a workflow operation.
type Actor struct {
	id   kernel.UUID
	role Role

	guard guard.ConstructorGuard
}

// NewActor creates an actor from an authenticated identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// ID returns the actor's user identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate ensures the actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}
