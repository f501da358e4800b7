// Package relaypoint contains the RelayPoint aggregate: a staffed physical
// location that custodies an envelope between sender and traveler. Shipments
// reference relay points by identity and never own their lifecycle.
package relaypoint

import (
	"errors"
	"time"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/errs"
	"docurgent/internal/pkg/guard"
)

// ErrRelayPointIsNotConstructed is returned when using a RelayPoint that was
// not created through NewRelayPoint or RestoreRelayPoint.
var ErrRelayPointIsNotConstructed = errors.New(
	"RelayPoint must be created via NewRelayPoint or RestoreRelayPoint")

// RelayPoint is an aggregate root describing a handoff location. Only active
// and verified relay points are eligible for shipment auto-assignment.
type RelayPoint struct {
	id     kernel.UUID
	userID kernel.UUID

	locationName string
	address      string
	city         string
	country      string
	postalCode   string

	// geo is optional; relay points without coordinates are skipped by the
	// nearest matcher but still eligible for first-active matching.
	geo *kernel.GeoPoint

	phone string
	email string

	verified bool
	active   bool

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewRelayPointParams carries the data for registering a relay point.
type NewRelayPointParams struct {
	ID           kernel.UUID
	UserID       kernel.UUID
	LocationName string
	Address      string
	City         string
	Country      string
	PostalCode   string
	Geo          *kernel.GeoPoint
	Phone        string
	Email        string
	Now          time.Time
}

// NewRelayPoint registers a relay point. New relay points start active but
// unverified; verification is a separate administrative act.
func NewRelayPoint(p NewRelayPointParams) (*RelayPoint, error) {
	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	rp := &RelayPoint{
		active:    true,
		createdAt: p.Now,
		updatedAt: p.Now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rp.setID(p.ID),
		rp.setUserID(p.UserID),
		rp.setLocation(p.LocationName, p.Address, p.City, p.Country, p.PostalCode),
		rp.setGeo(p.Geo),
	); err != nil {
		return nil, err
	}

	rp.phone = p.Phone
	rp.email = p.Email

	return rp, nil
}

// RestoreRelayPointParams carries the persisted state of a relay point.
type RestoreRelayPointParams struct {
	NewRelayPointParams

	Verified  bool
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestoreRelayPoint reconstructs a relay point from persistence.
func RestoreRelayPoint(p RestoreRelayPointParams) (*RelayPoint, error) {
	rp, err := NewRelayPoint(p.NewRelayPointParams)
	if err != nil {
		return nil, err
	}

	rp.verified = p.Verified
	rp.active = p.Active
	rp.createdAt = p.CreatedAt
	rp.updatedAt = p.UpdatedAt

	return rp, nil
}

// ID returns the relay point's unique identifier.
func (rp *RelayPoint) ID() kernel.UUID { return rp.id }

// UserID returns the owning user's identity.
func (rp *RelayPoint) UserID() kernel.UUID { return rp.userID }

// LocationName returns the display name of the location.
func (rp *RelayPoint) LocationName() string { return rp.locationName }

// Address returns the street address.
func (rp *RelayPoint) Address() string { return rp.address }

// City returns the city.
func (rp *RelayPoint) City() string { return rp.city }

// Country returns the country.
func (rp *RelayPoint) Country() string { return rp.country }

// PostalCode returns the postal code, possibly empty.
func (rp *RelayPoint) PostalCode() string { return rp.postalCode }

// Geo returns the geographic coordinates, or nil when not geocoded.
func (rp *RelayPoint) Geo() *kernel.GeoPoint { return rp.geo }

// Phone returns the contact phone, possibly empty.
func (rp *RelayPoint) Phone() string { return rp.phone }

// Email returns the contact email, possibly empty.
func (rp *RelayPoint) Email() string { return rp.email }

// Verified reports whether the relay point passed verification.
func (rp *RelayPoint) Verified() bool { return rp.verified }

// Active reports whether the relay point currently accepts envelopes.
func (rp *RelayPoint) Active() bool { return rp.active }

// CreatedAt returns the registration timestamp.
func (rp *RelayPoint) CreatedAt() time.Time { return rp.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (rp *RelayPoint) UpdatedAt() time.Time { return rp.updatedAt }

// IsEligible reports whether the relay point can be auto-assigned to new
// shipments: it must be both active and verified.
func (rp *RelayPoint) IsEligible() bool {
	return rp.active && rp.verified
}

// Verify marks the relay point as verified.
func (rp *RelayPoint) Verify(now time.Time) {
	rp.verified = true
	rp.updatedAt = now
}

// Deactivate takes the relay point out of rotation.
func (rp *RelayPoint) Deactivate(now time.Time) {
	rp.active = false
	rp.updatedAt = now
}

// Validate ensures the relay point was created through a constructor.
func (rp *RelayPoint) Validate() error {
	if rp == nil {
		return ErrRelayPointIsNotConstructed
	}
	return rp.guard.Validate(ErrRelayPointIsNotConstructed)
}

func (rp *RelayPoint) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	rp.id = id
	return nil
}

func (rp *RelayPoint) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	rp.userID = id
	return nil
}

func (rp *RelayPoint) setLocation(name, address, city, country, postalCode string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("location name")
	}
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	if country == "" {
		return errs.NewValueIsRequiredError("country")
	}

	rp.locationName = name
	rp.address = address
	rp.city = city
	rp.country = country
	rp.postalCode = postalCode
	return nil
}

func (rp *RelayPoint) setGeo(geo *kernel.GeoPoint) error {
	if geo != nil {
		if err := geo.Validate(); err != nil {
			return err
		}
	}
	rp.geo = geo
	return nil
}
