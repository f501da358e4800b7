// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain model and read projections straight from
// the database.
package queries

import (
	"errors"
	"time"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/guard"
)

// ErrNotAuthorized is returned when the requesting actor may not see the
// queried data.
var ErrNotAuthorized = errors.New("actor is not authorized to view this data")

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves a single shipment by identifier.
// Only the shipment's participants (sender, assigned traveler) and admins may
// read it; the verification codes are disclosed to the sender alone.
type GetShipmentQuery struct {
	shipmentID kernel.UUID
	requester  actor.Actor

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query to retrieve one shipment.
func NewGetShipmentQuery(shipmentID kernel.UUID, requester actor.Actor) (GetShipmentQuery, error) {
	if err := errors.Join(shipmentID.Validate(), requester.Validate()); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		requester:  requester,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the queried shipment identifier.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// Requester returns the acting user.
func (q GetShipmentQuery) Requester() actor.Actor {
	return q.requester
}

// ShipmentCodes carries the three verification codes. Present in responses
// only for the sender and admins.
type ShipmentCodes struct {
	UniqueCode   string
	DeliveryCode string
	TravelerCode string
}

// GetShipmentQueryResponse represents one shipment read model.
type GetShipmentQueryResponse struct {
	ID                 kernel.UUID
	SenderID           kernel.UUID
	SenderName         string
	SenderPhone        string
	SourceAddress      string
	RecipientName      string
	RecipientPhone     string
	DestinationAddress string
	DocumentType       string
	Description        string
	TravelerID         *kernel.UUID
	TripID             *kernel.UUID
	RelayPointID       *kernel.UUID
	Status             string
	OfferedPrice       string
	Codes              *ShipmentCodes
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CompletedAt        *time.Time
	CompletedBy        *kernel.UUID
}
