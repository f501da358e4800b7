package queries

import (
	"errors"
	"time"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/guard"
)

var ErrGetTimelineQueryIsNotConstructed = errors.New(
	"GetTimelineQuery must be created via NewGetTimelineQuery constructor",
)

// GetTimelineQuery retrieves a shipment's delivery step history, oldest
// first. Visibility follows the shipment itself: participants and admins only.
type GetTimelineQuery struct {
	shipmentID kernel.UUID
	requester  actor.Actor

	guard guard.ConstructorGuard
}

// NewGetTimelineQuery creates a query for a shipment's timeline.
func NewGetTimelineQuery(shipmentID kernel.UUID, requester actor.Actor) (GetTimelineQuery, error) {
	if err := errors.Join(shipmentID.Validate(), requester.Validate()); err != nil {
		return GetTimelineQuery{}, err
	}

	return GetTimelineQuery{
		shipmentID: shipmentID,
		requester:  requester,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetTimelineQueryIsNotConstructed)
}

// ShipmentID returns the queried shipment identifier.
func (q GetTimelineQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// Requester returns the acting user.
func (q GetTimelineQuery) Requester() actor.Actor {
	return q.requester
}

// GetTimelineQueryResponse represents one delivery step of a timeline.
type GetTimelineQueryResponse struct {
	ID          kernel.UUID
	Name        string
	Completed   bool
	CompletedAt time.Time
	ActorID     *kernel.UUID
	Notes       string
}
