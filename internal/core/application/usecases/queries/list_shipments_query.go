package queries

import (
	"errors"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/pkg/errs"
	"docurgent/internal/pkg/guard"
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListShipmentsQuery retrieves the shipments the requester participates in,
// newest first. Travelers can restrict the listing to shipments assigned to
// them via TravelerOnly (the "my shipments" view).
type ListShipmentsQuery struct {
	requester    actor.Actor
	status       shipment.Status
	travelerOnly bool
	page         int
	pageSize     int

	guard guard.ConstructorGuard
}

// ListShipmentsParams carries the optional filters of a shipment listing.
type ListShipmentsParams struct {
	// Status filters by workflow status when not StatusUnknown.
	Status shipment.Status

	// TravelerOnly restricts the listing to shipments where the requester is
	// the assigned traveler.
	TravelerOnly bool

	// Page is 1-based. Zero means first page.
	Page int

	// PageSize caps at maxPageSize. Zero means defaultPageSize.
	PageSize int
}

// NewListShipmentsQuery creates a query to list the requester's shipments.
func NewListShipmentsQuery(requester actor.Actor, params ListShipmentsParams) (ListShipmentsQuery, error) {
	if err := requester.Validate(); err != nil {
		return ListShipmentsQuery{}, err
	}
	if params.Status != shipment.StatusUnknown {
		if err := params.Status.Validate(); err != nil {
			return ListShipmentsQuery{}, err
		}
	}
	// Page has no upper bound; only negatives are rejected.
	if params.Page < 0 {
		return ListShipmentsQuery{}, errs.NewValueIsInvalidError("page")
	}
	if params.PageSize < 0 || params.PageSize > maxPageSize {
		return ListShipmentsQuery{}, errs.NewValueIsOutOfRangeError("page size", params.PageSize, 0, maxPageSize)
	}

	q := ListShipmentsQuery{
		requester:    requester,
		status:       params.Status,
		travelerOnly: params.TravelerOnly,
		page:         params.Page,
		pageSize:     params.PageSize,
		guard:        guard.NewConstructorGuard(),
	}
	if q.page == 0 {
		q.page = 1
	}
	if q.pageSize == 0 {
		q.pageSize = defaultPageSize
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

// Requester returns the acting user.
func (q ListShipmentsQuery) Requester() actor.Actor {
	return q.requester
}

// Status returns the status filter, StatusUnknown when unfiltered.
func (q ListShipmentsQuery) Status() shipment.Status {
	return q.status
}

// TravelerOnly reports whether only assigned-traveler shipments are wanted.
func (q ListShipmentsQuery) TravelerOnly() bool {
	return q.travelerOnly
}

// Page returns the 1-based page number.
func (q ListShipmentsQuery) Page() int {
	return q.page
}

// PageSize returns the page size.
func (q ListShipmentsQuery) PageSize() int {
	return q.pageSize
}
