package queries

import (
	"context"

	"docurgent/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// ListShipmentsQueryHandler retrieves the shipments a user participates in.
// Codes are never included in listings; they are only disclosed through the
// single-shipment query.
type ListShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewListShipmentsQueryHandler creates a handler for shipment listings.
// Requires a GORM database connection for query execution.
func NewListShipmentsQueryHandler(db *gorm.DB) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db}
}

// Handle executes the listing query. Results are ordered newest first and
// paginated with the query's page and page size.
func (h ListShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentsQuery,
) ([]GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT ` + shipmentColumns + `
		FROM shipments
		WHERE `
	args := make([]any, 0, 4)

	requesterID := query.Requester().ID().String()
	if query.TravelerOnly() {
		sql += `traveler_id = ?`
		args = append(args, requesterID)
	} else {
		sql += `(sender_id = ? OR traveler_id = ?)`
		args = append(args, requesterID, requesterID)
	}

	if query.Status() != shipment.StatusUnknown {
		sql += ` AND status = ?`
		args = append(args, query.Status().String())
	}

	sql += `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`
	args = append(args, query.PageSize(), (query.Page()-1)*query.PageSize())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]GetShipmentQueryResponse, 0)
	for rows.Next() {
		resp, scanErr := scanShipmentRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		resp.Codes = nil
		shipments = append(shipments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
