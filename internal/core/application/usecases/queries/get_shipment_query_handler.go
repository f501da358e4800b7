package queries

import (
	"context"
	"database/sql"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// shipmentColumns is the select list shared by the shipment read handlers.
// Order must match scanShipmentRow.
const shipmentColumns = `
	id,
	sender_id,
	sender_name,
	sender_phone,
	source_address,
	recipient_name,
	recipient_phone,
	destination_address,
	document_type,
	description,
	traveler_id,
	trip_id,
	relay_point_id,
	unique_code,
	delivery_code,
	traveler_code,
	status,
	offered_price,
	created_at,
	updated_at,
	completed_at,
	completed_by`

// GetShipmentQueryHandler retrieves a single shipment read model from the
// database and enforces participant-level visibility.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for single-shipment queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no shipment
// has the given identifier and ErrNotAuthorized when the requester is neither
// a participant nor an admin. Verification codes are stripped from the
// response unless the requester is the sender or an admin.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+shipmentColumns+`
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().String()).Rows()
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetShipmentQueryResponse{}, err
		}
		return GetShipmentQueryResponse{},
			errs.NewObjectNotFoundError("shipment", query.ShipmentID())
	}

	resp, err := scanShipmentRow(rows)
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if !canViewShipment(query.Requester(), resp) {
		return GetShipmentQueryResponse{}, ErrNotAuthorized
	}
	if !canViewCodes(query.Requester(), resp) {
		resp.Codes = nil
	}

	return resp, nil
}

// canViewShipment restricts reads to the shipment's own participants plus
// admins. Relay operators get no blanket grant: their check-in flow addresses
// shipments by unique code and never needs to browse contact details.
func canViewShipment(requester actor.Actor, resp GetShipmentQueryResponse) bool {
	if requester.Role() == actor.RoleAdmin {
		return true
	}
	if resp.SenderID.IsEqual(requester.ID()) {
		return true
	}
	return resp.TravelerID != nil && resp.TravelerID.IsEqual(requester.ID())
}

func canViewCodes(requester actor.Actor, resp GetShipmentQueryResponse) bool {
	return requester.Role() == actor.RoleAdmin || resp.SenderID.IsEqual(requester.ID())
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanShipmentRow reads one shipments row in shipmentColumns order.
func scanShipmentRow(row rowScanner) (GetShipmentQueryResponse, error) {
	var (
		resp        GetShipmentQueryResponse
		id          uuid.UUID
		senderID    uuid.UUID
		travelerID  uuid.NullUUID
		tripID      uuid.NullUUID
		relayID     uuid.NullUUID
		codes       ShipmentCodes
		completedAt sql.NullTime
		completedBy uuid.NullUUID
	)

	err := row.Scan(
		&id,
		&senderID,
		&resp.SenderName,
		&resp.SenderPhone,
		&resp.SourceAddress,
		&resp.RecipientName,
		&resp.RecipientPhone,
		&resp.DestinationAddress,
		&resp.DocumentType,
		&resp.Description,
		&travelerID,
		&tripID,
		&relayID,
		&codes.UniqueCode,
		&codes.DeliveryCode,
		&codes.TravelerCode,
		&resp.Status,
		&resp.OfferedPrice,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&completedAt,
		&completedBy,
	)
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.SenderID, err = kernel.UUIDFromBytes(senderID[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.TravelerID, err = optionalUUID(travelerID); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.TripID, err = optionalUUID(tripID); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.RelayPointID, err = optionalUUID(relayID); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.CompletedBy, err = optionalUUID(completedBy); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		resp.CompletedAt = &t
	}
	resp.Codes = &codes

	return resp, nil
}

func optionalUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil //nolint:nilnil //absent value
	}

	id, err := kernel.UUIDFromBytes(v.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
