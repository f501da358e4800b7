package queries

import (
	"context"

	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTimelineQueryHandler retrieves a shipment's delivery step history.
type GetTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetTimelineQueryHandler creates a handler for timeline queries.
// Requires a GORM database connection for query execution.
func NewGetTimelineQueryHandler(db *gorm.DB) GetTimelineQueryHandler {
	return GetTimelineQueryHandler{db: db}
}

// Handle executes the timeline query. Steps come back ordered by completion
// time, oldest first. Returns errs.ErrObjectNotFound when the shipment does
// not exist and ErrNotAuthorized when the requester may not see it.
func (h GetTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetTimelineQuery,
) ([]GetTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.authorize(ctx, query); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			completed,
			completed_at,
			actor_id,
			notes
		FROM delivery_steps
		WHERE shipment_id = ?
		ORDER BY completed_at, id
	`, query.ShipmentID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := make([]GetTimelineQueryResponse, 0)
	for rows.Next() {
		var (
			step    GetTimelineQueryResponse
			id      uuid.UUID
			actorID uuid.NullUUID
		)

		err = rows.Scan(
			&id,
			&step.Name,
			&step.Completed,
			&step.CompletedAt,
			&actorID,
			&step.Notes,
		)
		if err != nil {
			return nil, err
		}

		if step.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if step.ActorID, err = optionalUUID(actorID); err != nil {
			return nil, err
		}

		steps = append(steps, step)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return steps, nil
}

// authorize loads the shipment's participant columns and checks visibility.
func (h GetTimelineQueryHandler) authorize(ctx context.Context, query GetTimelineQuery) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT sender_id, traveler_id
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().String()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return err
		}
		return errs.NewObjectNotFoundError("shipment", query.ShipmentID())
	}

	var (
		senderID   uuid.UUID
		travelerID uuid.NullUUID
	)
	if err = rows.Scan(&senderID, &travelerID); err != nil {
		return err
	}

	// Participants and admins only, same rule as the shipment detail view.
	requester := query.Requester()
	if requester.Role() == actor.RoleAdmin {
		return nil
	}

	sender, err := kernel.UUIDFromBytes(senderID[:])
	if err != nil {
		return err
	}
	if sender.IsEqual(requester.ID()) {
		return nil
	}

	traveler, err := optionalUUID(travelerID)
	if err != nil {
		return err
	}
	if traveler != nil && traveler.IsEqual(requester.ID()) {
		return nil
	}

	return ErrNotAuthorized
}
