package http

import (
	"time"

	"docurgent/internal/core/application/usecases/queries"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/relaypoint"
	"docurgent/internal/core/domain/model/shipment"
)

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateShipmentRequest is the body of POST /shipments.
type CreateShipmentRequest struct {
	SenderName         string `json:"sender_name"`
	SenderPhone        string `json:"sender_phone"`
	SourceAddress      string `json:"source_address"`
	RecipientName      string `json:"recipient_name"`
	RecipientPhone     string `json:"recipient_phone"`
	DestinationAddress string `json:"destination_address"`
	DocumentType       string `json:"document_type"`
	Description        string `json:"description"`
	OfferedPrice       string `json:"offered_price"`
}

// AssignTravelerRequest is the body of POST /shipments/:id/assign-traveler.
type AssignTravelerRequest struct {
	TravelerID string `json:"traveler_id"`
	TripID     string `json:"trip_id"`
}

// CancelShipmentRequest is the body of POST /shipments/:id/cancel.
type CancelShipmentRequest struct {
	Reason string `json:"reason"`
}

// CheckInRequest is the body of POST /relay-points/check-in. The shipment is
// identified by its unique code, not by ID: the operator only holds the code.
type CheckInRequest struct {
	UniqueCode string `json:"unique_code"`
	Notes      string `json:"notes"`
}

// VerifyTravelerRequest is the body of POST /relay-points/verify-traveler.
type VerifyTravelerRequest struct {
	ShipmentID   string `json:"shipment_id"`
	TravelerCode string `json:"traveler_code"`
}

// HandoffRequest is the body of POST /relay-points/handoff.
type HandoffRequest struct {
	ShipmentID   string `json:"shipment_id"`
	TravelerCode string `json:"traveler_code"`
	Notes        string `json:"notes"`
}

// PickupRequest is the body of POST /travelers/pickup.
type PickupRequest struct {
	ShipmentID   string `json:"shipment_id"`
	TravelerCode string `json:"traveler_code"`
	Notes        string `json:"notes"`
}

// DeliverRequest is the body of POST /travelers/deliver.
type DeliverRequest struct {
	ShipmentID   string `json:"shipment_id"`
	DeliveryCode string `json:"delivery_code"`
	Notes        string `json:"notes"`
}

// RegisterRelayPointRequest is the body of POST /relay-points.
type RegisterRelayPointRequest struct {
	LocationName string   `json:"location_name"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	PostalCode   string   `json:"postal_code"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
}

// ShipmentCodes carries the three verification codes. Only ever serialized
// for the sender and admins.
type ShipmentCodes struct {
	UniqueCode   string `json:"unique_code"`
	DeliveryCode string `json:"delivery_code"`
	TravelerCode string `json:"traveler_code"`
}

// Shipment is the API representation of a shipment.
type Shipment struct {
	ID                 string         `json:"id"`
	SenderID           string         `json:"sender_id"`
	SenderName         string         `json:"sender_name"`
	SenderPhone        string         `json:"sender_phone"`
	SourceAddress      string         `json:"source_address"`
	RecipientName      string         `json:"recipient_name"`
	RecipientPhone     string         `json:"recipient_phone"`
	DestinationAddress string         `json:"destination_address"`
	DocumentType       string         `json:"document_type"`
	Description        string         `json:"description"`
	TravelerID         *string        `json:"traveler_id,omitempty"`
	TripID             *string        `json:"trip_id,omitempty"`
	RelayPointID       *string        `json:"relay_point_id,omitempty"`
	Status             string         `json:"status"`
	OfferedPrice       string         `json:"offered_price"`
	Codes              *ShipmentCodes `json:"codes,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	CompletedAt        *time.Time     `json:"completed_at,omitempty"`
	CompletedBy        *string        `json:"completed_by,omitempty"`
}

// RelayPoint is the API representation of a relay point.
type RelayPoint struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	LocationName string    `json:"location_name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	PostalCode   string    `json:"postal_code"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Verified     bool      `json:"verified"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// TimelineStep is one entry of a shipment's delivery history.
type TimelineStep struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completed_at"`
	ActorID     *string   `json:"actor_id,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// VerifyTravelerResponse reports the result of a traveler code check.
type VerifyTravelerResponse struct {
	ShipmentID string `json:"shipment_id"`
	Verified   bool   `json:"verified"`
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// shipmentFromAggregate maps a freshly written aggregate to the API shape.
// Used on the create path, where the sender must receive the minted codes.
func shipmentFromAggregate(s *shipment.Shipment) Shipment {
	return Shipment{
		ID:                 s.ID().String(),
		SenderID:           s.SenderID().String(),
		SenderName:         s.SenderName(),
		SenderPhone:        s.SenderPhone(),
		SourceAddress:      s.SourceAddress(),
		RecipientName:      s.RecipientName(),
		RecipientPhone:     s.RecipientPhone(),
		DestinationAddress: s.DestinationAddress(),
		DocumentType:       s.DocumentType().String(),
		Description:        s.Description(),
		TravelerID:         optionalID(s.TravelerID()),
		TripID:             optionalID(s.TripID()),
		RelayPointID:       optionalID(s.RelayPointID()),
		Status:             s.Status().String(),
		OfferedPrice:       s.OfferedPrice().Amount(),
		Codes: &ShipmentCodes{
			UniqueCode:   s.Codes().Unique().Value(),
			DeliveryCode: s.Codes().Delivery().Value(),
			TravelerCode: s.Codes().Traveler().Value(),
		},
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
		CompletedAt: s.CompletedAt(),
		CompletedBy: optionalID(s.CompletedBy()),
	}
}

// shipmentFromReadModel maps a query response to the API shape. The query
// layer already decided whether the codes are disclosed.
func shipmentFromReadModel(r queries.GetShipmentQueryResponse) Shipment {
	var codes *ShipmentCodes
	if r.Codes != nil {
		codes = &ShipmentCodes{
			UniqueCode:   r.Codes.UniqueCode,
			DeliveryCode: r.Codes.DeliveryCode,
			TravelerCode: r.Codes.TravelerCode,
		}
	}

	id := r.ID
	senderID := r.SenderID
	return Shipment{
		ID:                 id.String(),
		SenderID:           senderID.String(),
		SenderName:         r.SenderName,
		SenderPhone:        r.SenderPhone,
		SourceAddress:      r.SourceAddress,
		RecipientName:      r.RecipientName,
		RecipientPhone:     r.RecipientPhone,
		DestinationAddress: r.DestinationAddress,
		DocumentType:       r.DocumentType,
		Description:        r.Description,
		TravelerID:         optionalID(r.TravelerID),
		TripID:             optionalID(r.TripID),
		RelayPointID:       optionalID(r.RelayPointID),
		Status:             r.Status,
		OfferedPrice:       r.OfferedPrice,
		Codes:              codes,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		CompletedAt:        r.CompletedAt,
		CompletedBy:        optionalID(r.CompletedBy),
	}
}

func relayPointFromAggregate(rp *relaypoint.RelayPoint) RelayPoint {
	resp := RelayPoint{
		ID:           rp.ID().String(),
		UserID:       rp.UserID().String(),
		LocationName: rp.LocationName(),
		Address:      rp.Address(),
		City:         rp.City(),
		Country:      rp.Country(),
		PostalCode:   rp.PostalCode(),
		Phone:        rp.Phone(),
		Email:        rp.Email(),
		Verified:     rp.Verified(),
		Active:       rp.Active(),
		CreatedAt:    rp.CreatedAt(),
	}
	if geo := rp.Geo(); geo != nil {
		lat := geo.Latitude()
		lon := geo.Longitude()
		resp.Latitude = &lat
		resp.Longitude = &lon
	}
	return resp
}

func timelineFromReadModel(steps []queries.GetTimelineQueryResponse) []TimelineStep {
	response := make([]TimelineStep, len(steps))
	for i, step := range steps {
		id := step.ID
		response[i] = TimelineStep{
			ID:          id.String(),
			Name:        step.Name,
			Completed:   step.Completed,
			CompletedAt: step.CompletedAt,
			ActorID:     optionalID(step.ActorID),
			Notes:       step.Notes,
		}
	}
	return response
}
