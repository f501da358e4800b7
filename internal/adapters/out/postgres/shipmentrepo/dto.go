// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. This package implements the repository pattern
// for the shipment aggregate, handling the conversion between domain entities
// and database representations.
package shipmentrepo

import (
	"time"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The unique code carries a unique index because it doubles as a
// lookup key at relay point check-in.
//
// Timestamps are domain-controlled: GORM's automatic time tracking is
// disabled so that updated_at reflects workflow transitions, which the
// auto-completion sweep relies on for staleness.
type ShipmentDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SenderID           uuid.UUID  `gorm:"type:uuid;index"`
	SenderName         string     `gorm:"size:255"`
	SenderPhone        string     `gorm:"size:32"`
	SourceAddress      string     `gorm:"size:512"`
	RecipientName      string     `gorm:"size:255"`
	RecipientPhone     string     `gorm:"size:32"`
	DestinationAddress string     `gorm:"size:512"`
	DocumentType       string     `gorm:"size:32"`
	Description        string     `gorm:"size:1024"`
	TravelerID         *uuid.UUID `gorm:"type:uuid;index"`
	TripID             *uuid.UUID `gorm:"type:uuid"`
	RelayPointID       *uuid.UUID `gorm:"type:uuid"`
	UniqueCode         string     `gorm:"size:8;uniqueIndex"`
	DeliveryCode       string     `gorm:"size:8"`
	TravelerCode       string     `gorm:"size:8"`
	Status             string     `gorm:"size:32;index"`
	OfferedPrice       string     `gorm:"size:32"`
	CreatedAt          time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime:false"`
	CompletedAt        *time.Time
	CompletedBy        *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// DeliveryStepDTO represents one persisted timeline entry. Steps are
// append-only; there is no update path for this table.
type DeliveryStepDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID  `gorm:"type:uuid;index"`
	Name        string     `gorm:"size:255"`
	Completed   bool
	CompletedAt time.Time  `gorm:"autoCreateTime:false"`
	ActorID     *uuid.UUID `gorm:"type:uuid"`
	Notes       string     `gorm:"size:1024"`
}

// TableName specifies the database table name for delivery step entities.
func (DeliveryStepDTO) TableName() string {
	return "delivery_steps"
}

// fromDomain converts a shipment domain aggregate to its database
// representation. Pending timeline entries are mapped separately via
// stepFromDomain.
func fromDomain(s *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:                 s.ID().Bytes(),
		SenderID:           s.SenderID().Bytes(),
		SenderName:         s.SenderName(),
		SenderPhone:        s.SenderPhone(),
		SourceAddress:      s.SourceAddress(),
		RecipientName:      s.RecipientName(),
		RecipientPhone:     s.RecipientPhone(),
		DestinationAddress: s.DestinationAddress(),
		DocumentType:       s.DocumentType().String(),
		Description:        s.Description(),
		TravelerID:         optionalBytes(s.TravelerID()),
		TripID:             optionalBytes(s.TripID()),
		RelayPointID:       optionalBytes(s.RelayPointID()),
		UniqueCode:         s.Codes().Unique().Value(),
		DeliveryCode:       s.Codes().Delivery().Value(),
		TravelerCode:       s.Codes().Traveler().Value(),
		Status:             s.Status().String(),
		OfferedPrice:       s.OfferedPrice().Amount(),
		CreatedAt:          s.CreatedAt(),
		UpdatedAt:          s.UpdatedAt(),
		CompletedAt:        s.CompletedAt(),
		CompletedBy:        optionalBytes(s.CompletedBy()),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate using
// RestoreShipment. The timeline is not loaded.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	travelerID, err := optionalUUID(dto.TravelerID)
	if err != nil {
		return nil, err
	}
	tripID, err := optionalUUID(dto.TripID)
	if err != nil {
		return nil, err
	}
	relayPointID, err := optionalUUID(dto.RelayPointID)
	if err != nil {
		return nil, err
	}
	completedBy, err := optionalUUID(dto.CompletedBy)
	if err != nil {
		return nil, err
	}

	documentType, err := shipment.DocumentTypeFromString(dto.DocumentType)
	if err != nil {
		return nil, err
	}
	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	codes, err := shipment.RestoreVerificationCodes(dto.UniqueCode, dto.DeliveryCode, dto.TravelerCode)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewPrice(dto.OfferedPrice)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:                 id,
		SenderID:           senderID,
		SenderName:         dto.SenderName,
		SenderPhone:        dto.SenderPhone,
		SourceAddress:      dto.SourceAddress,
		RecipientName:      dto.RecipientName,
		RecipientPhone:     dto.RecipientPhone,
		DestinationAddress: dto.DestinationAddress,
		DocumentType:       documentType,
		Description:        dto.Description,
		TravelerID:         travelerID,
		TripID:             tripID,
		RelayPointID:       relayPointID,
		Codes:              codes,
		Status:             status,
		OfferedPrice:       price,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
		CompletedAt:        dto.CompletedAt,
		CompletedBy:        completedBy,
	})
}

// stepFromDomain converts a delivery step to its database representation.
func stepFromDomain(step *shipment.DeliveryStep) DeliveryStepDTO {
	return DeliveryStepDTO{
		ID:          step.ID().Bytes(),
		ShipmentID:  step.ShipmentID().Bytes(),
		Name:        step.Name(),
		Completed:   step.Completed(),
		CompletedAt: step.CompletedAt(),
		ActorID:     optionalBytes(step.ActorID()),
		Notes:       step.Notes(),
	}
}

// stepToDomain converts a database DTO to a delivery step entity.
func stepToDomain(dto DeliveryStepDTO) (*shipment.DeliveryStep, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := optionalUUID(dto.ActorID)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreDeliveryStep(
		id,
		shipmentID,
		dto.Name,
		dto.Completed,
		dto.CompletedAt,
		actorID,
		dto.Notes,
	)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil //absent value
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
