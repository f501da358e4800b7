// Package relaypointrepo provides data transfer objects and mapping functions
// for relay point persistence.
package relaypointrepo

import (
	"time"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/relaypoint"

	"github.com/google/uuid"
)

// RelayPointDTO represents the database structure for persisting relay point
// aggregates. Coordinates are nullable because not every location is
// geocoded.
type RelayPointDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;index"`
	LocationName string    `gorm:"size:255"`
	Address      string    `gorm:"size:512"`
	City         string    `gorm:"size:128"`
	Country      string    `gorm:"size:128"`
	PostalCode   string    `gorm:"size:32"`
	Latitude     *float64
	Longitude    *float64
	Phone        string    `gorm:"size:32"`
	Email        string    `gorm:"size:255"`
	Verified     bool
	Active       bool      `gorm:"index"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for relay point entities.
func (RelayPointDTO) TableName() string {
	return "relay_points"
}

// fromDomain converts a relay point aggregate to its database representation.
func fromDomain(rp *relaypoint.RelayPoint) RelayPointDTO {
	dto := RelayPointDTO{
		ID:           rp.ID().Bytes(),
		UserID:       rp.UserID().Bytes(),
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
		UpdatedAt:    rp.UpdatedAt(),
	}

	if geo := rp.Geo(); geo != nil {
		lat, lon := geo.Latitude(), geo.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

// toDomain converts a database DTO to a relay point aggregate using
// RestoreRelayPoint.
func toDomain(dto RelayPointDTO) (*relaypoint.RelayPoint, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var geo *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		g, geoErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if geoErr != nil {
			return nil, geoErr
		}
		geo = &g
	}

	return relaypoint.RestoreRelayPoint(relaypoint.RestoreRelayPointParams{
		NewRelayPointParams: relaypoint.NewRelayPointParams{
			ID:           id,
			UserID:       userID,
			LocationName: dto.LocationName,
			Address:      dto.Address,
			City:         dto.City,
			Country:      dto.Country,
			PostalCode:   dto.PostalCode,
			Geo:          geo,
			Phone:        dto.Phone,
			Email:        dto.Email,
		},
		Verified:  dto.Verified,
		Active:    dto.Active,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
