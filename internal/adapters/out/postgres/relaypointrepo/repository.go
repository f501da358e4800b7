package relaypointrepo

import (
	"context"
	"errors"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/relaypoint"
	"docurgent/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRelayPointRepository implements RelayPointRepository using GORM.
type GormRelayPointRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRelayPointRepository creates a new GORM relay point repository.
func NewGormRelayPointRepository(db *gorm.DB, tracker aggregateTracker) *GormRelayPointRepository {
	return &GormRelayPointRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new relay point to the database.
func (r *GormRelayPointRepository) Add(ctx context.Context, aggregate *relaypoint.RelayPoint) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing relay point to the database.
func (r *GormRelayPointRepository) Update(ctx context.Context, aggregate *relaypoint.RelayPoint) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RelayPointDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("relay point", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a relay point by ID.
func (r *GormRelayPointRepository) Get(ctx context.Context, id kernel.UUID) (*relaypoint.RelayPoint, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RelayPointDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("relay point", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves all active relay points in registration order.
func (r *GormRelayPointRepository) GetAllActive(ctx context.Context) ([]*relaypoint.RelayPoint, error) {
	var dtos []RelayPointDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "active = ?", true).Error
	if err != nil {
		return nil, err
	}

	relayPoints := make([]*relaypoint.RelayPoint, 0, len(dtos))
	for _, dto := range dtos {
		rp, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		relayPoints = append(relayPoints, rp)
	}

	return relayPoints, nil
}
