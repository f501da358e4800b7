package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment and its pending timeline entries. A unique index
// violation on the unique code surfaces as shipment.ErrUniqueCodeCollision so
// the caller can re-mint the code set and retry.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return shipment.ErrUniqueCodeCollision
		}
		return err
	}

	if err := r.insertPendingSteps(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment together with timeline entries recorded
// since it was loaded. The write is conditional on the stored status still
// being expectedStatus: the loser of a concurrent transition affects zero
// rows and gets shipment.ErrIllegalTransition.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment, expectedStatus shipment.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expectedStatus.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ? AND status = ?", dto.ID, expectedStatus.String()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.diagnoseConflict(ctx, aggregate.ID())
	}

	if err := r.insertPendingSteps(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// diagnoseConflict distinguishes a missing row from a lost status race.
func (r *GormShipmentRepository) diagnoseConflict(ctx context.Context, id kernel.UUID) error {
	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).Select("status").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("shipment", id.String())
		}
		return err
	}

	current, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return err
	}
	return shipment.NewIllegalTransitionError("update", current)
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByUniqueCode retrieves the shipment holding the given unique code.
func (r *GormShipmentRepository) GetByUniqueCode(ctx context.Context, code string) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "unique_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("unique_code", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatusUpdatedBefore retrieves shipments in the given status whose
// last update is older than the cutoff.
func (r *GormShipmentRepository) GetAllInStatusUpdatedBefore(ctx context.Context, status shipment.Status, cutoff time.Time) ([]*shipment.Shipment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND updated_at < ?", status.String(), cutoff).Error
	if err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

// GetTimeline retrieves a shipment's delivery steps ordered by completion
// time, oldest first.
func (r *GormShipmentRepository) GetTimeline(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.DeliveryStep, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryStepDTO
	err := r.db.WithContext(ctx).
		Order("completed_at, id").
		Find(&dtos, "shipment_id = ?", shipmentID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	steps := make([]*shipment.DeliveryStep, 0, len(dtos))
	for _, dto := range dtos {
		step, err := stepToDomain(dto)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return steps, nil
}

func (r *GormShipmentRepository) insertPendingSteps(ctx context.Context, aggregate *shipment.Shipment) error {
	pending := aggregate.PendingSteps()
	if len(pending) == 0 {
		return nil
	}

	dtos := make([]DeliveryStepDTO, 0, len(pending))
	for _, step := range pending {
		dtos = append(dtos, stepFromDomain(step))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
