package requestrepo

import (
	"context"
	"errors"
	"fmt"

	"brokerage/internal/adapters/out/postgres/pgerr"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRequestRepository implements RequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRequestRepository creates a new GORM request repository.
func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new request with all of its child rows.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.ShipmentRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify("add shipment request "+aggregate.ID().String(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the request when the stored version equals the aggregate's
// version and then advances the aggregate. Items never change after
// creation; offers are upserted while history and exclusions are append-only.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.ShipmentRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1
	op := "update shipment request " + aggregate.ID().String()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ShipmentRequestDTO{}).
			Where("id = ? AND version = ?", dto.ID, expected).
			Select("*").
			Omit(clause.Associations, "id", "client_id", "created_at").
			Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.missOrStale(tx, dto.ID, expected)
		}

		if len(dto.CostOffers) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"status"}),
			}).Create(&dto.CostOffers).Error; err != nil {
				return err
			}
		}
		if len(dto.StatusEvents) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.StatusEvents).Error; err != nil {
				return err
			}
		}
		if len(dto.Exclusions) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Exclusions).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return pgerr.Classify(op, err)
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRequestRepository) missOrStale(tx *gorm.DB, id uuid.UUID, expected int64) error {
	var stored int64
	err := tx.Model(&ShipmentRequestDTO{}).Select("version").Where("id = ?", id).Take(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("shipment request", id.String())
	}
	if err != nil {
		return err
	}
	return errs.NewConflictErrorWithCause("shipment request "+id.String(),
		fmt.Errorf("version %d is stale, stored %d", expected, stored))
}

// Get retrieves a request by ID with all child rows.
func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.ShipmentRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentRequestDTO
	if err := withChildren(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment request", id.String())
		}
		return nil, pgerr.Classify("get shipment request "+id.String(), err)
	}

	return toDomain(dto)
}

// ListPendingFor returns Pending requests the company has not declined,
// oldest first. A non-positive limit means no limit.
func (r *GormRequestRepository) ListPendingFor(
	ctx context.Context,
	companyID kernel.UUID,
	limit int,
) ([]*request.ShipmentRequest, error) {
	excluded := r.db.Model(&ExclusionDTO{}).
		Select("1").
		Where("request_exclusions.request_id = shipment_requests.id AND request_exclusions.company_id = ?", companyID.Bytes())

	q := withChildren(r.db.WithContext(ctx)).
		Where("commercial_status = ?", int(request.CommercialPending)).
		Where("NOT EXISTS (?)", excluded).
		Order("created_at, id")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var dtos []ShipmentRequestDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, pgerr.Classify("list company queue", err)
	}
	return toDomainAll(dtos)
}

// ListIDs returns every request id in creation order.
func (r *GormRequestRepository) ListIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&ShipmentRequestDTO{}).
		Order("created_at, id").
		Pluck("id", &raw).Error; err != nil {
		return nil, pgerr.Classify("list request ids", err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, err := kernel.UUIDFromBytes(b[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("CostOffers", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("StatusEvents", func(db *gorm.DB) *gorm.DB { return db.Order("track, seq") }).
		Preload("Exclusions")
}

func toDomainAll(dtos []ShipmentRequestDTO) ([]*request.ShipmentRequest, error) {
	out := make([]*request.ShipmentRequest, 0, len(dtos))
	for _, dto := range dtos {
		r, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
