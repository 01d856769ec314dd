package auditrepo

import (
	"context"

	"brokerage/internal/adapters/out/postgres/pgerr"
	"brokerage/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM. It never
// updates or deletes rows.
type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	dto := fromDomain(entry)
	return pgerr.Classify("append audit entry", r.db.WithContext(ctx).Omit("seq").Create(&dto).Error)
}

// List returns matching entries ordered by timestamp, then insertion order.
func (r *GormAuditRepository) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, error) {
	q := r.db.WithContext(ctx).Model(&EntryDTO{})
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action.String())
	}
	if filter.ActorID != nil {
		q = q.Where("actor_id = ?", filter.ActorID.Bytes())
	}
	if filter.ResourceID != nil {
		q = q.Where("resource_id = ?", filter.ResourceID.Bytes())
	}
	if filter.From != nil {
		q = q.Where("timestamp >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("timestamp < ?", filter.To.UTC())
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var dtos []EntryDTO
	if err := q.Order("timestamp, seq").Find(&dtos).Error; err != nil {
		return nil, pgerr.Classify("list audit entries", err)
	}

	out := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
