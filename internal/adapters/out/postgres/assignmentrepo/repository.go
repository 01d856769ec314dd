package assignmentrepo

import (
	"context"
	"errors"
	"fmt"

	"brokerage/internal/adapters/out/postgres/pgerr"
	"brokerage/internal/core/domain/model/assignment"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add fails with request.ErrAssignmentExists when the request is already bound.
func (r *GormAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: request %s", request.ErrAssignmentExists, a.RequestID())
	}
	return pgerr.Classify("add assignment "+a.ID().String(), err)
}

// Update writes the status, the only mutable field.
func (r *GormAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", a.ID().Bytes()).
		Update("status", int(a.Status()))
	if result.Error != nil {
		return pgerr.Classify("update assignment "+a.ID().String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", a.ID().String())
	}
	return nil
}

func (r *GormAssignmentRepository) GetByRequest(ctx context.Context, requestID kernel.UUID) (*assignment.Assignment, error) {
	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "request_id = ?", requestID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", requestID.String())
		}
		return nil, pgerr.Classify("get assignment of "+requestID.String(), err)
	}
	return toDomain(dto)
}
