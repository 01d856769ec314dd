// Package assignmentrepo persists driver and vehicle bindings. The unique
// index on request_id keeps a request to one assignment.
package assignmentrepo

import (
	"time"

	"brokerage/internal/core/domain/model/assignment"
	"brokerage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AssignmentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	DriverID  uuid.UUID `gorm:"type:uuid;not null;index"`
	VehicleID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    int       `gorm:"type:smallint;not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:        a.ID().Bytes(),
		RequestID: a.RequestID().Bytes(),
		DriverID:  a.DriverID().Bytes(),
		VehicleID: a.VehicleID().Bytes(),
		Status:    int(a.Status()),
		CreatedAt: a.CreatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.RequestID, dto.DriverID, dto.VehicleID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return assignment.RestoreAssignment(ids[0], ids[1], ids[2], ids[3], assignment.Status(dto.Status), dto.CreatedAt.UTC())
}
