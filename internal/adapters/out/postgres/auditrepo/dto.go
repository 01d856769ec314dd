// Package auditrepo persists the append-only audit trail. Changes are stored
// as JSONB, so numbers come back as float64.
package auditrepo

import (
	"time"

	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type EntryDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Seq          int64          `gorm:"autoIncrement;uniqueIndex"`
	Timestamp    time.Time      `gorm:"not null;index"`
	ActorID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	ActorRole    string         `gorm:"type:varchar(16);not null"`
	Action       string         `gorm:"type:varchar(64);not null;index"`
	ResourceType string         `gorm:"type:varchar(32);not null"`
	ResourceID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Changes      map[string]any `gorm:"type:jsonb;serializer:json;not null"`
}

func (EntryDTO) TableName() string {
	return "audit_entries"
}

func fromDomain(e *audit.Entry) EntryDTO {
	return EntryDTO{
		ID:           e.ID().Bytes(),
		Timestamp:    e.Timestamp(),
		ActorID:      e.Actor().ID.Bytes(),
		ActorRole:    string(e.Actor().Role),
		Action:       e.Action().String(),
		ResourceType: string(e.ResourceType()),
		ResourceID:   e.ResourceID().Bytes(),
		Changes:      e.Changes(),
	}
}

func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}
	role, err := audit.ParseRole(dto.ActorRole)
	if err != nil {
		return nil, err
	}
	resourceID, err := kernel.UUIDFromBytes(dto.ResourceID[:])
	if err != nil {
		return nil, err
	}
	return audit.RestoreEntry(
		id,
		dto.Timestamp.UTC(),
		audit.Actor{ID: actorID, Role: role},
		audit.Action(dto.Action),
		audit.ResourceType(dto.ResourceType),
		resourceID,
		dto.Changes,
	)
}
