package audit

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")

// Role is the kind of party that triggered a mutation.
type Role string

const (
	RoleClient   Role = "client"
	RoleCompany  Role = "company"
	RoleOperator Role = "operator"
	RoleDriver   Role = "driver"
	RoleSystem   Role = "system"
)

func (r Role) Validate() error {
	switch r {
	case RoleClient, RoleCompany, RoleOperator, RoleDriver, RoleSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("actor role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Actor identifies who triggered a mutation. Authentication happens outside
// the engine; the actor is taken as given.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

func (a Actor) Validate() error {
	return errors.Join(a.ID.Validate(), a.Role.Validate())
}

func (a Actor) String() string {
	return string(a.Role) + ":" + a.ID.String()
}

type ResourceType string

const (
	ResourceRequest    ResourceType = "shipment_request"
	ResourceOffer      ResourceType = "cost_offer"
	ResourceAssignment ResourceType = "assignment"
	ResourceDriver     ResourceType = "driver"
	ResourceVehicle    ResourceType = "vehicle"
	ResourceWarehouse  ResourceType = "warehouse"
)

// Entry is an immutable record of one logical mutation.
type Entry struct {
	id           kernel.UUID
	timestamp    time.Time
	actor        Actor
	action       Action
	resourceType ResourceType
	resourceID   kernel.UUID
	changes      map[string]any
	guard        guard.ConstructorGuard
}

// NewEntry builds an entry. The changes map is copied so later edits by the
// caller do not leak into the record.
func NewEntry(
	id kernel.UUID,
	at time.Time,
	actor Actor,
	action Action,
	resourceType ResourceType,
	resourceID kernel.UUID,
	changes map[string]any,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		actor.Validate(),
		action.Validate(),
		resourceID.Validate(),
	); err != nil {
		return nil, err
	}
	if resourceType == "" {
		return nil, errs.NewValueIsRequiredError("resource type")
	}
	if changes == nil {
		changes = map[string]any{}
	}
	return &Entry{
		id:           id,
		timestamp:    at.UTC(),
		actor:        actor,
		action:       action,
		resourceType: resourceType,
		resourceID:   resourceID,
		changes:      maps.Clone(changes),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreEntry rehydrates a persisted entry.
func RestoreEntry(
	id kernel.UUID,
	at time.Time,
	actor Actor,
	action Action,
	resourceType ResourceType,
	resourceID kernel.UUID,
	changes map[string]any,
) (*Entry, error) {
	return NewEntry(id, at, actor, action, resourceType, resourceID, changes)
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID            { return e.id }
func (e *Entry) Timestamp() time.Time       { return e.timestamp }
func (e *Entry) Actor() Actor               { return e.actor }
func (e *Entry) Action() Action             { return e.action }
func (e *Entry) ResourceType() ResourceType { return e.resourceType }
func (e *Entry) ResourceID() kernel.UUID    { return e.resourceID }
func (e *Entry) Changes() map[string]any    { return maps.Clone(e.changes) }

// Filter selects audit entries. Zero fields match everything; From is
// inclusive and To exclusive.
type Filter struct {
	Action     Action
	ActorID    *kernel.UUID
	ResourceID *kernel.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
}

// Matches reports whether e passes every set criterion.
func (f Filter) Matches(e *Entry) bool {
	if f.Action != "" && e.action != f.Action {
		return false
	}
	if f.ActorID != nil && !e.actor.ID.IsEqual(*f.ActorID) {
		return false
	}
	if f.ResourceID != nil && !e.resourceID.IsEqual(*f.ResourceID) {
		return false
	}
	if f.From != nil && e.timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && !e.timestamp.Before(*f.To) {
		return false
	}
	return true
}
