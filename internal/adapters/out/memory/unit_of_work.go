package memory

import (
	"context"

	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/ports"
)

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() *UnitOfWork {
	return NewUnitOfWork(f.store)
}

// UnitOfWork stages writes until Commit. Without Begin every repository
// write runs in its own implicit transaction.
type UnitOfWork struct {
	store   *Store
	staged  *tables
	tracked []*request.ShipmentRequest
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.staged != nil {
		return nil
	}
	if err := u.store.acquire(ctx); err != nil {
		return err
	}
	u.staged = newTables()
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.staged == nil {
		return ErrInvalidTransaction
	}
	u.store.apply(u.staged)
	u.staged = nil
	u.store.release()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.staged == nil {
		return ErrInvalidTransaction
	}
	u.staged = nil
	u.tracked = nil
	u.store.release()
	return nil
}

func (u *UnitOfWork) RequestRepository() ports.RequestRepository       { return requestRepository{u} }
func (u *UnitOfWork) DriverRepository() ports.DriverRepository         { return driverRepository{u} }
func (u *UnitOfWork) VehicleRepository() ports.VehicleRepository       { return vehicleRepository{u} }
func (u *UnitOfWork) WarehouseRepository() ports.WarehouseRepository   { return warehouseRepository{u} }
func (u *UnitOfWork) AssignmentRepository() ports.AssignmentRepository { return assignmentRepository{u} }
func (u *UnitOfWork) AuditRepository() ports.AuditRepository           { return auditRepository{u} }

func (u *UnitOfWork) TrackedEvents() []request.Event {
	events := make([]request.Event, 0)
	for _, r := range u.tracked {
		events = append(events, r.PullEvents()...)
	}
	u.tracked = nil
	return events
}

func (u *UnitOfWork) track(r *request.ShipmentRequest) {
	for _, t := range u.tracked {
		if t == r {
			return
		}
	}
	u.tracked = append(u.tracked, r)
}

// write runs fn against the staged tables, opening an implicit transaction
// when none is active.
func (u *UnitOfWork) write(ctx context.Context, fn func(staged *tables) error) error {
	if u.staged != nil {
		return fn(u.staged)
	}
	if err := u.Begin(ctx); err != nil {
		return err
	}
	if err := fn(u.staged); err != nil {
		_ = u.Rollback(ctx)
		return err
	}
	return u.Commit(ctx)
}

// read runs fn with the staged tables (nil outside a transaction) and the
// committed tables under the read lock.
func (u *UnitOfWork) read(fn func(staged, base *tables) error) error {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	return fn(u.staged, u.store.base)
}
