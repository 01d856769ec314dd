// Package memory is an in-process ledger store. It keeps the transactional
// guarantees of the PostgreSQL adapter: writes of a unit of work are staged
// and applied together on Commit, and units of work run one at a time, so a
// vehicle compare-and-swap can never interleave with another writer.
package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"brokerage/internal/core/domain/model/assignment"
	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/pkg/errs"
)

var ErrInvalidTransaction = errors.New("memory: no active transaction")

type tables struct {
	requests     map[kernel.UUID]request.Snapshot
	requestOrder []kernel.UUID
	drivers      map[kernel.UUID]*resource.Driver
	vehicles     map[kernel.UUID]*resource.Vehicle
	warehouses   map[kernel.UUID]*resource.Warehouse
	assignments  map[kernel.UUID]*assignment.Assignment // by request id
	audit        []*audit.Entry
}

func newTables() *tables {
	return &tables{
		requests:    map[kernel.UUID]request.Snapshot{},
		drivers:     map[kernel.UUID]*resource.Driver{},
		vehicles:    map[kernel.UUID]*resource.Vehicle{},
		warehouses:  map[kernel.UUID]*resource.Warehouse{},
		assignments: map[kernel.UUID]*assignment.Assignment{},
	}
}

// Store holds the committed state.
type Store struct {
	mu   sync.RWMutex
	base *tables
	// writers holds one token per running unit of work.
	writers chan struct{}
}

func NewStore() *Store {
	return &Store{
		base:    newTables(),
		writers: make(chan struct{}, 1),
	}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.writers <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.writers
}

func (s *Store) apply(staged *tables) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, snap := range staged.requests {
		s.base.requests[id] = snap
	}
	s.base.requestOrder = append(s.base.requestOrder, staged.requestOrder...)
	for id, d := range staged.drivers {
		s.base.drivers[id] = d
	}
	for id, v := range staged.vehicles {
		s.base.vehicles[id] = v
	}
	for id, w := range staged.warehouses {
		s.base.warehouses[id] = w
	}
	for id, a := range staged.assignments {
		s.base.assignments[id] = a
	}
	s.base.audit = append(s.base.audit, staged.audit...)
}

// GetRequest reads committed state.
func (s *Store) GetRequest(_ context.Context, id kernel.UUID) (*request.ShipmentRequest, error) {
	s.mu.RLock()
	snap, ok := s.base.requests[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment request", id.String())
	}
	return request.RestoreShipmentRequest(snap)
}

func (s *Store) CompanyQueue(ctx context.Context, companyID kernel.UUID, limit int) ([]*request.ShipmentRequest, error) {
	s.mu.RLock()
	matches := make([]request.Snapshot, 0)
	for _, snap := range s.base.requests {
		if snap.CommercialStatus == request.CommercialPending && !slices.ContainsFunc(snap.ExcludedCompanies, companyID.IsEqual) {
			matches = append(matches, snap)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matches, func(a, b request.Snapshot) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]*request.ShipmentRequest, 0, len(matches))
	for _, snap := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := request.RestoreShipmentRequest(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) DriversIn(_ context.Context, country kernel.Country) ([]*resource.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return driversIn(s.base.drivers, nil, country), nil
}

func (s *Store) AvailableVehiclesIn(_ context.Context, country kernel.Country) ([]*resource.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return availableVehiclesIn(s.base.vehicles, nil, country)
}

func (s *Store) AuditLog(_ context.Context, filter audit.Filter) ([]*audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterAudit(s.base.audit, filter), nil
}

func (s *Store) RequestIDs(_ context.Context) ([]kernel.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.base.requestOrder), nil
}

func driversIn(base, staged map[kernel.UUID]*resource.Driver, country kernel.Country) []*resource.Driver {
	out := make([]*resource.Driver, 0)
	for id, d := range base {
		if _, shadowed := staged[id]; !shadowed && d.HasAddressIn(country) {
			out = append(out, d)
		}
	}
	for _, d := range staged {
		if d.HasAddressIn(country) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b *resource.Driver) int {
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return out
}

func availableVehiclesIn(base, staged map[kernel.UUID]*resource.Vehicle, country kernel.Country) ([]*resource.Vehicle, error) {
	out := make([]*resource.Vehicle, 0)
	add := func(v *resource.Vehicle) error {
		if !v.IsAvailable() || !v.OperatesIn(country) {
			return nil
		}
		c, err := cloneVehicle(v, v.Status())
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	}

	for id, v := range base {
		if _, shadowed := staged[id]; shadowed {
			continue
		}
		if err := add(v); err != nil {
			return nil, err
		}
	}
	for _, v := range staged {
		if err := add(v); err != nil {
			return nil, err
		}
	}
	slices.SortFunc(out, func(a, b *resource.Vehicle) int {
		return strings.Compare(a.Plate(), b.Plate())
	})
	return out, nil
}

func filterAudit(entries []*audit.Entry, filter audit.Filter) []*audit.Entry {
	out := make([]*audit.Entry, 0)
	for _, e := range entries {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b *audit.Entry) int {
		return a.Timestamp().Compare(b.Timestamp())
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

func cloneVehicle(v *resource.Vehicle, status resource.VehicleStatus) (*resource.Vehicle, error) {
	return resource.RestoreVehicle(v.ID(), v.Plate(), v.Country(), status, v.Rules())
}

func cloneWarehouse(w *resource.Warehouse) (*resource.Warehouse, error) {
	return resource.RestoreWarehouse(w.ID(), w.CompanyID(), w.Name(), w.Address(), w.Capacity(), w.CurrentStock(), w.Status())
}

func cloneAssignment(a *assignment.Assignment) (*assignment.Assignment, error) {
	return assignment.RestoreAssignment(a.ID(), a.RequestID(), a.DriverID(), a.VehicleID(), a.Status(), a.CreatedAt())
}
