package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"brokerage/internal/adapters/out/memory"
	"brokerage/internal/core/domain/model/assignment"
	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/core/domain/model/resource"
	"brokerage/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	egypt = kernel.MustNewCountry("Egypt")
	now   = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
)

func newRequest(t *testing.T) *request.ShipmentRequest {
	t.Helper()
	addr, err := kernel.NewAddress(egypt, "Cairo", "", "")
	require.NoError(t, err)
	ep, err := request.NewEndpoint(addr, request.PickupDelegate)
	require.NoError(t, err)
	dims, err := request.NewDimensions(decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(1))
	require.NoError(t, err)
	item, err := request.NewItem(decimal.NewFromInt(2), dims, "books", 1)
	require.NoError(t, err)
	r, err := request.NewShipmentRequest(kernel.NewUUID(), kernel.NewUUID(), ep, ep,
		[]request.Item{item}, request.DeliveryKindNormal, now)
	require.NoError(t, err)
	return r
}

func TestUnitOfWork_CommitMakesWritesVisible(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	req := newRequest(t)

	uow := memory.NewUnitOfWork(store)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.RequestRepository().Add(ctx, req))

	_, err := store.GetRequest(ctx, req.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound, "staged write must stay private")

	got, err := uow.RequestRepository().Get(ctx, req.ID())
	require.NoError(t, err)
	assert.Equal(t, req.ID(), got.ID())

	require.NoError(t, uow.Commit(ctx))

	stored, err := store.GetRequest(ctx, req.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version())

	events := uow.TrackedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, request.EventRequestCreated, events[0].Kind)
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	req := newRequest(t)

	uow := memory.NewUnitOfWork(store)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.RequestRepository().Add(ctx, req))
	require.NoError(t, uow.Rollback(ctx))

	_, err := store.GetRequest(ctx, req.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, uow.TrackedEvents())

	require.ErrorIs(t, uow.Rollback(ctx), memory.ErrInvalidTransaction)
	require.ErrorIs(t, uow.Commit(ctx), memory.ErrInvalidTransaction)
}

func TestRequestRepository_StaleVersionConflicts(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	req := newRequest(t)
	require.NoError(t, memory.NewUnitOfWork(store).RequestRepository().Add(ctx, req))

	first, err := store.GetRequest(ctx, req.ID())
	require.NoError(t, err)
	second, err := store.GetRequest(ctx, req.ID())
	require.NoError(t, err)

	_, err = first.SubmitOffer(kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(10), "", now)
	require.NoError(t, err)
	require.NoError(t, memory.NewUnitOfWork(store).RequestRepository().Update(ctx, first))
	assert.Equal(t, int64(2), first.Version())

	_, err = second.SubmitOffer(kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(12), "", now)
	require.NoError(t, err)
	err = memory.NewUnitOfWork(store).RequestRepository().Update(ctx, second)

	require.ErrorIs(t, err, errs.ErrConflict)
	stored, err := store.GetRequest(ctx, req.ID())
	require.NoError(t, err)
	assert.Len(t, stored.CostOffers(), 1)
}

func TestVehicleRepository_ConcurrentCompareAndSwap(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	v, err := resource.NewVehicle(kernel.NewUUID(), "eg-1", egypt, nil)
	require.NoError(t, err)
	require.NoError(t, memory.NewUnitOfWork(store).VehicleRepository().Add(ctx, v))

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := memory.NewUnitOfWork(store)
			if err := uow.Begin(ctx); err != nil {
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			err := uow.VehicleRepository().CompareAndSwapStatus(ctx, v.ID(), resource.VehicleAvailable, resource.VehicleInUse)
			if err == nil {
				err = uow.Commit(ctx)
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errs.KindOf(err) == errs.KindConflict:
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, conflicts)

	got, err := memory.NewUnitOfWork(store).VehicleRepository().Get(ctx, v.ID())
	require.NoError(t, err)
	assert.Equal(t, resource.VehicleInUse, got.Status())
}

func TestUnitOfWork_BeginHonoursContext(t *testing.T) {
	store := memory.NewStore()
	holder := memory.NewUnitOfWork(store)
	require.NoError(t, holder.Begin(t.Context()))
	defer func() { _ = holder.Rollback(t.Context()) }()

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	err := memory.NewUnitOfWork(store).Begin(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAssignmentRepository_OnePerRequest(t *testing.T) {
	ctx := t.Context()
	uow := memory.NewUnitOfWork(memory.NewStore())
	requestID := kernel.NewUUID()

	a, err := assignment.NewAssignment(kernel.NewUUID(), requestID, kernel.NewUUID(), kernel.NewUUID(), now)
	require.NoError(t, err)
	require.NoError(t, uow.AssignmentRepository().Add(ctx, a))

	b, err := assignment.NewAssignment(kernel.NewUUID(), requestID, kernel.NewUUID(), kernel.NewUUID(), now)
	require.NoError(t, err)
	err = uow.AssignmentRepository().Add(ctx, b)

	require.ErrorIs(t, err, request.ErrAssignmentExists)
	got, err := uow.AssignmentRepository().GetByRequest(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, a.ID(), got.ID())
}

func TestStore_ReadModel(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	uow := memory.NewUnitOfWork(store)

	older, newer, declined := newRequest(t), newRequest(t), newRequest(t)
	company := kernel.NewUUID()
	_, err := declined.Decline(company, now)
	require.NoError(t, err)
	for _, r := range []*request.ShipmentRequest{newer, declined, older} {
		require.NoError(t, uow.RequestRepository().Add(ctx, r))
	}

	t.Run("queue skips declined requests", func(t *testing.T) {
		queue, err := store.CompanyQueue(ctx, company, 0)
		require.NoError(t, err)
		assert.Len(t, queue, 2)

		queue, err = store.CompanyQueue(ctx, company, 1)
		require.NoError(t, err)
		assert.Len(t, queue, 1)
	})

	t.Run("request ids keep insertion order", func(t *testing.T) {
		ids, err := store.RequestIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{newer.ID(), declined.ID(), older.ID()}, ids)
	})

	t.Run("audit log filters by action", func(t *testing.T) {
		actor, err := audit.NewActor(kernel.NewUUID(), audit.RoleOperator)
		require.NoError(t, err)
		for i, action := range []audit.Action{audit.ActionDriverAdded, audit.ActionVehicleAdded, audit.ActionDriverAdded} {
			e, err := audit.NewEntry(kernel.NewUUID(), now.Add(time.Duration(i)*time.Minute), actor, action,
				audit.ResourceDriver, kernel.NewUUID(), nil)
			require.NoError(t, err)
			require.NoError(t, uow.AuditRepository().Append(ctx, e))
		}

		entries, err := store.AuditLog(ctx, audit.Filter{Action: audit.ActionDriverAdded})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].Timestamp().Before(entries[1].Timestamp()))
	})
}
