package commands_test

import (
	"errors"
	"testing"
	"time"

	"brokerage/internal/core/application/usecases/commands"
	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	egypt  = kernel.MustNewCountry("Egypt")
	jordan = kernel.MustNewCountry("Jordan")
	clock  = func() time.Time { return time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC) }
)

func pendingRequest(t *testing.T) *request.ShipmentRequest {
	t.Helper()
	src, err := kernel.NewAddress(egypt, "Cairo", "", "")
	require.NoError(t, err)
	dst, err := kernel.NewAddress(jordan, "Amman", "", "")
	require.NoError(t, err)
	source, err := request.NewEndpoint(src, request.PickupDelegate)
	require.NoError(t, err)
	destination, err := request.NewEndpoint(dst, request.PickupDelegate)
	require.NoError(t, err)
	dims, err := request.NewDimensions(decimal.NewFromInt(20), decimal.NewFromInt(20), decimal.NewFromInt(20))
	require.NoError(t, err)
	item, err := request.NewItem(decimal.NewFromInt(4), dims, "books", 2)
	require.NoError(t, err)

	r, err := request.NewShipmentRequest(kernel.NewUUID(), kernel.NewUUID(), source, destination,
		[]request.Item{item}, request.DeliveryKindNormal, clock())
	require.NoError(t, err)
	r.PullEvents()
	return r
}

func TestNewSubmitOfferCommand(t *testing.T) {
	_, err := commands.NewSubmitOfferCommand(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(10), "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewSubmitOfferCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.Money{}, "")
	require.ErrorIs(t, err, request.ErrInvalidCost)

	err = commands.SubmitOfferCommand{}.Validate()
	require.ErrorIs(t, err, commands.ErrSubmitOfferCommandIsNotConstructed)
}

func TestSubmitOfferCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	req := pendingRequest(t)
	company := kernel.NewUUID()
	cmd, err := commands.NewSubmitOfferCommand(req.ID(), kernel.NewUUID(), company, kernel.MustMoney(100), "two trucks")
	require.NoError(t, err)

	repo := new(MockRequestRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockRequestUoW)
	publisher := new(MockPublisher)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("Get", ctx, req.ID()).Return(req, nil).Once(),
		repo.On("Update", ctx, req).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", ctx, mock.MatchedBy(func(e *audit.Entry) bool {
			return e.Action() == audit.ActionCostOfferSubmitted &&
				e.Actor().ID == company &&
				e.Actor().Role == audit.RoleCompany &&
				e.Changes()["cost"] == "100.00"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("TrackedEvents").Return(nil).Once(),
	)
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOfferCommandHandler(factory, commands.Deps{Publisher: publisher, Clock: clock})
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, req.CostOffers(), 1)
	assert.Equal(t, company, req.CostOffers()[0].CompanyID())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestSubmitOfferCommandHandler_Handle_AuditFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	req := pendingRequest(t)
	cmd, err := commands.NewSubmitOfferCommand(req.ID(), kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(50), "")
	require.NoError(t, err)
	storeErr := errs.NewStoreUnavailableError("append audit entry", errors.New("connection reset"))

	repo := new(MockRequestRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockRequestUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(repo).Once()
	repo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	repo.On("Update", ctx, req).Return(nil).Once()
	uow.On("AuditRepository").Return(auditRepo).Once()
	auditRepo.On("Append", ctx, mock.Anything).Return(storeErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()
	observer := new(MockObserver)
	observer.On("ObserveCommand", "submit_offer", mock.Anything).Once()

	h := commands.NewSubmitOfferCommandHandler(factory, commands.Deps{Clock: clock, Observer: observer})
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertNotCalled(t, "TrackedEvents")
	observer.AssertExpectations(t)
}

func TestSubmitOfferCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewSubmitOfferCommand(id, kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(50), "")
	require.NoError(t, err)

	repo := new(MockRequestRepository)
	uow := new(MockRequestUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(repo).Once()
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("shipment request", id.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOfferCommandHandler(factory, commands.Deps{Clock: clock})
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitOfferCommandHandler_Handle_PublishFailureIsNotReturned(t *testing.T) {
	ctx := t.Context()
	req := pendingRequest(t)
	cmd, err := commands.NewSubmitOfferCommand(req.ID(), kernel.NewUUID(), kernel.NewUUID(), kernel.MustMoney(70), "")
	require.NoError(t, err)

	repo := new(MockRequestRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockRequestUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(repo).Once()
	repo.On("Get", ctx, req.ID()).Return(req, nil).Once()
	repo.On("Update", ctx, req).Return(nil).Once()
	uow.On("AuditRepository").Return(auditRepo).Once()
	auditRepo.On("Append", ctx, mock.Anything).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("TrackedEvents").Return([]request.Event{{Kind: request.EventOfferSubmitted, RequestID: req.ID()}}).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOfferCommandHandler(factory, commands.Deps{Publisher: publisher, Clock: clock})
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}
