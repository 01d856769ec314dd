package http

import (
	"net/http"
	"strconv"
	"time"

	"brokerage/internal/core/application/usecases/commands"
	"brokerage/internal/core/application/usecases/queries"
	"brokerage/internal/core/domain/model/audit"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/model/request"
	"brokerage/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateRequest handles POST /requests. The caller becomes the client.
func (s *Server) CreateRequest(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body CreateRequestBody
	if err = c.Bind(&body); err != nil {
		return s.badRequest(c, "Invalid request body")
	}

	source, err := body.Source.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	destination, err := body.Destination.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	items, err := body.items()
	if err != nil {
		return s.fail(c, err)
	}
	kind, err := request.ParseDeliveryKind(body.DeliveryKind)
	if err != nil {
		return s.fail(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(id, actor.ID, source, destination, items, kind)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateRequest.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// GetRequest handles GET /requests/:id.
func (s *Server) GetRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetRequestQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.h.GetRequest.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// SubmitOffer handles POST /requests/:id/offers. The caller is the bidding company.
func (s *Server) SubmitOffer(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	requestID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var body SubmitOfferBody
	if err = c.Bind(&body); err != nil {
		return s.badRequest(c, "Invalid offer body")
	}
	cost, err := kernel.NewMoney(body.Cost)
	if err != nil {
		return s.fail(c, err)
	}

	offerID := kernel.NewUUID()
	cmd, err := commands.NewSubmitOfferCommand(requestID, offerID, actor.ID, cost, body.Comment)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.SubmitOffer.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: offerID.String()})
}

// SelectOffer handles POST /requests/:id/offers/:offerId/select.
func (s *Server) SelectOffer(c echo.Context) error {
	actor, requestID, offerID, err := offerPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewSelectOfferCommand(requestID, offerID, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.SelectOffer.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RejectOffer handles POST /requests/:id/offers/:offerId/reject.
func (s *Server) RejectOffer(c echo.Context) error {
	actor, requestID, offerID, err := offerPath(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRejectOfferCommand(requestID, offerID, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RejectOffer.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func offerPath(c echo.Context) (audit.Actor, kernel.UUID, kernel.UUID, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return audit.Actor{}, kernel.UUID{}, kernel.UUID{}, err
	}
	requestID, err := pathID(c, "id")
	if err != nil {
		return audit.Actor{}, kernel.UUID{}, kernel.UUID{}, err
	}
	offerID, err := pathID(c, "offerId")
	if err != nil {
		return audit.Actor{}, kernel.UUID{}, kernel.UUID{}, err
	}
	return actor, requestID, offerID, nil
}

// DeclineRequest handles POST /requests/:id/decline. The calling company
// stops seeing the request in its queue.
func (s *Server) DeclineRequest(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	requestID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRejectRequestCommand(requestID, actor.ID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.RejectRequest.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TransitionCommercial handles POST /requests/:id/commercial.
func (s *Server) TransitionCommercial(c echo.Context) error {
	actor, requestID, body, err := transitionInput(c)
	if err != nil {
		return s.fail(c, err)
	}
	target, err := request.ParseCommercialStatus(body.Target)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewTransitionCommercialCommand(requestID, target, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Transition.HandleCommercial(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TransitionDelivery handles POST /requests/:id/delivery.
func (s *Server) TransitionDelivery(c echo.Context) error {
	actor, requestID, body, err := transitionInput(c)
	if err != nil {
		return s.fail(c, err)
	}
	target, err := request.ParseDeliveryStatus(body.Target)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewTransitionDeliveryCommand(requestID, target, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.Transition.HandleDelivery(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func transitionInput(c echo.Context) (audit.Actor, kernel.UUID, TransitionBody, error) {
	var body TransitionBody
	actor, err := actorFrom(c)
	if err != nil {
		return audit.Actor{}, kernel.UUID{}, body, err
	}
	requestID, err := pathID(c, "id")
	if err != nil {
		return audit.Actor{}, kernel.UUID{}, body, err
	}
	if err = c.Bind(&body); err != nil {
		return audit.Actor{}, kernel.UUID{}, body, errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return actor, requestID, body, nil
}

// AssignWarehouse handles POST /requests/:id/warehouses. The caller must be
// the company holding the accepted offer.
func (s *Server) AssignWarehouse(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	requestID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var body AssignWarehouseBody
	if err = c.Bind(&body); err != nil {
		return s.badRequest(c, "Invalid warehouse body")
	}
	warehouseID, err := parseID("warehouse id", body.WarehouseID)
	if err != nil {
		return s.fail(c, err)
	}
	side, err := request.ParseSide(body.Side)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAssignWarehouseCommand(requestID, actor.ID, warehouseID, side)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.AssignWarehouse.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateAssignment handles POST /requests/:id/assignments.
func (s *Server) CreateAssignment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return s.fail(c, err)
	}
	requestID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var body CreateAssignmentBody
	if err = c.Bind(&body); err != nil {
		return s.badRequest(c, "Invalid assignment body")
	}
	driverID, err := parseID("driver id", body.DriverID)
	if err != nil {
		return s.fail(c, err)
	}
	vehicleID, err := parseID("vehicle id", body.VehicleID)
	if err != nil {
		return s.fail(c, err)
	}

	assignmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateAssignmentCommand(requestID, assignmentID, driverID, vehicleID, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateAssignment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: assignmentID.String()})
}

// ListCandidates handles GET /requests/:id/candidates.
func (s *Server) ListCandidates(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListCandidatesQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	resp, err := s.h.Candidates.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetCompanyQueue handles GET /companies/:id/queue?limit=N.
func (s *Server) GetCompanyQueue(c echo.Context) error {
	companyID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	limit, err := intParam(c, "limit")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetCompanyQueueQuery(companyID, limit)
	if err != nil {
		return s.fail(c, err)
	}
	entries, err := s.h.CompanyQueue.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// ListAuditLog handles GET /audit with the optional filters action, actor,
// resource, from, to (RFC 3339) and limit.
func (s *Server) ListAuditLog(c echo.Context) error {
	filter := audit.Filter{Action: audit.Action(c.QueryParam("action"))}

	var err error
	if filter.ActorID, err = optionalID(c.QueryParam("actor")); err != nil {
		return s.fail(c, err)
	}
	if filter.ResourceID, err = optionalID(c.QueryParam("resource")); err != nil {
		return s.fail(c, err)
	}
	if filter.From, err = timeParam(c, "from"); err != nil {
		return s.fail(c, err)
	}
	if filter.To, err = timeParam(c, "to"); err != nil {
		return s.fail(c, err)
	}
	if filter.Limit, err = intParam(c, "limit"); err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListAuditLogQuery(filter)
	if err != nil {
		return s.fail(c, err)
	}
	entries, err := s.h.AuditLog.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return n, nil
}

func timeParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &t, nil
}
