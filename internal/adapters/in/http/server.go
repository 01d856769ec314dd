package http

import (
	"log/slog"
	"net/http"

	"brokerage/internal/core/application/usecases/commands"
	"brokerage/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers are the use cases exposed over HTTP.
type Handlers struct {
	CreateRequest    commands.CreateRequestCommandHandler
	SubmitOffer      commands.SubmitOfferCommandHandler
	SelectOffer      commands.SelectOfferCommandHandler
	RejectOffer      commands.RejectOfferCommandHandler
	RejectRequest    commands.RejectRequestCommandHandler
	Transition       commands.TransitionCommandHandler
	AssignWarehouse  commands.AssignWarehouseCommandHandler
	CreateAssignment commands.CreateAssignmentCommandHandler
	Resources        commands.ResourceCommandHandler

	GetRequest   queries.GetRequestQueryHandler
	CompanyQueue queries.GetCompanyQueueQueryHandler
	Candidates   queries.ListCandidatesQueryHandler
	AuditLog     queries.ListAuditLogQueryHandler
}

// Server translates HTTP requests into commands and queries. The caller's
// identity arrives in the X-Actor-ID and X-Actor-Role headers.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: h, logger: logger.With("component", "http")}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/requests", s.CreateRequest)
	e.GET("/requests/:id", s.GetRequest)
	e.POST("/requests/:id/offers", s.SubmitOffer)
	e.POST("/requests/:id/offers/:offerId/select", s.SelectOffer)
	e.POST("/requests/:id/offers/:offerId/reject", s.RejectOffer)
	e.POST("/requests/:id/decline", s.DeclineRequest)
	e.POST("/requests/:id/commercial", s.TransitionCommercial)
	e.POST("/requests/:id/delivery", s.TransitionDelivery)
	e.POST("/requests/:id/warehouses", s.AssignWarehouse)
	e.POST("/requests/:id/assignments", s.CreateAssignment)
	e.GET("/requests/:id/candidates", s.ListCandidates)

	e.GET("/companies/:id/queue", s.GetCompanyQueue)
	e.GET("/audit", s.ListAuditLog)

	e.POST("/drivers", s.AddDriver)
	e.POST("/vehicles", s.AddVehicle)
	e.POST("/warehouses", s.AddWarehouse)
	e.POST("/vehicles/:id/status", s.ChangeVehicleStatus)
	e.POST("/warehouses/:id/status", s.ChangeWarehouseStatus)
	e.POST("/warehouses/:id/stock", s.AdjustWarehouseStock)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// Created is the body of every 201 response.
type Created struct {
	ID string `json:"id"`
}
