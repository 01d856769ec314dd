package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "brokerage/internal/adapters/in/http"
	"brokerage/internal/adapters/out/memory"
	"brokerage/internal/adapters/out/postgres"
	redisadapter "brokerage/internal/adapters/out/redis"
	"brokerage/internal/core/application/usecases/commands"
	"brokerage/internal/core/application/usecases/queries"
	"brokerage/internal/core/domain/model/kernel"
	"brokerage/internal/core/domain/services"
	"brokerage/internal/core/ports"
	"brokerage/internal/jobs"
	"brokerage/internal/metrics"
	"brokerage/internal/pkg/keylock"
	"brokerage/internal/pkg/retry"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg       Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	deps      commands.Deps
	reader    *retry.Reader
	matcher   services.ResourceMatcher
	readModel queries.ReadModel
	newUoW    func() ports.UnitOfWork
	db        *gorm.DB
	closers   []func() error
}

// NewCompositionRoot opens the configured store and event publisher.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
		matcher: services.NewResourceMatcher(),
	}
	c.reader = retry.NewReader(cfg.Retry(), logger, c.metrics.StoreRetries())

	switch cfg.StoreDriver {
	case StoreMemory:
		store := memory.NewStore()
		factory := memory.NewUnitOfWorkFactory(store)
		c.readModel = store
		c.newUoW = func() ports.UnitOfWork { return factory.Create() }
		logger.Warn("Using the in-memory ledger store; nothing survives a restart")
	case StorePostgres:
		db, err := c.openDB()
		if err != nil {
			return nil, err
		}
		c.db = db
		factory := postgres.NewGormUnitOfWorkFactory(db)
		c.readModel = postgres.NewReadModel(db)
		c.newUoW = func() ports.UnitOfWork { return factory.Create() }
	}

	var publisher ports.EventPublisher = redisadapter.NoopPublisher{}
	if cfg.RedisURL != "" {
		rdb, err := redisadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, errors.Join(err, c.Close())
		}
		c.closers = append(c.closers, rdb.Close)
		publisher = redisadapter.NewPublisher(rdb, 0)
	}

	c.deps = commands.Deps{
		Locker:    keylock.New[kernel.UUID](),
		Publisher: c.metrics.CountFailures(publisher),
		Observer:  c.metrics,
		Logger:    logger,
	}
	return c, nil
}

func (c *CompositionRoot) openDB() (*gorm.DB, error) {
	db, err := postgres.Open(postgres.DSN(
		c.cfg.DBHost, c.cfg.DBPort, c.cfg.DBUser, c.cfg.DBPassword, c.cfg.DBName, c.cfg.DBSslMode,
	))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	c.closers = append(c.closers, sqlDB.Close)
	return db, nil
}

// Migrate creates or updates the ledger schema. It is a no-op for the memory store.
func (c *CompositionRoot) Migrate() error {
	if c.db == nil {
		return nil
	}
	return postgres.Migrate(c.db)
}

// Close releases connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) requestUoWFactory() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW { return c.newUoW() })
}

func (c *CompositionRoot) resourceUoWFactory() commands.ResourceUoWFactory {
	return FuncResourceUoWFactory(func() commands.ResourceUoW { return c.newUoW() })
}

func (c *CompositionRoot) uowFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.newUoW() })
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.requestUoWFactory(), c.deps)
}

func (c *CompositionRoot) CreateSubmitOfferCommandHandler() commands.SubmitOfferCommandHandler {
	return commands.NewSubmitOfferCommandHandler(c.requestUoWFactory(), c.deps)
}

func (c *CompositionRoot) CreateSelectOfferCommandHandler() commands.SelectOfferCommandHandler {
	return commands.NewSelectOfferCommandHandler(c.requestUoWFactory(), c.deps)
}

func (c *CompositionRoot) CreateRejectOfferCommandHandler() commands.RejectOfferCommandHandler {
	return commands.NewRejectOfferCommandHandler(c.requestUoWFactory(), c.deps)
}

func (c *CompositionRoot) CreateRejectRequestCommandHandler() commands.RejectRequestCommandHandler {
	return commands.NewRejectRequestCommandHandler(c.requestUoWFactory(), c.deps)
}

func (c *CompositionRoot) CreateTransitionCommandHandler() commands.TransitionCommandHandler {
	return commands.NewTransitionCommandHandler(c.uowFactory(), c.deps)
}

func (c *CompositionRoot) CreateAssignWarehouseCommandHandler() commands.AssignWarehouseCommandHandler {
	return commands.NewAssignWarehouseCommandHandler(c.uowFactory(), c.deps)
}

func (c *CompositionRoot) CreateCreateAssignmentCommandHandler() commands.CreateAssignmentCommandHandler {
	return commands.NewCreateAssignmentCommandHandler(c.uowFactory(), c.matcher, c.deps)
}

func (c *CompositionRoot) CreateResourceCommandHandler() commands.ResourceCommandHandler {
	return commands.NewResourceCommandHandler(c.resourceUoWFactory(), c.deps)
}

func (c *CompositionRoot) CreateGetRequestQueryHandler() queries.GetRequestQueryHandler {
	return queries.NewGetRequestQueryHandler(c.readModel, c.reader)
}

func (c *CompositionRoot) CreateGetCompanyQueueQueryHandler() queries.GetCompanyQueueQueryHandler {
	return queries.NewGetCompanyQueueQueryHandler(c.readModel, c.reader)
}

func (c *CompositionRoot) CreateListCandidatesQueryHandler() queries.ListCandidatesQueryHandler {
	return queries.NewListCandidatesQueryHandler(c.readModel, c.matcher, c.reader)
}

func (c *CompositionRoot) CreateListAuditLogQueryHandler() queries.ListAuditLogQueryHandler {
	return queries.NewListAuditLogQueryHandler(c.readModel, c.reader)
}

func (c *CompositionRoot) CreateVerifyHistoryQueryHandler() queries.VerifyHistoryQueryHandler {
	return queries.NewVerifyHistoryQueryHandler(c.readModel, c.reader)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateRequest:    c.CreateCreateRequestCommandHandler(),
		SubmitOffer:      c.CreateSubmitOfferCommandHandler(),
		SelectOffer:      c.CreateSelectOfferCommandHandler(),
		RejectOffer:      c.CreateRejectOfferCommandHandler(),
		RejectRequest:    c.CreateRejectRequestCommandHandler(),
		Transition:       c.CreateTransitionCommandHandler(),
		AssignWarehouse:  c.CreateAssignWarehouseCommandHandler(),
		CreateAssignment: c.CreateCreateAssignmentCommandHandler(),
		Resources:        c.CreateResourceCommandHandler(),
		GetRequest:       c.CreateGetRequestQueryHandler(),
		CompanyQueue:     c.CreateGetCompanyQueueQueryHandler(),
		Candidates:       c.CreateListCandidatesQueryHandler(),
		AuditLog:         c.CreateListAuditLogQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateVerifyHistoryQueryHandler(), c.metrics, c.cfg.HistoryCheckSchedule, c.logger)
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncResourceUoWFactory func() commands.ResourceUoW

func (f FuncResourceUoWFactory) Create() commands.ResourceUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
