package cmd

import (
	"errors"
	"fmt"
	"net/http"

	httpin "donations/internal/adapters/in/http"
	"donations/internal/adapters/out/kafka"
	"donations/internal/adapters/out/postgres"
	"donations/internal/adapters/out/postgres/syncissuerepo"
	"donations/internal/adapters/out/stockit"
	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"
	"donations/internal/core/ports"
	"donations/internal/jobs"
	"donations/internal/pkg/logger"
	"donations/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	issues     *syncissuerepo.GormSyncIssueRepository

	log                *logger.Logger
	registry           *prometheus.Registry
	designationMetrics *metrics.DesignationMetrics
	cronMetrics        *metrics.CronJobMetrics

	mirror    ports.InventoryMirror
	publisher ports.OrderEventPublisher
	closers   []func() error
}

// NewCompositionRoot wires the outbound adapters. Redis and Kafka are optional and only
// used when configured.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, log *logger.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &CompositionRoot{
		cfg:                cfg,
		gormDB:             gormDB,
		uowFactory:         postgres.NewGormUnitOfWorkFactory(gormDB),
		issues:             syncissuerepo.NewGormSyncIssueRepository(gormDB),
		log:                log,
		registry:           registry,
		designationMetrics: metrics.NewDesignationMetrics(registry),
		cronMetrics:        metrics.NewCronJobMetrics(registry),
		publisher:          kafka.DiscardPublisher{},
	}

	client, err := stockit.NewClient(stockit.Config{
		BaseURL: cfg.Stockit.BaseURL,
		APIKey:  cfg.Stockit.APIKey,
		Timeout: cfg.Stockit.Timeout,
	}, &http.Client{Timeout: cfg.Stockit.Timeout})
	if err != nil {
		return nil, err
	}
	c.mirror = client

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		c.closers = append(c.closers, rdb.Close)
		c.mirror = stockit.NewIdempotentMirror(client, rdb, cfg.Redis.LinkTTL, log)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.OrderChangedTopic, log)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.closers = append(c.closers, publisher.Close)
		c.publisher = publisher
	}

	return c, nil
}

func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) Registry() *prometheus.Registry { return c.registry }

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUows() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) mirrorSync() commands.MirrorSync {
	return commands.NewMirrorSync(c.mirror, c.issues, c.designationMetrics, c.log)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUows())
}

func (c *CompositionRoot) CreateFireOrderEventCommandHandler() commands.FireOrderEventCommandHandler {
	return commands.NewFireOrderEventCommandHandler(c.uows(), c.publisher, c.log)
}

func (c *CompositionRoot) CreateDestroyOrderCommandHandler() commands.DestroyOrderCommandHandler {
	return commands.NewDestroyOrderCommandHandler(c.uows(), c.mirrorSync())
}

func (c *CompositionRoot) CreateScheduleOrderTransportCommandHandler() commands.ScheduleOrderTransportCommandHandler {
	return commands.NewScheduleOrderTransportCommandHandler(c.orderUows())
}

func (c *CompositionRoot) CreatePruneCancelledOrdersPackagesCommandHandler() commands.PruneCancelledOrdersPackagesCommandHandler {
	return commands.NewPruneCancelledOrdersPackagesCommandHandler(c.uows())
}

func (c *CompositionRoot) CreateDesignatePackageCommandHandler() commands.DesignatePackageCommandHandler {
	return commands.NewDesignatePackageCommandHandler(c.uows(), c.mirrorSync(), c.designationMetrics)
}

func (c *CompositionRoot) CreateUndesignatePackageCommandHandler() commands.UndesignatePackageCommandHandler {
	return commands.NewUndesignatePackageCommandHandler(c.uows(), c.mirrorSync(), c.designationMetrics)
}

func (c *CompositionRoot) CreateAddPartiallyDesignatedItemCommandHandler() commands.AddPartiallyDesignatedItemCommandHandler {
	return commands.NewAddPartiallyDesignatedItemCommandHandler(c.uows(), c.designationMetrics)
}

func (c *CompositionRoot) CreateDesignateStockitItemCommandHandler() commands.DesignateStockitItemCommandHandler {
	return commands.NewDesignateStockitItemCommandHandler(c.uows(), c.mirrorSync())
}

func (c *CompositionRoot) CreateDispatchOrdersPackageCommandHandler() commands.DispatchOrdersPackageCommandHandler {
	return commands.NewDispatchOrdersPackageCommandHandler(c.uows(), c.designationMetrics)
}

func (c *CompositionRoot) CreateUndispatchOrdersPackageCommandHandler() commands.UndispatchOrdersPackageCommandHandler {
	return commands.NewUndispatchOrdersPackageCommandHandler(c.uows(), c.designationMetrics)
}

func (c *CompositionRoot) CreateRejectOrdersPackageCommandHandler() commands.RejectOrdersPackageCommandHandler {
	return commands.NewRejectOrdersPackageCommandHandler(c.uows(), c.designationMetrics)
}

func (c *CompositionRoot) CreateUpdateOrdersPackageQuantityCommandHandler() commands.UpdateOrdersPackageQuantityCommandHandler {
	return commands.NewUpdateOrdersPackageQuantityCommandHandler(c.uows())
}

func (c *CompositionRoot) CreateUpdateDesignationCommandHandler() commands.UpdateDesignationCommandHandler {
	return commands.NewUpdateDesignationCommandHandler(c.uows())
}

func (c *CompositionRoot) CreateResolveSyncIssueCommandHandler() commands.ResolveSyncIssueCommandHandler {
	return commands.NewResolveSyncIssueCommandHandler(c.issues)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersSummaryQueryHandler() queries.GetOrdersSummaryQueryHandler {
	return queries.NewGetOrdersSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderDesignationStatusQueryHandler() queries.GetOrderDesignationStatusQueryHandler {
	return queries.NewGetOrderDesignationStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOpenSyncIssuesQueryHandler() queries.ListOpenSyncIssuesQueryHandler {
	return queries.NewListOpenSyncIssuesQueryHandler(c.issues)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:                c.CreateCreateOrderCommandHandler(),
		FireOrderEvent:             c.CreateFireOrderEventCommandHandler(),
		DestroyOrder:               c.CreateDestroyOrderCommandHandler(),
		ScheduleOrderTransport:     c.CreateScheduleOrderTransportCommandHandler(),
		PruneCancelledEntries:      c.CreatePruneCancelledOrdersPackagesCommandHandler(),
		DesignatePackage:           c.CreateDesignatePackageCommandHandler(),
		UndesignatePackage:         c.CreateUndesignatePackageCommandHandler(),
		AddPartiallyDesignatedItem: c.CreateAddPartiallyDesignatedItemCommandHandler(),
		DesignateStockitItem:       c.CreateDesignateStockitItemCommandHandler(),
		DispatchOrdersPackage:      c.CreateDispatchOrdersPackageCommandHandler(),
		UndispatchOrdersPackage:    c.CreateUndispatchOrdersPackageCommandHandler(),
		RejectOrdersPackage:        c.CreateRejectOrdersPackageCommandHandler(),
		UpdateQuantity:             c.CreateUpdateOrdersPackageQuantityCommandHandler(),
		UpdateDesignation:          c.CreateUpdateDesignationCommandHandler(),
		ResolveSyncIssue:           c.CreateResolveSyncIssueCommandHandler(),
		ListOrders:                 c.CreateListOrdersQueryHandler(),
		GetOrdersSummary:           c.CreateGetOrdersSummaryQueryHandler(),
		GetDesignationStatus:       c.CreateGetOrderDesignationStatusQueryHandler(),
		ListOpenSyncIssues:         c.CreateListOpenSyncIssuesQueryHandler(),
	}, c.log, c.registry)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	prune := c.CreatePruneCancelledOrdersPackagesCommandHandler()
	return jobs.NewJobManager(c.cronMetrics, c.log,
		jobs.NewPruneCancelledOrdersPackagesJob(
			c.cfg.Jobs.PruneSpec,
			c.cfg.Jobs.PruneBatch,
			c.uowFactory.Create().OrdersPackageRepository(),
			&prune,
			c.log,
		),
		jobs.NewSyncIssueReportJob(c.cfg.Jobs.SyncIssueReportSpec, c.issues, c.designationMetrics, c.log),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
