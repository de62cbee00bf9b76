package commands_test

import (
	"context"
	"fmt"
	"time"

	"donations/internal/adapters/out/postgres"
	"donations/internal/adapters/out/postgres/syncissuerepo"
	"donations/internal/adapters/out/postgres/testdb"
	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/order"
	"donations/internal/core/domain/model/orderspackage"
	"donations/internal/core/ports"
	"donations/internal/pkg/logger"
	"donations/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockInventoryMirror struct{ mock.Mock }

func (m *MockInventoryMirror) DesignateToStockitOrder(
	ctx context.Context,
	pkg *donation.Package,
	ref ports.StockitOrderRef,
) error {
	return m.Called(ctx, pkg, ref).Error(0)
}

func (m *MockInventoryMirror) UndesignateFromStockitOrder(ctx context.Context, pkg *donation.Package) error {
	return m.Called(ctx, pkg).Error(0)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) PublishStateChanged(ctx context.Context, event ports.OrderStateChanged) error {
	return m.Called(ctx, event).Error(0)
}

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

type orderUoWFactory func() commands.OrderUoW

func (f orderUoWFactory) Create() commands.OrderUoW { return f() }

// ledgerSuite runs handlers against a real schema on in-memory sqlite.
type ledgerSuite struct {
	suite.Suite

	ctx          context.Context
	db           *gorm.DB
	uows         *postgres.GormUnitOfWorkFactory
	factory      commands.UoWFactory
	orderFactory commands.OrderUoWFactory
	mirror       *MockInventoryMirror
	issues       *syncissuerepo.GormSyncIssueRepository
	registry     *prometheus.Registry
	metrics      *metrics.DesignationMetrics
	sync         commands.MirrorSync
	actor        kernel.UUID
	now          time.Time
	seq          int
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testdb.NewSQLite(s.T())
	s.uows = postgres.NewGormUnitOfWorkFactory(s.db)
	s.factory = uowFactory(func() commands.UoW { return s.uows.Create() })
	s.orderFactory = orderUoWFactory(func() commands.OrderUoW { return s.uows.Create() })
	s.mirror = new(MockInventoryMirror)
	s.issues = syncissuerepo.NewGormSyncIssueRepository(s.db)
	s.registry = prometheus.NewRegistry()
	s.metrics = metrics.NewDesignationMetrics(s.registry)
	s.sync = commands.NewMirrorSync(s.mirror, s.issues, s.metrics, logger.Nop())
	s.actor = kernel.NewUUID()
	s.now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (s *ledgerSuite) givenOrder(state order.State) *order.Order {
	s.seq++
	detail, err := order.NewDetail(order.DetailGoodCity, fmt.Sprint(s.seq))
	s.Require().NoError(err)
	o, err := order.RestoreOrder(
		kernel.NewUUID(), fmt.Sprintf("GC-%05d", s.seq), state, detail, order.BookingOnlineOrder,
		"", false, s.actor, s.now.Add(time.Duration(s.seq)*time.Minute), nil,
	)
	s.Require().NoError(err)
	s.Require().NoError(s.uows.Create().OrderRepository().Add(s.ctx, o))
	return o
}

func (s *ledgerSuite) givenPackage(quantity, received int) *donation.Package {
	s.seq++
	pkg, err := donation.NewPackage(kernel.NewUUID(), fmt.Sprintf("INV%06d", s.seq), quantity, received)
	s.Require().NoError(err)
	s.Require().NoError(s.uows.Create().PackageRepository().Add(s.ctx, pkg))
	return pkg
}

func (s *ledgerSuite) givenEntry(
	o *order.Order,
	pkg *donation.Package,
	quantity int,
	state orderspackage.State,
) *orderspackage.OrdersPackage {
	var sentOn *time.Time
	if state == orderspackage.Dispatched {
		sentOn = &s.now
	}
	entry, err := orderspackage.RestoreOrdersPackage(kernel.NewUUID(), o.ID(), pkg.ID(), quantity, state, sentOn, s.actor)
	s.Require().NoError(err)
	s.Require().NoError(s.uows.Create().OrdersPackageRepository().Add(s.ctx, entry))
	return entry
}

func (s *ledgerSuite) entry(id kernel.UUID) *orderspackage.OrdersPackage {
	e, err := s.uows.Create().OrdersPackageRepository().Get(s.ctx, id)
	s.Require().NoError(err)
	return e
}

func (s *ledgerSuite) entriesOf(pkg *donation.Package) []*orderspackage.OrdersPackage {
	entries, err := s.uows.Create().OrdersPackageRepository().ListByPackage(s.ctx, pkg.ID())
	s.Require().NoError(err)
	return entries
}

func (s *ledgerSuite) loadPackage(id kernel.UUID) *donation.Package {
	pkg, err := s.uows.Create().PackageRepository().Get(s.ctx, id)
	s.Require().NoError(err)
	return pkg
}

func (s *ledgerSuite) loadOrder(id kernel.UUID) *order.Order {
	o, err := s.uows.Create().OrderRepository().Get(s.ctx, id)
	s.Require().NoError(err)
	return o
}

func (s *ledgerSuite) openIssues() int64 {
	n, err := s.issues.CountOpen(s.ctx)
	s.Require().NoError(err)
	return n
}

func matchPackage(pkg *donation.Package) any {
	return mock.MatchedBy(func(p *donation.Package) bool { return p.ID().IsEqual(pkg.ID()) })
}
