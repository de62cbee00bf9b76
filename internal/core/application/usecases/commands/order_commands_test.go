package commands_test

import (
	"errors"
	"testing"
	"time"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/order"
	"donations/internal/core/domain/model/orderspackage"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OrderCommandsSuite struct {
	ledgerSuite
	publisher *MockOrderEventPublisher
}

func TestOrderCommandsSuite(t *testing.T) {
	suite.Run(t, new(OrderCommandsSuite))
}

func (s *OrderCommandsSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.publisher = new(MockOrderEventPublisher)
}

func (s *OrderCommandsSuite) fire(o *order.Order, event order.Event, reason string) (commands.OrderTransition, error) {
	cmd, err := commands.NewFireOrderEventCommand(o.ID(), event, reason, s.actor, s.now)
	s.Require().NoError(err)
	h := commands.NewFireOrderEventCommandHandler(s.factory, s.publisher, nil)
	return h.Handle(s.ctx, cmd)
}

func (s *OrderCommandsSuite) TestFireEvent_SubmitPublishesChange() {
	o := s.givenOrder(order.Draft)
	s.publisher.On("PublishStateChanged", mock.Anything, mock.MatchedBy(func(e ports.OrderStateChanged) bool {
		return e.OrderID.IsEqual(o.ID()) && e.Event == "submit" && e.FromState == "draft" &&
			e.ToState == "submitted" && e.Actor.IsEqual(s.actor) && e.OccurredAt.Equal(s.now)
	})).Return(nil).Once()

	result, err := s.fire(o, order.EventSubmit, "")
	s.Require().NoError(err)

	s.Equal(kernel.Changed, result.Outcome)
	s.Equal(order.Draft, result.From)
	s.Equal(order.Submitted, result.To)
	s.Contains(result.Events, order.EventCancel)
	s.Equal(order.Submitted, s.loadOrder(o.ID()).State())
	s.publisher.AssertExpectations(s.T())
}

func (s *OrderCommandsSuite) TestFireEvent_IllegalEventIsUnchanged() {
	o := s.givenOrder(order.Draft)

	result, err := s.fire(o, order.EventClose, "")
	s.Require().NoError(err)

	s.Equal(kernel.Unchanged, result.Outcome)
	s.Equal(order.Draft, s.loadOrder(o.ID()).State())
	s.publisher.AssertNotCalled(s.T(), "PublishStateChanged", mock.Anything, mock.Anything)
}

func (s *OrderCommandsSuite) TestFireEvent_FinishProcessingNeedsFullDesignation() {
	o := s.givenOrder(order.Processing)
	pkg := s.givenPackage(2, 2)
	requested := s.givenEntry(o, pkg, 1, orderspackage.Requested)

	result, err := s.fire(o, order.EventFinishProcessing, "")
	s.Require().NoError(err)
	s.Equal(kernel.Unchanged, result.Outcome)

	reject := commands.NewRejectOrdersPackageCommandHandler(s.factory, s.metrics)
	cmd, err := commands.NewRejectOrdersPackageCommand(requested.ID(), s.actor)
	s.Require().NoError(err)
	_, err = reject.Handle(s.ctx, cmd)
	s.Require().NoError(err)
	s.givenEntry(o, s.givenPackage(1, 1), 1, orderspackage.Designated)

	s.publisher.On("PublishStateChanged", mock.Anything, mock.Anything).Return(nil).Once()
	result, err = s.fire(o, order.EventFinishProcessing, "")
	s.Require().NoError(err)
	s.Equal(kernel.Changed, result.Outcome)
	s.Equal(order.AwaitingDispatch, s.loadOrder(o.ID()).State())
}

func (s *OrderCommandsSuite) TestFireEvent_CancelKeepsReason() {
	o := s.givenOrder(order.Received)
	s.publisher.On("PublishStateChanged", mock.Anything, mock.MatchedBy(func(e ports.OrderStateChanged) bool {
		return e.CancellationReason == "duplicate request"
	})).Return(nil).Once()

	_, err := s.fire(o, order.EventCancel, "  duplicate request ")
	s.Require().NoError(err)

	stored := s.loadOrder(o.ID())
	s.Equal(order.Cancelled, stored.State())
	s.Equal("duplicate request", stored.CancellationReason())
}

func (s *OrderCommandsSuite) TestFireEvent_PublishFailureDoesNotFail() {
	o := s.givenOrder(order.Draft)
	s.publisher.On("PublishStateChanged", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	result, err := s.fire(o, order.EventSubmit, "")
	s.Require().NoError(err)
	s.Equal(kernel.Changed, result.Outcome)
	s.Equal(order.Submitted, s.loadOrder(o.ID()).State())
}

func (s *OrderCommandsSuite) TestFireEvent_InvalidEvent() {
	_, err := commands.NewFireOrderEventCommand(kernel.NewUUID(), order.Event(99), "", s.actor, s.now)
	s.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (s *OrderCommandsSuite) TestCreateOrder_DuplicateCodeFails() {
	h := commands.NewCreateOrderCommandHandler(s.orderFactory)
	detail, err := order.NewDetail(order.DetailAppointment, "1")
	s.Require().NoError(err)

	first, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "A-1", detail, order.BookingAppointment, s.actor, s.now)
	s.Require().NoError(err)
	s.Require().NoError(h.Handle(s.ctx, first))
	s.Equal(order.Draft, s.loadOrder(first.OrderID()).State())

	second, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "A-1", detail, order.BookingAppointment, s.actor, s.now)
	s.Require().NoError(err)
	s.Require().Error(h.Handle(s.ctx, second))
}

func (s *OrderCommandsSuite) TestDestroyDraftRemovesEntries() {
	o := s.givenOrder(order.Draft)
	pkg := s.givenPackage(2, 2)
	entry := s.givenEntry(o, pkg, 1, orderspackage.Requested)
	h := commands.NewDestroyOrderCommandHandler(s.factory, s.sync)

	cmd, err := commands.NewDestroyOrderCommand(o.ID(), s.actor, s.now)
	s.Require().NoError(err)
	outcome, err := h.Handle(s.ctx, cmd)
	s.Require().NoError(err)
	s.Equal(kernel.Changed, outcome)

	_, err = s.uows.Create().OrderRepository().Get(s.ctx, o.ID())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = s.uows.Create().OrdersPackageRepository().Get(s.ctx, entry.ID())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
	s.mirror.AssertNotCalled(s.T(), "UndesignateFromStockitOrder", mock.Anything, mock.Anything)
}

func (s *OrderCommandsSuite) TestDestroyDraftClearsMirroredDesignations() {
	o := s.givenOrder(order.Draft)
	held := s.givenPackage(4, 4)
	asked := s.givenPackage(1, 1)
	s.givenEntry(o, held, 4, orderspackage.Designated)
	s.givenEntry(o, asked, 1, orderspackage.Requested)
	s.mirror.On("UndesignateFromStockitOrder", mock.Anything, mock.MatchedBy(func(p *donation.Package) bool {
		return p.ID().IsEqual(held.ID()) && p.MirrorVersion() == 1
	})).Return(nil).Once()
	h := commands.NewDestroyOrderCommandHandler(s.factory, s.sync)

	cmd, err := commands.NewDestroyOrderCommand(o.ID(), s.actor, s.now)
	s.Require().NoError(err)
	outcome, err := h.Handle(s.ctx, cmd)
	s.Require().NoError(err)

	s.Equal(kernel.Changed, outcome)
	s.Empty(s.entriesOf(held))
	s.Empty(s.entriesOf(asked))
	s.EqualValues(1, s.loadPackage(held.ID()).MirrorVersion())
	s.Zero(s.loadPackage(asked.ID()).MirrorVersion())
	s.Zero(s.openIssues())
	s.mirror.AssertExpectations(s.T())
}

func (s *OrderCommandsSuite) TestDestroyDraftFlagsMirrorFailure() {
	o := s.givenOrder(order.Draft)
	pkg := s.givenPackage(4, 4)
	s.givenEntry(o, pkg, 4, orderspackage.Designated)
	s.mirror.On("UndesignateFromStockitOrder", mock.Anything, matchPackage(pkg)).
		Return(errors.New("stockit unavailable")).Once()
	h := commands.NewDestroyOrderCommandHandler(s.factory, s.sync)

	cmd, err := commands.NewDestroyOrderCommand(o.ID(), s.actor, s.now)
	s.Require().NoError(err)
	outcome, err := h.Handle(s.ctx, cmd)

	var syncErr *errs.ExternalSyncError
	s.Require().ErrorAs(err, &syncErr)
	s.Equal("undesignate", syncErr.Operation)
	s.Equal(kernel.Changed, outcome)
	s.Empty(s.entriesOf(pkg))

	issues, err := s.issues.ListOpen(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(issues, 1)
	s.Equal(ports.SyncUndesignate, issues[0].Operation)
	s.True(issues[0].PackageID.IsEqual(pkg.ID()))
	s.Require().NotNil(issues[0].OrderID)
	s.Equal(o.ID(), *issues[0].OrderID)
}

func (s *OrderCommandsSuite) TestDestroySubmittedIsUnchanged() {
	o := s.givenOrder(order.Submitted)
	h := commands.NewDestroyOrderCommandHandler(s.factory, s.sync)

	cmd, err := commands.NewDestroyOrderCommand(o.ID(), s.actor, s.now)
	s.Require().NoError(err)
	outcome, err := h.Handle(s.ctx, cmd)
	s.Require().NoError(err)
	s.Equal(kernel.Unchanged, outcome)
	s.Equal(order.Submitted, s.loadOrder(o.ID()).State())
}

func (s *OrderCommandsSuite) TestScheduleTransport() {
	o := s.givenOrder(order.AwaitingDispatch)
	h := commands.NewScheduleOrderTransportCommandHandler(s.orderFactory)

	at := s.now.Add(48 * time.Hour)
	priority := true
	cmd, err := commands.NewScheduleOrderTransportCommand(o.ID(), &at, &priority)
	s.Require().NoError(err)
	s.Require().NoError(h.Handle(s.ctx, cmd))

	stored := s.loadOrder(o.ID())
	s.Require().NotNil(stored.TransportScheduledAt())
	s.True(stored.TransportScheduledAt().Equal(at))
	s.True(stored.IsPriority())

	cmd, err = commands.NewScheduleOrderTransportCommand(o.ID(), nil, nil)
	s.Require().NoError(err)
	s.Require().NoError(h.Handle(s.ctx, cmd))

	stored = s.loadOrder(o.ID())
	s.Nil(stored.TransportScheduledAt())
	s.True(stored.IsPriority())
}

func (s *OrderCommandsSuite) TestPartialDesignation_GrowsAndResurrects() {
	o := s.givenOrder(order.Processing)
	pkg := s.givenPackage(5, 5)
	cancelled := s.givenEntry(o, pkg, 0, orderspackage.Cancelled)
	h := commands.NewAddPartiallyDesignatedItemCommandHandler(s.factory, s.metrics)

	cmd, err := commands.NewAddPartiallyDesignatedItemCommand(pkg.ID(), o.ID(), 2, s.actor)
	s.Require().NoError(err)
	result, err := h.Handle(s.ctx, cmd)
	s.Require().NoError(err)

	s.Equal(cancelled.ID(), result.OrdersPackageID)
	stored := s.entry(cancelled.ID())
	s.Equal(orderspackage.Designated, stored.State())
	s.Equal(2, stored.Quantity())

	_, err = h.Handle(s.ctx, cmd)
	s.Require().NoError(err)
	s.Equal(4, s.entry(cancelled.ID()).Quantity())
	s.mirror.AssertNotCalled(s.T(), "DesignateToStockitOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderCommandsSuite) TestPartialDesignation_CreatesEntryAndGuardsCeiling() {
	first := s.givenOrder(order.Processing)
	second := s.givenOrder(order.Processing)
	pkg := s.givenPackage(3, 3)
	s.givenEntry(first, pkg, 2, orderspackage.Designated)
	h := commands.NewAddPartiallyDesignatedItemCommandHandler(s.factory, s.metrics)

	cmd, err := commands.NewAddPartiallyDesignatedItemCommand(pkg.ID(), second.ID(), 1, s.actor)
	s.Require().NoError(err)
	result, err := h.Handle(s.ctx, cmd)
	s.Require().NoError(err)
	s.Equal(kernel.Changed, result.Outcome)
	s.Len(s.entriesOf(pkg), 2)

	_, err = h.Handle(s.ctx, cmd)
	s.Require().ErrorIs(err, errs.ErrValidationFailed)
	s.Equal(1, s.entry(result.OrdersPackageID).Quantity())
}

func (s *OrderCommandsSuite) TestPruneCancelledEntries() {
	o := s.givenOrder(order.Processing)
	redundant := s.givenEntry(o, s.givenPackage(1, 1), 0, orderspackage.Cancelled)
	kept := s.givenEntry(o, s.givenPackage(1, 1), 1, orderspackage.Designated)
	h := commands.NewPruneCancelledOrdersPackagesCommandHandler(s.factory)

	cmd, err := commands.NewPruneCancelledOrdersPackagesCommand(o.ID(), nil)
	s.Require().NoError(err)
	removed, err := h.Handle(s.ctx, cmd)
	s.Require().NoError(err)
	s.EqualValues(1, removed)

	_, err = s.uows.Create().OrdersPackageRepository().Get(s.ctx, redundant.ID())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
	s.Equal(1, s.entry(kept.ID()).Quantity())
}

func (s *OrderCommandsSuite) TestDesignateStockitItem() {
	o := s.givenOrder(order.Processing)
	pkg := s.givenPackage(1, 1)
	s.givenEntry(o, pkg, 1, orderspackage.Designated)
	h := commands.NewDesignateStockitItemCommandHandler(s.factory, s.sync)
	s.mirror.On("DesignateToStockitOrder", mock.Anything, matchPackage(pkg),
		ports.StockitOrderRef{OrderID: o.ID(), Code: o.Code()}).Return(nil).Once()

	cmd, err := commands.NewDesignateStockitItemCommand(pkg.ID(), o.ID(), s.now)
	s.Require().NoError(err)
	s.Require().NoError(h.Handle(s.ctx, cmd))
	s.mirror.AssertExpectations(s.T())
}

func (s *OrderCommandsSuite) TestDesignateStockitItem_RequiresLedgerEntry() {
	o := s.givenOrder(order.Processing)
	pkg := s.givenPackage(1, 1)
	s.givenEntry(o, pkg, 1, orderspackage.Requested)
	h := commands.NewDesignateStockitItemCommandHandler(s.factory, s.sync)

	cmd, err := commands.NewDesignateStockitItemCommand(pkg.ID(), o.ID(), s.now)
	s.Require().NoError(err)
	s.Require().ErrorIs(h.Handle(s.ctx, cmd), errs.ErrValidationFailed)
	s.mirror.AssertNotCalled(s.T(), "DesignateToStockitOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderCommandsSuite) TestResolveSyncIssue() {
	issue := ports.SyncIssue{
		ID:         kernel.NewUUID(),
		PackageID:  kernel.NewUUID(),
		Operation:  ports.SyncDesignate,
		Reason:     "connection refused",
		OccurredAt: s.now,
	}
	s.Require().NoError(s.issues.Record(s.ctx, issue))
	h := commands.NewResolveSyncIssueCommandHandler(s.issues)

	cmd, err := commands.NewResolveSyncIssueCommand(issue.ID, s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.Require().NoError(h.Handle(s.ctx, cmd))
	s.Zero(s.openIssues())

	s.Require().ErrorIs(h.Handle(s.ctx, cmd), errs.ErrObjectNotFound)
}
