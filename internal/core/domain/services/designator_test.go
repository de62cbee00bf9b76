package services_test

import (
	"testing"
	"time"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/orderspackage"
	"donations/internal/core/domain/services"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPackage(t *testing.T, quantity, received int) *donation.Package {
	t.Helper()
	p, err := donation.NewPackage(kernel.NewUUID(), "X0001", quantity, received)
	require.NoError(t, err)
	return p
}

func newEntry(
	t *testing.T,
	pkg *donation.Package,
	orderID kernel.UUID,
	quantity int,
	state orderspackage.State,
) *orderspackage.OrdersPackage {
	t.Helper()
	var sentOn *time.Time
	if state == orderspackage.Dispatched {
		now := time.Now()
		sentOn = &now
	}
	op, err := orderspackage.RestoreOrdersPackage(kernel.NewUUID(), orderID, pkg.ID(), quantity, state, sentOn, kernel.NewUUID())
	require.NoError(t, err)
	return op
}

func TestDesignator_PlanDesignation_Fresh(t *testing.T) {
	d := services.NewDesignator()
	actor := kernel.NewUUID()

	t.Run("creates a designated entry", func(t *testing.T) {
		pkg := newPackage(t, 5, 5)
		orderID := kernel.NewUUID()

		plan, err := d.PlanDesignation(pkg, nil, services.DesignationRequest{
			OrderID: orderID, Quantity: services.Exactly(2), Actor: actor,
		})

		require.NoError(t, err)
		assert.True(t, plan.IsNewEntry)
		assert.False(t, plan.IsRedesignation())
		assert.Equal(t, orderspackage.Designated, plan.Entry.State())
		assert.Equal(t, 2, plan.Entry.Quantity())
		assert.True(t, plan.Entry.BelongsTo(orderID))
		assert.True(t, plan.Entry.UpdatedBy().IsEqual(actor))
	})

	t.Run("full received quantity", func(t *testing.T) {
		pkg := newPackage(t, 1, 3)

		plan, err := d.PlanDesignation(pkg, nil, services.DesignationRequest{
			OrderID: kernel.NewUUID(), Quantity: services.FullReceived(), Actor: actor,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, plan.Entry.Quantity())
	})

	t.Run("updates the existing entry of the same order", func(t *testing.T) {
		pkg := newPackage(t, 4, 4)
		orderID := kernel.NewUUID()
		requested := newEntry(t, pkg, orderID, 1, orderspackage.Requested)

		plan, err := d.PlanDesignation(pkg, []*orderspackage.OrdersPackage{requested}, services.DesignationRequest{
			OrderID: orderID, Quantity: services.Exactly(3), Actor: actor,
		})

		require.NoError(t, err)
		assert.False(t, plan.IsNewEntry)
		assert.Same(t, requested, plan.Entry)
		assert.Equal(t, orderspackage.Designated, requested.State())
		assert.Equal(t, 3, requested.Quantity())
	})

	t.Run("over-allocation is a validation error", func(t *testing.T) {
		pkg := newPackage(t, 3, 3)
		other := newEntry(t, pkg, kernel.NewUUID(), 2, orderspackage.Designated)

		_, err := d.PlanDesignation(pkg, []*orderspackage.OrdersPackage{other}, services.DesignationRequest{
			OrderID: kernel.NewUUID(), Quantity: services.Exactly(2), Actor: actor,
		})

		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "quantity", verr.Violations[0].Field)
	})

	t.Run("cancelled entries do not count against the package", func(t *testing.T) {
		pkg := newPackage(t, 2, 2)
		rejected := newEntry(t, pkg, kernel.NewUUID(), 2, orderspackage.Cancelled)

		_, err := d.PlanDesignation(pkg, []*orderspackage.OrdersPackage{rejected}, services.DesignationRequest{
			OrderID: kernel.NewUUID(), Quantity: services.Exactly(2), Actor: actor,
		})
		require.NoError(t, err)
	})

	t.Run("zero explicit quantity is rejected", func(t *testing.T) {
		_, err := d.PlanDesignation(newPackage(t, 1, 1), nil, services.DesignationRequest{
			OrderID: kernel.NewUUID(), Quantity: services.Exactly(0), Actor: actor,
		})
		require.ErrorIs(t, err, errs.ErrValidationFailed)
	})

	t.Run("actor is required", func(t *testing.T) {
		_, err := d.PlanDesignation(newPackage(t, 1, 1), nil, services.DesignationRequest{
			OrderID: kernel.NewUUID(), Quantity: services.Exactly(1),
		})
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("entries of another package are refused", func(t *testing.T) {
		pkg := newPackage(t, 1, 1)
		foreign := newEntry(t, newPackage(t, 1, 1), kernel.NewUUID(), 1, orderspackage.Designated)

		_, err := d.PlanDesignation(pkg, []*orderspackage.OrdersPackage{foreign}, services.DesignationRequest{
			OrderID: kernel.NewUUID(), Quantity: services.Exactly(1), Actor: actor,
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDesignator_PlanDesignation_Full(t *testing.T) {
	d := services.NewDesignator()
	actor := kernel.NewUUID()

	t.Run("same order is rejected", func(t *testing.T) {
		pkg := newPackage(t, 1, 1)
		orderA := kernel.NewUUID()
		e1 := newEntry(t, pkg, orderA, 1, orderspackage.Designated)
		e1ID := e1.ID()

		_, err := d.PlanDesignation(pkg, []*orderspackage.OrdersPackage{e1}, services.DesignationRequest{
			OrderID: orderA, Quantity: services.FullReceived(), OrdersPackageID: &e1ID, Actor: actor,
		})

		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("package_id", services.MsgAlreadyDesignated))
		assert.Equal(t, 1, e1.Quantity())
		assert.Equal(t, orderspackage.Designated, e1.State())
	})

	t.Run("same order is detected without an entry id", func(t *testing.T) {
		pkg := newPackage(t, 2, 2)
		orderA := kernel.NewUUID()
		e1 := newEntry(t, pkg, orderA, 2, orderspackage.Designated)

		_, err := d.PlanDesignation(pkg, []*orderspackage.OrdersPackage{e1}, services.DesignationRequest{
			OrderID: orderA, Quantity: services.FullReceived(), Actor: actor,
		})
		require.ErrorIs(t, err, errs.ErrValidationFailed)
	})

	t.Run("redesignation moves the units to the new order", func(t *testing.T) {
		pkg := newPackage(t, 1, 1)
		orderA, orderB := kernel.NewUUID(), kernel.NewUUID()
		e1 := newEntry(t, pkg, orderA, 1, orderspackage.Designated)
		e1ID := e1.ID()

		plan, err := d.PlanDesignation(pkg, []*orderspackage.OrdersPackage{e1}, services.DesignationRequest{
			OrderID: orderB, Quantity: services.FullReceived(), OrdersPackageID: &e1ID, Actor: actor,
		})

		require.NoError(t, err)
		assert.True(t, plan.IsRedesignation())
		assert.Same(t, e1, plan.Released)
		assert.Equal(t, orderspackage.Cancelled, e1.State())
		assert.Equal(t, 0, e1.Quantity())
		assert.Equal(t, []*orderspackage.OrdersPackage{e1}, plan.Pruned)
		assert.True(t, plan.IsNewEntry)
		assert.True(t, plan.Entry.BelongsTo(orderB))
		assert.Equal(t, 1, plan.Entry.Quantity())
		assert.Equal(t, orderspackage.Designated, plan.Entry.State())
	})

	t.Run("released units follow the entry, not the received quantity", func(t *testing.T) {
		pkg := newPackage(t, 3, 3)
		orderA, orderB := kernel.NewUUID(), kernel.NewUUID()
		e1 := newEntry(t, pkg, orderA, 3, orderspackage.Designated)
		e1ID := e1.ID()
		require.NoError(t, pkg.UpdateQuantity(1))

		plan, err := d.PlanDesignation(pkg, []*orderspackage.OrdersPackage{e1}, services.DesignationRequest{
			OrderID: orderB, Quantity: services.FullReceived(), OrdersPackageID: &e1ID, Actor: actor,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, e1.Quantity())
		assert.Equal(t, 3, plan.Entry.Quantity())
	})

	t.Run("dispatched entries cannot be moved", func(t *testing.T) {
		pkg := newPackage(t, 1, 1)
		e1 := newEntry(t, pkg, kernel.NewUUID(), 1, orderspackage.Dispatched)
		e1ID := e1.ID()

		_, err := d.PlanDesignation(pkg, []*orderspackage.OrdersPackage{e1}, services.DesignationRequest{
			OrderID: kernel.NewUUID(), Quantity: services.FullReceived(), OrdersPackageID: &e1ID, Actor: actor,
		})

		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "state", verr.Violations[0].Field)
	})

	t.Run("unknown entry id", func(t *testing.T) {
		missing := kernel.NewUUID()

		_, err := d.PlanDesignation(newPackage(t, 1, 1), nil, services.DesignationRequest{
			OrderID: kernel.NewUUID(), Quantity: services.FullReceived(), OrdersPackageID: &missing, Actor: actor,
		})
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestDesignator_PlanPartialDesignation(t *testing.T) {
	d := services.NewDesignator()
	actor := kernel.NewUUID()

	t.Run("resurrects a cancelled entry", func(t *testing.T) {
		pkg := newPackage(t, 2, 2)
		orderID := kernel.NewUUID()
		cancelled := newEntry(t, pkg, orderID, 0, orderspackage.Cancelled)

		plan, err := d.PlanPartialDesignation(pkg, []*orderspackage.OrdersPackage{cancelled}, orderID, 2, actor)

		require.NoError(t, err)
		assert.False(t, plan.IsNewEntry)
		assert.Equal(t, orderspackage.Designated, cancelled.State())
		assert.Equal(t, 2, cancelled.Quantity())
	})

	t.Run("dispatched entry keeps its state", func(t *testing.T) {
		pkg := newPackage(t, 3, 3)
		orderID := kernel.NewUUID()
		dispatched := newEntry(t, pkg, orderID, 1, orderspackage.Dispatched)

		_, err := d.PlanPartialDesignation(pkg, []*orderspackage.OrdersPackage{dispatched}, orderID, 1, actor)

		require.NoError(t, err)
		assert.Equal(t, orderspackage.Dispatched, dispatched.State())
		assert.Equal(t, 2, dispatched.Quantity())
	})

	t.Run("creates a new entry for a new order", func(t *testing.T) {
		pkg := newPackage(t, 3, 3)

		plan, err := d.PlanPartialDesignation(pkg, nil, kernel.NewUUID(), 1, actor)

		require.NoError(t, err)
		assert.True(t, plan.IsNewEntry)
	})

	t.Run("cannot exceed the receivable quantity", func(t *testing.T) {
		pkg := newPackage(t, 2, 2)
		orderID := kernel.NewUUID()
		held := newEntry(t, pkg, orderID, 2, orderspackage.Designated)

		_, err := d.PlanPartialDesignation(pkg, []*orderspackage.OrdersPackage{held}, orderID, 1, actor)
		require.ErrorIs(t, err, errs.ErrValidationFailed)
	})
}

func TestDesignator_PlanRelease(t *testing.T) {
	d := services.NewDesignator()
	actor := kernel.NewUUID()

	t.Run("partial release keeps the entry designated", func(t *testing.T) {
		pkg := newPackage(t, 3, 3)
		e := newEntry(t, pkg, kernel.NewUUID(), 3, orderspackage.Designated)

		got, outcome, err := d.PlanRelease(pkg, []*orderspackage.OrdersPackage{e}, services.ReleaseRequest{
			OrdersPackageID: e.ID(), Quantity: 1, Actor: actor,
		})

		require.NoError(t, err)
		assert.Equal(t, kernel.Changed, outcome)
		assert.Same(t, e, got)
		assert.Equal(t, 2, e.Quantity())
		assert.Equal(t, orderspackage.Designated, e.State())
	})

	t.Run("zero quantity releases everything", func(t *testing.T) {
		pkg := newPackage(t, 3, 3)
		e := newEntry(t, pkg, kernel.NewUUID(), 3, orderspackage.Designated)

		_, _, err := d.PlanRelease(pkg, []*orderspackage.OrdersPackage{e}, services.ReleaseRequest{
			OrdersPackageID: e.ID(), Actor: actor,
		})

		require.NoError(t, err)
		assert.Equal(t, orderspackage.Cancelled, e.State())
		assert.True(t, e.IsRedundant())
	})

	t.Run("return to requested", func(t *testing.T) {
		pkg := newPackage(t, 3, 3)
		e := newEntry(t, pkg, kernel.NewUUID(), 3, orderspackage.Designated)

		_, outcome, err := d.PlanRelease(pkg, []*orderspackage.OrdersPackage{e}, services.ReleaseRequest{
			OrdersPackageID: e.ID(), ReturnToRequested: true, Actor: actor,
		})

		require.NoError(t, err)
		assert.Equal(t, kernel.Changed, outcome)
		assert.Equal(t, orderspackage.Requested, e.State())
		assert.Equal(t, 3, e.Quantity())
	})

	t.Run("cannot release more than held", func(t *testing.T) {
		pkg := newPackage(t, 3, 3)
		e := newEntry(t, pkg, kernel.NewUUID(), 1, orderspackage.Designated)

		_, _, err := d.PlanRelease(pkg, []*orderspackage.OrdersPackage{e}, services.ReleaseRequest{
			OrdersPackageID: e.ID(), Quantity: 2, Actor: actor,
		})
		require.ErrorIs(t, err, errs.ErrValidationFailed)
		assert.Equal(t, 1, e.Quantity())
	})

	t.Run("unknown entry", func(t *testing.T) {
		_, _, err := d.PlanRelease(newPackage(t, 1, 1), nil, services.ReleaseRequest{
			OrdersPackageID: kernel.NewUUID(), Actor: actor,
		})
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
