package orderspackagerepo_test

import (
	"context"
	"testing"
	"time"

	"donations/internal/adapters/out/postgres/orderspackagerepo"
	"donations/internal/adapters/out/postgres/testdb"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/orderspackage"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

func newRepository(t *testing.T) *orderspackagerepo.GormOrdersPackageRepository {
	t.Helper()
	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	return orderspackagerepo.NewGormOrdersPackageRepository(testdb.NewSQLite(t), tracker)
}

func newEntry(t *testing.T, orderID, packageID kernel.UUID, quantity int, state orderspackage.State) *orderspackage.OrdersPackage {
	t.Helper()
	entry, err := orderspackage.NewOrdersPackage(kernel.NewUUID(), orderID, packageID, quantity, state, kernel.NewUUID())
	require.NoError(t, err)
	return entry
}

func TestOrdersPackageRepository_AddGetUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	orderID, packageID, actor := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	entry := newEntry(t, orderID, packageID, 3, orderspackage.Designated)
	require.NoError(t, repo.Add(ctx, entry))

	sentAt := time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)
	outcome, err := entry.Dispatch(sentAt, actor)
	require.NoError(t, err)
	require.True(t, outcome.IsChanged())
	require.NoError(t, repo.Update(ctx, entry))

	got, err := repo.Get(ctx, entry.ID())
	require.NoError(t, err)
	assert.Equal(t, orderspackage.Dispatched, got.State())
	assert.Equal(t, 3, got.Quantity())
	require.NotNil(t, got.SentOn())
	assert.True(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC).Equal(*got.SentOn()), got.SentOn())
	assert.True(t, actor.IsEqual(got.UpdatedBy()))

	// undispatch clears sent_on, which must be persisted as NULL
	_, err = got.Undispatch(actor)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.Get(ctx, entry.ID())
	require.NoError(t, err)
	assert.Equal(t, orderspackage.Designated, again.State())
	assert.Nil(t, again.SentOn())
}

func TestOrdersPackageRepository_UpdatePersistsZeroQuantity(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	entry := newEntry(t, kernel.NewUUID(), kernel.NewUUID(), 2, orderspackage.Designated)
	require.NoError(t, repo.Add(ctx, entry))
	require.NoError(t, entry.UpdateOrdersPackageState(0, kernel.NewUUID()))
	require.NoError(t, repo.Update(ctx, entry))

	got, err := repo.Get(ctx, entry.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity())
	assert.Equal(t, orderspackage.Cancelled, got.State())
	assert.True(t, got.IsRedundant())
}

func TestOrdersPackageRepository_UniqueOrderPackagePair(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	orderID, packageID := kernel.NewUUID(), kernel.NewUUID()

	require.NoError(t, repo.Add(ctx, newEntry(t, orderID, packageID, 1, orderspackage.Designated)))
	assert.Error(t, repo.Add(ctx, newEntry(t, orderID, packageID, 1, orderspackage.Requested)))
}

func TestOrdersPackageRepository_Lists(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	orderA, orderB, pkg1, pkg2 := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	require.NoError(t, repo.Add(ctx, newEntry(t, orderA, pkg1, 1, orderspackage.Designated)))
	require.NoError(t, repo.Add(ctx, newEntry(t, orderB, pkg1, 2, orderspackage.Designated)))
	require.NoError(t, repo.Add(ctx, newEntry(t, orderA, pkg2, 0, orderspackage.Requested)))

	byPackage, err := repo.ListByPackage(ctx, pkg1)
	require.NoError(t, err)
	assert.Len(t, byPackage, 2)

	byOrder, err := repo.ListByOrder(ctx, orderA)
	require.NoError(t, err)
	assert.Len(t, byOrder, 2)

	none, err := repo.ListByOrder(ctx, kernel.NewUUID())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrdersPackageRepository_Redundant(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)
	orderA, orderB := kernel.NewUUID(), kernel.NewUUID()
	actor := kernel.NewUUID()

	cancelled := func(orderID kernel.UUID) *orderspackage.OrdersPackage {
		entry := newEntry(t, orderID, kernel.NewUUID(), 1, orderspackage.Designated)
		require.NoError(t, entry.UpdateOrdersPackageState(0, actor))
		require.NoError(t, repo.Add(ctx, entry))
		return entry
	}

	redundantA1 := cancelled(orderA)
	cancelled(orderA)
	cancelled(orderB)

	rejected := newEntry(t, orderA, kernel.NewUUID(), 4, orderspackage.Requested)
	_, err := rejected.Reject(actor)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, rejected))

	ids, err := repo.ListOrderIDsWithRedundant(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	packageID := redundantA1.PackageID()
	removed, err := repo.DeleteRedundant(ctx, orderA, &packageID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = repo.DeleteRedundant(ctx, orderA, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	// cancelled entries that still carry a quantity are kept
	_, err = repo.Get(ctx, rejected.ID())
	require.NoError(t, err)

	ids, err = repo.ListOrderIDsWithRedundant(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.True(t, orderB.IsEqual(ids[0]))
}

func TestOrdersPackageRepository_DeleteAndNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	entry := newEntry(t, kernel.NewUUID(), kernel.NewUUID(), 1, orderspackage.Designated)
	require.NoError(t, repo.Add(ctx, entry))
	require.NoError(t, repo.Delete(ctx, entry.ID()))

	_, err := repo.Get(ctx, entry.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.ErrorIs(t, repo.Delete(ctx, entry.ID()), errs.ErrObjectNotFound)
	require.ErrorIs(t, repo.Update(ctx, entry), errs.ErrObjectNotFound)
}
