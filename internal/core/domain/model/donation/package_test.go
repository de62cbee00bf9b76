package donation_test

import (
	"testing"
	"time"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackage(t *testing.T) {
	t.Run("valid package", func(t *testing.T) {
		id := kernel.NewUUID()
		p, err := donation.NewPackage(id, " A0001 ", 3, 5)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, "A0001", p.InventoryNumber())
		assert.Equal(t, 3, p.Quantity())
		assert.Equal(t, 5, p.ReceivedQuantity())
		assert.Equal(t, 5, p.ReceivableQuantity())
		assert.Nil(t, p.StockitID())
		assert.Empty(t, p.Locations())
	})

	t.Run("collects every invalid argument", func(t *testing.T) {
		p, err := donation.NewPackage(kernel.UUID{}, "", -1, -2)

		require.Error(t, err)
		assert.Nil(t, p)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "-1 is negative")
		assert.Contains(t, err.Error(), "-2 is negative")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var p donation.Package
		assert.Equal(t, donation.ErrPackageIsNotConstructed, p.Validate())

		var nilPkg *donation.Package
		assert.Equal(t, donation.ErrPackageIsNotConstructed, nilPkg.Validate())
	})
}

func TestRestorePackage(t *testing.T) {
	stockitID := 42
	shelf, err := donation.NewLocation("Warehouse", "B1")
	require.NoError(t, err)
	loc, err := donation.NewPackagesLocation(kernel.NewUUID(), shelf, 2, time.Now())
	require.NoError(t, err)

	p, err := donation.RestorePackage(kernel.NewUUID(), "A0002", 2, 2, &stockitID, 7, []*donation.PackagesLocation{loc})

	require.NoError(t, err)
	assert.Equal(t, 42, *p.StockitID())
	assert.EqualValues(t, 7, p.MirrorVersion())
	require.Len(t, p.Locations(), 1)
	assert.Equal(t, "Warehouse", p.Locations()[0].Location().Building())

	_, err = donation.RestorePackage(kernel.NewUUID(), "A0003", 1, 1, nil, 0, []*donation.PackagesLocation{{}})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = donation.RestorePackage(kernel.NewUUID(), "A0005", 1, 1, nil, -1, nil)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestPackage_BumpMirrorVersion(t *testing.T) {
	p, err := donation.NewPackage(kernel.NewUUID(), "A0006", 1, 1)
	require.NoError(t, err)
	assert.Zero(t, p.MirrorVersion())

	assert.EqualValues(t, 1, p.BumpMirrorVersion())
	assert.EqualValues(t, 2, p.BumpMirrorVersion())
	assert.EqualValues(t, 2, p.MirrorVersion())
}

func TestPackage_UpdateQuantity(t *testing.T) {
	p, err := donation.NewPackage(kernel.NewUUID(), "A0004", 5, 5)
	require.NoError(t, err)

	require.NoError(t, p.UpdateQuantity(2))
	assert.Equal(t, 2, p.Quantity())
	assert.Equal(t, 5, p.ReceivedQuantity())

	require.Error(t, p.UpdateQuantity(-1))
	assert.Equal(t, 2, p.Quantity())
}

func TestPackage_AddDispatchedLocation(t *testing.T) {
	p, err := donation.NewPackage(kernel.NewUUID(), "A0005", 1, 1)
	require.NoError(t, err)
	assert.False(t, p.HasDispatchedLocation())

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	pl, err := p.AddDispatchedLocation(1, at)

	require.NoError(t, err)
	assert.True(t, pl.Location().IsDispatched())
	assert.Equal(t, at, pl.RecordedAt())
	assert.Equal(t, 1, pl.Quantity())
	assert.True(t, p.HasDispatchedLocation())

	// the returned history is a copy
	locs := p.Locations()
	locs[0] = nil
	require.NotNil(t, p.Locations()[0])
}

func TestLocation(t *testing.T) {
	l, err := donation.NewLocation(" 51 ", " A ")
	require.NoError(t, err)
	assert.Equal(t, "51", l.Building())
	assert.Equal(t, "A", l.Area())
	assert.False(t, l.IsDispatched())
	assert.True(t, donation.DispatchedLocation().IsDispatched())
	assert.False(t, l.IsEqual(donation.DispatchedLocation()))

	_, err = donation.NewLocation("  ", "A")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero donation.Location
	assert.Equal(t, donation.ErrLocationIsNotConstructed, zero.Validate())
}
