package donation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage or RestorePackage")

// Package is a donated item or batch of identical items held in inventory.
//
// Two counts are tracked:
//   - quantity is what is currently on hand and not split away
//   - receivedQuantity is the receivable total; it is the upper bound for the sum of
//     quantities held by active ledger entries of this package
//
// Package is also the lock target for designation: all ledger writes for a package are
// serialized on its row. mirrorVersion counts the designation changes committed under that
// lock and orders the pushes to the inventory mirror.
type Package struct {
	id               kernel.UUID
	inventoryNumber  string
	quantity         int
	receivedQuantity int
	stockitID        *int
	mirrorVersion    int64
	locations        []*PackagesLocation
	guard            guard.ConstructorGuard
}

// NewPackage registers a freshly received package with no location history.
func NewPackage(id kernel.UUID, inventoryNumber string, quantity, receivedQuantity int) (*Package, error) {
	return RestorePackage(id, inventoryNumber, quantity, receivedQuantity, nil, 0, nil)
}

// RestorePackage rebuilds a package from persistence.
func RestorePackage(
	id kernel.UUID,
	inventoryNumber string,
	quantity, receivedQuantity int,
	stockitID *int,
	mirrorVersion int64,
	locations []*PackagesLocation,
) (*Package, error) {
	p := &Package{
		guard:     guard.NewConstructorGuard(),
		stockitID: stockitID,
	}

	if err := errors.Join(
		p.setID(id),
		p.setInventoryNumber(inventoryNumber),
		p.setQuantities(quantity, receivedQuantity),
		p.setMirrorVersion(mirrorVersion),
		p.setLocations(locations),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Package) Validate() error {
	if p == nil {
		return ErrPackageIsNotConstructed
	}
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

func (p *Package) ID() kernel.UUID         { return p.id }
func (p *Package) InventoryNumber() string { return p.inventoryNumber }
func (p *Package) Quantity() int           { return p.quantity }
func (p *Package) ReceivedQuantity() int   { return p.receivedQuantity }
func (p *Package) StockitID() *int         { return p.stockitID }
func (p *Package) MirrorVersion() int64    { return p.mirrorVersion }

// BumpMirrorVersion marks a designation change that has to reach the inventory mirror.
// Callers hold the package row lock and persist the package in the same transaction.
func (p *Package) BumpMirrorVersion() int64 {
	p.mirrorVersion++
	return p.mirrorVersion
}

// ReceivableQuantity is the ceiling for the sum of active ledger entry quantities.
func (p *Package) ReceivableQuantity() int {
	return p.receivedQuantity
}

// Locations returns a copy of the location history, oldest first.
func (p *Package) Locations() []*PackagesLocation {
	out := make([]*PackagesLocation, len(p.locations))
	copy(out, p.locations)
	return out
}

// IsEqual compares packages by identity.
func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// UpdateQuantity sets the on-hand quantity, for example after part of a batch was split off.
func (p *Package) UpdateQuantity(quantity int) error {
	if err := kernel.ValidateQuantity("quantity", quantity); err != nil {
		return err
	}
	p.quantity = quantity
	return nil
}

// AddLocation appends an entry to the location history.
func (p *Package) AddLocation(location Location, quantity int, at time.Time) (*PackagesLocation, error) {
	pl, err := NewPackagesLocation(kernel.NewUUID(), location, quantity, at)
	if err != nil {
		return nil, err
	}
	p.locations = append(p.locations, pl)
	return pl, nil
}

// AddDispatchedLocation records quantity units as having left through dispatch.
func (p *Package) AddDispatchedLocation(quantity int, at time.Time) (*PackagesLocation, error) {
	return p.AddLocation(DispatchedLocation(), quantity, at)
}

// HasDispatchedLocation reports whether any history entry is at the Dispatched marker.
func (p *Package) HasDispatchedLocation() bool {
	for _, l := range p.locations {
		if l.Location().IsDispatched() {
			return true
		}
	}
	return false
}

func (p *Package) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Package) setInventoryNumber(inventoryNumber string) error {
	inventoryNumber = strings.TrimSpace(inventoryNumber)
	if inventoryNumber == "" {
		return errs.NewValueIsRequiredError("inventory number")
	}
	p.inventoryNumber = inventoryNumber
	return nil
}

func (p *Package) setQuantities(quantity, receivedQuantity int) error {
	if err := errors.Join(
		kernel.ValidateQuantity("quantity", quantity),
		kernel.ValidateQuantity("received quantity", receivedQuantity),
	); err != nil {
		return err
	}
	p.quantity = quantity
	p.receivedQuantity = receivedQuantity
	return nil
}

func (p *Package) setMirrorVersion(version int64) error {
	if version < 0 {
		return errs.NewValueIsOutOfRangeError("mirror version", version, 0, math.MaxInt64)
	}
	p.mirrorVersion = version
	return nil
}

func (p *Package) setLocations(locations []*PackagesLocation) error {
	for i, l := range locations {
		if err := l.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("locations", fmt.Errorf("entry %d: %w", i, err))
		}
	}
	p.locations = append([]*PackagesLocation(nil), locations...)
	return nil
}
