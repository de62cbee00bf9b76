package services

import (
	"errors"
	"fmt"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/orderspackage"
	"donations/internal/pkg/errs"
)

// MsgAlreadyDesignated is the violation reported when a package is designated again to the
// order that already holds it.
const MsgAlreadyDesignated = "Already designated to this Order"

// QuantitySpec says how many units a designation moves: an explicit amount, or the whole
// received quantity of the package.
type QuantitySpec struct {
	full     bool
	quantity int
}

func Exactly(quantity int) QuantitySpec {
	return QuantitySpec{quantity: quantity}
}

func FullReceived() QuantitySpec {
	return QuantitySpec{full: true}
}

func (q QuantitySpec) IsFull() bool {
	return q.full
}

// Amount is the explicit quantity. It is zero for FullReceived.
func (q QuantitySpec) Amount() int {
	return q.quantity
}

// Resolve returns the number of units q stands for against pkg.
func (q QuantitySpec) Resolve(pkg *donation.Package) int {
	if q.full {
		return pkg.ReceivedQuantity()
	}
	return q.quantity
}

// DesignationRequest asks to allocate units of a package to an order.
type DesignationRequest struct {
	OrderID  kernel.UUID
	Quantity QuantitySpec
	// OrdersPackageID points at the entry currently holding the package, if the caller knows it.
	OrdersPackageID *kernel.UUID
	Actor           kernel.UUID
}

// DesignationPlan is the set of ledger mutations a designation resolves to. The entries it
// references have already been mutated in memory.
type DesignationPlan struct {
	Entry      *orderspackage.OrdersPackage
	IsNewEntry bool
	Released   *orderspackage.OrdersPackage
	Pruned     []*orderspackage.OrdersPackage
}

// IsRedesignation reports whether the units were taken away from another order.
func (p DesignationPlan) IsRedesignation() bool {
	return p.Released != nil
}

// ReleaseRequest asks to give back units held by one ledger entry.
type ReleaseRequest struct {
	OrdersPackageID kernel.UUID
	// Quantity is the number of units to release; zero releases everything the entry holds.
	Quantity int
	// ReturnToRequested puts a designated entry back to requested instead of releasing units.
	ReturnToRequested bool
	Actor             kernel.UUID
}

// Designator decides between designation, redesignation and release of package units and
// applies the outcome to the ledger entries in memory.
//
// Business rules:
//   - A full designation of a package to the order that already holds it is rejected
//   - A full designation to another order first releases the units held by the current entry
//   - Only requested or designated entries can be redesignated away
//   - The resulting active quantities never exceed the package's receivable quantity
type Designator struct {
	guard AllocationGuard
}

func NewDesignator() Designator {
	return Designator{guard: NewAllocationGuard()}
}

// PlanDesignation resolves req against the package and all of its ledger entries.
// On error the entries may be partially mutated and must be discarded by the caller.
func (d Designator) PlanDesignation(
	pkg *donation.Package,
	entries []*orderspackage.OrdersPackage,
	req DesignationRequest,
) (DesignationPlan, error) {
	if err := d.validate(pkg, entries, req.OrderID, req.Actor); err != nil {
		return DesignationPlan{}, err
	}

	quantity := req.Quantity.Resolve(pkg)
	if quantity <= 0 {
		return DesignationPlan{}, errs.NewValidationError("orders_package", "quantity", "must be greater than 0")
	}

	var plan DesignationPlan

	if req.Quantity.IsFull() {
		ref, err := d.referenceEntry(entries, req.OrdersPackageID)
		if err != nil {
			return DesignationPlan{}, err
		}
		if ref != nil {
			if ref.BelongsTo(req.OrderID) {
				return DesignationPlan{}, errs.NewValidationError("orders_package", "package_id", MsgAlreadyDesignated)
			}
			if err := d.release(ref, ref.Quantity(), req.Actor); err != nil {
				return DesignationPlan{}, err
			}
			plan.Released = ref
			if ref.IsRedundant() {
				plan.Pruned = append(plan.Pruned, ref)
			}
		}
	}

	entry := findByOrder(entries, req.OrderID)
	if entry == nil {
		created, err := orderspackage.NewOrdersPackage(
			kernel.NewUUID(), req.OrderID, pkg.ID(), quantity, orderspackage.Designated, req.Actor,
		)
		if err != nil {
			return DesignationPlan{}, err
		}
		entry = created
		plan.IsNewEntry = true
		entries = append(entries, entry)
	} else if err := entry.Designate(req.OrderID, quantity, req.Actor); err != nil {
		return DesignationPlan{}, toValidation(err)
	}
	plan.Entry = entry

	if err := d.guard.Check(pkg, entries); err != nil {
		return DesignationPlan{}, err
	}

	return plan, nil
}

// PlanPartialDesignation adds quantity units for an order that may already hold some of the
// package. An existing entry grows (and is resurrected when cancelled); otherwise a new
// designated entry is created.
func (d Designator) PlanPartialDesignation(
	pkg *donation.Package,
	entries []*orderspackage.OrdersPackage,
	orderID kernel.UUID,
	quantity int,
	actor kernel.UUID,
) (DesignationPlan, error) {
	if err := d.validate(pkg, entries, orderID, actor); err != nil {
		return DesignationPlan{}, err
	}
	if quantity <= 0 {
		return DesignationPlan{}, errs.NewValidationError("orders_package", "quantity", "must be greater than 0")
	}

	var plan DesignationPlan
	entry := findByOrder(entries, orderID)
	if entry == nil {
		created, err := orderspackage.NewOrdersPackage(
			kernel.NewUUID(), orderID, pkg.ID(), quantity, orderspackage.Designated, actor,
		)
		if err != nil {
			return DesignationPlan{}, err
		}
		entry = created
		plan.IsNewEntry = true
		entries = append(entries, entry)
	} else if err := entry.UpdatePartiallyDesignatedItem(quantity, actor); err != nil {
		return DesignationPlan{}, toValidation(err)
	}
	plan.Entry = entry

	if err := d.guard.Check(pkg, entries); err != nil {
		return DesignationPlan{}, err
	}
	return plan, nil
}

// PlanRelease gives back units held by one entry of pkg and returns the mutated entry.
func (d Designator) PlanRelease(
	pkg *donation.Package,
	entries []*orderspackage.OrdersPackage,
	req ReleaseRequest,
) (*orderspackage.OrdersPackage, kernel.Outcome, error) {
	if err := errors.Join(pkg.Validate(), req.Actor.Validate(), req.OrdersPackageID.Validate()); err != nil {
		return nil, kernel.Unchanged, err
	}

	entry := findByID(entries, req.OrdersPackageID)
	if entry == nil || !entry.PackageID().IsEqual(pkg.ID()) {
		return nil, kernel.Unchanged, errs.NewObjectNotFoundError("orders package", req.OrdersPackageID.String())
	}

	if req.ReturnToRequested {
		outcome, err := entry.Undesignate(req.Actor)
		return entry, outcome, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = entry.Quantity()
	}
	if quantity < 0 || quantity > entry.Quantity() {
		return nil, kernel.Unchanged, errs.NewValidationError(
			"orders_package", "quantity",
			fmt.Sprintf("cannot release %d of %d units", quantity, entry.Quantity()),
		)
	}
	if err := d.release(entry, quantity, req.Actor); err != nil {
		return nil, kernel.Unchanged, err
	}
	return entry, kernel.Changed, nil
}

func (d Designator) release(entry *orderspackage.OrdersPackage, quantity int, actor kernel.UUID) error {
	switch entry.State() {
	case orderspackage.Requested, orderspackage.Designated, orderspackage.Cancelled:
	case orderspackage.Received, orderspackage.Dispatched, orderspackage.Unknown:
		return errs.NewValidationError("orders_package", "state",
			fmt.Sprintf("%s item cannot be undesignated", entry.State()))
	}
	return entry.UpdateOrdersPackageState(entry.Quantity()-quantity, actor)
}

func (d Designator) validate(
	pkg *donation.Package,
	entries []*orderspackage.OrdersPackage,
	orderID, actor kernel.UUID,
) error {
	if err := errors.Join(pkg.Validate(), orderID.Validate(), actor.Validate()); err != nil {
		return err
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if !e.PackageID().IsEqual(pkg.ID()) {
			return errs.NewValueIsInvalidErrorWithCause("entries",
				fmt.Errorf("entry %s belongs to package %s", e.ID(), e.PackageID()))
		}
	}
	return nil
}

// referenceEntry finds the entry a full designation starts from: the one named by id, or
// otherwise the single designated entry of the package.
func (d Designator) referenceEntry(
	entries []*orderspackage.OrdersPackage,
	id *kernel.UUID,
) (*orderspackage.OrdersPackage, error) {
	if id != nil {
		entry := findByID(entries, *id)
		if entry == nil {
			return nil, errs.NewObjectNotFoundError("orders package", id.String())
		}
		return entry, nil
	}

	var found *orderspackage.OrdersPackage
	for _, e := range entries {
		if e.State() != orderspackage.Designated {
			continue
		}
		if found != nil {
			return nil, nil
		}
		found = e
	}
	return found, nil
}

func findByOrder(entries []*orderspackage.OrdersPackage, orderID kernel.UUID) *orderspackage.OrdersPackage {
	for _, e := range entries {
		if e.BelongsTo(orderID) {
			return e
		}
	}
	return nil
}

func findByID(entries []*orderspackage.OrdersPackage, id kernel.UUID) *orderspackage.OrdersPackage {
	for _, e := range entries {
		if e.ID().IsEqual(id) {
			return e
		}
	}
	return nil
}

func toValidation(err error) error {
	var invalid *errs.ValueIsInvalidError
	if errors.As(err, &invalid) {
		return errs.NewValidationError("orders_package", invalid.ParamName, invalid.Error())
	}
	return err
}
