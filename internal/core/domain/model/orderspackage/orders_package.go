package orderspackage

import (
	"errors"
	"fmt"
	"time"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var ErrOrdersPackageIsNotConstructed = errors.New("OrdersPackage must be created via NewOrdersPackage or RestoreOrdersPackage")

// OrdersPackage is one ledger entry: quantity units of a package linked to an order.
//
// Entries are mutated only through their methods, each of which takes the acting user.
// Cross-entry checks (the package-level quantity ceiling) are not performed here.
type OrdersPackage struct {
	id        kernel.UUID
	orderID   kernel.UUID
	packageID kernel.UUID
	quantity  int
	state     State
	sentOn    *time.Time
	updatedBy kernel.UUID
	guard     guard.ConstructorGuard
}

// NewOrdersPackage creates an entry in Requested or Designated state. Designated entries
// must hold at least one unit.
func NewOrdersPackage(
	id, orderID, packageID kernel.UUID,
	quantity int,
	state State,
	actor kernel.UUID,
) (*OrdersPackage, error) {
	if state != Requested && state != Designated {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"state",
			fmt.Errorf("entries start as %s or %s, not %s", Requested, Designated, state),
		)
	}
	if state == Designated {
		if err := kernel.ValidatePositiveQuantity("quantity", quantity); err != nil {
			return nil, err
		}
	}
	return RestoreOrdersPackage(id, orderID, packageID, quantity, state, nil, actor)
}

// RestoreOrdersPackage rebuilds an entry from persistence.
func RestoreOrdersPackage(
	id, orderID, packageID kernel.UUID,
	quantity int,
	state State,
	sentOn *time.Time,
	updatedBy kernel.UUID,
) (*OrdersPackage, error) {
	op := &OrdersPackage{
		id:        id,
		orderID:   orderID,
		packageID: packageID,
		quantity:  quantity,
		state:     state,
		sentOn:    sentOn,
		updatedBy: updatedBy,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		packageID.Validate(),
		updatedBy.Validate(),
		kernel.ValidateQuantity("quantity", quantity),
		state.Validate(),
		op.validateSentOn(),
	); err != nil {
		return nil, err
	}

	return op, nil
}

func (op *OrdersPackage) Validate() error {
	if op == nil {
		return ErrOrdersPackageIsNotConstructed
	}
	if err := op.guard.Validate(ErrOrdersPackageIsNotConstructed); err != nil {
		return err
	}
	return op.validateSentOn()
}

func (op *OrdersPackage) ID() kernel.UUID        { return op.id }
func (op *OrdersPackage) OrderID() kernel.UUID   { return op.orderID }
func (op *OrdersPackage) PackageID() kernel.UUID { return op.packageID }
func (op *OrdersPackage) Quantity() int          { return op.quantity }
func (op *OrdersPackage) State() State           { return op.state }
func (op *OrdersPackage) UpdatedBy() kernel.UUID { return op.updatedBy }

func (op *OrdersPackage) SentOn() *time.Time {
	if op.sentOn == nil {
		return nil
	}
	t := *op.sentOn
	return &t
}

func (op *OrdersPackage) IsEqual(other *OrdersPackage) bool {
	return other != nil && op.id.IsEqual(other.id)
}

// IsActive reports whether the entry counts against the package's receivable quantity.
func (op *OrdersPackage) IsActive() bool {
	return op.state.IsActive()
}

// IsRedundant reports a cancelled entry that no longer holds any units.
func (op *OrdersPackage) IsRedundant() bool {
	return op.state == Cancelled && op.quantity == 0
}

// HoldsDesignation reports an entry whose units the inventory mirror shows as designated to
// its order. Requested entries are only asks and are not mirrored.
func (op *OrdersPackage) HoldsDesignation() bool {
	return op.IsActive() && op.state != Requested && op.quantity > 0
}

func (op *OrdersPackage) BelongsTo(orderID kernel.UUID) bool {
	return op.orderID.IsEqual(orderID)
}

// Designate links the entry to orderID with quantity units and marks it designated.
func (op *OrdersPackage) Designate(orderID kernel.UUID, quantity int, actor kernel.UUID) error {
	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		kernel.ValidatePositiveQuantity("quantity", quantity),
	); err != nil {
		return err
	}

	next, ok := op.state.Next(EventDesignate)
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%s entry cannot be designated", op.state))
	}

	op.orderID = orderID
	op.quantity = quantity
	op.state = next
	op.updatedBy = actor
	return nil
}

// Reject cancels a requested entry. Entries in any other state are left as they are.
func (op *OrdersPackage) Reject(actor kernel.UUID) (kernel.Outcome, error) {
	return op.fire(EventReject, actor)
}

// Undesignate returns a designated entry to requested without touching its quantity.
func (op *OrdersPackage) Undesignate(actor kernel.UUID) (kernel.Outcome, error) {
	return op.fire(EventUndesignate, actor)
}

// Dispatch marks a designated entry as sent on the calendar day of at, in at's location.
func (op *OrdersPackage) Dispatch(at time.Time, actor kernel.UUID) (kernel.Outcome, error) {
	outcome, err := op.fire(EventDispatch, actor)
	if err != nil || !outcome.IsChanged() {
		return outcome, err
	}
	sent := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	op.sentOn = &sent
	return kernel.Changed, nil
}

// Undispatch reverses Dispatch.
func (op *OrdersPackage) Undispatch(actor kernel.UUID) (kernel.Outcome, error) {
	outcome, err := op.fire(EventUndispatch, actor)
	if err != nil || !outcome.IsChanged() {
		return outcome, err
	}
	op.sentOn = nil
	return kernel.Changed, nil
}

// UpdateQuantity copies the package's current on-hand quantity into the entry.
func (op *OrdersPackage) UpdateQuantity(pkg *donation.Package, actor kernel.UUID) error {
	if err := errors.Join(pkg.Validate(), actor.Validate()); err != nil {
		return err
	}
	if !pkg.ID().IsEqual(op.packageID) {
		return errs.NewValueIsInvalidErrorWithCause("package", fmt.Errorf("entry belongs to package %s", op.packageID))
	}
	op.quantity = pkg.Quantity()
	op.updatedBy = actor
	return nil
}

// UpdateDesignation moves the entry to another order, keeping quantity and state.
func (op *OrdersPackage) UpdateDesignation(orderID kernel.UUID, actor kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return err
	}
	op.orderID = orderID
	op.updatedBy = actor
	return nil
}

// UpdatePartiallyDesignatedItem adds quantity units to the entry. A cancelled entry is
// brought back as designated; every other state is kept.
func (op *OrdersPackage) UpdatePartiallyDesignatedItem(quantity int, actor kernel.UUID) error {
	if err := errors.Join(actor.Validate(), kernel.ValidatePositiveQuantity("quantity", quantity)); err != nil {
		return err
	}
	op.quantity += quantity
	if op.state == Cancelled {
		op.state, _ = op.state.Next(EventDesignate)
	}
	op.updatedBy = actor
	return nil
}

// UpdateOrdersPackageState reconciles the entry to total units. Zero collapses the entry to
// cancelled whatever its prior state; any other total leaves it designated.
func (op *OrdersPackage) UpdateOrdersPackageState(total int, actor kernel.UUID) error {
	if err := errors.Join(actor.Validate(), kernel.ValidateQuantity("quantity", total)); err != nil {
		return err
	}
	op.quantity = total
	if total == 0 {
		op.state, _ = op.state.Next(EventCancel)
	} else {
		op.state = Designated
	}
	op.sentOn = nil
	op.updatedBy = actor
	return nil
}

func (op *OrdersPackage) fire(event Event, actor kernel.UUID) (kernel.Outcome, error) {
	if err := actor.Validate(); err != nil {
		return kernel.Unchanged, err
	}
	next, ok := op.state.Next(event)
	if !ok {
		return kernel.Unchanged, nil
	}
	op.state = next
	op.updatedBy = actor
	return kernel.Changed, nil
}

func (op *OrdersPackage) validateSentOn() error {
	if (op.sentOn != nil) != (op.state == Dispatched) {
		return errs.NewValueIsInvalidErrorWithCause(
			"sent on",
			fmt.Errorf("sent on must be set exactly when dispatched, state is %s", op.state),
		)
	}
	return nil
}
