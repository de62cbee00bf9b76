package commands

import (
	"errors"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/pkg/guard"
)

var ErrDesignatePackageCommandIsNotConstructed = errors.New(
	"DesignatePackageCommand must be created via NewDesignatePackageCommand constructor",
)

// DesignatePackageCommand allocates units of a package to an order. A FullReceived
// quantity designates the whole received quantity and moves it away from the order that
// currently holds it.
//
// Example:
//
//	cmd, err := NewDesignatePackageCommand(packageID, orderID, services.FullReceived(), nil, actorID, time.Now())
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type DesignatePackageCommand struct { //nolint:recvcheck //using for validation
	packageID       kernel.UUID
	orderID         kernel.UUID
	quantity        services.QuantitySpec
	ordersPackageID *kernel.UUID
	actorID         kernel.UUID
	at              time.Time

	guard guard.ConstructorGuard
}

func NewDesignatePackageCommand(
	packageID, orderID kernel.UUID,
	quantity services.QuantitySpec,
	ordersPackageID *kernel.UUID,
	actorID kernel.UUID,
	at time.Time,
) (DesignatePackageCommand, error) {
	if err := errors.Join(
		packageID.Validate(),
		orderID.Validate(),
		actorID.Validate(),
		validateOptionalID(ordersPackageID),
		validateQuantitySpec(quantity),
	); err != nil {
		return DesignatePackageCommand{}, err
	}

	return DesignatePackageCommand{
		packageID:       packageID,
		orderID:         orderID,
		quantity:        quantity,
		ordersPackageID: ordersPackageID,
		actorID:         actorID,
		at:              at,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c DesignatePackageCommand) Validate() error {
	return c.guard.Validate(ErrDesignatePackageCommandIsNotConstructed)
}

func (c DesignatePackageCommand) PackageID() kernel.UUID          { return c.packageID }
func (c DesignatePackageCommand) OrderID() kernel.UUID            { return c.orderID }
func (c DesignatePackageCommand) Quantity() services.QuantitySpec { return c.quantity }
func (c DesignatePackageCommand) OrdersPackageID() *kernel.UUID   { return c.ordersPackageID }
func (c DesignatePackageCommand) ActorID() kernel.UUID            { return c.actorID }
func (c DesignatePackageCommand) At() time.Time                   { return c.at }
