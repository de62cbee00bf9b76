package commands

import (
	"errors"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var ErrUndesignatePackageCommandIsNotConstructed = errors.New(
	"UndesignatePackageCommand must be created via NewUndesignatePackageCommand constructor",
)

// UndesignatePackageCommand gives back units held by a ledger entry. A zero quantity
// releases everything. With returnToRequested the entry goes back to requested and keeps
// its quantity.
type UndesignatePackageCommand struct { //nolint:recvcheck //using for validation
	packageID         kernel.UUID
	ordersPackageID   kernel.UUID
	quantity          int
	returnToRequested bool
	actorID           kernel.UUID
	at                time.Time

	guard guard.ConstructorGuard
}

func NewUndesignatePackageCommand(
	packageID, ordersPackageID kernel.UUID,
	quantity int,
	returnToRequested bool,
	actorID kernel.UUID,
	at time.Time,
) (UndesignatePackageCommand, error) {
	if err := errors.Join(
		packageID.Validate(),
		ordersPackageID.Validate(),
		actorID.Validate(),
		kernel.ValidateQuantity("quantity", quantity),
	); err != nil {
		return UndesignatePackageCommand{}, err
	}
	if returnToRequested && quantity != 0 {
		return UndesignatePackageCommand{}, errs.NewValidationError(
			"orders_package", "quantity", "must be empty when returning the item to requested",
		)
	}

	return UndesignatePackageCommand{
		packageID:         packageID,
		ordersPackageID:   ordersPackageID,
		quantity:          quantity,
		returnToRequested: returnToRequested,
		actorID:           actorID,
		at:                at,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c UndesignatePackageCommand) Validate() error {
	return c.guard.Validate(ErrUndesignatePackageCommandIsNotConstructed)
}

func (c UndesignatePackageCommand) PackageID() kernel.UUID       { return c.packageID }
func (c UndesignatePackageCommand) OrdersPackageID() kernel.UUID { return c.ordersPackageID }
func (c UndesignatePackageCommand) Quantity() int                { return c.quantity }
func (c UndesignatePackageCommand) ReturnToRequested() bool      { return c.returnToRequested }
func (c UndesignatePackageCommand) ActorID() kernel.UUID         { return c.actorID }
func (c UndesignatePackageCommand) At() time.Time                { return c.at }
