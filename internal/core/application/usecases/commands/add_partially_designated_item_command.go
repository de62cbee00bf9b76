package commands

import (
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrAddPartiallyDesignatedItemCommandIsNotConstructed = errors.New(
	"AddPartiallyDesignatedItemCommand must be created via NewAddPartiallyDesignatedItemCommand constructor",
)

// AddPartiallyDesignatedItemCommand designates part of a package to an order, on top of
// what the order may already hold.
type AddPartiallyDesignatedItemCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	orderID   kernel.UUID
	quantity  int
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewAddPartiallyDesignatedItemCommand(
	packageID, orderID kernel.UUID,
	quantity int,
	actorID kernel.UUID,
) (AddPartiallyDesignatedItemCommand, error) {
	if err := errors.Join(
		packageID.Validate(),
		orderID.Validate(),
		actorID.Validate(),
		kernel.ValidatePositiveQuantity("quantity", quantity),
	); err != nil {
		return AddPartiallyDesignatedItemCommand{}, err
	}
	return AddPartiallyDesignatedItemCommand{
		packageID: packageID,
		orderID:   orderID,
		quantity:  quantity,
		actorID:   actorID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AddPartiallyDesignatedItemCommand) Validate() error {
	return c.guard.Validate(ErrAddPartiallyDesignatedItemCommandIsNotConstructed)
}

func (c AddPartiallyDesignatedItemCommand) PackageID() kernel.UUID { return c.packageID }
func (c AddPartiallyDesignatedItemCommand) OrderID() kernel.UUID   { return c.orderID }
func (c AddPartiallyDesignatedItemCommand) Quantity() int          { return c.quantity }
func (c AddPartiallyDesignatedItemCommand) ActorID() kernel.UUID   { return c.actorID }
