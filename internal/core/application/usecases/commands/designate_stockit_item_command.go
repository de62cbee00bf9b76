package commands

import (
	"errors"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrDesignateStockitItemCommandIsNotConstructed = errors.New(
	"DesignateStockitItemCommand must be created via NewDesignateStockitItemCommand constructor",
)

// DesignateStockitItemCommand pushes an existing designation to the inventory mirror
// again, typically to repair a flagged sync issue.
type DesignateStockitItemCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	orderID   kernel.UUID
	at        time.Time

	guard guard.ConstructorGuard
}

func NewDesignateStockitItemCommand(packageID, orderID kernel.UUID, at time.Time) (DesignateStockitItemCommand, error) {
	if err := errors.Join(packageID.Validate(), orderID.Validate()); err != nil {
		return DesignateStockitItemCommand{}, err
	}
	return DesignateStockitItemCommand{
		packageID: packageID,
		orderID:   orderID,
		at:        at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DesignateStockitItemCommand) Validate() error {
	return c.guard.Validate(ErrDesignateStockitItemCommandIsNotConstructed)
}

func (c DesignateStockitItemCommand) PackageID() kernel.UUID { return c.packageID }
func (c DesignateStockitItemCommand) OrderID() kernel.UUID   { return c.orderID }
func (c DesignateStockitItemCommand) At() time.Time          { return c.at }
