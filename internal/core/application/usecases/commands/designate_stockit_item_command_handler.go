package commands

import (
	"context"
	"fmt"

	"donations/internal/core/ports"
	"donations/internal/pkg/errs"
)

// DesignateStockitItemCommandHandler reads the committed ledger and mirrors the package's
// designation to the given order. It refuses when the ledger holds no active entry for the
// pair, so the mirror never gets ahead of the ledger.
type DesignateStockitItemCommandHandler struct {
	uowFactory UoWFactory
	sync       MirrorSync
}

func NewDesignateStockitItemCommandHandler(uowFactory UoWFactory, sync MirrorSync) DesignateStockitItemCommandHandler {
	return DesignateStockitItemCommandHandler{uowFactory: uowFactory, sync: sync}
}

func (h *DesignateStockitItemCommandHandler) Handle(ctx context.Context, cmd DesignateStockitItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	pkg, err := uow.PackageRepository().Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}
	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	entries, err := uow.OrdersPackageRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	held := false
	for _, e := range entries {
		if e.PackageID().IsEqual(pkg.ID()) && e.HoldsDesignation() {
			held = true
			break
		}
	}
	if !held {
		return errs.NewValidationError("orders_package", "package_id",
			fmt.Sprintf("package %s is not designated to order %s", pkg.InventoryNumber(), o.Code()))
	}

	return h.sync.Designate(ctx, pkg, ports.StockitOrderRef{OrderID: o.ID(), Code: o.Code()}, cmd.At())
}
