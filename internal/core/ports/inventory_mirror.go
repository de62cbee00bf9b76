package ports

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
)

// ErrStaleMirrorPush is returned by a mirror that already holds a newer designation of the
// package than the one being pushed (see donation.Package.MirrorVersion).
var ErrStaleMirrorPush = errors.New("inventory mirror holds a newer designation")

// StockitOrderRef identifies an order towards the external inventory system.
type StockitOrderRef struct {
	OrderID kernel.UUID
	Code    string
}

// InventoryMirror keeps the external inventory system in line with the ledger. It is
// only called after the ledger transaction committed, so pushes for one package can arrive
// out of commit order; pkg.MirrorVersion tells them apart.
type InventoryMirror interface {
	// DesignateToStockitOrder links the package to the order. Repeating the call for the
	// same (package, order) pair has no further effect.
	DesignateToStockitOrder(ctx context.Context, pkg *donation.Package, order StockitOrderRef) error

	// UndesignateFromStockitOrder clears the link. It is safe when no link exists.
	UndesignateFromStockitOrder(ctx context.Context, pkg *donation.Package) error
}
