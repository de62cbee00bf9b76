package ports

import (
	"context"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
)

// PackageRepository defines the persistence contract for donated packages and their
// location history.
type PackageRepository interface {
	Add(ctx context.Context, pkg *donation.Package) error

	// Update persists quantities and appends new location history entries.
	Update(ctx context.Context, pkg *donation.Package) error

	Get(ctx context.Context, id kernel.UUID) (*donation.Package, error)

	// GetForUpdate loads the package and takes a row lock held until the surrounding
	// transaction ends. All ledger writes for a package are serialized on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*donation.Package, error)
}
