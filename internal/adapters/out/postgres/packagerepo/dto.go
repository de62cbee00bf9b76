// Package packagerepo persists donated packages together with their location history.
package packagerepo

import (
	"time"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// PackageDTO is the row layout of the packages table.
type PackageDTO struct {
	ID               uuid.UUID             `gorm:"type:uuid;primaryKey"`
	InventoryNumber  string                `gorm:"type:varchar(64);not null;uniqueIndex"`
	Quantity         int                   `gorm:"type:int;not null"`
	ReceivedQuantity int                   `gorm:"type:int;not null"`
	StockitID        *int                  `gorm:"type:int;index"`
	MirrorVersion    int64                 `gorm:"type:bigint;not null;default:0"`
	Locations        []PackagesLocationDTO `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time             `gorm:"not null"`
	UpdatedAt        time.Time             `gorm:"not null"`
}

func (PackageDTO) TableName() string {
	return "packages"
}

// PackagesLocationDTO is one row of a package's location history.
type PackagesLocationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PackageID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Building   string    `gorm:"type:varchar(128);not null"`
	Area       string    `gorm:"type:varchar(128)"`
	Quantity   int       `gorm:"type:int;not null"`
	RecordedAt time.Time `gorm:"not null"`
}

func (PackagesLocationDTO) TableName() string {
	return "packages_locations"
}

func fromDomain(pkg *donation.Package) PackageDTO {
	packageID := pkg.ID().Bytes()
	locations := make([]PackagesLocationDTO, 0, len(pkg.Locations()))

	for _, l := range pkg.Locations() {
		locations = append(locations, PackagesLocationDTO{
			ID:         l.ID().Bytes(),
			PackageID:  packageID,
			Building:   l.Location().Building(),
			Area:       l.Location().Area(),
			Quantity:   l.Quantity(),
			RecordedAt: l.RecordedAt().UTC(),
		})
	}

	return PackageDTO{
		ID:               packageID,
		InventoryNumber:  pkg.InventoryNumber(),
		Quantity:         pkg.Quantity(),
		ReceivedQuantity: pkg.ReceivedQuantity(),
		StockitID:        pkg.StockitID(),
		MirrorVersion:    pkg.MirrorVersion(),
		Locations:        locations,
	}
}

func toDomain(dto PackageDTO) (*donation.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	locations := make([]*donation.PackagesLocation, 0, len(dto.Locations))
	for _, l := range dto.Locations {
		locID, err := kernel.UUIDFromBytes(l.ID[:])
		if err != nil {
			return nil, err
		}
		loc, err := donation.NewLocation(l.Building, l.Area)
		if err != nil {
			return nil, err
		}
		pl, err := donation.NewPackagesLocation(locID, loc, l.Quantity, l.RecordedAt)
		if err != nil {
			return nil, err
		}
		locations = append(locations, pl)
	}

	return donation.RestorePackage(id, dto.InventoryNumber, dto.Quantity, dto.ReceivedQuantity, dto.StockitID, dto.MirrorVersion, locations)
}
