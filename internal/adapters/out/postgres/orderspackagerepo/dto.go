// Package orderspackagerepo persists quantity ledger entries.
package orderspackagerepo

import (
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/orderspackage"

	"github.com/google/uuid"
)

// OrdersPackageDTO is the row layout of the orders_packages table. The composite unique
// index keeps a single entry per (order, package).
type OrdersPackageDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_orders_packages_order_package,priority:1;index"`
	PackageID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_orders_packages_order_package,priority:2;index"`
	Quantity  int        `gorm:"type:int;not null"`
	State     string     `gorm:"type:varchar(32);not null;index"`
	SentOn    *time.Time `gorm:"type:date"`
	UpdatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (OrdersPackageDTO) TableName() string {
	return "orders_packages"
}

func fromDomain(op *orderspackage.OrdersPackage) OrdersPackageDTO {
	var sentOn *time.Time
	if at := op.SentOn(); at != nil {
		day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
		sentOn = &day
	}

	return OrdersPackageDTO{
		ID:        op.ID().Bytes(),
		OrderID:   op.OrderID().Bytes(),
		PackageID: op.PackageID().Bytes(),
		Quantity:  op.Quantity(),
		State:     op.State().String(),
		SentOn:    sentOn,
		UpdatedBy: op.UpdatedBy().Bytes(),
	}
}

func toDomain(dto OrdersPackageDTO) (*orderspackage.OrdersPackage, error) {
	state, err := orderspackage.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	return orderspackage.RestoreOrdersPackage(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.OrderID),
		kernel.UUIDFromGoogle(dto.PackageID),
		dto.Quantity,
		state,
		dto.SentOn,
		kernel.UUIDFromGoogle(dto.UpdatedBy),
	)
}

func toDomainList(dtos []OrdersPackageDTO) ([]*orderspackage.OrdersPackage, error) {
	out := make([]*orderspackage.OrdersPackage, 0, len(dtos))
	for _, dto := range dtos {
		op, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, op)
	}
	return out, nil
}
