// Package orderrepo persists order aggregates with GORM and maps them to and from the
// domain model.
package orderrepo

import (
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of the orders table. Dashboard filters rely on the indexes on
// state, booking type, priority and created_at.
type OrderDTO struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code                 string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	State                string     `gorm:"type:varchar(32);not null;index"`
	DetailType           string     `gorm:"type:varchar(64)"`
	DetailID             string     `gorm:"type:varchar(64)"`
	BookingType          string     `gorm:"type:varchar(32);not null;index"`
	CancellationReason   string     `gorm:"type:text"`
	Priority             bool       `gorm:"not null;index"`
	CreatedBy            uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt            time.Time  `gorm:"not null;index"`
	UpdatedAt            time.Time  `gorm:"not null"`
	TransportScheduledAt *time.Time `gorm:"index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var scheduledAt *time.Time
	if at := o.TransportScheduledAt(); at != nil {
		utc := at.UTC()
		scheduledAt = &utc
	}

	return OrderDTO{
		ID:                   o.ID().Bytes(),
		Code:                 o.Code(),
		State:                o.State().String(),
		DetailType:           string(o.Detail().Type()),
		DetailID:             o.Detail().ID(),
		BookingType:          string(o.BookingType()),
		CancellationReason:   o.CancellationReason(),
		Priority:             o.IsPriority(),
		CreatedBy:            o.CreatedBy().Bytes(),
		CreatedAt:            o.CreatedAt().UTC(),
		TransportScheduledAt: scheduledAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	state, err := order.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	var detail order.Detail
	if dto.DetailType != "" {
		if detail, err = order.NewDetail(order.DetailType(dto.DetailType), dto.DetailID); err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		dto.Code,
		state,
		detail,
		order.BookingType(dto.BookingType),
		dto.CancellationReason,
		dto.Priority,
		createdBy,
		dto.CreatedAt,
		dto.TransportScheduledAt,
	)
}
