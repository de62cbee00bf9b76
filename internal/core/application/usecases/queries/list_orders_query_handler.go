package queries

import (
	"context"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/order"
	"donations/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads the orders table directly, bypassing the aggregates.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

type orderRow struct {
	ID                   uuid.UUID
	Code                 string
	State                string
	BookingType          string
	DetailType           string
	DetailID             string
	Priority             bool
	CancellationReason   string
	CreatedAt            time.Time
	TransportScheduledAt *time.Time
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	f := query.Filter()

	tx := h.db.WithContext(ctx).
		Table("orders").
		Select("id, code, state, booking_type, detail_type, detail_id, priority, " +
			"cancellation_reason, created_at, transport_scheduled_at")

	if len(f.States) > 0 {
		names := make([]string, 0, len(f.States))
		for _, s := range f.States {
			names = append(names, s.String())
		}
		tx = tx.Where("state IN ?", names)
	}
	if len(f.BookingTypes) > 0 {
		types := make([]string, 0, len(f.BookingTypes))
		for _, bt := range f.BookingTypes {
			types = append(types, string(bt))
		}
		tx = tx.Where("booking_type IN ?", types)
	}
	if f.Priority != nil {
		tx = tx.Where("priority = ?", *f.Priority)
	}
	if f.CreatedAfter != nil {
		tx = tx.Where("created_at >= ?", f.CreatedAfter.UTC())
	}
	if f.CreatedBefore != nil {
		tx = tx.Where("created_at <= ?", f.CreatedBefore.UTC())
	}

	urgent := query.SortsByUrgency()
	if urgent {
		tx = tx.Order("transport_scheduled_at IS NOT NULL").Order("transport_scheduled_at ASC")
	}
	tx = tx.Order("created_at DESC").Limit(f.Limit).Offset(query.Offset())

	var rows []orderRow
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]OrderListItem, 0, len(rows))
	for _, r := range rows {
		item, err := r.toItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if urgent {
		services.SortByUrgency(items, func(i OrderListItem) *time.Time { return i.TransportScheduledAt })
	}
	return items, nil
}

func (r orderRow) toItem() (OrderListItem, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderListItem{}, err
	}
	state, err := order.ParseState(r.State)
	if err != nil {
		return OrderListItem{}, err
	}
	return OrderListItem{
		ID:                   id,
		Code:                 r.Code,
		State:                state,
		BookingType:          order.BookingType(r.BookingType),
		DetailType:           r.DetailType,
		DetailID:             r.DetailID,
		Priority:             r.Priority,
		CancellationReason:   r.CancellationReason,
		CreatedAt:            r.CreatedAt,
		TransportScheduledAt: r.TransportScheduledAt,
	}, nil
}
