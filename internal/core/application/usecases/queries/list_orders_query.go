package queries

import (
	"errors"
	"math"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/order"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

const (
	defaultListOrdersLimit = 150
	maxListOrdersLimit     = 500
)

// OrderFilter narrows the dashboard order list. Empty slices and nil pointers do not filter.
type OrderFilter struct {
	States        []order.State
	BookingTypes  []order.BookingType
	Priority      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	// Limit is the page size; zero means the default of 150.
	Limit int
	// Page is 1-based; zero means the first page.
	Page int
}

// ListOrdersQuery returns orders for the operations dashboard.
//
// Orders come newest first. When the filter selects at least one active state the list is
// sorted by urgency instead: orders without a transport first, then by scheduled transport
// time, newest first among equal keys. Both orderings are applied in SQL before paging.
//
// Example:
//
//	query, err := NewListOrdersQuery(OrderFilter{
//	    States: []order.State{order.Submitted, order.Processing},
//	    CreatedAfter: &after,
//	})
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	filter OrderFilter

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter OrderFilter) (ListOrdersQuery, error) {
	for _, s := range filter.States {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.Limit < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 0, maxListOrdersLimit)
	}
	switch {
	case filter.Limit == 0:
		filter.Limit = defaultListOrdersLimit
	case filter.Limit > maxListOrdersLimit:
		filter.Limit = maxListOrdersLimit
	}
	if filter.Page < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("page", filter.Page, 1, math.MaxInt32)
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.CreatedAfter != nil && filter.CreatedBefore != nil && filter.CreatedAfter.After(*filter.CreatedBefore) {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"created window", errors.New("after is later than before"),
		)
	}
	return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() OrderFilter { return q.filter }

// Offset is the number of rows skipped before the requested page.
func (q ListOrdersQuery) Offset() int {
	return (q.filter.Page - 1) * q.filter.Limit
}

// SortsByUrgency reports whether the filter selects an active state.
func (q ListOrdersQuery) SortsByUrgency() bool {
	for _, s := range q.filter.States {
		if s.IsActive() {
			return true
		}
	}
	return false
}

// TimeFromEpochMillis converts a client timestamp in epoch milliseconds to a time in loc,
// truncated to whole seconds. A nil loc means time.Local.
func TimeFromEpochMillis(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).Truncate(time.Second).In(loc)
}

// OrderListItem is one row of the dashboard list.
type OrderListItem struct {
	ID                   kernel.UUID
	Code                 string
	State                order.State
	BookingType          order.BookingType
	DetailType           string
	DetailID             string
	Priority             bool
	CancellationReason   string
	CreatedAt            time.Time
	TransportScheduledAt *time.Time
}
