package queries

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/order"
	"donations/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrGetOrdersSummaryQueryIsNotConstructed = errors.New(
		"GetOrdersSummaryQuery must be created via NewGetOrdersSummaryQuery constructor",
	)
)

const priorityKeyPrefix = "priority_"

// GetOrdersSummaryQuery counts active orders per state for the dashboard header.
type GetOrdersSummaryQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrdersSummaryQuery() GetOrdersSummaryQuery {
	return GetOrdersSummaryQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrdersSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersSummaryQueryIsNotConstructed)
}

// OrdersSummary maps "<state>" to the number of active orders in that state and
// "priority_<state>" to the priority ones among them. Every active state has both keys.
type OrdersSummary map[string]int64

type GetOrdersSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersSummaryQueryHandler(db *gorm.DB) GetOrdersSummaryQueryHandler {
	return GetOrdersSummaryQueryHandler{db: db}
}

func (h GetOrdersSummaryQueryHandler) Handle(ctx context.Context, query GetOrdersSummaryQuery) (OrdersSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active := order.ActiveStates()
	names := make([]string, 0, len(active))
	summary := make(OrdersSummary, 2*len(active))
	for _, s := range active {
		names = append(names, s.String())
		summary[s.String()] = 0
		summary[priorityKeyPrefix+s.String()] = 0
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			state,
			priority,
			COUNT(*)
		FROM orders
		WHERE state IN ?
		GROUP BY state, priority
	`, names).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			state    string
			priority bool
			count    int64
		)
		if err = rows.Scan(&state, &priority, &count); err != nil {
			return nil, err
		}
		summary[state] += count
		if priority {
			summary[priorityKeyPrefix+state] += count
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summary, nil
}
