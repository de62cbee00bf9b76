package queries

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/order"
	"donations/internal/core/domain/model/orderspackage"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrGetOrderDesignationStatusQueryIsNotConstructed = errors.New(
		"GetOrderDesignationStatusQuery must be created via NewGetOrderDesignationStatusQuery constructor",
	)
)

// GetOrderDesignationStatusQuery aggregates the ledger entries of one order.
type GetOrderDesignationStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderDesignationStatusQuery(orderID kernel.UUID) (GetOrderDesignationStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderDesignationStatusQuery{}, err
	}
	return GetOrderDesignationStatusQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderDesignationStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDesignationStatusQueryIsNotConstructed)
}

func (q GetOrderDesignationStatusQuery) OrderID() kernel.UUID { return q.orderID }

type OrderDesignationStatus struct {
	OrderID kernel.UUID
	State   order.State
	Summary order.DesignationSummary
	// Quantity sums the units of the active entries.
	Quantity        int64
	FullyDesignated bool
	FullyDispatched bool
}

type GetOrderDesignationStatusQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDesignationStatusQueryHandler(db *gorm.DB) GetOrderDesignationStatusQueryHandler {
	return GetOrderDesignationStatusQueryHandler{db: db}
}

func (h GetOrderDesignationStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDesignationStatusQuery,
) (OrderDesignationStatus, error) {
	if err := query.Validate(); err != nil {
		return OrderDesignationStatus{}, err
	}
	db := h.db.WithContext(ctx)

	var stateName string
	res := db.Raw(`SELECT state FROM orders WHERE id = ?`, query.OrderID().Bytes()).Scan(&stateName)
	if res.Error != nil {
		return OrderDesignationStatus{}, res.Error
	}
	if res.RowsAffected == 0 {
		return OrderDesignationStatus{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	orderState, err := order.ParseState(stateName)
	if err != nil {
		return OrderDesignationStatus{}, err
	}

	rows, err := db.Raw(`
		SELECT
			state,
			COUNT(*),
			COALESCE(SUM(quantity), 0)
		FROM orders_packages
		WHERE order_id = ?
		GROUP BY state
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return OrderDesignationStatus{}, err
	}
	defer rows.Close()

	status := OrderDesignationStatus{OrderID: query.OrderID(), State: orderState}
	for rows.Next() {
		var (
			name     string
			count    int
			quantity int64
		)
		if err = rows.Scan(&name, &count, &quantity); err != nil {
			return OrderDesignationStatus{}, err
		}
		state, parseErr := orderspackage.ParseState(name)
		if parseErr != nil {
			return OrderDesignationStatus{}, parseErr
		}
		switch state {
		case orderspackage.Requested:
			status.Summary.Requested += count
		case orderspackage.Designated:
			status.Summary.Designated += count
		case orderspackage.Received:
			status.Summary.Received += count
		case orderspackage.Dispatched:
			status.Summary.Dispatched += count
		case orderspackage.Cancelled:
			status.Summary.Cancelled += count
		case orderspackage.Unknown:
		}
		if state.IsActive() {
			status.Quantity += quantity
		}
	}
	if err = rows.Err(); err != nil {
		return OrderDesignationStatus{}, err
	}

	status.FullyDesignated = status.Summary.IsFullyDesignated()
	status.FullyDispatched = status.Summary.IsFullyDispatched()
	return status, nil
}
