package services

import (
	"donations/internal/core/domain/model/order"
	"donations/internal/core/domain/model/orderspackage"
)

// SummarizeDesignations counts an order's ledger entries by state.
func SummarizeDesignations(entries []*orderspackage.OrdersPackage) order.DesignationSummary {
	var s order.DesignationSummary
	for _, e := range entries {
		if e == nil {
			continue
		}
		switch e.State() {
		case orderspackage.Requested:
			s.Requested++
		case orderspackage.Designated:
			s.Designated++
		case orderspackage.Received:
			s.Received++
		case orderspackage.Dispatched:
			s.Dispatched++
		case orderspackage.Cancelled:
			s.Cancelled++
		case orderspackage.Unknown:
		}
	}
	return s
}
