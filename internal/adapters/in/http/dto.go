package http

import (
	"time"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"
	"donations/internal/core/domain/model/order"
	"donations/internal/core/ports"
)

type createOrderRequest struct {
	Code        string `json:"code" validate:"required,max=64"`
	DetailType  string `json:"detail_type" validate:"required,oneof=GoodCity Appointment StockitLocalOrder"`
	DetailID    string `json:"detail_id" validate:"max=64"`
	BookingType string `json:"booking_type" validate:"required"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

type fireEventRequest struct {
	Event              string `json:"event" validate:"required"`
	CancellationReason string `json:"cancellation_reason" validate:"max=500"`
}

type transitionResponse struct {
	Outcome string   `json:"outcome"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Events  []string `json:"events"`
}

type outcomeResponse struct {
	Outcome string `json:"outcome"`
}

type scheduleTransportRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at"`
	Priority    *bool      `json:"priority"`
}

type pruneRequest struct {
	PackageID string `json:"package_id" validate:"omitempty,uuid"`
}

type pruneResponse struct {
	Pruned int64 `json:"pruned"`
}

type designateRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
	// Quantity is omitted for a full designation of the received quantity.
	Quantity        *int   `json:"quantity" validate:"omitempty,min=1"`
	OrdersPackageID string `json:"orders_package_id" validate:"omitempty,uuid"`
}

type undesignateRequest struct {
	OrdersPackageID   string `json:"orders_package_id" validate:"required,uuid"`
	Quantity          int    `json:"quantity" validate:"min=0"`
	ReturnToRequested bool   `json:"return_to_requested"`
}

type partialDesignationRequest struct {
	OrderID  string `json:"order_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type stockitDesignationRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
}

type updateDesignationRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
}

type designationResponse struct {
	OrdersPackageID     string  `json:"orders_package_id"`
	OrderID             string  `json:"order_id"`
	PackageID           string  `json:"package_id"`
	Quantity            int     `json:"quantity"`
	State               string  `json:"state"`
	Outcome             string  `json:"outcome"`
	ReleasedFromOrderID *string `json:"released_from_order_id,omitempty"`
	Pruned              int64   `json:"pruned,omitempty"`
}

func toDesignationResponse(r commands.DesignationResult) designationResponse {
	resp := designationResponse{
		OrdersPackageID: r.OrdersPackageID.String(),
		OrderID:         r.OrderID.String(),
		PackageID:       r.PackageID.String(),
		Quantity:        r.Quantity,
		State:           r.State.String(),
		Outcome:         r.Outcome.String(),
		Pruned:          r.Pruned,
	}
	if r.ReleasedFromOrderID != nil {
		id := r.ReleasedFromOrderID.String()
		resp.ReleasedFromOrderID = &id
	}
	return resp
}

type orderResponse struct {
	ID                   string     `json:"id"`
	Code                 string     `json:"code"`
	State                string     `json:"state"`
	BookingType          string     `json:"booking_type"`
	DetailType           string     `json:"detail_type"`
	DetailID             string     `json:"detail_id"`
	Priority             bool       `json:"priority"`
	CancellationReason   string     `json:"cancellation_reason,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	TransportScheduledAt *time.Time `json:"transport_scheduled_at,omitempty"`
}

func toOrderResponses(items []queries.OrderListItem) []orderResponse {
	resp := make([]orderResponse, len(items))
	for i, item := range items {
		resp[i] = orderResponse{
			ID:                   item.ID.String(),
			Code:                 item.Code,
			State:                item.State.String(),
			BookingType:          string(item.BookingType),
			DetailType:           item.DetailType,
			DetailID:             item.DetailID,
			Priority:             item.Priority,
			CancellationReason:   item.CancellationReason,
			CreatedAt:            item.CreatedAt,
			TransportScheduledAt: item.TransportScheduledAt,
		}
	}
	return resp
}

type designationSummaryResponse struct {
	Requested  int `json:"requested"`
	Designated int `json:"designated"`
	Received   int `json:"received"`
	Dispatched int `json:"dispatched"`
	Cancelled  int `json:"cancelled"`
}

type designationStatusResponse struct {
	OrderID         string                     `json:"order_id"`
	State           string                     `json:"state"`
	Summary         designationSummaryResponse `json:"summary"`
	Quantity        int64                      `json:"quantity"`
	FullyDesignated bool                       `json:"fully_designated"`
	FullyDispatched bool                       `json:"fully_dispatched"`
}

func toDesignationStatusResponse(s queries.OrderDesignationStatus) designationStatusResponse {
	return designationStatusResponse{
		OrderID: s.OrderID.String(),
		State:   s.State.String(),
		Summary: designationSummaryResponse{
			Requested:  s.Summary.Requested,
			Designated: s.Summary.Designated,
			Received:   s.Summary.Received,
			Dispatched: s.Summary.Dispatched,
			Cancelled:  s.Summary.Cancelled,
		},
		Quantity:        s.Quantity,
		FullyDesignated: s.FullyDesignated,
		FullyDispatched: s.FullyDispatched,
	}
}

type syncIssueResponse struct {
	ID         string    `json:"id"`
	PackageID  string    `json:"package_id"`
	OrderID    *string   `json:"order_id,omitempty"`
	Operation  string    `json:"operation"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

type syncIssuesResponse struct {
	Issues []syncIssueResponse `json:"issues"`
	Total  int64               `json:"total"`
}

func toSyncIssuesResponse(page queries.OpenSyncIssues) syncIssuesResponse {
	resp := syncIssuesResponse{Issues: make([]syncIssueResponse, len(page.Issues)), Total: page.Total}
	for i, issue := range page.Issues {
		resp.Issues[i] = toSyncIssueResponse(issue)
	}
	return resp
}

func toSyncIssueResponse(issue ports.SyncIssue) syncIssueResponse {
	r := syncIssueResponse{
		ID:         issue.ID.String(),
		PackageID:  issue.PackageID.String(),
		Operation:  string(issue.Operation),
		Reason:     issue.Reason,
		OccurredAt: issue.OccurredAt,
	}
	if issue.OrderID != nil {
		id := issue.OrderID.String()
		r.OrderID = &id
	}
	return r
}

func eventNames(events []order.Event) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.String()
	}
	return names
}
