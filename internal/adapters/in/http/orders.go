package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /api/v1/orders.
//
// Filters: state and booking_type (comma separated or repeated), priority (bool),
// created_after and created_before (epoch milliseconds), limit, page.
func (s *Server) ListOrders(c echo.Context) error {
	filter, err := parseOrderFilter(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return err
	}

	items, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(items))
}

func parseOrderFilter(c echo.Context) (queries.OrderFilter, error) {
	var filter queries.OrderFilter

	for _, name := range multiValue(c, "state") {
		state, err := order.ParseState(name)
		if err != nil {
			return filter, err
		}
		filter.States = append(filter.States, state)
	}
	for _, name := range multiValue(c, "booking_type") {
		bt, err := order.ParseBookingType(name)
		if err != nil {
			return filter, err
		}
		filter.BookingTypes = append(filter.BookingTypes, bt)
	}
	if raw := c.QueryParam("priority"); raw != "" {
		priority, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "priority must be a boolean")
		}
		filter.Priority = &priority
	}

	var err error
	if filter.CreatedAfter, err = epochParam(c, "created_after"); err != nil {
		return filter, err
	}
	if filter.CreatedBefore, err = epochParam(c, "created_before"); err != nil {
		return filter, err
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if filter.Limit, err = strconv.Atoi(raw); err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
	}
	if raw := c.QueryParam("page"); raw != "" {
		if filter.Page, err = strconv.Atoi(raw); err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "page must be an integer")
		}
	}
	return filter, nil
}

func multiValue(c echo.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryParams()[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func epochParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be epoch milliseconds")
	}
	t := queries.TimeFromEpochMillis(ms, time.UTC)
	return &t, nil
}

// GetOrdersSummary handles GET /api/v1/orders/summary.
func (s *Server) GetOrdersSummary(c echo.Context) error {
	summary, err := s.h.GetOrdersSummary.Handle(c.Request().Context(), queries.NewGetOrdersSummaryQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// GetDesignationStatus handles GET /api/v1/orders/:id/designation.
func (s *Server) GetDesignationStatus(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderDesignationStatusQuery(orderID)
	if err != nil {
		return err
	}
	status, err := s.h.GetDesignationStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDesignationStatusResponse(status))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	detail, err := order.NewDetail(order.DetailType(req.DetailType), req.DetailID)
	if err != nil {
		return err
	}
	bookingType, err := order.ParseBookingType(req.BookingType)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, req.Code, detail, bookingType, actor, s.now())
	if err != nil {
		return err
	}
	if err := s.h.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createOrderResponse{ID: orderID.String()})
}

// FireOrderEvent handles POST /api/v1/orders/:id/transitions.
func (s *Server) FireOrderEvent(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return err
	}
	var req fireEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	event, err := order.ParseEvent(req.Event)
	if err != nil {
		return err
	}

	cmd, err := commands.NewFireOrderEventCommand(orderID, event, req.CancellationReason, actor, s.now())
	if err != nil {
		return err
	}
	transition, err := s.h.FireOrderEvent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transitionResponse{
		Outcome: transition.Outcome.String(),
		From:    transition.From.String(),
		To:      transition.To.String(),
		Events:  eventNames(transition.Events),
	})
}

// DestroyOrder handles DELETE /api/v1/orders/:id. Orders past draft are left alone and
// reported as unchanged.
func (s *Server) DestroyOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDestroyOrderCommand(orderID, actor, s.now())
	if err != nil {
		return err
	}
	outcome, err := s.h.DestroyOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, outcomeResponse{Outcome: outcome.String()})
}

// ScheduleTransport handles PUT /api/v1/orders/:id/transport.
func (s *Server) ScheduleTransport(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return err
	}
	var req scheduleTransportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewScheduleOrderTransportCommand(orderID, req.ScheduledAt, req.Priority)
	if err != nil {
		return err
	}
	if err := s.h.ScheduleOrderTransport.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PruneCancelledEntries handles POST /api/v1/orders/:id/prune.
func (s *Server) PruneCancelledEntries(c echo.Context) error {
	if _, err := actorFrom(c); err != nil {
		return err
	}
	orderID, err := pathID(c)
	if err != nil {
		return err
	}
	var req pruneRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	packageID, err := kernel.OptionalUUIDFromString(req.PackageID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewPruneCancelledOrdersPackagesCommand(orderID, packageID)
	if err != nil {
		return err
	}
	pruned, err := s.h.PruneCancelledEntries.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pruneResponse{Pruned: pruned})
}
