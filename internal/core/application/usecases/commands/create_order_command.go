package commands

import (
	"errors"
	"strings"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/order"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a draft order with the data the order-detail provider
// supplied.
//
// Example:
//
//	detail, _ := order.NewDetail(order.DetailGoodCity, "4711")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "GC-04711", detail, order.BookingOnlineOrder, actorID, time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	code        string
	detail      order.Detail
	bookingType order.BookingType
	actorID     kernel.UUID
	at          time.Time

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	code string,
	detail order.Detail,
	bookingType order.BookingType,
	actorID kernel.UUID,
	at time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		detail:      detail,
		bookingType: bookingType,
		at:          at,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
		cmd.setActorID(actorID),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if at.IsZero() {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("created at")
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID           { return c.orderID }
func (c CreateOrderCommand) Code() string                   { return c.code }
func (c CreateOrderCommand) Detail() order.Detail           { return c.detail }
func (c CreateOrderCommand) BookingType() order.BookingType { return c.bookingType }
func (c CreateOrderCommand) ActorID() kernel.UUID           { return c.actorID }
func (c CreateOrderCommand) At() time.Time                  { return c.at }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *CreateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
