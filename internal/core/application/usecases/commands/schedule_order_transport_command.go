package commands

import (
	"context"
	"errors"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/guard"
)

var ErrScheduleOrderTransportCommandIsNotConstructed = errors.New(
	"ScheduleOrderTransportCommand must be created via NewScheduleOrderTransportCommand constructor",
)

// ScheduleOrderTransportCommand sets or clears (nil scheduledAt) the transport time of an
// order and, when priority is given, its dashboard priority flag.
type ScheduleOrderTransportCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	scheduledAt *time.Time
	priority    *bool

	guard guard.ConstructorGuard
}

func NewScheduleOrderTransportCommand(
	orderID kernel.UUID,
	scheduledAt *time.Time,
	priority *bool,
) (ScheduleOrderTransportCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ScheduleOrderTransportCommand{}, err
	}
	return ScheduleOrderTransportCommand{
		orderID:     orderID,
		scheduledAt: scheduledAt,
		priority:    priority,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ScheduleOrderTransportCommand) Validate() error {
	return c.guard.Validate(ErrScheduleOrderTransportCommandIsNotConstructed)
}

func (c ScheduleOrderTransportCommand) OrderID() kernel.UUID    { return c.orderID }
func (c ScheduleOrderTransportCommand) ScheduledAt() *time.Time { return c.scheduledAt }
func (c ScheduleOrderTransportCommand) Priority() *bool         { return c.priority }

type ScheduleOrderTransportCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewScheduleOrderTransportCommandHandler(uowFactory OrderUoWFactory) ScheduleOrderTransportCommandHandler {
	return ScheduleOrderTransportCommandHandler{uowFactory: uowFactory}
}

func (h *ScheduleOrderTransportCommandHandler) Handle(ctx context.Context, cmd ScheduleOrderTransportCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if at := cmd.ScheduledAt(); at != nil {
		if err = o.ScheduleTransport(*at); err != nil {
			return err
		}
	} else {
		o.ClearTransport()
	}
	if p := cmd.Priority(); p != nil {
		o.MarkPriority(*p)
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
