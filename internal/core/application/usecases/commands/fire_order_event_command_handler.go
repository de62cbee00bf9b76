package commands

import (
	"context"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/order"
	"donations/internal/core/domain/services"
	"donations/internal/core/ports"
	"donations/internal/pkg/logger"
)

// OrderTransition reports the result of a lifecycle event.
type OrderTransition struct {
	Outcome kernel.Outcome
	From    order.State
	To      order.State
	// Events lists what may be fired next.
	Events []order.Event
}

// FireOrderEventCommandHandler applies lifecycle events. Guards such as "fully designated"
// are evaluated against the order's ledger entries read in the same transaction. After
// the commit an OrderStateChanged event is published; a publishing failure is logged and
// does not fail the command.
type FireOrderEventCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
	log        *logger.Logger
}

func NewFireOrderEventCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
	log *logger.Logger,
) FireOrderEventCommandHandler {
	if log == nil {
		log = logger.Nop()
	}
	return FireOrderEventCommandHandler{uowFactory: uowFactory, publisher: publisher, log: log}
}

func (h *FireOrderEventCommandHandler) Handle(ctx context.Context, cmd FireOrderEventCommand) (OrderTransition, error) {
	if err := cmd.Validate(); err != nil {
		return OrderTransition{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderTransition{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return OrderTransition{}, err
	}
	entries, err := uow.OrdersPackageRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return OrderTransition{}, err
	}
	summary := services.SummarizeDesignations(entries)

	from := o.State()
	outcome := o.FireStateEvent(cmd.Event(), summary, cmd.CancellationReason())
	result := OrderTransition{Outcome: outcome, From: from, To: o.State(), Events: o.StateEvents(summary)}
	if !outcome.IsChanged() {
		return result, nil
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return OrderTransition{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return OrderTransition{}, err
	}

	if h.publisher != nil {
		event := ports.OrderStateChanged{
			OrderID:            o.ID(),
			Code:               o.Code(),
			Event:              cmd.Event().String(),
			FromState:          from.String(),
			ToState:            o.State().String(),
			CancellationReason: o.CancellationReason(),
			Actor:              cmd.ActorID(),
			OccurredAt:         cmd.At(),
		}
		if err = h.publisher.PublishStateChanged(ctx, event); err != nil {
			h.log.Warn(h.log.WithOrderID(ctx, o.ID().String()), "publishing order state change failed", err)
		}
	}

	return result, nil
}
