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

var ErrFireOrderEventCommandIsNotConstructed = errors.New(
	"FireOrderEventCommand must be created via NewFireOrderEventCommand constructor",
)

// FireOrderEventCommand asks for a lifecycle transition of an order.
type FireOrderEventCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	event              order.Event
	cancellationReason string
	actorID            kernel.UUID
	at                 time.Time

	guard guard.ConstructorGuard
}

func NewFireOrderEventCommand(
	orderID kernel.UUID,
	event order.Event,
	cancellationReason string,
	actorID kernel.UUID,
	at time.Time,
) (FireOrderEventCommand, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate()); err != nil {
		return FireOrderEventCommand{}, err
	}
	if event.String() == "unknown" {
		return FireOrderEventCommand{}, errs.NewValueIsInvalidError("transition")
	}
	return FireOrderEventCommand{
		orderID:            orderID,
		event:              event,
		cancellationReason: strings.TrimSpace(cancellationReason),
		actorID:            actorID,
		at:                 at,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c FireOrderEventCommand) Validate() error {
	return c.guard.Validate(ErrFireOrderEventCommandIsNotConstructed)
}

func (c FireOrderEventCommand) OrderID() kernel.UUID       { return c.orderID }
func (c FireOrderEventCommand) Event() order.Event         { return c.event }
func (c FireOrderEventCommand) CancellationReason() string { return c.cancellationReason }
func (c FireOrderEventCommand) ActorID() kernel.UUID       { return c.actorID }
func (c FireOrderEventCommand) At() time.Time              { return c.at }
