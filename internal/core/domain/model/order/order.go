package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is a request for donated goods. It is the aggregate root for the order lifecycle;
// the goods themselves are linked through ledger entries owned by the orderspackage package.
//
// Order follows these invariants:
//   - Must have a valid identifier, a non-empty code and a known booking type
//   - Its state is always one of the defined States
//   - It can be destroyed only while it is a draft
//   - State changes happen only through FireStateEvent
type Order struct {
	id                   kernel.UUID
	code                 string
	state                State
	detail               Detail
	bookingType          BookingType
	cancellationReason   string
	priority             bool
	createdBy            kernel.UUID
	createdAt            time.Time
	transportScheduledAt *time.Time

	isConstructed bool
}

// NewOrder creates a draft order.
//
// Parameters:
//   - id: unique identifier
//   - code: human readable order code shown to operators
//   - detail: provider reference (may be empty for orders created before the provider was known)
//   - bookingType: online order or appointment
//   - createdBy: acting user
//   - createdAt: creation time, used by dashboard filtering
func NewOrder(
	id kernel.UUID,
	code string,
	detail Detail,
	bookingType BookingType,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	return RestoreOrder(id, code, Draft, detail, bookingType, "", false, createdBy, createdAt, nil)
}

// RestoreOrder rebuilds an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	code string,
	state State,
	detail Detail,
	bookingType BookingType,
	cancellationReason string,
	priority bool,
	createdBy kernel.UUID,
	createdAt time.Time,
	transportScheduledAt *time.Time,
) (*Order, error) {
	o := &Order{
		detail:               detail,
		cancellationReason:   cancellationReason,
		priority:             priority,
		createdAt:            createdAt,
		transportScheduledAt: transportScheduledAt,
		isConstructed:        true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setState(state),
		o.setBookingType(bookingType),
		o.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built through one of its constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) Code() string               { return o.code }
func (o *Order) State() State               { return o.state }
func (o *Order) Detail() Detail             { return o.detail }
func (o *Order) BookingType() BookingType   { return o.bookingType }
func (o *Order) CancellationReason() string { return o.cancellationReason }
func (o *Order) IsPriority() bool           { return o.priority }
func (o *Order) CreatedBy() kernel.UUID     { return o.createdBy }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }

// TransportScheduledAt returns the scheduled pickup/delivery time, or nil when no
// transport has been arranged.
func (o *Order) TransportScheduledAt() *time.Time {
	if o.transportScheduledAt == nil {
		return nil
	}
	t := *o.transportScheduledAt
	return &t
}

func (o *Order) IsDraft() bool  { return o.state == Draft }
func (o *Order) IsActive() bool { return o.state.IsActive() }

// CanDestroy reports whether the order may be deleted.
func (o *Order) CanDestroy() bool {
	return o.IsDraft()
}

// StateEvents lists the events that FireStateEvent would currently apply.
func (o *Order) StateEvents(summary DesignationSummary) []Event {
	return o.state.Events(summary)
}

// FireStateEvent applies event if it is available for the current state and summary.
//
// An unavailable event leaves the order untouched and returns kernel.Unchanged. When the
// event is applied and cancellationReason is not blank, the reason is recorded as well.
//
// Example:
//
//	if o.FireStateEvent(order.EventCancel, summary, "donor withdrew").IsChanged() {
//	    // persist and publish
//	}
func (o *Order) FireStateEvent(event Event, summary DesignationSummary, cancellationReason string) kernel.Outcome {
	next, ok := o.state.Next(event, summary)
	if !ok {
		return kernel.Unchanged
	}

	o.state = next
	if reason := strings.TrimSpace(cancellationReason); reason != "" {
		o.cancellationReason = reason
	}
	return kernel.Changed
}

// MarkPriority sets the dashboard priority flag.
func (o *Order) MarkPriority(priority bool) {
	o.priority = priority
}

// ScheduleTransport records when the order's goods will be picked up or delivered.
func (o *Order) ScheduleTransport(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("transport scheduled at")
	}
	o.transportScheduledAt = &at
	return nil
}

// ClearTransport removes the transport arrangement.
func (o *Order) ClearTransport() {
	o.transportScheduledAt = nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	o.code = code
	return nil
}

func (o *Order) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	o.state = state
	return nil
}

func (o *Order) setBookingType(bookingType BookingType) error {
	if _, err := ParseBookingType(string(bookingType)); err != nil {
		return err
	}
	o.bookingType = bookingType
	return nil
}

func (o *Order) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("created by", fmt.Errorf("actor: %w", err))
	}
	o.createdBy = createdBy
	return nil
}
