package order

import (
	"fmt"
	"strings"

	"donations/internal/pkg/errs"
)

// DetailType names the kind of record the order-detail provider attached to an order.
type DetailType string

const (
	DetailGoodCity          DetailType = "GoodCity"
	DetailAppointment       DetailType = "Appointment"
	DetailStockitLocalOrder DetailType = "StockitLocalOrder"
)

// Detail is an opaque reference to provider data. The core never interprets the ID.
type Detail struct {
	kind DetailType
	id   string
}

func NewDetail(kind DetailType, id string) (Detail, error) {
	switch kind {
	case DetailGoodCity, DetailAppointment, DetailStockitLocalOrder:
	default:
		return Detail{}, errs.NewValueIsInvalidErrorWithCause("detail type", fmt.Errorf("%q is not supported", kind))
	}
	return Detail{kind: kind, id: strings.TrimSpace(id)}, nil
}

func (d Detail) Type() DetailType { return d.kind }
func (d Detail) ID() string       { return d.id }
func (d Detail) IsZero() bool     { return d.kind == "" }

// BookingType distinguishes online orders from walk-in appointments.
type BookingType string

const (
	BookingOnlineOrder BookingType = "online-order"
	BookingAppointment BookingType = "appointment"
)

func ParseBookingType(s string) (BookingType, error) {
	switch bt := BookingType(strings.ToLower(strings.TrimSpace(s))); bt {
	case BookingOnlineOrder, BookingAppointment:
		return bt, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("booking type", fmt.Errorf("%q is not supported", s))
	}
}
