package ports

import (
	"context"
	"time"

	"donations/internal/core/domain/model/kernel"
)

// OrderStateChanged is emitted after an order lifecycle event was committed.
type OrderStateChanged struct {
	OrderID            kernel.UUID
	Code               string
	Event              string
	FromState          string
	ToState            string
	CancellationReason string
	Actor              kernel.UUID
	OccurredAt         time.Time
}

type OrderEventPublisher interface {
	PublishStateChanged(ctx context.Context, event OrderStateChanged) error
}
