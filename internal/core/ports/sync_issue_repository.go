package ports

import (
	"context"
	"time"

	"donations/internal/core/domain/model/kernel"
)

type SyncOperation string

const (
	SyncDesignate   SyncOperation = "designate"
	SyncUndesignate SyncOperation = "undesignate"
)

// SyncIssue flags a committed ledger change that the inventory mirror did not receive.
type SyncIssue struct {
	ID         kernel.UUID
	PackageID  kernel.UUID
	OrderID    *kernel.UUID
	Operation  SyncOperation
	Reason     string
	OccurredAt time.Time
}

// SyncIssueRepository stores drift flags for operator follow-up.
type SyncIssueRepository interface {
	Record(ctx context.Context, issue SyncIssue) error
	CountOpen(ctx context.Context) (int64, error)
	ListOpen(ctx context.Context, limit int) ([]SyncIssue, error)
	Resolve(ctx context.Context, id kernel.UUID, at time.Time) error
}
