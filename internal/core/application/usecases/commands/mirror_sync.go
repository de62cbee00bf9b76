package commands

import (
	"context"
	"errors"
	"time"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/logger"
	"donations/internal/pkg/metrics"
)

const stockitSystem = "stockit"

// MirrorSync pushes committed ledger changes to the inventory mirror. A failed push never
// undoes the ledger write. It is logged, counted, flagged as a sync issue and reported
// to the caller as *errs.ExternalSyncError. A push the mirror refuses as stale is dropped:
// a later commit of the same package already reached it.
type MirrorSync struct {
	mirror  ports.InventoryMirror
	issues  ports.SyncIssueRepository
	metrics *metrics.DesignationMetrics
	log     *logger.Logger
}

func NewMirrorSync(
	mirror ports.InventoryMirror,
	issues ports.SyncIssueRepository,
	m *metrics.DesignationMetrics,
	log *logger.Logger,
) MirrorSync {
	if log == nil {
		log = logger.Nop()
	}
	return MirrorSync{mirror: mirror, issues: issues, metrics: m, log: log}
}

func (s MirrorSync) Designate(ctx context.Context, pkg *donation.Package, ref ports.StockitOrderRef, at time.Time) error {
	err := s.mirror.DesignateToStockitOrder(ctx, pkg, ref)
	if err == nil || s.stale(ctx, pkg, ports.SyncDesignate, err) {
		return nil
	}
	orderID := ref.OrderID
	return s.flag(ctx, pkg, &orderID, ports.SyncDesignate, at, err)
}

func (s MirrorSync) Undesignate(ctx context.Context, pkg *donation.Package, orderID *kernel.UUID, at time.Time) error {
	err := s.mirror.UndesignateFromStockitOrder(ctx, pkg)
	if err == nil || s.stale(ctx, pkg, ports.SyncUndesignate, err) {
		return nil
	}
	return s.flag(ctx, pkg, orderID, ports.SyncUndesignate, at, err)
}

func (s MirrorSync) stale(ctx context.Context, pkg *donation.Package, op ports.SyncOperation, err error) bool {
	if !errors.Is(err, ports.ErrStaleMirrorPush) {
		return false
	}
	ctx = s.log.WithPackageID(ctx, pkg.ID().String())
	s.log.Info(ctx, "inventory mirror "+string(op)+" superseded by a newer designation: "+err.Error())
	s.metrics.IncOutcome("mirror_"+string(op), outcomeStale)
	return true
}

func (s MirrorSync) flag(
	ctx context.Context,
	pkg *donation.Package,
	orderID *kernel.UUID,
	op ports.SyncOperation,
	at time.Time,
	cause error,
) error {
	ctx = s.log.WithPackageID(ctx, pkg.ID().String())
	if orderID != nil {
		ctx = s.log.WithOrderID(ctx, orderID.String())
	}
	s.log.Error(ctx, "inventory mirror "+string(op)+" failed, ledger kept", cause)
	s.metrics.IncMirrorFailure(string(op))

	if s.issues != nil {
		issue := ports.SyncIssue{
			ID:         kernel.NewUUID(),
			PackageID:  pkg.ID(),
			OrderID:    orderID,
			Operation:  op,
			Reason:     cause.Error(),
			OccurredAt: at,
		}
		if err := s.issues.Record(ctx, issue); err != nil {
			s.log.Error(ctx, "recording sync issue failed", err)
		}
	}

	return errs.NewExternalSyncError(stockitSystem, string(op), cause)
}
