package jobs

import (
	"context"
	"errors"
	"fmt"

	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/logger"
)

const defaultPruneBatch = 100

type redundantEntryLister interface {
	ListOrderIDsWithRedundant(ctx context.Context, limit int) ([]kernel.UUID, error)
}

type pruneHandler interface {
	Handle(ctx context.Context, cmd commands.PruneCancelledOrdersPackagesCommand) (int64, error)
}

// PruneCancelledOrdersPackagesJob removes redundant ledger entries left behind by
// releases, one order at a time.
type PruneCancelledOrdersPackagesJob struct {
	spec    string
	batch   int
	lister  redundantEntryLister
	handler pruneHandler
	log     *logger.Logger
}

func NewPruneCancelledOrdersPackagesJob(
	spec string,
	batch int,
	lister redundantEntryLister,
	handler pruneHandler,
	log *logger.Logger,
) *PruneCancelledOrdersPackagesJob {
	if batch <= 0 {
		batch = defaultPruneBatch
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PruneCancelledOrdersPackagesJob{spec: spec, batch: batch, lister: lister, handler: handler, log: log}
}

func (j *PruneCancelledOrdersPackagesJob) Name() string { return "prune_cancelled_orders_packages" }
func (j *PruneCancelledOrdersPackagesJob) Spec() string { return j.spec }

// Run prunes up to one batch of orders. A failing order does not stop the others.
func (j *PruneCancelledOrdersPackagesJob) Run(ctx context.Context) error {
	orderIDs, err := j.lister.ListOrderIDsWithRedundant(ctx, j.batch)
	if err != nil {
		return fmt.Errorf("list orders with redundant entries: %w", err)
	}

	var (
		total int64
		errs  []error
	)
	for _, orderID := range orderIDs {
		cmd, err := commands.NewPruneCancelledOrdersPackagesCommand(orderID, nil)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pruned, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			errs = append(errs, fmt.Errorf("order %s: %w", orderID, err))
			continue
		}
		total += pruned
	}

	if total > 0 {
		j.log.Info(ctx, fmt.Sprintf("pruned %d redundant entries across %d orders", total, len(orderIDs)))
	}
	return errors.Join(errs...)
}
