package commands

import (
	"context"
	"errors"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var ErrResolveSyncIssueCommandIsNotConstructed = errors.New(
	"ResolveSyncIssueCommand must be created via NewResolveSyncIssueCommand constructor",
)

// ResolveSyncIssueCommand closes a drift flag once an operator reconciled the mirror.
type ResolveSyncIssueCommand struct { //nolint:recvcheck //using for validation
	issueID kernel.UUID
	at      time.Time

	guard guard.ConstructorGuard
}

func NewResolveSyncIssueCommand(issueID kernel.UUID, at time.Time) (ResolveSyncIssueCommand, error) {
	if err := issueID.Validate(); err != nil {
		return ResolveSyncIssueCommand{}, err
	}
	if at.IsZero() {
		return ResolveSyncIssueCommand{}, errs.NewValueIsRequiredError("resolved at")
	}
	return ResolveSyncIssueCommand{issueID: issueID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c ResolveSyncIssueCommand) Validate() error {
	return c.guard.Validate(ErrResolveSyncIssueCommandIsNotConstructed)
}

func (c ResolveSyncIssueCommand) IssueID() kernel.UUID { return c.issueID }
func (c ResolveSyncIssueCommand) At() time.Time        { return c.at }

type ResolveSyncIssueCommandHandler struct {
	issues ports.SyncIssueRepository
}

func NewResolveSyncIssueCommandHandler(issues ports.SyncIssueRepository) ResolveSyncIssueCommandHandler {
	return ResolveSyncIssueCommandHandler{issues: issues}
}

func (h *ResolveSyncIssueCommandHandler) Handle(ctx context.Context, cmd ResolveSyncIssueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.issues.Resolve(ctx, cmd.IssueID(), cmd.At())
}
