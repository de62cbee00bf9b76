package queries

import (
	"context"
	"errors"

	"donations/internal/core/ports"
	"donations/internal/pkg/errs"
	"donations/internal/pkg/guard"
)

var (
	ErrListOpenSyncIssuesQueryIsNotConstructed = errors.New(
		"ListOpenSyncIssuesQuery must be created via NewListOpenSyncIssuesQuery constructor",
	)
)

const maxSyncIssuesLimit = 200

// ListOpenSyncIssuesQuery returns unresolved inventory mirror drift flags, oldest first.
type ListOpenSyncIssuesQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewListOpenSyncIssuesQuery(limit int) (ListOpenSyncIssuesQuery, error) {
	if limit < 0 || limit > maxSyncIssuesLimit {
		return ListOpenSyncIssuesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, maxSyncIssuesLimit)
	}
	if limit == 0 {
		limit = maxSyncIssuesLimit
	}
	return ListOpenSyncIssuesQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOpenSyncIssuesQuery) Validate() error {
	return q.guard.Validate(ErrListOpenSyncIssuesQueryIsNotConstructed)
}

func (q ListOpenSyncIssuesQuery) Limit() int { return q.limit }

// OpenSyncIssues is a page of open flags together with the total number still open.
type OpenSyncIssues struct {
	Issues []ports.SyncIssue
	Total  int64
}

type ListOpenSyncIssuesQueryHandler struct {
	issues ports.SyncIssueRepository
}

func NewListOpenSyncIssuesQueryHandler(issues ports.SyncIssueRepository) ListOpenSyncIssuesQueryHandler {
	return ListOpenSyncIssuesQueryHandler{issues: issues}
}

func (h ListOpenSyncIssuesQueryHandler) Handle(ctx context.Context, query ListOpenSyncIssuesQuery) (OpenSyncIssues, error) {
	if err := query.Validate(); err != nil {
		return OpenSyncIssues{}, err
	}
	issues, err := h.issues.ListOpen(ctx, query.Limit())
	if err != nil {
		return OpenSyncIssues{}, err
	}
	total, err := h.issues.CountOpen(ctx)
	if err != nil {
		return OpenSyncIssues{}, err
	}
	return OpenSyncIssues{Issues: issues, Total: total}, nil
}
