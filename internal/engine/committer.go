package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yken-tsuru/ganttx/internal/domain"
)

// Store is the remote issue store.
type Store interface {
	FetchSchedule(ctx context.Context, id int) (*domain.ScheduleItem, error)
	SubmitUpdate(ctx context.Context, id int, patch domain.Patch) error
}

// Journal records write attempts.
type Journal interface {
	Append(ctx context.Context, rec *domain.EditRecord) error
}

// SubmitOptions tunes how a write result is handled.
type SubmitOptions struct {
	// Silent suppresses the reload after a successful write.
	Silent bool
}

// Result is the outcome of one commit.
type Result struct {
	ItemID  int
	Kind    domain.EditKind
	Patch   domain.Patch
	Err     error
	Outcome Outcome
}

// Committer performs fetch-then-patch writes. Date changes are always
// computed from a snapshot fetched immediately before the write.
type Committer struct {
	store   Store
	journal Journal
	strings domain.Strings
	opts    SubmitOptions
	logger  *slog.Logger
}

// NewCommitter creates a Committer. journal and logger may be nil.
func NewCommitter(store Store, journal Journal, strings domain.Strings, opts SubmitOptions, logger *slog.Logger) *Committer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Committer{
		store:   store,
		journal: journal,
		strings: strings.WithDefaults(),
		opts:    opts,
		logger:  logger,
	}
}

// Shift moves both existing bounds of item id by days.
func (c *Committer) Shift(ctx context.Context, id, days int) Result {
	return c.fetchThenPatch(ctx, id, domain.EditMove, days, func(item *domain.ScheduleItem) (domain.Patch, error) {
		return PlanMove(item, days)
	})
}

// SetBound moves one bound of item id by days.
func (c *Committer) SetBound(ctx context.Context, id int, field domain.Field, days int) Result {
	return c.fetchThenPatch(ctx, id, domain.EditResize, days, func(item *domain.ScheduleItem) (domain.Patch, error) {
		return PlanResize(item, field, days)
	})
}

// Reparent sets the parent of item id. A zero parent clears it.
func (c *Committer) Reparent(ctx context.Context, id, parent int) Result {
	patch := domain.Patch{}
	patch.SetInt(domain.FieldParent, parent)
	return c.submit(ctx, id, domain.EditReparent, patch)
}

// QuickEdit writes all quick-edit fields of item id.
func (c *Committer) QuickEdit(ctx context.Context, id int, fields QuickEditFields) Result {
	return c.submit(ctx, id, domain.EditQuickEdit, fields.Patch())
}

func (c *Committer) fetchThenPatch(ctx context.Context, id int, kind domain.EditKind, days int, plan func(*domain.ScheduleItem) (domain.Patch, error)) Result {
	if days == 0 {
		return Result{ItemID: id, Kind: kind}
	}
	item, err := c.store.FetchSchedule(ctx, id)
	if err != nil {
		return c.finish(ctx, id, kind, nil, err)
	}
	patch, err := plan(item)
	if errors.Is(err, ErrNoChange) {
		return Result{ItemID: id, Kind: kind}
	}
	if err != nil {
		return c.finish(ctx, id, kind, nil, err)
	}
	return c.submit(ctx, id, kind, patch)
}

func (c *Committer) submit(ctx context.Context, id int, kind domain.EditKind, patch domain.Patch) Result {
	err := c.store.SubmitUpdate(ctx, id, patch)
	return c.finish(ctx, id, kind, patch, err)
}

func (c *Committer) finish(ctx context.Context, id int, kind domain.EditKind, patch domain.Patch, err error) Result {
	res := Result{
		ItemID:  id,
		Kind:    kind,
		Patch:   patch,
		Err:     err,
		Outcome: ClassifyError(err, c.strings, c.opts.Silent),
	}
	if err != nil {
		c.logger.Warn("edit failed", "issue", id, "kind", kind, "fields", patch.String(), "error", err)
	} else {
		c.logger.Info("edit applied", "issue", id, "kind", kind, "fields", patch.String())
	}
	c.record(ctx, id, kind, patch, err)
	return res
}

func (c *Committer) record(ctx context.Context, id int, kind domain.EditKind, patch domain.Patch, err error) {
	if c.journal == nil {
		return
	}
	rec := &domain.EditRecord{
		IssueID: id,
		Kind:    kind,
		Fields:  patch.String(),
		Outcome: editOutcome(err),
	}
	if err != nil {
		rec.Detail = err.Error()
	}
	if jerr := c.journal.Append(context.WithoutCancel(ctx), rec); jerr != nil {
		c.logger.Error("journal append failed", "issue", id, "error", jerr)
	}
}
