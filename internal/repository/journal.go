package repository

import (
	"context"

	"github.com/yken-tsuru/ganttx/internal/db"
	"github.com/yken-tsuru/ganttx/internal/domain"
)

// BoundedJournal appends entries and trims the log to a retention limit in
// the same transaction.
type BoundedJournal struct {
	uow  db.UnitOfWork
	keep int
}

// NewBoundedJournal keeps at most keep entries; keep <= 0 disables trimming.
func NewBoundedJournal(uow db.UnitOfWork, keep int) *BoundedJournal {
	return &BoundedJournal{uow: uow, keep: keep}
}

func (j *BoundedJournal) Append(ctx context.Context, rec *domain.EditRecord) error {
	return j.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLiteJournalRepo(tx)
		if err := repo.Append(ctx, rec); err != nil {
			return err
		}
		if j.keep <= 0 {
			return nil
		}
		_, err := repo.Prune(ctx, j.keep)
		return err
	})
}
