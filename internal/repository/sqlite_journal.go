package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yken-tsuru/ganttx/internal/db"
	"github.com/yken-tsuru/ganttx/internal/domain"
)

// SQLiteJournalRepo implements JournalRepo over the edit_log table.
type SQLiteJournalRepo struct {
	db db.DBTX
}

func NewSQLiteJournalRepo(conn db.DBTX) *SQLiteJournalRepo {
	return &SQLiteJournalRepo{db: conn}
}

// Append stores rec, assigning an id and timestamp when they are unset.
func (r *SQLiteJournalRepo) Append(ctx context.Context, rec *domain.EditRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO edit_log (id, issue_id, kind, fields, outcome, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.IssueID, string(rec.Kind), rec.Fields, string(rec.Outcome), rec.Detail,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("appending journal entry: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first. A non-positive limit lists
// everything.
func (r *SQLiteJournalRepo) ListRecent(ctx context.Context, limit int) ([]*domain.EditRecord, error) {
	limit = sqlLimit(limit)
	return r.list(ctx, `SELECT id, issue_id, kind, fields, outcome, detail, created_at
		FROM edit_log ORDER BY seq DESC LIMIT ?`, limit)
}

func (r *SQLiteJournalRepo) ListByIssue(ctx context.Context, issueID, limit int) ([]*domain.EditRecord, error) {
	limit = sqlLimit(limit)
	return r.list(ctx, `SELECT id, issue_id, kind, fields, outcome, detail, created_at
		FROM edit_log WHERE issue_id = ? ORDER BY seq DESC LIMIT ?`, issueID, limit)
}

// Prune deletes all but the newest keep entries.
func (r *SQLiteJournalRepo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM edit_log WHERE seq NOT IN (SELECT seq FROM edit_log ORDER BY seq DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning journal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning journal: %w", err)
	}
	return n, nil
}

func (r *SQLiteJournalRepo) list(ctx context.Context, query string, args ...any) ([]*domain.EditRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing journal: %w", err)
	}
	defer rows.Close()

	var out []*domain.EditRecord
	for rows.Next() {
		var (
			rec     domain.EditRecord
			kind    string
			outcome string
			created string
		)
		if err := rows.Scan(&rec.ID, &rec.IssueID, &kind, &rec.Fields, &outcome, &rec.Detail, &created); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		rec.Kind = domain.EditKind(kind)
		rec.Outcome = domain.EditOutcome(outcome)
		rec.CreatedAt = parseStamp(created)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// sqlLimit maps "no limit" to SQLite's LIMIT -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
