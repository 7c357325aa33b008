package repository

import (
	"context"
	"errors"

	"github.com/yken-tsuru/ganttx/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// CompactModeKey is the settings key of the persisted compact-header flag.
const CompactModeKey = "gantt_extra.compact_mode"

type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	GetBool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, v bool) error
}

type JournalRepo interface {
	Append(ctx context.Context, rec *domain.EditRecord) error
	ListRecent(ctx context.Context, limit int) ([]*domain.EditRecord, error)
	ListByIssue(ctx context.Context, issueID, limit int) ([]*domain.EditRecord, error)
	Prune(ctx context.Context, keep int) (int64, error)
}
