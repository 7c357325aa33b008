package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yken-tsuru/ganttx/internal/domain"
	"github.com/yken-tsuru/ganttx/internal/testutil"
)

func record(issueID int, kind domain.EditKind, outcome domain.EditOutcome) *domain.EditRecord {
	return &domain.EditRecord{IssueID: issueID, Kind: kind, Fields: "start_date=2024-01-11", Outcome: outcome}
}

func TestJournalRepo_Append_AssignsIDAndTime(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))
	rec := record(7, domain.EditMove, domain.OutcomeApplied)

	require.NoError(t, repo.Append(context.Background(), rec))

	assert.Len(t, rec.ID, 36)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestJournalRepo_ListRecent_NewestFirst(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, record(1, domain.EditMove, domain.OutcomeApplied)))
	require.NoError(t, repo.Append(ctx, record(2, domain.EditResize, domain.OutcomeValidation)))
	require.NoError(t, repo.Append(ctx, record(3, domain.EditReparent, domain.OutcomePermission)))

	recs, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 3, recs[0].IssueID)
	assert.Equal(t, domain.EditReparent, recs[0].Kind)
	assert.Equal(t, domain.OutcomePermission, recs[0].Outcome)
	assert.Equal(t, 2, recs[1].IssueID)

	all, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestJournalRepo_ListByIssue(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, record(1, domain.EditMove, domain.OutcomeApplied)))
	require.NoError(t, repo.Append(ctx, record(2, domain.EditMove, domain.OutcomeApplied)))
	require.NoError(t, repo.Append(ctx, record(1, domain.EditQuickEdit, domain.OutcomeTransport)))

	recs, err := repo.ListByIssue(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, domain.EditQuickEdit, recs[0].Kind)
}

func TestJournalRepo_Prune_KeepsNewest(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Append(ctx, record(i, domain.EditMove, domain.OutcomeApplied)))
	}

	n, err := repo.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	recs, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 5, recs[0].IssueID)
	assert.Equal(t, 4, recs[1].IssueID)
}

func TestBoundedJournal_TrimsOnAppend(t *testing.T) {
	database := testutil.NewTestDB(t)
	journal := NewBoundedJournal(testutil.NewTestUoW(database), 3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, journal.Append(ctx, record(i, domain.EditMove, domain.OutcomeApplied)))
	}

	recs, err := NewSQLiteJournalRepo(database).ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestBoundedJournal_RollsBackWhenPruneFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: boom}
	journal := NewBoundedJournal(uow, 10)

	err := journal.Append(context.Background(), record(1, domain.EditMove, domain.OutcomeApplied))
	require.ErrorIs(t, err, boom)

	recs, err := NewSQLiteJournalRepo(database).ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
