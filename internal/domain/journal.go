package domain

import "time"

// EditRecord is one entry in the local journal of write attempts.
type EditRecord struct {
	ID        string
	IssueID   int
	Kind      EditKind
	Fields    string
	Outcome   EditOutcome
	Detail    string
	CreatedAt time.Time
}
