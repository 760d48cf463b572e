package core

import (
	"context"
)

// Store defines the persistence layer for the ledger.
//
// Implementations own atomicity and uniqueness: Complete and Fail must
// execute their delete and insert steps as a single transaction, and a
// failed transaction must leave the store unchanged. Transactions
// touching the same QID must serialize so that the net result matches
// some total order of the individual calls.
type Store interface {
	// Migrate creates the necessary database tables.
	Migrate(ctx context.Context) error

	// Enqueue appends a pending row for qid. It is the producer-side
	// primitive; the transitions below never create pending rows.
	Enqueue(ctx context.Context, qid string) (*PendingJob, error)

	// Transitions. Each runs as one atomic unit.
	//
	// Complete deletes any pending, completed and failed rows for qid,
	// then inserts a fresh CompletedJob stamped with the current time.
	//
	// Fail deletes any completed and failed rows for qid, then inserts
	// a fresh FailedJob stamped with the current time. Fail does NOT
	// delete pending rows: a failed job stays visible in the pending
	// queue so it can be requeued by hand.
	Complete(ctx context.Context, qid string, message string) (*CompletedJob, error)
	Fail(ctx context.Context, qid string, errMsg string) (*FailedJob, error)

	// Queries
	NextPending(ctx context.Context) (*PendingJob, error)
	GetPending(ctx context.Context, qid string) (*PendingJob, error)
	GetCompleted(ctx context.Context, qid string) (*CompletedJob, error)
	GetFailed(ctx context.Context, qid string) (*FailedJob, error)
	ListPending(ctx context.Context, limit int) ([]*PendingJob, error)
	ListFailed(ctx context.Context, limit int) ([]*FailedJob, error)
	ListRetryable(ctx context.Context, limit int) ([]*FailedJob, error)
	Stats(ctx context.Context) (*Stats, error)

	// Maintenance, called by external retry components only. The
	// transitions never touch the retry flag.
	SetRetryAllowed(ctx context.Context, qid string, allowed bool) error
	DeletePending(ctx context.Context, qid string) (int64, error)
}
