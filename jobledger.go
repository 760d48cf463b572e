// Package jobledger tracks one terminal outcome per job: pending,
// completed, or failed, keyed by a short queue identifier (QID).
//
// The transition operations are atomic and idempotent: each one
// removes the QID from every record set and re-inserts it into exactly
// one, inside a single storage transaction, so a QID is never recorded
// in more than one terminal set and repeated transitions converge on
// the latest outcome.
//
// This is the main package users should import. It re-exports the
// public types from the pkg/ packages for a clean API surface.
//
// Basic usage:
//
//	// Create store and ledger
//	db, _ := gorm.Open(sqlite.Open("jobledger.db"), &gorm.Config{})
//	store := jobledger.NewGormStore(db)
//	store.Migrate(context.Background())
//	ledger := jobledger.New(store)
//
//	// Record outcomes after processing
//	ledger.RecordSuccess(ctx, "Q42", "imported 3 statements")
//	ledger.RecordFailure(ctx, "Q137", "source page vanished")
//
//	// Inspect
//	status, _ := ledger.Status(ctx, "Q42")
package jobledger

import (
	"gorm.io/gorm"

	"github.com/wikibots/jobledger/pkg/core"
	"github.com/wikibots/jobledger/pkg/ledger"
	"github.com/wikibots/jobledger/pkg/security"
	"github.com/wikibots/jobledger/pkg/storage"
)

// Type aliases re-exported from pkg/.
type (
	// Ledger records job outcomes against a Store.
	Ledger = ledger.Ledger

	// Store defines the persistence layer for the ledger.
	Store = core.Store

	// GormStore implements Store using GORM.
	GormStore = storage.GormStore

	// PendingJob is a job enqueued for work, not yet resolved.
	PendingJob = core.PendingJob

	// CompletedJob records a successful outcome for a QID.
	CompletedJob = core.CompletedJob

	// FailedJob records a failed outcome for a QID.
	FailedJob = core.FailedJob

	// Status identifies which record set a QID currently occupies.
	Status = core.Status

	// Stats holds per-set record counts.
	Stats = core.Stats

	// Event is the interface for all ledger events.
	Event = core.Event

	// SuccessRecorded is emitted when a QID transitions to completed.
	SuccessRecorded = core.SuccessRecorded

	// FailureRecorded is emitted when a QID transitions to failed.
	FailureRecorded = core.FailureRecorded
)

// Status constants
const (
	StatusPending   = core.StatusPending
	StatusCompleted = core.StatusCompleted
	StatusFailed    = core.StatusFailed
	StatusUnknown   = core.StatusUnknown
)

// Field limits
const (
	MaxQIDLength     = security.MaxQIDLength
	MaxMessageLength = security.MaxMessageLength
)

// Error variables
var (
	ErrInvalidQID          = core.ErrInvalidQID
	ErrQIDTooLong          = core.ErrQIDTooLong
	ErrStorageUnavailable  = core.ErrStorageUnavailable
	ErrConstraintViolation = core.ErrConstraintViolation
)

// New creates a new Ledger with the given store backend.
func New(s Store) *Ledger {
	return ledger.New(s)
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) *GormStore {
	return storage.NewGormStore(db)
}

// ValidateQID validates a QID.
func ValidateQID(qid string) error {
	return security.ValidateQID(qid)
}

// SanitizeMessage truncates and sanitizes free text for storage.
func SanitizeMessage(msg string) string {
	return security.SanitizeMessage(msg)
}
