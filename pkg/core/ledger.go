package core

import (
	"time"
)

// Status identifies which record set a QID currently occupies.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusUnknown   Status = "unknown"
)

// PendingJob is a job enqueued for work, not yet resolved.
// The surrogate ID orders the queue. QID is deliberately not unique
// here: the producer owns pending rows and may enqueue the same QID
// more than once.
type PendingJob struct {
	ID  int64  `gorm:"primaryKey;autoIncrement"`
	QID string `gorm:"column:qid;index;size:15;not null"`
}

// CompletedJob records a successful outcome for a QID.
// At most one row exists per QID; a later transition replaces it.
type CompletedJob struct {
	QID          string    `gorm:"column:qid;primaryKey;size:15"`
	Message      string    `gorm:"size:255"`
	CompletedAt  time.Time `gorm:"not null"`
	RetryAllowed bool      `gorm:"default:false"`
	Note         string    `gorm:"size:255"`
}

// FailedJob records a failed outcome for a QID.
// At most one row exists per QID; a later transition replaces it.
type FailedJob struct {
	QID          string    `gorm:"column:qid;primaryKey;size:15"`
	Error        string    `gorm:"size:255"`
	FailedAt     time.Time `gorm:"not null"`
	RetryAllowed bool      `gorm:"default:false"`
	Note         string    `gorm:"size:255"`
}

// Stats holds per-set record counts.
type Stats struct {
	Pending   int64
	Completed int64
	Failed    int64
}
