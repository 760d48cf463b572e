package core

import "time"

// Event is the interface for all ledger events.
type Event interface {
	eventMarker()
}

// SuccessRecorded is emitted when a QID transitions to completed.
type SuccessRecorded struct {
	EventID   string
	Record    *CompletedJob
	Timestamp time.Time
}

func (*SuccessRecorded) eventMarker() {}

// FailureRecorded is emitted when a QID transitions to failed.
type FailureRecorded struct {
	EventID   string
	Record    *FailedJob
	Timestamp time.Time
}

func (*FailureRecorded) eventMarker() {}
