// Package ledger provides the Ledger type, the transition operations
// over the three record sets.
//
// This package includes:
//   - Ledger: RecordSuccess and RecordFailure plus read-side queries
//   - Hook registration for transition callbacks
//   - Event subscription for monitoring
//
// Most users should import the root package github.com/wikibots/jobledger
// which re-exports Ledger and its constructors.
package ledger
