// Package core provides the fundamental types and interfaces for the ledger.
//
// This package contains:
//   - PendingJob, CompletedJob and FailedJob data models with GORM annotations
//   - Store interface defining the persistence contract
//   - Event types for transition monitoring
//   - Sentinel errors for the ledger error taxonomy
//
// Most users should import the root package github.com/wikibots/jobledger
// instead of this package directly.
package core
