// Package security provides validation, sanitization, and limits for the ledger.
//
// This package includes:
//   - QID validation enforcing the restricted identifier charset
//   - Message sanitization bounding the free-text columns
//   - Constants defining the maximum field sizes
//
// Most users should import the root package github.com/wikibots/jobledger
// which re-exports these functions.
package security
