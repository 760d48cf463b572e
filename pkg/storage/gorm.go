package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wikibots/jobledger/pkg/core"
)

// GormStore implements core.Store using GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB returns the underlying gorm handle.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

// IsSQLite reports whether the store is backed by SQLite.
func (s *GormStore) IsSQLite() bool {
	if s.db == nil {
		return false
	}
	return s.db.Dialector.Name() == "sqlite"
}

// wrapError maps driver failures onto the ledger error taxonomy so
// callers can distinguish retryable outages from schema bugs.
func (s *GormStore) wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "constraint") {
		return fmt.Errorf("%w: %v", core.ErrConstraintViolation, err)
	}
	return fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
}

// Migrate creates the necessary tables.
func (s *GormStore) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&core.PendingJob{},
		&core.CompletedJob{},
		&core.FailedJob{},
	)
	return s.wrapError(err)
}

// Enqueue appends a pending row for qid.
func (s *GormStore) Enqueue(ctx context.Context, qid string) (*core.PendingJob, error) {
	job := &core.PendingJob{QID: qid}
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, s.wrapError(err)
	}
	return job, nil
}

// Complete records a successful outcome for qid. In one transaction it
// deletes any pending, completed and failed rows for the qid, then
// inserts a fresh completed row. Delete-then-insert rather than upsert
// keeps last-wins semantics independent of the driver's conflict
// handling.
func (s *GormStore) Complete(ctx context.Context, qid string, message string) (*core.CompletedJob, error) {
	rec := &core.CompletedJob{
		QID:         qid,
		Message:     message,
		CompletedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("qid = ?", qid).Delete(&core.PendingJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("qid = ?", qid).Delete(&core.CompletedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("qid = ?", qid).Delete(&core.FailedJob{}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, s.wrapError(err)
	}
	return rec, nil
}

// Fail records a failed outcome for qid. In one transaction it deletes
// any completed and failed rows for the qid, then inserts a fresh
// failed row. Pending rows are left in place so a failed job stays
// visible for manual requeue.
func (s *GormStore) Fail(ctx context.Context, qid string, errMsg string) (*core.FailedJob, error) {
	rec := &core.FailedJob{
		QID:      qid,
		Error:    errMsg,
		FailedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("qid = ?", qid).Delete(&core.CompletedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("qid = ?", qid).Delete(&core.FailedJob{}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, s.wrapError(err)
	}
	return rec, nil
}

// NextPending returns the oldest pending row, or nil if the queue is
// empty.
func (s *GormStore) NextPending(ctx context.Context) (*core.PendingJob, error) {
	var job core.PendingJob
	err := s.db.WithContext(ctx).Order("id ASC").First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.wrapError(err)
	}
	return &job, nil
}

// GetPending returns the oldest pending row for qid, or nil if absent.
func (s *GormStore) GetPending(ctx context.Context, qid string) (*core.PendingJob, error) {
	var job core.PendingJob
	err := s.db.WithContext(ctx).Order("id ASC").First(&job, "qid = ?", qid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.wrapError(err)
	}
	return &job, nil
}

// GetCompleted retrieves the completed record for qid, or nil if absent.
func (s *GormStore) GetCompleted(ctx context.Context, qid string) (*core.CompletedJob, error) {
	var rec core.CompletedJob
	err := s.db.WithContext(ctx).First(&rec, "qid = ?", qid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.wrapError(err)
	}
	return &rec, nil
}

// GetFailed retrieves the failed record for qid, or nil if absent.
func (s *GormStore) GetFailed(ctx context.Context, qid string) (*core.FailedJob, error) {
	var rec core.FailedJob
	err := s.db.WithContext(ctx).First(&rec, "qid = ?", qid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.wrapError(err)
	}
	return &rec, nil
}

// ListPending returns pending rows in queue order.
func (s *GormStore) ListPending(ctx context.Context, limit int) ([]*core.PendingJob, error) {
	var jobs []*core.PendingJob
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, s.wrapError(err)
	}
	return jobs, nil
}

// ListFailed returns failed records, most recent first.
func (s *GormStore) ListFailed(ctx context.Context, limit int) ([]*core.FailedJob, error) {
	var recs []*core.FailedJob
	err := s.db.WithContext(ctx).
		Order("failed_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, s.wrapError(err)
	}
	return recs, nil
}

// ListRetryable returns failed records flagged for reprocessing.
func (s *GormStore) ListRetryable(ctx context.Context, limit int) ([]*core.FailedJob, error) {
	var recs []*core.FailedJob
	err := s.db.WithContext(ctx).
		Where("retry_allowed = ?", true).
		Order("failed_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, s.wrapError(err)
	}
	return recs, nil
}

// Stats returns per-set record counts.
func (s *GormStore) Stats(ctx context.Context) (*core.Stats, error) {
	stats := new(core.Stats)
	db := s.db.WithContext(ctx)
	if err := db.Model(&core.PendingJob{}).Count(&stats.Pending).Error; err != nil {
		return nil, s.wrapError(err)
	}
	if err := db.Model(&core.CompletedJob{}).Count(&stats.Completed).Error; err != nil {
		return nil, s.wrapError(err)
	}
	if err := db.Model(&core.FailedJob{}).Count(&stats.Failed).Error; err != nil {
		return nil, s.wrapError(err)
	}
	return stats, nil
}

// SetRetryAllowed updates the retry flag on the failed record for qid.
// It is a no-op if no failed record exists. The transitions themselves
// never call this; only external retry tooling does.
func (s *GormStore) SetRetryAllowed(ctx context.Context, qid string, allowed bool) error {
	err := s.db.WithContext(ctx).
		Model(&core.FailedJob{}).
		Where("qid = ?", qid).
		Update("retry_allowed", allowed).Error
	return s.wrapError(err)
}

// DeletePending removes all pending rows for qid and reports how many
// were deleted.
func (s *GormStore) DeletePending(ctx context.Context, qid string) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("qid = ?", qid).
		Delete(&core.PendingJob{})
	if result.Error != nil {
		return 0, s.wrapError(result.Error)
	}
	return result.RowsAffected, nil
}
