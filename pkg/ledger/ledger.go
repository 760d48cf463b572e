package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wikibots/jobledger/pkg/core"
	"github.com/wikibots/jobledger/pkg/security"
)

// Ledger records job outcomes against a core.Store. All state lives in
// the store; the Ledger itself only carries hooks and event
// subscriptions, so a single instance is safe for concurrent use by
// any number of workers.
type Ledger struct {
	store core.Store
	mu    sync.RWMutex

	// Hooks
	onSuccess []func(context.Context, *core.CompletedJob)
	onFailure []func(context.Context, *core.FailedJob)

	// Event stream
	eventSubs []chan core.Event
}

// New creates a new Ledger with the given store backend.
func New(s core.Store) *Ledger {
	return &Ledger{store: s}
}

// Store returns the underlying store, for producer-side and
// maintenance callers that need the raw primitives.
func (l *Ledger) Store() core.Store {
	return l.store
}

// RecordSuccess moves qid into the completed set: the transition
// deletes any pending, completed and failed rows for the qid and
// inserts a fresh completed record, all in one transaction. Calling it
// again for the same qid replaces the record; the latest message wins.
//
// The qid is validated before any storage access; the message is
// truncated to the schema bound. Storage failures propagate wrapped as
// core.ErrStorageUnavailable or core.ErrConstraintViolation — there is
// no retry loop here, the caller decides.
func (l *Ledger) RecordSuccess(ctx context.Context, qid string, message string) error {
	if err := security.ValidateQID(qid); err != nil {
		return err
	}
	rec, err := l.store.Complete(ctx, qid, security.SanitizeMessage(message))
	if err != nil {
		return err
	}

	l.callSuccessHooks(ctx, rec)
	l.emit(&core.SuccessRecorded{
		EventID:   uuid.New().String(),
		Record:    rec,
		Timestamp: time.Now(),
	})
	return nil
}

// RecordFailure moves qid into the failed set: the transition deletes
// any completed and failed rows for the qid and inserts a fresh failed
// record, all in one transaction. Pending rows for the qid are NOT
// removed — a failed job stays visible in the pending queue for manual
// requeue. Otherwise the semantics mirror RecordSuccess.
func (l *Ledger) RecordFailure(ctx context.Context, qid string, errMsg string) error {
	if err := security.ValidateQID(qid); err != nil {
		return err
	}
	rec, err := l.store.Fail(ctx, qid, security.SanitizeMessage(errMsg))
	if err != nil {
		return err
	}

	l.callFailureHooks(ctx, rec)
	l.emit(&core.FailureRecorded{
		EventID:   uuid.New().String(),
		Record:    rec,
		Timestamp: time.Now(),
	})
	return nil
}

// Status reports which set qid currently occupies. Terminal records
// shadow pending rows: a qid with both a pending row and a failed
// record reports StatusFailed.
func (l *Ledger) Status(ctx context.Context, qid string) (core.Status, error) {
	if err := security.ValidateQID(qid); err != nil {
		return core.StatusUnknown, err
	}
	if rec, err := l.store.GetCompleted(ctx, qid); err != nil {
		return core.StatusUnknown, err
	} else if rec != nil {
		return core.StatusCompleted, nil
	}
	if rec, err := l.store.GetFailed(ctx, qid); err != nil {
		return core.StatusUnknown, err
	} else if rec != nil {
		return core.StatusFailed, nil
	}
	if job, err := l.store.GetPending(ctx, qid); err != nil {
		return core.StatusUnknown, err
	} else if job != nil {
		return core.StatusPending, nil
	}
	return core.StatusUnknown, nil
}

// IsDone reports whether qid has a completed record.
func (l *Ledger) IsDone(ctx context.Context, qid string) (bool, error) {
	if err := security.ValidateQID(qid); err != nil {
		return false, err
	}
	rec, err := l.store.GetCompleted(ctx, qid)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// IsFailed reports whether qid has a failed record that is not flagged
// for retry. A failed record with RetryAllowed set does not count: it
// is awaiting reprocessing, not settled.
func (l *Ledger) IsFailed(ctx context.Context, qid string) (bool, error) {
	if err := security.ValidateQID(qid); err != nil {
		return false, err
	}
	rec, err := l.store.GetFailed(ctx, qid)
	if err != nil {
		return false, err
	}
	return rec != nil && !rec.RetryAllowed, nil
}

// Stats returns per-set record counts.
func (l *Ledger) Stats(ctx context.Context) (*core.Stats, error) {
	return l.store.Stats(ctx)
}

// OnSuccess registers a hook called after each successful transition
// to completed. Hooks run synchronously on the recording goroutine.
func (l *Ledger) OnSuccess(fn func(context.Context, *core.CompletedJob)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onSuccess = append(l.onSuccess, fn)
}

// OnFailure registers a hook called after each transition to failed.
func (l *Ledger) OnFailure(fn func(context.Context, *core.FailedJob)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onFailure = append(l.onFailure, fn)
}

// Events returns a channel for receiving transition events.
// The caller must call Unsubscribe when done to prevent resource leaks.
func (l *Ledger) Events() <-chan core.Event {
	ch := make(chan core.Event, 100)
	l.mu.Lock()
	l.eventSubs = append(l.eventSubs, ch)
	l.mu.Unlock()
	return ch
}

// Unsubscribe removes an event subscription and closes the channel.
// After Unsubscribe returns, no further events will be sent to the channel.
func (l *Ledger) Unsubscribe(ch <-chan core.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, sub := range l.eventSubs {
		if sub == ch {
			l.eventSubs = append(l.eventSubs[:i], l.eventSubs[i+1:]...)
			close(sub)
			return
		}
	}
}

func (l *Ledger) callSuccessHooks(ctx context.Context, rec *core.CompletedJob) {
	l.mu.RLock()
	hooks := make([]func(context.Context, *core.CompletedJob), len(l.onSuccess))
	copy(hooks, l.onSuccess)
	l.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx, rec)
	}
}

func (l *Ledger) callFailureHooks(ctx context.Context, rec *core.FailedJob) {
	l.mu.RLock()
	hooks := make([]func(context.Context, *core.FailedJob), len(l.onFailure))
	copy(hooks, l.onFailure)
	l.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx, rec)
	}
}

func (l *Ledger) emit(e core.Event) {
	l.mu.RLock()
	subs := make([]chan core.Event, len(l.eventSubs))
	copy(subs, l.eventSubs)
	l.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
			// Drop if full - this prevents blocking on slow consumers
		}
	}
}
