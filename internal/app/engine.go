package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/tagview/internal/metrics"
	"github.com/five82/tagview/internal/state"
	"github.com/five82/tagview/internal/tags"
	"github.com/five82/tagview/internal/view"
)

// ErrStopped is returned by Refresh when the engine was stopped before the
// fetched snapshot could be applied.
var ErrStopped = errors.New("engine stopped")

// EngineOptions configure an Engine.
type EngineOptions struct {
	Interval time.Duration
	Store    *state.Store // nil creates a fresh store
	Logger   *slog.Logger
	Metrics  *metrics.Metrics

	// OnUpdate, when set, is called with the new snapshot after every applied
	// refresh, successful or not.
	OnUpdate func(*state.Snapshot)
}

// Engine owns the tag cache for one dashboard session and keeps it fresh.
type Engine struct {
	source   tags.Source
	store    *state.Store
	sched    *Scheduler
	logger   *slog.Logger
	metrics  *metrics.Metrics
	onUpdate func(*state.Snapshot)
	session  string

	applyMu sync.Mutex
	stopped bool
}

// NewEngine builds an engine pulling from source. It does not start polling.
func NewEngine(source tags.Source, opts EngineOptions) *Engine {
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	session := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session", session)

	e := &Engine{
		source:   source,
		store:    store,
		logger:   logger,
		metrics:  opts.Metrics,
		onUpdate: opts.OnUpdate,
		session:  session,
	}
	e.sched = NewScheduler(opts.Interval, e.tick, logger)
	return e
}

// Session returns the unique id of this engine instance.
func (e *Engine) Session() string {
	return e.session
}

// Interval returns the refresh cadence.
func (e *Engine) Interval() time.Duration {
	return e.sched.Interval()
}

// Store returns the store the engine writes to.
func (e *Engine) Store() *state.Store {
	return e.store
}

// Start performs one refresh so the view is populated immediately, then
// begins periodic refreshes. A failed first refresh is logged, not returned.
func (e *Engine) Start(ctx context.Context) {
	_ = e.Refresh(ctx)
	e.sched.Start(ctx)
	e.logger.Info("refresh engine started", "interval", e.sched.Interval())
}

// Stop halts polling. A fetch still in flight completes, but its result is
// discarded. Stop is idempotent.
func (e *Engine) Stop() {
	e.applyMu.Lock()
	already := e.stopped
	e.stopped = true
	e.applyMu.Unlock()

	e.sched.Stop()
	if !already {
		e.logger.Info("refresh engine stopped")
	}
}

// Wait blocks until in-flight scheduled refreshes have returned.
func (e *Engine) Wait() {
	e.sched.Wait()
}

func (e *Engine) tick(ctx context.Context) {
	_ = e.Refresh(ctx)
}

// Refresh fetches one snapshot and applies it. On failure the cached tags are
// kept, the error is recorded on the store and returned.
func (e *Engine) Refresh(ctx context.Context) error {
	started := time.Now()
	list, err := e.source.FetchSnapshot(ctx)
	took := time.Since(started)

	e.applyMu.Lock()
	if e.stopped {
		e.applyMu.Unlock()
		e.metrics.ObserveRefresh(metrics.ResultDiscarded, took)
		e.logger.Debug("discarding refresh after stop", "error", err)
		return ErrStopped
	}
	if err != nil {
		e.store.RecordFailure(err)
	} else {
		e.store.Replace(list)
	}
	snap := e.store.Snapshot()
	e.applyMu.Unlock()

	if err != nil {
		e.metrics.ObserveRefresh(metrics.ResultError, took)
		e.logger.Warn("tag refresh failed",
			"error", err,
			"consecutive_failures", snap.ConsecutiveFailures,
			"duration", took)
	} else {
		e.metrics.ObserveRefresh(metrics.ResultOK, took)
		e.metrics.SetSnapshotSize(snap.Len(), len(snap.Categories()))
		e.logger.Debug("tag refresh applied", "tags", snap.Len(), "duration", took)
	}
	if e.onUpdate != nil {
		e.onUpdate(snap)
	}
	return err
}

// Snapshot returns the current cache snapshot.
func (e *Engine) Snapshot() *state.Snapshot {
	return e.store.Snapshot()
}

// Visible returns the names of cached tags passing f.
func (e *Engine) Visible(f view.Filter) []string {
	return view.Visible(e.store.Snapshot(), f)
}

// Detail projects the named tag against the current cache.
func (e *Engine) Detail(name string) (view.Detail, error) {
	return view.Project(e.store.Snapshot(), name)
}
