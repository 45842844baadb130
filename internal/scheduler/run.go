package scheduler

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal"
	"github.com/programme-lv/batchjudge/internal/store"
	"github.com/puzpuzpuz/xsync/v3"
)

// Run is the handle of one evaluation run.
type Run struct {
	ID string

	store     *store.Store
	total     int
	completed *xsync.Counter
	running   mapset.Set[api.SubmissionKey]

	cancel          context.CancelFunc
	cancelRequested atomic.Bool
	done            chan struct{}
	startedAt       time.Time
	report          api.RunReport
	log             *slog.Logger
}

// Cancel stops the run: queued jobs become Cancelled and running
// processes are killed. It returns immediately; use Wait or Done to learn
// when every worker has stopped.
func (r *Run) Cancel() {
	if r.cancelRequested.CompareAndSwap(false, true) {
		r.log.Info("cancelling run", "run", r.ID)
	}
	r.cancel()
}

// Done is closed once all workers have returned and the results are frozen.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run is over and returns its frozen report.
func (r *Run) Wait(ctx context.Context) (api.RunReport, error) {
	select {
	case <-r.done:
		return r.report, nil
	case <-ctx.Done():
		return api.RunReport{}, ctx.Err()
	}
}

// Results returns a snapshot of the result store.
func (r *Run) Results() map[api.SubmissionKey]api.SubmissionResult {
	return r.store.Snapshot()
}

func (r *Run) Result(key api.SubmissionKey) (api.SubmissionResult, bool) {
	return r.store.Get(key)
}

func (r *Run) Progress() api.Progress {
	running := r.running.ToSlice()
	slices.SortFunc(running, func(a, b api.SubmissionKey) int {
		return cmp.Or(
			strings.Compare(a.Contestant, b.Contestant),
			strings.Compare(a.Problem, b.Problem),
		)
	})
	return api.Progress{
		Completed: int(r.completed.Value()),
		Total:     r.total,
		Running:   running,
	}
}

func (r *Run) complete(res api.SubmissionResult, gath internal.ResultGatherer) {
	if err := r.store.Put(res); err != nil {
		r.log.Error("failed to store result", "key", res.Key, "err", err)
	}
	gath.FinishJob(res)
	r.completed.Inc()
}

func (r *Run) finish(parent context.Context, rep internal.RunReporter) {
	r.store.Freeze()
	r.report = api.RunReport{
		RunID:      r.ID,
		StartedAt:  r.startedAt,
		FinishedAt: time.Now(),
		Cancelled:  r.cancelRequested.Load() || parent.Err() != nil,
		Results:    r.store.Results(),
	}
	summary := r.report.Summarize()
	r.log.Info("run finished",
		"run", r.ID,
		"total", summary.Total,
		"completed", summary.Completed,
		"cancelled", summary.Cancelled,
		"failed", summary.Failed,
		"elapsed", summary.Elapsed.Round(time.Millisecond))
	rep.FinishRun(summary)
	close(r.done)
}
