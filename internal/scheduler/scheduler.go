// Package scheduler evaluates many submissions on a bounded worker pool.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal"
	"github.com/programme-lv/batchjudge/internal/config"
	"github.com/programme-lv/batchjudge/internal/evaluator"
	"github.com/programme-lv/batchjudge/internal/store"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"
)

// Job asks for one submission to be judged against one problem.
type Job struct {
	Submission api.Submission
	Problem    api.Problem
}

// Evaluator judges a single job. *evaluator.Evaluator implements it.
type Evaluator interface {
	Evaluate(ctx context.Context, sub api.Submission, prob api.Problem, pol config.Policy, gath internal.ResultGatherer) (api.SubmissionResult, error)
}

type Scheduler struct {
	eval Evaluator
	// jobs with the same key never overlap, also across runs started on
	// this scheduler, and run in the order they were submitted
	turns *xsync.MapOf[api.SubmissionKey, *turnstile]
	// held while one run draws its tickets so that two runs never
	// interleave their ticket order across keys
	ticketMu sync.Mutex
	log      *slog.Logger
}

func New(eval Evaluator, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		eval:  eval,
		turns: xsync.NewMapOf[api.SubmissionKey, *turnstile](),
		log:   log,
	}
}

type queued struct {
	job    Job
	policy config.Policy
	turn   *turnstile
	ticket uint64
	// first is set on the earliest job of its key in the run; only that
	// job may store a Cancelled result
	first bool
}

// Start validates settings and begins evaluating jobs in arrival order.
// Invalid settings fail the whole run before any job starts. Cancelling
// ctx has the same effect as Run.Cancel.
func (s *Scheduler) Start(ctx context.Context, jobs []Job, settings config.Settings, rep internal.RunReporter) (*Run, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	policies := make(map[string]config.Policy)
	for _, j := range jobs {
		if _, ok := policies[j.Problem.ID]; ok {
			continue
		}
		pol, err := settings.PolicyFor(j.Problem)
		if err != nil {
			return nil, err
		}
		policies[j.Problem.ID] = pol
	}
	if rep == nil {
		rep = nopReporter{}
	}

	keys := make([]api.SubmissionKey, 0, len(jobs))
	seen := mapset.NewThreadUnsafeSet[api.SubmissionKey]()
	queue := make(chan queued, len(jobs))
	s.ticketMu.Lock()
	for _, j := range jobs {
		key := j.Submission.Key()
		keys = append(keys, key)
		turn, _ := s.turns.LoadOrCompute(key, newTurnstile)
		queue <- queued{
			job:    j,
			policy: policies[j.Problem.ID],
			turn:   turn,
			ticket: turn.ticket(),
			first:  seen.Add(key),
		}
	}
	s.ticketMu.Unlock()
	close(queue)

	runCtx, cancel := context.WithCancel(ctx)
	run := &Run{
		ID:        uuid.NewString(),
		store:     store.New(keys),
		total:     len(jobs),
		completed: xsync.NewCounter(),
		running:   mapset.NewSet[api.SubmissionKey](),
		cancel:    cancel,
		done:      make(chan struct{}),
		startedAt: time.Now(),
		log:       s.log,
	}

	workers := max(1, min(settings.Workers, len(jobs)))
	s.log.Info("starting run", "run", run.ID, "jobs", len(jobs), "workers", workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			s.work(runCtx, run, queue, rep)
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		run.finish(ctx, rep)
		cancel()
	}()
	return run, nil
}

func (s *Scheduler) work(ctx context.Context, run *Run, queue <-chan queued, rep internal.RunReporter) {
	for q := range queue {
		if !q.turn.wait(ctx, q.ticket) {
			q.turn.leave(q.ticket)
			s.cancelJob(run, q, rep)
			continue
		}
		s.execute(ctx, run, q, rep)
		q.turn.leave(q.ticket)
	}
}

func (s *Scheduler) execute(ctx context.Context, run *Run, q queued, rep internal.RunReporter) {
	sub := q.job.Submission
	key := sub.Key()

	started := time.Now()
	gath := rep.ForJob(run.ID, key)
	if err := run.store.Put(api.SubmissionResult{
		Key:       key,
		Language:  sub.Language,
		Status:    api.StatusRunning,
		Verdict:   api.VerdictPending,
		MaxScore:  q.policy.MaxScore,
		StartedAt: &started,
	}); err != nil {
		s.log.Error("failed to mark job running", "key", key, "err", err)
	}
	run.running.Add(key)
	defer run.running.Remove(key)
	gath.StartJob(sub.Language, len(q.job.Problem.Tests))

	res, err := s.evaluate(ctx, q, gath)
	if err != nil {
		s.log.Warn("evaluation failed", "key", key, "err", err)
		res = failed(res, key, sub.Language, q.policy.MaxScore, err)
	}
	finished := time.Now()
	res.StartedAt = &started
	res.FinishedAt = &finished
	run.complete(res, gath)
}

// evaluate turns a panic inside one job into that job's failure.
func (s *Scheduler) evaluate(ctx context.Context, q queued, gath internal.ResultGatherer) (res api.SubmissionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during evaluation: %v", r)
		}
	}()
	return s.eval.Evaluate(ctx, q.job.Submission, q.job.Problem, q.policy, gath)
}

func failed(res api.SubmissionResult, key api.SubmissionKey, language string, maxScore float64, err error) api.SubmissionResult {
	res.Key = key
	res.Language = language
	res.Status = api.StatusFailed
	res.Verdict = ""
	res.Score = 0
	res.MaxScore = maxScore

	var infra *evaluator.InfraError
	switch {
	case errors.As(err, &infra):
		res.Error = infra.JobError()
	case errors.Is(err, evaluator.ErrInterrupted):
		res.Error = &api.JobError{Stage: "interrupted", Message: err.Error()}
	default:
		res.Error = &api.JobError{Stage: "internal", Message: err.Error()}
	}
	return res
}

func (s *Scheduler) cancelJob(run *Run, q queued, rep internal.RunReporter) {
	key := q.job.Submission.Key()
	res := api.SubmissionResult{
		Key:      key,
		Language: q.job.Submission.Language,
		Status:   api.StatusCancelled,
		Verdict:  api.VerdictCancelled,
		MaxScore: q.policy.MaxScore,
	}
	// the entry belongs to an earlier job with the same key, which may
	// still be running
	if !q.first {
		rep.ForJob(run.ID, key).FinishJob(res)
		run.completed.Inc()
		return
	}
	run.complete(res, rep.ForJob(run.ID, key))
}
