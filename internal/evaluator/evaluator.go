// Package evaluator judges one submission against one problem.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal"
	"github.com/programme-lv/batchjudge/internal/config"
	"github.com/programme-lv/batchjudge/internal/lang"
	"github.com/programme-lv/batchjudge/internal/testrun"
)

// CaseRunner executes a single test case. *testrun.Runner implements it.
type CaseRunner interface {
	Run(ctx context.Context, adapter lang.Adapter, exe lang.Executable, tc api.TestCase, req testrun.Request) (testrun.Outcome, error)
}

type Evaluator struct {
	langs  *lang.Registry
	runner CaseRunner
	log    *slog.Logger
}

func New(langs *lang.Registry, runner CaseRunner, log *slog.Logger) *Evaluator {
	if log == nil {
		log = slog.Default()
	}
	return &Evaluator{langs: langs, runner: runner, log: log}
}

// Evaluate prepares sub once, runs it against every test of prob in order
// and folds the results. The returned result has status Completed when
// err is nil. err is either an *InfraError or wraps ErrInterrupted.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	sub api.Submission,
	prob api.Problem,
	pol config.Policy,
	gath internal.ResultGatherer,
) (api.SubmissionResult, error) {
	key := sub.Key()
	log := e.log.With("contestant", key.Contestant, "problem", key.Problem)
	res := api.SubmissionResult{Key: key, Language: sub.Language, MaxScore: pol.MaxScore}

	st := notStarted
	move := func(next state) {
		log.Debug("evaluation state", "from", st, "to", next)
		st = next
	}

	adapter, ok := e.langs.Get(sub.Language)
	if !ok {
		return res, &InfraError{Key: key, Stage: StageSetup, Err: fmt.Errorf("unknown language %q", sub.Language)}
	}

	move(preparing)
	if adapter.Compiles() {
		gath.StartCompile()
	}
	exe, data, err := adapter.Prepare(ctx, sub.SourcePath, lang.PrepareOptions{
		WorkRoot:         pol.WorkRoot,
		CompileTimeLimit: pol.CompileTimeLimit,
	})
	if adapter.Compiles() {
		gath.FinishCompile(data)
	}
	res.Compile = data
	if err != nil {
		var ce *lang.CompileError
		switch {
		case errors.As(err, &ce):
			move(compileFailed)
			log.Info("compilation failed", "err", ce)
			res.Status = api.StatusCompleted
			res.Verdict = api.VerdictCompileError
			for _, tc := range prob.Tests {
				res.Tests = append(res.Tests, api.TestResult{
					TestID:  tc.ID,
					Verdict: api.VerdictCompileError,
					Weight:  tc.EffectiveWeight(),
				})
			}
			move(done)
			return res, nil
		case ctx.Err() != nil:
			return res, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
		default:
			return res, &InfraError{Key: key, Stage: StagePrepare, Err: err}
		}
	}
	defer func() {
		if err := exe.Close(); err != nil {
			log.Warn("failed to release executable", "err", err)
		}
	}()
	move(ready)

	if pol.IO, err = resolveIO(sub, prob.ID, pol.IO, log); err != nil {
		return res, &InfraError{Key: key, Stage: StagePrepare, Err: err}
	}

	failed := false
	for i, tc := range prob.Tests {
		if failed && pol.StopOnFirstFailure {
			gath.IgnoreTest(tc.ID)
			continue
		}
		if st != running {
			move(running)
		}
		gath.ReachTest(tc.ID, i)

		tr, err := e.runTest(ctx, adapter, exe, tc, pol)
		if err != nil {
			if ctx.Err() != nil {
				return res, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
			}
			return res, &InfraError{Key: key, Stage: StageTest, TestID: tc.ID, Err: err}
		}
		res.Tests = append(res.Tests, tr)
		gath.FinishTest(tr)
		if tr.Verdict != api.VerdictAccepted {
			failed = true
		}
	}
	move(done)

	verdicts := make([]api.Verdict, 0, len(res.Tests))
	for _, t := range res.Tests {
		verdicts = append(verdicts, t.Verdict)
	}
	res.Status = api.StatusCompleted
	res.Verdict = api.Worst(verdicts...)
	res.Score = score(res.Tests, len(prob.Tests), prob.TotalWeight(), pol.MaxScore, pol.PartialCredit)
	log.Debug("evaluation finished", "verdict", res.Verdict, "score", res.Score)
	return res, nil
}

func (e *Evaluator) runTest(
	ctx context.Context,
	adapter lang.Adapter,
	exe lang.Executable,
	tc api.TestCase,
	pol config.Policy,
) (api.TestResult, error) {
	out, err := e.runner.Run(ctx, adapter, exe, tc, testrun.Request{
		TimeLimit:      pol.TimeLimit,
		IO:             pol.IO,
		StdoutMaxBytes: pol.StdoutMaxBytes,
		StderrMaxBytes: pol.StderrMaxBytes,
	})
	if err != nil {
		return api.TestResult{}, err
	}

	tr := api.TestResult{
		TestID:     tc.ID,
		Weight:     tc.EffectiveWeight(),
		Submission: out.Raw.RuntimeData(api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth),
	}
	if out.Class != testrun.Completed {
		tr.Verdict = out.Class.Verdict()
		return tr, nil
	}

	answer, err := tc.ReadAnswer()
	if err != nil {
		return tr, err
	}
	if pol.Comparator.Compare(answer, out.Output) {
		tr.Verdict = api.VerdictAccepted
	} else {
		tr.Verdict = api.VerdictWrongAnswer
	}
	return tr, nil
}
