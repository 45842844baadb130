package scheduler_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal"
	"github.com/programme-lv/batchjudge/internal/config"
	"github.com/programme-lv/batchjudge/internal/evaluator"
	"github.com/programme-lv/batchjudge/internal/mocks"
	"github.com/programme-lv/batchjudge/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeEvaluator sleeps instead of running programs and records how many
// jobs per key were active at once.
type fakeEvaluator struct {
	delay    time.Duration
	panicFor string
	failFor  string
	// ackDelay is how long an interrupted evaluation takes to return
	ackDelay time.Duration

	mu      sync.Mutex
	active  map[api.SubmissionKey]int
	overlap bool
	order   []string
	calls   atomic.Int32
}

func newFake(delay time.Duration) *fakeEvaluator {
	return &fakeEvaluator{delay: delay, active: make(map[api.SubmissionKey]int)}
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, sub api.Submission, prob api.Problem, pol config.Policy, gath internal.ResultGatherer) (api.SubmissionResult, error) {
	f.calls.Add(1)
	key := sub.Key()
	res := api.SubmissionResult{Key: key, Language: sub.Language, MaxScore: pol.MaxScore}

	if sub.Contestant == f.panicFor {
		panic("evaluator exploded")
	}
	if sub.Contestant == f.failFor {
		return res, &evaluator.InfraError{Key: key, Stage: evaluator.StageTest, TestID: "1", Err: fmt.Errorf("disk on fire")}
	}

	f.mu.Lock()
	f.active[key]++
	if f.active[key] > 1 {
		f.overlap = true
	}
	f.order = append(f.order, sub.SourcePath)
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.active[key]--
		f.mu.Unlock()
	}()

	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		time.Sleep(f.ackDelay)
		return res, fmt.Errorf("%w: %w", evaluator.ErrInterrupted, ctx.Err())
	}
	res.Status = api.StatusCompleted
	res.Verdict = api.VerdictAccepted
	res.Score = pol.MaxScore
	res.Tests = []api.TestResult{{TestID: sub.SourcePath, Verdict: api.VerdictAccepted, Weight: 1}}
	return res, nil
}

func settings(workers int) config.Settings {
	s := config.Default()
	s.Workers = workers
	return s
}

func job(contestant, problem, source string) scheduler.Job {
	return scheduler.Job{
		Submission: api.Submission{Contestant: contestant, Problem: problem, SourcePath: source, Language: "sh"},
		Problem:    api.Problem{ID: problem, Tests: []api.TestCase{{ID: "1"}}},
	}
}

func grid(contestants, problems int) []scheduler.Job {
	var jobs []scheduler.Job
	for c := 0; c < contestants; c++ {
		for p := 0; p < problems; p++ {
			jobs = append(jobs, job(fmt.Sprintf("c%d", c), fmt.Sprintf("p%d", p), "src"))
		}
	}
	return jobs
}

func wait(t *testing.T, run *scheduler.Run) api.RunReport {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rep, err := run.Wait(ctx)
	require.NoError(t, err)
	return rep
}

func TestRunCompletesAllJobs(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			fake := newFake(10 * time.Millisecond)
			run, err := scheduler.New(fake, nil).Start(context.Background(), grid(3, 3), settings(workers), nil)
			require.NoError(t, err)

			rep := wait(t, run)
			assert.Len(t, rep.Results, 9)
			assert.False(t, rep.Cancelled)
			for _, r := range rep.Results {
				assert.Equal(t, api.StatusCompleted, r.Status)
				assert.Equal(t, api.VerdictAccepted, r.Verdict)
				assert.NotNil(t, r.StartedAt)
				assert.NotNil(t, r.FinishedAt)
			}
			prog := run.Progress()
			assert.Equal(t, 9, prog.Completed)
			assert.Equal(t, 9, prog.Total)
			assert.Empty(t, prog.Running)
		})
	}
}

func TestRunWithoutJobs(t *testing.T) {
	run, err := scheduler.New(newFake(0), nil).Start(context.Background(), nil, settings(2), nil)
	require.NoError(t, err)
	rep := wait(t, run)
	assert.Empty(t, rep.Results)
}

func TestInvalidSettingsFailBeforeAnyJob(t *testing.T) {
	fake := newFake(0)
	s := settings(2)
	s.TimeLimitMillis = 0
	run, err := scheduler.New(fake, nil).Start(context.Background(), grid(2, 2), s, nil)
	require.Error(t, err)
	assert.Nil(t, run)
	assert.Zero(t, fake.calls.Load())
}

func TestInvalidProblemOverrideFailsRun(t *testing.T) {
	j := job("ann", "p", "src")
	j.Problem.Comparison = "checker"
	_, err := scheduler.New(newFake(0), nil).Start(context.Background(), []scheduler.Job{j}, settings(1), nil)
	assert.Error(t, err)
}

func TestCancelMarksQueuedJobsCancelled(t *testing.T) {
	fake := newFake(10 * time.Second)
	jobs := grid(5, 1)
	run, err := scheduler.New(fake, nil).Start(context.Background(), jobs, settings(1), nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(run.Progress().Running) == 1 }, 5*time.Second, 5*time.Millisecond)
	start := time.Now()
	run.Cancel()
	rep := wait(t, run)
	assert.Less(t, time.Since(start), 5*time.Second)

	assert.True(t, rep.Cancelled)
	sum := rep.Summarize()
	assert.Equal(t, 4, sum.Cancelled)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 0, sum.Completed)
	for _, r := range rep.Results {
		if r.Status == api.StatusFailed {
			require.NotNil(t, r.Error)
			assert.Equal(t, "interrupted", r.Error.Stage)
		} else {
			assert.Equal(t, api.VerdictCancelled, r.Verdict)
		}
	}
	assert.Equal(t, 5, run.Progress().Completed)
	assert.EqualValues(t, 1, fake.calls.Load())
}

func TestCancelledDuplicateLeavesRunningEntryAlone(t *testing.T) {
	fake := newFake(10 * time.Second)
	fake.ackDelay = 300 * time.Millisecond
	jobs := []scheduler.Job{job("ann", "sum", "v1"), job("ann", "sum", "v2")}
	run, err := scheduler.New(fake, nil).Start(context.Background(), jobs, settings(2), nil)
	require.NoError(t, err)
	key := api.SubmissionKey{Contestant: "ann", Problem: "sum"}

	require.Eventually(t, func() bool { return len(run.Progress().Running) == 1 }, 5*time.Second, 5*time.Millisecond)
	run.Cancel()
	require.Eventually(t, func() bool { return run.Progress().Completed == 1 }, 5*time.Second, time.Millisecond)

	res, ok := run.Result(key)
	require.True(t, ok)
	assert.Equal(t, api.StatusRunning, res.Status, "v1 still owns the entry")
	assert.Equal(t, []api.SubmissionKey{key}, run.Progress().Running)

	rep := wait(t, run)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, api.StatusFailed, rep.Results[0].Status)
	require.NotNil(t, rep.Results[0].Error)
	assert.Equal(t, "interrupted", rep.Results[0].Error.Stage)
	assert.Equal(t, 2, run.Progress().Completed)
}

func TestConcurrentStartsWithCrossedKeysFinish(t *testing.T) {
	for i := 0; i < 50; i++ {
		sched := scheduler.New(newFake(0), nil)
		var wg sync.WaitGroup
		for _, order := range [][]string{{"k", "l"}, {"l", "k"}} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				jobs := []scheduler.Job{job(order[0], "p", "src"), job(order[1], "p", "src")}
				run, err := sched.Start(context.Background(), jobs, settings(1), nil)
				if !assert.NoError(t, err) {
					return
				}
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_, err = run.Wait(ctx)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	}
}

func TestParentContextCancelsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	run, err := scheduler.New(newFake(10*time.Second), nil).Start(ctx, grid(2, 2), settings(2), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(run.Progress().Running) == 2 }, 5*time.Second, 5*time.Millisecond)
	cancel()
	rep := wait(t, run)
	assert.True(t, rep.Cancelled)
	assert.Equal(t, 2, rep.Summarize().Cancelled)
}

func TestSameKeyNeverOverlapsAndLastWins(t *testing.T) {
	fake := newFake(20 * time.Millisecond)
	jobs := []scheduler.Job{
		job("ann", "sum", "v1"),
		job("ann", "sum", "v2"),
		job("bob", "sum", "b1"),
		job("ann", "sum", "v3"),
	}
	run, err := scheduler.New(fake, nil).Start(context.Background(), jobs, settings(4), nil)
	require.NoError(t, err)
	rep := wait(t, run)

	assert.False(t, fake.overlap)
	require.Len(t, rep.Results, 2, "duplicate keys share one entry")
	ann, ok := run.Result(api.SubmissionKey{Contestant: "ann", Problem: "sum"})
	require.True(t, ok)
	assert.Equal(t, "v3", ann.Tests[0].TestID)

	var annOrder []string
	for _, src := range fake.order {
		if src != "b1" {
			annOrder = append(annOrder, src)
		}
	}
	assert.Equal(t, []string{"v1", "v2", "v3"}, annOrder)
}

func TestSameKeyAcrossRunsNeverOverlaps(t *testing.T) {
	fake := newFake(50 * time.Millisecond)
	sched := scheduler.New(fake, nil)

	first, err := sched.Start(context.Background(), []scheduler.Job{job("ann", "sum", "a")}, settings(1), nil)
	require.NoError(t, err)
	second, err := sched.Start(context.Background(), []scheduler.Job{job("ann", "sum", "b")}, settings(1), nil)
	require.NoError(t, err)

	wait(t, first)
	wait(t, second)
	assert.False(t, fake.overlap)
	assert.Equal(t, []string{"a", "b"}, fake.order)
}

func TestPanicFailsOnlyThatJob(t *testing.T) {
	fake := newFake(time.Millisecond)
	fake.panicFor = "c1"
	run, err := scheduler.New(fake, nil).Start(context.Background(), grid(3, 2), settings(2), nil)
	require.NoError(t, err)
	rep := wait(t, run)

	for _, r := range rep.Results {
		if r.Key.Contestant == "c1" {
			assert.Equal(t, api.StatusFailed, r.Status)
			require.NotNil(t, r.Error)
			assert.Contains(t, r.Error.Message, "evaluator exploded")
		} else {
			assert.Equal(t, api.StatusCompleted, r.Status)
		}
	}
}

func TestInfraErrorIsDistinctStatus(t *testing.T) {
	fake := newFake(time.Millisecond)
	fake.failFor = "c0"
	run, err := scheduler.New(fake, nil).Start(context.Background(), grid(2, 1), settings(2), nil)
	require.NoError(t, err)
	wait(t, run)

	res, ok := run.Result(api.SubmissionKey{Contestant: "c0", Problem: "p0"})
	require.True(t, ok)
	assert.Equal(t, api.StatusFailed, res.Status)
	assert.Empty(t, res.Verdict)
	require.NotNil(t, res.Error)
	assert.Equal(t, evaluator.StageTest, res.Error.Stage)
	assert.Equal(t, "1", res.Error.TestID)
}

func TestReporterSeesEveryJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	rep := mocks.NewMockRunReporter(ctrl)
	gath := mocks.NewMockResultGatherer(ctrl)

	rep.EXPECT().ForJob(gomock.Any(), gomock.Any()).Return(gath).Times(4)
	gath.EXPECT().StartJob("sh", 1).Times(4)
	gath.EXPECT().FinishJob(gomock.Any()).Times(4)
	done := make(chan api.RunSummary, 1)
	rep.EXPECT().FinishRun(gomock.Any()).Do(func(s api.RunSummary) { done <- s })

	run, err := scheduler.New(newFake(time.Millisecond), nil).Start(context.Background(), grid(2, 2), settings(2), rep)
	require.NoError(t, err)
	wait(t, run)

	sum := <-done
	assert.Equal(t, run.ID, sum.RunID)
	assert.Equal(t, 4, sum.Completed)
}

func TestResultsSnapshotDuringRun(t *testing.T) {
	run, err := scheduler.New(newFake(200*time.Millisecond), nil).Start(context.Background(), grid(1, 2), settings(1), nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(run.Progress().Running) == 1 }, 5*time.Second, 5*time.Millisecond)
	snap := run.Results()
	require.Len(t, snap, 2)
	statuses := map[api.JobStatus]int{}
	for _, r := range snap {
		statuses[r.Status]++
	}
	assert.Equal(t, 1, statuses[api.StatusRunning])
	assert.Equal(t, 1, statuses[api.StatusPending])
	wait(t, run)
}
