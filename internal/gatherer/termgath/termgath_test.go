package termgath

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/programme-lv/batchjudge/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishJobLine(t *testing.T) {
	var buf bytes.Buffer
	tg := New(&buf, false, true)
	key := api.SubmissionKey{Contestant: "ann", Problem: "sum"}

	g := tg.ForJob("r", key)
	g.StartJob("python", 2)
	g.FinishTest(api.TestResult{TestID: "t1", Verdict: api.VerdictAccepted})
	g.FinishJob(api.SubmissionResult{Key: key, Status: api.StatusCompleted, Verdict: api.VerdictWrongAnswer, Score: 1, MaxScore: 2})

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "ann/sum")
	assert.Contains(t, lines[0], "WA  1/2")
}

func TestVerboseOutput(t *testing.T) {
	var buf bytes.Buffer
	tg := New(&buf, true, true)
	key := api.SubmissionKey{Contestant: "bob", Problem: "max"}

	g := tg.ForJob("r", key)
	g.StartJob("cpp", 2)
	g.StartCompile()
	g.FinishCompile(&api.RuntimeData{WallMillis: 800})
	g.ReachTest("t1", 0)
	g.FinishTest(api.TestResult{TestID: "t1", Verdict: api.VerdictTimeLimitExceeded, Submission: &api.RuntimeData{WallMillis: 1000}})
	g.IgnoreTest("t2")
	g.FinishJob(api.SubmissionResult{Key: key, Status: api.StatusFailed, Error: &api.JobError{Stage: "test", Message: "disk full"}})

	out := buf.String()
	assert.Contains(t, out, "bob/max started (cpp, 2 tests)")
	assert.Contains(t, out, "compiled: exit=0 cpu=0ms wall=800ms")
	assert.Contains(t, out, "t1 TLE cpu=0ms wall=1000ms")
	assert.Contains(t, out, "t2 skipped")
	assert.Contains(t, out, "FAILED test: disk full")
}

func TestFinishRun(t *testing.T) {
	var buf bytes.Buffer
	tg := New(&buf, false, true)

	tg.FinishRun(api.RunSummary{Total: 3, Completed: 1, Failed: 1, Cancelled: 1})

	assert.Contains(t, buf.String(), "3 jobs: 1 completed, 1 failed, 1 cancelled")
}

func TestConcurrentLinesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	tg := New(&buf, false, true)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := api.SubmissionKey{Contestant: "c", Problem: string(rune('a' + i))}
			tg.ForJob("r", key).FinishJob(api.SubmissionResult{Key: key, Status: api.StatusCancelled})
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 20)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "<- c/"), l)
		assert.True(t, strings.HasSuffix(l, "Cancelled"), l)
	}
}
