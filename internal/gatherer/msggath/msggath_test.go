package msggath

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	msgs []Message
	err  error
}

func (r *recorder) Send(msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return r.err
}

func TestJobMessages(t *testing.T) {
	rec := &recorder{}
	rep := New(rec, logging.Discard())
	key := api.SubmissionKey{Contestant: "ann", Problem: "sum"}

	g := rep.ForJob("run-1", key)
	g.StartJob("cpp", 2)
	g.StartCompile()
	g.FinishCompile(&api.RuntimeData{Stderr: strings.Repeat("x", 200)})
	g.ReachTest("t1", 0)
	g.FinishTest(api.TestResult{TestID: "t1", Verdict: api.VerdictAccepted, Submission: &api.RuntimeData{Stdout: "3\n"}})
	g.IgnoreTest("t2")
	g.FinishJob(api.SubmissionResult{Key: key, Status: api.StatusCompleted, Verdict: api.VerdictAccepted, Score: 1, MaxScore: 2})
	rep.FinishRun(api.RunSummary{RunID: "run-1", Total: 1, Completed: 1})

	var types []api.MsgType
	for _, m := range rec.msgs {
		types = append(types, m.Type())
	}
	assert.Equal(t, []api.MsgType{
		api.StartJobMsg,
		api.StartCompileMsg,
		api.FinishCompileMsg,
		api.ReachTestMsg,
		api.FinishTestMsg,
		api.IgnoreTestMsg,
		api.FinishJobMsg,
		api.FinishRunMsg,
	}, types)

	start, ok := rec.msgs[0].(api.StartJob)
	require.True(t, ok)
	assert.Equal(t, "run-1", start.RunID)
	assert.Equal(t, "ann", start.Contestant)
	assert.Equal(t, "sum", start.Problem)
	assert.Equal(t, 2, start.TestCount)

	compile, ok := rec.msgs[2].(api.FinishCompile)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("x", api.MaxRuntimeDataWidth)+"[...]", compile.RuntimeData.Stderr)

	finish, ok := rec.msgs[6].(api.FinishJob)
	require.True(t, ok)
	assert.Equal(t, api.StatusCompleted, finish.Status)
	assert.Equal(t, 1.0, finish.Score)
}

func TestFinishTestDoesNotModifyCallerData(t *testing.T) {
	rec := &recorder{}
	g := New(rec, logging.Discard()).ForJob("r", api.SubmissionKey{Contestant: "a", Problem: "b"})

	long := strings.Repeat("y", 100)
	data := &api.RuntimeData{Stdout: long}
	g.FinishTest(api.TestResult{TestID: "t", Submission: data})

	assert.Equal(t, long, data.Stdout)
	sent := rec.msgs[0].(api.FinishTest)
	assert.NotEqual(t, long, sent.Result.Submission.Stdout)
}

func TestSendErrorsAreSwallowed(t *testing.T) {
	rec := &recorder{err: errors.New("sink down")}
	rep := New(rec, logging.Discard())

	rep.ForJob("r", api.SubmissionKey{}).StartCompile()
	rep.FinishRun(api.RunSummary{})

	assert.Len(t, rec.msgs, 2)
}

func TestFinishJobCarriesTrimmedTests(t *testing.T) {
	rec := &recorder{}
	key := api.SubmissionKey{Contestant: "ann", Problem: "sum"}
	g := New(rec, logging.Discard()).ForJob("r", key)

	long := strings.Repeat("z", 100)
	res := api.SubmissionResult{
		Key:     key,
		Status:  api.StatusCompleted,
		Verdict: api.VerdictWrongAnswer,
		Tests: []api.TestResult{
			{TestID: "1", Verdict: api.VerdictAccepted, Weight: 1},
			{TestID: "2", Verdict: api.VerdictWrongAnswer, Weight: 2, Submission: &api.RuntimeData{Stdout: long}},
		},
	}
	g.FinishJob(res)

	finish, ok := rec.msgs[0].(api.FinishJob)
	require.True(t, ok)
	require.Len(t, finish.Tests, 2)
	assert.Equal(t, "1", finish.Tests[0].TestID)
	assert.Equal(t, api.VerdictWrongAnswer, finish.Tests[1].Verdict)
	assert.Equal(t, strings.Repeat("z", api.MaxRuntimeDataWidth)+"[...]", finish.Tests[1].Submission.Stdout)
	assert.Equal(t, long, res.Tests[1].Submission.Stdout)
}

func TestTrimRuntimeDataNil(t *testing.T) {
	assert.Nil(t, trimRuntimeData(nil))
}
