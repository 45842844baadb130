// Package msggath turns evaluation events into api stream messages and
// hands them to a Sender. The NATS and SQS sinks are built on it.
package msggath

import (
	"log/slog"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal"
)

// Sender delivers one message. It is called from many workers at once.
type Sender interface {
	Send(msg Message) error
}

// Message is any of the api stream message types.
type Message interface {
	Type() api.MsgType
}

type Reporter struct {
	sender Sender
	log    *slog.Logger
}

func New(sender Sender, log *slog.Logger) *Reporter {
	if log == nil {
		log = slog.Default()
	}
	return &Reporter{sender: sender, log: log}
}

// ForJob implements internal.RunReporter.
func (r *Reporter) ForJob(runID string, key api.SubmissionKey) internal.ResultGatherer {
	return &gatherer{rep: r, runID: runID, key: key}
}

// FinishRun implements internal.RunReporter.
func (r *Reporter) FinishRun(summary api.RunSummary) {
	r.emit(api.NewFinishRun(summary))
}

// emit never fails the evaluation: a broken sink only costs progress
// messages.
func (r *Reporter) emit(msg Message) {
	if err := r.sender.Send(msg); err != nil {
		r.log.Warn("failed to send progress message", "type", msg.Type(), "error", err)
	}
}

type gatherer struct {
	rep   *Reporter
	runID string
	key   api.SubmissionKey
}

func (g *gatherer) StartJob(language string, testCount int) {
	g.rep.emit(api.NewStartJob(g.runID, g.key, language, testCount))
}

func (g *gatherer) StartCompile() {
	g.rep.emit(api.NewStartCompile(g.runID, g.key))
}

func (g *gatherer) FinishCompile(data *api.RuntimeData) {
	g.rep.emit(api.NewFinishCompile(g.runID, g.key, trimRuntimeData(data)))
}

func (g *gatherer) ReachTest(testID string, index int) {
	g.rep.emit(api.NewReachTest(g.runID, g.key, testID, index))
}

func (g *gatherer) IgnoreTest(testID string) {
	g.rep.emit(api.NewIgnoreTest(g.runID, g.key, testID))
}

func (g *gatherer) FinishTest(res api.TestResult) {
	res.Submission = trimRuntimeData(res.Submission)
	g.rep.emit(api.NewFinishTest(g.runID, g.key, res))
}

func (g *gatherer) FinishJob(res api.SubmissionResult) {
	if res.Tests != nil {
		tests := make([]api.TestResult, len(res.Tests))
		for i, t := range res.Tests {
			t.Submission = trimRuntimeData(t.Submission)
			tests[i] = t
		}
		res.Tests = tests
	}
	g.rep.emit(api.NewFinishJob(g.runID, res))
}

func trimRuntimeData(data *api.RuntimeData) *api.RuntimeData {
	if data == nil {
		return nil
	}
	trimmed := *data
	trimmed.Stdout = api.TrimToRect(data.Stdout, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
	trimmed.Stderr = api.TrimToRect(data.Stderr, api.MaxRuntimeDataHeight, api.MaxRuntimeDataWidth)
	return &trimmed
}
