// Package fanout sends every event to several reporters.
package fanout

import (
	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal"
)

type Reporter []internal.RunReporter

// New drops nil reporters.
func New(reps ...internal.RunReporter) Reporter {
	var out Reporter
	for _, r := range reps {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (f Reporter) ForJob(runID string, key api.SubmissionKey) internal.ResultGatherer {
	gs := make(gatherers, len(f))
	for i, r := range f {
		gs[i] = r.ForJob(runID, key)
	}
	return gs
}

func (f Reporter) FinishRun(summary api.RunSummary) {
	for _, r := range f {
		r.FinishRun(summary)
	}
}

type gatherers []internal.ResultGatherer

func (gs gatherers) StartJob(language string, testCount int) {
	for _, g := range gs {
		g.StartJob(language, testCount)
	}
}

func (gs gatherers) StartCompile() {
	for _, g := range gs {
		g.StartCompile()
	}
}

func (gs gatherers) FinishCompile(data *api.RuntimeData) {
	for _, g := range gs {
		g.FinishCompile(data)
	}
}

func (gs gatherers) ReachTest(testID string, index int) {
	for _, g := range gs {
		g.ReachTest(testID, index)
	}
}

func (gs gatherers) IgnoreTest(testID string) {
	for _, g := range gs {
		g.IgnoreTest(testID)
	}
}

func (gs gatherers) FinishTest(res api.TestResult) {
	for _, g := range gs {
		g.FinishTest(res)
	}
}

func (gs gatherers) FinishJob(res api.SubmissionResult) {
	for _, g := range gs {
		g.FinishJob(res)
	}
}
