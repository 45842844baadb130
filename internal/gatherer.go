package internal

import "github.com/programme-lv/batchjudge/api"

// ResultGatherer receives the progress of one evaluation job. A job is
// driven by a single worker, so implementations need no locking.
type ResultGatherer interface {
	StartJob(language string, testCount int)

	StartCompile()
	FinishCompile(data *api.RuntimeData)

	ReachTest(testID string, index int)
	IgnoreTest(testID string)
	FinishTest(res api.TestResult)

	FinishJob(res api.SubmissionResult)
}

// RunReporter hands out one gatherer per job and is told when the whole
// run is over. ForJob is called from many workers at once.
type RunReporter interface {
	ForJob(runID string, key api.SubmissionKey) ResultGatherer
	FinishRun(summary api.RunSummary)
}
