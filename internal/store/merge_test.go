package store

import (
	"testing"

	"github.com/programme-lv/batchjudge/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	annSum := api.SubmissionKey{Contestant: "ann", Problem: "sum"}
	annMax := api.SubmissionKey{Contestant: "ann", Problem: "max"}
	bobSum := api.SubmissionKey{Contestant: "bob", Problem: "sum"}

	prev := api.RunReport{
		RunID: "old",
		Results: []api.SubmissionResult{
			{Key: annSum, Status: api.StatusCompleted, Verdict: api.VerdictWrongAnswer},
			{Key: annMax, Status: api.StatusCompleted, Verdict: api.VerdictAccepted},
		},
	}
	next := api.RunReport{
		RunID: "new",
		Results: []api.SubmissionResult{
			{Key: annSum, Status: api.StatusCompleted, Verdict: api.VerdictAccepted},
			{Key: annMax, Status: api.StatusCancelled, Verdict: api.VerdictCancelled},
			{Key: bobSum, Status: api.StatusFailed},
		},
	}

	got := Merge(prev, next)
	assert.Equal(t, "new", got.RunID)
	require.Len(t, got.Results, 3)
	assert.Equal(t, api.VerdictAccepted, got.Results[0].Verdict)
	assert.Equal(t, api.StatusCompleted, got.Results[1].Status)
	assert.Equal(t, bobSum, got.Results[2].Key)

	// inputs are untouched
	assert.Equal(t, api.VerdictWrongAnswer, prev.Results[0].Verdict)
}
