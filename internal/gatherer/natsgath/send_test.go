package natsgath

import (
	"testing"

	"github.com/programme-lv/batchjudge/api"
	"github.com/stretchr/testify/assert"
)

func TestSubjectFor(t *testing.T) {
	key := api.SubmissionKey{Contestant: "ann.lee", Problem: "sum"}

	assert.Equal(t, "judge.ann_lee.sum", subjectFor("judge", api.NewStartCompile("r", key)))
	assert.Equal(t, "judge.ann_lee.sum", subjectFor("judge", api.NewFinishJob("r", api.SubmissionResult{Key: key})))
	assert.Equal(t, "judge.run", subjectFor("judge", api.NewFinishRun(api.RunSummary{RunID: "r"})))
}

func TestToken(t *testing.T) {
	assert.Equal(t, "a_b_c_d", token("a.b*c>d"))
	assert.Equal(t, "plain", token("plain"))
}
