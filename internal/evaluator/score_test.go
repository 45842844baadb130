package evaluator

import (
	"testing"

	"github.com/programme-lv/batchjudge/api"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	ac := func(w float64) api.TestResult { return api.TestResult{Verdict: api.VerdictAccepted, Weight: w} }
	wa := func(w float64) api.TestResult { return api.TestResult{Verdict: api.VerdictWrongAnswer, Weight: w} }

	tests := []struct {
		name    string
		results []api.TestResult
		count   int
		total   float64
		max     float64
		partial bool
		want    float64
	}{
		{"all accepted partial", []api.TestResult{ac(1), ac(1)}, 2, 2, 100, true, 100},
		{"half partial", []api.TestResult{ac(1), wa(1)}, 2, 2, 100, true, 50},
		{"half all-or-nothing", []api.TestResult{ac(1), wa(1)}, 2, 2, 100, false, 0},
		{"all-or-nothing full", []api.TestResult{ac(2), ac(5)}, 2, 7, 10, false, 10},
		{"skipped count as failed", []api.TestResult{ac(1)}, 3, 3, 30, false, 0},
		{"skipped partial", []api.TestResult{ac(1)}, 3, 3, 30, true, 10},
		{"zero max", []api.TestResult{ac(1)}, 1, 1, 0, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := score(tt.results, tt.count, tt.total, tt.max, tt.partial)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, tt.max)
		})
	}
}
