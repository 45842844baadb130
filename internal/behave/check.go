package behave

import (
	"fmt"
	"math"

	"github.com/programme-lv/batchjudge/api"
)

// Outcome is the checked result of one case.
type Outcome struct {
	Case       Case
	Result     api.SubmissionResult
	Mismatches []string
}

func (o Outcome) Passed() bool {
	return len(o.Mismatches) == 0
}

// Check compares res against the expectation of c.
func Check(c Case, res api.SubmissionResult) Outcome {
	out := Outcome{Case: c, Result: res}
	fail := func(format string, args ...any) {
		out.Mismatches = append(out.Mismatches, fmt.Sprintf(format, args...))
	}

	exp := c.Expect
	if exp.Status != "" && string(res.Status) != exp.Status {
		fail("status: want %s, got %s", exp.Status, res.Status)
	}
	if exp.Verdict != "" && string(res.Verdict) != exp.Verdict {
		fail("verdict: want %s, got %s", exp.Verdict, res.Verdict)
	}
	if exp.Score != nil && math.Abs(*exp.Score-res.Score) > 1e-9 {
		fail("score: want %g, got %g", *exp.Score, res.Score)
	}
	if exp.ErrorStage != "" {
		switch {
		case res.Error == nil:
			fail("error stage: want %s, got no error", exp.ErrorStage)
		case res.Error.Stage != exp.ErrorStage:
			fail("error stage: want %s, got %s", exp.ErrorStage, res.Error.Stage)
		}
	}
	if len(exp.TestResults) > 0 {
		if len(exp.TestResults) != len(res.Tests) {
			fail("test results: want %d, got %d", len(exp.TestResults), len(res.Tests))
		}
		for i := range min(len(exp.TestResults), len(res.Tests)) {
			want, got := exp.TestResults[i].Verdict, res.Tests[i].Verdict
			if string(got) != want {
				fail("test %s: want %s, got %s", res.Tests[i].TestID, want, got)
			}
		}
	}
	return out
}

// Verify checks every case against the results of a finished run.
func (s *Suite) Verify(results map[api.SubmissionKey]api.SubmissionResult) []Outcome {
	outcomes := make([]Outcome, 0, len(s.Cases))
	for i, c := range s.Cases {
		res, ok := results[s.Key(i)]
		if !ok {
			outcomes = append(outcomes, Outcome{Case: c, Mismatches: []string{"no result"}})
			continue
		}
		outcomes = append(outcomes, Check(c, res))
	}
	return outcomes
}
