package evaluator

import "github.com/programme-lv/batchjudge/api"

// score folds judged tests into a value in [0, maxScore]. Tests that were
// skipped are absent from tests and count as not accepted.
func score(tests []api.TestResult, testCount int, totalWeight float64, maxScore float64, partial bool) float64 {
	if maxScore <= 0 {
		return 0
	}
	var accepted float64
	acceptedCount := 0
	for _, t := range tests {
		if t.Verdict == api.VerdictAccepted {
			accepted += t.Weight
			acceptedCount++
		}
	}
	if !partial || totalWeight <= 0 {
		if acceptedCount == testCount {
			return maxScore
		}
		return 0
	}
	return min(maxScore, maxScore*accepted/totalWeight)
}
