package api

// Verdict is the outcome of judging one test case or one whole submission.
type Verdict string

const (
	VerdictAccepted          Verdict = "Accepted"
	VerdictWrongAnswer       Verdict = "WrongAnswer"
	VerdictTimeLimitExceeded Verdict = "TimeLimitExceeded"
	VerdictRuntimeError      Verdict = "RuntimeError"
	VerdictCompileError      Verdict = "CompileError"
	VerdictPending           Verdict = "Pending"
	VerdictCancelled         Verdict = "Cancelled"
)

// Short returns the two or three letter form used in result grids.
func (v Verdict) Short() string {
	switch v {
	case VerdictAccepted:
		return "AC"
	case VerdictWrongAnswer:
		return "WA"
	case VerdictTimeLimitExceeded:
		return "TLE"
	case VerdictRuntimeError:
		return "RE"
	case VerdictCompileError:
		return "CE"
	case VerdictPending:
		return "..."
	case VerdictCancelled:
		return "X"
	}
	return "?"
}

// severity orders completed verdicts. Pending and Cancelled have no
// severity because they never take part in aggregation.
func (v Verdict) severity() int {
	switch v {
	case VerdictAccepted:
		return 0
	case VerdictWrongAnswer:
		return 1
	case VerdictTimeLimitExceeded:
		return 2
	case VerdictRuntimeError:
		return 3
	case VerdictCompileError:
		return 4
	}
	return -1
}

// IsFinal reports whether v is one of the verdicts a completed evaluation
// can produce.
func (v Verdict) IsFinal() bool {
	return v.severity() >= 0
}

// Worse reports whether v is strictly more severe than other.
func (v Verdict) Worse(other Verdict) bool {
	return v.severity() > other.severity()
}

// Worst folds test verdicts into a submission verdict:
// CompileError > RuntimeError > TimeLimitExceeded > WrongAnswer > Accepted.
// An empty slice is Accepted (a problem without tests accepts every program).
func Worst(verdicts ...Verdict) Verdict {
	res := VerdictAccepted
	for _, v := range verdicts {
		if v.Worse(res) {
			res = v
		}
	}
	return res
}
