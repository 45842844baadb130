package evaluator

// state of a single submission evaluation
type state int

const (
	notStarted state = iota
	preparing
	compileFailed
	ready
	running
	done
)

func (s state) String() string {
	switch s {
	case notStarted:
		return "not-started"
	case preparing:
		return "preparing"
	case compileFailed:
		return "compile-failed"
	case ready:
		return "ready"
	case running:
		return "running"
	case done:
		return "done"
	}
	return "unknown"
}
