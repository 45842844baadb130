// Package termgath prints evaluation progress to a terminal.
package termgath

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal"
)

// TerminalGatherer writes one line per finished job, and with Verbose set
// also a line per compilation and test. Lines from concurrent jobs never
// interleave.
type TerminalGatherer struct {
	StartedAt time.Time
	Verbose   bool

	mu      sync.Mutex
	w       io.Writer
	palette palette
}

func New(w io.Writer, verbose bool, noColor bool) *TerminalGatherer {
	return &TerminalGatherer{
		StartedAt: time.Now(),
		Verbose:   verbose,
		w:         w,
		palette:   newPalette(noColor),
	}
}

func (t *TerminalGatherer) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, format, args...)
}

// ForJob implements internal.RunReporter.
func (t *TerminalGatherer) ForJob(runID string, key api.SubmissionKey) internal.ResultGatherer {
	return &jobGatherer{t: t, key: key}
}

// FinishRun implements internal.RunReporter.
func (t *TerminalGatherer) FinishRun(summary api.RunSummary) {
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	line := fmt.Sprintf("== %d jobs: %d completed, %d failed, %d cancelled in %s ==",
		summary.Total, summary.Completed, summary.Failed, summary.Cancelled, dur)
	if summary.Failed > 0 || summary.Cancelled > 0 {
		line = t.palette.warn.Sprint(line)
	}
	t.printf("%s\n", line)
}

type jobGatherer struct {
	t       *TerminalGatherer
	key     api.SubmissionKey
	started time.Time
}

func (g *jobGatherer) StartJob(language string, testCount int) {
	g.started = time.Now()
	if g.t.Verbose {
		g.t.printf("-> %s started (%s, %d tests)\n", g.key, language, testCount)
	}
}

func (g *jobGatherer) StartCompile() {}

func (g *jobGatherer) FinishCompile(data *api.RuntimeData) {
	if !g.t.Verbose || data == nil {
		return
	}
	g.t.printf("   %s compiled: exit=%d cpu=%dms wall=%dms\n", g.key, data.ExitCode, data.CpuMillis, data.WallMillis)
}

func (g *jobGatherer) ReachTest(testID string, index int) {}

func (g *jobGatherer) IgnoreTest(testID string) {
	if g.t.Verbose {
		g.t.printf("   %s %s skipped\n", g.key, testID)
	}
}

func (g *jobGatherer) FinishTest(res api.TestResult) {
	if !g.t.Verbose {
		return
	}
	var metrics string
	if d := res.Submission; d != nil {
		metrics = fmt.Sprintf(" cpu=%dms wall=%dms mem=%dKiB", d.CpuMillis, d.WallMillis, d.RamKiBytes)
	}
	g.t.printf("   %s %s %s%s\n", g.key, res.TestID, g.t.palette.verdict(res.Verdict), metrics)
}

func (g *jobGatherer) FinishJob(res api.SubmissionResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<- %-24s ", g.key)
	switch res.Status {
	case api.StatusCompleted:
		fmt.Fprintf(&sb, "%s %g/%g", g.t.palette.verdict(res.Verdict), res.Score, res.MaxScore)
	case api.StatusFailed:
		msg := "internal error"
		if res.Error != nil {
			msg = fmt.Sprintf("%s: %s", res.Error.Stage, res.Error.Message)
		}
		sb.WriteString(g.t.palette.fail.Sprint("FAILED " + msg))
	default:
		sb.WriteString(g.t.palette.muted.Sprint(string(res.Status)))
	}
	if !g.started.IsZero() {
		fmt.Fprintf(&sb, " (%s)", time.Since(g.started).Round(time.Millisecond))
	}
	g.t.printf("%s\n", sb.String())
}
