package behave

import (
	"context"

	"github.com/programme-lv/batchjudge/internal"
	"github.com/programme-lv/batchjudge/internal/config"
	"github.com/programme-lv/batchjudge/internal/scheduler"
)

// Run evaluates every case on sched and checks the results. Sources are
// written into dir. Cancelling ctx still returns the outcomes of the
// partial run.
func (s *Suite) Run(
	ctx context.Context,
	sched *scheduler.Scheduler,
	settings config.Settings,
	rep internal.RunReporter,
	dir string,
) ([]Outcome, error) {
	jobs, err := s.Jobs(dir)
	if err != nil {
		return nil, err
	}
	run, err := sched.Start(ctx, jobs, settings, rep)
	if err != nil {
		return nil, err
	}
	if _, err := run.Wait(context.WithoutCancel(ctx)); err != nil {
		return nil, err
	}
	return s.Verify(run.Results()), nil
}
