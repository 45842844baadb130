package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal"
	"github.com/programme-lv/batchjudge/internal/contest"
	"github.com/programme-lv/batchjudge/internal/evaluator"
	"github.com/programme-lv/batchjudge/internal/gatherer/fanout"
	"github.com/programme-lv/batchjudge/internal/gatherer/natsgath"
	"github.com/programme-lv/batchjudge/internal/gatherer/sqsgath"
	"github.com/programme-lv/batchjudge/internal/gatherer/termgath"
	"github.com/programme-lv/batchjudge/internal/scheduler"
	"github.com/programme-lv/batchjudge/internal/store"
	"github.com/programme-lv/batchjudge/internal/testrun"
	"github.com/programme-lv/batchjudge/internal/xdg"
	"github.com/urfave/cli/v3"
)

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"j"},
			Usage:   "number of parallel evaluations (default: settings or CPU count)",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "report file (default: <state dir>/reports/<run id>.json.zst)",
		},
		&cli.StringSliceFlag{
			Name:  "contestant",
			Usage: "only judge these contestants",
		},
		&cli.StringSliceFlag{
			Name:  "problem",
			Usage: "only judge these problems",
		},
		&cli.StringFlag{
			Name:  "nats",
			Usage: "stream progress to this NATS server",
		},
		&cli.StringFlag{
			Name:  "sqs",
			Usage: "stream progress to this SQS queue URL",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "print every compilation and test",
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "judge every submission of a contest directory",
		ArgsUsage: "<contest dir>",
		Flags:     runFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return judge(ctx, cmd, nil)
		},
	}
}

func rejudgeCommand() *cli.Command {
	flags := append(runFlags(), &cli.StringFlag{
		Name:     "from",
		Usage:    "earlier report to update",
		Required: true,
	})
	return &cli.Command{
		Name:      "rejudge",
		Usage:     "judge selected submissions again and merge them into an earlier report",
		ArgsUsage: "<contest dir>",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			prev, err := store.Load(cmd.String("from"))
			if err != nil {
				return fmt.Errorf("failed to load earlier report: %w", err)
			}
			return judge(ctx, cmd, &prev)
		},
	}
}

func judge(ctx context.Context, cmd *cli.Command, prev *api.RunReport) error {
	if cmd.Args().Len() != 1 {
		return errors.New("expected exactly one contest directory")
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if n := cmd.Int("workers"); n > 0 {
		e.settings.Workers = int(n)
	}
	if url := cmd.String("nats"); url != "" {
		e.settings.Sinks.NatsURL = url
	}
	if url := cmd.String("sqs"); url != "" {
		e.settings.Sinks.SqsQueueURL = url
	}

	c, err := contest.Discover(cmd.Args().First(), e.langs, e.log)
	if err != nil {
		return err
	}
	jobs := c.Jobs(contest.Filter{
		Contestants: cmd.StringSlice("contestant"),
		Problems:    cmd.StringSlice("problem"),
	})
	if len(jobs) == 0 {
		return errors.New("no submissions to judge")
	}

	term := termgath.New(os.Stdout, cmd.Bool("verbose"), e.noColor)
	reporters := []internal.RunReporter{term}
	if url := e.settings.Sinks.NatsURL; url != "" {
		rep, closeFn, err := natsgath.Connect(url, e.settings.Sinks.NatsSubject, e.log)
		if err != nil {
			return err
		}
		defer closeFn()
		reporters = append(reporters, rep)
	}
	if url := e.settings.Sinks.SqsQueueURL; url != "" {
		rep, err := sqsgath.NewFromEnv(ctx, url, e.settings.Sinks.SqsRegion, e.log)
		if err != nil {
			return err
		}
		reporters = append(reporters, rep)
	}

	sched := scheduler.New(evaluator.New(e.langs, testrun.NewRunner(), e.log), e.log)
	run, err := sched.Start(ctx, jobs, e.settings, fanout.New(reporters...))
	if err != nil {
		return err
	}
	// the signal context cancels the run; wait for the workers regardless
	report, err := run.Wait(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}

	if prev != nil {
		report = store.Merge(*prev, report)
	}
	fmt.Println()
	if err := termgath.WriteGrid(os.Stdout, report, e.noColor); err != nil {
		return err
	}

	out := cmd.String("out")
	if out == "" {
		out = filepath.Join(xdg.New().ReportDir(), report.RunID+".json.zst")
	}
	if err := store.Save(out, report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	e.log.Info("report saved", "path", out)

	if report.Cancelled {
		return cli.Exit("run was cancelled", 130)
	}
	return nil
}
