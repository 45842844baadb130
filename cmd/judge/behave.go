package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/programme-lv/batchjudge/internal/behave"
	"github.com/programme-lv/batchjudge/internal/evaluator"
	"github.com/programme-lv/batchjudge/internal/gatherer/termgath"
	"github.com/programme-lv/batchjudge/internal/scheduler"
	"github.com/programme-lv/batchjudge/internal/testrun"
	"github.com/urfave/cli/v3"
)

func behaveCommand() *cli.Command {
	return &cli.Command{
		Name:      "behave",
		Usage:     "run behaviour scenarios and check their verdicts",
		ArgsUsage: "<scenario file>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return errors.New("expected at least one scenario file")
			}
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			dir, err := os.MkdirTemp("", "behave-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(dir)

			sched := scheduler.New(evaluator.New(e.langs, testrun.NewRunner(), e.log), e.log)
			term := termgath.New(os.Stdout, cmd.Bool("verbose"), e.noColor)

			failed := 0
			for _, path := range cmd.Args().Slice() {
				suite, err := behave.Parse(path)
				if err != nil {
					return err
				}
				if err := suite.Register(e.langs); err != nil {
					return err
				}
				outcomes, err := suite.Run(ctx, sched, e.settings, term, dir)
				if err != nil {
					return err
				}
				for _, o := range outcomes {
					if o.Passed() {
						fmt.Printf("PASS %s\n", o.Case.Name)
						continue
					}
					failed++
					fmt.Printf("FAIL %s\n", o.Case.Name)
					for _, m := range o.Mismatches {
						fmt.Printf("     %s\n", m)
					}
				}
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d scenarios failed", failed), 1)
			}
			return nil
		},
	}
}
