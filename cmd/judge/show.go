package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/programme-lv/batchjudge/internal/gatherer/termgath"
	"github.com/programme-lv/batchjudge/internal/store"
	"github.com/urfave/cli/v3"
)

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "print a saved report",
		ArgsUsage: "<report file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the full report as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("expected exactly one report file")
			}
			report, err := store.Load(cmd.Args().First())
			if err != nil {
				return err
			}
			if cmd.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			noColor := cmd.Bool("no-color") || color.NoColor
			if err := termgath.WriteGrid(os.Stdout, report, noColor); err != nil {
				return err
			}
			sum := report.Summarize()
			fmt.Printf("\nrun %s: %d jobs, %d completed, %d failed, %d cancelled in %s\n",
				sum.RunID, sum.Total, sum.Completed, sum.Failed, sum.Cancelled, sum.Elapsed.Round(time.Millisecond))
			return nil
		},
	}
}
