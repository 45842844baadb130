package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/programme-lv/batchjudge/internal/config"
	"github.com/programme-lv/batchjudge/internal/lang"
	"github.com/programme-lv/batchjudge/internal/logging"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "judge",
		Usage: "evaluate contest submissions against problem test data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "settings TOML file",
				Sources: cli.EnvVars("JUDGE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "debug, info, warn or error",
				Sources: cli.EnvVars("JUDGE_LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			rejudgeCommand(),
			showCommand(),
			behaveCommand(),
			langsCommand(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env is what every subcommand needs.
type env struct {
	settings config.Settings
	langs    *lang.Registry
	log      *slog.Logger
	noColor  bool
}

func setup(cmd *cli.Command) (*env, error) {
	noColor := cmd.Bool("no-color") || color.NoColor
	level, err := logging.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return nil, err
	}
	log := logging.New(os.Stderr, level, noColor)
	slog.SetDefault(log)

	settings, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(&settings); err != nil {
		return nil, err
	}

	langs := lang.Default()
	if settings.LanguagesFile != "" {
		if err := langs.LoadFile(settings.LanguagesFile); err != nil {
			return nil, err
		}
	}
	return &env{settings: settings, langs: langs, log: log, noColor: noColor}, nil
}
