// Package config loads run settings from TOML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/compare"
	"github.com/programme-lv/batchjudge/internal/sandbox"
	"github.com/programme-lv/batchjudge/internal/xdg"
)

// Settings apply to a whole evaluation run.
type Settings struct {
	Workers                int     `toml:"workers"`
	TimeLimitMillis        int64   `toml:"time_limit_ms"`
	CompileTimeLimitMillis int64   `toml:"compile_time_limit_ms"`
	Comparison             string  `toml:"comparison"`
	AbsEpsilon             float64 `toml:"abs_epsilon"`
	RelEpsilon             float64 `toml:"rel_epsilon"`
	PartialCredit          bool    `toml:"partial_credit"`
	// StopOnFirstFailure defaults to the opposite of PartialCredit.
	StopOnFirstFailure *bool        `toml:"stop_on_first_failure"`
	StdoutMaxBytes     int64        `toml:"stdout_max_bytes"`
	StderrMaxBytes     int64        `toml:"stderr_max_bytes"`
	IO                 api.IOConfig `toml:"io"`
	WorkRoot           string       `toml:"work_root"`
	LanguagesFile      string       `toml:"languages_file"`

	Problems map[string]ProblemOverride `toml:"problems"`
	Sinks    Sinks                      `toml:"sinks"`
}

// ProblemOverride replaces global settings for one problem. Zero values
// keep the global setting.
type ProblemOverride struct {
	TimeLimitMillis int64         `toml:"time_limit_ms"`
	Comparison      string        `toml:"comparison"`
	AbsEpsilon      *float64      `toml:"abs_epsilon"`
	RelEpsilon      *float64      `toml:"rel_epsilon"`
	MaxScore        float64       `toml:"max_score"`
	IO              *api.IOConfig `toml:"io"`
}

// Sinks configure where progress events are streamed besides the terminal.
type Sinks struct {
	NatsURL     string `toml:"nats_url"`
	NatsSubject string `toml:"nats_subject"`
	SqsQueueURL string `toml:"sqs_queue_url"`
	SqsRegion   string `toml:"sqs_region"`
}

func Default() Settings {
	return Settings{
		Workers:                runtime.NumCPU(),
		TimeLimitMillis:        1000,
		CompileTimeLimitMillis: 30_000,
		Comparison:             string(compare.Whitespace),
		AbsEpsilon:             compare.DefaultEpsilon,
		RelEpsilon:             compare.DefaultEpsilon,
		PartialCredit:          true,
		StdoutMaxBytes:         sandbox.DefaultStdoutMaxBytes,
		StderrMaxBytes:         sandbox.DefaultStderrMaxBytes,
		IO:                     api.IOConfig{Mode: api.IOStdio},
		WorkRoot:               xdg.New().WorkRoot(),
		Sinks:                  Sinks{NatsSubject: "batchjudge.events", SqsRegion: "eu-central-1"},
	}
}

// Load reads settings from path on top of the defaults. When path is
// empty the user config file is used if it exists.
func Load(path string) (Settings, error) {
	s := Default()
	explicit := path != ""
	if !explicit {
		path = xdg.New().ConfigFile()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := Parse(data, &s); err != nil {
		return s, err
	}
	return s, nil
}

// Parse decodes TOML into s, leaving absent keys untouched.
func Parse(data []byte, s *Settings) error {
	if err := toml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}
	return nil
}

// StopsOnFirstFailure resolves the short-circuit policy.
func (s Settings) StopsOnFirstFailure() bool {
	if s.StopOnFirstFailure != nil {
		return *s.StopOnFirstFailure
	}
	return !s.PartialCredit
}
