package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/compare"
)

// ValidationError reports one invalid setting.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Field, e.Reason)
}

// Validate checks the whole configuration. A run must not start with
// invalid settings.
func (s Settings) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if s.Workers < 1 {
		bad("workers", "must be at least 1, got %d", s.Workers)
	}
	if s.TimeLimitMillis <= 0 {
		bad("time_limit_ms", "must be positive, got %d", s.TimeLimitMillis)
	}
	if s.CompileTimeLimitMillis <= 0 {
		bad("compile_time_limit_ms", "must be positive, got %d", s.CompileTimeLimitMillis)
	}
	if _, err := compare.ParseMode(s.Comparison); err != nil {
		bad("comparison", "%v", err)
	}
	if s.AbsEpsilon < 0 || s.RelEpsilon < 0 {
		bad("epsilon", "must not be negative")
	}
	if err := validateIO(s.IO); err != nil {
		bad("io", "%v", err)
	}
	for id, p := range s.Problems {
		field := "problems." + id
		if p.TimeLimitMillis < 0 {
			bad(field+".time_limit_ms", "must be positive, got %d", p.TimeLimitMillis)
		}
		if p.Comparison != "" {
			if _, err := compare.ParseMode(p.Comparison); err != nil {
				bad(field+".comparison", "%v", err)
			}
		}
		if (p.AbsEpsilon != nil && *p.AbsEpsilon < 0) || (p.RelEpsilon != nil && *p.RelEpsilon < 0) {
			bad(field+".epsilon", "must not be negative")
		}
		if p.MaxScore < 0 {
			bad(field+".max_score", "must not be negative")
		}
		if p.IO != nil {
			if err := validateIO(*p.IO); err != nil {
				bad(field+".io", "%v", err)
			}
		}
	}
	return errors.Join(errs...)
}

func validateIO(io api.IOConfig) error {
	switch io.Mode {
	case "", api.IOStdio, api.IOAuto:
		return nil
	case api.IOFile:
		for _, name := range []string{io.InputFile, io.OutputFile} {
			if name != "" && !filepath.IsLocal(name) {
				return fmt.Errorf("file name %q must stay inside the test directory", name)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown io mode %q", io.Mode)
}
