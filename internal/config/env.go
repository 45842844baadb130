package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ApplyEnv loads a .env file when present and then applies JUDGE_*
// variables on top of s.
func ApplyEnv(s *Settings) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var errs []error
	intVar := func(key string, dst *int64) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	strVar := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	workers := int64(s.Workers)
	intVar("JUDGE_WORKERS", &workers)
	s.Workers = int(workers)
	intVar("JUDGE_TIME_LIMIT_MS", &s.TimeLimitMillis)
	intVar("JUDGE_COMPILE_TIME_LIMIT_MS", &s.CompileTimeLimitMillis)
	strVar("JUDGE_COMPARISON", &s.Comparison)
	strVar("JUDGE_WORK_ROOT", &s.WorkRoot)
	strVar("JUDGE_LANGUAGES_FILE", &s.LanguagesFile)
	strVar("JUDGE_NATS_URL", &s.Sinks.NatsURL)
	strVar("JUDGE_SQS_QUEUE_URL", &s.Sinks.SqsQueueURL)

	if v, ok := os.LookupEnv("JUDGE_PARTIAL_CREDIT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("JUDGE_PARTIAL_CREDIT: %w", err))
		} else {
			s.PartialCredit = b
		}
	}
	return errors.Join(errs...)
}
