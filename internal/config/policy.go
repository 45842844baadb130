package config

import (
	"fmt"
	"time"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/compare"
)

// Policy is everything the evaluator needs to judge one problem.
type Policy struct {
	TimeLimit          time.Duration
	CompileTimeLimit   time.Duration
	Comparison         compare.Mode
	Comparator         compare.Comparator
	StopOnFirstFailure bool
	PartialCredit      bool
	MaxScore           float64
	// IO is never IOFile without both names; IOAuto is resolved per
	// submission.
	IO             api.IOConfig
	StdoutMaxBytes int64
	StderrMaxBytes int64
	WorkRoot       string
}

// PolicyFor resolves the effective policy for p. Settings overrides win
// over values carried by the problem, which win over global defaults.
func (s Settings) PolicyFor(p api.Problem) (Policy, error) {
	limitMs := s.TimeLimitMillis
	mode := s.Comparison
	absEps, relEps := s.AbsEpsilon, s.RelEpsilon
	maxScore := p.TotalWeight()
	io := s.IO

	if p.TimeLimitMillis > 0 {
		limitMs = p.TimeLimitMillis
	}
	if p.Comparison != "" {
		mode = p.Comparison
	}
	if p.MaxScore > 0 {
		maxScore = p.MaxScore
	}
	if p.IO.Mode != "" {
		io = p.IO
	}

	if o, ok := s.Problems[p.ID]; ok {
		if o.TimeLimitMillis > 0 {
			limitMs = o.TimeLimitMillis
		}
		if o.Comparison != "" {
			mode = o.Comparison
		}
		if o.AbsEpsilon != nil {
			absEps = *o.AbsEpsilon
		}
		if o.RelEpsilon != nil {
			relEps = *o.RelEpsilon
		}
		if o.MaxScore > 0 {
			maxScore = o.MaxScore
		}
		if o.IO != nil {
			io = *o.IO
		}
	}

	if limitMs <= 0 {
		return Policy{}, fmt.Errorf("problem %s: time limit must be positive", p.ID)
	}
	if err := validateIO(io); err != nil {
		return Policy{}, fmt.Errorf("problem %s: %w", p.ID, err)
	}
	m, err := compare.ParseMode(mode)
	if err != nil {
		return Policy{}, fmt.Errorf("problem %s: %w", p.ID, err)
	}
	cmp, err := compare.New(m, absEps, relEps)
	if err != nil {
		return Policy{}, err
	}
	switch io.Mode {
	case "":
		io.Mode = api.IOStdio
	case api.IOFile:
		if io.InputFile == "" {
			io.InputFile = p.ID + ".INP"
		}
		if io.OutputFile == "" {
			io.OutputFile = p.ID + ".OUT"
		}
	}

	return Policy{
		TimeLimit:          time.Duration(limitMs) * time.Millisecond,
		CompileTimeLimit:   time.Duration(s.CompileTimeLimitMillis) * time.Millisecond,
		Comparison:         m,
		Comparator:         cmp,
		StopOnFirstFailure: s.StopsOnFirstFailure(),
		PartialCredit:      s.PartialCredit,
		MaxScore:           maxScore,
		IO:                 io,
		StdoutMaxBytes:     s.StdoutMaxBytes,
		StderrMaxBytes:     s.StderrMaxBytes,
		WorkRoot:           s.WorkRoot,
	}, nil
}
