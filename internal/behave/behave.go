// Package behave runs scenario files that pair small programs with the
// verdicts they are expected to get. It checks the judge end to end with
// the real language toolchains of the machine.
package behave

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/lang"
	"github.com/programme-lv/batchjudge/internal/scheduler"
)

// SpecTest is a single test case in the behaviour file
type SpecTest struct {
	In     string  `toml:"in"`
	Ans    string  `toml:"ans"`
	Weight float64 `toml:"weight"`
}

// SpecRequest is the program and problem of one scenario
type SpecRequest struct {
	Code            string       `toml:"code"`
	Language        string       `toml:"language"`
	TimeLimitMillis int64        `toml:"time_limit_ms"`
	Comparison      string       `toml:"comparison"`
	MaxScore        float64      `toml:"max_score"`
	IO              api.IOConfig `toml:"io"`
	Tests           []SpecTest   `toml:"tests"`
}

// SpecTestVerdict represents an expected verdict for a test result
type SpecTestVerdict struct {
	Verdict string `toml:"verdict"`
}

// SpecExpect describes expected overall status, verdict, score and
// per-test verdicts. Empty fields are not checked.
type SpecExpect struct {
	Status      string            `toml:"status"`
	Verdict     string            `toml:"verdict"`
	Score       *float64          `toml:"score"`
	ErrorStage  string            `toml:"error_stage"`
	TestResults []SpecTestVerdict `toml:"test_results"`
}

// specSuite maps to [[scenarios]] entries. The request is written as an
// array of tables, we use the first element.
type specSuite struct {
	Description string        `toml:"description"`
	RequestAOT  []SpecRequest `toml:"request"`
	Expect      SpecExpect    `toml:"expect"`
}

type specRoot struct {
	Suites []specSuite `toml:"scenarios"`
	// Languages are added to the registry before the scenarios run,
	// replacing built-ins with the same id.
	Languages []lang.Spec `toml:"languages"`
}

// Case is a runnable scenario converted from TOML
type Case struct {
	Name     string
	Language string
	Code     string
	Problem  api.Problem
	Expect   SpecExpect
}

// Suite is a parsed behaviour file. ID keeps submission keys of
// concurrently running suites apart.
type Suite struct {
	ID        string
	Cases     []Case
	Languages []lang.Spec
}

// Parse reads a behaviour TOML file and converts it to runnable cases.
func Parse(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read behaviour file: %w", err)
	}
	return ParseBytes(data)
}

func ParseBytes(data []byte) (*Suite, error) {
	var root specRoot
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	suite := &Suite{ID: uuid.NewString(), Languages: root.Languages}
	for i, s := range root.Suites {
		if len(s.RequestAOT) == 0 {
			return nil, fmt.Errorf("scenario %d (%q) is missing request block", i+1, s.Description)
		}
		req := s.RequestAOT[0]
		if req.Language == "" {
			return nil, fmt.Errorf("scenario %d (%q) has no language", i+1, s.Description)
		}

		prob := api.Problem{
			ID:              fmt.Sprintf("scenario%03d", i+1),
			TimeLimitMillis: req.TimeLimitMillis,
			Comparison:      req.Comparison,
			MaxScore:        req.MaxScore,
			IO:              req.IO,
		}
		for j, t := range req.Tests {
			in, ans := t.In, t.Ans
			prob.Tests = append(prob.Tests, api.TestCase{
				ID:     fmt.Sprintf("%d", j+1),
				Input:  &in,
				Answer: &ans,
				Weight: t.Weight,
			})
		}

		name := s.Description
		if name == "" {
			name = prob.ID
		}
		suite.Cases = append(suite.Cases, Case{
			Name:     name,
			Language: req.Language,
			Code:     req.Code,
			Problem:  prob,
			Expect:   s.Expect,
		})
	}
	return suite, nil
}

// Register adds the suite's own languages to reg.
func (s *Suite) Register(reg *lang.Registry) error {
	for _, spec := range s.Languages {
		if err := reg.AddSpec(spec, true); err != nil {
			return fmt.Errorf("behaviour language %s: %w", spec.ID, err)
		}
	}
	return nil
}

// Key of the submission built for case i.
func (s *Suite) Key(i int) api.SubmissionKey {
	return api.SubmissionKey{Contestant: s.ID, Problem: s.Cases[i].Problem.ID}
}

// Jobs writes every case's code into dir and returns one job per case.
func (s *Suite) Jobs(dir string) ([]scheduler.Job, error) {
	jobs := make([]scheduler.Job, 0, len(s.Cases))
	for i, c := range s.Cases {
		key := s.Key(i)
		src := filepath.Join(dir, key.Problem+".src")
		if err := os.WriteFile(src, []byte(c.Code), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write scenario source: %w", err)
		}
		jobs = append(jobs, scheduler.Job{
			Submission: api.Submission{
				Contestant: key.Contestant,
				Problem:    key.Problem,
				SourcePath: src,
				Language:   c.Language,
			},
			Problem: c.Problem,
		})
	}
	return jobs, nil
}
