package api

import (
	"fmt"
	"os"
)

// IOMode tells the runner how a program reads tests and writes answers.
type IOMode string

const (
	IOStdio IOMode = "stdio"
	IOFile  IOMode = "file"
	IOAuto  IOMode = "auto"
)

// IOConfig describes file based input/output. With IOStdio the file
// names are ignored. In IOFile mode an empty name means that direction
// goes through the standard stream. IOAuto looks for the names in each
// C/C++ source and falls back to stdio.
type IOConfig struct {
	Mode       IOMode `json:"mode" toml:"mode"`
	InputFile  string `json:"input_file,omitempty" toml:"input_file"`
	OutputFile string `json:"output_file,omitempty" toml:"output_file"`
}

// SubmissionKey identifies one cell of the contestant × problem grid.
type SubmissionKey struct {
	Contestant string `json:"contestant"`
	Problem    string `json:"problem"`
}

func (k SubmissionKey) String() string {
	return k.Contestant + "/" + k.Problem
}

// Submission is one source file written by a contestant for a problem.
type Submission struct {
	Contestant string `json:"contestant"`
	Problem    string `json:"problem"`
	SourcePath string `json:"source_path"`
	Language   string `json:"language"`
}

func (s Submission) Key() SubmissionKey {
	return SubmissionKey{Contestant: s.Contestant, Problem: s.Problem}
}

// TestCase refers to an input and its expected answer. Content is read
// lazily from the paths unless provided inline.
type TestCase struct {
	ID         string  `json:"id"`
	InputPath  string  `json:"input_path,omitempty"`
	AnswerPath string  `json:"answer_path,omitempty"`
	Input      *string `json:"input,omitempty"`
	Answer     *string `json:"answer,omitempty"`
	Weight     float64 `json:"weight,omitempty"`
}

// EffectiveWeight returns the weight with the default of 1 applied.
func (t TestCase) EffectiveWeight() float64 {
	if t.Weight <= 0 {
		return 1
	}
	return t.Weight
}

func (t TestCase) ReadInput() ([]byte, error) {
	return readPayload(t.Input, t.InputPath, "input", t.ID)
}

func (t TestCase) ReadAnswer() ([]byte, error) {
	return readPayload(t.Answer, t.AnswerPath, "answer", t.ID)
}

func readPayload(inline *string, path string, what string, testID string) ([]byte, error) {
	if inline != nil {
		return []byte(*inline), nil
	}
	if path == "" {
		return nil, fmt.Errorf("test %s has no %s", testID, what)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s of test %s: %w", what, testID, err)
	}
	return content, nil
}

// Problem is a task with an ordered list of test cases. Zero valued
// overrides fall back to run settings.
type Problem struct {
	ID              string     `json:"id"`
	Tests           []TestCase `json:"tests"`
	TimeLimitMillis int64      `json:"time_limit_ms,omitempty"`
	Comparison      string     `json:"comparison,omitempty"`
	MaxScore        float64    `json:"max_score,omitempty"`
	IO              IOConfig   `json:"io"`
}

// TotalWeight sums effective test weights.
func (p Problem) TotalWeight() float64 {
	var total float64
	for _, t := range p.Tests {
		total += t.EffectiveWeight()
	}
	return total
}
