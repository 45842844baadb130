package contest

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/programme-lv/batchjudge/api"
)

const problemFile = "problem.toml"

// problemMeta is the optional problem.toml next to the tests.
type problemMeta struct {
	TimeLimitMillis int64              `toml:"time_limit_ms"`
	Comparison      string             `toml:"comparison"`
	MaxScore        float64            `toml:"max_score"`
	IO              api.IOConfig       `toml:"io"`
	Weights         map[string]float64 `toml:"weights"`
}

// loadProblem reads problems/<id>. Test directories are ordered
// naturally; a directory without both an input and an answer is skipped.
func loadProblem(dir string, log *slog.Logger) (api.Problem, error) {
	id := filepath.Base(dir)
	prob := api.Problem{ID: id}

	var meta problemMeta
	data, err := os.ReadFile(filepath.Join(dir, problemFile))
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &meta); err != nil {
			return prob, fmt.Errorf("problem %s: failed to parse %s: %w", id, problemFile, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return prob, fmt.Errorf("problem %s: %w", id, err)
	}
	prob.TimeLimitMillis = meta.TimeLimitMillis
	prob.Comparison = meta.Comparison
	prob.MaxScore = meta.MaxScore
	prob.IO = meta.IO

	entries, err := os.ReadDir(dir)
	if err != nil {
		return prob, fmt.Errorf("problem %s: %w", id, err)
	}
	var testDirs, files []string
	for _, e := range entries {
		if e.IsDir() {
			testDirs = append(testDirs, e.Name())
		} else {
			files = append(files, e.Name())
		}
	}
	slices.SortFunc(testDirs, NaturalCmp)

	for _, name := range testDirs {
		in, out, ok := findPair(filepath.Join(dir, name), id)
		if !ok {
			log.Warn("skipping test directory without input and answer", "problem", id, "dir", name)
			continue
		}
		prob.Tests = append(prob.Tests, api.TestCase{ID: name, InputPath: in, AnswerPath: out})
	}
	if len(prob.Tests) == 0 {
		prob.Tests = flatTests(dir, files)
	}

	for i := range prob.Tests {
		if w, ok := meta.Weights[prob.Tests[i].ID]; ok {
			prob.Tests[i].Weight = w
		}
	}
	return prob, nil
}

// findPair looks for the input/answer naming conventions in one test
// directory: in/out, <ID>.INP/<ID>.OUT, input.txt/output.txt.
func findPair(dir string, problemID string) (string, string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", false
	}
	byLower := make(map[string]string, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			byLower[strings.ToLower(e.Name())] = e.Name()
		}
	}
	id := strings.ToLower(problemID)
	candidates := [][2]string{
		{"in", "out"},
		{id + ".inp", id + ".out"},
		{"input.txt", "output.txt"},
		{"in.txt", "out.txt"},
	}
	for _, c := range candidates {
		in, okIn := byLower[c[0]]
		out, okOut := byLower[c[1]]
		if okIn && okOut {
			return filepath.Join(dir, in), filepath.Join(dir, out), true
		}
	}
	return "", "", false
}

// flatTests pairs NAME.in with NAME.out or NAME.ans directly inside the
// problem directory.
func flatTests(dir string, files []string) []api.TestCase {
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}
	var tests []api.TestCase
	for _, f := range files {
		stem, ok := strings.CutSuffix(f, ".in")
		if !ok {
			continue
		}
		for _, ext := range []string{".out", ".ans"} {
			if present[stem+ext] {
				tests = append(tests, api.TestCase{
					ID:         stem,
					InputPath:  filepath.Join(dir, f),
					AnswerPath: filepath.Join(dir, stem+ext),
				})
				break
			}
		}
	}
	slices.SortFunc(tests, func(a, b api.TestCase) int { return NaturalCmp(a.ID, b.ID) })
	return tests
}
