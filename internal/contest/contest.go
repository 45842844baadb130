// Package contest discovers problems and contestant submissions on disk.
//
// Layout:
//
//	<root>/problems/<problem>/<test>/{in,out}
//	<root>/contestants/<contestant>/<problem>.<ext>
package contest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/lang"
	"github.com/programme-lv/batchjudge/internal/scheduler"
)

const (
	ProblemsDir    = "problems"
	ContestantsDir = "contestants"
)

type Contest struct {
	Root        string
	Problems    map[string]api.Problem
	Submissions []api.Submission
}

// Discover walks root. Files that cannot become jobs, such as unknown
// extensions or sources for missing problems, are skipped with a warning.
func Discover(root string, langs *lang.Registry, log *slog.Logger) (*Contest, error) {
	if log == nil {
		log = slog.Default()
	}
	c := &Contest{Root: root, Problems: make(map[string]api.Problem)}

	problemDirs, err := subdirs(filepath.Join(root, ProblemsDir))
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	for _, dir := range problemDirs {
		prob, err := loadProblem(filepath.Join(root, ProblemsDir, dir), log)
		if err != nil {
			return nil, err
		}
		if len(prob.Tests) == 0 {
			log.Warn("problem has no tests", "problem", prob.ID)
		}
		c.Problems[prob.ID] = prob
	}

	contestants, err := subdirs(filepath.Join(root, ContestantsDir))
	if err != nil {
		return nil, fmt.Errorf("failed to list contestants: %w", err)
	}
	for _, name := range contestants {
		dir := filepath.Join(root, ContestantsDir, name)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("contestant %s: %w", name, err)
		}
		seen := make(map[string]string)
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			file := e.Name()
			problem := strings.TrimSuffix(file, filepath.Ext(file))
			if _, ok := c.Problems[problem]; !ok {
				log.Warn("skipping source for unknown problem", "contestant", name, "file", file)
				continue
			}
			tag, ok := langs.Detect(file)
			if !ok {
				log.Warn("skipping source in unknown language", "contestant", name, "file", file)
				continue
			}
			if prev, dup := seen[problem]; dup {
				log.Warn("several sources for one problem, the last one wins", "contestant", name, "first", prev, "last", file)
			}
			seen[problem] = file
			c.Submissions = append(c.Submissions, api.Submission{
				Contestant: name,
				Problem:    problem,
				SourcePath: filepath.Join(dir, file),
				Language:   tag,
			})
		}
	}
	return c, nil
}

func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	slices.SortFunc(names, NaturalCmp)
	return names, nil
}

// Filter limits which jobs are built. Empty lists match everything.
type Filter struct {
	Contestants []string
	Problems    []string
}

func (f Filter) match(sub api.Submission) bool {
	if len(f.Contestants) > 0 && !slices.Contains(f.Contestants, sub.Contestant) {
		return false
	}
	if len(f.Problems) > 0 && !slices.Contains(f.Problems, sub.Problem) {
		return false
	}
	return true
}

// Jobs pairs every matching submission with its problem.
func (c *Contest) Jobs(f Filter) []scheduler.Job {
	var jobs []scheduler.Job
	for _, sub := range c.Submissions {
		if !f.match(sub) {
			continue
		}
		jobs = append(jobs, scheduler.Job{Submission: sub, Problem: c.Problems[sub.Problem]})
	}
	return jobs
}

// ProblemIDs lists problems in natural order.
func (c *Contest) ProblemIDs() []string {
	ids := make([]string, 0, len(c.Problems))
	for id := range c.Problems {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, NaturalCmp)
	return ids
}
