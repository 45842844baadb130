package termgath

import (
	"fmt"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/contest"
)

// WriteGrid prints one row per contestant and one column per problem
// with the verdict and score of every submission, followed by the total.
func WriteGrid(w io.Writer, rep api.RunReport, noColor bool) error {
	p := newPalette(noColor)

	var contestants, problems []string
	cells := make(map[api.SubmissionKey]api.SubmissionResult, len(rep.Results))
	for _, res := range rep.Results {
		if !slices.Contains(contestants, res.Key.Contestant) {
			contestants = append(contestants, res.Key.Contestant)
		}
		if !slices.Contains(problems, res.Key.Problem) {
			problems = append(problems, res.Key.Problem)
		}
		cells[res.Key] = res
	}
	slices.SortFunc(contestants, contest.NaturalCmp)
	slices.SortFunc(problems, contest.NaturalCmp)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"Contestant"}
	for _, prob := range problems {
		header = append(header, prob)
	}
	t.AppendHeader(append(header, "Total"))

	for _, c := range contestants {
		row := table.Row{c}
		var total float64
		for _, prob := range problems {
			res, ok := cells[api.SubmissionKey{Contestant: c, Problem: prob}]
			if !ok {
				row = append(row, "-")
				continue
			}
			total += res.Score
			row = append(row, gridCell(p, res))
		}
		t.AppendRow(append(row, total))
	}

	configs := []table.ColumnConfig{{Number: len(problems) + 2, Align: text.AlignRight}}
	t.SetColumnConfigs(configs)
	t.Render()
	return nil
}

func gridCell(p palette, res api.SubmissionResult) string {
	switch res.Status {
	case api.StatusCompleted:
		return fmt.Sprintf("%s %g", p.colorOf(res.Verdict).Sprint(res.Verdict.Short()), res.Score)
	case api.StatusFailed:
		return p.fail.Sprint("ERR")
	}
	return p.muted.Sprint(res.Verdict.Short())
}
