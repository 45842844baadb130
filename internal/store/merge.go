package store

import "github.com/programme-lv/batchjudge/api"

// Merge applies the results of a rejudge run on top of an earlier report.
// A Cancelled result never replaces a terminal one. The merged report
// keeps the run ID and times of next.
func Merge(prev api.RunReport, next api.RunReport) api.RunReport {
	out := next
	out.Results = make([]api.SubmissionResult, 0, len(prev.Results)+len(next.Results))

	index := make(map[api.SubmissionKey]int, len(prev.Results))
	for _, res := range prev.Results {
		index[res.Key] = len(out.Results)
		out.Results = append(out.Results, res)
	}
	for _, res := range next.Results {
		i, ok := index[res.Key]
		if !ok {
			index[res.Key] = len(out.Results)
			out.Results = append(out.Results, res)
			continue
		}
		if res.Status == api.StatusCancelled && out.Results[i].Status.IsTerminal() {
			continue
		}
		out.Results[i] = res
	}
	return out
}
