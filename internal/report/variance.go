package report

import (
	"estlens/internal/model"
	"estlens/internal/variance"
)

// VarianceAnalysis is the bid-vs-realized artifact. Events carries the
// largest absolute variances with their sign retained, without per-section
// detail.
type VarianceAnalysis struct {
	Summary   variance.Summary         `json:"summary"`
	BySection []variance.GroupVariance `json:"bySection"`
	ByClient  []variance.GroupVariance `json:"byClient"`
	ByOffice  []variance.GroupVariance `json:"byOffice"`
	Events    []variance.Record        `json:"events"`
}

const topVarianceCount = 50

func buildVarianceAnalysis(events []model.EventRecord) VarianceAnalysis {
	records := variance.Analyze(events)
	return VarianceAnalysis{
		Summary:   variance.Summarize(records),
		BySection: variance.BySection(records),
		ByClient:  variance.ByClient(records),
		ByOffice:  variance.ByOffice(records),
		Events:    variance.TopByAbsVariance(records, topVarianceCount),
	}
}
