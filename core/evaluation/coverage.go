package evaluation

import (
	"catalog-suggest/core/domain"
	"catalog-suggest/core/judge"
)

// Coverage computes how many open queries have a relevant top-3 result.
// Hidden rows and rows of any other type are ignored.
func Coverage(rows []domain.EvaluationRow) domain.Coverage {
	var c domain.Coverage
	for _, row := range rows {
		if row.Type != domain.QueryTypeOpen {
			continue
		}
		c.Total++
		if judge.IsRelevant(row.Query, row.Notes, judge.SplitTop(row.Top3)) {
			c.Relevant++
		}
	}
	if c.Total > 0 {
		c.Percentage = float64(c.Relevant) / float64(c.Total) * 100
	}
	return c
}
