package usecase

import "adsdash/internal/domain"

// Summarize reduces the filtered (ungrouped) collection to whole-collection
// totals with overall ratios derived from those totals. Independent of any
// grouping, sort, or page state.
func Summarize(records []domain.Record) domain.Totals {
	t := domain.Totals{Records: len(records)}

	for _, r := range records {
		t.Impressions += r.Impressions
		t.Clicks += r.Clicks
		t.Installs += r.Installs
		t.Follows += r.Follows
		t.Engagements += r.Engagements
		t.Spent += r.Spent
		t.Budget += r.Budget
	}

	if t.Impressions > 0 {
		t.CTR = float64(t.Clicks) / float64(t.Impressions) * 100
		t.CPM = t.Spent / float64(t.Impressions) * 1000
	}
	if t.Clicks > 0 {
		t.CPC = t.Spent / float64(t.Clicks)
	}
	if t.Installs > 0 {
		t.CPI = t.Spent / float64(t.Installs)
	}
	if t.Engagements > 0 {
		t.CPE = t.Spent / float64(t.Engagements) * 1000
	}

	return t
}
