package usecase

import (
	"math"
	"sort"

	"adsdash/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var recordNumericKeys = map[string]func(domain.Record) float64{
	"impressions": func(r domain.Record) float64 { return float64(r.Impressions) },
	"clicks":      func(r domain.Record) float64 { return float64(r.Clicks) },
	"installs":    func(r domain.Record) float64 { return float64(r.Installs) },
	"follows":     func(r domain.Record) float64 { return float64(r.Follows) },
	"engagements": func(r domain.Record) float64 { return float64(r.Engagements) },
	"spent":       func(r domain.Record) float64 { return r.Spent },
	"budget":      func(r domain.Record) float64 { return r.Budget },
	"ctr":         func(r domain.Record) float64 { return r.CTR },
	"cost_metric": func(r domain.Record) float64 { return float64(r.CostMetric) },
}

var recordStringKeys = map[string]func(domain.Record) string{
	"campaign":  func(r domain.Record) string { return r.Campaign },
	"ads_name":  func(r domain.Record) string { return r.AdsName },
	"platform":  func(r domain.Record) string { return r.Platform },
	"objective": func(r domain.Record) string { return r.Objective },
	"device":    func(r domain.Record) string { return r.Device },
	"segment":   func(r domain.Record) string { return r.Segment },
}

var groupNumericKeys = map[string]func(domain.CampaignGroup) float64{
	"total_impressions": func(g domain.CampaignGroup) float64 { return float64(g.TotalImpressions) },
	"total_clicks":      func(g domain.CampaignGroup) float64 { return float64(g.TotalClicks) },
	"total_installs":    func(g domain.CampaignGroup) float64 { return float64(g.TotalInstalls) },
	"total_follows":     func(g domain.CampaignGroup) float64 { return float64(g.TotalFollows) },
	"total_engagements": func(g domain.CampaignGroup) float64 { return float64(g.TotalEngagements) },
	"total_spent":       func(g domain.CampaignGroup) float64 { return g.TotalSpent },
	"total_budget":      func(g domain.CampaignGroup) float64 { return g.TotalBudget },
	"ctr":               func(g domain.CampaignGroup) float64 { return g.CTR },
	"cpm":               func(g domain.CampaignGroup) float64 { return g.CPM },
	"cpc":               func(g domain.CampaignGroup) float64 { return g.CPC },
	"cpi":               func(g domain.CampaignGroup) float64 { return g.CPI },
	"cpe":               func(g domain.CampaignGroup) float64 { return g.CPE },
}

// SortRecords returns a new slice ordered by the spec. An empty key is a
// pass-through copy in input order. Numeric keys coerce NaN to 0 before
// comparing, string keys collate locale-aware and case-sensitive, and the
// date key orders on the underlying time value. The sort is stable, so
// ties keep their relative input order.
func SortRecords(records []domain.Record, spec domain.SortSpec) []domain.Record {
	out := make([]domain.Record, len(records))
	copy(out, records)

	if spec.Key == "" {
		return out
	}

	desc := spec.IsDescending()

	if numeric, ok := recordNumericKeys[spec.Key]; ok {
		sort.SliceStable(out, func(i, j int) bool {
			return numericLess(numeric(out[i]), numeric(out[j]), desc)
		})
		return out
	}

	if str, ok := recordStringKeys[spec.Key]; ok {
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			cmp := c.CompareString(str(out[i]), str(out[j]))
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
		return out
	}

	if spec.Key == "date" {
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[j].Date.Before(out[i].Date)
			}
			return out[i].Date.Before(out[j].Date)
		})
	}

	return out
}

// SortGroups orders campaign groups the same way SortRecords orders
// records, using group-level keys.
func SortGroups(groups []domain.CampaignGroup, spec domain.SortSpec) []domain.CampaignGroup {
	out := make([]domain.CampaignGroup, len(groups))
	copy(out, groups)

	if spec.Key == "" {
		return out
	}

	desc := spec.IsDescending()

	if numeric, ok := groupNumericKeys[spec.Key]; ok {
		sort.SliceStable(out, func(i, j int) bool {
			return numericLess(numeric(out[i]), numeric(out[j]), desc)
		})
		return out
	}

	if spec.Key == "campaign" {
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			cmp := c.CompareString(out[i].Campaign, out[j].Campaign)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	return out
}

func numericLess(a, b float64, desc bool) bool {
	if math.IsNaN(a) {
		a = 0
	}
	if math.IsNaN(b) {
		b = 0
	}
	if desc {
		return b < a
	}
	return a < b
}
