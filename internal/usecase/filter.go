package usecase

import (
	"strings"
	"time"

	"adsdash/internal/domain"
)

// Filter applies the criteria to the collection and returns the surviving
// subset in input order. Filters are conjunctive and each short-circuits to
// a no-op at its wildcard value, so default criteria return the input
// unchanged. now anchors the named date windows.
func Filter(records []domain.Record, c domain.Criteria, now time.Time) []domain.Record {
	out := make([]domain.Record, 0, len(records))

	search := strings.ToLower(strings.TrimSpace(c.Search))
	start, end, dated := c.Window(now)

	for _, r := range records {
		if search != "" {
			if !strings.Contains(strings.ToLower(r.Campaign), search) &&
				!strings.Contains(strings.ToLower(r.AdsName), search) {
				continue
			}
		}
		if !matchesCategory(r.Platform, c.Platform) {
			continue
		}
		if !matchesCategory(r.Objective, c.Objective) {
			continue
		}
		if !matchesCategory(r.Device, c.Device) {
			continue
		}
		if !matchesCategory(r.Segment, c.Segment) {
			continue
		}
		if dated && (r.Date.Before(start) || r.Date.After(end)) {
			continue
		}
		out = append(out, r)
	}

	return out
}

func matchesCategory(value, selected string) bool {
	return selected == "" || selected == domain.Wildcard || value == selected
}

// FilterOptions collects the distinct values of each categorical field in
// first-seen order, with the wildcard sentinel prepended. Used to populate
// the dashboard's filter dropdowns.
type FilterOptions struct {
	Platforms  []string `json:"platforms"`
	Objectives []string `json:"objectives"`
	Devices    []string `json:"devices"`
	Segments   []string `json:"segments"`
}

// Options scans the collection once and returns the selectable filter
// values for every categorical field.
func Options(records []domain.Record) FilterOptions {
	return FilterOptions{
		Platforms:  distinct(records, func(r domain.Record) string { return r.Platform }),
		Objectives: distinct(records, func(r domain.Record) string { return r.Objective }),
		Devices:    distinct(records, func(r domain.Record) string { return r.Device }),
		Segments:   distinct(records, func(r domain.Record) string { return r.Segment }),
	}
}

func distinct(records []domain.Record, key func(domain.Record) string) []string {
	seen := make(map[string]bool)
	values := []string{domain.Wildcard}

	for _, r := range records {
		v := key(r)
		if v == "" || v == domain.Wildcard || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}

	return values
}
