package usecase

import (
	"math"
	"strconv"
	"strings"
	"time"

	"adsdash/internal/domain"
)

// NormalizeResult reports what a normalization pass produced. Rejected rows
// are only observable in aggregate; no per-record error is surfaced.
type NormalizeResult struct {
	Records  []domain.Record
	Rejected int
}

// Normalize converts the raw feed into typed records. Entries whose date is
// absent, malformed, or not a real calendar date are dropped. Numeric fields
// fall back to zero on parse failure, and the cost metric is NaN for
// objectives outside the four known categories.
func Normalize(raw []domain.RawRecord) NormalizeResult {
	records := make([]domain.Record, 0, len(raw))
	rejected := 0

	for _, item := range raw {
		date, ok := parseFeedDate(item.Date)
		if !ok {
			rejected++
			continue
		}

		impressions := parseCount(item.Impression)
		clicks := parseCount(item.Click)
		installs := parseCount(item.Install)
		follows := parseCount(item.Follow)
		engagements := parseCount(item.Engagement)
		spent := parseAmount(item.Spent)
		budget := parseAmount(item.Budget)

		ctr := 0.0
		if impressions > 0 {
			ctr = float64(clicks) / float64(impressions) * 100
		}

		records = append(records, domain.Record{
			Date:        date,
			Campaign:    item.Campaign,
			AdsName:     item.AdsName,
			Platform:    item.Platform,
			Objective:   item.Objective,
			Device:      item.Device,
			Segment:     item.Segment,
			Impressions: impressions,
			Clicks:      clicks,
			Installs:    installs,
			Follows:     follows,
			Engagements: engagements,
			Spent:       spent,
			Budget:      budget,
			CTR:         ctr,
			CostMetric:  domain.Metric(costMetric(item.Objective, spent, impressions, clicks, installs, engagements)),
		})
	}

	return NormalizeResult{Records: records, Rejected: rejected}
}

// parseFeedDate interprets a slash-delimited month/day/year string. The
// constructed date is compared back against its parts so that overflowing
// values like month 13 or day 32 are rejected instead of normalized away.
func parseFeedDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, false
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}

	return date, true
}

// parseCount parses an integer volume field, tolerating thousands
// separators. Anything unparseable counts as zero.
func parseCount(s string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}

// parseAmount parses a monetary field, tolerating thousands separators.
func parseAmount(s string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

func costMetric(objective string, spent float64, impressions, clicks, installs, engagements int) float64 {
	switch objective {
	case domain.ObjectiveImpression:
		if impressions == 0 {
			return 0
		}
		return spent / float64(impressions) * 1000
	case domain.ObjectiveClick:
		if clicks == 0 {
			return 0
		}
		return spent / float64(clicks)
	case domain.ObjectiveInstall:
		if installs == 0 {
			return 0
		}
		return spent / float64(installs)
	case domain.ObjectiveEngagement:
		if engagements == 0 {
			return 0
		}
		return spent / float64(engagements) * 1000
	default:
		return math.NaN()
	}
}
