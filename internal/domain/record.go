package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Metric is a derived ratio that may be undefined (NaN). It marshals the
// undefined state as JSON null, which the presentation layer renders "N/A".
type Metric float64

func (m Metric) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(m)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(m))
}

// RawRecord is one feed entry exactly as the sheet exports it. Every field
// is a string; numbers may carry thousands separators and the date is a
// slash-delimited month/day/year value.
type RawRecord struct {
	Date        string `json:"Date"`
	Campaign    string `json:"Core Campaign Name"`
	AdsName     string `json:"Ads Campaign Name"`
	Platform    string `json:"Platform"`
	Objective   string `json:"Objective"`
	Device      string `json:"Device Target"`
	Segment     string `json:"Segment"`
	Impression  string `json:"Impression"`
	Click       string `json:"Click"`
	Install     string `json:"Install"`
	Follow      string `json:"Follow"`
	Engagement  string `json:"Engagement"`
	Spent       string `json:"Spent"`
	Budget      string `json:"Budget"`
}

// Record is a feed entry after type coercion and derived-field computation.
// Records are value types and never mutated after construction; every
// Record carries a valid date because the normalizer drops entries whose
// date fails to parse.
type Record struct {
	Date        time.Time `json:"date"`
	Campaign    string    `json:"campaign"`
	AdsName     string    `json:"ads_name"`
	Platform    string    `json:"platform"`
	Objective   string    `json:"objective"`
	Device      string    `json:"device"`
	Segment     string    `json:"segment"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	Installs    int       `json:"installs"`
	Follows     int       `json:"follows"`
	Engagements int       `json:"engagements"`
	Spent       float64   `json:"spent"`
	Budget      float64   `json:"budget"`
	CTR         float64   `json:"ctr"`
	CostMetric  Metric    `json:"cost_metric"`
}

// Campaign objectives with a defined cost metric. Matching is exact and
// case-sensitive; anything else yields a NaN cost metric.
const (
	ObjectiveImpression = "Impression"
	ObjectiveClick      = "Click"
	ObjectiveInstall    = "Install"
	ObjectiveEngagement = "Engagement"
)

// CostMetricLabel names the cost metric that applies to an objective:
// CPM, CPC, CPI or CPE. Unknown objectives render as "N/A".
func CostMetricLabel(objective string) string {
	switch objective {
	case ObjectiveImpression:
		return "CPM"
	case ObjectiveClick:
		return "CPC"
	case ObjectiveInstall:
		return "CPI"
	case ObjectiveEngagement:
		return "CPE"
	default:
		return "N/A"
	}
}

// HasCostMetric reports whether the record's cost metric is defined.
func (r Record) HasCostMetric() bool {
	return !math.IsNaN(float64(r.CostMetric))
}
