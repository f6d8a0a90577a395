package domain

// CampaignGroup aggregates every filtered record sharing one campaign name.
// Ratios are derived once from the accumulated totals, never averaged from
// per-record values.
type CampaignGroup struct {
	Campaign string `json:"campaign"`

	TotalImpressions int     `json:"total_impressions"`
	TotalClicks      int     `json:"total_clicks"`
	TotalInstalls    int     `json:"total_installs"`
	TotalFollows     int     `json:"total_follows"`
	TotalEngagements int     `json:"total_engagements"`
	TotalSpent       float64 `json:"total_spent"`
	TotalBudget      float64 `json:"total_budget"`

	CTR float64 `json:"ctr"`
	CPM float64 `json:"cpm"`
	CPC float64 `json:"cpc"`
	CPI float64 `json:"cpi"`
	CPE float64 `json:"cpe"`
}

// Totals holds whole-collection sums and overall ratios for the dashboard
// summary cards, independent of any grouping or sort state.
type Totals struct {
	Records int `json:"records"`

	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Installs    int     `json:"installs"`
	Follows     int     `json:"follows"`
	Engagements int     `json:"engagements"`
	Spent       float64 `json:"spent"`
	Budget      float64 `json:"budget"`

	CTR float64 `json:"ctr"`
	CPM float64 `json:"cpm"`
	CPC float64 `json:"cpc"`
	CPI float64 `json:"cpi"`
	CPE float64 `json:"cpe"`
}
