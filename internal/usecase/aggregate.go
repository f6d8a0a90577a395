package usecase

import "adsdash/internal/domain"

// GroupByCampaign accumulates the filtered collection into one group per
// distinct non-empty campaign name, preserving first-seen order. Records
// without a campaign name are skipped. Ratios are derived from the group
// totals after accumulation, never averaged across records.
func GroupByCampaign(records []domain.Record) []domain.CampaignGroup {
	byName := make(map[string]*domain.CampaignGroup)
	order := make([]string, 0)

	for _, r := range records {
		if r.Campaign == "" {
			continue
		}

		group, exists := byName[r.Campaign]
		if !exists {
			group = &domain.CampaignGroup{Campaign: r.Campaign}
			byName[r.Campaign] = group
			order = append(order, r.Campaign)
		}

		group.TotalImpressions += r.Impressions
		group.TotalClicks += r.Clicks
		group.TotalInstalls += r.Installs
		group.TotalFollows += r.Follows
		group.TotalEngagements += r.Engagements
		group.TotalSpent += r.Spent
		group.TotalBudget += r.Budget
	}

	groups := make([]domain.CampaignGroup, 0, len(order))
	for _, name := range order {
		g := byName[name]

		if g.TotalImpressions > 0 {
			g.CTR = float64(g.TotalClicks) / float64(g.TotalImpressions) * 100
			g.CPM = g.TotalSpent / float64(g.TotalImpressions) * 1000
		}
		if g.TotalClicks > 0 {
			g.CPC = g.TotalSpent / float64(g.TotalClicks)
		}
		if g.TotalInstalls > 0 {
			g.CPI = g.TotalSpent / float64(g.TotalInstalls)
		}
		if g.TotalEngagements > 0 {
			g.CPE = g.TotalSpent / float64(g.TotalEngagements) * 1000
		}

		groups = append(groups, *g)
	}

	return groups
}
