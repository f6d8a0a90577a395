// Command report runs the dashboard pipeline once against the live feed and
// prints the campaign summary to the terminal. It is the headless companion
// to the HTTP server for quick checks and cron-driven reporting.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"adsdash/internal/domain"
	"adsdash/internal/infrastructure"
	"adsdash/internal/usecase"
	"adsdash/pkg/config"
	"adsdash/pkg/logger"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var flags struct {
	feedURL   string
	search    string
	platform  string
	objective string
	device    string
	segment   string
	dateRange string
	from      string
	to        string
	sortKey   string
	desc      bool
}

var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a campaign summary from the ads feed",
	Long: `report fetches the advertising feed, normalizes it, applies the given
filters and prints per-campaign totals plus the overall summary.

The same pipeline backs the dashboard server; this command is a one-shot
view of it.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&flags.feedURL, "feed-url", os.Getenv("FEED_URL"), "feed URL (defaults to FEED_URL)")
	rootCmd.Flags().StringVar(&flags.search, "search", "", "campaign/ads name substring filter")
	rootCmd.Flags().StringVar(&flags.platform, "platform", domain.Wildcard, "platform filter")
	rootCmd.Flags().StringVar(&flags.objective, "objective", domain.Wildcard, "objective filter")
	rootCmd.Flags().StringVar(&flags.device, "device", domain.Wildcard, "device filter")
	rootCmd.Flags().StringVar(&flags.segment, "segment", domain.Wildcard, "segment filter")
	rootCmd.Flags().StringVar(&flags.dateRange, "range", domain.RangeAll,
		`date range: "All", "Last 7 Days", "Last 30 Days", "Last Month" or "Custom"`)
	rootCmd.Flags().StringVar(&flags.from, "from", "", "custom range start (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&flags.to, "to", "", "custom range end (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&flags.sortKey, "sort", "", "group sort key (e.g. total_spent, ctr, campaign)")
	rootCmd.Flags().BoolVar(&flags.desc, "desc", false, "sort descending")
}

func run(ctx context.Context) error {
	if flags.feedURL == "" {
		return fmt.Errorf("--feed-url or FEED_URL is required")
	}

	cfg, err := config.Load()
	if err != nil {
		// Flags alone are enough for a one-shot run.
		cfg = &config.Config{}
		cfg.Feed.FetchTimeout = 30 * time.Second
		cfg.Feed.RateLimitPerSecond = 10
		cfg.Logging.Level = "warn"
	}

	log := logger.New(cfg.Logging.Level)

	feed := infrastructure.NewFeedClient(flags.feedURL, cfg.Feed.FetchTimeout, cfg.Feed.RateLimitPerSecond, log)

	raw, err := feed.FetchFeed(ctx)
	if err != nil {
		return fmt.Errorf("fetching feed: %w", err)
	}

	criteria, err := buildCriteria()
	if err != nil {
		return err
	}

	normalized := usecase.Normalize(raw)
	filtered := usecase.Filter(normalized.Records, criteria, time.Now())

	groups := usecase.GroupByCampaign(filtered)
	if flags.sortKey != "" {
		spec := domain.SortSpec{Key: flags.sortKey, Direction: domain.Ascending}
		if flags.desc {
			spec.Direction = domain.Descending
		}
		groups = usecase.SortGroups(groups, spec)
	}

	printGroups(groups)
	printTotals(usecase.Summarize(filtered), normalized.Rejected)

	return nil
}

func buildCriteria() (domain.Criteria, error) {
	c := domain.DefaultCriteria()
	c.Search = flags.search
	c.Platform = flags.platform
	c.Objective = flags.objective
	c.Device = flags.device
	c.Segment = flags.segment
	c.DateRange = flags.dateRange

	if flags.from != "" || flags.to != "" {
		from, err := time.Parse("2006-01-02", flags.from)
		if err != nil {
			return c, fmt.Errorf("--from must be YYYY-MM-DD")
		}
		to, err := time.Parse("2006-01-02", flags.to)
		if err != nil {
			return c, fmt.Errorf("--to must be YYYY-MM-DD")
		}
		c.DateRange = domain.RangeCustom
		c.CustomStart = from
		c.CustomEnd = to
	}

	return c, nil
}

func printGroups(groups []domain.CampaignGroup) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"CAMPAIGN", "IMPRESSIONS", "CLICKS", "INSTALLS", "SPENT", "BUDGET", "CTR", "CPM", "CPC"})
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, g := range groups {
		tw.Append([]string{
			g.Campaign,
			strconv.Itoa(g.TotalImpressions),
			strconv.Itoa(g.TotalClicks),
			strconv.Itoa(g.TotalInstalls),
			money(g.TotalSpent),
			money(g.TotalBudget),
			percent(g.CTR),
			money(g.CPM),
			money(g.CPC),
		})
	}
	tw.Render()
}

func printTotals(t domain.Totals, rejected int) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"RECORDS", "IMPRESSIONS", "CLICKS", "SPENT", "CTR", "CPM"})
	tw.SetBorder(true)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.Append([]string{
		strconv.Itoa(t.Records),
		strconv.Itoa(t.Impressions),
		strconv.Itoa(t.Clicks),
		money(t.Spent),
		percent(t.CTR),
		money(t.CPM),
	})
	tw.Render()

	if rejected > 0 {
		fmt.Fprintf(os.Stderr, "note: %d feed rows dropped for invalid dates\n", rejected)
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
