package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"adsdash/internal/domain"
	"adsdash/pkg/logger"
	"adsdash/pkg/metrics"
)

// One registry per test binary: promauto registers globally.
var (
	testMetrics     *metrics.Metrics
	testMetricsOnce sync.Once
)

func sharedMetrics() *metrics.Metrics {
	testMetricsOnce.Do(func() { testMetrics = metrics.New() })
	return testMetrics
}

type fakeFeed struct {
	mu      sync.Mutex
	batches [][]domain.RawRecord
	errs    []error
	calls   int

	started chan struct{}
	release chan struct{}
}

func (f *fakeFeed) FetchFeed(ctx context.Context) ([]domain.RawRecord, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	f.mu.Unlock()

	// The first call can be gated to simulate a slow response that gets
	// superseded by a later fetch.
	if call == 0 && f.started != nil {
		close(f.started)
		<-f.release
	}

	if call < len(f.errs) && f.errs[call] != nil {
		return nil, f.errs[call]
	}
	if call < len(f.batches) {
		return f.batches[call], nil
	}
	return nil, nil
}

func newTestService(feed domain.FeedClient) *DashboardService {
	svc := NewDashboardService(feed, logger.New("error"), sharedMetrics(), 10)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func rawFixture() []domain.RawRecord {
	return []domain.RawRecord{
		{Date: "6/14/2024", Campaign: "Spring", AdsName: "spring-video", Platform: "Facebook", Objective: "Impression", Impression: "1,000", Click: "50", Spent: "20", Budget: "30"},
		{Date: "6/15/2024", Campaign: "Spring", AdsName: "spring-static", Platform: "TikTok", Objective: "Impression", Impression: "2,000", Click: "100", Spent: "40", Budget: "60"},
		{Date: "6/1/2024", Campaign: "Winter", AdsName: "winter-video", Platform: "Facebook", Objective: "Click", Impression: "500", Click: "10", Spent: "5", Budget: "10"},
		{Date: "not-a-date", Campaign: "Broken"},
	}
}

func TestRefreshInstallsNormalizedRecords(t *testing.T) {
	feed := &fakeFeed{batches: [][]domain.RawRecord{rawFixture()}}
	svc := newTestService(feed)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	records := svc.FilteredRecords()
	if len(records) != 3 {
		t.Fatalf("expected 3 records after dropping the bad date, got %d", len(records))
	}

	totals := svc.Totals()
	if totals.Impressions != 3500 || totals.Clicks != 160 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestRefreshFailureRetainsPreviousDataset(t *testing.T) {
	feed := &fakeFeed{
		batches: [][]domain.RawRecord{rawFixture(), nil},
		errs:    []error{nil, errors.New("feed returned status 503")},
	}
	svc := newTestService(feed)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("initial refresh failed: %v", err)
	}
	before := svc.Totals()

	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatalf("expected second refresh to fail")
	}

	after := svc.Totals()
	if after != before {
		t.Fatalf("failed refresh changed the dataset: %+v vs %+v", after, before)
	}
}

func TestRefreshDiscardsStaleResponse(t *testing.T) {
	stale := []domain.RawRecord{{Date: "6/1/2024", Campaign: "stale"}}
	fresh := []domain.RawRecord{{Date: "6/2/2024", Campaign: "fresh"}}

	feed := &fakeFeed{
		batches: [][]domain.RawRecord{stale, fresh},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newTestService(feed)

	done := make(chan error, 1)
	go func() { done <- svc.Refresh(context.Background()) }()

	// Wait for the slow fetch to be in flight, then complete a newer one.
	<-feed.started
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("fresh refresh failed: %v", err)
	}

	close(feed.release)
	if err := <-done; err != nil {
		t.Fatalf("superseded refresh should not error: %v", err)
	}

	records := svc.FilteredRecords()
	if len(records) != 1 || records[0].Campaign != "fresh" {
		t.Fatalf("stale response overwrote the dataset: %v", records)
	}
}

func TestSortTogglingOnService(t *testing.T) {
	feed := &fakeFeed{batches: [][]domain.RawRecord{rawFixture()}}
	svc := newTestService(feed)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	svc.SortRecordsBy("spent")
	if spec := svc.RecordSort(); spec.Key != "spent" || spec.Direction != domain.Ascending {
		t.Fatalf("first sort = %+v, want ascending spent", spec)
	}

	svc.SortRecordsBy("spent")
	if spec := svc.RecordSort(); spec.Direction != domain.Descending {
		t.Fatalf("repeated sort should flip to descending, got %+v", spec)
	}

	svc.SortRecordsBy("clicks")
	if spec := svc.RecordSort(); spec.Key != "clicks" || spec.Direction != domain.Ascending {
		t.Fatalf("new key should reset to ascending, got %+v", spec)
	}

	view := svc.RecordsPage()
	if view.Records[0].Clicks > view.Records[1].Clicks {
		t.Fatalf("page not sorted ascending by clicks: %v", view.Records)
	}
}

func TestPageNavigationClamps(t *testing.T) {
	raw := make([]domain.RawRecord, 0, 25)
	for i := 0; i < 25; i++ {
		raw = append(raw, domain.RawRecord{Date: "6/10/2024", Campaign: "bulk"})
	}
	feed := &fakeFeed{batches: [][]domain.RawRecord{raw}}
	svc := newTestService(feed)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	svc.SetPage(99)
	view := svc.RecordsPage()
	if view.Page != 2 {
		t.Fatalf("page = %d, want clamp to 2", view.Page)
	}
	if len(view.Records) != 5 {
		t.Fatalf("last page has %d records, want 5", len(view.Records))
	}

	svc.NextPage()
	if svc.RecordsPage().Page != 2 {
		t.Fatalf("NextPage moved past the last page")
	}

	svc.PrevPage()
	svc.PrevPage()
	svc.PrevPage()
	if svc.RecordsPage().Page != 0 {
		t.Fatalf("PrevPage moved before the first page")
	}
}

func TestCriteriaMutationResetsPage(t *testing.T) {
	raw := make([]domain.RawRecord, 0, 25)
	for i := 0; i < 25; i++ {
		raw = append(raw, domain.RawRecord{Date: "6/10/2024", Campaign: "bulk", Platform: "Facebook"})
	}
	feed := &fakeFeed{batches: [][]domain.RawRecord{raw}}
	svc := newTestService(feed)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	svc.SetPage(2)
	svc.SetPlatform("Facebook")
	if got := svc.RecordsPage().Page; got != 0 {
		t.Fatalf("filter change kept page %d, want 0", got)
	}
}

func TestServiceFilteringThroughMutators(t *testing.T) {
	feed := &fakeFeed{batches: [][]domain.RawRecord{rawFixture()}}
	svc := newTestService(feed)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	svc.SetSearch("spring")
	if got := len(svc.FilteredRecords()); got != 2 {
		t.Fatalf("search filter: got %d records, want 2", got)
	}

	svc.SetSearch("")
	svc.SetDateRange(domain.RangeLast7)
	records := svc.FilteredRecords()
	if len(records) != 2 {
		t.Fatalf("last-7-days filter: got %d records, want 2", len(records))
	}
	for _, r := range records {
		if r.Campaign != "Spring" {
			t.Fatalf("unexpected record in window: %+v", r)
		}
	}

	svc.SetDateRange("")
	if got := len(svc.FilteredRecords()); got != 3 {
		t.Fatalf("empty range should reset to wildcard, got %d records", got)
	}

	groups := svc.GroupedSummary()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	opts := svc.FilterOptions()
	if len(opts.Platforms) != 3 { // All, Facebook, TikTok
		t.Fatalf("platform options = %v", opts.Platforms)
	}
}
