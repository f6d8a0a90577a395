package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"adsdash/internal/domain"
	"adsdash/pkg/logger"
	"adsdash/pkg/metrics"
)

// DashboardService owns the normalized record collection and the current
// filter/sort/page state. Every read recomputes its view from scratch with
// the pure pipeline functions; nothing derived is cached across state
// changes. The mutex exists because the HTTP layer is concurrent, not
// because the pipeline itself is.
type DashboardService struct {
	feed    domain.FeedClient
	logger  *logger.Logger
	metrics *metrics.Metrics

	pageSize int
	now      func() time.Time

	mu         sync.RWMutex
	records    []domain.Record
	criteria   domain.Criteria
	recordSort domain.SortSpec
	groupSort  domain.SortSpec
	page       int
	fetchSeq   uint64
}

// PageView is one rendered table page plus its paging envelope.
type PageView struct {
	Records      []domain.Record `json:"records"`
	Page         int             `json:"page"`
	PageSize     int             `json:"page_size"`
	PageCount    int             `json:"page_count"`
	TotalRecords int             `json:"total_records"`
}

func NewDashboardService(feed domain.FeedClient, log *logger.Logger, m *metrics.Metrics, pageSize int) *DashboardService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &DashboardService{
		feed:     feed,
		logger:   log,
		metrics:  m,
		pageSize: pageSize,
		now:      time.Now,
		criteria: domain.DefaultCriteria(),
	}
}

// Refresh fetches the feed and installs the normalized collection. On
// failure the previously loaded dataset is retained untouched. A result
// arriving after a newer refresh has started is discarded (stale-response
// guard), which counts as success for the superseded caller.
func (s *DashboardService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()

	start := time.Now()
	log := s.logger.WithContext(ctx)

	raw, err := s.feed.FetchFeed(ctx)
	if err != nil {
		s.metrics.RecordFeedFetch("failed", time.Since(start))
		log.WithError(err).Error("Feed fetch failed, keeping previous dataset")
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	result := Normalize(raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.fetchSeq {
		s.metrics.RecordFeedFetch("superseded", time.Since(start))
		log.WithField("seq", seq).Warn("Discarding stale feed response")
		return nil
	}

	s.records = result.Records
	s.page = ClampPage(s.page, len(s.currentFiltered()), s.pageSize)

	s.metrics.RecordFeedFetch("success", time.Since(start))
	s.metrics.RecordRecordsNormalized(len(result.Records))
	s.metrics.RecordRecordsRejected(result.Rejected)

	log.WithFields(map[string]any{
		"raw_records": len(raw),
		"normalized":  len(result.Records),
		"rejected":    result.Rejected,
		"duration":    time.Since(start),
	}).Info("Feed refresh completed")

	return nil
}

// currentFiltered recomputes the filtered view. Callers hold at least a
// read lock.
func (s *DashboardService) currentFiltered() []domain.Record {
	return Filter(s.records, s.criteria, s.now())
}

// FilteredRecords returns the filtered collection in feed order.
func (s *DashboardService) FilteredRecords() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.metrics.RecordPipelineQuery("records")
	return s.currentFiltered()
}

// RecordsPage returns the current sorted page of filtered records along
// with its paging envelope. The stored page index is clamped at read time
// so a shrunken result set never yields an empty page while records remain.
func (s *DashboardService) RecordsPage() PageView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.metrics.RecordPipelineQuery("page")

	sorted := SortRecords(s.currentFiltered(), s.recordSort)
	page := ClampPage(s.page, len(sorted), s.pageSize)

	return PageView{
		Records:      Page(sorted, page, s.pageSize),
		Page:         page,
		PageSize:     s.pageSize,
		PageCount:    PageCount(len(sorted), s.pageSize),
		TotalRecords: len(sorted),
	}
}

// GroupedSummary returns the per-campaign aggregation of the filtered
// collection, ordered by the group sort spec (first-seen order when unset).
func (s *DashboardService) GroupedSummary() []domain.CampaignGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.metrics.RecordPipelineQuery("summary")
	return SortGroups(GroupByCampaign(s.currentFiltered()), s.groupSort)
}

// Totals returns the whole-collection summary for the dashboard cards.
func (s *DashboardService) Totals() domain.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.metrics.RecordPipelineQuery("totals")
	return Summarize(s.currentFiltered())
}

// FilterOptions returns the selectable values for each categorical filter,
// derived from the full (unfiltered) collection.
func (s *DashboardService) FilterOptions() FilterOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.metrics.RecordPipelineQuery("options")
	return Options(s.records)
}

// Criteria returns a copy of the current filter state.
func (s *DashboardService) Criteria() domain.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// RecordSort returns the current record sort spec.
func (s *DashboardService) RecordSort() domain.SortSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recordSort
}

// GroupSort returns the current group sort spec.
func (s *DashboardService) GroupSort() domain.SortSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupSort
}

func (s *DashboardService) SetSearch(term string) {
	s.mutateCriteria(func(c *domain.Criteria) { c.Search = term })
}

func (s *DashboardService) SetPlatform(value string) {
	s.mutateCriteria(func(c *domain.Criteria) { c.Platform = orWildcard(value) })
}

func (s *DashboardService) SetObjective(value string) {
	s.mutateCriteria(func(c *domain.Criteria) { c.Objective = orWildcard(value) })
}

func (s *DashboardService) SetDevice(value string) {
	s.mutateCriteria(func(c *domain.Criteria) { c.Device = orWildcard(value) })
}

func (s *DashboardService) SetSegment(value string) {
	s.mutateCriteria(func(c *domain.Criteria) { c.Segment = orWildcard(value) })
}

func (s *DashboardService) SetDateRange(name string) {
	s.mutateCriteria(func(c *domain.Criteria) { c.DateRange = orWildcard(name) })
}

func (s *DashboardService) SetCustomRange(start, end time.Time) {
	s.mutateCriteria(func(c *domain.Criteria) {
		c.DateRange = domain.RangeCustom
		c.CustomStart = start
		c.CustomEnd = end
	})
}

// SortRecordsBy applies the toggling rule: a repeated ascending key flips
// to descending, a new key starts ascending.
func (s *DashboardService) SortRecordsBy(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordSort = s.recordSort.Toggle(key)
}

// SortGroupsBy toggles the grouped-summary sort the same way.
func (s *DashboardService) SortGroupsBy(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupSort = s.groupSort.Toggle(key)
}

// SetPage stores a page index clamped to the current page range.
func (s *DashboardService) SetPage(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = ClampPage(index, len(s.currentFiltered()), s.pageSize)
}

// NextPage advances one page, stopping at the last.
func (s *DashboardService) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = ClampPage(s.page+1, len(s.currentFiltered()), s.pageSize)
}

// PrevPage steps back one page, stopping at the first.
func (s *DashboardService) PrevPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = ClampPage(s.page-1, len(s.currentFiltered()), s.pageSize)
}

// mutateCriteria applies a filter change and resets paging to the first
// page, since the previous index refers to a view that no longer exists.
func (s *DashboardService) mutateCriteria(apply func(*domain.Criteria)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.criteria)
	s.page = 0
}

func orWildcard(value string) string {
	if value == "" {
		return domain.Wildcard
	}
	return value
}
