package delivery

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"adsdash/internal/domain"
	"adsdash/internal/usecase"
	"adsdash/pkg/logger"
	"adsdash/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	dashboard *usecase.DashboardService
	session   domain.SessionProvider
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewHTTPHandlers(
	dashboard *usecase.DashboardService,
	session domain.SessionProvider,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *HTTPHandlers {
	return &HTTPHandlers{
		dashboard: dashboard,
		session:   session,
		logger:    logger,
		metrics:   metrics,
	}
}

// RefreshFeed triggers a feed fetch and normalization pass. On failure the
// previously loaded dataset stays in place and the error is surfaced as a
// user-visible message.
func (h *HTTPHandlers) RefreshFeed(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	ctx := c.Request.Context()
	requestID := c.GetString("request_id")

	log := h.logger.WithContext(ctx)
	if who := h.session.Current(ctx); who != nil {
		log = log.WithField("user_id", who.ID)
	}
	log.Info("Refreshing ads feed")

	if err := h.dashboard.Refresh(ctx); err != nil {
		log.WithError(err).Error("Feed refresh failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":      "Failed to load data. Please try again later.",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	totals := h.dashboard.Totals()
	c.JSON(http.StatusOK, gin.H{
		"message":    "Feed refreshed successfully",
		"records":    totals.Records,
		"request_id": requestID,
	})
}

// GetRecords applies any filter/sort/page parameters present on the query
// string and returns the current page of detail rows.
func (h *HTTPHandlers) GetRecords(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")

	if err := h.applyFilterParams(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid parameters",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	if key := c.Query("sort"); key != "" {
		h.dashboard.SortRecordsBy(key)
	}
	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Invalid parameters",
				"message":    "page must be an integer",
				"request_id": requestID,
			})
			return
		}
		h.dashboard.SetPage(page)
	}

	view := h.dashboard.RecordsPage()
	c.JSON(http.StatusOK, gin.H{
		"data":          recordRows(view.Records),
		"page":          view.Page,
		"page_size":     view.PageSize,
		"page_count":    view.PageCount,
		"total_records": view.TotalRecords,
		"sort":          h.dashboard.RecordSort(),
		"request_id":    requestID,
	})
}

// GetGroupedSummary returns the per-campaign aggregation of the filtered
// collection, sortable on group-level keys.
func (h *HTTPHandlers) GetGroupedSummary(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")

	if err := h.applyFilterParams(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid parameters",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	if key := c.Query("sort"); key != "" {
		h.dashboard.SortGroupsBy(key)
	}

	groups := h.dashboard.GroupedSummary()
	c.JSON(http.StatusOK, gin.H{
		"data":       groups,
		"total":      len(groups),
		"sort":       h.dashboard.GroupSort(),
		"request_id": requestID,
	})
}

// GetTotals returns the whole-collection summary for the dashboard cards.
func (h *HTTPHandlers) GetTotals(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")

	if err := h.applyFilterParams(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid parameters",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	totals := h.dashboard.Totals()
	c.JSON(http.StatusOK, gin.H{
		"totals":     totals,
		"request_id": requestID,
	})
}

// GetFilterOptions returns the distinct values selectable for each
// categorical filter, in first-seen feed order behind the "All" sentinel.
func (h *HTTPHandlers) GetFilterOptions(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	c.JSON(http.StatusOK, gin.H{
		"options":    h.dashboard.FilterOptions(),
		"request_id": c.GetString("request_id"),
	})
}

// ExportSummary streams the grouped campaign summary as CSV.
func (h *HTTPHandlers) ExportSummary(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	requestID := c.GetString("request_id")

	if err := h.applyFilterParams(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Invalid parameters",
			"message":    err.Error(),
			"request_id": requestID,
		})
		return
	}

	groups := h.dashboard.GroupedSummary()

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="campaign_summary_report.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"Campaign", "Impressions", "Clicks", "Installs", "Follows",
		"Engagements", "Spent", "Budget", "CTR", "CPM", "CPC", "CPI", "CPE",
	})
	for _, g := range groups {
		_ = w.Write([]string{
			g.Campaign,
			strconv.Itoa(g.TotalImpressions),
			strconv.Itoa(g.TotalClicks),
			strconv.Itoa(g.TotalInstalls),
			strconv.Itoa(g.TotalFollows),
			strconv.Itoa(g.TotalEngagements),
			strconv.FormatFloat(g.TotalSpent, 'f', 2, 64),
			strconv.FormatFloat(g.TotalBudget, 'f', 2, 64),
			strconv.FormatFloat(g.CTR, 'f', 2, 64),
			strconv.FormatFloat(g.CPM, 'f', 2, 64),
			strconv.FormatFloat(g.CPC, 'f', 2, 64),
			strconv.FormatFloat(g.CPI, 'f', 2, 64),
			strconv.FormatFloat(g.CPE, 'f', 2, 64),
		})
	}
	w.Flush()

	h.logger.WithContext(c.Request.Context()).WithField("groups", len(groups)).Info("Exported campaign summary")
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"service":    "adsdash",
		"request_id": c.GetString("request_id"),
	})
}

// applyFilterParams pushes any filter parameters found on the query string
// through the dashboard mutators. Absent parameters leave the current state
// untouched.
func (h *HTTPHandlers) applyFilterParams(c *gin.Context) error {
	if search, ok := c.GetQuery("search"); ok {
		h.dashboard.SetSearch(search)
	}
	if platform, ok := c.GetQuery("platform"); ok {
		h.dashboard.SetPlatform(platform)
	}
	if objective, ok := c.GetQuery("objective"); ok {
		h.dashboard.SetObjective(objective)
	}
	if device, ok := c.GetQuery("device"); ok {
		h.dashboard.SetDevice(device)
	}
	if segment, ok := c.GetQuery("segment"); ok {
		h.dashboard.SetSegment(segment)
	}

	fromStr, hasFrom := c.GetQuery("from")
	toStr, hasTo := c.GetQuery("to")
	if hasFrom || hasTo {
		if !hasFrom || !hasTo {
			return fmt.Errorf("custom ranges need both from and to")
		}
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return fmt.Errorf("from must be in YYYY-MM-DD format")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return fmt.Errorf("to must be in YYYY-MM-DD format")
		}
		h.dashboard.SetCustomRange(from, to)
	} else if rangeName, ok := c.GetQuery("range"); ok {
		h.dashboard.SetDateRange(rangeName)
	}

	return nil
}

// recordRow mirrors a detail table row: the record fields plus the
// human-readable cost metric, which renders "N/A" for unknown objectives.
type recordRow struct {
	domain.Record
	CostMetricLabel string `json:"cost_metric_label"`
}

func recordRows(records []domain.Record) []recordRow {
	rows := make([]recordRow, len(records))
	for i, r := range records {
		rows[i] = recordRow{Record: r, CostMetricLabel: domain.CostMetricLabel(r.Objective)}
	}
	return rows
}
