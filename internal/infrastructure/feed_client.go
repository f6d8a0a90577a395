package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"adsdash/internal/domain"
	"adsdash/pkg/logger"

	"golang.org/x/time/rate"
)

// FeedClient implements domain.FeedClient against the configured sheet
// export URL. One GET, JSON array body; non-2xx and malformed JSON are
// fetch failures the caller surfaces to the user.
type FeedClient struct {
	client      *http.Client
	feedURL     string
	logger      *logger.Logger
	rateLimiter *rate.Limiter
}

func NewFeedClient(feedURL string, timeout time.Duration, perSecond int, logger *logger.Logger) *FeedClient {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &FeedClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		feedURL:     feedURL,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
	}
}

// FetchFeed retrieves the raw record array from the feed URL.
func (c *FeedClient) FetchFeed(ctx context.Context) ([]domain.RawRecord, error) {
	start := time.Now()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	var records []domain.RawRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"url":      c.feedURL,
		"duration": time.Since(start),
		"records":  len(records),
	}).Info("Fetched raw feed")

	return records, nil
}
