package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/franzxzx/roadnet/pkg"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/reconciler"
	"go.uber.org/zap"
)

// statusRecord is the wire shape of one feed entry.
type statusRecord struct {
	SegmentID string    `json:"segment_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Client polls the external status feed and pushes the latest status per
// segment into the reconciler. a poll failure keeps the last-known-good
// segment set and retries on the next tick, it never propagates into route
// computation.
type Client struct {
	log        *zap.Logger
	httpClient *http.Client
	url        string
	interval   time.Duration
	rec        *reconciler.Reconciler

	lastSeen map[string]time.Time
}

func NewClient(log *zap.Logger, url string, interval time.Duration,
	rec *reconciler.Reconciler) *Client {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Client{
		log:        log,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		url:        url,
		interval:   interval,
		rec:        rec,
		lastSeen:   make(map[string]time.Time),
	}
}

// Run polls until the context is canceled. events are applied one at a time,
// serialized into the reconciler.
func (c *Client) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.pollOnce(ctx); err != nil {
				c.log.Warn("status feed unreachable, keeping last-known-good statuses",
					zap.Error(err))
			}
		}
	}
}

func (c *Client) pollOnce(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var records []statusRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return fmt.Errorf("malformed status feed payload: %w", err)
	}

	c.apply(records)
	return nil
}

// apply retains only the most recent record per segment and feeds new ones to
// the reconciler.
func (c *Client) apply(records []statusRecord) {
	applied := 0
	for _, rec := range records {
		status, ok := pkg.ParseRoadStatus(rec.Status)
		if !ok {
			c.log.Warn("status feed record with unknown status",
				zap.String("segment_id", rec.SegmentID),
				zap.String("status", rec.Status))
			continue
		}

		if last, seen := c.lastSeen[rec.SegmentID]; seen && !rec.UpdatedAt.After(last) {
			continue
		}
		c.lastSeen[rec.SegmentID] = rec.UpdatedAt

		if c.rec.ApplyFeedUpdate(da.NewStatusUpdate(rec.SegmentID, status,
			rec.UpdatedAt, "feed")) {
			applied++
		}
	}

	if applied > 0 {
		c.log.Info("status feed applied", zap.Int("changed_segments", applied))
	}
}
