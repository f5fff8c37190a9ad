package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"blogmirror/app/feed"
)

const fetchTimeout = 30 * time.Second

type SyncFeedTask struct {
	Task
	httpClient *http.Client
	parser     *feed.Parser
	syncer     *feed.Syncer
	userAgent  string
}

func NewSyncFeedTask(feedURL string, httpClient *http.Client, parser *feed.Parser, syncer *feed.Syncer, userAgent string) *SyncFeedTask {
	return &SyncFeedTask{
		Task:       NewTask(TaskTypeSyncFeed, feedURL),
		httpClient: httpClient,
		parser:     parser,
		syncer:     syncer,
		userAgent:  userAgent,
	}
}

func (t *SyncFeedTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := t.fetchFeed(ctx, t.FeedURL)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	_, entries, err := t.parser.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}

	newPosts, err := t.syncer.Run(entries)
	if err != nil {
		return fmt.Errorf("failed to sync feed: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"feed", t.FeedURL,
		"duration", t.GetDuration(),
		"total", len(entries),
		"new", newPosts)

	return nil
}

func (t *SyncFeedTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
