package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"blogmirror/app/database"
	"blogmirror/app/feed"
)

type ExtractContentTask struct {
	Task
	httpClient       *http.Client
	contentExtractor *feed.ContentExtractor
	postRepo         database.PostRepository
	userAgent        string
	limit            int
}

func NewExtractContentTask(feedURL string, httpClient *http.Client, contentExtractor *feed.ContentExtractor, postRepo database.PostRepository, userAgent string, limit int) *ExtractContentTask {
	return &ExtractContentTask{
		Task:             NewTask(TaskTypeExtractContent, feedURL),
		httpClient:       httpClient,
		contentExtractor: contentExtractor,
		postRepo:         postRepo,
		userAgent:        userAgent,
		limit:            limit,
	}
}

func (t *ExtractContentTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	posts, err := t.postRepo.GetPostsWithoutContent(t.limit)
	if err != nil {
		return fmt.Errorf("failed to get posts for content extraction: %w", err)
	}

	if len(posts) == 0 {
		slog.Debug("No posts need content extraction")
		return nil
	}

	successCount := 0
	errorCount := 0

	for _, post := range posts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := t.extractContentForPost(ctx, post); err != nil {
			slog.Error("Failed to extract content for post", "post_id", post.PostID, "url", post.LinkAlternate, "error", err)
			errorCount++
		} else {
			successCount++
		}
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"success", successCount,
		"errors", errorCount)

	return nil
}

func (t *ExtractContentTask) extractContentForPost(ctx context.Context, post database.Post) error {
	if post.LinkAlternate == "" {
		return fmt.Errorf("post has no alternate link")
	}

	data, err := t.fetchArticleContent(ctx, post.LinkAlternate)
	if err != nil {
		return fmt.Errorf("failed to fetch article content: %w", err)
	}

	extractedContent, err := t.contentExtractor.Run(data, post.LinkAlternate)
	if err != nil {
		return fmt.Errorf("failed to extract content: %w", err)
	}

	if err := t.postRepo.UpdatePostContent(post.PostID, extractedContent); err != nil {
		return fmt.Errorf("failed to update extracted content: %w", err)
	}

	slog.Debug("Content extracted successfully", "post_id", post.PostID, "url", post.LinkAlternate, "content_length", len(extractedContent))
	return nil
}

func (t *ExtractContentTask) fetchArticleContent(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
