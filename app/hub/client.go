package hub

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blogmirror/app/database"
)

const (
	ModeSubscribe   = "subscribe"
	ModeUnsubscribe = "unsubscribe"
)

const requestTimeout = 10 * time.Second

// Client sends subscribe/unsubscribe handshakes to the hub. Requests
// are best-effort: every failure is reported as false, never as an
// error, and nothing is changed locally — only the inbound verification
// leg flips a subscription to verified.
type Client struct {
	httpClient *http.Client
	hubURL     string
	userAgent  string
}

func NewClient(httpClient *http.Client, hubURL string, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		hubURL:     hubURL,
		userAgent:  userAgent,
	}
}

// Request asks the hub to subscribe or unsubscribe the given
// subscription and reports whether the hub accepted the request.
func (c *Client) Request(ctx context.Context, sub *database.Subscription, mode string) bool {
	if c.hubURL == "" {
		slog.Debug("Hub URL not configured, skipping handshake", "mode", mode, "topic", sub.TopicURL)
		return false
	}

	form := url.Values{
		"hub.callback":     {sub.CallbackURL()},
		"hub.mode":         {mode},
		"hub.topic":        {sub.TopicURL},
		"hub.verify":       {"async"},
		"hub.verify_token": {sub.VerifyToken},
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, c.hubURL, strings.NewReader(form.Encode()))
	if err != nil {
		slog.Debug("Failed to build hub request", "hub_url", c.hubURL, "mode", mode, "error", err)
		return false
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("Hub request failed", "hub_url", c.hubURL, "mode", mode, "topic", sub.TopicURL, "error", err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Debug("Hub rejected request", "hub_url", c.hubURL, "mode", mode, "topic", sub.TopicURL, "status", resp.StatusCode)
		return false
	}

	return true
}
