package hub

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"blogmirror/app/database"
)

// Verification rejections. The hub relies on these exact strings in
// the response body.
var (
	ErrInvalidMode         = errors.New("invalid mode")
	ErrUnknownSubscription = errors.New("subscription not found")
	ErrTokenMismatch       = errors.New("data did not match")
)

// Registry manages subscription records and fires the outbound
// handshake as an explicit step of create and delete, not as a
// persistence hook.
type Registry struct {
	subs   database.SubscriptionRepository
	client *Client
}

func NewRegistry(subs database.SubscriptionRepository, client *Client) *Registry {
	return &Registry{subs: subs, client: client}
}

// Subscribe creates (or re-targets) the subscription for topicURL and
// immediately sends the subscribe handshake. The verify token is
// generated once and survives re-subscribes; the handshake outcome is
// reported but never fails the operation.
func (r *Registry) Subscribe(ctx context.Context, topicURL string, hostName string) (*database.Subscription, bool, error) {
	existing, err := r.subs.GetSubscription(topicURL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up subscription: %w", err)
	}

	sub := database.Subscription{
		TopicURL: topicURL,
		HostName: hostName,
	}
	if existing != nil {
		sub.VerifyToken = existing.VerifyToken
		sub.IsVerified = existing.IsVerified
	} else {
		sub.VerifyToken = generateVerifyToken(topicURL)
	}

	if err := r.subs.UpsertSubscription(sub); err != nil {
		return nil, false, fmt.Errorf("failed to store subscription: %w", err)
	}

	stored, err := r.subs.GetSubscription(topicURL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to reload subscription: %w", err)
	}

	accepted := r.client.Request(ctx, stored, ModeSubscribe)
	if !accepted {
		slog.Warn("Subscribe handshake not accepted", "topic", topicURL)
	}

	return stored, accepted, nil
}

// Unsubscribe sends the unsubscribe handshake and deletes the record.
// Deletion proceeds regardless of the handshake outcome. It reports
// whether a record existed.
func (r *Registry) Unsubscribe(ctx context.Context, topicURL string) (bool, error) {
	existing, err := r.subs.GetSubscription(topicURL)
	if err != nil {
		return false, fmt.Errorf("failed to look up subscription: %w", err)
	}
	if existing == nil {
		return false, nil
	}

	if !r.client.Request(ctx, existing, ModeUnsubscribe) {
		slog.Warn("Unsubscribe handshake not accepted, deleting anyway", "topic", topicURL)
	}

	if err := r.subs.DeleteSubscription(topicURL); err != nil {
		return true, fmt.Errorf("failed to delete subscription: %w", err)
	}

	return true, nil
}

// Verify handles the hub's verification callback. On success the
// subscription is marked verified; otherwise one of the sentinel
// rejection errors is returned.
func (r *Registry) Verify(topicURL string, mode string, verifyToken string) error {
	if mode != ModeSubscribe && mode != ModeUnsubscribe {
		return ErrInvalidMode
	}

	sub, err := r.subs.GetSubscription(topicURL)
	if err != nil {
		return fmt.Errorf("failed to look up subscription: %w", err)
	}
	if sub == nil {
		return ErrUnknownSubscription
	}

	if sub.VerifyToken != verifyToken {
		return ErrTokenMismatch
	}

	if err := r.subs.MarkVerified(topicURL); err != nil {
		return fmt.Errorf("failed to mark subscription verified: %w", err)
	}

	slog.Info("Subscription verified", "topic", topicURL, "mode", mode)
	return nil
}

// GetSubscription returns the subscription for topicURL, or nil.
func (r *Registry) GetSubscription(topicURL string) (*database.Subscription, error) {
	return r.subs.GetSubscription(topicURL)
}

// FindByFeedURLs returns the subscription matching any of the given
// feed-level URLs, or nil when the feed is unknown.
func (r *Registry) FindByFeedURLs(urls []string) (*database.Subscription, error) {
	return r.subs.GetSubscriptionByURLs(urls)
}

// generateVerifyToken derives an unpredictable token from the topic URL
// and the current time.
func generateVerifyToken(topicURL string) string {
	sum := sha256.Sum256([]byte(topicURL + strconv.FormatInt(time.Now().UnixNano(), 10)))
	return hex.EncodeToString(sum[:])
}
