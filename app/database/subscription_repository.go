package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type subscriptionRepository struct {
	db *DB
}

func NewSubscriptionRepository(db *DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetSubscription(topicURL string) (*Subscription, error) {
	row := r.db.QueryRow(`
		SELECT topic_url, host_name, verify_token, is_verified, created_at, updated_at
		FROM subscriptions
		WHERE topic_url = ?
	`, topicURL)

	return scanSubscription(row)
}

func (r *subscriptionRepository) GetSubscriptionByURLs(urls []string) (*Subscription, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(urls))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, len(urls))
	for i, u := range urls {
		args[i] = u
	}

	row := r.db.QueryRow(`
		SELECT topic_url, host_name, verify_token, is_verified, created_at, updated_at
		FROM subscriptions
		WHERE topic_url IN (`+placeholders+`)
		LIMIT 1
	`, args...)

	return scanSubscription(row)
}

// UpsertSubscription inserts a subscription or updates the host name of
// an existing one. The verify token is never changed on conflict.
func (r *subscriptionRepository) UpsertSubscription(sub Subscription) error {
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO subscriptions (topic_url, host_name, verify_token, is_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (topic_url) DO UPDATE SET
			host_name = excluded.host_name,
			updated_at = excluded.updated_at
	`, sub.TopicURL, sub.HostName, sub.VerifyToken, sub.IsVerified, now, now)

	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return nil
}

func (r *subscriptionRepository) MarkVerified(topicURL string) error {
	_, err := r.db.Exec(`
		UPDATE subscriptions
		SET is_verified = 1, updated_at = ?
		WHERE topic_url = ?
	`, time.Now().UTC(), topicURL)

	if err != nil {
		return fmt.Errorf("failed to mark subscription verified: %w", err)
	}

	return nil
}

func (r *subscriptionRepository) DeleteSubscription(topicURL string) error {
	_, err := r.db.Exec("DELETE FROM subscriptions WHERE topic_url = ?", topicURL)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) GetSubscriptionCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM subscriptions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get subscription count: %w", err)
	}
	return count, nil
}

func scanSubscription(row *sql.Row) (*Subscription, error) {
	var sub Subscription
	err := row.Scan(
		&sub.TopicURL, &sub.HostName, &sub.VerifyToken, &sub.IsVerified,
		&sub.CreatedAt, &sub.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscription row: %w", err)
	}

	return &sub, nil
}
