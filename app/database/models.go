package database

import (
	"fmt"
	"time"
)

// CallbackPath is the fixed path the hub uses to reach the verification
// and push endpoints.
const CallbackPath = "/hubbub"

// Post is a mirrored blog post. PostID is the feed-assigned identifier
// and never changes; Slug is derived from Published and Title on every
// write and is never accepted from callers.
type Post struct {
	PostID        string
	Title         string
	Author        string
	Content       string
	ContentType   string
	FirstImageURL string
	LinkEdit      string
	LinkSelf      string
	LinkAlternate string
	Published     time.Time
	Updated       time.Time
	Slug          string
	CreatedAt     time.Time
}

// Subscription is a push subscription with a hub, keyed by the topic
// (feed) URL. VerifyToken is immutable for the life of the record.
type Subscription struct {
	TopicURL    string
	HostName    string
	VerifyToken string
	IsVerified  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CallbackURL derives the hub callback from the host name and the fixed
// callback path. It is never stored.
func (s *Subscription) CallbackURL() string {
	return fmt.Sprintf("https://%s%s", s.HostName, CallbackPath)
}
