package database

type PostRepository interface {
	GetPost(postID string) (*Post, error)
	GetPostBySlug(slug string) (*Post, error)
	GetRecentPosts(limit int) ([]Post, error)
	GetPostCount() (int, error)

	// UpsertPost inserts the post or overwrites every attribute of an
	// existing record with the same PostID. It reports whether a new
	// record was created.
	UpsertPost(post Post) (bool, error)

	GetPostsWithoutContent(limit int) ([]Post, error)
	UpdatePostContent(postID string, content string) error
}

type SubscriptionRepository interface {
	GetSubscription(topicURL string) (*Subscription, error)

	// GetSubscriptionByURLs returns the first subscription whose topic
	// URL matches any of the given URLs, or nil when none match.
	GetSubscriptionByURLs(urls []string) (*Subscription, error)

	UpsertSubscription(sub Subscription) error
	MarkVerified(topicURL string) error
	DeleteSubscription(topicURL string) error
	GetSubscriptionCount() (int, error)
}
