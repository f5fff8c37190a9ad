package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"blogmirror/app/cfg"
	"blogmirror/app/database"
	"blogmirror/app/feed"
	"blogmirror/app/hub"
	"blogmirror/app/tasks"
)

func NewHandler(c *cfg.Cfg, postRepo database.PostRepository, registry *hub.Registry,
	parser *feed.Parser, syncer *feed.Syncer, scheduler tasks.TaskSchedulerInterface,
	httpClient *http.Client) *Handler {
	return &Handler{
		postRepo:        postRepo,
		registry:        registry,
		parser:          parser,
		syncer:          syncer,
		scheduler:       scheduler,
		httpClient:      httpClient,
		feedURL:         c.FeedURL,
		hostName:        c.HostName,
		userAgent:       c.UserAgent,
		recentPostCount: c.RecentPostCount,
		version:         c.Version,
	}
}

// VerifySubscription handles the hub's GET callback. The challenge is
// echoed verbatim on success; rejections carry the exact reason in the
// body.
func (h *Handler) VerifySubscription(c *gin.Context) {
	mode := c.Query("hub.mode")
	topic := c.Query("hub.topic")
	verifyToken := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	err := h.registry.Verify(topic, mode, verifyToken)
	if err == nil {
		c.String(http.StatusOK, challenge)
		return
	}

	if errors.Is(err, hub.ErrInvalidMode) || errors.Is(err, hub.ErrUnknownSubscription) || errors.Is(err, hub.ErrTokenMismatch) {
		slog.Warn("Subscription verification rejected", "topic", topic, "mode", mode, "reason", err)
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	slog.Error("Database error", "operation", "verify_subscription", "topic", topic, "error", err)
	c.Status(http.StatusInternalServerError)
}

// ReceivePush handles pushed feed documents from the hub. The endpoint
// always acknowledges with 204: a failed delivery is the hub's cue to
// retry, and the periodic synchronization catches anything dropped
// here.
func (h *Handler) ReceivePush(c *gin.Context) {
	defer c.Status(http.StatusNoContent)

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.Warn("Failed to read pushed feed body", "error", err)
		return
	}

	source, entries, err := h.parser.Run(data)
	if err != nil {
		slog.Warn("Failed to parse pushed feed", "error", err)
		return
	}

	sub, err := h.registry.FindByFeedURLs(source.Links)
	if err != nil {
		slog.Error("Database error", "operation", "find_subscription", "error", err)
		return
	}
	if sub == nil {
		slog.Warn("Pushed feed matches no subscription, ignoring", "title", source.Title, "links", source.Links)
		return
	}

	newPosts, err := h.syncer.Run(entries)
	if err != nil {
		slog.Error("Failed to sync pushed feed", "topic", sub.TopicURL, "error", err)
		return
	}

	slog.Info("Push processed", "topic", sub.TopicURL, "total", len(entries), "new", newPosts)
}

func (h *Handler) ListPosts(c *gin.Context) {
	limit := h.recentPostCount
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	posts, err := h.postRepo.GetRecentPosts(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent_posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": len(posts),
	})
}

func (h *Handler) GetPostBySlug(c *gin.Context) {
	slug := strings.TrimPrefix(c.Param("slug"), "/")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing post slug"})
		return
	}

	post, err := h.postRepo.GetPostBySlug(slug)
	if err != nil {
		slog.Error("Database error", "operation", "get_post_by_slug", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if postCount, err := h.postRepo.GetPostCount(); err == nil {
		health["posts"] = postCount
	}

	if sub, err := h.registry.GetSubscription(h.feedURL); err == nil && sub != nil {
		health["subscription_verified"] = sub.IsVerified
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APISyncFeed(c *gin.Context) {
	syncTask := tasks.NewSyncFeedTask(h.feedURL, h.httpClient, h.parser, h.syncer, h.userAgent)
	if err := h.scheduler.EnqueueTask(syncTask); err != nil {
		slog.Error("Error enqueueing sync task", "feed", h.feedURL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue sync task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sync task enqueued successfully",
		"task": gin.H{
			"id":   syncTask.ID,
			"type": syncTask.Type,
		},
	})
}

func (h *Handler) APIGetSubscription(c *gin.Context) {
	sub, err := h.registry.GetSubscription(h.feedURL)
	if err != nil {
		slog.Error("Database error", "operation", "get_subscription", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No subscription for the configured feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"topic_url":    sub.TopicURL,
		"callback_url": sub.CallbackURL(),
		"is_verified":  sub.IsVerified,
		"created_at":   sub.CreatedAt,
		"updated_at":   sub.UpdatedAt,
	})
}

func (h *Handler) APISubscribe(c *gin.Context) {
	sub, accepted, err := h.registry.Subscribe(c.Request.Context(), h.feedURL, h.hostName)
	if err != nil {
		slog.Error("Failed to create subscription", "topic", h.feedURL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"topic_url":          sub.TopicURL,
		"callback_url":       sub.CallbackURL(),
		"handshake_accepted": accepted,
	})
}

func (h *Handler) APIUnsubscribe(c *gin.Context) {
	existed, err := h.registry.Unsubscribe(c.Request.Context(), h.feedURL)
	if err != nil {
		slog.Error("Failed to remove subscription", "topic", h.feedURL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove subscription"})
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"error": "No subscription for the configured feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"topic_url": h.feedURL,
	})
}
