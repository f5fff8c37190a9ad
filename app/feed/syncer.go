package feed

import (
	"cmp"
	"fmt"
	"log/slog"

	"blogmirror/app/database"
)

// Syncer reconciles parsed feed entries with the post repository.
type Syncer struct {
	posts database.PostRepository
}

func NewSyncer(posts database.PostRepository) *Syncer {
	return &Syncer{posts: posts}
}

// Run upserts every entry keyed by its feed-assigned id and returns the
// number of posts that did not exist before this call. Entries missing
// an id or any usable timestamp are skipped with a warning; a skipped
// entry never aborts the batch. Running twice over an unchanged feed
// creates nothing on the second pass.
func (s *Syncer) Run(entries []Entry) (int, error) {
	newPosts := 0

	for _, entry := range entries {
		post, ok := s.buildPost(entry)
		if !ok {
			slog.Warn("Skipping malformed feed entry", "id", entry.ID, "title", entry.Title)
			continue
		}

		created, err := s.posts.UpsertPost(post)
		if err != nil {
			return newPosts, fmt.Errorf("failed to store post %q: %w", post.PostID, err)
		}
		if created {
			newPosts++
		}
	}

	return newPosts, nil
}

func (s *Syncer) buildPost(entry Entry) (database.Post, bool) {
	if entry.ID == "" {
		return database.Post{}, false
	}

	published := entry.Published
	updated := entry.Updated
	if published == nil {
		published = updated
	}
	if updated == nil {
		updated = published
	}
	if published == nil {
		return database.Post{}, false
	}

	return database.Post{
		PostID:        entry.ID,
		Title:         entry.Title,
		Author:        entry.Author,
		Content:       entry.Content,
		ContentType:   cmp.Or(entry.ContentType, "html"),
		FirstImageURL: FirstImageURL(entry.Content),
		LinkEdit:      LinkByRel(entry.Links, "edit"),
		LinkSelf:      LinkByRel(entry.Links, "self"),
		LinkAlternate: LinkByRel(entry.Links, "alternate"),
		Published:     *published,
		Updated:       *updated,
	}, true
}
