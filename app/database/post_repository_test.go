package database

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func testPost(postID, title string, published time.Time) Post {
	return Post{
		PostID:      postID,
		Title:       title,
		Author:      "Test Author",
		Content:     "<p>Hello</p>",
		ContentType: "html",
		Published:   published,
		Updated:     published,
	}
}

func TestUpsertPostCreatesAndOverwrites(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))
	published := time.Date(2011, 7, 24, 10, 0, 0, 0, time.UTC)

	created, err := repo.UpsertPost(testPost("tag:blogger.com,1999:post-1", "Old", published))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !created {
		t.Error("Expected first upsert to create the post")
	}

	created, err = repo.UpsertPost(testPost("tag:blogger.com,1999:post-1", "New", published))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if created {
		t.Error("Expected second upsert to overwrite, not create")
	}

	count, err := repo.GetPostCount()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 post, got: %d", count)
	}

	post, err := repo.GetPost("tag:blogger.com,1999:post-1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if post == nil {
		t.Fatal("Expected post to exist")
	}
	if post.Title != "New" {
		t.Errorf("Expected overwritten title 'New', got: %s", post.Title)
	}
}

func TestUpsertPostComputesSlug(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))
	published := time.Date(2011, 7, 24, 0, 0, 0, 0, time.UTC)

	post := testPost("post-1", "A Blog Post Title", published)
	post.Slug = "caller/supplied/slug" // must be ignored

	if _, err := repo.UpsertPost(post); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	stored, err := repo.GetPost("post-1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if stored.Slug != "2011/07/a-blog-post-title" {
		t.Errorf("Expected slug '2011/07/a-blog-post-title', got: %s", stored.Slug)
	}

	bySlug, err := repo.GetPostBySlug("2011/07/a-blog-post-title")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if bySlug == nil || bySlug.PostID != "post-1" {
		t.Error("Expected to find post by derived slug")
	}
}

func TestGetRecentPostsOrdering(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))
	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"post-1", "post-2", "post-3"} {
		post := testPost(id, "Post "+id, base.Add(time.Duration(i)*time.Hour))
		if _, err := repo.UpsertPost(post); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}

	posts, err := repo.GetRecentPosts(2)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts, got: %d", len(posts))
	}
	if posts[0].PostID != "post-3" || posts[1].PostID != "post-2" {
		t.Errorf("Expected posts ordered by published descending, got: %s, %s",
			posts[0].PostID, posts[1].PostID)
	}
}

func TestGetRecentPostsBreaksTiesOnUpdated(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))
	published := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

	older := testPost("post-1", "Older", published)
	older.Updated = published
	newer := testPost("post-2", "Newer", published)
	newer.Updated = published.Add(time.Hour)

	for _, post := range []Post{older, newer} {
		if _, err := repo.UpsertPost(post); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}

	posts, err := repo.GetRecentPosts(10)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("Expected 2 posts, got: %d", len(posts))
	}
	if posts[0].PostID != "post-2" {
		t.Errorf("Expected updated timestamp to break the tie, got: %s first", posts[0].PostID)
	}
}

func TestGetPostReturnsNilWhenMissing(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))

	post, err := repo.GetPost("missing")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if post != nil {
		t.Error("Expected nil for missing post")
	}
}

func TestGetPostsWithoutContent(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))
	published := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

	empty := testPost("post-1", "Empty", published)
	empty.Content = ""
	empty.LinkAlternate = "https://blog.example.com/2023/05/empty.html"

	full := testPost("post-2", "Full", published)

	for _, post := range []Post{empty, full} {
		if _, err := repo.UpsertPost(post); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}

	posts, err := repo.GetPostsWithoutContent(10)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(posts) != 1 || posts[0].PostID != "post-1" {
		t.Fatalf("Expected only the empty post, got: %d posts", len(posts))
	}

	if err := repo.UpdatePostContent("post-1", "<p>Backfilled</p>"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	posts, err = repo.GetPostsWithoutContent(10)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("Expected no posts without content after backfill, got: %d", len(posts))
	}
}
