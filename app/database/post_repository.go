package database

import (
	"database/sql"
	"fmt"
	"time"
)

type postRepository struct {
	db *DB
}

func NewPostRepository(db *DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `post_id, title, author, content, content_type, first_image_url,
	       link_edit, link_self, link_alternate, published, updated, slug, created_at`

func (r *postRepository) GetPost(postID string) (*Post, error) {
	row := r.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts
		WHERE post_id = ?
	`, postID)

	return scanPost(row)
}

func (r *postRepository) GetPostBySlug(slug string) (*Post, error) {
	row := r.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts
		WHERE slug = ?
		LIMIT 1
	`, slug)

	return scanPost(row)
}

func (r *postRepository) GetRecentPosts(limit int) ([]Post, error) {
	rows, err := r.db.Query(`
		SELECT `+postColumns+`
		FROM posts
		ORDER BY published DESC, updated DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *postRepository) GetPostCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get post count: %w", err)
	}
	return count, nil
}

// UpsertPost overwrites every ingested attribute when the post already
// exists; re-ingesting an unchanged feed leaves records byte-identical.
// The slug is always recomputed from the published date and title.
func (r *postRepository) UpsertPost(post Post) (bool, error) {
	slug := postSlug(post.Published, post.Title)

	var existing string
	err := r.db.QueryRow("SELECT post_id FROM posts WHERE post_id = ?", post.PostID).Scan(&existing)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to check existing post: %w", err)
	}
	created := err == sql.ErrNoRows

	_, err = r.db.Exec(`
		INSERT INTO posts (
			post_id, title, author, content, content_type, first_image_url,
			link_edit, link_self, link_alternate, published, updated, slug, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (post_id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			content = excluded.content,
			content_type = excluded.content_type,
			first_image_url = excluded.first_image_url,
			link_edit = excluded.link_edit,
			link_self = excluded.link_self,
			link_alternate = excluded.link_alternate,
			published = excluded.published,
			updated = excluded.updated,
			slug = excluded.slug
	`, post.PostID, post.Title, post.Author, post.Content, post.ContentType,
		post.FirstImageURL, post.LinkEdit, post.LinkSelf, post.LinkAlternate,
		post.Published.UTC(), post.Updated.UTC(), slug, time.Now().UTC())

	if err != nil {
		return false, fmt.Errorf("failed to upsert post: %w", err)
	}

	return created, nil
}

func (r *postRepository) GetPostsWithoutContent(limit int) ([]Post, error) {
	rows, err := r.db.Query(`
		SELECT `+postColumns+`
		FROM posts
		WHERE content = ''
		  AND link_alternate != ''
		ORDER BY published DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts without content: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *postRepository) UpdatePostContent(postID string, content string) error {
	_, err := r.db.Exec(`
		UPDATE posts
		SET content = ?
		WHERE post_id = ?
	`, content, postID)

	if err != nil {
		return fmt.Errorf("failed to update post content: %w", err)
	}

	return nil
}

func scanPost(row *sql.Row) (*Post, error) {
	var post Post
	err := row.Scan(
		&post.PostID, &post.Title, &post.Author, &post.Content, &post.ContentType,
		&post.FirstImageURL, &post.LinkEdit, &post.LinkSelf, &post.LinkAlternate,
		&post.Published, &post.Updated, &post.Slug, &post.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post row: %w", err)
	}

	return &post, nil
}

func scanPosts(rows *sql.Rows) ([]Post, error) {
	var posts []Post
	for rows.Next() {
		var post Post
		err := rows.Scan(
			&post.PostID, &post.Title, &post.Author, &post.Content, &post.ContentType,
			&post.FirstImageURL, &post.LinkEdit, &post.LinkSelf, &post.LinkAlternate,
			&post.Published, &post.Updated, &post.Slug, &post.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}
