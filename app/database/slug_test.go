package database

import (
	"testing"
	"time"
)

func TestPostSlug(t *testing.T) {
	published := time.Date(2011, 7, 24, 0, 0, 0, 0, time.UTC)

	slug := postSlug(published, "A Blog Post Title")
	if slug != "2011/07/a-blog-post-title" {
		t.Errorf("Expected slug '2011/07/a-blog-post-title', got: %s", slug)
	}
}

func TestPostSlugIsDeterministic(t *testing.T) {
	published := time.Date(2023, 12, 1, 18, 30, 0, 0, time.UTC)

	first := postSlug(published, "Hello, World!")
	second := postSlug(published, "Hello, World!")
	if first != second {
		t.Errorf("Expected identical slugs, got: %s and %s", first, second)
	}
	if first != "2023/12/hello-world" {
		t.Errorf("Expected slug '2023/12/hello-world', got: %s", first)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"A Blog Post Title", "a-blog-post-title"},
		{"Hello, World!", "hello-world"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"multiple---separators___here", "multiple-separators-here"},
		{"Bücher über Go", "bucher-uber-go"},
		{"100% Coverage?", "100-coverage"},
		{"", ""},
	}

	for _, tt := range tests {
		got := slugify(tt.title)
		if got != tt.expected {
			t.Errorf("slugify(%q): expected %q, got %q", tt.title, tt.expected, got)
		}
	}
}
