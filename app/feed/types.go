package feed

import (
	"time"
)

// Source describes the feed document itself. Links carries every
// feed-level link href regardless of relation; push matching compares a
// stored topic URL against all of them.
type Source struct {
	Title string
	Links []string
}

// Link is a typed feed link.
type Link struct {
	Rel  string
	Href string
}

// Entry is a normalized feed entry. ID is the feed-assigned identifier
// the reconciliation engine keys on.
type Entry struct {
	ID          string
	Title       string
	Author      string
	Content     string
	ContentType string
	Links       []Link
	Published   *time.Time
	Updated     *time.Time
}

// LinkByRel returns the href of the first link whose relation matches
// rel exactly (case-sensitive), or an empty string when no link does.
func LinkByRel(links []Link, rel string) string {
	for _, link := range links {
		if link.Rel == rel {
			return link.Href
		}
	}
	return ""
}
