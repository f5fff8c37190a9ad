package database

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// postSlug derives the canonical slug for a post from its published
// date and title, e.g. "2011/07/a-blog-post-title".
func postSlug(published time.Time, title string) string {
	return fmt.Sprintf("%s/%s", published.Format("2006/01"), slugify(title))
}

// slugify lowercases the title, folds diacritics to their base letters
// and replaces every run of non-alphanumeric characters with a single
// hyphen.
func slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
