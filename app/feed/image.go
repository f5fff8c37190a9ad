package feed

import (
	"strings"

	"golang.org/x/net/html"
)

// FirstImageURL scans post markup for the first image reference and
// returns its source URL, or an empty string when the markup contains
// no image.
func FirstImageURL(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "img" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "src" {
					return string(val)
				}
				if !more {
					break
				}
			}
		}
	}
}
