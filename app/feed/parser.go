package feed

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
)

// Parser turns raw feed bytes into a normalized Source and entry list.
// Atom documents go through the dedicated atom parser because the
// universal one discards per-link rel attributes, which the typed link
// extraction (edit/self/alternate) depends on.
type Parser struct {
	universalParser *gofeed.Parser
	atomParser      *atom.Parser
}

func NewParser() *Parser {
	return &Parser{
		universalParser: gofeed.NewParser(),
		atomParser:      &atom.Parser{},
	}
}

func (p *Parser) Run(data []byte) (*Source, []Entry, error) {
	if gofeed.DetectFeedType(bytes.NewReader(data)) == gofeed.FeedTypeAtom {
		return p.parseAtom(data)
	}
	return p.parseUniversal(data)
}

func (p *Parser) parseAtom(data []byte) (*Source, []Entry, error) {
	feed, err := p.atomParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse atom feed: %w", err)
	}

	source := &Source{Title: feed.Title}
	for _, link := range feed.Links {
		if link != nil && link.Href != "" {
			source.Links = append(source.Links, link.Href)
		}
	}

	entries := make([]Entry, 0, len(feed.Entries))
	for _, item := range feed.Entries {
		if item == nil {
			continue
		}

		entry := Entry{
			ID:          item.ID,
			Title:       item.Title,
			Published:   item.PublishedParsed,
			Updated:     item.UpdatedParsed,
			Content:     item.Summary,
			ContentType: "html",
		}

		if item.Content != nil {
			entry.Content = item.Content.Value
			entry.ContentType = cmp.Or(item.Content.Type, "html")
		}

		for _, author := range item.Authors {
			if author != nil && author.Name != "" {
				entry.Author = author.Name
				break
			}
		}

		for _, link := range item.Links {
			if link == nil || link.Href == "" {
				continue
			}
			// Atom defines a missing rel attribute as "alternate".
			entry.Links = append(entry.Links, Link{
				Rel:  cmp.Or(link.Rel, "alternate"),
				Href: link.Href,
			})
		}

		entries = append(entries, entry)
	}

	return source, entries, nil
}

func (p *Parser) parseUniversal(data []byte) (*Source, []Entry, error) {
	feed, err := p.universalParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := &Source{Title: feed.Title}
	seen := make(map[string]bool)
	for _, href := range append([]string{feed.FeedLink, feed.Link}, feed.Links...) {
		if href != "" && !seen[href] {
			seen[href] = true
			source.Links = append(source.Links, href)
		}
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		entry := Entry{
			ID:          cmp.Or(item.GUID, item.Link),
			Title:       item.Title,
			Content:     cmp.Or(item.Content, item.Description),
			ContentType: "html",
			Published:   item.PublishedParsed,
			Updated:     item.UpdatedParsed,
		}

		for _, author := range item.Authors {
			if author != nil && author.Name != "" {
				entry.Author = author.Name
				break
			}
		}

		if item.Link != "" {
			entry.Links = append(entry.Links, Link{Rel: "alternate", Href: item.Link})
		}

		entries = append(entries, entry)
	}

	return source, entries, nil
}
