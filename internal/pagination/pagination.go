// Package pagination computes page offsets and renders page navigation.
package pagination

import (
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"
)

// window is how many numbered links are shown on each side of the current page
const window = 2

type Pagination struct {
	CurrentPage int
	PerPage     int
	TotalCount  int
}

// New clamps page and perPage to at least 1 and totalCount to at least 0
func New(currentPage, perPage, totalCount int) *Pagination {
	if perPage < 1 {
		perPage = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if totalCount < 0 {
		totalCount = 0
	}
	return &Pagination{CurrentPage: currentPage, PerPage: perPage, TotalCount: totalCount}
}

func (p *Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.PerPage
}

func (p *Pagination) TotalPages() int {
	return (p.TotalCount + p.PerPage - 1) / p.PerPage
}

func (p *Pagination) HasPrevious() bool {
	return p.CurrentPage > 1
}

func (p *Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages()
}

func (p *Pagination) Previous() int {
	return p.CurrentPage - 1
}

func (p *Pagination) Next() int {
	return p.CurrentPage + 1
}

// IsOutOfRange reports a page past the last one for a non-empty result
func (p *Pagination) IsOutOfRange() bool {
	return p.TotalCount > 0 && p.CurrentPage > p.TotalPages()
}

// Link is one entry of the page navigation
type Link struct {
	Label    string
	Href     string
	Page     int
	Current  bool
	Disabled bool
}

// Items returns the navigation entries with hrefs built by href.
// Nothing is returned when everything fits on one page.
func (p *Pagination) Items(href func(page int) string) []Link {
	total := p.TotalPages()
	if total <= 1 {
		return nil
	}

	isFirst := !p.HasPrevious()
	isLast := !p.HasNext()

	links := []Link{
		{Label: "« First", Page: 1, Href: href(1), Disabled: isFirst},
		{Label: "‹ Prev", Page: p.Previous(), Href: href(p.Previous()), Disabled: isFirst},
	}

	start := max(1, p.CurrentPage-window)
	end := min(total, p.CurrentPage+window)
	for page := start; page <= end; page++ {
		links = append(links, Link{
			Label:   strconv.Itoa(page),
			Page:    page,
			Href:    href(page),
			Current: page == p.CurrentPage,
		})
	}

	links = append(links,
		Link{Label: "Next ›", Page: p.Next(), Href: href(p.Next()), Disabled: isLast},
		Link{Label: "Last »", Page: total, Href: href(total), Disabled: isLast},
	)
	return links
}

// Links renders the navigation as HTML, replacing {page} in urlTemplate.
// Disabled entries and the current page render as spans.
func (p *Pagination) Links(urlTemplate string) string {
	items := p.Items(func(page int) string {
		return strings.ReplaceAll(urlTemplate, "{page}", strconv.Itoa(page))
	})
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<nav class="pagination" aria-label="Pagination">`)
	for _, l := range items {
		label := html.EscapeString(l.Label)
		switch {
		case l.Current:
			fmt.Fprintf(&b, `<span class="page-link current" aria-current="page">%s</span>`, label)
		case l.Disabled:
			fmt.Fprintf(&b, `<span class="page-link disabled">%s</span>`, label)
		default:
			fmt.Fprintf(&b, `<a class="page-link" href="%s" data-page="%d">%s</a>`, html.EscapeString(l.Href), l.Page, label)
		}
	}
	b.WriteString(`</nav>`)
	return b.String()
}

// URLBuilder resolves named routes
type URLBuilder interface {
	URL(name string, params map[string]string) (string, error)
}

// RouteLinks renders the navigation for a named route, carrying query through
// every link. A nil router falls back to a relative query-string template.
func (p *Pagination) RouteLinks(router URLBuilder, name string, params map[string]string, query url.Values) string {
	base := ""
	if router != nil {
		path, err := router.URL(name, params)
		if err == nil {
			base = path
		}
	}
	return p.Links(base + Template(query))
}

// Template returns "?<query>&page={page}" with any existing page value dropped
func Template(query url.Values) string {
	q := url.Values{}
	for k, v := range query {
		if k == "page" {
			continue
		}
		for _, s := range v {
			if s != "" {
				q.Add(k, s)
			}
		}
	}

	if encoded := q.Encode(); encoded != "" {
		return "?" + encoded + "&page={page}"
	}
	return "?page={page}"
}
