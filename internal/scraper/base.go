// Define the driver capability surface the scan loop consumes
// Shared types for leads and rendered posts

package scraper

import "context"

// Unknown is recorded when a post field cannot be extracted.
const Unknown = "unknown"

// Lead is one accepted post, as persisted to the store.
type Lead struct {
	Link   string `json:"link"`
	Author string `json:"author"`
	Reason string `json:"ai_reason"`
	Text   string `json:"post_text"`
}

// DateWindow restricts search results by post age.
type DateWindow string

const (
	DateAny       DateWindow = "none"
	DatePast24h   DateWindow = "past-24h"
	DatePastWeek  DateWindow = "past-week"
	DatePastMonth DateWindow = "past-month"
)

// ParseDateWindow validates a configured date filter value.
func ParseDateWindow(s string) (DateWindow, bool) {
	switch DateWindow(s) {
	case DateAny, DatePast24h, DatePastWeek, DatePastMonth:
		return DateWindow(s), true
	case "":
		return DateAny, true
	}
	return DateAny, false
}

// PostHandle is one rendered post on the results page. All reads are
// best-effort: a missing sub-element yields an empty value, not an error.
type PostHandle interface {
	// Link returns the canonical permalink, or "" when the post carries no
	// stable identifier.
	Link() string

	// Expand clicks any see-more truncation toggle so the full text renders.
	Expand()

	// Text returns the post body with whitespace collapsed, or "" when absent.
	Text() string

	// Author returns the author's display name, or "" when absent.
	Author() string
}

// PageDriver is the browser capability surface the scan loop drives.
type PageDriver interface {
	// GoHome navigates back to the known-good landing state between queries.
	GoHome(ctx context.Context)

	// Search issues one query through the site's search affordance.
	Search(ctx context.Context, query string) error

	// ApplyPostsFilter restricts results to native posts.
	ApplyPostsFilter(ctx context.Context) error

	// ApplyDateFilter restricts results to the given window. DateAny is a no-op.
	ApplyDateFilter(ctx context.Context, window DateWindow) error

	// VisiblePosts lists every post container currently rendered.
	VisiblePosts() ([]PostHandle, error)

	// Scroll moves down the page to trigger lazy loading.
	Scroll() error

	// PageExtent reports the current document height.
	PageExtent() (int, error)
}
