package readability

import "time"

// Article is the immutable result of a successful Parse. Byline, SiteName,
// PublishedTime, Excerpt, FaviconURL, and ImageURL may individually be empty
// (or zero, for PublishedTime) in a successful result.
type Article struct {
	// URI is the source URI extraction was resolved against.
	URI string

	// Title is the extracted article title.
	Title string

	// Byline is the extracted author, or empty.
	Byline string

	// SiteName is the publication name from og:site_name or JSON-LD, or empty.
	SiteName string

	// PublishedTime is the best-effort publication date, or the zero
	// time.Time if none could be parsed.
	PublishedTime time.Time

	// Content is the serialized HTML of the article container, a single
	// <div id="readability-page-1" class="page">.
	Content string

	// TextContent is the plain inner text of Content.
	TextContent string

	// Length is the character count of TextContent.
	Length int

	// Excerpt is a short description of the article.
	Excerpt string

	// FaviconURL is the resolved favicon URL, or empty.
	FaviconURL string

	// ImageURL is the resolved representative image URL, or empty.
	ImageURL string
}
