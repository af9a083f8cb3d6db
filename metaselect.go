package readability

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Favicon and representative-image fallback chains are expressed as
// ordered lists of compiled selectors, tried in order until one matches.
// cascadia is goquery's own matching engine; it is used directly here
// (rather than through goquery.Selection.Find) so these small, reused
// chains are compiled once at package init instead of re-parsed on every
// Parse call.
var (
	faviconSelectors = []cascadia.Sel{
		cascadia.MustCompile(`head link[rel="shortcut icon"]`),
		cascadia.MustCompile(`head link[rel=icon]`),
	}

	imageSelectors = []struct {
		sel       cascadia.Sel
		attribute string
	}{
		{cascadia.MustCompile(`head meta[property="og:image:secure_url"]`), "content"},
		{cascadia.MustCompile(`head meta[property="og:image:url"]`), "content"},
		{cascadia.MustCompile(`head meta[property="og:image"]`), "content"},
		{cascadia.MustCompile(`meta[name="twitter:image"]`), "content"},
		{cascadia.MustCompile(`link[rel="image_src"]`), "href"},
		{cascadia.MustCompile(`meta[name="thumbnail"]`), "content"},
	}
)

// firstAttr returns the first non-empty attribute value found by querying
// sel against root, or "" if nothing matched or the attribute was absent.
func firstAttr(root *html.Node, sel cascadia.Sel, attribute string) string {
	for _, n := range cascadia.QueryAll(root, sel) {
		if v := htmlAttr(n, attribute); v != "" {
			return v
		}
	}
	return ""
}

// htmlAttr returns the value of attribute on n, or "".
func htmlAttr(n *html.Node, attribute string) string {
	for _, a := range n.Attr {
		if a.Key == attribute {
			return a.Val
		}
	}
	return ""
}
