package readability

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// diagnosticPath builds an XPath-like position string for s relative to
// its document root, e.g. "/HTML[1]/BODY[1]/DIV[2]/P[1]". This is an
// opt-in aid (spec_full.md §5.7) for callers debugging why a particular
// node was or wasn't promoted; it plays no role in Parse's own decisions.
func diagnosticPath(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}

	var segments []string
	n := s.Get(0)
	for n != nil && n.Type == html.ElementNode {
		parent := n.Parent
		if parent == nil {
			segments = append([]string{strings.ToUpper(n.Data)}, segments...)
			break
		}
		segments = append([]string{fmt.Sprintf("%s[%d]", strings.ToUpper(n.Data), siblingPosition(parent, n))}, segments...)
		n = parent
	}

	return "/" + strings.Join(segments, "/")
}

// siblingPosition returns n's 1-based rank among parent's same-tag element
// children, found via a relative child-axis XPath query against parent.
func siblingPosition(parent, n *html.Node) int {
	matches := htmlquery.Find(parent, "./"+strings.ToLower(n.Data))
	for i, m := range matches {
		if m == n {
			return i + 1
		}
	}
	return 1
}

// trace records diagnosticPath, with a note, for every score contribution
// the scorer adds to a candidate and for every promotion, ancestor climb,
// and sibling append, in the order they happen, so a caller can
// reconstruct why a particular subtree was or wasn't promoted.
type trace struct {
	entries []string
}

func (t *trace) record(s *goquery.Selection, note string) {
	if t == nil {
		return
	}
	t.entries = append(t.entries, fmt.Sprintf("%s %s", diagnosticPath(s), note))
}
