package readability

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// nodeName returns the uppercase tag name of a selection, or "" for an
// empty selection.
func nodeName(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	n := s.Get(0)
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToUpper(n.Data)
}

// matchString builds the "class id" string scoring and candidate removal
// match against.
func matchString(s *goquery.Selection) string {
	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	return class + " " + id
}

// getNextNode is depth-first next: first child unless ignoreSelfAndKids,
// else next sibling, else walk up parents until one has a next sibling.
// Stable across in-place removals because callers precompute it before
// mutating.
func getNextNode(s *goquery.Selection, ignoreSelfAndKids bool) *goquery.Selection {
	if s == nil || s.Length() == 0 {
		return nil
	}

	if !ignoreSelfAndKids {
		if children := s.Children(); children.Length() > 0 {
			return children.First()
		}
	}

	if sib := s.Next(); sib.Length() > 0 {
		return sib
	}

	parent := s.Parent()
	for parent.Length() > 0 {
		if sib := parent.Next(); sib.Length() > 0 {
			return sib
		}
		parent = parent.Parent()
	}

	return nil
}

// removeAndGetNext detaches node and returns the next node to visit,
// computed before detachment so the walk survives the mutation.
func removeAndGetNext(s *goquery.Selection) *goquery.Selection {
	next := getNextNode(s, true)
	s.Remove()
	return next
}

// getNodeAncestors returns an ordered list of parents starting at the
// immediate parent. maxDepth=0 means unlimited.
func getNodeAncestors(s *goquery.Selection, maxDepth int) []*goquery.Selection {
	var ancestors []*goquery.Selection
	parent := s.Parent()
	for i := 0; parent.Length() > 0; i++ {
		ancestors = append(ancestors, parent)
		if maxDepth > 0 && i+1 >= maxDepth {
			break
		}
		parent = parent.Parent()
	}
	return ancestors
}

// getInnerText returns the trimmed, NFC-normalized concatenation of
// descendant text. When normalizeSpaces is set, runs of 2+ whitespace
// collapse to a single space.
func getInnerText(s *goquery.Selection, normalizeSpaces bool) string {
	text := strings.TrimSpace(norm.NFC.String(s.Text()))
	if normalizeSpaces {
		text = rxNormalize.ReplaceAllString(text, " ")
	}
	return text
}

// getCharCount counts occurrences of substr in the node's inner text.
func getCharCount(s *goquery.Selection, substr string) int {
	return strings.Count(getInnerText(s, true), substr)
}

// getLinkDensity is sum(inner-text length of descendant <a>) / inner-text
// length of e; 0 when the denominator is 0.
func getLinkDensity(s *goquery.Selection) float64 {
	textLength := len(getInnerText(s, true))
	if textLength == 0 {
		return 0
	}

	linkLength := 0
	s.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkLength += len(getInnerText(a, true))
	})

	return float64(linkLength) / float64(textLength)
}

// hasAncestorTag walks parents; returns true iff within maxDepth (unlimited
// when maxDepth<0) an ancestor has the matching tag and filter passes.
func hasAncestorTag(s *goquery.Selection, tagName string, maxDepth int, filter func(*goquery.Selection) bool) bool {
	tagName = strings.ToUpper(tagName)
	parent := s.Parent()
	for depth := 0; parent.Length() > 0; depth++ {
		if maxDepth >= 0 && depth >= maxDepth {
			return false
		}
		if nodeName(parent) == tagName && (filter == nil || filter(parent)) {
			return true
		}
		parent = parent.Parent()
	}
	return false
}

// isElementWithoutContent reports whether n has no trimmed text and either
// no element children or only <br>/<hr> children.
func isElementWithoutContent(s *goquery.Selection) bool {
	if strings.TrimSpace(s.Text()) != "" {
		return false
	}
	children := s.Children()
	brHr := s.Find("br, hr")
	return children.Length() == 0 || children.Length() == brHr.Length()
}

// hasSinglePInside reports whether e has exactly one element child, tag
// <p>, and some text node child with non-whitespace content. This mirrors
// the source predicate literally (see spec.md §9: it requires text as a
// *direct* child of e, not of the <p>).
func hasSinglePInside(s *goquery.Selection) bool {
	children := s.Children()
	if children.Length() != 1 {
		return false
	}
	if nodeName(children.First()) != "P" {
		return false
	}

	hasText := false
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if hasText {
			return
		}
		n := c.Get(0)
		if n != nil && n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			hasText = true
		}
	})
	return hasText
}

// hasChildBlockElement reports whether any descendant element's uppercase
// tag is in divToPElems.
func hasChildBlockElement(s *goquery.Selection) bool {
	for _, tag := range divToPElems {
		if s.Find(strings.ToLower(tag)).Length() > 0 {
			return true
		}
	}
	return false
}

// getClassWeight returns the ±25-per-attribute class/id weight, or 0 when
// flagWeightClasses is inactive.
func getClassWeight(s *goquery.Selection, flags int) int {
	if flags&flagWeightClasses == 0 {
		return 0
	}

	weight := 0
	if class, ok := s.Attr("class"); ok && class != "" {
		if rxNegative.MatchString(class) {
			weight -= classWeightNegative
		}
		if rxPositive.MatchString(class) {
			weight += classWeightPositive
		}
	}
	if id, ok := s.Attr("id"); ok && id != "" {
		if rxNegative.MatchString(id) {
			weight -= classWeightNegative
		}
		if rxPositive.MatchString(id) {
			weight += classWeightPositive
		}
	}
	return weight
}

// isPhrasingContent reports whether n qualifies as phrasing content: a
// text node, a tag in phrasingElems, or an <a>/<del>/<ins> whose children
// are all themselves phrasing content.
func isPhrasingContent(n *html.Node) bool {
	if n == nil {
		return false
	}
	if n.Type == html.TextNode {
		return true
	}
	if n.Type != html.ElementNode {
		return false
	}

	tag := strings.ToUpper(n.Data)
	if phrasingElems[tag] {
		return true
	}
	if tag == "A" || tag == "DEL" || tag == "INS" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !isPhrasingContent(c) {
				return false
			}
		}
		return true
	}
	return false
}

// isWhitespaceNode reports whether n is a blank text node or a <br>.
func isWhitespaceNode(n *html.Node) bool {
	if n == nil {
		return false
	}
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data) == ""
	}
	return n.Type == html.ElementNode && strings.ToUpper(n.Data) == "BR"
}

// isSameNode reports whether two selections wrap the same underlying node.
func isSameNode(a, b *goquery.Selection) bool {
	if a == nil || b == nil || a.Length() == 0 || b.Length() == 0 {
		return false
	}
	return a.Get(0) == b.Get(0)
}

// wrapNode wraps a raw *html.Node (typically a sibling/child pointer
// obtained by direct traversal) in a *goquery.Selection so it can be used
// with the rest of the goquery-based pipeline. It does not alter the
// node's place in its existing tree.
func wrapNode(n *html.Node) *goquery.Selection {
	if n == nil {
		empty := &goquery.Selection{}
		return empty
	}
	return goquery.NewDocumentFromNode(n).Selection
}

// createElement builds a detached element node of the given tag, usable
// with goquery's AppendSelection/ReplaceWithSelection family.
func createElement(tag string) *goquery.Selection {
	n := &html.Node{
		Type: html.ElementNode,
		Data: tag,
	}
	return goquery.NewDocumentFromNode(n).Selection
}

// createTextNode builds a detached text node.
func createTextNode(text string) *goquery.Selection {
	n := &html.Node{
		Type: html.TextNode,
		Data: text,
	}
	return goquery.NewDocumentFromNode(n).Selection
}

// atoiOrOne parses s as an integer, defaulting to 1 when s is empty,
// invalid, or zero (used for rowspan/colspan, whose HTML default is 1).
func atoiOrOne(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return 1
	}
	return n
}
