package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// removeScripts strips every <script> (clearing its value and src first)
// and every <noscript>, per spec.md §4.3.
func removeScripts(doc *goquery.Document) {
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		s.SetText("")
		s.RemoveAttr("src")
	})
	doc.Find("script, noscript").Remove()
}

// prepDocument normalizes ad-hoc markup per spec.md §4.2: strips <style>,
// rewrites <font> to <span> in place, collapses <br> runs into <p>s, and
// repairs lazy-loaded images (supplement, spec_full.md §5.1).
func prepDocument(doc *goquery.Document) {
	doc.Find("style").Remove()

	body := doc.Find("body")
	if body.Length() > 0 {
		replaceBrs(body)
		fixLazyImages(body)
	}

	doc.Find("font").Each(func(_ int, s *goquery.Selection) {
		setNodeTag(s, "span")
	})
}

// fixLazyImages repairs lazy-loaded <img>/<picture>/<figure> placeholders
// before scoring (spec_full.md §5.1, supplementing spec.md): a tiny
// base64 data-URI stand-in is dropped in favor of a same-element
// attribute that looks like a real image URL, and any attribute that
// looks like an image URL with size hints becomes srcset, or src if it's
// a bare clean URL. SVG placeholders are left alone since they can be
// meaningful even at a tiny encoded size.
func fixLazyImages(root *goquery.Selection) {
	root.Find("img, picture, figure").Each(func(_ int, elem *goquery.Selection) {
		src, hasSrc := elem.Attr("src")
		_, hasSrcset := elem.Attr("srcset")
		class, _ := elem.Attr("class")

		if (hasSrc || hasSrcset) && !strings.Contains(strings.ToLower(class), "lazy") {
			return
		}

		if hasSrc && rxB64DataURL.MatchString(src) {
			parts := rxB64DataURL.FindStringSubmatch(src)
			if len(parts) > 1 && parts[1] == "image/svg+xml" {
				return
			}

			hasImageAttr := false
			for _, attr := range elem.Get(0).Attr {
				if attr.Key == "src" {
					continue
				}
				if rxImageURLAttr.MatchString(attr.Val) {
					hasImageAttr = true
					break
				}
			}

			if hasImageAttr {
				if idx := strings.Index(src, "base64,"); idx >= 0 && len(src)-(idx+7) < 133 {
					elem.RemoveAttr("src")
				}
			}
		}

		for _, attr := range elem.Get(0).Attr {
			if attr.Key == "src" || attr.Key == "srcset" || attr.Key == "alt" {
				continue
			}
			switch {
			case rxImageURLWithDimension.MatchString(attr.Val):
				elem.SetAttr("srcset", attr.Val)
			case rxCleanImageURL.MatchString(attr.Val):
				elem.SetAttr("src", attr.Val)
			}
		}
	})
}

// setNodeTag changes the tag name of a node in place, preserving its
// attributes and children, by building a replacement element and swapping
// it in.
func setNodeTag(s *goquery.Selection, tag string) *goquery.Selection {
	replacement := createElement(tag)
	for _, attr := range s.Get(0).Attr {
		replacement.SetAttr(attr.Key, attr.Val)
	}
	if htmlContent, err := s.Html(); err == nil {
		replacement.SetHtml(htmlContent)
	}
	s.ReplaceWithSelection(replacement)
	return replacement
}

// nextNonWhitespaceElement walks forward from s (a raw sibling selection,
// possibly empty) skipping whitespace-only text nodes, returning the next
// element sibling or nil.
func nextNonWhitespaceElement(s *goquery.Selection) *goquery.Selection {
	for s != nil && s.Length() > 0 {
		n := s.Get(0)
		if n.Type == html.ElementNode {
			return s
		}
		if n.Type != html.TextNode || strings.TrimSpace(n.Data) != "" {
			return nil
		}
		next := s.Next()
		if next.Length() == 0 {
			return nil
		}
		s = next
	}
	return nil
}

// replaceBrs implements spec.md §4.2's replace-brs: for each <br>, scan
// forward through sibling <br>s (removing them), then, if at least one was
// removed, replace the original <br> with a <p> and absorb subsequent
// phrasing-content siblings into it until the next <br><br> chain.
func replaceBrs(root *goquery.Selection) {
	root.Find("br").Each(func(_ int, br *goquery.Selection) {
		if br.Length() == 0 || br.Parent().Length() == 0 {
			return // already absorbed by an earlier <br>'s chain
		}

		next := br.Get(0).NextSibling
		replaced := false

		for next != nil {
			sel := wrapNode(next)
			ne := nextNonWhitespaceElement(sel)
			if ne == nil || nodeName(ne) != "BR" {
				break
			}
			replaced = true
			after := ne.Get(0).NextSibling
			ne.Remove()
			next = after
		}

		if !replaced {
			return
		}

		p := createElement("p")
		br.ReplaceWithSelection(p)

		cur := p.Get(0).NextSibling
		for cur != nil {
			sel := wrapNode(cur)

			if nodeName(sel) == "BR" {
				afterBr := wrapNode(cur.NextSibling)
				if ne := nextNonWhitespaceElement(afterBr); ne != nil && nodeName(ne) == "BR" {
					break
				}
			}

			if !isPhrasingContent(cur) {
				break
			}

			nextSibling := cur.NextSibling
			p.AppendSelection(sel)
			cur = nextSibling
		}

		// Trim trailing whitespace/<br> children left in p.
		for {
			last := p.Get(0).LastChild
			if last == nil || !isWhitespaceNode(last) {
				break
			}
			wrapNode(last).Remove()
		}

		if nodeName(p.Parent()) == "P" {
			setNodeTag(p.Parent(), "div")
		}
	})
}
