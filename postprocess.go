package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fixRelativeURIs implements spec.md §4.11's fix-relative-uris: a
// javascript: anchor is replaced by its own text content (it can't be
// followed once rendered outside a browser), and every href/src is
// absolutized against the page's source URI.
func fixRelativeURIs(article *goquery.Selection, abs *absolutizer) {
	article.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		if hasJavascriptScheme(href) {
			text := createTextNode(getInnerText(a, false))
			a.ReplaceWithSelection(text)
			return
		}
		a.SetAttr("href", abs.absolutize(href))
	})

	article.Find("img, source").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			s.SetAttr("src", abs.absolutize(src))
		}
	})
}

func hasJavascriptScheme(href string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(href)), "javascript:")
}

// cleanIdsAndClasses implements spec.md §4.11's clean-ids-and-classes:
// strip every id not in idsToPreserve and reduce every class list to only
// the classes in classesToPreserve (dropping the attribute entirely if
// nothing survives).
func cleanIdsAndClasses(article *goquery.Selection) {
	article.Find("*").Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("id"); ok && !idsToPreserve[id] {
			s.RemoveAttr("id")
		}

		class, ok := s.Attr("class")
		if !ok {
			return
		}

		var kept []string
		for _, c := range strings.Fields(class) {
			if classesToPreserve[c] {
				kept = append(kept, c)
			}
		}

		if len(kept) == 0 {
			s.RemoveAttr("class")
			return
		}
		s.SetAttr("class", strings.Join(kept, " "))
	})
}
