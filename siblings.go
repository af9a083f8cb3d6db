package readability

import (
	"math"

	"github.com/PuerkitoBio/goquery"
)

// appendSiblings implements spec.md §4.9: move top and every sibling that
// clears the inclusion bar into article, retagging non-exempt siblings
// to <div> as they're absorbed.
//
// A sibling is included when it is top itself, when its own content
// score (plus a 20%-of-top bonus for sharing top's class) clears
// max(10, top's score * 0.2), or — lacking a score — when it's a <p>
// long enough and low enough in link density, or short but link-free and
// containing a period followed by a space.
func appendSiblings(article, top *goquery.Selection, topScore float64, sc *scorer, t *trace) {
	threshold := math.Max(10, topScore*0.2)
	topClass, _ := top.Attr("class")

	parent := top.Parent()
	if parent.Length() == 0 {
		article.AppendSelection(top)
		return
	}

	siblings := parent.Children()
	snapshot := make([]*goquery.Selection, 0, siblings.Length())
	siblings.Each(func(_ int, s *goquery.Selection) {
		snapshot = append(snapshot, s)
	})

	for _, sib := range snapshot {
		include := isSameNode(sib, top)

		if !include {
			bonus := 0.0
			if topClass != "" {
				if class, _ := sib.Attr("class"); class == topClass {
					bonus = topScore * 0.2
				}
			}

			if cs, ok := sc.get(sib); ok {
				if cs.score+bonus >= threshold {
					include = true
				}
			} else if nodeName(sib) == "P" {
				include = qualifiesAsPlainParagraph(sib)
			}
		}

		if !include {
			continue
		}

		if !isSameNode(sib, top) && !alterToDivExceptions[nodeName(sib)] {
			sib = setNodeTag(sib, "div")
		}

		t.record(sib, "appended to article")
		article.AppendSelection(sib)
	}
}

// qualifiesAsPlainParagraph implements the unscored-<p> fallback rule:
// a long paragraph with low link density, or a short link-free one whose
// text contains a period followed by a space (rxShortParagraphEnd), still
// belongs in the article.
func qualifiesAsPlainParagraph(p *goquery.Selection) bool {
	linkDensity := getLinkDensity(p)
	text := getInnerText(p, true)
	length := len(text)

	if length > 80 && linkDensity < 0.25 {
		return true
	}
	if length > 0 && length < 80 && linkDensity == 0 && rxShortParagraphEnd.MatchString(text) {
		return true
	}
	return false
}
