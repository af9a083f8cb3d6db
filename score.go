package readability

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// candidateScore tracks one scored node and the running content score
// accumulated on it from scored descendants (spec.md §4.6–§4.7).
type candidateScore struct {
	selection *goquery.Selection
	score     float64
}

// scorer accumulates per-node scores across a single grabArticle pass,
// keyed by the underlying *html.Node pointer since goquery.Selection
// values are not themselves comparable.
type scorer struct {
	scores map[*html.Node]*candidateScore
	order  []*html.Node
	trace  *trace
}

func newScorer(t *trace) *scorer {
	return &scorer{scores: make(map[*html.Node]*candidateScore), trace: t}
}

func (sc *scorer) get(s *goquery.Selection) (*candidateScore, bool) {
	if s == nil || s.Length() == 0 {
		return nil, false
	}
	cs, ok := sc.scores[s.Get(0)]
	return cs, ok
}

// ensure returns the candidateScore for s, initializing it via
// initializeNode on first sight.
func (sc *scorer) ensure(s *goquery.Selection, flags int) *candidateScore {
	n := s.Get(0)
	if cs, ok := sc.scores[n]; ok {
		return cs
	}
	cs := &candidateScore{selection: s, score: float64(initializeNode(s, flags))}
	sc.scores[n] = cs
	sc.order = append(sc.order, n)
	return cs
}

// grabArticle runs the candidate-grabbing algorithm (spec.md §4.6–§4.9)
// under the given flags, returning the promoted article container, or
// nil if the document has no <body>. A body with nothing to score still
// yields a container (see selectTopCandidate).
func grabArticle(doc *goquery.Document, flags int, t *trace) *goquery.Selection {
	body := doc.Find("body")
	if body.Length() == 0 {
		return nil
	}

	removeUnlikelyCandidates(doc, flags)
	transformMisusedDivsIntoParagraphs(doc)

	sc := collectAndScoreNodes(doc, flags, t)
	topCS, ranked := selectTopCandidate(doc, sc)
	if topCS == nil {
		return nil
	}

	top := promoteTopCandidate(doc, topCS, sc, ranked, flags, t)

	topScore := 0.0
	if cs, ok := sc.get(top); ok {
		topScore = cs.score
	}

	article := createElement("div")
	article.SetAttr("id", "readability-page-1")
	article.SetAttr("class", "page")
	appendSiblings(article, top, topScore, sc, t)

	return article
}

// removeUnlikelyCandidates implements spec.md §4.6 step 2: when
// flagStripUnlikelys is active, drop elements whose class/id string
// matches rxUnlikelyCandidates (and not rxOkMaybeItsACandidate), aren't
// <html>/<body>/<a>, and have no ancestor <table> or <code>.
func removeUnlikelyCandidates(doc *goquery.Document, flags int) {
	if flags&flagStripUnlikelys == 0 {
		return
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return
	}

	haveByline := false
	cur := body
	for cur != nil && cur.Length() > 0 {
		next := getNextNode(cur, false)

		matchStr := matchString(cur)

		if !haveByline && rxByline.MatchString(matchStr) {
			if rel, ok := cur.Attr("rel"); ok && rel == "author" {
				haveByline = true
			} else if isValidByline(getInnerText(cur, true)) {
				haveByline = true
			}
		}

		tag := nodeName(cur)
		switch {
		case tag != "" && tag != "HTML" && tag != "BODY" && tag != "A" &&
			rxUnlikelyCandidates.MatchString(matchStr) &&
			!rxOkMaybeItsACandidate.MatchString(matchStr) &&
			!hasAncestorTag(cur, "table", -1, nil) &&
			!hasAncestorTag(cur, "code", -1, nil):
			next = removeAndGetNext(cur)
		case isEmptyStructuralElement(tag) && isElementWithoutContent(cur):
			next = removeAndGetNext(cur)
		}

		cur = next
	}
}

// isEmptyStructuralElement reports whether tag is one of the structural
// elements spec.md §4.6 step 3 discards outright when they carry no
// content: DIV, SECTION, HEADER, or a heading.
func isEmptyStructuralElement(tag string) bool {
	switch tag {
	case "DIV", "SECTION", "HEADER", "H1", "H2", "H3", "H4", "H5", "H6":
		return true
	}
	return false
}

// transformMisusedDivsIntoParagraphs implements spec.md §4.6 steps 3–6: a
// low-link-density <div> whose only element child is a <p> and which also
// holds a non-whitespace text node of its own (hasSinglePInside) is
// collapsed onto that <p>; otherwise a <div> with no block-level child
// (per divToPElems) becomes a <p>; a <div> with loose non-whitespace
// text-node children wraps each such child in its own inline, protected
// <p> so it participates in scoring without being stripped by
// cleanStyles.
func transformMisusedDivsIntoParagraphs(doc *goquery.Document) {
	doc.Find("div").Each(func(_ int, div *goquery.Selection) {
		if div.Length() == 0 {
			return
		}

		if hasSinglePInside(div) && getLinkDensity(div) < 0.25 {
			div.ReplaceWithSelection(div.Children().First())
			return
		}

		if !hasChildBlockElement(div) {
			setNodeTag(div, "p")
			return
		}

		div.Contents().Each(func(_ int, child *goquery.Selection) {
			n := child.Get(0)
			if n == nil || n.Type != html.TextNode || strings.TrimSpace(n.Data) == "" {
				return
			}
			p := createElement("p")
			p.SetText(n.Data)
			p.SetAttr("style", "display:inline;")
			p.SetAttr("class", "readability-styled")
			child.ReplaceWithSelection(p)
		})
	})
}

// collectAndScoreNodes implements spec.md §4.7: for each element in
// tagsToScore with at least 25 characters of inner text, compute a base
// content score from comma count and text length, then propagate a
// divided share of it to each of up to 3 ancestors.
func collectAndScoreNodes(doc *goquery.Document, flags int, t *trace) *scorer {
	sc := newScorer(t)

	doc.Find("body").Find("*").Each(func(_ int, el *goquery.Selection) {
		if !tagsToScore[nodeName(el)] {
			return
		}
		if el.Parent().Length() == 0 {
			return
		}

		innerText := getInnerText(el, true)
		if len(innerText) < 25 {
			return
		}

		ancestors := getNodeAncestors(el, 3)
		if len(ancestors) == 0 {
			return
		}

		contentScore := 1.0
		contentScore += float64(strings.Count(innerText, ",") + 1)
		contentScore += math.Min(math.Floor(float64(len(innerText))/100), 3)

		for level, ancestor := range ancestors {
			if nodeName(ancestor) == "" || ancestor.Parent().Length() == 0 {
				continue
			}
			cs := sc.ensure(ancestor, flags)

			var divider float64
			switch {
			case level == 0:
				divider = float64(scoreDividerBaseLevel)
			case level == 1:
				divider = 2
			default:
				divider = float64(level) * 3
			}

			cs.score += contentScore / divider
			t.record(ancestor, fmt.Sprintf("+%.2f (level %d)", contentScore/divider, level))
		}
	})

	return sc
}

// selectTopCandidate implements spec.md §4.8's candidate ranking: apply
// the link-density discount to every scored node, then rank by score and
// keep the top nTopCandidates. When nothing was scored at all (a body
// with no qualifying text), synthesize a container holding every body
// child so Parse still has something to evaluate.
func selectTopCandidate(doc *goquery.Document, sc *scorer) (*candidateScore, []*candidateScore) {
	for _, n := range sc.order {
		cs := sc.scores[n]
		cs.score *= 1 - getLinkDensity(cs.selection)
	}

	ranked := make([]*candidateScore, 0, len(sc.order))
	for _, n := range sc.order {
		ranked = append(ranked, sc.scores[n])
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > nTopCandidates {
		ranked = ranked[:nTopCandidates]
	}

	if len(ranked) == 0 {
		body := doc.Find("body")
		if body.Length() == 0 {
			return nil, nil
		}

		container := createElement("div")
		body.Contents().Each(func(_ int, c *goquery.Selection) {
			container.AppendSelection(c)
		})
		body.AppendSelection(container)

		cs := &candidateScore{selection: container, score: 0}
		return cs, []*candidateScore{cs}
	}

	return ranked[0], ranked
}

// initializeNode implements spec.md §4.6 step 1's base-by-tag score plus
// the class/id weight.
func initializeNode(s *goquery.Selection, flags int) int {
	score := 0
	switch nodeName(s) {
	case "DIV":
		score += 5
	case "PRE", "TD", "BLOCKQUOTE":
		score += 3
	case "ADDRESS", "OL", "UL", "DL", "DD", "DT", "LI", "FORM":
		score -= 3
	case "H1", "H2", "H3", "H4", "H5", "H6", "TH":
		score -= 5
	}
	score += getClassWeight(s, flags)
	return score
}
