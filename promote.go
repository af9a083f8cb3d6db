package readability

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// promoteTopCandidate implements spec.md §4.8's ancestor promotion: when
// several of the ranked candidates share a common ancestor (at least
// minimumTopCandidates of them), that ancestor becomes the new top
// candidate. The resulting top candidate then climbs its ancestor chain
// while each parent's score stays within a factor of 3 of the child's,
// and a lone only-child wrapper collapses onto its parent.
func promoteTopCandidate(doc *goquery.Document, top *candidateScore, sc *scorer, ranked []*candidateScore, flags int, t *trace) *goquery.Selection {
	topNode := top.selection

	if alt := findAlternativeAncestor(ranked); alt != nil {
		t.record(alt, "promoted: shared ancestor of top candidates")
		topNode = alt
	}

	topNode = climbWhileScoreHolds(topNode, sc, flags, t)

	for {
		parent := topNode.Parent()
		if nodeName(parent) == "BODY" || parent.Length() == 0 {
			break
		}
		if parent.Children().Length() != 1 {
			break
		}
		topNode = parent
	}

	if _, ok := sc.get(topNode); !ok {
		sc.ensure(topNode, flags)
	}

	return topNode
}

// findAlternativeAncestor looks for a single ancestor shared by at least
// minimumTopCandidates of the ranked candidates (each needing a score at
// least 75% of the top candidate's), per spec.md §4.8.
func findAlternativeAncestor(ranked []*candidateScore) *goquery.Selection {
	if len(ranked) < minimumTopCandidates {
		return nil
	}

	top := ranked[0]
	threshold := top.score * 0.75

	counts := make(map[*html.Node]int)
	var order []*html.Node
	firstSeen := make(map[*html.Node]*goquery.Selection)

	for _, cs := range ranked {
		if cs.score < threshold {
			continue
		}
		for _, anc := range getNodeAncestors(cs.selection, 0) {
			n := anc.Get(0)
			if n == nil {
				continue
			}
			if _, seen := firstSeen[n]; !seen {
				firstSeen[n] = anc
				order = append(order, n)
			}
			counts[n]++
		}
	}

	for _, n := range order {
		if counts[n] >= minimumTopCandidates {
			return firstSeen[n]
		}
	}
	return nil
}

// climbWhileScoreHolds walks top's ancestor chain upward so long as the
// parent already has a score and that score is at least a third of the
// running lastScore, per spec.md §4.8's threshold = lastScore/3 rule. It
// stops at the first unscored parent.
func climbWhileScoreHolds(top *goquery.Selection, sc *scorer, flags int, t *trace) *goquery.Selection {
	cs, ok := sc.get(top)
	lastScore := 0.0
	if ok {
		lastScore = cs.score
	}

	for {
		parent := top.Parent()
		if parent.Length() == 0 || nodeName(parent) == "BODY" {
			break
		}

		parentCS, ok := sc.get(parent)
		if !ok {
			break
		}

		threshold := lastScore / 3
		if parentCS.score < threshold {
			break
		}

		t.record(parent, "climbed ancestor chain")
		lastScore = parentCS.score
		top = parent
	}

	return top
}
