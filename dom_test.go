package readability

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, htmlStr string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestGetLinkDensity(t *testing.T) {
	doc := mustDoc(t, `<body><p id="target">some text <a href="x">link text</a></p></body>`)
	p := doc.Find("#target")

	density := getLinkDensity(p)
	if density <= 0 || density >= 1 {
		t.Fatalf("expected density in (0,1), got %v", density)
	}
}

func TestGetLinkDensityNoText(t *testing.T) {
	doc := mustDoc(t, `<body><p id="target"></p></body>`)
	p := doc.Find("#target")
	if got := getLinkDensity(p); got != 0 {
		t.Errorf("getLinkDensity on empty node = %v, want 0", got)
	}
}

func TestHasAncestorTag(t *testing.T) {
	doc := mustDoc(t, `<body><table><tr><td><p id="target">x</p></td></tr></table></body>`)
	p := doc.Find("#target")

	if !hasAncestorTag(p, "table", -1, nil) {
		t.Error("expected to find table ancestor")
	}
	if hasAncestorTag(p, "table", 1, nil) {
		t.Error("expected table ancestor to be out of range at depth 1")
	}
	if hasAncestorTag(p, "section", -1, nil) {
		t.Error("did not expect a section ancestor")
	}
}

func TestIsElementWithoutContent(t *testing.T) {
	doc := mustDoc(t, `<body>
		<div id="empty"></div>
		<div id="br-only"><br/><hr/></div>
		<div id="has-text">hello</div>
	</body>`)

	if !isElementWithoutContent(doc.Find("#empty")) {
		t.Error("expected #empty to be without content")
	}
	if !isElementWithoutContent(doc.Find("#br-only")) {
		t.Error("expected #br-only to be without content")
	}
	if isElementWithoutContent(doc.Find("#has-text")) {
		t.Error("expected #has-text to have content")
	}
}

func TestGetClassWeight(t *testing.T) {
	doc := mustDoc(t, `<body>
		<div id="pos" class="article-body">x</div>
		<div id="neg" class="sidebar">x</div>
	</body>`)

	flags := flagWeightClasses
	if w := getClassWeight(doc.Find("#pos"), flags); w <= 0 {
		t.Errorf("expected positive weight, got %d", w)
	}
	if w := getClassWeight(doc.Find("#neg"), flags); w >= 0 {
		t.Errorf("expected negative weight, got %d", w)
	}
	if w := getClassWeight(doc.Find("#pos"), 0); w != 0 {
		t.Errorf("expected 0 weight when flagWeightClasses is off, got %d", w)
	}
}

func TestGetNextNodeDepthFirst(t *testing.T) {
	doc := mustDoc(t, `<body><div id="a"><p id="b">x</p></div><div id="c">y</div></body>`)
	a := doc.Find("#a")

	next := getNextNode(a, false)
	if nodeName(next) != "P" {
		t.Fatalf("expected first child P, got %s", nodeName(next))
	}

	next2 := getNextNode(a, true)
	if nodeName(next2) != "DIV" || func() string { id, _ := next2.Attr("id"); return id }() != "c" {
		t.Fatalf("expected sibling div#c, got %s", nodeName(next2))
	}
}

func TestAtoiOrOne(t *testing.T) {
	cases := map[string]int{"": 1, "0": 1, "abc": 1, "2": 2, "  3 ": 3}
	for in, want := range cases {
		if got := atoiOrOne(in); got != want {
			t.Errorf("atoiOrOne(%q) = %d, want %d", in, got, want)
		}
	}
}
