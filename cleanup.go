package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// prepArticle implements spec.md §4.10's article preparer: style
// stripping, data-table marking, conditional cleanup, header/extra-node
// removal, and the stray-<br>-before-<p> cleanup, plus the single-cell
// table collapse and <link>/<aside> removal supplements (spec_full.md
// §5.5–§5.6).
func prepArticle(article *goquery.Selection, flags int) {
	cleanStyles(article)
	markDataTables(article)
	fixLazyImages(article)

	cleanConditionally(article, "form", flags)
	cleanConditionally(article, "fieldset", flags)
	clean(article, "object")
	clean(article, "embed")
	clean(article, "footer")
	clean(article, "link")
	clean(article, "aside")

	cleanMatchedNodes(article)

	clean(article, "iframe")
	clean(article, "input")
	clean(article, "textarea")
	clean(article, "select")
	clean(article, "button")

	cleanHeaders(article, flags)

	cleanConditionally(article, "table", flags)
	cleanConditionally(article, "ul", flags)
	cleanConditionally(article, "div", flags)

	removeExtraParagraphs(article)
	removeBrsBeforeParagraphs(article)
	collapseSingleCellTables(article)

	article.Find("p").Each(func(_ int, p *goquery.Selection) {
		next := p.Next()
		if nodeName(next) == "BR" {
			next.Remove()
		}
	})
}

// cleanStyles implements spec.md §4.10's clean-styles: strips the
// presentational attribute list from every element, and additionally
// width/height from deprecatedSizeAttributeElems, skipping <svg> entirely
// and any element already marked readability-styled.
func cleanStyles(root *goquery.Selection) {
	root.Find("*").Each(func(_ int, s *goquery.Selection) {
		if s.Length() == 0 {
			return
		}
		if nodeName(s) == "SVG" || hasAncestorTag(s, "svg", -1, nil) {
			return
		}
		if class, ok := s.Attr("class"); ok && strings.Contains(class, "readability-styled") {
			return
		}

		for _, attr := range presentationalAttributes {
			s.RemoveAttr(attr)
		}
		if deprecatedSizeAttributeElems[nodeName(s)] {
			s.RemoveAttr("width")
			s.RemoveAttr("height")
		}
	})
}

// markDataTables implements spec.md §4.10's markDataTables: a <table>
// with role="presentation" is explicitly a layout table; otherwise a
// <table> with a summary, a non-empty caption, or any col/colgroup/tfoot/
// thead/th is a data table, a <table> holding a nested table is a layout
// table, and the rest are data tables when they have at least 10 rows,
// more than 4 columns, or more than 10 cells. Data tables gain
// data-readability-table="true" so cleanConditionally spares them.
func markDataTables(root *goquery.Selection) {
	root.Find("table").Each(func(_ int, table *goquery.Selection) {
		if role, ok := table.Attr("role"); ok && role == "presentation" {
			return
		}
		if summary, ok := table.Attr("summary"); ok && summary != "" {
			table.SetAttr("data-readability-table", "true")
			return
		}
		if table.Find("caption").Length() > 0 && table.Find("caption").Text() != "" {
			table.SetAttr("data-readability-table", "true")
			return
		}
		if table.Find("col, colgroup, tfoot, thead, th").Length() > 0 {
			table.SetAttr("data-readability-table", "true")
			return
		}
		if table.Find("> table, > * > table").Length() > 0 {
			return
		}

		rows, columns := getRowAndColumnCount(table)
		if rows >= 10 || columns > 4 {
			table.SetAttr("data-readability-table", "true")
			return
		}
		if rows*columns > 10 {
			table.SetAttr("data-readability-table", "true")
		}
	})
}

// getRowAndColumnCount sums rowspan/colspan across every row to estimate
// the table's true dimensions (spec.md §4.10).
func getRowAndColumnCount(table *goquery.Selection) (rows, columns int) {
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		rowSpan, _ := tr.Attr("rowspan")
		rows += atoiOrOne(rowSpan) - 1
		rows++

		colsInRow := 0
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			colSpan, _ := td.Attr("colspan")
			colsInRow += atoiOrOne(colSpan)
		})
		if colsInRow > columns {
			columns = colsInRow
		}
	})
	return rows, columns
}

func isDataTable(table *goquery.Selection) bool {
	v, _ := table.Attr("data-readability-table")
	return v == "true"
}

// cleanConditionally implements spec.md §4.10's removal-condition
// formula: an element of tag is stripped when it isn't a marked data
// table and (weight < 0, or its text/comma/image/embed/link-density
// profile looks decorative rather than prose) — unless flagCleanConditionally
// is inactive, in which case nothing is removed by this pass.
func cleanConditionally(root *goquery.Selection, tag string, flags int) {
	if flags&flagCleanConditionally == 0 {
		return
	}

	var toRemove []*goquery.Selection
	root.Find(tag).Each(func(_ int, s *goquery.Selection) {
		if s.Length() == 0 {
			return
		}
		if (nodeName(s) == "TABLE" || nodeName(s) == "UL") && isDataTable(s) {
			return
		}
		if hasAncestorTag(s, "table", -1, isDataTable) {
			return
		}

		weight := getClassWeight(s, flags)
		if weight < 0 {
			toRemove = append(toRemove, s)
			return
		}

		if getCharCount(s, ",") < 10 {
			p := s.Find("p").Length()
			img := s.Find("img").Length()
			li := s.Find("li").Length() - 100
			input := s.Find("input").Length()

			embedCount := 0
			s.Find("embed").Each(func(_ int, e *goquery.Selection) {
				if !rxVideos.MatchString(hrefOrSrc(e)) {
					embedCount++
				}
			})

			linkDensity := getLinkDensity(s)
			contentLength := len(getInnerText(s, true))

			haveToRemove :=
				(img > 1 && float64(p)/float64(img) < 0.5 && !hasAncestorTag(s, "figure", 3, nil)) ||
					(!isList(nodeName(s)) && li > p) ||
					(input > p/3) ||
					(!isList(nodeName(s)) && contentLength < 25 && (img == 0 || img > 2) && !hasAncestorTag(s, "figure", 3, nil)) ||
					(weight < 25 && linkDensity > 0.2) ||
					(weight >= 25 && linkDensity > 0.5) ||
					((embedCount == 1 && contentLength < 75) || embedCount > 1)

			if haveToRemove {
				toRemove = append(toRemove, s)
			}
		}
	})

	for _, s := range toRemove {
		if s.Length() > 0 && s.Parent().Length() > 0 {
			s.Remove()
		}
	}
}

func isList(tag string) bool {
	return tag == "UL" || tag == "OL"
}

func hrefOrSrc(s *goquery.Selection) string {
	if v, ok := s.Attr("src"); ok {
		return v
	}
	v, _ := s.Attr("href")
	return v
}

// clean removes every element of tag, except <object>/<embed> that embed
// an allowed video per rxVideos (spec.md §4.10's "clean").
func clean(root *goquery.Selection, tag string) {
	var toRemove []*goquery.Selection
	root.Find(tag).Each(func(_ int, s *goquery.Selection) {
		if tag == "object" || tag == "embed" {
			html, err := s.Html()
			if err == nil && rxVideos.MatchString(html) {
				return
			}
			if rxVideos.MatchString(hrefOrSrc(s)) {
				return
			}
		}
		toRemove = append(toRemove, s)
	})
	for _, s := range toRemove {
		if s.Length() > 0 && s.Parent().Length() > 0 {
			s.Remove()
		}
	}
}

// cleanMatchedNodes removes share-widget elements: any descendant whose
// class/id matches rxShareElements and whose text is under 1,000 chars.
func cleanMatchedNodes(article *goquery.Selection) {
	var toRemove []*goquery.Selection
	article.Find("*").Each(func(_ int, s *goquery.Selection) {
		if s.Length() == 0 {
			return
		}
		matchStr := matchString(s)
		if rxShareElements.MatchString(matchStr) && len(getInnerText(s, true)) < 1000 {
			toRemove = append(toRemove, s)
		}
	})
	for _, s := range toRemove {
		if s.Length() > 0 && s.Parent().Length() > 0 {
			s.Remove()
		}
	}
}

// cleanHeaders removes h1s outright and any h2 whose class weight is
// negative, per spec.md §4.10.
func cleanHeaders(root *goquery.Selection, flags int) {
	var toRemove []*goquery.Selection
	root.Find("h1, h2").Each(func(_ int, h *goquery.Selection) {
		if nodeName(h) == "H1" {
			toRemove = append(toRemove, h)
			return
		}
		if getClassWeight(h, flags) < 0 {
			toRemove = append(toRemove, h)
		}
	})
	for _, s := range toRemove {
		if s.Length() > 0 && s.Parent().Length() > 0 {
			s.Remove()
		}
	}
}

// removeExtraParagraphs drops <p> elements with no image/embed/object/
// iframe and no text at all, per spec.md §4.10.
func removeExtraParagraphs(root *goquery.Selection) {
	var toRemove []*goquery.Selection
	root.Find("p").Each(func(_ int, p *goquery.Selection) {
		imgCount := p.Find("img").Length()
		embedCount := p.Find("embed").Length()
		objectCount := p.Find("object").Length()
		iframeCount := p.Find("iframe").Length()
		total := imgCount + embedCount + objectCount + iframeCount
		if total == 0 && strings.TrimSpace(getInnerText(p, false)) == "" {
			toRemove = append(toRemove, p)
		}
	})
	for _, s := range toRemove {
		if s.Length() > 0 && s.Parent().Length() > 0 {
			s.Remove()
		}
	}
}

// removeBrsBeforeParagraphs drops any <br> whose next non-whitespace
// sibling is a <p>, per spec.md §4.10.
func removeBrsBeforeParagraphs(root *goquery.Selection) {
	var toRemove []*goquery.Selection
	root.Find("br").Each(func(_ int, br *goquery.Selection) {
		next := nextNonWhitespaceElement(wrapNode(br.Get(0).NextSibling))
		if next != nil && nodeName(next) == "P" {
			toRemove = append(toRemove, br)
		}
	})
	for _, s := range toRemove {
		if s.Length() > 0 && s.Parent().Length() > 0 {
			s.Remove()
		}
	}
}

// collapseSingleCellTables implements the single-cell <table> collapse
// supplement (spec_full.md §5.5): a table with exactly one cell and no
// data-readability-table marking is replaced by that cell's contents,
// retagged to <div> unless it's already a block element in
// alterToDivExceptions.
func collapseSingleCellTables(root *goquery.Selection) {
	root.Find("table").Each(func(_ int, table *goquery.Selection) {
		if table.Length() == 0 || table.Parent().Length() == 0 {
			return
		}
		if isDataTable(table) {
			return
		}

		cell := soleCell(table)
		if cell == nil {
			return
		}

		if alterToDivExceptions[nodeName(cell)] {
			table.ReplaceWithSelection(cell)
		} else {
			table.ReplaceWithSelection(setNodeTag(cell, "div"))
		}
	})
}

// soleCell returns table's single <td>/<th> if it contains exactly one,
// across all rows, or nil otherwise.
func soleCell(table *goquery.Selection) *goquery.Selection {
	cells := table.Find("td, th")
	if cells.Length() != 1 {
		return nil
	}
	return cells.First()
}
