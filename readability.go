package readability

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Readability extracts one Article from one page's HTML. A value is
// single-use: construct one per page via New, then call Parse once.
type Readability struct {
	uri     string
	rawHTML string
	abs     *absolutizer

	traceEnabled bool
	trace        *trace
}

// New builds a Readability for the page at uri with body rawHTML. uri
// must carry a scheme and host — it anchors every relative link, image,
// and favicon reference resolved during Parse.
func New(uri, rawHTML string) (*Readability, error) {
	abs, err := newAbsolutizer(uri)
	if err != nil {
		return nil, err
	}
	return &Readability{uri: uri, rawHTML: rawHTML, abs: abs}, nil
}

// EnableTrace turns on candidate-scoring diagnostics for the next Parse
// call; Trace then returns one line per recorded scoring, promotion, or
// sibling-append event.
func (r *Readability) EnableTrace() {
	r.traceEnabled = true
}

// Trace returns the diagnostic path and note (a score delta, or the
// promotion/append step) recorded across every attempt of the last Parse
// call, or nil if tracing was never enabled (spec_full.md §5.7).
func (r *Readability) Trace() []string {
	if r.trace == nil {
		return nil
	}
	return r.trace.entries
}

// attempt records one flag-degradation pass over the document, so the
// best (longest) attempt can be recovered even when no pass clears
// wordThreshold (spec.md §4.12).
type attempt struct {
	container *goquery.Selection
	doc       *goquery.Document
	textLen   int
}

// Parse runs the full extraction pipeline (spec.md §4.1–§4.12): DOM
// normalization, candidate scoring and promotion, sibling aggregation,
// conditional cleanup, metadata extraction, and URI/class postprocessing.
// It returns (nil, false) when no article-shaped content could be
// recovered at all — an empty body, a script-only page, or a malformed
// HTML document.
func (r *Readability) Parse() (*Article, bool) {
	if r.traceEnabled {
		r.trace = &trace{}
	}

	flags := flagStripUnlikelys | flagWeightClasses | flagCleanConditionally
	var attempts []attempt

	for {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.rawHTML))
		if err != nil || doc.Selection.Length() == 0 {
			return r.bestOf(attempts)
		}

		removeScripts(doc)
		prepDocument(doc)

		container := grabArticle(doc, flags, r.trace)
		if container != nil {
			prepArticle(container, flags)
			textLen := len(getInnerText(container, true))
			attempts = append(attempts, attempt{container: container, doc: doc, textLen: textLen})

			if textLen >= wordThreshold {
				return r.finish(doc, container)
			}
		}

		switch {
		case flags&flagStripUnlikelys != 0:
			flags &^= flagStripUnlikelys
		case flags&flagWeightClasses != 0:
			flags &^= flagWeightClasses
		case flags&flagCleanConditionally != 0:
			flags &^= flagCleanConditionally
		default:
			return r.bestOf(attempts)
		}
	}
}

// bestOf picks the longest attempt seen across every degradation level,
// per spec.md §4.12's final fallback. Returns (nil, false) when nothing
// was ever scored.
func (r *Readability) bestOf(attempts []attempt) (*Article, bool) {
	var best *attempt
	for i := range attempts {
		if best == nil || attempts[i].textLen > best.textLen {
			best = &attempts[i]
		}
	}
	if best == nil || best.textLen == 0 {
		return nil, false
	}
	return r.finish(best.doc, best.container)
}

// finish runs the postprocessing stages (URI fixup, id/class cleanup,
// metadata extraction) on a chosen container and assembles the Article.
func (r *Readability) finish(doc *goquery.Document, container *goquery.Selection) (*Article, bool) {
	// Metadata is read from a fresh parse of the raw HTML: doc has lost its
	// <script> elements (and with them any JSON-LD) and the article content
	// moved into container.
	metaDoc := doc
	if raw, err := goquery.NewDocumentFromReader(strings.NewReader(r.rawHTML)); err == nil {
		metaDoc = raw
	}
	md := grabMetadata(metaDoc, r.abs)

	fixRelativeURIs(container, r.abs)
	cleanIdsAndClasses(container)

	content, err := goquery.OuterHtml(container)
	if err != nil {
		content = ""
	}

	textContent := getInnerText(container, true)

	excerpt := md.excerpt
	if excerpt == "" {
		excerpt = innerTrim(firstParagraphText(container))
	}

	imageURL := md.imageURL
	if imageURL == "" {
		imageURL = firstImageSrc(container, r.abs)
	}

	article := &Article{
		URI:           r.uri,
		Title:         md.title,
		Byline:        md.byline,
		SiteName:      md.siteName,
		PublishedTime: md.publishedTime,
		Content:       content,
		TextContent:   textContent,
		Length:        utf8.RuneCountInString(textContent),
		Excerpt:       excerpt,
		FaviconURL:    md.faviconURL,
		ImageURL:      imageURL,
	}
	return article, true
}

// firstParagraphText returns the trimmed text of container's first <p>,
// used as the excerpt fallback when no metadata description exists.
func firstParagraphText(container *goquery.Selection) string {
	p := container.Find("p").First()
	if p.Length() == 0 {
		return ""
	}
	return getInnerText(p, true)
}

// firstImageSrc returns the absolutized src of container's first <img>,
// used as the image-URL fallback when no metadata image exists.
func firstImageSrc(container *goquery.Selection, abs *absolutizer) string {
	img := container.Find("img").First()
	if img.Length() == 0 {
		return ""
	}
	src, ok := img.Attr("src")
	if !ok {
		return ""
	}
	return abs.absolutize(src)
}
