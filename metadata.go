package readability

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"golang.org/x/text/unicode/norm"
)

// metadata holds everything the metadata extractor gathers from <meta>
// tags, JSON-LD, and title/favicon/image heuristics before the scorer runs.
type metadata struct {
	title         string
	byline        string
	excerpt       string
	siteName      string
	publishedTime time.Time
	faviconURL    string
	imageURL      string
}

// jsonLDArticle is the subset of the schema.org Article shape this module
// reads out of <script type="application/ld+json">.
type jsonLDArticle struct {
	Context  string `json:"@context"`
	Type     string `json:"@type"`
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Author   struct {
		Name string `json:"name"`
	} `json:"author"`
	Description string `json:"description"`
	Publisher   struct {
		Name string `json:"name"`
	} `json:"publisher"`
	DatePublished string `json:"datePublished"`
	DateCreated   string `json:"dateCreated"`
	DateModified  string `json:"dateModified"`
}

// grabMetadata runs the metadata extractor (spec.md §4.4 plus the
// JSON-LD/site-name/published-time supplements in spec_full.md §5).
func grabMetadata(doc *goquery.Document, abs *absolutizer) metadata {
	values := scanMetaTags(doc)
	jsonLD := scanJSONLD(doc)

	md := metadata{}

	md.title = getArticleTitle(doc)
	if md.title == "" {
		if v := values["ogtitle"]; v != "" {
			md.title = v
		} else if v := values["twittertitle"]; v != "" {
			md.title = v
		}
	}
	if jsonLD.title != "" {
		md.title = jsonLD.title
	}

	if jsonLD.byline != "" {
		md.byline = jsonLD.byline
	} else if v, ok := values["author"]; ok {
		md.byline = v
	}

	switch {
	case jsonLD.excerpt != "":
		md.excerpt = jsonLD.excerpt
	case values["ogdescription"] != "":
		md.excerpt = values["ogdescription"]
	case values["twitterdescription"] != "":
		md.excerpt = values["twitterdescription"]
	case values["description"] != "":
		md.excerpt = values["description"]
	}

	if jsonLD.siteName != "" {
		md.siteName = jsonLD.siteName
	} else {
		md.siteName = values["ogsite_name"]
	}

	if jsonLD.date != "" {
		if t, err := dateparse.ParseAny(jsonLD.date); err == nil {
			md.publishedTime = t
		}
	} else if v := values["articlepublished_time"]; v != "" {
		if t, err := dateparse.ParseAny(v); err == nil {
			md.publishedTime = t
		}
	}

	md.faviconURL = abs.absolutize(getArticleFavicon(doc))
	md.imageURL = abs.absolutize(getArticleImage(doc))

	md.title = innerTrim(md.title)
	md.byline = innerTrim(md.byline)
	md.excerpt = innerTrim(md.excerpt)

	return md
}

// scanMetaTags implements spec.md §4.4's name/property pattern matching:
// for every <meta>, normalize a matching name/property to a lowercase,
// whitespace-stripped key and store key -> content.trim (last write wins).
func scanMetaTags(doc *goquery.Document) map[string]string {
	values := make(map[string]string)

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		property, _ := s.Attr("property")
		content, ok := s.Attr("content")
		if !ok {
			return
		}
		content = strings.TrimSpace(content)

		if name != "" && rxMetaNamePattern.MatchString(name) {
			values[normalizeMetaKey(name)] = content
		}
		if property != "" && rxMetaPropertyPattern.MatchString(property) {
			values[normalizeMetaKey(property)] = content
		}
		if name == "author" || property == "author" {
			values["author"] = content
		}
		// Supplements beyond spec.md's name/title/description patterns
		// (spec_full.md §5.3/§5.4): site name and published time.
		if property == "og:site_name" {
			values["ogsite_name"] = content
		}
		if property == "article:published_time" || name == "article:published_time" {
			values["articlepublished_time"] = content
		}
	})

	return values
}

// normalizeMetaKey lowercases a meta name/property and strips whitespace
// and colons, so "og:Description" and "twitter : description" both become
// a single lookup key ("ogdescription", "twitterdescription").
func normalizeMetaKey(raw string) string {
	raw = strings.Join(strings.Fields(raw), "")
	raw = strings.ReplaceAll(raw, ":", "")
	return strings.ToLower(raw)
}

type jsonLDMetadata struct {
	title, byline, excerpt, siteName, date string
}

// scanJSONLD reads schema.org Article metadata out of the first
// <script type="application/ld+json"> block whose @type matches an
// article-like schema.org type (spec_full.md §5.2).
func scanJSONLD(doc *goquery.Document) jsonLDMetadata {
	var out jsonLDMetadata

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var article jsonLDArticle
		if err := json.Unmarshal([]byte(s.Text()), &article); err != nil {
			return true // keep looking
		}
		if !strings.Contains(article.Context, "schema.org") {
			return true
		}
		if !rxJSONLDArticleTypes.MatchString(article.Type) {
			return true
		}

		if article.Headline != "" {
			out.title = article.Headline
		} else {
			out.title = article.Name
		}
		out.byline = article.Author.Name
		out.excerpt = article.Description
		out.siteName = article.Publisher.Name
		switch {
		case article.DatePublished != "":
			out.date = article.DatePublished
		case article.DateCreated != "":
			out.date = article.DateCreated
		case article.DateModified != "":
			out.date = article.DateModified
		}
		return false // first match wins
	})

	return out
}

// getArticleTitle implements spec.md §4.4's title heuristic.
func getArticleTitle(doc *goquery.Document) string {
	origTitle := strings.TrimSpace(doc.Find("title").First().Text())
	curTitle := origTitle

	titleHadHierarchicalSeparators := false

	if rxTitleSeparator.MatchString(curTitle) {
		titleHadHierarchicalSeparators = rxTitleHierSepKind.MatchString(curTitle)
		curTitle = rxTitleTrimLast.ReplaceAllString(origTitle, "$1")

		if wordCount(curTitle) < 3 {
			curTitle = rxTitleTrimFirst.ReplaceAllString(origTitle, "$1")
		}
	} else if strings.Contains(curTitle, ": ") {
		matchFound := false
		doc.Find("h1, h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.TrimSpace(s.Text()) == curTitle {
				matchFound = true
				return false
			}
			return true
		})

		if !matchFound {
			idx := strings.LastIndex(origTitle, ":")
			if idx != -1 {
				curTitle = strings.TrimSpace(origTitle[idx+1:])
				if wordCount(curTitle) < 3 {
					idx = strings.Index(origTitle, ":")
					curTitle = strings.TrimSpace(origTitle[idx+1:])
				}
			}
		}
	} else if len(curTitle) > 150 || len(curTitle) < 15 {
		h1s := doc.Find("h1")
		if h1s.Length() == 1 {
			curTitle = strings.TrimSpace(h1s.Text())
		}
	}

	curTitle = strings.TrimSpace(rxNormalize.ReplaceAllString(curTitle, " "))

	strippedWordCount := wordCount(rxTitleSeparators.ReplaceAllString(origTitle, ""))
	if wordCount(curTitle) <= 4 && (!titleHadHierarchicalSeparators || wordCount(curTitle) != strippedWordCount-1) {
		curTitle = origTitle
	}

	return curTitle
}

// wordCount splits on runs of whitespace.
func wordCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(strings.Fields(s))
}

// getArticleFavicon implements spec.md §4.4's favicon fallback chain.
func getArticleFavicon(doc *goquery.Document) string {
	root := doc.Selection.Get(0)
	if root == nil {
		return ""
	}
	for _, sel := range faviconSelectors {
		if v := firstAttr(root, sel, "href"); v != "" {
			return v
		}
	}
	return ""
}

// getArticleImage implements spec.md §4.4's image fallback chain.
func getArticleImage(doc *goquery.Document) string {
	root := doc.Selection.Get(0)
	if root == nil {
		return ""
	}
	for _, entry := range imageSelectors {
		if v := firstAttr(root, entry.sel, entry.attribute); v != "" {
			return v
		}
	}
	return ""
}

// innerTrim collapses internal whitespace (spaces/tabs/newlines) to single
// spaces and trims the ends, after normalizing to NFC so visually
// identical titles compare equal regardless of Unicode composition.
// Idempotent: innerTrim(innerTrim(s)) == innerTrim(s).
func innerTrim(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// isValidByline reports whether a candidate byline's trimmed length is in
// (0, 100), per spec.md §4.6 step 1.
func isValidByline(s string) bool {
	n := len(strings.TrimSpace(s))
	return n > 0 && n < 100
}
