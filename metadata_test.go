package readability

import (
	"strings"
	"testing"
)

func TestGetArticleTitleSeparator(t *testing.T) {
	// The trimmed portion before the separator has 5 words, clearing the
	// <=4-word reversion threshold regardless of separator kind.
	doc := mustDoc(t, `<html><head><title>Breaking News About The Event | Example News Site</title></head><body></body></html>`)
	got := getArticleTitle(doc)
	want := "Breaking News About The Event"
	if got != want {
		t.Errorf("getArticleTitle = %q, want %q", got, want)
	}
}

func TestGetArticleTitleShortTrimReverts(t *testing.T) {
	// A short (<=4-word) trim over a non-hierarchical separator reverts
	// to the full original title.
	doc := mustDoc(t, `<html><head><title>My Great Post - My Blog</title></head><body></body></html>`)
	got := getArticleTitle(doc)
	want := "My Great Post - My Blog"
	if got != want {
		t.Errorf("getArticleTitle = %q, want %q", got, want)
	}
}

func TestGetArticleTitleColonBranch(t *testing.T) {
	doc := mustDoc(t, `<html><head><title>Category: A Detailed Report On Things</title></head><body></body></html>`)
	got := getArticleTitle(doc)
	if got != "A Detailed Report On Things" {
		t.Errorf("getArticleTitle = %q, want %q", got, "A Detailed Report On Things")
	}
}

func TestGetArticleTitleH1Fallback(t *testing.T) {
	doc := mustDoc(t, `<html><head><title>x</title></head><body><h1>The Actual Headline Of The Article</h1></body></html>`)
	got := getArticleTitle(doc)
	if got != "The Actual Headline Of The Article" {
		t.Errorf("getArticleTitle = %q, want %q", got, "The Actual Headline Of The Article")
	}
}

func TestScanMetaTagsNormalizesKeys(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:description" content="An og description">
		<meta name="twitter:title" content="A twitter title">
		<meta name="author" content="Jane Doe">
	</head><body></body></html>`)

	values := scanMetaTags(doc)
	if values["ogdescription"] != "An og description" {
		t.Errorf("ogdescription = %q", values["ogdescription"])
	}
	if values["twittertitle"] != "A twitter title" {
		t.Errorf("twittertitle = %q", values["twittertitle"])
	}
	if values["author"] != "Jane Doe" {
		t.Errorf("author = %q", values["author"])
	}
}

func TestScanJSONLDArticle(t *testing.T) {
	doc := mustDoc(t, `<html><head>
	<script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@type": "NewsArticle",
		"headline": "Breaking News Headline",
		"author": {"name": "John Smith"},
		"description": "A description of the news",
		"publisher": {"name": "The Daily Paper"},
		"datePublished": "2024-05-01T12:00:00Z"
	}
	</script>
	</head><body></body></html>`)

	got := scanJSONLD(doc)
	if got.title != "Breaking News Headline" {
		t.Errorf("title = %q", got.title)
	}
	if got.byline != "John Smith" {
		t.Errorf("byline = %q", got.byline)
	}
	if got.siteName != "The Daily Paper" {
		t.Errorf("siteName = %q", got.siteName)
	}
	if got.date != "2024-05-01T12:00:00Z" {
		t.Errorf("date = %q", got.date)
	}
}

func TestIsValidByline(t *testing.T) {
	if isValidByline("") {
		t.Error("empty byline should be invalid")
	}
	if isValidByline(strings.Repeat("x", 100)) {
		t.Error("100-char byline should be invalid")
	}
	if !isValidByline("Jane Doe") {
		t.Error("normal byline should be valid")
	}
}

func TestInnerTrimCollapsesWhitespace(t *testing.T) {
	got := innerTrim("  hello   \n\t world  ")
	if got != "hello world" {
		t.Errorf("innerTrim = %q", got)
	}
}

func TestGetArticleFaviconFallback(t *testing.T) {
	doc := mustDoc(t, `<html><head><link rel="icon" href="/favicon.ico"></head><body></body></html>`)
	got := getArticleFavicon(doc)
	if got != "/favicon.ico" {
		t.Errorf("getArticleFavicon = %q", got)
	}
}

func TestGetArticleImageFallbackChain(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta name="twitter:image" content="/twitter.png">
	</head><body></body></html>`)
	got := getArticleImage(doc)
	if got != "/twitter.png" {
		t.Errorf("getArticleImage = %q", got)
	}
}
