package readability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loremWords = `Lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor incididunt ut labore et dolore magna aliqua Ut enim ad minim veniam quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur Excepteur sint occaecat cupidatat non proident sunt in culpa qui officia deserunt mollit anim id est laborum `

func repeatParagraphs(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("<p>")
		b.WriteString(loremWords)
		b.WriteString("</p>\n")
	}
	return b.String()
}

func TestParseTitleAndBody(t *testing.T) {
	html := `<html><head><title>A Readable Article - Example Site</title></head>
	<body>
		<div class="article-body">
			<h1>A Readable Article</h1>
			` + repeatParagraphs(12) + `
		</div>
		<div class="sidebar">
			<ul><li><a href="/a">related 1</a></li><li><a href="/b">related 2</a></li></ul>
		</div>
	</body></html>`

	r, err := New("https://example.com/articles/one", html)
	require.NoError(t, err)

	article, ok := r.Parse()
	require.True(t, ok, "expected an article to be extracted")
	assert.NotEmpty(t, article.Content)
	assert.GreaterOrEqual(t, article.Length, wordThreshold)
	assert.Contains(t, article.TextContent, "Lorem ipsum")
}

func TestParseDescriptionPrecedence(t *testing.T) {
	html := `<html><head>
		<title>Some Article</title>
		<meta property="og:description" content="OG description wins">
		<meta name="twitter:description" content="Twitter description loses">
		<meta name="description" content="Plain description loses too">
	</head>
	<body><div>` + repeatParagraphs(10) + `</div></body></html>`

	r, err := New("https://example.com/a", html)
	require.NoError(t, err)

	article, ok := r.Parse()
	require.True(t, ok)
	assert.Equal(t, "OG description wins", article.Excerpt)
}

func TestParseAuthorByline(t *testing.T) {
	html := `<html><head>
		<title>Some Article</title>
		<meta name="author" content="Jane Doe">
	</head>
	<body><div>` + repeatParagraphs(10) + `</div></body></html>`

	r, err := New("https://example.com/a", html)
	require.NoError(t, err)

	article, ok := r.Parse()
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", article.Byline)
}

func TestParseAbsolutizesRelativeAnchors(t *testing.T) {
	html := `<html><head><title>x</title></head>
	<body><div>
		<p>Some text with a <a href="/relative/path">relative link</a> inside it.</p>
		` + repeatParagraphs(10) + `
	</div></body></html>`

	r, err := New("https://example.com/base/", html)
	require.NoError(t, err)

	article, ok := r.Parse()
	require.True(t, ok)
	assert.Contains(t, article.Content, `href="https://example.com/relative/path"`)
}

func TestParseCollapsesBrRuns(t *testing.T) {
	html := `<html><head><title>x</title></head>
	<body>
		<div>Line one<br><br>Line two continues with more descriptive sentence content here.` +
		repeatParagraphs(10) + `</div>
	</body></html>`

	r, err := New("https://example.com/a", html)
	require.NoError(t, err)

	article, ok := r.Parse()
	require.True(t, ok)
	assert.NotContains(t, article.Content, "<br/><br/>")
	assert.NotContains(t, article.Content, "<br><br>")
}

func TestParseEmptyBodyYieldsNoArticle(t *testing.T) {
	html := `<html><head><title>Nothing Here</title></head><body></body></html>`

	r, err := New("https://example.com/empty", html)
	require.NoError(t, err)

	_, ok := r.Parse()
	assert.False(t, ok, "an empty body should yield no article")
}

func TestParseBrOnlyBodyYieldsNoArticle(t *testing.T) {
	html := `<html><head><title>x</title></head><body><br><br><br></body></html>`

	r, err := New("https://example.com/br-only", html)
	require.NoError(t, err)

	_, ok := r.Parse()
	assert.False(t, ok)
}

func TestNewRejectsInvalidURI(t *testing.T) {
	_, err := New("not-a-valid-uri", "<html></html>")
	assert.Error(t, err)
}

func TestTraceRecordsCandidates(t *testing.T) {
	html := `<html><head><title>x</title></head><body><div>` + repeatParagraphs(10) + `</div></body></html>`

	r, err := New("https://example.com/a", html)
	require.NoError(t, err)
	r.EnableTrace()

	_, ok := r.Parse()
	require.True(t, ok)
	assert.NotEmpty(t, r.Trace())
}

func TestTraceNilWhenDisabled(t *testing.T) {
	html := `<html><head><title>x</title></head><body><div>` + repeatParagraphs(10) + `</div></body></html>`

	r, err := New("https://example.com/a", html)
	require.NoError(t, err)

	_, ok := r.Parse()
	require.True(t, ok)
	assert.Nil(t, r.Trace())
}
