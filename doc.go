// Package readability extracts the principal readable article from an
// arbitrary web page's HTML: a cleaned HTML fragment of the article body,
// plain text, a title, a byline, an excerpt, a favicon URL, and a
// representative image URL.
//
// It is a from-scratch Go implementation of the Mozilla Readability.js
// algorithm: a multi-pass DOM traversal that normalizes ad-hoc markup,
// scores candidate subtrees by readability heuristics, promotes a top
// candidate up its ancestor chain, fuses related sibling content, and
// conditionally prunes the result.
//
// Usage:
//
//	r, err := readability.New("https://example.com/article", rawHTML)
//	if err != nil {
//		// malformed uri
//	}
//	article, ok := r.Parse()
//	if !ok {
//		// no article could be recovered
//	}
//	fmt.Println(article.Title)
package readability
