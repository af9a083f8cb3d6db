package readability

import (
	"net/url"
	"strings"
)

// absolutizer resolves relative references against a parsed base URI,
// using the exact branch order of spec.md §4.5.
type absolutizer struct {
	scheme    string
	prePath   string // scheme://authority
	pathBase  string // prePath + path-up-to-last-slash
}

// newAbsolutizer parses base (the page's source URI) into the components
// the six absolutization branches need. base must carry a scheme and
// authority; callers surface a parse failure as "no article" per spec.md §7.
func newAbsolutizer(base string) (*absolutizer, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, wrapParseError(err, "newAbsolutizer", "invalid uri")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, wrapParseError(errInvalidURI, "newAbsolutizer", base)
	}

	prePath := u.Scheme + "://" + u.Host

	path := u.Path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[:idx+1]
	} else {
		path = "/"
	}

	return &absolutizer{
		scheme:   u.Scheme,
		prePath:  prePath,
		pathBase: prePath + path,
	}, nil
}

// absolutize resolves ref against the base URI. It is idempotent: an
// already-absolute, empty, or #-fragment ref returns unchanged, a
// protocol-relative ref gains the base scheme, and resolving an
// already-resolved absolute URI is a no-op.
func (a *absolutizer) absolutize(ref string) string {
	switch {
	case ref == "" || rxSchemeURL.MatchString(ref):
		return ref
	case strings.HasPrefix(ref, "//"):
		// RFC 3986 protocol-relative resolution. The Scala source this was
		// distilled from instead produced scheme + "://" + ref[2:], which
		// drops the host — see spec.md §9. That behavior is not reproduced
		// here; this module adopts the RFC-correct form.
		return a.scheme + ":" + ref
	case strings.HasPrefix(ref, "/"):
		return a.prePath + ref
	case strings.HasPrefix(ref, "./"):
		return a.pathBase + ref[2:]
	case strings.HasPrefix(ref, "#"):
		return ref
	default:
		return a.pathBase + ref
	}
}
