package readability

import (
	"errors"
	"fmt"
)

// errorCategory distinguishes where within the pipeline an error
// originated, grounded on the teacher's internal/readability/error_wrapper.go
// but trimmed to the two categories this module actually produces —
// everything is converted to "no article" by Parse (spec.md §7), so the
// wrapping exists purely to make a discarded failure diagnosable by a
// caller that chooses to log it before moving on.
type errorCategory string

const (
	parseErrorCategory      errorCategory = "parse"
	extractionErrorCategory errorCategory = "extraction"
)

// errInvalidURI is returned by newAbsolutizer when the source URI lacks a
// scheme or authority.
var errInvalidURI = errors.New("uri has no scheme or authority")

// errNoDocument describes an HTML parse with no usable root. Parse reports
// that case as (nil, false); nothing in the package returns this error.
var errNoDocument = errors.New("html parser returned no document")

func wrapError(err error, category errorCategory, funcName, message string) error {
	if err == nil {
		return nil
	}
	if message == "" {
		return fmt.Errorf("[%s:%s] %w", category, funcName, err)
	}
	return fmt.Errorf("[%s:%s] %s: %w", category, funcName, message, err)
}

func wrapParseError(err error, funcName, message string) error {
	return wrapError(err, parseErrorCategory, funcName, message)
}

func wrapExtractionError(err error, funcName, message string) error {
	return wrapError(err, extractionErrorCategory, funcName, message)
}
