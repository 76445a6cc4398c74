package diff

import (
	"regexp"
	"strings"
)

// Options tunes a single diff call. All fields are optional; nil means the
// engine default applies. An Options value is built once per call and never
// mutated afterwards.
type Options struct {
	// Epsilon is the tolerance for numeric comparison. Nil means exact
	// equality.
	Epsilon *float64

	// ArrayIDKey names a mapping key used to align sequence elements across
	// the old and new sides instead of comparing by index.
	ArrayIDKey *string

	// IgnoreKeys excludes mapping keys matching the pattern from comparison.
	IgnoreKeys *regexp.Regexp

	// PathFilter restricts reported differences to paths containing the
	// substring.
	PathFilter *string

	// Format is the preferred output format for rendering results.
	Format *OutputFormat
}

func (o *Options) epsilon() float64 {
	if o == nil || o.Epsilon == nil {
		return 0
	}
	return *o.Epsilon
}

func (o *Options) arrayIDKey() (string, bool) {
	if o == nil || o.ArrayIDKey == nil {
		return "", false
	}
	return *o.ArrayIDKey, true
}

func (o *Options) ignoreKey(key string) bool {
	if o == nil || o.IgnoreKeys == nil {
		return false
	}
	return o.IgnoreKeys.MatchString(key)
}

func (o *Options) matchesFilter(path string) bool {
	if o == nil || o.PathFilter == nil {
		return true
	}
	return strings.Contains(path, *o.PathFilter)
}
