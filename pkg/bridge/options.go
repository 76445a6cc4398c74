package bridge

import (
	"regexp"

	"github.com/modeldiff/modeldiff/pkg/diff"
)

// Options is the host-facing configuration for a diff call. Every field is
// optional; nil means the engine default applies.
type Options struct {
	// Epsilon is the numeric comparison tolerance.
	Epsilon *float64 `json:"epsilon,omitempty"`

	// ArrayIDKey names the field used to align sequence elements.
	ArrayIDKey *string `json:"array_id_key,omitempty"`

	// IgnoreKeysRegex is a pattern matched against mapping keys to exclude
	// from comparison.
	IgnoreKeysRegex *string `json:"ignore_keys_regex,omitempty"`

	// PathFilter restricts reported differences to paths containing the
	// substring.
	PathFilter *string `json:"path_filter,omitempty"`

	// OutputFormat names the preferred rendering format.
	OutputFormat *string `json:"output_format,omitempty"`
}

// buildOptions translates host options into the engine's validated model.
// The regex is compiled and the format parsed here, before the engine is
// invoked, so an invalid configuration never reaches it.
func buildOptions(opts *Options) (*diff.Options, error) {
	if opts == nil {
		return nil, nil
	}

	engineOpts := &diff.Options{
		Epsilon:    opts.Epsilon,
		ArrayIDKey: opts.ArrayIDKey,
		PathFilter: opts.PathFilter,
	}

	if opts.IgnoreKeysRegex != nil {
		pattern, err := regexp.Compile(*opts.IgnoreKeysRegex)
		if err != nil {
			return nil, invalidConfigf("invalid regex: %v", err)
		}
		engineOpts.IgnoreKeys = pattern
	}

	if opts.OutputFormat != nil {
		format, err := diff.ParseFormat(*opts.OutputFormat)
		if err != nil {
			return nil, invalidConfigf("invalid output format: %v", err)
		}
		engineOpts.Format = &format
	}

	return engineOpts, nil
}
