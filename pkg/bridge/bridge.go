package bridge

import (
	"fmt"

	"github.com/modeldiff/modeldiff/pkg/diff"
)

// Bridge exposes the engine to hosts exchanging flat records. Each call is a
// synchronous pipeline with no shared state; a Bridge is safe for concurrent
// use.
type Bridge struct {
	engine diff.Engine
}

// New wraps an engine.
func New(engine diff.Engine) *Bridge {
	return &Bridge{engine: engine}
}

// Default wraps the built-in engine.
func Default() *Bridge {
	return New(diff.New())
}

// Diff compares two host values and returns one wire record per detected
// difference, in the engine's emission order.
func (b *Bridge) Diff(old, new interface{}, opts *Options) ([]Record, error) {
	engineOpts, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	oldValue, err := diff.FromAny(old)
	if err != nil {
		return nil, fmt.Errorf("converting old value: %w", err)
	}
	newValue, err := diff.FromAny(new)
	if err != nil {
		return nil, fmt.Errorf("converting new value: %w", err)
	}

	results, err := b.engine.Diff(oldValue, newValue, engineOpts)
	if err != nil {
		return nil, computationf("Diff", err)
	}

	return encodeAll(results)
}

// DiffPaths compares two filesystem locations.
func (b *Bridge) DiffPaths(oldPath, newPath string, opts *Options) ([]Record, error) {
	engineOpts, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	results, err := b.engine.DiffPaths(oldPath, newPath, engineOpts)
	if err != nil {
		return nil, computationf("Diff", err)
	}

	return encodeAll(results)
}

// FormatOutput decodes the records and renders them in the named format. The
// whole call fails if any record is malformed or carries an encode-only tag.
func (b *Bridge) FormatOutput(records []Record, formatName string) (string, error) {
	results := make([]diff.Result, len(records))
	for i, rec := range records {
		result, err := Decode(rec)
		if err != nil {
			return "", err
		}
		results[i] = result
	}

	format, err := diff.ParseFormat(formatName)
	if err != nil {
		return "", invalidConfigf("invalid format: %v", err)
	}

	output, err := b.engine.Format(results, format)
	if err != nil {
		return "", computationf("Format", err)
	}
	return output, nil
}

func encodeAll(results []diff.Result) ([]Record, error) {
	records := make([]Record, len(results))
	for i, result := range results {
		rec, err := Encode(result)
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}
