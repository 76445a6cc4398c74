package diff

// Engine computes differences between structured values and renders result
// lists. Implementations must be safe for concurrent use by independent
// callers; no call observes state created by another.
type Engine interface {
	// Diff compares two in-memory values and returns one Result per detected
	// difference, in emission order.
	Diff(old, new Value, opts *Options) ([]Result, error)

	// DiffPaths compares two filesystem locations.
	DiffPaths(oldPath, newPath string, opts *Options) ([]Result, error)

	// Format renders a result list in the given output format.
	Format(results []Result, format OutputFormat) (string, error)
}

// Differ is the built-in Engine: a structural walk over two values with
// model-aware classification of tensor summaries and training metadata.
type Differ struct{}

// New returns the built-in engine.
func New() *Differ {
	return &Differ{}
}
