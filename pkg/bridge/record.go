// Package bridge marshals diff results and options across the host boundary.
// The engine side works with the closed result types of pkg/diff; the host
// side exchanges flat records whose fields are all optional. The bridge owns
// the translation in both directions and validates everything that crosses it.
package bridge

// Record is the flat wire form of a single diff result. DiffType names the
// variant; of the optional fields, exactly those belonging to the variant are
// set on encoded records. Records arriving from the host make no such
// guarantee and are validated during decoding.
//
// Generic values (OldValue, NewValue, Value) use the untyped host
// representation; nil means the field is absent.
type Record struct {
	DiffType string `json:"diff_type"`
	Path     string `json:"path"`

	OldValue interface{} `json:"old_value,omitempty"`
	NewValue interface{} `json:"new_value,omitempty"`
	Value    interface{} `json:"value,omitempty"`

	OldShape []uint32 `json:"old_shape,omitempty"`
	NewShape []uint32 `json:"new_shape,omitempty"`

	OldStats *Stats `json:"old_stats,omitempty"`
	NewStats *Stats `json:"new_stats,omitempty"`

	OldMean *float64 `json:"old_mean,omitempty"`
	NewMean *float64 `json:"new_mean,omitempty"`

	ChangeMagnitude *float64 `json:"change_magnitude,omitempty"`

	OldString *string `json:"old_string,omitempty"`
	NewString *string `json:"new_string,omitempty"`

	OldFloat *float64 `json:"old_float,omitempty"`
	NewFloat *float64 `json:"new_float,omitempty"`
}

// Stats is the boundary form of tensor statistics. Shape entries and the
// element count are narrowed to 32 bits.
type Stats struct {
	Mean         float64  `json:"mean"`
	Std          float64  `json:"std"`
	Min          float64  `json:"min"`
	Max          float64  `json:"max"`
	Shape        []uint32 `json:"shape"`
	Dtype        string   `json:"dtype"`
	ElementCount uint32   `json:"element_count"`
}
