package bridge

import (
	"fmt"
	"math"

	"github.com/modeldiff/modeldiff/pkg/diff"
)

// narrowDim converts an engine-native dimension or count to the boundary's
// 32-bit width. Values that do not fit fail loudly instead of wrapping.
func narrowDim(what string, v uint64) (uint32, error) {
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("%s %d exceeds the boundary's 32-bit range", what, v)
	}
	return uint32(v), nil
}

func narrowShape(what string, shape []uint64) ([]uint32, error) {
	narrowed := make([]uint32, len(shape))
	for i, dim := range shape {
		d, err := narrowDim(what, dim)
		if err != nil {
			return nil, err
		}
		narrowed[i] = d
	}
	return narrowed, nil
}

// widenShape is the inverse of narrowShape; widening always succeeds.
func widenShape(shape []uint32) []uint64 {
	widened := make([]uint64, len(shape))
	for i, dim := range shape {
		widened[i] = uint64(dim)
	}
	return widened
}

func narrowStats(stats diff.TensorStats) (*Stats, error) {
	shape, err := narrowShape("shape dimension", stats.Shape)
	if err != nil {
		return nil, err
	}
	count, err := narrowDim("element count", stats.ElementCount)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Mean:         stats.Mean,
		Std:          stats.Std,
		Min:          stats.Min,
		Max:          stats.Max,
		Shape:        shape,
		Dtype:        stats.Dtype,
		ElementCount: count,
	}, nil
}
