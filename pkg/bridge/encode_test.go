package bridge

import (
	"math"
	"reflect"
	"testing"

	"github.com/modeldiff/modeldiff/pkg/diff"
)

func sampleStats() diff.TensorStats {
	return diff.TensorStats{
		Mean:         0.5,
		Std:          1.0,
		Min:          -2.0,
		Max:          2.0,
		Shape:        []uint64{2, 3},
		Dtype:        "float32",
		ElementCount: 6,
	}
}

func sampleNarrowStats() *Stats {
	return &Stats{
		Mean:         0.5,
		Std:          1.0,
		Min:          -2.0,
		Max:          2.0,
		Shape:        []uint32{2, 3},
		Dtype:        "float32",
		ElementCount: 6,
	}
}

// TestEncode_AllVariants checks that every variant encodes with its tag and
// exactly its own fields set.
func TestEncode_AllVariants(t *testing.T) {
	otherStats := sampleStats()
	otherStats.Std = 2.0

	otherNarrow := sampleNarrowStats()
	otherNarrow.Std = 2.0

	tests := []struct {
		name     string
		result   diff.Result
		expected Record
	}{
		{
			name:     "Added",
			result:   diff.Added{Path: "b", Value: diff.Number(5)},
			expected: Record{DiffType: "Added", Path: "b", NewValue: 5.0},
		},
		{
			name:     "Removed",
			result:   diff.Removed{Path: "c", Value: diff.String("x")},
			expected: Record{DiffType: "Removed", Path: "c", Value: "x"},
		},
		{
			name:     "Modified",
			result:   diff.Modified{Path: "a", Old: diff.Number(1), New: diff.Number(2)},
			expected: Record{DiffType: "Modified", Path: "a", OldValue: 1.0, NewValue: 2.0},
		},
		{
			name:     "TypeChanged",
			result:   diff.TypeChanged{Path: "a", Old: diff.Number(1), New: diff.String("1")},
			expected: Record{DiffType: "TypeChanged", Path: "a", OldValue: 1.0, NewValue: "1"},
		},
		{
			name:     "TensorShapeChanged",
			result:   diff.TensorShapeChanged{Path: "w", OldShape: []uint64{2, 3}, NewShape: []uint64{2, 4}},
			expected: Record{DiffType: "TensorShapeChanged", Path: "w", OldShape: []uint32{2, 3}, NewShape: []uint32{2, 4}},
		},
		{
			name:     "TensorStatsChanged",
			result:   diff.TensorStatsChanged{Path: "w", Old: sampleStats(), New: otherStats},
			expected: Record{DiffType: "TensorStatsChanged", Path: "w", OldStats: sampleNarrowStats(), NewStats: otherNarrow},
		},
		{
			name:     "TensorDataChanged",
			result:   diff.TensorDataChanged{Path: "w", OldMean: 0.1, NewMean: 0.2},
			expected: Record{DiffType: "TensorDataChanged", Path: "w", OldMean: floatPtr(0.1), NewMean: floatPtr(0.2)},
		},
		{
			name:     "ModelArchitectureChanged",
			result:   diff.ModelArchitectureChanged{Path: "arch", Old: "resnet18", New: "resnet50"},
			expected: Record{DiffType: "ModelArchitectureChanged", Path: "arch", OldString: stringPtr("resnet18"), NewString: stringPtr("resnet50")},
		},
		{
			name:     "WeightSignificantChange",
			result:   diff.WeightSignificantChange{Path: "w", Magnitude: 0.7},
			expected: Record{DiffType: "WeightSignificantChange", Path: "w", ChangeMagnitude: floatPtr(0.7)},
		},
		{
			name:     "ActivationFunctionChanged",
			result:   diff.ActivationFunctionChanged{Path: "act", Old: "relu", New: "gelu"},
			expected: Record{DiffType: "ActivationFunctionChanged", Path: "act", OldString: stringPtr("relu"), NewString: stringPtr("gelu")},
		},
		{
			name:     "LearningRateChanged",
			result:   diff.LearningRateChanged{Path: "lr", Old: 0.01, New: 0.001},
			expected: Record{DiffType: "LearningRateChanged", Path: "lr", OldFloat: floatPtr(0.01), NewFloat: floatPtr(0.001)},
		},
		{
			name:     "OptimizerChanged",
			result:   diff.OptimizerChanged{Path: "opt", Old: "sgd", New: "adam"},
			expected: Record{DiffType: "OptimizerChanged", Path: "opt", OldString: stringPtr("sgd"), NewString: stringPtr("adam")},
		},
		{
			name:     "LossChange",
			result:   diff.LossChange{Path: "loss", Old: 0.5, New: 0.4},
			expected: Record{DiffType: "LossChange", Path: "loss", OldFloat: floatPtr(0.5), NewFloat: floatPtr(0.4)},
		},
		{
			name:     "AccuracyChange",
			result:   diff.AccuracyChange{Path: "acc", Old: 0.9, New: 0.92},
			expected: Record{DiffType: "AccuracyChange", Path: "acc", OldFloat: floatPtr(0.9), NewFloat: floatPtr(0.92)},
		},
		{
			name:     "ModelVersionChanged",
			result:   diff.ModelVersionChanged{Path: "version", Old: "1.0", New: "2.0"},
			expected: Record{DiffType: "ModelVersionChanged", Path: "version", OldString: stringPtr("1.0"), NewString: stringPtr("2.0")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Encode(tt.result)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if !reflect.DeepEqual(rec, tt.expected) {
				t.Errorf("Expected %#v, got %#v", tt.expected, rec)
			}
		})
	}
}

func TestEncode_ShapeOverflow(t *testing.T) {
	result := diff.TensorShapeChanged{
		Path:     "huge",
		OldShape: []uint64{math.MaxUint32 + 1},
		NewShape: []uint64{2},
	}

	if _, err := Encode(result); err == nil {
		t.Error("Expected overflow error, got nil")
	}
}

func TestEncode_ElementCountOverflow(t *testing.T) {
	stats := sampleStats()
	stats.ElementCount = math.MaxUint32 + 1

	result := diff.TensorStatsChanged{Path: "huge", Old: stats, New: sampleStats()}

	if _, err := Encode(result); err == nil {
		t.Error("Expected overflow error, got nil")
	}
}

func TestEncode_ShapeWithinRange(t *testing.T) {
	result := diff.TensorShapeChanged{
		Path:     "edge",
		OldShape: []uint64{math.MaxUint32},
		NewShape: []uint64{math.MaxUint32},
	}

	rec, err := Encode(result)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if rec.OldShape[0] != math.MaxUint32 {
		t.Errorf("Expected %d, got %d", uint32(math.MaxUint32), rec.OldShape[0])
	}
}
