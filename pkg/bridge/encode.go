package bridge

import (
	"fmt"

	"github.com/modeldiff/modeldiff/pkg/diff"
)

// Encode converts one engine result into its wire record. Every variant has a
// wire form; the only failure mode is a shape dimension or element count
// outside the boundary's 32-bit range.
func Encode(result diff.Result) (Record, error) {
	switch r := result.(type) {
	case diff.Added:
		return Record{
			DiffType: "Added",
			Path:     r.Path,
			NewValue: diff.ToAny(r.Value),
		}, nil

	case diff.Removed:
		return Record{
			DiffType: "Removed",
			Path:     r.Path,
			Value:    diff.ToAny(r.Value),
		}, nil

	case diff.Modified:
		return Record{
			DiffType: "Modified",
			Path:     r.Path,
			OldValue: diff.ToAny(r.Old),
			NewValue: diff.ToAny(r.New),
		}, nil

	case diff.TypeChanged:
		return Record{
			DiffType: "TypeChanged",
			Path:     r.Path,
			OldValue: diff.ToAny(r.Old),
			NewValue: diff.ToAny(r.New),
		}, nil

	case diff.TensorShapeChanged:
		oldShape, err := narrowShape("shape dimension", r.OldShape)
		if err != nil {
			return Record{}, fmt.Errorf("encoding %s: %w", r.Path, err)
		}
		newShape, err := narrowShape("shape dimension", r.NewShape)
		if err != nil {
			return Record{}, fmt.Errorf("encoding %s: %w", r.Path, err)
		}
		return Record{
			DiffType: "TensorShapeChanged",
			Path:     r.Path,
			OldShape: oldShape,
			NewShape: newShape,
		}, nil

	case diff.TensorStatsChanged:
		oldStats, err := narrowStats(r.Old)
		if err != nil {
			return Record{}, fmt.Errorf("encoding %s: %w", r.Path, err)
		}
		newStats, err := narrowStats(r.New)
		if err != nil {
			return Record{}, fmt.Errorf("encoding %s: %w", r.Path, err)
		}
		return Record{
			DiffType: "TensorStatsChanged",
			Path:     r.Path,
			OldStats: oldStats,
			NewStats: newStats,
		}, nil

	case diff.TensorDataChanged:
		return Record{
			DiffType: "TensorDataChanged",
			Path:     r.Path,
			OldMean:  floatPtr(r.OldMean),
			NewMean:  floatPtr(r.NewMean),
		}, nil

	case diff.ModelArchitectureChanged:
		return Record{
			DiffType:  "ModelArchitectureChanged",
			Path:      r.Path,
			OldString: stringPtr(r.Old),
			NewString: stringPtr(r.New),
		}, nil

	case diff.WeightSignificantChange:
		return Record{
			DiffType:        "WeightSignificantChange",
			Path:            r.Path,
			ChangeMagnitude: floatPtr(r.Magnitude),
		}, nil

	case diff.ActivationFunctionChanged:
		return Record{
			DiffType:  "ActivationFunctionChanged",
			Path:      r.Path,
			OldString: stringPtr(r.Old),
			NewString: stringPtr(r.New),
		}, nil

	case diff.LearningRateChanged:
		return Record{
			DiffType: "LearningRateChanged",
			Path:     r.Path,
			OldFloat: floatPtr(r.Old),
			NewFloat: floatPtr(r.New),
		}, nil

	case diff.OptimizerChanged:
		return Record{
			DiffType:  "OptimizerChanged",
			Path:      r.Path,
			OldString: stringPtr(r.Old),
			NewString: stringPtr(r.New),
		}, nil

	case diff.LossChange:
		return Record{
			DiffType: "LossChange",
			Path:     r.Path,
			OldFloat: floatPtr(r.Old),
			NewFloat: floatPtr(r.New),
		}, nil

	case diff.AccuracyChange:
		return Record{
			DiffType: "AccuracyChange",
			Path:     r.Path,
			OldFloat: floatPtr(r.Old),
			NewFloat: floatPtr(r.New),
		}, nil

	case diff.ModelVersionChanged:
		return Record{
			DiffType:  "ModelVersionChanged",
			Path:      r.Path,
			OldString: stringPtr(r.Old),
			NewString: stringPtr(r.New),
		}, nil

	default:
		return Record{}, fmt.Errorf("unknown diff result type %T", result)
	}
}

func floatPtr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }
