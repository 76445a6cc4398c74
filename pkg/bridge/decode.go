package bridge

import (
	"fmt"

	"github.com/modeldiff/modeldiff/pkg/diff"
)

// Decode reconstructs an engine result from a wire record. Ten of the
// fourteen variants are decodable; TensorStatsChanged,
// ModelArchitectureChanged, ActivationFunctionChanged, OptimizerChanged and
// ModelVersionChanged are encode-only and rejected with
// UnsupportedVariantError, as is any unknown tag. Fields not required by the
// record's tag are ignored.
func Decode(rec Record) (diff.Result, error) {
	switch rec.DiffType {
	case "Added":
		value, err := requireValue(rec.DiffType, "new_value", rec.NewValue)
		if err != nil {
			return nil, err
		}
		return diff.Added{Path: rec.Path, Value: value}, nil

	case "Removed":
		value, err := requireValue(rec.DiffType, "value", rec.Value)
		if err != nil {
			return nil, err
		}
		return diff.Removed{Path: rec.Path, Value: value}, nil

	case "Modified":
		oldValue, err := requireValue(rec.DiffType, "old_value", rec.OldValue)
		if err != nil {
			return nil, err
		}
		newValue, err := requireValue(rec.DiffType, "new_value", rec.NewValue)
		if err != nil {
			return nil, err
		}
		return diff.Modified{Path: rec.Path, Old: oldValue, New: newValue}, nil

	case "TypeChanged":
		oldValue, err := requireValue(rec.DiffType, "old_value", rec.OldValue)
		if err != nil {
			return nil, err
		}
		newValue, err := requireValue(rec.DiffType, "new_value", rec.NewValue)
		if err != nil {
			return nil, err
		}
		return diff.TypeChanged{Path: rec.Path, Old: oldValue, New: newValue}, nil

	case "TensorShapeChanged":
		oldShape, err := requireShape(rec.DiffType, "old_shape", rec.OldShape)
		if err != nil {
			return nil, err
		}
		newShape, err := requireShape(rec.DiffType, "new_shape", rec.NewShape)
		if err != nil {
			return nil, err
		}
		return diff.TensorShapeChanged{Path: rec.Path, OldShape: oldShape, NewShape: newShape}, nil

	case "TensorDataChanged":
		oldMean, err := requireFloat(rec.DiffType, "old_mean", rec.OldMean)
		if err != nil {
			return nil, err
		}
		newMean, err := requireFloat(rec.DiffType, "new_mean", rec.NewMean)
		if err != nil {
			return nil, err
		}
		return diff.TensorDataChanged{Path: rec.Path, OldMean: oldMean, NewMean: newMean}, nil

	case "WeightSignificantChange":
		magnitude, err := requireFloat(rec.DiffType, "change_magnitude", rec.ChangeMagnitude)
		if err != nil {
			return nil, err
		}
		return diff.WeightSignificantChange{Path: rec.Path, Magnitude: magnitude}, nil

	case "LearningRateChanged":
		oldRate, newRate, err := requireFloatPair(rec)
		if err != nil {
			return nil, err
		}
		return diff.LearningRateChanged{Path: rec.Path, Old: oldRate, New: newRate}, nil

	case "LossChange":
		oldLoss, newLoss, err := requireFloatPair(rec)
		if err != nil {
			return nil, err
		}
		return diff.LossChange{Path: rec.Path, Old: oldLoss, New: newLoss}, nil

	case "AccuracyChange":
		oldAcc, newAcc, err := requireFloatPair(rec)
		if err != nil {
			return nil, err
		}
		return diff.AccuracyChange{Path: rec.Path, Old: oldAcc, New: newAcc}, nil

	default:
		return nil, &UnsupportedVariantError{Tag: rec.DiffType}
	}
}

func requireValue(tag, field string, raw interface{}) (diff.Value, error) {
	if raw == nil {
		return nil, &ValidationError{Tag: tag, Field: field}
	}
	value, err := diff.FromAny(raw)
	if err != nil {
		return nil, fmt.Errorf("%s field %s: %w", tag, field, err)
	}
	return value, nil
}

func requireFloat(tag, field string, raw *float64) (float64, error) {
	if raw == nil {
		return 0, &ValidationError{Tag: tag, Field: field}
	}
	return *raw, nil
}

func requireShape(tag, field string, raw []uint32) ([]uint64, error) {
	if raw == nil {
		return nil, &ValidationError{Tag: tag, Field: field}
	}
	return widenShape(raw), nil
}

func requireFloatPair(rec Record) (float64, float64, error) {
	oldFloat, err := requireFloat(rec.DiffType, "old_float", rec.OldFloat)
	if err != nil {
		return 0, 0, err
	}
	newFloat, err := requireFloat(rec.DiffType, "new_float", rec.NewFloat)
	if err != nil {
		return 0, 0, err
	}
	return oldFloat, newFloat, nil
}
