package diff

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// weightChangeThreshold is the mean shift above which a weight tensor change
// is reported as significant rather than as plain data drift.
const weightChangeThreshold = 0.1

func (d *Differ) Diff(old, new Value, opts *Options) ([]Result, error) {
	if old == nil || new == nil {
		return nil, errors.New("both values must be provided")
	}

	var results []Result
	compareChild("", "", old, new, opts, &results)

	if opts == nil || opts.PathFilter == nil {
		return results, nil
	}

	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if opts.matchesFilter(r.DiffPath()) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// compareChild dispatches one old/new pair: model-aware classification first,
// then the generic structural rules.
func compareChild(path, key string, old, new Value, opts *Options, out *[]Result) {
	if oldStats, ok := parseTensorStats(old); ok {
		if newStats, ok := parseTensorStats(new); ok {
			compareTensors(path, key, oldStats, newStats, opts.epsilon(), out)
			return
		}
	}

	if classifyMetadata(path, key, old, new, opts.epsilon(), out) {
		return
	}

	compareGeneric(path, old, new, opts, out)
}

func compareGeneric(path string, old, new Value, opts *Options, out *[]Result) {
	switch oldVal := old.(type) {
	case Null:
		if _, ok := new.(Null); !ok {
			appendTypeChanged(path, old, new, out)
		}
	case Bool:
		newVal, ok := new.(Bool)
		if !ok {
			appendTypeChanged(path, old, new, out)
		} else if oldVal != newVal {
			*out = append(*out, Modified{Path: path, Old: old, New: new})
		}
	case Number:
		newVal, ok := new.(Number)
		if !ok {
			appendTypeChanged(path, old, new, out)
		} else if !floatEq(float64(oldVal), float64(newVal), opts.epsilon()) {
			*out = append(*out, Modified{Path: path, Old: old, New: new})
		}
	case String:
		newVal, ok := new.(String)
		if !ok {
			appendTypeChanged(path, old, new, out)
		} else if oldVal != newVal {
			*out = append(*out, Modified{Path: path, Old: old, New: new})
		}
	case Sequence:
		newVal, ok := new.(Sequence)
		if !ok {
			appendTypeChanged(path, old, new, out)
		} else {
			compareSequences(path, oldVal, newVal, opts, out)
		}
	case Mapping:
		newVal, ok := new.(Mapping)
		if !ok {
			appendTypeChanged(path, old, new, out)
		} else {
			compareMappings(path, oldVal, newVal, opts, out)
		}
	}
}

func appendTypeChanged(path string, old, new Value, out *[]Result) {
	*out = append(*out, TypeChanged{Path: path, Old: old, New: new})
}

func compareMappings(path string, old, new Mapping, opts *Options, out *[]Result) {
	allKeys := make(Mapping, len(old)+len(new))
	for key := range old {
		allKeys[key] = Null{}
	}
	for key := range new {
		allKeys[key] = Null{}
	}

	for _, key := range sortedKeys(allKeys) {
		if opts.ignoreKey(key) {
			continue
		}

		childPath := joinPath(path, key)
		oldVal, inOld := old[key]
		newVal, inNew := new[key]

		switch {
		case inOld && !inNew:
			*out = append(*out, Removed{Path: childPath, Value: oldVal})
		case !inOld && inNew:
			*out = append(*out, Added{Path: childPath, Value: newVal})
		default:
			compareChild(childPath, key, oldVal, newVal, opts, out)
		}
	}
}

func compareSequences(path string, old, new Sequence, opts *Options, out *[]Result) {
	if idKey, ok := opts.arrayIDKey(); ok {
		if compareSequencesByID(path, idKey, old, new, opts, out) {
			return
		}
	}

	common := len(old)
	if len(new) < common {
		common = len(new)
	}

	for i := 0; i < common; i++ {
		compareChild(indexPath(path, i), "", old[i], new[i], opts, out)
	}
	for i := common; i < len(old); i++ {
		*out = append(*out, Removed{Path: indexPath(path, i), Value: old[i]})
	}
	for i := common; i < len(new); i++ {
		*out = append(*out, Added{Path: indexPath(path, i), Value: new[i]})
	}
}

// compareSequencesByID aligns sequence elements by the value under idKey.
// Returns false when either side has an element without a scalar id, in which
// case the caller falls back to positional comparison.
func compareSequencesByID(path, idKey string, old, new Sequence, opts *Options, out *[]Result) bool {
	oldByID, oldIDs, ok := indexByID(old, idKey)
	if !ok {
		return false
	}
	newByID, newIDs, ok := indexByID(new, idKey)
	if !ok {
		return false
	}

	for _, id := range oldIDs {
		elemPath := idPath(path, idKey, id)
		if newElem, exists := newByID[id]; exists {
			compareChild(elemPath, "", oldByID[id], newElem, opts, out)
		} else {
			*out = append(*out, Removed{Path: elemPath, Value: oldByID[id]})
		}
	}
	for _, id := range newIDs {
		if _, exists := oldByID[id]; !exists {
			*out = append(*out, Added{Path: idPath(path, idKey, id), Value: newByID[id]})
		}
	}
	return true
}

func indexByID(seq Sequence, idKey string) (map[string]Value, []string, bool) {
	byID := make(map[string]Value, len(seq))
	ids := make([]string, 0, len(seq))
	for _, elem := range seq {
		mapping, ok := elem.(Mapping)
		if !ok {
			return nil, nil, false
		}
		id, ok := scalarID(mapping[idKey])
		if !ok {
			return nil, nil, false
		}
		if _, dup := byID[id]; dup {
			return nil, nil, false
		}
		byID[id] = elem
		ids = append(ids, id)
	}
	return byID, ids, true
}

func scalarID(v Value) (string, bool) {
	switch val := v.(type) {
	case String:
		return string(val), true
	case Number:
		return formatNumber(float64(val)), true
	default:
		return "", false
	}
}

// classifyMetadata recognizes well-known training metadata keys and reports
// them as their dedicated variants. Returns true when the pair was handled.
func classifyMetadata(path, key string, old, new Value, epsilon float64, out *[]Result) bool {
	switch key {
	case "learning_rate", "lr":
		return classifyFloatPair(old, new, epsilon, out, func(o, n float64) Result {
			return LearningRateChanged{Path: path, Old: o, New: n}
		})
	case "loss":
		return classifyFloatPair(old, new, epsilon, out, func(o, n float64) Result {
			return LossChange{Path: path, Old: o, New: n}
		})
	case "accuracy":
		return classifyFloatPair(old, new, epsilon, out, func(o, n float64) Result {
			return AccuracyChange{Path: path, Old: o, New: n}
		})
	case "optimizer":
		return classifyStringPair(old, new, out, func(o, n string) Result {
			return OptimizerChanged{Path: path, Old: o, New: n}
		})
	case "architecture", "model_architecture":
		return classifyStringPair(old, new, out, func(o, n string) Result {
			return ModelArchitectureChanged{Path: path, Old: o, New: n}
		})
	case "activation", "activation_function":
		return classifyStringPair(old, new, out, func(o, n string) Result {
			return ActivationFunctionChanged{Path: path, Old: o, New: n}
		})
	case "model_version":
		return classifyStringPair(old, new, out, func(o, n string) Result {
			return ModelVersionChanged{Path: path, Old: o, New: n}
		})
	}
	return false
}

func classifyFloatPair(old, new Value, epsilon float64, out *[]Result, build func(o, n float64) Result) bool {
	oldVal, okOld := old.(Number)
	newVal, okNew := new.(Number)
	if !okOld || !okNew {
		return false
	}
	if !floatEq(float64(oldVal), float64(newVal), epsilon) {
		*out = append(*out, build(float64(oldVal), float64(newVal)))
	}
	return true
}

func classifyStringPair(old, new Value, out *[]Result, build func(o, n string) Result) bool {
	oldVal, okOld := old.(String)
	newVal, okNew := new.(String)
	if !okOld || !okNew {
		return false
	}
	if oldVal != newVal {
		*out = append(*out, build(string(oldVal), string(newVal)))
	}
	return true
}

// parseTensorStats recognizes a mapping shaped like a tensor summary. All
// seven summary fields must be present with the expected kinds.
func parseTensorStats(v Value) (TensorStats, bool) {
	mapping, ok := v.(Mapping)
	if !ok {
		return TensorStats{}, false
	}

	mean, okMean := numberField(mapping, "mean")
	std, okStd := numberField(mapping, "std")
	min, okMin := numberField(mapping, "min")
	max, okMax := numberField(mapping, "max")
	if !okMean || !okStd || !okMin || !okMax {
		return TensorStats{}, false
	}

	dtype, ok := mapping["dtype"].(String)
	if !ok {
		return TensorStats{}, false
	}

	count, ok := numberField(mapping, "element_count")
	if !ok || count < 0 || count != math.Trunc(count) {
		return TensorStats{}, false
	}

	shapeSeq, ok := mapping["shape"].(Sequence)
	if !ok {
		return TensorStats{}, false
	}
	shape := make([]uint64, len(shapeSeq))
	for i, dim := range shapeSeq {
		num, ok := dim.(Number)
		if !ok || num < 0 || float64(num) != math.Trunc(float64(num)) {
			return TensorStats{}, false
		}
		shape[i] = uint64(num)
	}

	return TensorStats{
		Mean:         mean,
		Std:          std,
		Min:          min,
		Max:          max,
		Shape:        shape,
		Dtype:        string(dtype),
		ElementCount: uint64(count),
	}, true
}

func numberField(m Mapping, key string) (float64, bool) {
	num, ok := m[key].(Number)
	return float64(num), ok
}

func compareTensors(path, key string, old, new TensorStats, epsilon float64, out *[]Result) {
	if !equalShapes(old.Shape, new.Shape) {
		*out = append(*out, TensorShapeChanged{Path: path, OldShape: old.Shape, NewShape: new.Shape})
		return
	}

	statsChanged := !floatEq(old.Std, new.Std, epsilon) ||
		!floatEq(old.Min, new.Min, epsilon) ||
		!floatEq(old.Max, new.Max, epsilon) ||
		old.Dtype != new.Dtype ||
		old.ElementCount != new.ElementCount

	meanDelta := math.Abs(new.Mean - old.Mean)

	switch {
	case statsChanged:
		*out = append(*out, TensorStatsChanged{Path: path, Old: old, New: new})
	case meanDelta > epsilon && meanDelta >= weightChangeThreshold && strings.Contains(key, "weight"):
		*out = append(*out, WeightSignificantChange{Path: path, Magnitude: meanDelta})
	case meanDelta > epsilon:
		*out = append(*out, TensorDataChanged{Path: path, OldMean: old.Mean, NewMean: new.Mean})
	}
}

func equalShapes(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func floatEq(a, b, epsilon float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= epsilon
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func idPath(path, idKey, id string) string {
	return fmt.Sprintf("%s[%s=%s]", path, idKey, id)
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
