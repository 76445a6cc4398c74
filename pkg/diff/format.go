package diff

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how a result list is rendered.
type OutputFormat int

const (
	// FormatText is the native human-readable form.
	FormatText OutputFormat = iota
	FormatJSON
	FormatYAML
)

// ParseFormat resolves a format name. Recognized names are "text", "json" and
// "yaml".
func ParseFormat(name string) (OutputFormat, error) {
	switch name {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	default:
		return FormatText, fmt.Errorf("unsupported format: %s (supported: text, json, yaml)", name)
	}
}

func (f OutputFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("OutputFormat(%d)", int(f))
	}
}

func (d *Differ) Format(results []Result, format OutputFormat) (string, error) {
	switch format {
	case FormatText:
		return formatText(results), nil

	case FormatJSON:
		data, err := json.MarshalIndent(resultDocs(results), "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil

	case FormatYAML:
		data, err := yaml.Marshal(resultDocs(results))
		if err != nil {
			return "", err
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatText(results []Result) string {
	var buf bytes.Buffer

	for _, result := range results {
		switch r := result.(type) {
		case Added:
			fmt.Fprintf(&buf, "+ %s: %v\n", r.Path, ToAny(r.Value))
		case Removed:
			fmt.Fprintf(&buf, "- %s: %v\n", r.Path, ToAny(r.Value))
		case Modified:
			fmt.Fprintf(&buf, "~ %s: %v -> %v\n", r.Path, ToAny(r.Old), ToAny(r.New))
		case TypeChanged:
			fmt.Fprintf(&buf, "! %s: %v -> %v\n", r.Path, ToAny(r.Old), ToAny(r.New))
		case TensorShapeChanged:
			fmt.Fprintf(&buf, "! %s: shape %v -> %v\n", r.Path, r.OldShape, r.NewShape)
		case TensorStatsChanged:
			fmt.Fprintf(&buf, "~ %s: mean %g -> %g, std %g -> %g\n", r.Path, r.Old.Mean, r.New.Mean, r.Old.Std, r.New.Std)
		case TensorDataChanged:
			fmt.Fprintf(&buf, "~ %s: mean %g -> %g\n", r.Path, r.OldMean, r.NewMean)
		case ModelArchitectureChanged:
			fmt.Fprintf(&buf, "! %s: architecture %s -> %s\n", r.Path, r.Old, r.New)
		case WeightSignificantChange:
			fmt.Fprintf(&buf, "! %s: significant weight change (magnitude %g)\n", r.Path, r.Magnitude)
		case ActivationFunctionChanged:
			fmt.Fprintf(&buf, "~ %s: activation %s -> %s\n", r.Path, r.Old, r.New)
		case LearningRateChanged:
			fmt.Fprintf(&buf, "~ %s: learning rate %g -> %g\n", r.Path, r.Old, r.New)
		case OptimizerChanged:
			fmt.Fprintf(&buf, "~ %s: optimizer %s -> %s\n", r.Path, r.Old, r.New)
		case LossChange:
			fmt.Fprintf(&buf, "~ %s: loss %g -> %g\n", r.Path, r.Old, r.New)
		case AccuracyChange:
			fmt.Fprintf(&buf, "~ %s: accuracy %g -> %g\n", r.Path, r.Old, r.New)
		case ModelVersionChanged:
			fmt.Fprintf(&buf, "~ %s: version %s -> %s\n", r.Path, r.Old, r.New)
		}
	}

	return buf.String()
}

// resultDocs converts results into plain maps for json/yaml marshalling.
func resultDocs(results []Result) []map[string]interface{} {
	docs := make([]map[string]interface{}, len(results))
	for i, result := range results {
		docs[i] = resultDoc(result)
	}
	return docs
}

func resultDoc(result Result) map[string]interface{} {
	switch r := result.(type) {
	case Added:
		return doc("Added", r.Path, "value", ToAny(r.Value))
	case Removed:
		return doc("Removed", r.Path, "value", ToAny(r.Value))
	case Modified:
		return doc("Modified", r.Path, "old", ToAny(r.Old), "new", ToAny(r.New))
	case TypeChanged:
		return doc("TypeChanged", r.Path, "old", ToAny(r.Old), "new", ToAny(r.New))
	case TensorShapeChanged:
		return doc("TensorShapeChanged", r.Path, "old_shape", r.OldShape, "new_shape", r.NewShape)
	case TensorStatsChanged:
		return doc("TensorStatsChanged", r.Path, "old_stats", statsDoc(r.Old), "new_stats", statsDoc(r.New))
	case TensorDataChanged:
		return doc("TensorDataChanged", r.Path, "old_mean", r.OldMean, "new_mean", r.NewMean)
	case ModelArchitectureChanged:
		return doc("ModelArchitectureChanged", r.Path, "old", r.Old, "new", r.New)
	case WeightSignificantChange:
		return doc("WeightSignificantChange", r.Path, "magnitude", r.Magnitude)
	case ActivationFunctionChanged:
		return doc("ActivationFunctionChanged", r.Path, "old", r.Old, "new", r.New)
	case LearningRateChanged:
		return doc("LearningRateChanged", r.Path, "old", r.Old, "new", r.New)
	case OptimizerChanged:
		return doc("OptimizerChanged", r.Path, "old", r.Old, "new", r.New)
	case LossChange:
		return doc("LossChange", r.Path, "old", r.Old, "new", r.New)
	case AccuracyChange:
		return doc("AccuracyChange", r.Path, "old", r.Old, "new", r.New)
	case ModelVersionChanged:
		return doc("ModelVersionChanged", r.Path, "old", r.Old, "new", r.New)
	default:
		return map[string]interface{}{"path": result.DiffPath()}
	}
}

func doc(diffType, path string, pairs ...interface{}) map[string]interface{} {
	m := map[string]interface{}{
		"type": diffType,
		"path": path,
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i].(string)] = pairs[i+1]
	}
	return m
}

func statsDoc(stats TensorStats) map[string]interface{} {
	return map[string]interface{}{
		"mean":          stats.Mean,
		"std":           stats.Std,
		"min":           stats.Min,
		"max":           stats.Max,
		"shape":         stats.Shape,
		"dtype":         stats.Dtype,
		"element_count": stats.ElementCount,
	}
}
