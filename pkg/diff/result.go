package diff

// Result is a single detected difference. The set of variants is closed: the
// engine emits exactly one of the types below per difference.
type Result interface {
	// DiffPath locates the difference within the compared structure.
	DiffPath() string
	isResult()
}

// TensorStats summarizes a numeric tensor.
type TensorStats struct {
	Mean         float64
	Std          float64
	Min          float64
	Max          float64
	Shape        []uint64
	Dtype        string
	ElementCount uint64
}

type Added struct {
	Path  string
	Value Value
}

type Removed struct {
	Path  string
	Value Value
}

type Modified struct {
	Path string
	Old  Value
	New  Value
}

type TypeChanged struct {
	Path string
	Old  Value
	New  Value
}

type TensorShapeChanged struct {
	Path     string
	OldShape []uint64
	NewShape []uint64
}

type TensorStatsChanged struct {
	Path string
	Old  TensorStats
	New  TensorStats
}

type TensorDataChanged struct {
	Path    string
	OldMean float64
	NewMean float64
}

type ModelArchitectureChanged struct {
	Path string
	Old  string
	New  string
}

type WeightSignificantChange struct {
	Path      string
	Magnitude float64
}

type ActivationFunctionChanged struct {
	Path string
	Old  string
	New  string
}

type LearningRateChanged struct {
	Path string
	Old  float64
	New  float64
}

type OptimizerChanged struct {
	Path string
	Old  string
	New  string
}

type LossChange struct {
	Path string
	Old  float64
	New  float64
}

type AccuracyChange struct {
	Path string
	Old  float64
	New  float64
}

type ModelVersionChanged struct {
	Path string
	Old  string
	New  string
}

func (r Added) DiffPath() string { return r.Path }
func (r Removed) DiffPath() string { return r.Path }
func (r Modified) DiffPath() string { return r.Path }
func (r TypeChanged) DiffPath() string { return r.Path }
func (r TensorShapeChanged) DiffPath() string { return r.Path }
func (r TensorStatsChanged) DiffPath() string { return r.Path }
func (r TensorDataChanged) DiffPath() string { return r.Path }
func (r ModelArchitectureChanged) DiffPath() string { return r.Path }
func (r WeightSignificantChange) DiffPath() string { return r.Path }
func (r ActivationFunctionChanged) DiffPath() string { return r.Path }
func (r LearningRateChanged) DiffPath() string { return r.Path }
func (r OptimizerChanged) DiffPath() string { return r.Path }
func (r LossChange) DiffPath() string { return r.Path }
func (r AccuracyChange) DiffPath() string { return r.Path }
func (r ModelVersionChanged) DiffPath() string { return r.Path }

func (Added) isResult() {}
func (Removed) isResult() {}
func (Modified) isResult() {}
func (TypeChanged) isResult() {}
func (TensorShapeChanged) isResult() {}
func (TensorStatsChanged) isResult() {}
func (TensorDataChanged) isResult() {}
func (ModelArchitectureChanged) isResult() {}
func (WeightSignificantChange) isResult() {}
func (ActivationFunctionChanged) isResult() {}
func (LearningRateChanged) isResult() {}
func (OptimizerChanged) isResult() {}
func (LossChange) isResult() {}
func (AccuracyChange) isResult() {}
func (ModelVersionChanged) isResult() {}
