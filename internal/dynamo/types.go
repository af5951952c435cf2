package dynamo

// Configurable exposes named scalar parameters for runtime tuning.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
