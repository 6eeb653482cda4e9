package model

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/glib/pkg/errors"
	"gopkg.in/yaml.v3"
)

// WeightsVersion is written into every exported ModelWeights.
const WeightsVersion = "1"

// Standardization holds the per-feature mean and scale applied to X before
// training. Prediction applies the same transform.
type Standardization struct {
	Mean  []float64 `json:"mean" yaml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale"`
}

// ModelWeights is the portable form of a fitted model.
type ModelWeights struct {
	// ModelType is the display name, e.g. "Ridge".
	ModelType string `json:"model_type" yaml:"model_type"`

	// Variant is the parseable variant kind, e.g. "ridge".
	Variant string `json:"variant" yaml:"variant"`

	Version string `json:"version" yaml:"version"`

	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	Intercept    float64   `json:"intercept" yaml:"intercept"`

	// Exponent is only set for the power variant.
	Exponent *float64 `json:"exponent,omitempty" yaml:"exponent,omitempty"`

	// Features and Target name the dataset columns, when known.
	Features []string `json:"features,omitempty" yaml:"features,omitempty"`
	Target   string   `json:"target,omitempty" yaml:"target,omitempty"`

	Hyperparameters map[string]interface{} `json:"hyperparameters" yaml:"hyperparameters"`

	Standardization *Standardization `json:"standardization,omitempty" yaml:"standardization,omitempty"`

	// Metadata carries training statistics such as the final loss.
	Metadata map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	IsFitted bool `json:"is_fitted" yaml:"is_fitted"`
}

// ToJSON serializes the weights as indented JSON.
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON replaces mw with the decoded data.
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "decode model weights")
	}
	return nil
}

// ToYAML serializes the weights as YAML.
func (mw *ModelWeights) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mw); err != nil {
		return nil, errors.Wrap(err, "encode model weights")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf.Bytes(), nil
}

// FromYAML replaces mw with the decoded data.
func (mw *ModelWeights) FromYAML(data []byte) error {
	if err := yaml.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "decode model weights")
	}
	return nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Save writes the weights to path. Files ending in .yaml or .yml are written as
// YAML, everything else as JSON.
//
// Example:
//
//	w, _ := reg.ExportWeights()
//	err := w.Save("ridge.yaml")
func (mw *ModelWeights) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAMLPath(path) {
		data, err = mw.ToYAML()
	} else {
		data, err = mw.ToJSON()
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write model weights to %s", path)
	}
	return nil
}

// LoadWeights reads and validates weights written by Save.
func LoadWeights(path string) (*ModelWeights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read model weights from %s", path)
	}
	mw := &ModelWeights{}
	if isYAMLPath(path) {
		err = mw.FromYAML(data)
	} else {
		err = mw.FromJSON(data)
	}
	if err != nil {
		return nil, err
	}
	if err := mw.Validate(); err != nil {
		return nil, err
	}
	return mw, nil
}

// Validate checks that the weights are self-consistent.
func (mw *ModelWeights) Validate() error {
	if mw.Variant == "" {
		return errors.NewValidationError("variant", "is required", mw.Variant)
	}
	if mw.Version == "" {
		return errors.NewValidationError("version", "is required", mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", 0)
	}
	if len(mw.Features) > 0 && len(mw.Features) != len(mw.Coefficients) {
		return errors.NewDimensionError("ModelWeights.Validate", len(mw.Coefficients), len(mw.Features), 1)
	}
	if s := mw.Standardization; s != nil {
		if len(s.Mean) != len(mw.Coefficients) || len(s.Scale) != len(mw.Coefficients) {
			return errors.NewDimensionError("ModelWeights.Validate", len(mw.Coefficients), len(s.Mean), 1)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := *mw
	clone.Coefficients = append([]float64(nil), mw.Coefficients...)
	clone.Features = append([]string(nil), mw.Features...)
	if mw.Exponent != nil {
		e := *mw.Exponent
		clone.Exponent = &e
	}
	if mw.Standardization != nil {
		clone.Standardization = &Standardization{
			Mean:  append([]float64(nil), mw.Standardization.Mean...),
			Scale: append([]float64(nil), mw.Standardization.Scale...),
		}
	}
	clone.Hyperparameters = cloneMap(mw.Hyperparameters)
	clone.Metadata = cloneMap(mw.Metadata)
	return &clone
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if s, ok := v.([]float64); ok {
			v = append([]float64(nil), s...)
		}
		out[k] = v
	}
	return out
}
