package model

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/YuminosukeSato/glib/pkg/errors"
)

func sampleWeights() *ModelWeights {
	exp := 1.5
	return &ModelWeights{
		ModelType:    "PowerRegression",
		Variant:      "power",
		Version:      WeightsVersion,
		Coefficients: []float64{2.5},
		Intercept:    -0.75,
		Exponent:     &exp,
		Features:     []string{"x"},
		Target:       "y",
		Hyperparameters: map[string]interface{}{
			"iterations":    100,
			"learning_rate": 1e-7,
		},
		Standardization: &Standardization{Mean: []float64{3}, Scale: []float64{2}},
		Metadata:        map[string]interface{}{"final_loss": 0.125},
		IsFitted:        true,
	}
}

func TestModelWeightsSaveLoad(t *testing.T) {
	for _, name := range []string{"weights.json", "weights.yaml", "weights.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := sampleWeights()

			if err := want.Save(path); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := LoadWeights(path)
			if err != nil {
				t.Fatalf("LoadWeights() error = %v", err)
			}

			if got.Variant != want.Variant || got.ModelType != want.ModelType {
				t.Errorf("variant/model type = %q/%q", got.Variant, got.ModelType)
			}
			if !reflect.DeepEqual(got.Coefficients, want.Coefficients) {
				t.Errorf("Coefficients = %v, want %v", got.Coefficients, want.Coefficients)
			}
			if got.Intercept != want.Intercept {
				t.Errorf("Intercept = %v, want %v", got.Intercept, want.Intercept)
			}
			if got.Exponent == nil || *got.Exponent != 1.5 {
				t.Errorf("Exponent = %v, want 1.5", got.Exponent)
			}
			if !reflect.DeepEqual(got.Standardization, want.Standardization) {
				t.Errorf("Standardization = %+v, want %+v", got.Standardization, want.Standardization)
			}
			if got.Target != "y" || !reflect.DeepEqual(got.Features, []string{"x"}) {
				t.Errorf("Features/Target = %v/%q", got.Features, got.Target)
			}
		})
	}
}

func TestModelWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *ModelWeights)
		wantErr error
	}{
		{"valid", func(w *ModelWeights) {}, nil},
		{"missing variant", func(w *ModelWeights) { w.Variant = "" }, errors.ErrInvalidConfiguration},
		{"missing version", func(w *ModelWeights) { w.Version = "" }, errors.ErrInvalidConfiguration},
		{"fitted without coefficients", func(w *ModelWeights) { w.Coefficients = nil; w.Features = nil; w.Standardization = nil }, errors.ErrInvalidConfiguration},
		{"unfitted with coefficients", func(w *ModelWeights) { w.IsFitted = false }, errors.ErrInvalidConfiguration},
		{"feature names mismatch", func(w *ModelWeights) { w.Features = []string{"a", "b"} }, errors.ErrDimensionMismatch},
		{"standardization mismatch", func(w *ModelWeights) { w.Standardization.Mean = nil }, errors.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := sampleWeights()
			tt.mutate(w)
			err := w.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestModelWeightsClone(t *testing.T) {
	w := sampleWeights()
	c := w.Clone()

	c.Coefficients[0] = 99
	*c.Exponent = 3
	c.Standardization.Mean[0] = -1
	c.Hyperparameters["iterations"] = 1

	if w.Coefficients[0] != 2.5 || *w.Exponent != 1.5 || w.Standardization.Mean[0] != 3 {
		t.Error("Clone should not share slices or pointers with the original")
	}
	if w.Hyperparameters["iterations"] != 100 {
		t.Error("Clone should not share the hyperparameter map")
	}
}

func TestLoadWeightsMissingFile(t *testing.T) {
	if _, err := LoadWeights(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("LoadWeights() should fail for a missing file")
	}
}
