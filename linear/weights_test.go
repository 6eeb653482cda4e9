package linear

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/core/model"
	"github.com/YuminosukeSato/glib/pkg/errors"
)

func fittedModel(t *testing.T, kind descent.Kind) (*Regressor, *mat.Dense) {
	t.Helper()
	var (
		m *Regressor
		X *mat.Dense
		y *mat.Dense
	)
	switch kind {
	case descent.KindPower:
		m = NewPowerRegression(WithIterations(200), WithLearningRate(1e-5))
		X, y = column(1, 2, 3, 4), column(3.0, 6.66, 11.39, 17)
	case descent.KindLogistic:
		m = NewLogisticRegression(WithIterations(100), WithLearningRate(0.1), WithBiasLearningRate(0.05))
		X, y = column(-2, -1, 1, 2), column(0, 0, 1, 1)
	default:
		m = New(kind, WithIterations(200), WithLearningRate(0.01), WithLambda(0.05))
		X = mat.NewDense(4, 2, []float64{1, 2, 2, 1, 3, 4, 4, 3})
		y = column(5, 4, 11, 10)
	}
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	return m, X
}

func TestWeightsRoundTrip(t *testing.T) {
	for _, kind := range descent.Kinds() {
		for _, ext := range []string{"json", "yaml"} {
			t.Run(kind.String()+"/"+ext, func(t *testing.T) {
				m, X := fittedModel(t, kind)

				mw, err := m.ExportWeights()
				if err != nil {
					t.Fatalf("ExportWeights() error = %v", err)
				}
				if mw.Variant != kind.String() || mw.ModelType != kind.DisplayName() || !mw.IsFitted {
					t.Errorf("unexpected header: %+v", mw)
				}
				if (mw.Exponent != nil) != (kind == descent.KindPower) {
					t.Errorf("Exponent should only be exported for power, got %v", mw.Exponent)
				}

				path := filepath.Join(t.TempDir(), "model."+ext)
				if err := mw.Save(path); err != nil {
					t.Fatalf("Save() error = %v", err)
				}
				loaded, err := model.LoadWeights(path)
				if err != nil {
					t.Fatalf("LoadWeights() error = %v", err)
				}

				restored, err := FromWeights(loaded)
				if err != nil {
					t.Fatalf("FromWeights() error = %v", err)
				}
				if !restored.IsFitted() || restored.Kind() != kind {
					t.Fatalf("restored model: fitted=%v kind=%v", restored.IsFitted(), restored.Kind())
				}
				if diff := cmp.Diff(m.Hyperparameters(), restored.Hyperparameters()); diff != "" {
					t.Errorf("hyperparameters mismatch (-want +got):\n%s", diff)
				}

				want, _ := m.Predict(X)
				got, err := restored.Predict(X)
				if err != nil {
					t.Fatalf("Predict() error = %v", err)
				}
				if !mat.EqualApprox(want, got, 1e-12) {
					t.Errorf("predictions differ:\n%v\n%v", mat.Formatted(want), mat.Formatted(got))
				}
				if math.Abs(restored.Exponent()-m.Exponent()) > 1e-12 {
					t.Errorf("Exponent() = %v, want %v", restored.Exponent(), m.Exponent())
				}
			})
		}
	}
}

func TestExportWeightsMetadata(t *testing.T) {
	m, _ := fittedModel(t, descent.KindLinear)
	mw, err := m.ExportWeights()
	if err != nil {
		t.Fatalf("ExportWeights() error = %v", err)
	}
	if mw.Metadata["iterations_run"] != 200 {
		t.Errorf("iterations_run = %v", mw.Metadata["iterations_run"])
	}
	final, _ := m.Trace().Final()
	if mw.Metadata["final_loss"] != final {
		t.Errorf("final_loss = %v, want %v", mw.Metadata["final_loss"], final)
	}
	if _, ok := mw.Hyperparameters["initial_weights"]; ok {
		t.Error("unset initial weights should be omitted")
	}
	if mw.Hyperparameters["iterations"] != 200 {
		t.Errorf("iterations = %v", mw.Hyperparameters["iterations"])
	}
}

func TestFromWeightsErrors(t *testing.T) {
	base := func() *model.ModelWeights {
		return &model.ModelWeights{
			ModelType:       "LinearRegression",
			Variant:         "linear",
			Version:         model.WeightsVersion,
			Coefficients:    []float64{2},
			Hyperparameters: map[string]interface{}{"iterations": 10.0, "learning_rate": 0.01},
			IsFitted:        true,
		}
	}

	tests := []struct {
		name   string
		modify func(mw *model.ModelWeights)
		want   error
	}{
		{"unknown variant", func(mw *model.ModelWeights) { mw.Variant = "svm" }, errors.ErrInvalidConfiguration},
		{"missing version", func(mw *model.ModelWeights) { mw.Version = "" }, errors.ErrInvalidConfiguration},
		{"not fitted", func(mw *model.ModelWeights) { mw.IsFitted = false; mw.Coefficients = nil }, errors.ErrNotFitted},
		{"unknown hyperparameter", func(mw *model.ModelWeights) { mw.Hyperparameters["momentum"] = 0.9 }, errors.ErrInvalidConfiguration},
		{"invalid hyperparameter", func(mw *model.ModelWeights) { mw.Hyperparameters["learning_rate"] = -1.0 }, errors.ErrInvalidConfiguration},
		{"power with two weights", func(mw *model.ModelWeights) { mw.Variant = "power"; mw.Coefficients = []float64{1, 2} }, errors.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := base()
			tt.modify(mw)
			if _, err := FromWeights(mw); !errors.Is(err, tt.want) {
				t.Errorf("FromWeights() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := FromWeights(nil); err == nil {
		t.Error("FromWeights(nil) should fail")
	}

	m, err := FromWeights(base())
	if err != nil {
		t.Fatalf("FromWeights() error = %v", err)
	}
	if hp := m.Hyperparameters(); hp.Iterations != 10 || hp.Lambda != 0.02 {
		t.Errorf("hyperparameters = %+v, want iterations from the file and default lambda", hp)
	}
}
