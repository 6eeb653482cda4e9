package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/core/model"
	"github.com/YuminosukeSato/glib/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	s := NewStandardScalerDefault()
	Xs, err := s.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	if s.Mean[0] != 2.5 || s.Mean[1] != 10 {
		t.Errorf("Mean = %v, want [2.5 10]", s.Mean)
	}
	if math.Abs(s.Scale[0]-math.Sqrt(1.25)) > 1e-12 {
		t.Errorf("Scale[0] = %v, want %v", s.Scale[0], math.Sqrt(1.25))
	}
	if s.Scale[1] != 1 {
		t.Errorf("constant column scale = %v, want 1", s.Scale[1])
	}

	col := mat.Col(nil, 0, Xs)
	var sum, sq float64
	for _, v := range col {
		sum += v
		sq += v * v
	}
	if math.Abs(sum) > 1e-12 || math.Abs(sq/4-1) > 1e-12 {
		t.Errorf("standardized column has mean %v and variance %v", sum/4, sq/4)
	}
	for i := 0; i < 4; i++ {
		if Xs.At(i, 1) != 0 {
			t.Errorf("constant column should map to 0, got %v", Xs.At(i, 1))
		}
	}

	back, err := s.InverseTransform(Xs)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}
	if !mat.EqualApprox(back, X, 1e-12) {
		t.Errorf("InverseTransform() = %v, want %v", mat.Formatted(back), mat.Formatted(X))
	}
}

func TestStandardScalerOptions(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{2, 6})

	s := NewStandardScaler(false, true)
	if err := s.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if s.Mean[0] != 0 || s.Scale[0] != 2 {
		t.Errorf("with_mean=false: Mean = %v, Scale = %v", s.Mean, s.Scale)
	}

	s = NewStandardScaler(true, false)
	if err := s.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if s.Mean[0] != 4 || s.Scale[0] != 1 {
		t.Errorf("with_std=false: Mean = %v, Scale = %v", s.Mean, s.Scale)
	}
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScalerDefault()

	if _, err := s.Transform(mat.NewDense(1, 1, []float64{1})); !errors.Is(err, errors.ErrNotFitted) {
		t.Errorf("Transform() before Fit error = %v, want ErrNotFitted", err)
	}
	if err := s.Fit(&mat.Dense{}); !errors.Is(err, errors.ErrEmptyDataset) {
		t.Errorf("Fit() on empty data error = %v, want ErrEmptyDataset", err)
	}
	if s.Params() != nil {
		t.Error("Params() should be nil before Fit")
	}

	if err := s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := s.Transform(mat.NewDense(1, 3, nil)); !errors.Is(err, errors.ErrDimensionMismatch) {
		t.Errorf("Transform() error = %v, want ErrDimensionMismatch", err)
	}
	if _, _, err := s.UnscaleCoefficients([]float64{1}, 0); !errors.Is(err, errors.ErrDimensionMismatch) {
		t.Errorf("UnscaleCoefficients() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestUnscaleCoefficients(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 100,
		2, 300,
		6, 200,
	})
	s := NewStandardScalerDefault()
	Xs, err := s.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	w, c := []float64{0.5, -2}, 3.0
	raw, rawC, err := s.UnscaleCoefficients(w, c)
	if err != nil {
		t.Fatalf("UnscaleCoefficients() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		scaled := Xs.At(i, 0)*w[0] + Xs.At(i, 1)*w[1] + c
		original := X.At(i, 0)*raw[0] + X.At(i, 1)*raw[1] + rawC
		if math.Abs(scaled-original) > 1e-9 {
			t.Errorf("row %d: %v != %v", i, scaled, original)
		}
	}
}

func TestStandardScalerParams(t *testing.T) {
	s := NewStandardScalerDefault()
	if err := s.Fit(mat.NewDense(2, 1, []float64{0, 4})); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	restored, err := NewStandardScalerFromParams(s.Params())
	if err != nil {
		t.Fatalf("NewStandardScalerFromParams() error = %v", err)
	}
	got, err := restored.Transform(mat.NewDense(1, 1, []float64{4}))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got.At(0, 0) != 1 {
		t.Errorf("Transform() = %v, want 1", got.At(0, 0))
	}

	tests := []struct {
		name string
		p    *model.Standardization
	}{
		{"nil", nil},
		{"length mismatch", &model.Standardization{Mean: []float64{0}, Scale: []float64{1, 2}}},
		{"zero scale", &model.Standardization{Mean: []float64{0}, Scale: []float64{0}}},
		{"NaN scale", &model.Standardization{Mean: []float64{0}, Scale: []float64{math.NaN()}}},
	}
	for _, tt := range tests {
		if _, err := NewStandardScalerFromParams(tt.p); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}
