// Package preprocessing rescales features before training so that gradient
// descent tolerates larger learning rates.
package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/glib/core/model"
	"github.com/YuminosukeSato/glib/pkg/errors"
)

var _ model.Transformer = (*StandardScaler)(nil)

// minScale replaces the standard deviation of a constant column.
const minScale = 1e-8

// StandardScaler shifts every feature to zero mean and unit population
// standard deviation.
type StandardScaler struct {
	state *model.StateManager

	// Mean is the per-feature mean seen by Fit.
	Mean []float64
	// Scale is the per-feature standard deviation, 1 for constant columns.
	Scale []float64

	WithMean bool
	WithStd  bool
}

// NewStandardScaler returns an unfitted scaler.
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	Xs, err := scaler.FitTransform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault centers and scales.
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// NewStandardScalerFromParams restores a fitted scaler, e.g. from a parameter
// file.
func NewStandardScalerFromParams(p *model.Standardization) (*StandardScaler, error) {
	if p == nil || len(p.Mean) == 0 {
		return nil, errors.NewEmptyDatasetError("StandardScaler.FromParams")
	}
	if len(p.Scale) != len(p.Mean) {
		return nil, errors.NewDimensionError("StandardScaler.FromParams", len(p.Mean), len(p.Scale), 1)
	}
	for j, s := range p.Scale {
		if !(s > 0) || !errors.IsFinite(s) {
			return nil, errors.NewValidationError(fmt.Sprintf("scale[%d]", j), "must be positive and finite", s)
		}
	}

	s := NewStandardScalerDefault()
	s.Mean = append([]float64(nil), p.Mean...)
	s.Scale = append([]float64(nil), p.Scale...)
	s.state.SetFitted(len(p.Mean), 0)
	return s, nil
}

// Fit computes the per-feature mean and standard deviation of X.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	if X == nil {
		return errors.NewEmptyDatasetError("StandardScaler.Fit")
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewEmptyDatasetError("StandardScaler.Fit")
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, std := stat.PopMeanStdDev(col, nil)
		if s.WithMean {
			s.Mean[j] = mean
		}
		s.Scale[j] = 1
		if s.WithStd && std >= minScale {
			s.Scale[j] = std
		}
	}

	s.state.SetFitted(c, r)
	return nil
}

// Transform standardizes X with the fitted statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.check("Transform", X); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, X)
	return out, nil
}

// FitTransform fits on X and returns X standardized.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized data back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.check("InverseTransform", X); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}, X)
	return out, nil
}

// UnscaleCoefficients converts the weights w and bias c of a linear model
// trained on standardized features into the equivalent parameters for raw
// features.
func (s *StandardScaler) UnscaleCoefficients(w []float64, c float64) ([]float64, float64, error) {
	if err := s.state.RequireFitted("StandardScaler", "UnscaleCoefficients"); err != nil {
		return nil, 0, err
	}
	if len(w) != len(s.Scale) {
		return nil, 0, errors.NewDimensionError("StandardScaler.UnscaleCoefficients", len(s.Scale), len(w), 1)
	}
	raw := make([]float64, len(w))
	for j := range w {
		raw[j] = errors.SafeDivide(w[j], s.Scale[j])
		c -= raw[j] * s.Mean[j]
	}
	return raw, c, nil
}

// Params returns the fitted statistics for a parameter file, or nil.
func (s *StandardScaler) Params() *model.Standardization {
	if !s.state.IsFitted() {
		return nil
	}
	return &model.Standardization{
		Mean:  append([]float64(nil), s.Mean...),
		Scale: append([]float64(nil), s.Scale...),
	}
}

// IsFitted reports whether the statistics are available.
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}

func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)", s.WithMean, s.WithStd, len(s.Mean))
}

func (s *StandardScaler) check(method string, X mat.Matrix) error {
	if err := s.state.RequireFitted("StandardScaler", method); err != nil {
		return err
	}
	if X == nil {
		return errors.NewEmptyDatasetError("StandardScaler." + method)
	}
	_, c := X.Dims()
	return s.state.RequireFeatures("StandardScaler."+method, c)
}
