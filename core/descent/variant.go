package descent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/pkg/errors"
)

// Variant is one model family: a hypothesis and the gradient of the MSE loss
// with respect to the parameters.
type Variant interface {
	// Kind identifies the variant.
	Kind() Kind

	// Hypothesis writes the predictions for X into dst, which has one element
	// per row of X. It must not modify s or X.
	Hypothesis(X mat.Matrix, s *State, dst *mat.VecDense)

	// Gradient fills g with the partial derivatives at s, given the targets y
	// and the predictions yHat that Hypothesis produced for s.
	Gradient(X mat.Matrix, y, yHat *mat.VecDense, s *State, g *Gradient)
}

// FeatureChecker is implemented by variants that only accept some feature
// counts.
type FeatureChecker interface {
	CheckFeatures(nFeatures int) error
}

// NewVariant returns the variant for kind. Ridge and Lasso take their
// regularization strength from hp.Lambda.
func NewVariant(kind Kind, hp Hyperparameters) (Variant, error) {
	switch kind {
	case KindLinear:
		return Linear{}, nil
	case KindRidge:
		return Ridge{Lambda: hp.Lambda}, nil
	case KindLasso:
		return Lasso{Lambda: hp.Lambda}, nil
	case KindPower:
		return Power{}, nil
	case KindLogistic:
		return Logistic{}, nil
	}
	return nil, errors.NewValidationError("model", "unknown kind", int(kind))
}

// affine writes X·w + c into dst.
func affine(X mat.Matrix, s *State, dst *mat.VecDense) {
	dst.MulVec(X, s.Weights)
	for i := 0; i < dst.Len(); i++ {
		dst.SetVec(i, dst.AtVec(i)+s.Bias)
	}
}

// leastSquaresGradient fills g with dw = −(2/n)·Xᵀt and dc = −(2/n)·Σt.
func leastSquaresGradient(X mat.Matrix, t *mat.VecDense, g *Gradient) {
	n := float64(t.Len())
	g.Weights.MulVec(X.T(), t)
	g.Weights.ScaleVec(-2/n, g.Weights)
	g.Bias = -2 / n * mat.Sum(t)
}
