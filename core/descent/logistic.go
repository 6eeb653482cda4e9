package descent

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/pkg/errors"
)

// ProbabilityEpsilon bounds Logistic outputs to [ε, 1−ε].
const ProbabilityEpsilon = 1e-15

// Sigmoid returns 1/(1+e^−z) clamped to [ε, 1−ε], so the result lies strictly
// inside (0, 1) for every z. NaN maps to 0.5.
func Sigmoid(z float64) float64 {
	var s float64
	switch {
	case math.IsNaN(z):
		s = 0.5
	case z >= 0:
		s = 1 / (1 + math.Exp(-z))
	default:
		e := math.Exp(z)
		s = e / (1 + e)
	}
	return errors.ClipValue(s, ProbabilityEpsilon, 1-ProbabilityEpsilon)
}

// Logistic is ŷ = σ(X·w + c) trained on the MSE of σ's output, not on
// cross-entropy. Predictions are probabilities; callers choose the threshold.
type Logistic struct{}

func (Logistic) Kind() Kind { return KindLogistic }

func (Logistic) Hypothesis(X mat.Matrix, s *State, dst *mat.VecDense) {
	affine(X, s, dst)
	for i := 0; i < dst.Len(); i++ {
		dst.SetVec(i, Sigmoid(dst.AtVec(i)))
	}
}

// Gradient uses dσ/dz = ŷ(1−ŷ):
//
//	dw = −(2/n)·Xᵀ((y−ŷ)⊙ŷ⊙(1−ŷ))
//	dc = −(2/n)·Σ (y−ŷ)·ŷ·(1−ŷ)
func (Logistic) Gradient(X mat.Matrix, y, yHat *mat.VecDense, s *State, g *Gradient) {
	t := g.residualOf(y, yHat)
	for i := 0; i < t.Len(); i++ {
		p := yHat.AtVec(i)
		t.SetVec(i, t.AtVec(i)*p*(1-p))
	}
	leastSquaresGradient(X, t, g)
}
