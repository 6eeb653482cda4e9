package descent

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/pkg/errors"
)

// Power fits ŷ = m·xᵖ + c on a single feature. m is stored as the only weight
// and p as the state's Exponent.
//
// The updates are
//
//	dm = −(2/n)·Σ x(y−ŷ)
//	dc = −(2/n)·Σ (y−ŷ)
//	dp = −(2/n)·Σ m·p·x(y−ŷ)
//
// dm and dp use x where the exact derivatives would use xᵖ and m·xᵖ·ln x.
// Negative x with a non-integer p yields NaN, which ends training as diverged.
type Power struct{}

func (Power) Kind() Kind { return KindPower }

// CheckFeatures implements FeatureChecker.
func (Power) CheckFeatures(nFeatures int) error {
	if nFeatures != 1 {
		return errors.NewDimensionError("PowerRegression", 1, nFeatures, 1)
	}
	return nil
}

func (Power) Hypothesis(X mat.Matrix, s *State, dst *mat.VecDense) {
	m := s.Weights.AtVec(0)
	for i := 0; i < dst.Len(); i++ {
		dst.SetVec(i, m*math.Pow(X.At(i, 0), s.Exponent)+s.Bias)
	}
}

func (Power) Gradient(X mat.Matrix, y, yHat *mat.VecDense, s *State, g *Gradient) {
	r := g.residualOf(y, yHat)
	m, p := s.Weights.AtVec(0), s.Exponent

	var sx, sr, sp float64
	for i := 0; i < r.Len(); i++ {
		x, ri := X.At(i, 0), r.AtVec(i)
		sx += x * ri
		sr += ri
		sp += m * p * x * ri
	}

	scale := -2 / float64(r.Len())
	g.Weights.SetVec(0, scale*sx)
	g.Bias = scale * sr
	g.Exponent = scale * sp
}
