package descent

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Linear is ordinary least squares: ŷ = X·w + c.
type Linear struct{}

func (Linear) Kind() Kind { return KindLinear }

func (Linear) Hypothesis(X mat.Matrix, s *State, dst *mat.VecDense) {
	affine(X, s, dst)
}

func (Linear) Gradient(X mat.Matrix, y, yHat *mat.VecDense, s *State, g *Gradient) {
	leastSquaresGradient(X, g.residualOf(y, yHat), g)
}

// Ridge adds Lambda·w⊙w to the weight gradient of Linear.
//
// The penalty is the square of the current weight, not the derivative 2·λ·w
// of an L2 term, so negative weights are pushed further down.
type Ridge struct {
	Lambda float64
}

func (Ridge) Kind() Kind { return KindRidge }

func (Ridge) Hypothesis(X mat.Matrix, s *State, dst *mat.VecDense) {
	affine(X, s, dst)
}

func (r Ridge) Gradient(X mat.Matrix, y, yHat *mat.VecDense, s *State, g *Gradient) {
	leastSquaresGradient(X, g.residualOf(y, yHat), g)
	for j := 0; j < g.Weights.Len(); j++ {
		w := s.Weights.AtVec(j)
		g.Weights.SetVec(j, g.Weights.AtVec(j)+r.Lambda*w*w)
	}
}

// Lasso adds Lambda·|w| to the weight gradient of Linear.
//
// |w| is used as is rather than the subgradient λ·sign(w).
type Lasso struct {
	Lambda float64
}

func (Lasso) Kind() Kind { return KindLasso }

func (Lasso) Hypothesis(X mat.Matrix, s *State, dst *mat.VecDense) {
	affine(X, s, dst)
}

func (l Lasso) Gradient(X mat.Matrix, y, yHat *mat.VecDense, s *State, g *Gradient) {
	leastSquaresGradient(X, g.residualOf(y, yHat), g)
	for j := 0; j < g.Weights.Len(); j++ {
		g.Weights.SetVec(j, g.Weights.AtVec(j)+l.Lambda*math.Abs(s.Weights.AtVec(j)))
	}
}
