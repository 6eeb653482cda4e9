package descent

import "gonum.org/v1/gonum/mat"

// State holds the trainable parameters of one session: the weight vector w, the
// bias c and, for Power, the exponent p.
type State struct {
	Weights  *mat.VecDense
	Bias     float64
	Exponent float64
}

// NewState returns a State for nFeatures columns seeded from hp. nFeatures must
// be positive.
func NewState(nFeatures int, hp Hyperparameters) *State {
	w := mat.NewVecDense(nFeatures, nil)
	if hp.InitialWeights != nil {
		w.CopyVec(mat.NewVecDense(len(hp.InitialWeights), hp.InitialWeights))
	}
	return &State{
		Weights:  w,
		Bias:     hp.InitialBias,
		Exponent: hp.PowerExponent,
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	return &State{
		Weights:  mat.VecDenseCopyOf(s.Weights),
		Bias:     s.Bias,
		Exponent: s.Exponent,
	}
}

// WeightsSlice returns a copy of the weights.
func (s *State) WeightsSlice() []float64 {
	out := make([]float64, s.Weights.Len())
	for i := range out {
		out[i] = s.Weights.AtVec(i)
	}
	return out
}

// values lists every parameter for finiteness checks.
func (s *State) values() []float64 {
	return append(s.WeightsSlice(), s.Bias, s.Exponent)
}

// Gradient receives the partial derivatives computed by a Variant.
type Gradient struct {
	Weights  *mat.VecDense
	Bias     float64
	Exponent float64

	residual *mat.VecDense
}

// NewGradient allocates a Gradient for n samples and d features.
func NewGradient(n, d int) *Gradient {
	return &Gradient{
		Weights:  mat.NewVecDense(d, nil),
		residual: mat.NewVecDense(n, nil),
	}
}

// reset zeroes the gradient before a variant fills it.
func (g *Gradient) reset() {
	g.Weights.Zero()
	g.Bias = 0
	g.Exponent = 0
}

// residualOf stores y − ŷ in the gradient's scratch vector and returns it.
func (g *Gradient) residualOf(y, yHat *mat.VecDense) *mat.VecDense {
	if g.residual == nil || g.residual.Len() != y.Len() {
		g.residual = mat.NewVecDense(y.Len(), nil)
	}
	g.residual.SubVec(y, yHat)
	return g.residual
}
