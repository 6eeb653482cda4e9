// Package descent implements the fixed-iteration gradient-descent loop shared by
// every glib model variant.
//
// Fit is pure computation: it performs no I/O, starts no goroutines and draws no
// random numbers, so identical inputs always produce identical trajectories.
// Logging, plotting and metrics are attached as Observers.
package descent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/metrics"
	"github.com/YuminosukeSato/glib/pkg/errors"
)

// Fit runs hp.Iterations gradient-descent steps of variant on X (n×d) and y
// (length n). Each step computes ŷ, records MSE(y, ŷ) in the trace, computes the
// gradient at the current parameters and applies
//
//	w −= lr·dw,  c −= blr·dc,  p −= lr·dp
//
// then notifies observers.
//
// Validation failures return InvalidConfiguration, EmptyDataset or
// DimensionMismatch before any iteration runs, with a nil State and Trace.
// When the loss or a parameter becomes NaN or ±Inf, Fit stops at that
// iteration and returns the State as it stands, the partial Trace, and a
// Diverged error.
func Fit(X mat.Matrix, y mat.Vector, hp Hyperparameters, variant Variant, observers ...Observer) (state *State, trace *Trace, err error) {
	defer errors.Recover(&err, "descent.Fit")

	n, d, err := validate(X, y, hp, variant)
	if err != nil {
		return nil, nil, err
	}

	target := mat.VecDenseCopyOf(y)
	yHat := mat.NewVecDense(n, nil)
	grad := NewGradient(n, d)
	lr, blr := hp.LearningRate, hp.biasRate()
	notify := MultiObserver(observers...)

	state = NewState(d, hp)
	trace = newTrace(hp.Iterations)

	for it := 0; it < hp.Iterations; it++ {
		variant.Hypothesis(X, state, yHat)
		loss, err := metrics.MSE(target, yHat)
		if err != nil {
			return state, trace, err
		}

		grad.reset()
		variant.Gradient(X, target, yHat, state, grad)

		state.Weights.AddScaledVec(state.Weights, -lr, grad.Weights)
		state.Bias -= blr * grad.Bias
		state.Exponent -= lr * grad.Exponent

		trace.record(it, loss)
		divErr := errors.CheckScalar("loss", loss, it)
		if divErr == nil {
			divErr = errors.CheckNumericalStability("parameters", state.values(), it)
		}
		if divErr != nil {
			trace.markDiverged(it)
		}

		if len(observers) > 0 {
			notify(Snapshot{
				Iteration: it,
				Loss:      trace.At(it),
				Weights:   state.WeightsSlice(),
				Bias:      state.Bias,
				Exponent:  state.Exponent,
				Diverged:  divErr != nil,
			})
		}

		if divErr != nil {
			return state, trace, errors.Wrap(divErr, variant.Kind().DisplayName())
		}
	}

	return state, trace, nil
}

func validate(X mat.Matrix, y mat.Vector, hp Hyperparameters, variant Variant) (n, d int, err error) {
	if variant == nil {
		return 0, 0, errors.NewValidationError("variant", "must not be nil", nil)
	}
	if err := hp.Validate(); err != nil {
		return 0, 0, err
	}
	if X == nil || y == nil {
		return 0, 0, errors.NewEmptyDatasetError("descent.Fit")
	}
	n, d = X.Dims()
	if n == 0 || d == 0 || y.Len() == 0 {
		return 0, 0, errors.NewEmptyDatasetError("descent.Fit")
	}
	if y.Len() != n {
		return 0, 0, errors.NewDimensionError("descent.Fit", n, y.Len(), 0)
	}
	if hp.InitialWeights != nil && len(hp.InitialWeights) != d {
		return 0, 0, errors.NewDimensionError("descent.Fit", d, len(hp.InitialWeights), 1)
	}
	if fc, ok := variant.(FeatureChecker); ok {
		if err := fc.CheckFeatures(d); err != nil {
			return 0, 0, err
		}
	}
	return n, d, nil
}

// Predict applies variant's hypothesis with the fitted state to X.
func Predict(X mat.Matrix, s *State, variant Variant) (*mat.VecDense, error) {
	if s == nil {
		return nil, errors.NewNotFittedError(variant.Kind().DisplayName(), "Predict")
	}
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return nil, errors.NewEmptyDatasetError("descent.Predict")
	}
	if d != s.Weights.Len() {
		return nil, errors.NewDimensionError("descent.Predict", s.Weights.Len(), d, 1)
	}
	dst := mat.NewVecDense(n, nil)
	variant.Hypothesis(X, s, dst)
	return dst, nil
}
