package linear

import (
	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/pkg/log"
)

// Option configures a Regressor.
type Option func(*Regressor)

// WithIterations sets the exact number of gradient-descent steps.
func WithIterations(n int) Option {
	return func(r *Regressor) {
		r.hp.Iterations = n
	}
}

// WithLearningRate sets the step size for the weights and the exponent.
func WithLearningRate(lr float64) Option {
	return func(r *Regressor) {
		r.hp.LearningRate = lr
	}
}

// WithLambda sets the regularization strength of Ridge and Lasso.
func WithLambda(lambda float64) Option {
	return func(r *Regressor) {
		r.hp.Lambda = lambda
	}
}

// WithPowerExponent sets the starting exponent of PowerRegression.
func WithPowerExponent(p float64) Option {
	return func(r *Regressor) {
		r.hp.PowerExponent = p
	}
}

// WithBiasLearningRate gives the bias its own step size.
func WithBiasLearningRate(lr float64) Option {
	return func(r *Regressor) {
		r.hp.BiasLearningRate = lr
	}
}

// WithInitialWeights seeds the weight vector. The slice is copied.
func WithInitialWeights(w []float64) Option {
	return func(r *Regressor) {
		r.hp.InitialWeights = append([]float64(nil), w...)
	}
}

// WithInitialBias seeds the bias.
func WithInitialBias(c float64) Option {
	return func(r *Regressor) {
		r.hp.InitialBias = c
	}
}

// WithHyperparameters replaces every hyperparameter at once.
func WithHyperparameters(hp descent.Hyperparameters) Option {
	return func(r *Regressor) {
		r.hp = hp.Clone()
	}
}

// WithObserver adds an observer called once per training iteration.
func WithObserver(o descent.Observer) Option {
	return func(r *Regressor) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// WithLogger sets the logger for training summaries. The default discards
// everything.
func WithLogger(l log.Logger) Option {
	return func(r *Regressor) {
		if l != nil {
			r.logger = l
		}
	}
}
