// Package model defines the estimator interfaces shared by glib models, the
// fitted-state bookkeeping behind them, and the portable ModelWeights format.
package model

import "gonum.org/v1/gonum/mat"

// Fitter is a model that can be trained.
type Fitter interface {
	// Fit trains the model on X (n×d) and y (n×1).
	Fit(X, y mat.Matrix) error
}

// Predictor is a model that can make predictions.
type Predictor interface {
	// Predict returns an n×1 matrix of predictions for X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// LinearModel exposes learned parameters of a model whose hypothesis is built
// from a weight vector and an intercept.
type LinearModel interface {
	Weights() []float64
	Intercept() float64
	// Score returns R² of the predictions for X against y.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor is a trainable linear model.
type Regressor interface {
	Fitter
	Predictor
	LinearModel
}

// Transformer learns a data transformation and applies it.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
