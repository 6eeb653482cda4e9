// Package glib trains small regression models by fixed-iteration batch
// gradient descent on gonum matrices.
//
// Five models share one training loop and differ only in their hypothesis
// and gradient:
//
//   - LinearRegression: ŷ = X·w + c
//   - Ridge: LinearRegression with Lambda·w⊙w added to the weight gradient
//   - Lasso: LinearRegression with Lambda·|w| added to the weight gradient
//   - PowerRegression: ŷ = m·xᵖ + c on a single feature, learning m, c and p
//   - LogisticRegression: ŷ = σ(X·w + c) trained on squared error
//
// Training stops after the configured number of iterations, or earlier with
// an error matching errors.ErrDiverged when any loss or parameter becomes
// non-finite. Every session records its loss history and can report
// per-iteration snapshots to observers.
//
// # Quick Start
//
//	X := mat.NewDense(3, 1, []float64{1, 2, 3})
//	y := mat.NewVecDense(3, []float64{2, 4, 6})
//
//	m := linear.NewLinearRegression(
//		linear.WithIterations(1000),
//		linear.WithLearningRate(0.01),
//	)
//	if err := m.Fit(X, y); err != nil {
//		log.Fatal(err)
//	}
//	pred, _ := m.Predict(mat.NewDense(1, 1, []float64{4}))
//
// # Packages
//
//   - core/descent: hyperparameters, variants, the training loop and traces
//   - core/model: model interfaces, fitted state and parameter files
//   - core/parallel: row-parallel prediction and concurrent sessions
//   - linear: the user-facing models, learning-rate sweeps and persistence
//   - preprocessing: feature standardization
//   - metrics: regression and binary classification metrics
//   - observe: in-memory, log and Prometheus training observers
//   - visualize: loss curves, parameter trajectories and fitted curves
//   - pkg/errors, pkg/log: error types and structured logging
//
// The glib command in cmd/glib fits models on CSV files and predicts with the
// saved parameters.
package glib
