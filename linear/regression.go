// Package linear provides the gradient-descent regression models of glib:
// LinearRegression, Ridge, Lasso, PowerRegression and LogisticRegression.
//
// Every model is a Regressor configured with functional options:
//
//	m := linear.NewRidge(linear.WithIterations(500), linear.WithLearningRate(0.01))
//	if err := m.Fit(X, y); err != nil {
//		// errors.Is(err, errors.ErrDiverged) etc.
//	}
//	pred, _ := m.Predict(Xtest)
package linear

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/core/model"
	"github.com/YuminosukeSato/glib/core/parallel"
	"github.com/YuminosukeSato/glib/metrics"
	"github.com/YuminosukeSato/glib/pkg/errors"
	"github.com/YuminosukeSato/glib/pkg/log"
)

var _ model.Regressor = (*Regressor)(nil)

// Regressor is a model trained by fixed-iteration gradient descent.
// Concurrent Predict calls are safe; Fit excludes every other method.
type Regressor struct {
	mu sync.RWMutex

	kind      descent.Kind
	hp        descent.Hyperparameters
	variant   descent.Variant
	state     *descent.State
	trace     *descent.Trace
	observers []descent.Observer
	logger    log.Logger
	fitted    *model.StateManager
}

// New returns an unfitted Regressor of the given kind, starting from
// descent.DefaultsFor(kind).
func New(kind descent.Kind, opts ...Option) *Regressor {
	r := &Regressor{
		kind:   kind,
		hp:     descent.DefaultsFor(kind),
		logger: log.Nop(),
		fitted: model.NewStateManager(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewLinearRegression returns ordinary least squares.
func NewLinearRegression(opts ...Option) *Regressor {
	return New(descent.KindLinear, opts...)
}

// NewRidge returns linear regression with the Lambda·w⊙w weight penalty.
func NewRidge(opts ...Option) *Regressor {
	return New(descent.KindRidge, opts...)
}

// NewLasso returns linear regression with the Lambda·|w| weight penalty.
func NewLasso(opts ...Option) *Regressor {
	return New(descent.KindLasso, opts...)
}

// NewPowerRegression returns the single-feature model ŷ = m·xᵖ + c.
func NewPowerRegression(opts ...Option) *Regressor {
	return New(descent.KindPower, opts...)
}

// NewLogisticRegression returns ŷ = σ(X·w + c) trained on squared error.
func NewLogisticRegression(opts ...Option) *Regressor {
	return New(descent.KindLogistic, opts...)
}

// Fit trains the model on X (n×d) and y (n×1). It returns
// InvalidConfiguration, EmptyDataset or DimensionMismatch errors before any
// iteration runs, and a Diverged error when training hits a non-finite value.
// After any failure the model is not fitted; Trace still reports the partial
// loss history of a diverged session.
func (r *Regressor) Fit(X, y mat.Matrix) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer errors.Recover(&err, r.kind.DisplayName()+".Fit")

	r.state, r.trace = nil, nil
	r.fitted.Reset()

	target, err := columnVector(r.kind.DisplayName()+".Fit", y)
	if err != nil {
		return err
	}
	if X == nil {
		return errors.NewEmptyDatasetError(r.kind.DisplayName() + ".Fit")
	}
	variant, err := descent.NewVariant(r.kind, r.hp)
	if err != nil {
		return err
	}
	r.variant = variant

	n, d := X.Dims()
	logger := r.logger.With(
		log.ModelNameKey, r.kind.DisplayName(),
		log.VariantKey, r.kind.String(),
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
	)
	logger.Info("Training started",
		log.SamplesKey, n,
		log.FeaturesKey, d,
		log.IterationsKey, r.hp.Iterations,
		log.LearningRateKey, r.hp.LearningRate,
		log.LambdaKey, r.hp.Lambda,
	)

	start := time.Now()
	state, trace, err := descent.Fit(X, target, r.hp, variant, r.observers...)
	r.trace = trace
	if err != nil {
		if errors.Is(err, errors.ErrDiverged) {
			logger.Warn("Training diverged",
				log.DivergedKey, true,
				log.IterationKey, trace.DivergedAt(),
				log.ErrorCodeKey, log.ErrorDiverged,
				log.SuggestionKey, "lower the learning rate or standardize the features",
			)
		} else {
			logger.Error("Training failed", err)
		}
		return err
	}

	r.state = state
	r.fitted.SetFitted(d, n)

	loss, _ := trace.Final()
	logger.Info("Training completed",
		log.LossKey, loss,
		log.WeightsKey, state.WeightsSlice(),
		log.BiasKey, state.Bias,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict returns the n×1 predictions for X. Rows are split across
// goroutines above parallel.DefaultThreshold.
func (r *Regressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op := r.kind.DisplayName() + ".Predict"
	if err := r.fitted.RequireFitted(r.kind.DisplayName(), "Predict"); err != nil {
		return nil, err
	}
	if X == nil {
		return nil, errors.NewEmptyDatasetError(op)
	}
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return nil, errors.NewEmptyDatasetError(op)
	}
	if err := r.fitted.RequireFeatures(op, d); err != nil {
		return nil, err
	}

	xd := asDense(X)
	out := mat.NewVecDense(n, nil)
	parallel.ParallelizeWithThreshold(n, parallel.DefaultThreshold, func(start, end int) {
		rows := xd.Slice(start, end, 0, d)
		dst := out.SliceVec(start, end).(*mat.VecDense)
		r.variant.Hypothesis(rows, r.state, dst)
	})

	return mat.NewDense(n, 1, out.RawVector().Data), nil
}

// Score returns R² of the predictions for X against y.
func (r *Regressor) Score(X, y mat.Matrix) (float64, error) {
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, pred)
}

// Weights returns a copy of the fitted weights, or nil before a successful fit.
// For PowerRegression the single weight is the coefficient m.
func (r *Regressor) Weights() []float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state == nil {
		return nil
	}
	return r.state.WeightsSlice()
}

// Intercept returns the fitted bias c.
func (r *Regressor) Intercept() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state == nil {
		return 0
	}
	return r.state.Bias
}

// Exponent returns the fitted exponent p. It is only meaningful for
// PowerRegression.
func (r *Regressor) Exponent() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state == nil {
		return 0
	}
	return r.state.Exponent
}

// State returns a copy of the fitted parameters, or nil.
func (r *Regressor) State() *descent.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state == nil {
		return nil
	}
	return r.state.Clone()
}

// Trace returns the loss history of the last Fit, including a diverged one.
func (r *Regressor) Trace() *descent.Trace {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.trace
}

// Kind returns the model variant.
func (r *Regressor) Kind() descent.Kind {
	return r.kind
}

// Hyperparameters returns a copy of the training configuration.
func (r *Regressor) Hyperparameters() descent.Hyperparameters {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hp.Clone()
}

// IsFitted reports whether the last Fit succeeded.
func (r *Regressor) IsFitted() bool {
	return r.fitted.IsFitted()
}

// columnVector copies an n×1 matrix into a vector.
func columnVector(op string, y mat.Matrix) (*mat.VecDense, error) {
	if y == nil {
		return nil, errors.NewEmptyDatasetError(op)
	}
	if v, ok := y.(mat.Vector); ok {
		if v.Len() == 0 {
			return nil, errors.NewEmptyDatasetError(op)
		}
		return mat.VecDenseCopyOf(v), nil
	}
	n, c := y.Dims()
	if n == 0 || c == 0 {
		return nil, errors.NewEmptyDatasetError(op)
	}
	if c != 1 {
		return nil, errors.NewValueError(op, "y must be a column vector")
	}
	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v.SetVec(i, y.At(i, 0))
	}
	return v, nil
}

func asDense(X mat.Matrix) *mat.Dense {
	if d, ok := X.(*mat.Dense); ok {
		return d
	}
	return mat.DenseCopyOf(X)
}
