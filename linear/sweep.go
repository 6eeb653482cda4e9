package linear

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/core/parallel"
	"github.com/YuminosukeSato/glib/pkg/errors"
)

// SweepResult is the outcome of one session of a Sweep.
type SweepResult struct {
	LearningRate float64
	Model        *Regressor
	// Loss is the final training loss, +Inf when the session failed.
	Loss float64
	Err  error
}

// Sweep fits one model of kind per learning rate, concurrently, on the shared
// read-only X and y. opts apply to every session, so observers and loggers
// passed here must be safe for concurrent use. A session that diverges is
// reported in its SweepResult and does not stop the others; Sweep itself only
// fails when ctx is done. Results are in the order of rates.
func Sweep(ctx context.Context, kind descent.Kind, X, y mat.Matrix, rates []float64, opts ...Option) ([]SweepResult, error) {
	if len(rates) == 0 {
		return nil, errors.NewValidationError("learning_rates", "must not be empty", rates)
	}

	results := make([]SweepResult, len(rates))
	err := parallel.ForEach(ctx, len(rates), 0, func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := New(kind, append(append([]Option(nil), opts...), WithLearningRate(rates[i]))...)
		res := SweepResult{LearningRate: rates[i], Model: m, Loss: math.Inf(1)}
		if res.Err = m.Fit(X, y); res.Err == nil {
			res.Loss, _ = m.Trace().Final()
		}
		results[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Best returns the successful result with the lowest final loss.
func Best(results []SweepResult) (SweepResult, bool) {
	best, found := SweepResult{Loss: math.Inf(1)}, false
	for _, r := range results {
		if r.Err == nil && r.Loss < best.Loss {
			best, found = r, true
		}
	}
	return best, found
}
