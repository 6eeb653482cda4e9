package observe

import (
	"context"

	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/pkg/log"
)

// LogObserver logs the parameters at Debug level every n iterations, on the
// first iteration, and on a diverging one. n <= 0 logs every iteration.
func LogObserver(logger log.Logger, n int) descent.Observer {
	if n <= 0 {
		n = 1
	}
	return func(s descent.Snapshot) {
		if !s.Diverged && s.Iteration%n != 0 {
			return
		}
		if !logger.Enabled(context.Background(), log.LevelDebug) {
			return
		}
		logger.Debug("Training progress",
			log.IterationKey, s.Iteration,
			log.LossKey, s.Loss,
			log.WeightsKey, s.Weights,
			log.BiasKey, s.Bias,
			log.ExponentKey, s.Exponent,
			log.DivergedKey, s.Diverged,
		)
	}
}
