package observe

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/linear"
	"github.com/YuminosukeSato/glib/pkg/errors"
	"github.com/YuminosukeSato/glib/pkg/log"
)

func fitLinear(t *testing.T, opts ...linear.Option) *linear.Regressor {
	t.Helper()
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{2, 4, 6})
	m := linear.NewLinearRegression(append([]linear.Option{
		linear.WithIterations(50),
		linear.WithLearningRate(0.01),
	}, opts...)...)
	require.NoError(t, m.Fit(X, y))
	return m
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	m := fitLinear(t, linear.WithObserver(rec.Observe))

	require.Equal(t, 50, rec.Len())
	assert.Equal(t, m.Trace().Losses(), rec.Losses())

	w := rec.Weight(0)
	require.Len(t, w, 50)
	assert.Equal(t, m.Weights()[0], w[len(w)-1])
	assert.Equal(t, m.Intercept(), rec.Biases()[49])
	assert.Len(t, rec.Exponents(), 50)
	assert.Empty(t, rec.Weight(3))

	snaps := rec.Snapshots()
	for i, s := range snaps {
		assert.Equal(t, i, s.Iteration)
	}

	rec.Reset()
	assert.Zero(t, rec.Len())
}

func TestRecorderConcurrentUse(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec.Observe(descent.Snapshot{Iteration: i})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8, rec.Len())
}

func TestLogObserver(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	fitLinear(t, linear.WithObserver(LogObserver(logger, 10)))

	assert.Equal(t, 5, logger.CountMessages("Training progress"))
	assert.True(t, logger.ContainsField(log.IterationKey, float64(40)))
	assert.False(t, logger.ContainsField(log.IterationKey, float64(41)))

	logger.Clear()
	LogObserver(logger, 0)(descent.Snapshot{Iteration: 3})
	LogObserver(logger, 100)(descent.Snapshot{Iteration: 7, Diverged: true})
	assert.Equal(t, 2, logger.CountMessages("Training progress"))
	assert.True(t, logger.ContainsField(log.DivergedKey, true))
}

func TestLogObserverSkipsWhenDebugDisabled(t *testing.T) {
	logger, buf := log.NewTestLogger(log.LevelInfo)
	LogObserver(logger, 1)(descent.Snapshot{Iteration: 0, Loss: 1})
	assert.Zero(t, buf.Len())
}

func TestPrometheusObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheusObserver(reg, "")
	require.NoError(t, err)

	m := fitLinear(t, linear.WithObserver(p.Observer("linear")))

	assert.Equal(t, 50.0, testutil.ToFloat64(p.iterations.WithLabelValues("linear")))
	final, ok := m.Trace().Final()
	require.True(t, ok)
	assert.Equal(t, final, testutil.ToFloat64(p.loss.WithLabelValues("linear")))
	assert.Equal(t, m.Intercept(), testutil.ToFloat64(p.bias.WithLabelValues("linear")))
	assert.Zero(t, testutil.ToFloat64(p.diverged.WithLabelValues("linear")))

	expected := `
# HELP glib_training_iterations_total Gradient-descent iterations completed.
# TYPE glib_training_iterations_total counter
glib_training_iterations_total{model="linear"} 50
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "glib_training_iterations_total"))
}

func TestPrometheusObserverDivergence(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheusObserver(reg, "test")
	require.NoError(t, err)

	X := mat.NewDense(4, 1, []float64{1e6, 2e6, 3e6, 4e6})
	m := linear.NewLasso(
		linear.WithIterations(100),
		linear.WithLearningRate(1e6),
		linear.WithObserver(p.Observer("lasso")),
	)
	err = m.Fit(X, X)
	require.True(t, errors.Is(err, errors.ErrDiverged))

	assert.Equal(t, 1.0, testutil.ToFloat64(p.diverged.WithLabelValues("lasso")))
	assert.Equal(t, float64(m.Trace().Len()), testutil.ToFloat64(p.iterations.WithLabelValues("lasso")))
}

func TestPrometheusObserverSharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPrometheusObserver(reg, "glib")
	require.NoError(t, err)
	second, err := NewPrometheusObserver(reg, "glib")
	require.NoError(t, err)

	first.Observer("ridge")(descent.Snapshot{Loss: 2})
	second.Observer("ridge")(descent.Snapshot{Loss: 3})

	assert.Equal(t, 2.0, testutil.ToFloat64(first.iterations.WithLabelValues("ridge")))
	assert.Equal(t, 3.0, testutil.ToFloat64(first.loss.WithLabelValues("ridge")))
}
