package observe

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/pkg/errors"
)

const modelLabel = "model"

// PrometheusObserver exports training progress as Prometheus metrics labeled
// by model.
type PrometheusObserver struct {
	loss       *prometheus.GaugeVec
	bias       *prometheus.GaugeVec
	iterations *prometheus.CounterVec
	diverged   *prometheus.CounterVec
}

// NewPrometheusObserver creates the collectors under namespace (default
// "glib") and registers them with reg. Collectors that reg already holds are
// reused, so several observers may share one registry.
func NewPrometheusObserver(reg prometheus.Registerer, namespace string) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "glib"
	}
	p := &PrometheusObserver{
		loss: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "training",
			Name:      "loss",
			Help:      "Mean squared error of the latest training iteration.",
		}, []string{modelLabel}),
		bias: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "training",
			Name:      "bias",
			Help:      "Bias after the latest training iteration.",
		}, []string{modelLabel}),
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "training",
			Name:      "iterations_total",
			Help:      "Gradient-descent iterations completed.",
		}, []string{modelLabel}),
		diverged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "training",
			Name:      "diverged_total",
			Help:      "Training sessions stopped by a non-finite loss or parameter.",
		}, []string{modelLabel}),
	}

	var err error
	if p.loss, err = register(reg, p.loss); err != nil {
		return nil, err
	}
	if p.bias, err = register(reg, p.bias); err != nil {
		return nil, err
	}
	if p.iterations, err = register(reg, p.iterations); err != nil {
		return nil, err
	}
	if p.diverged, err = register(reg, p.diverged); err != nil {
		return nil, err
	}
	return p, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, errors.Wrap(err, "register training metrics")
	}
	return c, nil
}

// Observer returns an observer that records under the given model label,
// e.g. descent.KindRidge.String().
func (p *PrometheusObserver) Observer(model string) descent.Observer {
	loss := p.loss.WithLabelValues(model)
	bias := p.bias.WithLabelValues(model)
	iterations := p.iterations.WithLabelValues(model)
	diverged := p.diverged.WithLabelValues(model)

	return func(s descent.Snapshot) {
		iterations.Inc()
		if s.Diverged {
			diverged.Inc()
			return
		}
		loss.Set(s.Loss)
		bias.Set(s.Bias)
	}
}
