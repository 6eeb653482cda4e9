// Package observe provides descent.Observer implementations: an in-memory
// Recorder for plots and tests, a progress logger, and Prometheus metrics.
//
// All observers here are safe for concurrent use, so one instance may be
// shared by the sessions of a linear.Sweep.
package observe

import (
	"sync"

	"github.com/YuminosukeSato/glib/core/descent"
)

// Recorder keeps the snapshots of a training session.
type Recorder struct {
	mu    sync.Mutex
	snaps []descent.Snapshot
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe records s. Pass the method value as the observer:
//
//	rec := observe.NewRecorder()
//	m := linear.NewRidge(linear.WithObserver(rec.Observe))
func (r *Recorder) Observe(s descent.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

// Snapshots returns the recorded snapshots in order.
func (r *Recorder) Snapshots() []descent.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]descent.Snapshot(nil), r.snaps...)
}

// Len returns the number of recorded snapshots.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = nil
}

// Losses returns the loss of every recorded iteration.
func (r *Recorder) Losses() []float64 {
	return r.series(func(s descent.Snapshot) float64 { return s.Loss })
}

// Biases returns the bias after every recorded iteration.
func (r *Recorder) Biases() []float64 {
	return r.series(func(s descent.Snapshot) float64 { return s.Bias })
}

// Exponents returns the Power exponent after every recorded iteration.
func (r *Recorder) Exponents() []float64 {
	return r.series(func(s descent.Snapshot) float64 { return s.Exponent })
}

// Weight returns the trajectory of weight j. Snapshots with fewer weights
// are skipped.
func (r *Recorder) Weight(j int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, 0, len(r.snaps))
	for _, s := range r.snaps {
		if j >= 0 && j < len(s.Weights) {
			out = append(out, s.Weights[j])
		}
	}
	return out
}

func (r *Recorder) series(f func(descent.Snapshot) float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.snaps))
	for i, s := range r.snaps {
		out[i] = f(s)
	}
	return out
}
