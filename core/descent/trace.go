package descent

import "math"

// DivergedLoss is recorded in a Trace for an iteration whose loss is not finite.
var DivergedLoss = math.Inf(1)

// Trace is the per-iteration loss history of one session. It is append-only
// while Fit runs and read-only afterwards.
type Trace struct {
	losses     []float64
	divergedAt int
}

func newTrace(capacity int) *Trace {
	return &Trace{losses: make([]float64, 0, capacity), divergedAt: -1}
}

// NewTrace builds a Trace from recorded losses, e.g. when restoring a model.
// A non-finite loss is stored as DivergedLoss and marks divergence.
func NewTrace(losses []float64) *Trace {
	t := newTrace(len(losses))
	for _, l := range losses {
		if t.Diverged() {
			break
		}
		t.record(len(t.losses), l)
	}
	return t
}

func (t *Trace) record(iteration int, loss float64) {
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		loss = DivergedLoss
		t.markDiverged(iteration)
	}
	t.losses = append(t.losses, loss)
}

func (t *Trace) markDiverged(iteration int) {
	if t.divergedAt < 0 {
		t.divergedAt = iteration
	}
}

// Len returns the number of recorded iterations.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.losses)
}

// Losses returns a copy of the recorded losses.
func (t *Trace) Losses() []float64 {
	if t == nil {
		return nil
	}
	return append([]float64(nil), t.losses...)
}

// At returns the loss of iteration i.
func (t *Trace) At(i int) float64 {
	return t.losses[i]
}

// Final returns the last recorded loss, and false when nothing was recorded or
// the last loss is the divergence sentinel.
func (t *Trace) Final() (float64, bool) {
	if t.Len() == 0 {
		return 0, false
	}
	last := t.losses[len(t.losses)-1]
	return last, !math.IsInf(last, 1)
}

// Diverged reports whether training stopped on a non-finite value.
func (t *Trace) Diverged() bool {
	return t != nil && t.divergedAt >= 0
}

// DivergedAt returns the iteration at which training diverged, or -1.
func (t *Trace) DivergedAt() int {
	if t == nil {
		return -1
	}
	return t.divergedAt
}
