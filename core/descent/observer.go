package descent

// Snapshot describes the parameters right after one update.
type Snapshot struct {
	Iteration int
	// Loss is the MSE of the predictions the update was computed from.
	Loss     float64
	Weights  []float64
	Bias     float64
	Exponent float64
	// Diverged is set on the last snapshot of a diverged session.
	Diverged bool
}

// Observer is called once per iteration, after the update, on the training
// goroutine. Weights is a fresh copy per iteration shared by every observer of
// that iteration, so observers may keep it but must not modify it.
type Observer func(Snapshot)

// MultiObserver fans one snapshot out to several observers in order.
func MultiObserver(observers ...Observer) Observer {
	return func(s Snapshot) {
		for _, o := range observers {
			if o != nil {
				o(s)
			}
		}
	}
}
