package descent

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewTrace(t *testing.T) {
	tests := []struct {
		name         string
		losses       []float64
		want         []float64
		divergedAt   int
		final        float64
		finalPresent bool
	}{
		{"finite", []float64{3, 2, 1}, []float64{3, 2, 1}, -1, 1, true},
		{"empty", nil, nil, -1, 0, false},
		{"NaN stops the trace", []float64{3, math.NaN(), 1}, []float64{3, DivergedLoss}, 1, DivergedLoss, false},
		{"Inf is the sentinel", []float64{5, math.Inf(-1)}, []float64{5, DivergedLoss}, 1, DivergedLoss, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTrace(tt.losses)
			if diff := cmp.Diff(tt.want, tr.Losses()); diff != "" {
				t.Errorf("Losses() mismatch (-want +got):\n%s", diff)
			}
			if tr.DivergedAt() != tt.divergedAt || tr.Diverged() != (tt.divergedAt >= 0) {
				t.Errorf("DivergedAt() = %d, Diverged() = %v", tr.DivergedAt(), tr.Diverged())
			}
			final, ok := tr.Final()
			if ok != tt.finalPresent || (ok && final != tt.final) {
				t.Errorf("Final() = %v, %v; want %v, %v", final, ok, tt.final, tt.finalPresent)
			}
		})
	}
}

func TestTraceLossesIsACopy(t *testing.T) {
	tr := NewTrace([]float64{1, 2})
	l := tr.Losses()
	l[0] = 100
	if tr.At(0) != 1 {
		t.Error("Losses() exposes the internal slice")
	}
}

func TestNilTrace(t *testing.T) {
	var tr *Trace
	if tr.Len() != 0 || tr.Losses() != nil || tr.Diverged() || tr.DivergedAt() != -1 {
		t.Error("nil trace accessors should report an empty, non-diverged trace")
	}
	if _, ok := tr.Final(); ok {
		t.Error("nil trace has no final loss")
	}
}
