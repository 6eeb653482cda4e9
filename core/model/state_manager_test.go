package model

import (
	"sync"
	"testing"

	"github.com/YuminosukeSato/glib/pkg/errors"
)

func TestStateManagerLifecycle(t *testing.T) {
	s := NewStateManager()

	if s.IsFitted() {
		t.Fatal("new StateManager should not be fitted")
	}
	if err := s.RequireFitted("Lasso", "Predict"); !errors.Is(err, errors.ErrNotFitted) {
		t.Errorf("RequireFitted() = %v, want ErrNotFitted", err)
	}

	s.SetFitted(3, 100)
	if !s.IsFitted() {
		t.Fatal("SetFitted should mark the model fitted")
	}
	if err := s.RequireFitted("Lasso", "Predict"); err != nil {
		t.Errorf("RequireFitted() = %v, want nil", err)
	}
	if f, n := s.GetDimensions(); f != 3 || n != 100 {
		t.Errorf("GetDimensions() = (%d, %d), want (3, 100)", f, n)
	}
	if err := s.RequireFeatures("Predict", 3); err != nil {
		t.Errorf("RequireFeatures(3) = %v, want nil", err)
	}
	if err := s.RequireFeatures("Predict", 2); !errors.Is(err, errors.ErrDimensionMismatch) {
		t.Errorf("RequireFeatures(2) = %v, want ErrDimensionMismatch", err)
	}

	s.Reset()
	if s.IsFitted() {
		t.Error("Reset should clear the fitted flag")
	}
	if f, n := s.GetDimensions(); f != 0 || n != 0 {
		t.Errorf("GetDimensions() after Reset = (%d, %d), want (0, 0)", f, n)
	}
}

func TestStateManagerSnapshot(t *testing.T) {
	s := NewStateManager()
	s.SetFitted(1, 4)

	restored := NewStateManager()
	restored.SetState(s.GetState())

	if got := restored.GetState(); got != (ModelState{Fitted: true, NFeatures: 1, NSamples: 4}) {
		t.Errorf("restored state = %+v", got)
	}
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	s := NewStateManager()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.SetFitted(i, i)
			} else {
				_ = s.IsFitted()
				_, _ = s.GetDimensions()
			}
		}(i)
	}
	wg.Wait()

	if !s.IsFitted() {
		t.Error("expected fitted after concurrent SetFitted calls")
	}
}
