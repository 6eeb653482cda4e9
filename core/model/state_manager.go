package model

import (
	"sync"

	"github.com/YuminosukeSato/glib/pkg/errors"
)

// StateManager tracks whether a model is fitted and the data shape it was fitted
// on. It is safe for concurrent use.
type StateManager struct {
	mu sync.RWMutex

	fitted    bool
	nFeatures int
	nSamples  int
}

// NewStateManager creates a StateManager in the not-fitted state.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted on nSamples rows of nFeatures columns.
func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Reset returns to the not-fitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// GetDimensions returns the number of features and samples seen during fitting.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RequireFitted returns a NotFittedError naming modelName and method when the
// model has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// RequireFeatures checks that X has the column count seen during fitting.
// Call it only on a fitted model.
func (s *StateManager) RequireFeatures(op string, got int) error {
	want, _ := s.GetDimensions()
	if got != want {
		return errors.NewDimensionError(op, want, got, 1)
	}
	return nil
}

// ModelState is a snapshot of the StateManager.
type ModelState struct {
	Fitted    bool `json:"fitted" yaml:"fitted"`
	NFeatures int  `json:"n_features,omitempty" yaml:"n_features,omitempty"`
	NSamples  int  `json:"n_samples,omitempty" yaml:"n_samples,omitempty"`
}

// GetState returns the current state.
func (s *StateManager) GetState() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ModelState{Fitted: s.fitted, NFeatures: s.nFeatures, NSamples: s.nSamples}
}

// SetState restores a snapshot taken with GetState.
func (s *StateManager) SetState(state ModelState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = state.Fitted
	s.nFeatures = state.NFeatures
	s.nSamples = state.NSamples
}
