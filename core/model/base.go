// Package model provides the shared building blocks of splitcheck estimators.
//
// It contains:
//
//   - StateManager: fitted-state and dimension tracking, composed into estimators
//   - Regressor: the Fit/Predict contract the demos and the CLI program against
//   - scikit-learn JSON interchange for linear models (see sklearn_import.go)
//
// Estimators hold a *StateManager rather than embedding a base struct:
//
//	type LinearRegression struct {
//		State *model.StateManager
//		...
//	}
//
//	func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
//		// training logic
//		lr.State.SetFitted()
//		lr.State.SetDimensions(nFeatures, nSamples)
//		return nil
//	}
package model

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// EstimatorState represents the learning state of a model
type EstimatorState int

const (
	// NotFitted indicates the model is not yet trained
	NotFitted EstimatorState = iota
	// Fitted indicates the model has been trained
	Fitted
)

func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// Regressor is implemented by models that learn a numeric target.
type Regressor interface {
	Fit(X, y mat.Matrix) error
	Predict(X mat.Matrix) (mat.Matrix, error)
	IsFitted() bool
}

// StateManager tracks whether an estimator has been fitted and the shape of
// the data it was fitted on. It is safe for concurrent use.
//
// Fields are exported so the manager survives JSON encoding of the
// owning estimator.
type StateManager struct {
	mu        sync.RWMutex
	State     EstimatorState
	NFeatures int
	NSamples  int
}

// NewStateManager returns a manager in the NotFitted state.
func NewStateManager() *StateManager {
	return &StateManager{State: NotFitted}
}

// IsFitted returns whether the estimator has been fitted with training data.
//
// All models must be fitted before they can be used for predictions:
//
//	if !lr.IsFitted() {
//	    if err := lr.Fit(X, y); err != nil {
//	        return err
//	    }
//	}
//	predictions, err := lr.Predict(XTest)
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.State == Fitted
}

// SetFitted marks the estimator as fitted. Called by model implementations
// at the end of a successful Fit.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = Fitted
}

// Reset returns the estimator to its initial untrained state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = NotFitted
	s.NFeatures = 0
	s.NSamples = 0
}

// SetDimensions records the training data shape. nSamples is 0 for models
// loaded from a file.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NFeatures = nFeatures
	s.NSamples = nSamples
}

// GetDimensions returns the recorded number of features and samples.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NFeatures, s.NSamples
}
