package descent

import (
	"fmt"

	"github.com/YuminosukeSato/glib/pkg/errors"
)

// Hyperparameters configures one training session.
type Hyperparameters struct {
	// Iterations is the exact number of update steps. Must be at least 1.
	Iterations int `json:"iterations" yaml:"iterations" mapstructure:"iterations"`

	// LearningRate is the step size for the weights and, for Power, the exponent.
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate" mapstructure:"learning_rate"`

	// Lambda is the regularization strength. Only Ridge and Lasso read it.
	Lambda float64 `json:"lambda" yaml:"lambda" mapstructure:"lambda"`

	// PowerExponent is the starting exponent p of the Power variant.
	PowerExponent float64 `json:"power_exponent" yaml:"power_exponent" mapstructure:"power_exponent"`

	// BiasLearningRate is the step size for the bias. Zero means LearningRate.
	BiasLearningRate float64 `json:"bias_learning_rate,omitempty" yaml:"bias_learning_rate,omitempty" mapstructure:"bias_learning_rate,omitempty"`

	// InitialWeights seeds the weight vector. Nil means all zeros.
	InitialWeights []float64 `json:"initial_weights,omitempty" yaml:"initial_weights,omitempty" mapstructure:"initial_weights,omitempty"`

	// InitialBias seeds the bias.
	InitialBias float64 `json:"initial_bias,omitempty" yaml:"initial_bias,omitempty" mapstructure:"initial_bias,omitempty"`
}

// DefaultHyperparameters returns 100 iterations, learning rate 1e-5, lambda 0.02
// and exponent 1.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Iterations:    100,
		LearningRate:  1e-5,
		Lambda:        0.02,
		PowerExponent: 1,
	}
}

// DefaultsFor returns DefaultHyperparameters with the learning rate suited to
// kind: 1e-7 for Power, 1e-3 for Logistic.
func DefaultsFor(kind Kind) Hyperparameters {
	hp := DefaultHyperparameters()
	switch kind {
	case KindPower:
		hp.LearningRate = 1e-7
	case KindLogistic:
		hp.LearningRate = 1e-3
	}
	return hp
}

// Validate reports the first invalid field as an InvalidConfiguration error.
func (hp Hyperparameters) Validate() error {
	switch {
	case hp.Iterations < 1:
		return errors.NewValidationError("iterations", "must be at least 1", hp.Iterations)
	case !(hp.LearningRate > 0) || !errors.IsFinite(hp.LearningRate):
		return errors.NewValidationError("learning_rate", "must be a positive finite number", hp.LearningRate)
	case !(hp.Lambda >= 0) || !errors.IsFinite(hp.Lambda):
		return errors.NewValidationError("lambda", "must be a non-negative finite number", hp.Lambda)
	case !(hp.BiasLearningRate >= 0) || !errors.IsFinite(hp.BiasLearningRate):
		return errors.NewValidationError("bias_learning_rate", "must be a non-negative finite number", hp.BiasLearningRate)
	case !errors.IsFinite(hp.PowerExponent):
		return errors.NewValidationError("power_exponent", "must be finite", hp.PowerExponent)
	case !errors.IsFinite(hp.InitialBias):
		return errors.NewValidationError("initial_bias", "must be finite", hp.InitialBias)
	}
	for i, w := range hp.InitialWeights {
		if !errors.IsFinite(w) {
			return errors.NewValidationError(fmt.Sprintf("initial_weights[%d]", i), "must be finite", w)
		}
	}
	return nil
}

// biasRate resolves the effective bias step size.
func (hp Hyperparameters) biasRate() float64 {
	if hp.BiasLearningRate > 0 {
		return hp.BiasLearningRate
	}
	return hp.LearningRate
}

// Clone returns a copy that does not share InitialWeights.
func (hp Hyperparameters) Clone() Hyperparameters {
	if hp.InitialWeights != nil {
		hp.InitialWeights = append([]float64(nil), hp.InitialWeights...)
	}
	return hp
}
