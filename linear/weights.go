package linear

import (
	"github.com/go-viper/mapstructure/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/core/model"
	"github.com/YuminosukeSato/glib/pkg/errors"
)

// ExportWeights snapshots the fitted model. Features, Target and
// Standardization are left for the caller to fill in.
func (r *Regressor) ExportWeights() (*model.ModelWeights, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.fitted.RequireFitted(r.kind.DisplayName(), "ExportWeights"); err != nil {
		return nil, err
	}

	hp := map[string]interface{}{}
	if err := mapstructure.Decode(r.hp, &hp); err != nil {
		return nil, errors.Wrap(err, "encode hyperparameters")
	}

	mw := &model.ModelWeights{
		ModelType:       r.kind.DisplayName(),
		Variant:         r.kind.String(),
		Version:         model.WeightsVersion,
		Coefficients:    r.state.WeightsSlice(),
		Intercept:       r.state.Bias,
		Hyperparameters: hp,
		Metadata: map[string]interface{}{
			"iterations_run": r.trace.Len(),
		},
		IsFitted: true,
	}
	if r.kind == descent.KindPower {
		p := r.state.Exponent
		mw.Exponent = &p
	}
	if loss, ok := r.trace.Final(); ok {
		mw.Metadata["final_loss"] = loss
	}
	return mw, nil
}

// FromWeights rebuilds a fitted Regressor from a snapshot produced by
// ExportWeights. opts are applied after the stored hyperparameters, so a
// logger or observers can be attached for later refits.
func FromWeights(mw *model.ModelWeights, opts ...Option) (*Regressor, error) {
	if mw == nil {
		return nil, errors.NewValueError("linear.FromWeights", "nil weights")
	}
	if err := mw.Validate(); err != nil {
		return nil, err
	}
	kind, err := descent.ParseKind(mw.Variant)
	if err != nil {
		return nil, err
	}
	if !mw.IsFitted {
		return nil, errors.NewNotFittedError(kind.DisplayName(), "FromWeights")
	}

	hp := descent.DefaultsFor(kind)
	if err := decodeHyperparameters(mw.Hyperparameters, &hp); err != nil {
		return nil, err
	}

	r := New(kind, append([]Option{WithHyperparameters(hp)}, opts...)...)
	variant, err := descent.NewVariant(kind, r.hp)
	if err != nil {
		return nil, err
	}
	d := len(mw.Coefficients)
	if checker, ok := variant.(descent.FeatureChecker); ok {
		if err := checker.CheckFeatures(d); err != nil {
			return nil, err
		}
	}

	exponent := r.hp.PowerExponent
	if mw.Exponent != nil {
		exponent = *mw.Exponent
	}
	r.variant = variant
	r.state = &descent.State{
		Weights:  mat.NewVecDense(d, append([]float64(nil), mw.Coefficients...)),
		Bias:     mw.Intercept,
		Exponent: exponent,
	}
	r.fitted.SetFitted(d, 0)
	return r, nil
}

func decodeHyperparameters(in map[string]interface{}, hp *descent.Hyperparameters) error {
	if len(in) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           hp,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return errors.Wrap(err, "build hyperparameter decoder")
	}
	if err := dec.Decode(in); err != nil {
		return errors.NewValidationError("hyperparameters", err.Error(), nil)
	}
	return hp.Validate()
}
