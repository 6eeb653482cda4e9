// Package errors provides the error taxonomy shared by every glib package.
//
// Each failure kind has a sentinel (ErrInvalidConfiguration, ErrDimensionMismatch,
// ErrEmptyDataset, ErrNotFitted, ErrDiverged) and a structured type carrying the
// details. Structured errors are created with a stack trace from cockroachdb/errors
// and match their sentinel through Is:
//
//	if errors.Is(err, errors.ErrDiverged) {
//	    // restart with a smaller learning rate
//	}
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Sentinels
//
// ===========================================================================

var (
	// ErrInvalidConfiguration is matched by errors caused by bad hyperparameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDimensionMismatch is matched by shape errors between X, y and a fitted model.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmptyDataset is returned (wrapped) when X or y has no rows.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrNotFitted is matched when a model is used before a successful fit.
	ErrNotFitted = errors.New("not fitted")

	// ErrDiverged is matched when a weight, bias, exponent or loss becomes non-finite.
	ErrDiverged = errors.New("diverged")
)

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when Predict or Score is called on an unfitted model.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("glib: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// Is reports whether target is ErrNotFitted.
func (e *NotFittedError) Is(target error) bool {
	return target == ErrNotFitted
}

// MarshalZerologObject adds the error details to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports a shape mismatch.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("glib: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, e.axisName(), e.Expected, e.Got)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// MarshalZerologObject adds the error details to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError reports a hyperparameter that failed validation.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("glib: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// Is reports whether target is ErrInvalidConfiguration.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// MarshalZerologObject adds the error details to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is unusable, e.g. a y with two columns.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("glib: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError is a general model failure wrapping a cause.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("glib: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("glib: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// NewEmptyDatasetError is shorthand for a ModelError wrapping ErrEmptyDataset.
func NewEmptyDatasetError(op string) error {
	return NewModelError(op, "empty data", ErrEmptyDataset)
}

// DivergenceError reports the first iteration at which training produced a
// non-finite loss or parameter.
type DivergenceError struct {
	Operation string    // what was being checked, e.g. "loss", "weights", "bias"
	Values    []float64 // offending values, truncated in the message
	Iteration int
}

func (e *DivergenceError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("glib: training diverged in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// Is reports whether target is ErrDiverged.
func (e *DivergenceError) Is(target error) bool {
	return target == ErrDiverged
}

// MarshalZerologObject adds the error details to a zerolog event.
func (e *DivergenceError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Int("iteration", e.Iteration).
		Floats64("values", e.Values).
		Str("type", "DivergenceError")
}

// NewDivergenceError creates a DivergenceError with a stack trace.
func NewDivergenceError(operation string, values []float64, iteration int) error {
	err := &DivergenceError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err or any error in its chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with the current stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}
