package descent

import (
	"strings"

	"github.com/YuminosukeSato/glib/pkg/errors"
)

// Kind selects a model variant.
type Kind int

const (
	KindLinear Kind = iota
	KindRidge
	KindLasso
	KindPower
	KindLogistic
)

var kindNames = [...]string{
	KindLinear:   "linear",
	KindRidge:    "ridge",
	KindLasso:    "lasso",
	KindPower:    "power",
	KindLogistic: "logistic",
}

var displayNames = [...]string{
	KindLinear:   "LinearRegression",
	KindRidge:    "Ridge",
	KindLasso:    "Lasso",
	KindPower:    "PowerRegression",
	KindLogistic: "LogisticRegression",
}

// Kinds lists every variant kind.
func Kinds() []Kind {
	return []Kind{KindLinear, KindRidge, KindLasso, KindPower, KindLogistic}
}

func (k Kind) valid() bool {
	return k >= KindLinear && k <= KindLogistic
}

// String returns the lower-case name used in flags and parameter files.
func (k Kind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return kindNames[k]
}

// DisplayName returns the model name used in logs and errors, e.g. "Ridge".
func (k Kind) DisplayName() string {
	if !k.valid() {
		return "Unknown"
	}
	return displayNames[k]
}

// ParseKind accepts a kind name in any case. "ols" and "l2"/"l1" are accepted
// as aliases for linear, ridge and lasso.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "ols":
		return KindLinear, nil
	case "ridge", "l2":
		return KindRidge, nil
	case "lasso", "l1":
		return KindLasso, nil
	case "power":
		return KindPower, nil
	case "logistic":
		return KindLogistic, nil
	}
	return 0, errors.NewValidationError("model", "must be one of linear, ridge, lasso, power, logistic", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, errors.NewValidationError("model", "unknown kind", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
