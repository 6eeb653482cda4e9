// Package config resolves the glib command-line configuration.
//
// Sources, highest priority first:
//
//  1. Command-line flags
//  2. Environment variables prefixed with GLIB_ (e.g. GLIB_LEARNING_RATE)
//  3. The YAML file given by --config
//  4. Defaults
//
// Flag names use dashes and map to underscore keys: --learning-rate sets
// learning_rate.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/pkg/errors"
	"github.com/YuminosukeSato/glib/pkg/log"
)

// EnvPrefix prefixes every environment variable read by glib.
const EnvPrefix = "GLIB"

// Config is the resolved configuration of one glib command.
type Config struct {
	// Data is the CSV file to read.
	Data string `mapstructure:"data" yaml:"data"`
	// Target names the label column of Data.
	Target string `mapstructure:"target" yaml:"target"`
	// Model is the variant name, see descent.ParseKind.
	Model string `mapstructure:"model" yaml:"model"`

	descent.Hyperparameters `mapstructure:",squash" yaml:",inline"`

	Standardize bool `mapstructure:"standardize" yaml:"standardize"`
	Track       bool `mapstructure:"track" yaml:"track"`
	// TrackEvery logs progress every n iterations when Track is set.
	TrackEvery int `mapstructure:"track_every" yaml:"track_every"`

	// Params is the parameter file written by fit and read by predict.
	Params string `mapstructure:"params" yaml:"params"`
	// Plot is an optional loss-curve image written by fit.
	Plot string `mapstructure:"plot" yaml:"plot"`
	// MetricsFile is an optional Prometheus text file written by fit.
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`
	// Threshold turns logistic probabilities into 0/1 labels when positive.
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// Kind is Model parsed by Load.
	Kind descent.Kind `mapstructure:"-" yaml:"-"`
}

// New returns a viper instance with glib's defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	hp := descent.DefaultHyperparameters()
	v.SetDefault("data", "")
	v.SetDefault("target", "y")
	v.SetDefault("model", descent.KindLinear.String())
	v.SetDefault("iterations", hp.Iterations)
	// Zero selects the default of the chosen model.
	v.SetDefault("learning_rate", 0.0)
	v.SetDefault("lambda", hp.Lambda)
	v.SetDefault("power_exponent", hp.PowerExponent)
	v.SetDefault("bias_learning_rate", 0.0)
	v.SetDefault("initial_bias", 0.0)
	v.SetDefault("standardize", false)
	v.SetDefault("track", false)
	v.SetDefault("track_every", 10)
	v.SetDefault("params", "")
	v.SetDefault("plot", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("threshold", 0.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	return v
}

// BindFlags binds every flag of fs to the key with dashes replaced by
// underscores.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	return errors.Wrap(bindErr, "bind flags")
}

// Load reads the optional YAML file at path into v, decodes the merged
// settings and validates them.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	kind, err := descent.ParseKind(c.Model)
	if err != nil {
		return nil, err
	}
	c.Kind = kind
	if c.LearningRate == 0 {
		c.LearningRate = descent.DefaultsFor(kind).LearningRate
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := c.Hyperparameters.Validate(); err != nil {
		return err
	}
	if c.TrackEvery < 0 {
		return errors.NewValidationError("track_every", "must not be negative", c.TrackEvery)
	}
	if c.Threshold < 0 || c.Threshold >= 1 {
		return errors.NewValidationError("threshold", "must be in [0, 1)", c.Threshold)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.NewValidationError("log_level", err.Error(), c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return errors.NewValidationError("log_format", "must be json or text", c.LogFormat)
	}
	return nil
}
