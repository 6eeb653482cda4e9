package cli

import (
	"bufio"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/core/model"
	"github.com/YuminosukeSato/glib/internal/config"
	"github.com/YuminosukeSato/glib/internal/dataset"
	"github.com/YuminosukeSato/glib/linear"
	"github.com/YuminosukeSato/glib/metrics"
	"github.com/YuminosukeSato/glib/pkg/errors"
	"github.com/YuminosukeSato/glib/pkg/log"
	"github.com/YuminosukeSato/glib/preprocessing"
)

func newPredictCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "predict",
		Short:   "Predict with a saved parameter file",
		Example: `  glib predict --params model.yaml --data test.csv --threshold 0.5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runPredict(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.String("params", "", "parameter file written by fit")
	f.String("data", "", "CSV file with the feature columns used in training")
	f.Float64("threshold", 0, "print 0/1 labels instead of logistic probabilities")
	return cmd
}

func runPredict(cfg *config.Config, out, logOut io.Writer) error {
	logger := newLogger(cfg, logOut, "predict")
	if cfg.Params == "" {
		return errors.NewValidationError("params", "is required", cfg.Params)
	}
	if cfg.Data == "" {
		return errors.NewValidationError("data", "is required", cfg.Data)
	}

	mw, err := model.LoadWeights(cfg.Params)
	if err != nil {
		return err
	}
	m, err := linear.FromWeights(mw, linear.WithLogger(logger))
	if err != nil {
		return err
	}
	if cfg.Threshold > 0 && m.Kind() != descent.KindLogistic {
		return errors.NewValidationError("threshold", "only applies to logistic models", cfg.Threshold)
	}

	X, err := loadFeatures(cfg.Data, mw)
	if err != nil {
		return err
	}

	pred, err := m.Predict(X)
	if err != nil {
		return err
	}
	yHat := mat.VecDenseCopyOf(pred.(*mat.Dense).ColView(0))
	if cfg.Threshold > 0 {
		if yHat, err = metrics.Binarize(yHat, cfg.Threshold); err != nil {
			return err
		}
	}
	logger.Info("Prediction completed",
		log.ModelNameKey, mw.ModelType,
		log.PathKey, cfg.Data,
		log.PredsKey, yHat.Len(),
	)
	return writeColumn(out, yHat)
}

// loadFeatures reads the feature columns recorded in mw from path, in
// training order, and applies the stored standardization.
func loadFeatures(path string, mw *model.ModelWeights) (mat.Matrix, error) {
	ds, err := dataset.LoadCSV(path, "")
	if err != nil {
		return nil, err
	}

	var X mat.Matrix = ds.X
	if len(mw.Features) > 0 {
		if X, err = ds.Select(mw.Features); err != nil {
			return nil, err
		}
	}
	if mw.Standardization == nil {
		return X, nil
	}
	scaler, err := preprocessing.NewStandardScalerFromParams(mw.Standardization)
	if err != nil {
		return nil, err
	}
	return scaler.Transform(X)
}

func writeColumn(out io.Writer, v mat.Vector) error {
	w := bufio.NewWriter(out)
	for i := 0; i < v.Len(); i++ {
		w.WriteString(strconv.FormatFloat(v.AtVec(i), 'g', -1, 64))
		w.WriteByte('\n')
	}
	return errors.Wrap(w.Flush(), "write predictions")
}
