package cli

import (
	"io"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/core/descent"
	"github.com/YuminosukeSato/glib/core/model"
	"github.com/YuminosukeSato/glib/internal/config"
	"github.com/YuminosukeSato/glib/internal/dataset"
	"github.com/YuminosukeSato/glib/linear"
	"github.com/YuminosukeSato/glib/metrics"
	"github.com/YuminosukeSato/glib/observe"
	"github.com/YuminosukeSato/glib/pkg/errors"
	"github.com/YuminosukeSato/glib/pkg/log"
	"github.com/YuminosukeSato/glib/preprocessing"
	"github.com/YuminosukeSato/glib/visualize"
)

func newFitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Train a model on a CSV file",
		Example: `  glib fit --data train.csv --target y --model ridge --iterations 500 \
    --learning-rate 0.01 --params model.yaml --plot loss.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runFit(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.String("data", "", "training CSV file with a header row")
	f.String("target", "y", "name of the label column")
	f.String("model", "linear", "model: linear, ridge, lasso, power or logistic")
	f.Int("iterations", 100, "number of gradient-descent steps")
	f.Float64("learning-rate", 0, "step size (0 picks the model default)")
	f.Float64("lambda", 0.02, "regularization strength for ridge and lasso")
	f.Float64("power-exponent", 1, "starting exponent of the power model")
	f.Float64("bias-learning-rate", 0, "separate step size for the bias (0 uses the learning rate)")
	f.Bool("standardize", false, "standardize features before training")
	f.Bool("track", false, "log parameters during training (shown with --log-level debug)")
	f.Int("track-every", 10, "iterations between progress logs with --track")
	f.String("params", "", "write the fitted parameters here (.yaml, .yml or .json); stdout when empty")
	f.String("plot", "", "write the loss curve to this image (.png, .svg, .pdf)")
	f.String("metrics-file", "", "write training metrics in Prometheus text format")
	return cmd
}

func runFit(cfg *config.Config, out, logOut io.Writer) error {
	logger := newLogger(cfg, logOut, "fit")
	if cfg.Data == "" {
		return errors.NewValidationError("data", "is required", cfg.Data)
	}

	ds, err := dataset.LoadCSV(cfg.Data, cfg.Target)
	if err != nil {
		return err
	}
	if ds.Y == nil {
		return errors.NewValueError("fit", "a target column is required")
	}
	logger.Info("Dataset loaded", log.PathKey, cfg.Data, log.SamplesKey, ds.Y.Len(), log.FeaturesKey, len(ds.Features))

	X := mat.Matrix(ds.X)
	var scaler *preprocessing.StandardScaler
	if cfg.Standardize {
		scaler = preprocessing.NewStandardScalerDefault()
		if X, err = scaler.FitTransform(ds.X); err != nil {
			return err
		}
	}

	opts := []linear.Option{
		linear.WithHyperparameters(cfg.Hyperparameters),
		linear.WithLogger(logger),
	}
	if cfg.Track {
		opts = append(opts, linear.WithObserver(observe.LogObserver(logger, cfg.TrackEvery)))
	}
	var registry *prometheus.Registry
	if cfg.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		po, err := observe.NewPrometheusObserver(registry, "glib")
		if err != nil {
			return err
		}
		opts = append(opts, linear.WithObserver(po.Observer(cfg.Kind.String())))
	}

	m := linear.New(cfg.Kind, opts...)
	fitErr := m.Fit(X, ds.Y)

	if registry != nil {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			logger.Warn("Writing metrics failed", log.PathKey, cfg.MetricsFile, log.ErrAttrKey, err.Error())
		}
	}
	if cfg.Plot != "" && m.Trace().Len() > 0 {
		if err := savePlot(m, cfg); err != nil {
			logger.Warn("Writing plot failed", log.PathKey, cfg.Plot, log.ErrAttrKey, err.Error())
		}
	}
	if fitErr != nil {
		logger.Error("Fit failed", fitErr, log.IterationsKey, m.Trace().Len())
		return fitErr
	}

	report, err := evaluate(cfg.Kind, m, X, ds.Y)
	if err != nil {
		return err
	}
	logger.Info("Evaluation", report.fields()...)

	mw, err := m.ExportWeights()
	if err != nil {
		return err
	}
	mw.Features = ds.Features
	mw.Target = ds.Target
	if scaler != nil {
		mw.Standardization = scaler.Params()
	}
	return writeParams(mw, cfg.Params, out)
}

func savePlot(m *linear.Regressor, cfg *config.Config) error {
	p, err := visualize.LossCurve(m.Trace(), cfg.Kind.DisplayName()+" training loss", false)
	if err != nil {
		return err
	}
	return visualize.Save(p, cfg.Plot)
}

func writeParams(mw *model.ModelWeights, path string, out io.Writer) error {
	if path != "" {
		return mw.Save(path)
	}
	data, err := mw.ToYAML()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return errors.Wrap(err, "write parameters")
}

// report holds training-set metrics. Fields that do not apply are NaN.
type report struct {
	MSE, RMSE, MAE, R2     float64
	Accuracy, LogLoss, AUC float64
}

func (r report) fields() []any {
	var f []any
	add := func(key string, v float64) {
		if !math.IsNaN(v) {
			f = append(f, key, v)
		}
	}
	add(log.LossKey, r.MSE)
	add("metrics.rmse", r.RMSE)
	add("metrics.mae", r.MAE)
	add(log.R2ScoreKey, r.R2)
	add("metrics.accuracy", r.Accuracy)
	add("metrics.log_loss", r.LogLoss)
	add("metrics.auc", r.AUC)
	return f
}

func evaluate(kind descent.Kind, m *linear.Regressor, X mat.Matrix, y *mat.VecDense) (report, error) {
	nan := math.NaN()
	r := report{R2: nan, Accuracy: nan, LogLoss: nan, AUC: nan}

	pred, err := m.Predict(X)
	if err != nil {
		return r, err
	}
	yHat := mat.VecDenseCopyOf(pred.(*mat.Dense).ColView(0))

	if r.MSE, err = metrics.MSE(y, yHat); err != nil {
		return r, err
	}
	r.RMSE = math.Sqrt(r.MSE)
	if r.MAE, err = metrics.MAE(y, yHat); err != nil {
		return r, err
	}
	if r2, err := metrics.R2Score(y, yHat); err == nil {
		r.R2 = r2
	}

	if kind != descent.KindLogistic {
		return r, nil
	}
	labels, err := metrics.Binarize(yHat, 0.5)
	if err != nil {
		return r, err
	}
	if acc, err := metrics.Accuracy(y, labels); err == nil {
		r.Accuracy = acc
	}
	if ll, err := metrics.BinaryLogLoss(y, yHat); err == nil {
		r.LogLoss = ll
	}
	if auc, err := metrics.AUC(y, yHat); err == nil {
		r.AUC = auc
	}
	return r, nil
}
