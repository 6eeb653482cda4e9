package log

// Attribute keys use a dotted hierarchy ("model.name", "data.samples") so that
// log pipelines can filter on a prefix.

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "LinearRegression", "Ridge".
	ModelNameKey = "model.name"

	// VariantKey identifies the gradient-descent variant, e.g. "lasso", "power".
	VariantKey = "model.variant"

	// OperationKey names the operation: "fit", "predict", "score".
	OperationKey = "ml.operation"

	// ComponentKey names the package doing the work, e.g. "linear", "cli".
	ComponentKey = "ml.component"

	// PhaseKey names the lifecycle phase: "training", "inference".
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	PathKey     = "data.path"
)

// Training progress and performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records the MSE of one iteration or the final loss.
	LossKey = "metrics.loss"

	// R2ScoreKey records R² for regression scoring.
	R2ScoreKey = "metrics.r2_score"

	// IterationKey records the current iteration, starting at 0.
	IterationKey = "training.iteration"

	// IterationsKey records the number of iterations actually run.
	IterationsKey = "training.iterations"

	// DivergedKey is true when training stopped on a non-finite value.
	DivergedKey = "training.diverged"

	// BiasKey and ExponentKey record the scalar parameters of a snapshot.
	BiasKey     = "params.bias"
	ExponentKey = "params.exponent"

	// WeightsKey records the weight vector of a snapshot.
	WeightsKey = "params.weights"
)

// Prediction context.
const (
	PredsKey = "preds.count"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	SuggestionKey = "error.suggestion"
)

// Hyperparameters.
const (
	LearningRateKey     = "hyperparams.learning_rate"
	BiasLearningRateKey = "hyperparams.bias_learning_rate"
	LambdaKey           = "hyperparams.lambda"
	PowerExponentKey    = "hyperparams.power_exponent"
	MaxIterationsKey    = "hyperparams.iterations"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationSweep   = "sweep"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidConfig     = "INVALID_CONFIGURATION"
	ErrorDiverged          = "DIVERGED"
)
