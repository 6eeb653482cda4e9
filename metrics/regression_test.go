package metrics

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/glib/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestRegressionMetrics(t *testing.T) {
	type metric func(yTrue, yPred *mat.VecDense) (float64, error)

	tests := []struct {
		name   string
		metric metric
		yTrue  []float64
		yPred  []float64
		want   float64
	}{
		{"MSE perfect", MSE, []float64{1, 2, 3, 4, 5}, []float64{1, 2, 3, 4, 5}, 0},
		{"MSE half off", MSE, []float64{1, 2, 3, 4}, []float64{1.5, 2.5, 2.5, 3.5}, 0.25},
		{"MSE larger errors", MSE, []float64{10, 20, 30}, []float64{12, 18, 33}, 17.0 / 3.0},
		{"RMSE unit", RMSE, []float64{0, 0, 0, 0}, []float64{1, 1, 1, 1}, 1},
		{"MAE half off", MAE, []float64{1, 2, 3, 4}, []float64{1.5, 2.5, 2.5, 3.5}, 0.5},
		{"MAE swapped", MAE, []float64{1, 2, 3, 4}, []float64{2, 1, 4, 3}, 1},
		{"R2 perfect", R2Score, []float64{1, 2, 3, 4, 5}, []float64{1, 2, 3, 4, 5}, 1},
		{"R2 worse than mean", R2Score, []float64{1, 2, 3, 4}, []float64{4, 3, 2, 1}, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.metric(vec(tt.yTrue), vec(tt.yPred))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegressionMetricErrors(t *testing.T) {
	short := mat.NewVecDense(2, []float64{1, 2})
	long := mat.NewVecDense(3, []float64{1, 2, 3})
	empty := &mat.VecDense{}

	for name, fn := range map[string]func(yTrue, yPred *mat.VecDense) (float64, error){
		"MSE": MSE, "RMSE": RMSE, "MAE": MAE, "R2Score": R2Score,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := fn(long, short); !errors.Is(err, errors.ErrDimensionMismatch) {
				t.Errorf("length mismatch: error = %v, want ErrDimensionMismatch", err)
			}
			if _, err := fn(empty, empty); !errors.Is(err, errors.ErrEmptyDataset) {
				t.Errorf("empty input: error = %v, want ErrEmptyDataset", err)
			}
		})
	}

	constant := mat.NewVecDense(5, []float64{3, 3, 3, 3, 3})
	if _, err := R2Score(constant, long); err == nil {
		t.Error("R2Score should fail on mismatched lengths")
	}
	if _, err := R2Score(constant, mat.NewVecDense(5, []float64{2, 3, 4, 3, 3})); err == nil {
		t.Error("R2Score should fail when yTrue has no variance")
	}
}

func TestMatrixMetrics(t *testing.T) {
	yTrue := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	yPred := mat.NewDense(4, 1, []float64{1.5, 2.5, 2.5, 3.5})

	mse, err := MSEMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("MSEMatrix() error = %v", err)
	}
	if math.Abs(mse-0.25) > 1e-10 {
		t.Errorf("MSEMatrix() = %v, want 0.25", mse)
	}

	r2, err := R2ScoreMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("R2ScoreMatrix() error = %v", err)
	}
	// RSS = 1, TSS = 5
	if math.Abs(r2-0.8) > 1e-10 {
		t.Errorf("R2ScoreMatrix() = %v, want 0.8", r2)
	}

	wide := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if _, err := MSEMatrix(wide, wide); !errors.Is(err, errors.ErrDimensionMismatch) {
		t.Errorf("multi-column input: error = %v, want ErrDimensionMismatch", err)
	}
	if _, err := MSEMatrix(&mat.Dense{}, &mat.Dense{}); !errors.Is(err, errors.ErrEmptyDataset) {
		t.Errorf("empty input: error = %v, want ErrEmptyDataset", err)
	}
}

func BenchmarkMSE(b *testing.B) {
	size := 10000
	yTrue := mat.NewVecDense(size, nil)
	yPred := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.1*float64(i%10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
