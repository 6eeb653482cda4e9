// Package metrics implements the evaluation metrics used to report on fitted
// models. MSE is also the training loss of every gradient-descent variant.
package metrics

import (
	"math"

	"github.com/YuminosukeSato/glib/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewEmptyDatasetError(op)
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// MSE computes the mean squared error (1/n)·Σ(yTrue−yPred)².
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// MSEMatrix computes MSE for n×1 matrices, the shape returned by Predict.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	a, b, err := columnPair("MSEMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return MSE(a, b)
}

// RMSE is the square root of MSE.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error (1/n)·Σ|yTrue−yPred|.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination 1 − RSS/TSS.
// It fails when yTrue has no variance.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yt, yp := yTrue.AtVec(i), yPred.AtVec(i)
		tss += (yt - yMean) * (yt - yMean)
		rss += (yt - yp) * (yt - yp)
	}

	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

// R2ScoreMatrix computes R² for n×1 matrices.
func R2ScoreMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	a, b, err := columnPair("R2ScoreMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return R2Score(a, b)
}

// columnPair copies two n×1 matrices into vectors.
func columnPair(op string, yTrue, yPred mat.Matrix) (*mat.VecDense, *mat.VecDense, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return nil, nil, errors.NewEmptyDatasetError(op)
	}
	if cTrue != 1 || cPred != 1 {
		return nil, nil, errors.NewDimensionError(op, 1, max(cTrue, cPred), 1)
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}

	a := mat.NewVecDense(rTrue, nil)
	b := mat.NewVecDense(rPred, nil)
	for i := 0; i < rTrue; i++ {
		a.SetVec(i, yTrue.At(i, 0))
		b.SetVec(i, yPred.At(i, 0))
	}
	return a, b, nil
}
