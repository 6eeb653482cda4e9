package metrics

import (
	"cmp"
	"math"
	"slices"

	"github.com/YuminosukeSato/glib/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// probabilityEpsilon keeps log loss finite for predictions of exactly 0 or 1.
const probabilityEpsilon = 1e-15

func checkVectors(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewEmptyDatasetError(op)
	}
	return checkPair(op, yTrue, yPred)
}

func checkBinaryLabels(op string, y *mat.VecDense) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError(op, "labels must be 0 or 1")
		}
	}
	return nil
}

// Binarize maps probabilities to 0/1 labels: 1 when p >= threshold.
// threshold must lie in (0, 1).
func Binarize(probs *mat.VecDense, threshold float64) (*mat.VecDense, error) {
	if !(threshold > 0 && threshold < 1) {
		return nil, errors.NewValidationError("threshold", "must be in (0, 1)", threshold)
	}
	if probs == nil || probs.Len() == 0 {
		return nil, errors.NewEmptyDatasetError("Binarize")
	}
	labels := mat.NewVecDense(probs.Len(), nil)
	for i := 0; i < probs.Len(); i++ {
		if probs.AtVec(i) >= threshold {
			labels.SetVec(i, 1)
		}
	}
	return labels, nil
}

// Accuracy is the fraction of positions where yPred equals yTrue.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError is 1 − Accuracy.
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// BinaryLogLoss computes the mean cross-entropy of 0/1 labels against predicted
// probabilities. Probabilities are clipped to [1e-15, 1−1e-15].
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinaryLabels("BinaryLogLoss", yTrue); err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		p := errors.ClipValue(yPred.AtVec(i), probabilityEpsilon, 1-probabilityEpsilon)
		if yTrue.AtVec(i) == 1 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	return sum / float64(n), nil
}

// AUC computes the area under the ROC curve using the rank statistic, with
// tied scores sharing their average rank. It returns 0.5 when only one class
// is present.
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinaryLabels("AUC", yTrue); err != nil {
		return 0, err
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int {
		return cmp.Compare(yPred.AtVec(a), yPred.AtVec(b))
	})

	var positives, rankSum float64
	for start := 0; start < n; {
		end := start + 1
		for end < n && yPred.AtVec(idx[end]) == yPred.AtVec(idx[start]) {
			end++
		}
		// Ranks are 1-based; the group spans ranks start+1..end.
		avgRank := float64(start+1+end) / 2
		for _, j := range idx[start:end] {
			if yTrue.AtVec(j) == 1 {
				positives++
				rankSum += avgRank
			}
		}
		start = end
	}

	negatives := float64(n) - positives
	if positives == 0 || negatives == 0 {
		return 0.5, nil
	}
	return (rankSum - positives*(positives+1)/2) / (positives * negatives), nil
}

// AUCMatrix computes AUC on the first column of each matrix.
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewEmptyDatasetError("AUCMatrix")
	}
	r, c := yTrue.Dims()
	if r == 0 || c == 0 {
		return 0, errors.NewEmptyDatasetError("AUCMatrix")
	}
	rp, _ := yPred.Dims()
	if rp != r {
		return 0, errors.NewDimensionError("AUCMatrix", r, rp, 0)
	}
	a := mat.NewVecDense(r, nil)
	b := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		a.SetVec(i, yTrue.At(i, 0))
		b.SetVec(i, yPred.At(i, 0))
	}
	return AUC(a, b)
}
