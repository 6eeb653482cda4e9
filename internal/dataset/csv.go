// Package dataset loads numeric CSV files into gonum matrices.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/glib/pkg/errors"
)

// Dataset is a design matrix with named columns and an optional target.
type Dataset struct {
	X        *mat.Dense
	Y        *mat.VecDense // nil when no target column was requested
	Features []string
	Target   string
}

// LoadCSV reads the CSV file at path. See ReadCSV.
func LoadCSV(path, target string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()

	ds, err := ReadCSV(f, target)
	if err != nil {
		return nil, errors.Wrapf(err, "read dataset %s", path)
	}
	return ds, nil
}

// ReadCSV parses a CSV with a header row. Every column except target becomes
// a feature; target may be empty when there is nothing to predict. Lines
// starting with '#' are skipped and cells are trimmed.
func ReadCSV(r io.Reader, target string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewEmptyDatasetError("dataset.ReadCSV")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	targetCol := -1
	var features []int
	for i, name := range header {
		if target != "" && name == target {
			targetCol = i
			continue
		}
		features = append(features, i)
	}
	if target != "" && targetCol < 0 {
		return nil, errors.NewValueError("dataset.ReadCSV", fmt.Sprintf("target column %q not found", target))
	}
	if len(features) == 0 {
		return nil, errors.NewEmptyDatasetError("dataset.ReadCSV")
	}

	var xs, ys []float64
	rows := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read row %d", rows+1)
		}
		for _, j := range features {
			v, err := parseCell(rec[j], rows+1, header[j])
			if err != nil {
				return nil, err
			}
			xs = append(xs, v)
		}
		if targetCol >= 0 {
			v, err := parseCell(rec[targetCol], rows+1, header[targetCol])
			if err != nil {
				return nil, err
			}
			ys = append(ys, v)
		}
		rows++
	}
	if rows == 0 {
		return nil, errors.NewEmptyDatasetError("dataset.ReadCSV")
	}

	ds := &Dataset{
		X:      mat.NewDense(rows, len(features), xs),
		Target: target,
	}
	for _, j := range features {
		ds.Features = append(ds.Features, header[j])
	}
	if targetCol >= 0 {
		ds.Y = mat.NewVecDense(rows, ys)
	}
	return ds, nil
}

func parseCell(cell string, row int, column string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, errors.NewValueError("dataset.ReadCSV",
			fmt.Sprintf("row %d, column %q: %q is not a number", row, column, cell))
	}
	return v, nil
}

// Select returns the columns named in features, in that order. It is used to
// line prediction data up with the features a model was trained on.
func (d *Dataset) Select(features []string) (*mat.Dense, error) {
	if len(features) == 0 {
		return d.X, nil
	}
	index := make(map[string]int, len(d.Features))
	for j, name := range d.Features {
		index[name] = j
	}

	rows, _ := d.X.Dims()
	out := mat.NewDense(rows, len(features), nil)
	for k, name := range features {
		j, ok := index[name]
		if !ok {
			return nil, errors.Wrapf(
				errors.NewDimensionError("dataset.Select", len(features), len(d.Features), 1),
				"feature %q missing", name)
		}
		out.SetCol(k, mat.Col(nil, j, d.X))
	}
	return out, nil
}
