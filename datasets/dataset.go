// Package datasets turns recorded gesture examples into network training rows
package datasets

import (
	"github.com/neurlang/vrgesture/geometry"
	"github.com/neurlang/vrgesture/gesture"
	"github.com/pkg/errors"
)

// ErrUnknownLabel is returned for an example whose label is not in the label set
var ErrUnknownLabel = errors.New("unknown label")

// Row is one training pair. Features holds the hand indicator followed by
// x, y, z of every resampled point; Output is the one-hot target.
type Row struct {
	Label    string
	Features []float64
	Output   []float64
}

// Input returns the network input of the row
func (r *Row) Input() []float64 {
	return r.Features
}

// Target returns the expected network output of the row
func (r *Row) Target() []float64 {
	return r.Output
}

// Points returns the number of resampled points a network with numInput
// inputs consumes: one hand indicator plus three coordinates per point.
func Points(numInput int) (int, error) {
	if numInput < 7 || (numInput-1)%3 != 0 {
		return 0, errors.Errorf("input size %d is not 1+3*points with at least 2 points", numInput)
	}
	return (numInput - 1) / 3, nil
}

// NumInput is the inverse of Points
func NumInput(points int) int {
	return 1 + 3*points
}

// Features computes the network input of one example. Raw examples are
// resampled and scaled down, resampled examples are only resampled again
// when their point count does not match.
func Features(e *gesture.Example, points int) ([]float64, error) {
	line := e.Data
	if e.Raw || len(line) != points {
		var err error
		line, err = geometry.Resample(line, points)
		if err != nil {
			return nil, errors.Wrapf(err, "example %q", e.Name)
		}
		if e.Raw {
			line = geometry.DownScale(line)
		}
	}
	var o = make([]float64, 0, NumInput(points))
	o = append(o, float64(e.Hand))
	return line.Flatten(o), nil
}

// OneHot returns a vector of len(labels) zeros with a one at the index of label
func OneHot(labels []string, label string) ([]float64, error) {
	var o = make([]float64, len(labels))
	for i := range labels {
		if labels[i] == label {
			o[i] = 1
			return o, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownLabel, "%q not in %v", label, labels)
}

// Build converts examples into rows for a network with numInput inputs and
// one output per label, in labels order.
func Build(examples []gesture.Example, labels []string, numInput int) ([]Row, error) {
	points, err := Points(numInput)
	if err != nil {
		return nil, err
	}
	var rows = make([]Row, 0, len(examples))
	for i := range examples {
		output, err := OneHot(labels, examples[i].Name)
		if err != nil {
			return nil, err
		}
		features, err := Features(&examples[i], points)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{
			Label:    examples[i].Name,
			Features: features,
			Output:   output,
		})
	}
	return rows, nil
}
