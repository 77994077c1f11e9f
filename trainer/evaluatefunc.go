package trainer

import (
	"github.com/montanaflynn/stats"

	"github.com/neurlang/vrgesture/datasets"
	"github.com/neurlang/vrgesture/net/feedforward"
	"github.com/neurlang/vrgesture/parallel"
)

// Evaluation summarizes a network on a set of rows
type Evaluation struct {
	Rows     int
	Correct  int
	Accuracy float64 // share of rows whose strongest output is the target
	MSE      float64 // mean squared error over all outputs
}

// Evaluate runs the network over rows in parallel. Empty rows evaluate to zero.
func Evaluate(net *feedforward.FeedforwardNetwork, rows []datasets.Row) (e Evaluation) {
	e.Rows = len(rows)
	if len(rows) == 0 {
		return
	}
	var correct = make([]float64, len(rows))
	var sqErr = make([]float64, len(rows))
	parallel.ForEach(len(rows), 0, func(i int) {
		output, err := net.Predict(rows[i].Input())
		if err != nil {
			return
		}
		target := rows[i].Target()
		if target[feedforward.ArgMax(output)] == 1 {
			correct[i] = 1
		}
		var sum float64
		for k := range output {
			sum += (target[k] - output[k]) * (target[k] - output[k])
		}
		sqErr[i] = sum / float64(len(output))
	})
	sum, _ := stats.Sum(correct)
	e.Correct = int(sum)
	e.Accuracy, _ = stats.Mean(correct)
	e.MSE, _ = stats.Mean(sqErr)
	return
}
