// Package feedforward implements a fully connected input-hidden-output network
// with logistic activations, trained online by backpropagation with momentum.
package feedforward

import "math"
import "math/rand"
import "context"

import "github.com/montanaflynn/stats"
import "github.com/pkg/errors"
import "go.uber.org/zap"

// ErrInvalidTrainingSet is returned when the training rows cannot train the network
var ErrInvalidTrainingSet = errors.New("invalid training set")

// Row is one training pair: network input and expected network output
type Row interface {
	Input() []float64
	Target() []float64
}

// FeedforwardNetwork is the 3 layer feedforward network
type FeedforwardNetwork struct {
	numInput, numHidden, numOutput int

	// ih[i][j] connects input i to hidden j, ho[j][k] hidden j to output k
	ih    [][]float64
	hBias []float64
	ho    [][]float64
	oBias []float64

	rnd *rand.Rand
	log *zap.Logger
}

// New creates the network with weights drawn from a generator seeded by seed
func New(numInput, numHidden, numOutput int, seed int64) (*FeedforwardNetwork, error) {
	if numInput <= 0 || numHidden <= 0 || numOutput <= 0 {
		return nil, errors.Errorf("topology %dx%dx%d", numInput, numHidden, numOutput)
	}
	f := &FeedforwardNetwork{
		numInput:  numInput,
		numHidden: numHidden,
		numOutput: numOutput,
		ih:        matrix(numInput, numHidden),
		hBias:     make([]float64, numHidden),
		ho:        matrix(numHidden, numOutput),
		oBias:     make([]float64, numOutput),
		rnd:       rand.New(rand.NewSource(seed)),
		log:       zap.NewNop(),
	}
	f.initialize()
	return f, nil
}

// SetLogger sets the logger receiving training progress
func (f *FeedforwardNetwork) SetLogger(log *zap.Logger) {
	if log != nil {
		f.log = log
	}
}

func matrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// initialize draws every weight and bias uniformly from [-r, r], r = 1/sqrt(numInput)
func (f *FeedforwardNetwork) initialize() {
	var r = 1 / math.Sqrt(float64(f.numInput))
	var w = make([]float64, f.NumWeights())
	for i := range w {
		w[i] = (2*f.rnd.Float64() - 1) * r
	}
	f.setWeights(w)
}

// NumInput returns the input layer size
func (f *FeedforwardNetwork) NumInput() int { return f.numInput }

// NumHidden returns the hidden layer size
func (f *FeedforwardNetwork) NumHidden() int { return f.numHidden }

// NumOutput returns the output layer size
func (f *FeedforwardNetwork) NumOutput() int { return f.numOutput }

// NumWeights returns the length of the flat weight vector
func (f *FeedforwardNetwork) NumWeights() int {
	return f.numInput*f.numHidden + f.numHidden + f.numHidden*f.numOutput + f.numOutput
}

func sigmoid(x float64) float64 {
	// clamp to keep math.Exp finite
	if x < -45 {
		return 0
	} else if x > 45 {
		return 1
	}
	return 1 / (1 + math.Exp(-x))
}

// forward fills hidden and output for input
func (f *FeedforwardNetwork) forward(input, hidden, output []float64) {
	for j := 0; j < f.numHidden; j++ {
		sum := f.hBias[j]
		for i := 0; i < f.numInput; i++ {
			sum += input[i] * f.ih[i][j]
		}
		hidden[j] = sigmoid(sum)
	}
	for k := 0; k < f.numOutput; k++ {
		sum := f.oBias[k]
		for j := 0; j < f.numHidden; j++ {
			sum += hidden[j] * f.ho[j][k]
		}
		output[k] = sigmoid(sum)
	}
}

// Predict runs the forward pass. It does not modify the network and is safe
// for concurrent use as long as no training runs.
func (f *FeedforwardNetwork) Predict(input []float64) ([]float64, error) {
	if len(input) != f.numInput {
		return nil, errors.Errorf("input length %d, network expects %d", len(input), f.numInput)
	}
	var hidden = make([]float64, f.numHidden)
	var output = make([]float64, f.numOutput)
	f.forward(input, hidden, output)
	return output, nil
}

// Classify returns the index of the strongest output and its value
func (f *FeedforwardNetwork) Classify(input []float64) (int, float64, error) {
	output, err := f.Predict(input)
	if err != nil {
		return -1, 0, err
	}
	index := ArgMax(output)
	return index, output[index], nil
}

// ArgMax returns the index of the largest value, the first one on ties
func ArgMax(v []float64) (o int) {
	for i := range v {
		if v[i] > v[o] {
			o = i
		}
	}
	return
}

func (f *FeedforwardNetwork) check(rows []Row) error {
	if len(rows) == 0 {
		return errors.Wrap(ErrInvalidTrainingSet, "no rows")
	}
	for n, row := range rows {
		if len(row.Input()) != f.numInput {
			return errors.Wrapf(ErrInvalidTrainingSet, "row %d has %d inputs, network has %d",
				n, len(row.Input()), f.numInput)
		}
		if len(row.Target()) != f.numOutput {
			return errors.Wrapf(ErrInvalidTrainingSet, "row %d has %d targets, network has %d outputs",
				n, len(row.Target()), f.numOutput)
		}
	}
	return nil
}

// Train runs maxEpochs epochs of online backpropagation over rows, visiting
// rows in a freshly shuffled order each epoch. Every weight update is
// learnRate times the gradient step plus momentum times the previous update.
// Training is only interrupted when ctx is done, checked between epochs.
// It returns the flat weight vector, see Weights for the ordering.
func (f *FeedforwardNetwork) Train(ctx context.Context, rows []Row, maxEpochs int, learnRate, momentum float64) ([]float64, error) {
	if err := f.check(rows); err != nil {
		return nil, err
	}
	if maxEpochs < 0 {
		return nil, errors.Errorf("negative epoch count %d", maxEpochs)
	}

	var hidden = make([]float64, f.numHidden)
	var output = make([]float64, f.numOutput)
	var oGrad = make([]float64, f.numOutput)
	var hGrad = make([]float64, f.numHidden)

	// previous updates, for momentum
	var ihPrev = matrix(f.numInput, f.numHidden)
	var hBiasPrev = make([]float64, f.numHidden)
	var hoPrev = matrix(f.numHidden, f.numOutput)
	var oBiasPrev = make([]float64, f.numOutput)

	var sequence = make([]int, len(rows))
	for i := range sequence {
		sequence[i] = i
	}
	var errs = make([]float64, len(rows))

	for epoch := 0; epoch < maxEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "training stopped at epoch %d", epoch)
		}
		f.shuffle(sequence)
		for _, n := range sequence {
			input, target := rows[n].Input(), rows[n].Target()
			f.forward(input, hidden, output)

			var sq float64
			for k := range output {
				diff := target[k] - output[k]
				sq += diff * diff
				oGrad[k] = diff * output[k] * (1 - output[k])
			}
			errs[n] = sq / float64(f.numOutput)

			for j := range hidden {
				var sum float64
				for k := range oGrad {
					sum += oGrad[k] * f.ho[j][k]
				}
				hGrad[j] = sum * hidden[j] * (1 - hidden[j])
			}

			for i := range input {
				for j := range hGrad {
					delta := learnRate*hGrad[j]*input[i] + momentum*ihPrev[i][j]
					f.ih[i][j] += delta
					ihPrev[i][j] = delta
				}
			}
			for j := range hGrad {
				delta := learnRate*hGrad[j] + momentum*hBiasPrev[j]
				f.hBias[j] += delta
				hBiasPrev[j] = delta
			}
			for j := range hidden {
				for k := range oGrad {
					delta := learnRate*oGrad[k]*hidden[j] + momentum*hoPrev[j][k]
					f.ho[j][k] += delta
					hoPrev[j][k] = delta
				}
			}
			for k := range oGrad {
				delta := learnRate*oGrad[k] + momentum*oBiasPrev[k]
				f.oBias[k] += delta
				oBiasPrev[k] = delta
			}
		}
		if (epoch+1)%100 == 0 || epoch+1 == maxEpochs {
			mse, _ := stats.Mean(errs)
			f.log.Debug("epoch", zap.Int("epoch", epoch+1), zap.Float64("mse", mse))
		}
	}
	return f.Weights(), nil
}
