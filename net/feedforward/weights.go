package feedforward

import "github.com/pkg/errors"

// Weights returns all weights and biases as one flat vector in this order:
// input to hidden weights (input major), hidden biases, hidden to output
// weights (hidden major), output biases.
func (f *FeedforwardNetwork) Weights() []float64 {
	var o = make([]float64, 0, f.NumWeights())
	for i := range f.ih {
		o = append(o, f.ih[i]...)
	}
	o = append(o, f.hBias...)
	for j := range f.ho {
		o = append(o, f.ho[j]...)
	}
	return append(o, f.oBias...)
}

// SetWeights restores a weight vector produced by Weights
func (f *FeedforwardNetwork) SetWeights(w []float64) error {
	if len(w) != f.NumWeights() {
		return errors.Errorf("%d weights, network %dx%dx%d needs %d",
			len(w), f.numInput, f.numHidden, f.numOutput, f.NumWeights())
	}
	f.setWeights(w)
	return nil
}

func (f *FeedforwardNetwork) setWeights(w []float64) {
	var n int
	for i := range f.ih {
		n += copy(f.ih[i], w[n:])
	}
	n += copy(f.hBias, w[n:])
	for j := range f.ho {
		n += copy(f.ho[j], w[n:])
	}
	copy(f.oBias, w[n:])
}
