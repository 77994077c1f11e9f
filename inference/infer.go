// Package inference recognizes captured gestures with trained model artifacts
package inference

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/neurlang/vrgesture/datasets"
	"github.com/neurlang/vrgesture/geometry"
	"github.com/neurlang/vrgesture/gesture"
	"github.com/neurlang/vrgesture/model"
	"github.com/neurlang/vrgesture/net/feedforward"
	"github.com/neurlang/vrgesture/store"
	"github.com/pkg/errors"
)

// Result is the outcome of one recognition
type Result struct {
	Gesture    string
	Confidence float64   // output value of the winning gesture
	Outputs    []float64 // all outputs, in the order of the model gestures
	Recognized bool      // Confidence reached the threshold
}

type loaded struct {
	artifact *model.Artifact
	net      *feedforward.FeedforwardNetwork
}

// Recognizer classifies captures against the models of the store. Decoded
// models are kept in a least recently used cache.
type Recognizer struct {
	store     *store.Store
	threshold float64
	cache     *lru.Cache
}

// New returns a recognizer keeping up to cacheSize models
func New(s *store.Store, threshold float64, cacheSize int) (*Recognizer, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "model cache")
	}
	return &Recognizer{store: s, threshold: threshold, cache: cache}, nil
}

// Forget drops the cached model of a set, call it after retraining
func (r *Recognizer) Forget(set string) {
	r.cache.Remove(set)
}

func (r *Recognizer) load(set string) (*loaded, error) {
	if v, ok := r.cache.Get(set); ok {
		return v.(*loaded), nil
	}
	a, err := r.store.LoadModel(set)
	if err != nil {
		return nil, err
	}
	net, err := a.Network()
	if err != nil {
		return nil, errors.WithMessagef(err, "model of %q", set)
	}
	l := &loaded{artifact: a, net: net}
	r.cache.Add(set, l)
	return l, nil
}

// Recognize resamples a captured line the way training examples are
// processed and runs it through the model of the set. raw must match the
// raw data setting the set was recorded with.
func (r *Recognizer) Recognize(set string, line geometry.Line, hand gesture.Hand, raw bool) (*Result, error) {
	l, err := r.load(set)
	if err != nil {
		return nil, err
	}
	points, err := datasets.Points(l.artifact.NumInput)
	if err != nil {
		return nil, err
	}
	e := gesture.Example{Data: line, Hand: hand, Raw: raw}
	features, err := datasets.Features(&e, points)
	if err != nil {
		return nil, err
	}
	outputs, err := l.net.Predict(features)
	if err != nil {
		return nil, err
	}
	best := feedforward.ArgMax(outputs)
	return &Result{
		Gesture:    l.artifact.Gestures[best].Name,
		Confidence: outputs[best],
		Outputs:    outputs,
		Recognized: outputs[best] >= r.threshold,
	}, nil
}
