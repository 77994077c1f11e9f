// Package model holds the trained model artifact: topology, labels and weights
package model

import (
	"encoding/json"
	"io"

	"github.com/neurlang/vrgesture/gesture"
	"github.com/neurlang/vrgesture/net/feedforward"
	"github.com/pkg/errors"
)

// Artifact is the serialized form of a trained recognizer. Output k of the
// network belongs to Gestures[k].
type Artifact struct {
	NumInput  int               `json:"numInput"`
	NumHidden int               `json:"numHidden"`
	NumOutput int               `json:"numOutput"`
	Gestures  []gesture.Gesture `json:"gestures"`
	Weights   []float64         `json:"weights"`
}

// New captures a trained network together with its label definitions
func New(net *feedforward.FeedforwardNetwork, gestures []gesture.Gesture) *Artifact {
	return &Artifact{
		NumInput:  net.NumInput(),
		NumHidden: net.NumHidden(),
		NumOutput: net.NumOutput(),
		Gestures:  append([]gesture.Gesture(nil), gestures...),
		Weights:   net.Weights(),
	}
}

// Labels returns the gesture names in output order
func (a *Artifact) Labels() []string {
	return gesture.Labels(a.Gestures)
}

// Validate checks that topology, labels and weights agree
func (a *Artifact) Validate() error {
	if a.NumOutput != len(a.Gestures) {
		return errors.Errorf("%d outputs for %d gestures", a.NumOutput, len(a.Gestures))
	}
	want := a.NumInput*a.NumHidden + a.NumHidden + a.NumHidden*a.NumOutput + a.NumOutput
	if len(a.Weights) != want {
		return errors.Errorf("%d weights, topology %dx%dx%d needs %d",
			len(a.Weights), a.NumInput, a.NumHidden, a.NumOutput, want)
	}
	return nil
}

// Network rebuilds the network the artifact was saved from
func (a *Artifact) Network() (*feedforward.FeedforwardNetwork, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	net, err := feedforward.New(a.NumInput, a.NumHidden, a.NumOutput, 0)
	if err != nil {
		return nil, err
	}
	return net, net.SetWeights(a.Weights)
}

// Encode writes the artifact as a single JSON document
func (a *Artifact) Encode(w io.Writer) error {
	return errors.Wrap(json.NewEncoder(w).Encode(a), "encode model")
}

// Decode reads and validates an artifact written by Encode
func Decode(r io.Reader) (*Artifact, error) {
	var a Artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, errors.Wrap(err, "decode model")
	}
	if err := a.Validate(); err != nil {
		return nil, errors.Wrap(err, "decode model")
	}
	return &a, nil
}
