// Package learning holds the hyperparameters of recognizer training
package learning

import "github.com/pkg/errors"

// HyperParameters controls topology, data split and backpropagation
type HyperParameters struct {
	Hidden int `yaml:"hidden"` // hidden layer size

	Epochs    int     `yaml:"epochs"`    // full passes over the train set, always all run
	LearnRate float64 `yaml:"learnRate"` // gradient step size
	Momentum  float64 `yaml:"momentum"`  // fraction of the previous update added to each update

	TrainFraction float64 `yaml:"trainFraction"` // share of rows used for training, the rest tests
	SplitSeed     int64   `yaml:"splitSeed"`     // seed of the train/test shuffle
	WeightSeed    int64   `yaml:"weightSeed"`    // seed of weight init and epoch shuffles
}

// Defaults returns the hyperparameters recognizers are trained with
func Defaults() HyperParameters {
	return HyperParameters{
		Hidden:        10,
		Epochs:        1000,
		LearnRate:     0.05,
		Momentum:      0.01,
		TrainFraction: 0.80,
		SplitSeed:     1,
		WeightSeed:    0,
	}
}

// Validate rejects values training cannot run with
func (h *HyperParameters) Validate() error {
	switch {
	case h.Hidden <= 0:
		return errors.Errorf("hidden layer size %d", h.Hidden)
	case h.Epochs < 0:
		return errors.Errorf("epochs %d", h.Epochs)
	case h.LearnRate <= 0:
		return errors.Errorf("learn rate %v", h.LearnRate)
	case h.Momentum < 0 || h.Momentum >= 1:
		return errors.Errorf("momentum %v outside [0, 1)", h.Momentum)
	case h.TrainFraction <= 0 || h.TrainFraction > 1:
		return errors.Errorf("train fraction %v outside (0, 1]", h.TrainFraction)
	}
	return nil
}
