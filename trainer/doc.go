// Package trainer records gesture examples and trains recognizers from them.
// It ties the example store, the dataset builder and the feedforward network
// together and writes the trained model artifact of a gesture set.
package trainer
