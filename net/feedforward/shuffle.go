package feedforward

// shuffle permutes sequence in place using the network generator (Fisher-Yates)
func (f *FeedforwardNetwork) shuffle(sequence []int) {
	for i := len(sequence) - 1; i > 0; i-- {
		j := f.rnd.Intn(i + 1)
		sequence[i], sequence[j] = sequence[j], sequence[i]
	}
}
