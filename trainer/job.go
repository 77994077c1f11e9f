package trainer

import (
	"context"
	"sync"
)

// Job is a training run on its own goroutine
type Job struct {
	Set string

	cancel context.CancelFunc
	done   chan struct{}

	once   sync.Once
	result *Result
	err    error
}

// TrainAsync starts TrainRecognizer on a new goroutine and returns at once.
// When the run ends, successfully or not, done is called with the set name
// and the error, then Wait returns.
func (t *Trainer) TrainAsync(ctx context.Context, set string, done func(set string, err error)) *Job {
	ctx, cancel := context.WithCancel(ctx)
	j := &Job{
		Set:    set,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer cancel()
		j.result, j.err = t.TrainRecognizer(ctx, set)
		if done != nil {
			done(set, j.err)
		}
		close(j.done)
	}()
	return j
}

// Cancel asks the run to stop before its next epoch
func (j *Job) Cancel() {
	j.once.Do(j.cancel)
}

// Done is closed when the run ended
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the run ended and returns its outcome
func (j *Job) Wait() (*Result, error) {
	<-j.done
	return j.result, j.err
}
