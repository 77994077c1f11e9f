// Package manager is the API an editor or host application drives: gesture
// sets, their gesture banks, recording and training. All state lives in the
// store; every operation names the gesture set it works on.
package manager

import (
	"context"
	"sync"

	"github.com/neurlang/vrgesture/geometry"
	"github.com/neurlang/vrgesture/gesture"
	"github.com/neurlang/vrgesture/logging"
	"github.com/neurlang/vrgesture/store"
	"github.com/neurlang/vrgesture/trainer"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateName is returned when a set or gesture name is taken
	ErrDuplicateName = errors.New("duplicate name")

	// ErrNotFound is returned for a set or gesture that does not exist
	ErrNotFound = errors.New("not found")

	// ErrTraining is returned when a set is already being trained
	ErrTraining = errors.New("training in progress")
)

// Manager owns no gesture state itself; it serializes bank edits and
// tracks running training jobs.
type Manager struct {
	store   *store.Store
	trainer *trainer.Trainer
	log     *zap.Logger

	mut  sync.Mutex
	jobs map[string]*trainer.Job
}

// New returns a manager over the trainer's store
func New(s *store.Store, t *trainer.Trainer, log *zap.Logger) *Manager {
	return &Manager{
		store:   s,
		trainer: t,
		log:     logging.OrNop(log),
		jobs:    make(map[string]*trainer.Job),
	}
}

// Sets lists the gesture sets
func (m *Manager) Sets() ([]string, error) {
	return m.store.Sets()
}

// CreateSet creates an empty gesture set
func (m *Manager) CreateSet(name string) error {
	m.mut.Lock()
	defer m.mut.Unlock()
	exists, err := m.store.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(ErrDuplicateName, "gesture set %q", name)
	}
	if err := m.store.CreateSet(name); err != nil {
		return err
	}
	m.log.Info("set created", zap.String("set", name))
	return m.store.SaveBank(name, nil)
}

// DeleteSet removes a set with all its examples and its model. Deleting a
// missing set is not an error; a set being trained cannot be deleted.
func (m *Manager) DeleteSet(name string) error {
	m.mut.Lock()
	defer m.mut.Unlock()
	if err := m.idle(name); err != nil {
		return err
	}
	return m.store.DeleteSet(name)
}

// idle fails with ErrTraining while the set is being trained, m.mut held
func (m *Manager) idle(set string) error {
	if _, ok := m.jobs[set]; ok {
		return errors.Wrapf(ErrTraining, "gesture set %q", set)
	}
	return nil
}

func (m *Manager) mustExist(set string) error {
	exists, err := m.store.Exists(set)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Wrapf(ErrNotFound, "gesture set %q", set)
	}
	return nil
}

// Gestures returns the gesture bank of a set with current example counts
func (m *Manager) Gestures(set string) ([]gesture.Gesture, error) {
	if err := m.mustExist(set); err != nil {
		return nil, err
	}
	return m.store.LoadBank(set)
}

// CreateGesture appends a gesture to the bank of a set and creates its
// empty example file. Banks of sets being trained cannot be edited.
func (m *Manager) CreateGesture(set string, g gesture.Gesture) error {
	m.mut.Lock()
	defer m.mut.Unlock()
	if err := m.idle(set); err != nil {
		return err
	}
	if err := m.mustExist(set); err != nil {
		return err
	}
	if !g.Hand.Valid() {
		return errors.Errorf("gesture %q with hand %d", g.Name, int(g.Hand))
	}
	bank, err := m.store.LoadBank(set)
	if err != nil {
		return err
	}
	if gesture.Index(bank, g.Name) >= 0 {
		return errors.Wrapf(ErrDuplicateName, "gesture %q in %q", g.Name, set)
	}
	if err := m.store.CreateGesture(set, g.Name); err != nil {
		return err
	}
	g.ExampleCount = 0
	return m.store.SaveBank(set, append(bank, g))
}

// RenameGesture renames a gesture together with its recorded examples.
// Renaming to the current name does nothing; a taken name fails with
// ErrDuplicateName and changes nothing.
func (m *Manager) RenameGesture(set, from, to string) error {
	m.mut.Lock()
	defer m.mut.Unlock()
	if from == to {
		return nil
	}
	if err := m.idle(set); err != nil {
		return err
	}
	if err := m.mustExist(set); err != nil {
		return err
	}
	bank, err := m.store.LoadBank(set)
	if err != nil {
		return err
	}
	i := gesture.Index(bank, from)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "gesture %q in %q", from, set)
	}
	if gesture.Index(bank, to) >= 0 {
		return errors.Wrapf(ErrDuplicateName, "gesture %q in %q", to, set)
	}
	if err := m.store.RenameGesture(set, from, to); err != nil {
		return err
	}
	bank[i].Name = to
	m.log.Info("gesture renamed", zap.String("set", set), zap.String("from", from), zap.String("to", to))
	return m.store.SaveBank(set, bank)
}

// DeleteGesture removes a gesture and its examples. Deleting a missing
// gesture is not an error.
func (m *Manager) DeleteGesture(set, name string) error {
	m.mut.Lock()
	defer m.mut.Unlock()
	if err := m.idle(set); err != nil {
		return err
	}
	exists, err := m.store.Exists(set)
	if err != nil || !exists {
		return err
	}
	bank, err := m.store.LoadBank(set)
	if err != nil {
		return err
	}
	if i := gesture.Index(bank, name); i >= 0 {
		bank = append(bank[:i], bank[i+1:]...)
		if err := m.store.SaveBank(set, bank); err != nil {
			return err
		}
	}
	return m.store.DeleteGesture(set, name)
}

// ReadyToTrain reports whether the set has gestures and each has an example
func (m *Manager) ReadyToTrain(set string) (bool, error) {
	bank, err := m.Gestures(set)
	if err != nil {
		return false, err
	}
	if len(bank) == 0 {
		return false, nil
	}
	for _, g := range bank {
		if g.ExampleCount <= 0 {
			return false, nil
		}
	}
	return true, nil
}

// Record adds a captured line as an example of a gesture of the set. It
// reports false when the capture was too short and got discarded.
func (m *Manager) Record(set, name string, line geometry.Line, hand gesture.Hand) (bool, error) {
	bank, err := m.Gestures(set)
	if err != nil {
		return false, err
	}
	if gesture.Index(bank, name) < 0 {
		return false, errors.Wrapf(ErrNotFound, "gesture %q in %q", name, set)
	}
	return m.trainer.AddExample(set, line, hand, name)
}

// BeginTraining trains the set on its own goroutine. done receives the set
// name and the training error once the run ended.
func (m *Manager) BeginTraining(ctx context.Context, set string, done func(set string, err error)) (*trainer.Job, error) {
	if err := m.mustExist(set); err != nil {
		return nil, err
	}
	m.mut.Lock()
	defer m.mut.Unlock()
	if _, ok := m.jobs[set]; ok {
		return nil, errors.Wrapf(ErrTraining, "gesture set %q", set)
	}
	job := m.trainer.TrainAsync(ctx, set, func(set string, err error) {
		m.mut.Lock()
		delete(m.jobs, set)
		m.mut.Unlock()
		if done != nil {
			done(set, err)
		}
	})
	m.jobs[set] = job
	return job, nil
}

// EndTraining stops a running training of the set before its next epoch
// and calls done with the set name once it stopped. Without a running
// training done is called at once.
func (m *Manager) EndTraining(set string, done func(set string)) {
	m.mut.Lock()
	job, ok := m.jobs[set]
	m.mut.Unlock()
	if ok {
		job.Cancel()
		job.Wait()
	}
	if done != nil {
		done(set)
	}
}
