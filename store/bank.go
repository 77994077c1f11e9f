package store

import (
	"encoding/json"
	"os"

	"github.com/neurlang/vrgesture/gesture"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// LoadBank reads the ordered gesture list of a set. Example counts are
// filled in from the example files. A set without a bank has no gestures.
func (s *Store) LoadBank(set string) ([]gesture.Gesture, error) {
	if err := validName("gesture set", set); err != nil {
		return nil, err
	}
	l := s.lock(set)
	l.RLock()
	data, err := afero.ReadFile(s.fs, s.bankPath(set))
	l.RUnlock()
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "load bank of %q", set)
	}
	var bank []gesture.Gesture
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, errors.Wrapf(ErrCorruptData, "bank of %q: %v", set, err)
	}
	for i := range bank {
		if err := validName("gesture", bank[i].Name); err != nil {
			return nil, errors.Wrapf(ErrCorruptData, "bank of %q: %v", set, err)
		}
		if bank[i].ExampleCount, err = s.Count(set, bank[i].Name); err != nil {
			return nil, err
		}
	}
	return bank, nil
}

// SaveBank replaces the gesture list of a set
func (s *Store) SaveBank(set string, bank []gesture.Gesture) error {
	if err := validName("gesture set", set); err != nil {
		return err
	}
	stored := make([]gesture.Gesture, len(bank))
	for i := range bank {
		stored[i] = bank[i]
		stored[i].ExampleCount = 0
	}
	data, err := json.MarshalIndent(stored, "", "\t")
	if err != nil {
		return errors.Wrap(err, "encode bank")
	}
	l := s.lock(set)
	l.Lock()
	defer l.Unlock()
	if err := s.fs.MkdirAll(s.SetDir(set), 0o755); err != nil {
		return errors.Wrapf(err, "create set %q", set)
	}
	return s.writeAtomic(s.bankPath(set), data)
}

// writeAtomic writes data next to path and renames it into place
func (s *Store) writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		s.fs.Remove(tmp)
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(s.fs.Rename(tmp, path), "write %s", path)
}
