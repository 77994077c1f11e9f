package store

import (
	"bytes"
	"os"

	"github.com/neurlang/vrgesture/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SaveModel writes the model artifact of a set. The previous model is
// replaced only once the new one is completely written.
func (s *Store) SaveModel(set string, a *model.Artifact) error {
	if err := validName("gesture set", set); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		return err
	}
	l := s.lock(set)
	l.Lock()
	defer l.Unlock()
	if err := s.fs.MkdirAll(s.SetDir(set), 0o755); err != nil {
		return errors.Wrapf(err, "create set %q", set)
	}
	if err := s.writeAtomic(s.ModelPath(set), buf.Bytes()); err != nil {
		return err
	}
	s.log.Info("model saved", zap.String("set", set), zap.String("path", s.ModelPath(set)),
		zap.Int("outputs", a.NumOutput))
	return nil
}

// LoadModel reads the model artifact of a set, os.ErrNotExist is returned
// wrapped when the set was never trained.
func (s *Store) LoadModel(set string) (*model.Artifact, error) {
	if err := validName("gesture set", set); err != nil {
		return nil, err
	}
	l := s.lock(set)
	l.RLock()
	defer l.RUnlock()
	f, err := s.fs.Open(s.ModelPath(set))
	if err != nil {
		return nil, errors.Wrapf(err, "load model of %q", set)
	}
	defer f.Close()
	return model.Decode(f)
}

// HasModel reports whether a model artifact exists for a set
func (s *Store) HasModel(set string) (bool, error) {
	if err := validName("gesture set", set); err != nil {
		return false, err
	}
	_, err := s.fs.Stat(s.ModelPath(set))
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

