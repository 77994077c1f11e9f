// Package store persists gesture sets: the gesture bank, the recorded
// examples (one JSON record per line, one file per gesture) and the model.
//
// Layout below the root:
//
//	<set>/bank.json            ordered gesture definitions
//	<set>/Gestures/<name>.txt  examples of one gesture
//	<set>/<set>.txt            trained model artifact
package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	gesturesDir = "Gestures"
	exampleExt  = ".txt"
	bankFile    = "bank.json"
)

// ErrCorruptData is returned when a stored record cannot be read back
var ErrCorruptData = errors.New("corrupt data")

// Store is the persistent storage of all gesture sets below one root.
// Access to one set is serialized by a per-set lock.
type Store struct {
	fs   afero.Fs
	root string
	log  *zap.Logger

	mut   sync.Mutex
	locks map[string]*sync.RWMutex
}

// New returns a store rooted at root on fs
func New(fs afero.Fs, root string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		fs:    fs,
		root:  root,
		log:   log,
		locks: make(map[string]*sync.RWMutex),
	}
}

// NewOs returns a store on the operating system filesystem
func NewOs(root string, log *zap.Logger) *Store {
	return New(afero.NewOsFs(), root, log)
}

// Fs returns the underlying filesystem
func (s *Store) Fs() afero.Fs {
	return s.fs
}

func (s *Store) lock(set string) *sync.RWMutex {
	s.mut.Lock()
	defer s.mut.Unlock()
	l, ok := s.locks[set]
	if !ok {
		l = new(sync.RWMutex)
		s.locks[set] = l
	}
	return l
}

// validName rejects names that would escape their directory
func validName(kind, name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Errorf("invalid %s name %q", kind, name)
	}
	return nil
}

// SetDir returns the directory of a gesture set
func (s *Store) SetDir(set string) string {
	return filepath.Join(s.root, set)
}

// GesturesDir returns the directory holding the example files of a set
func (s *Store) GesturesDir(set string) string {
	return filepath.Join(s.root, set, gesturesDir)
}

// ExamplePath returns the example file of one gesture
func (s *Store) ExamplePath(set, name string) string {
	return filepath.Join(s.GesturesDir(set), name+exampleExt)
}

// ModelPath returns the model artifact file of a set
func (s *Store) ModelPath(set string) string {
	return filepath.Join(s.root, set, set+exampleExt)
}

func (s *Store) bankPath(set string) string {
	return filepath.Join(s.root, set, bankFile)
}

// CreateSet creates the directories of a set. Existing sets are left alone.
func (s *Store) CreateSet(set string) error {
	if err := validName("gesture set", set); err != nil {
		return err
	}
	l := s.lock(set)
	l.Lock()
	defer l.Unlock()
	return errors.Wrapf(s.fs.MkdirAll(s.GesturesDir(set), 0o755), "create set %q", set)
}

// Exists reports whether the set directory exists
func (s *Store) Exists(set string) (bool, error) {
	if err := validName("gesture set", set); err != nil {
		return false, err
	}
	return afero.DirExists(s.fs, s.SetDir(set))
}

// Sets lists the gesture sets below the root, sorted by name
func (s *Store) Sets() ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.root)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "list sets")
	}
	var o []string
	for _, info := range infos {
		if info.IsDir() {
			o = append(o, info.Name())
		}
	}
	sort.Strings(o)
	return o, nil
}

// DeleteSet removes a set with its examples and model. Deleting a missing
// set is not an error.
func (s *Store) DeleteSet(set string) error {
	if err := validName("gesture set", set); err != nil {
		return err
	}
	l := s.lock(set)
	l.Lock()
	defer l.Unlock()
	s.log.Info("delete set", zap.String("set", set))
	return errors.Wrapf(s.fs.RemoveAll(s.SetDir(set)), "delete set %q", set)
}
