package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/neurlang/vrgesture/gesture"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// maxRecord bounds one stored line; a 1024 point raw capture is ~60 KiB
const maxRecord = 16 << 20

// Append writes e as one line to the example file of its gesture, creating
// directories and the file as needed.
func (s *Store) Append(set string, e *gesture.Example) error {
	if err := validName("gesture set", set); err != nil {
		return err
	}
	if err := validName("gesture", e.Name); err != nil {
		return err
	}
	record, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "encode example")
	}
	record = append(record, '\n')

	l := s.lock(set)
	l.Lock()
	defer l.Unlock()

	if err := s.fs.MkdirAll(s.GesturesDir(set), 0o755); err != nil {
		return errors.Wrapf(err, "create set %q", set)
	}
	path := s.ExamplePath(set, e.Name)
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	if _, err := f.Write(record); err != nil {
		f.Close()
		return errors.Wrapf(err, "append to %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// Files lists the example files of a set, sorted by name
func (s *Store) Files(set string) ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.GesturesDir(set))
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "list examples of %q", set)
	}
	var o []string
	for _, info := range infos {
		if !info.IsDir() && strings.HasSuffix(info.Name(), exampleExt) {
			o = append(o, filepath.Join(s.GesturesDir(set), info.Name()))
		}
	}
	return o, nil
}

// ReadAll lazily yields every example of every gesture of the set. A line
// that cannot be decoded yields an ErrCorruptData error and ends the sequence.
// The set stays read locked while the sequence is consumed.
func (s *Store) ReadAll(set string) iter.Seq2[gesture.Example, error] {
	return func(yield func(gesture.Example, error) bool) {
		if err := validName("gesture set", set); err != nil {
			yield(gesture.Example{}, err)
			return
		}
		l := s.lock(set)
		l.RLock()
		defer l.RUnlock()

		files, err := s.Files(set)
		if err != nil {
			yield(gesture.Example{}, err)
			return
		}
		for _, path := range files {
			if !s.readFile(path, yield) {
				return
			}
		}
	}
}

// readFile yields the records of one file, it returns false when iteration must stop
func (s *Store) readFile(path string, yield func(gesture.Example, error) bool) bool {
	f, err := s.fs.Open(path)
	if err != nil {
		yield(gesture.Example{}, errors.Wrapf(err, "open %s", path))
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecord)
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var e gesture.Example
		if err := json.Unmarshal(raw, &e); err != nil {
			s.log.Error("corrupt example", zap.String("file", path), zap.Int("line", line), zap.Error(err))
			yield(gesture.Example{}, errors.Wrapf(ErrCorruptData, "%s:%d: %v", path, line, err))
			return false
		}
		if err := e.Validate(); err != nil {
			s.log.Error("corrupt example", zap.String("file", path), zap.Int("line", line), zap.Error(err))
			yield(gesture.Example{}, errors.Wrapf(ErrCorruptData, "%s:%d: %v", path, line, err))
			return false
		}
		if !yield(e, nil) {
			return false
		}
	}
	if err := scanner.Err(); err != nil {
		yield(gesture.Example{}, errors.Wrapf(ErrCorruptData, "%s: %v", path, err))
		return false
	}
	return true
}

// Collect reads the whole sequence into a slice, stopping at the first error
func Collect(seq iter.Seq2[gesture.Example, error]) ([]gesture.Example, error) {
	var o []gesture.Example
	for e, err := range seq {
		if err != nil {
			return nil, err
		}
		o = append(o, e)
	}
	return o, nil
}

// Count returns the number of records stored for one gesture
func (s *Store) Count(set, name string) (int, error) {
	if err := validName("gesture set", set); err != nil {
		return 0, err
	}
	if err := validName("gesture", name); err != nil {
		return 0, err
	}
	l := s.lock(set)
	l.RLock()
	defer l.RUnlock()

	f, err := s.fs.Open(s.ExamplePath(set, name))
	if os.IsNotExist(err) {
		return 0, nil
	} else if err != nil {
		return 0, errors.Wrapf(err, "count examples of %q", name)
	}
	defer f.Close()

	var n int
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecord)
	for scanner.Scan() {
		if len(bytes.TrimSpace(scanner.Bytes())) != 0 {
			n++
		}
	}
	return n, errors.Wrapf(scanner.Err(), "count examples of %q", name)
}

// CreateGesture creates an empty example file for a gesture, keeping any
// existing examples.
func (s *Store) CreateGesture(set, name string) error {
	if err := validName("gesture", name); err != nil {
		return err
	}
	l := s.lock(set)
	l.Lock()
	defer l.Unlock()

	if err := s.fs.MkdirAll(s.GesturesDir(set), 0o755); err != nil {
		return errors.Wrapf(err, "create set %q", set)
	}
	f, err := s.fs.OpenFile(s.ExamplePath(set, name), os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return errors.Wrapf(err, "create gesture %q", name)
	}
	return f.Close()
}

// DeleteGesture removes the examples of one gesture. Deleting a missing
// gesture is not an error.
func (s *Store) DeleteGesture(set, name string) error {
	if err := validName("gesture", name); err != nil {
		return err
	}
	l := s.lock(set)
	l.Lock()
	defer l.Unlock()

	err := s.fs.Remove(s.ExamplePath(set, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete gesture %q", name)
	}
	return nil
}

// RenameGesture moves the examples of a gesture to a new name and relabels
// every record. The destination must not exist.
func (s *Store) RenameGesture(set, from, to string) error {
	if err := validName("gesture", from); err != nil {
		return err
	}
	if err := validName("gesture", to); err != nil {
		return err
	}
	l := s.lock(set)
	l.Lock()
	defer l.Unlock()

	src, dst := s.ExamplePath(set, from), s.ExamplePath(set, to)
	if exists, err := afero.Exists(s.fs, dst); err != nil {
		return err
	} else if exists {
		return errors.Errorf("gesture file %s exists", dst)
	}
	data, err := afero.ReadFile(s.fs, src)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Wrapf(err, "rename gesture %q", from)
	}

	var out bytes.Buffer
	for n, raw := range bytes.Split(data, []byte{'\n'}) {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			continue
		}
		var e gesture.Example
		if err := json.Unmarshal(raw, &e); err != nil {
			return errors.Wrapf(ErrCorruptData, "%s:%d: %v", src, n+1, err)
		}
		e.Name = to
		record, err := json.Marshal(&e)
		if err != nil {
			return errors.Wrap(err, "encode example")
		}
		out.Write(record)
		out.WriteByte('\n')
	}
	if err := afero.WriteFile(s.fs, dst, out.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "rename gesture %q", from)
	}
	return errors.Wrapf(s.fs.Remove(src), "rename gesture %q", from)
}
