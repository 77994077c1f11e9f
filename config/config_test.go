package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 34, c.NumInput())
	assert.Equal(t, 11, c.MinPoints)
	assert.Equal(t, 0.98, c.ConfidenceThreshold)
	assert.False(t, c.RawData)
}

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(`
root: /var/gestures
rawData: true
learning:
  epochs: 50
  hidden: 12
`))
	require.NoError(t, err)
	assert.Equal(t, "/var/gestures", c.Root)
	assert.True(t, c.RawData)
	assert.Equal(t, 50, c.Learning.Epochs)
	assert.Equal(t, 12, c.Learning.Hidden)
	// untouched keys keep defaults
	assert.Equal(t, 0.05, c.Learning.LearnRate)
	assert.Equal(t, 11, c.Points)

	c, err = Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(strings.NewReader("points: 1\n"))
	assert.Error(t, err)
	_, err = Load(strings.NewReader("learning:\n  momentum: 2\n"))
	assert.Error(t, err)
	_, err = Load(strings.NewReader("unknown: 1\n"))
	assert.Error(t, err)
	_, err = Load(strings.NewReader("root: [\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrgesture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("points: 16\n"), 0o644))
	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 49, c.NumInput())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
