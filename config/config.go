// Package config loads the settings of the gesture recognizer
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/neurlang/vrgesture/geometry"
	"github.com/neurlang/vrgesture/learning"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds storage, capture, training and recognition settings
type Config struct {
	// Root is the directory holding one subdirectory per gesture set
	Root string `yaml:"root"`

	// RawData stores captures unprocessed; they are resampled and scaled
	// down when training instead
	RawData bool `yaml:"rawData"`

	// Points is the resampled point count of every example
	Points int `yaml:"points"`

	// MinPoints is the shortest capture that is recorded
	MinPoints int `yaml:"minPoints"`

	// ConfidenceThreshold is the output value a recognition must reach
	ConfidenceThreshold float64 `yaml:"confidenceThreshold"`

	// CacheSize is the number of decoded models kept for recognition
	CacheSize int `yaml:"cacheSize"`

	LogLevel string `yaml:"logLevel"`

	Learning learning.HyperParameters `yaml:"learning"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Root:                "Gestures",
		Points:              11,
		MinPoints:           geometry.MinPoints,
		ConfidenceThreshold: 0.98,
		CacheSize:           8,
		LogLevel:            "info",
		Learning:            learning.Defaults(),
	}
}

// NumInput is the network input size: hand indicator plus x, y, z per point
func (c *Config) NumInput() int {
	return 1 + 3*c.Points
}

// Validate rejects settings the components cannot work with
func (c *Config) Validate() error {
	switch {
	case c.Root == "":
		return errors.New("empty root")
	case c.Points < 2:
		return errors.Errorf("points %d, need at least 2", c.Points)
	case c.MinPoints < 1:
		return errors.Errorf("minPoints %d", c.MinPoints)
	case c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1:
		return errors.Errorf("confidenceThreshold %v outside [0, 1]", c.ConfidenceThreshold)
	case c.CacheSize < 1:
		return errors.Errorf("cacheSize %d", c.CacheSize)
	}
	return errors.Wrap(c.Learning.Validate(), "learning")
}

// Load reads YAML from r over the defaults; keys not present keep their default
func Load(r io.Reader) (Config, error) {
	c := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return c, errors.Wrap(err, "read config")
	}
	if len(bytes.TrimSpace(data)) != 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return c, errors.Wrap(err, "parse config")
		}
	}
	return c, errors.Wrap(c.Validate(), "invalid config")
}

// LoadFile reads a YAML config file
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Default(), errors.Wrap(err, "open config")
	}
	defer f.Close()
	return Load(f)
}
