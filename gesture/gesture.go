// Package gesture defines gesture labels and recorded gesture examples
package gesture

import (
	"strconv"

	"github.com/neurlang/vrgesture/geometry"
	"github.com/pkg/errors"
)

// Hand is the controller hand a gesture is drawn with
type Hand int

const (
	Left Hand = iota
	Right
)

// String returns the hand name
func (h Hand) String() string {
	switch h {
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return "Hand(" + strconv.Itoa(int(h)) + ")"
}

// ParseHand parses "left" / "right" (any case) or "0" / "1"
func ParseHand(s string) (Hand, error) {
	switch s {
	case "Left", "left", "LEFT", "L", "l", "0":
		return Left, nil
	case "Right", "right", "RIGHT", "R", "r", "1":
		return Right, nil
	}
	return 0, errors.Errorf("unknown hand %q", s)
}

// Valid reports whether h is Left or Right
func (h Hand) Valid() bool {
	return h == Left || h == Right
}

// Gesture is a labeled category of motion
type Gesture struct {
	Name          string `json:"name"`
	Hand          Hand   `json:"hand"`
	IsSynchronous bool   `json:"isSynchronous"`
	ExampleCount  int    `json:"exampleCount"`
}

// New returns a gesture with the defaults of a freshly created gesture
func New(name string) Gesture {
	return Gesture{Name: name, Hand: Right}
}

// Example is one recorded gesture sample, stored as a single JSON line
type Example struct {
	Name string        `json:"name"`
	Data geometry.Line `json:"data"`
	Hand Hand          `json:"hand"`
	Raw  bool          `json:"raw"`
}

// Validate checks the fields a stored record must have
func (e *Example) Validate() error {
	if e.Name == "" {
		return errors.New("example without a gesture name")
	}
	if len(e.Data) == 0 {
		return errors.Errorf("example %q without points", e.Name)
	}
	if !e.Hand.Valid() {
		return errors.Errorf("example %q with hand %d", e.Name, int(e.Hand))
	}
	return nil
}

// Labels returns the gesture names in order
func Labels(gestures []Gesture) []string {
	o := make([]string, len(gestures))
	for i := range gestures {
		o[i] = gestures[i].Name
	}
	return o
}

// Index returns the position of the named gesture, or -1
func Index(gestures []Gesture, name string) int {
	for i := range gestures {
		if gestures[i].Name == name {
			return i
		}
	}
	return -1
}
