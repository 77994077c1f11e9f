package gesture

import (
	"encoding/json"
	"testing"

	"github.com/neurlang/vrgesture/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleRecord(t *testing.T) {
	line := `{"name":"circle","data":[{"x":1,"y":2,"z":3},{"x":-1,"y":0.5,"z":0}],"hand":1,"raw":false}`
	var e Example
	require.NoError(t, json.Unmarshal([]byte(line), &e))
	assert.Equal(t, "circle", e.Name)
	assert.Equal(t, Right, e.Hand)
	assert.Equal(t, geometry.Line{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0.5, Z: 0}}, e.Data)
	assert.NoError(t, e.Validate())

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, line, string(out))
}

func TestExampleValidate(t *testing.T) {
	e := Example{Name: "x", Data: geometry.Line{{}}, Hand: 3}
	assert.Error(t, e.Validate())
	e.Hand = Left
	assert.NoError(t, e.Validate())
	e.Data = nil
	assert.Error(t, e.Validate())
	e = Example{Data: geometry.Line{{}}}
	assert.Error(t, e.Validate())
}

func TestParseHand(t *testing.T) {
	h, err := ParseHand("left")
	require.NoError(t, err)
	assert.Equal(t, Left, h)
	h, err = ParseHand("1")
	require.NoError(t, err)
	assert.Equal(t, Right, h)
	_, err = ParseHand("both")
	assert.Error(t, err)
	assert.Equal(t, "Hand(7)", Hand(7).String())
}

func TestLabels(t *testing.T) {
	g := []Gesture{New("a"), New("b")}
	assert.Equal(t, []string{"a", "b"}, Labels(g))
	assert.Equal(t, 1, Index(g, "b"))
	assert.Equal(t, -1, Index(g, "c"))
	assert.Equal(t, Right, g[0].Hand)
}
