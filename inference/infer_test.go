package inference

import (
	"errors"
	"os"
	"testing"

	"github.com/neurlang/vrgesture/geometry"
	"github.com/neurlang/vrgesture/gesture"
	"github.com/neurlang/vrgesture/model"
	"github.com/neurlang/vrgesture/net/feedforward"
	"github.com/neurlang/vrgesture/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed builds a 34x1x2 model whose first output fires for the right hand
// and the second for the left hand
func fixed(t *testing.T) *model.Artifact {
	net, err := feedforward.New(34, 1, 2, 0)
	require.NoError(t, err)
	w := make([]float64, net.NumWeights())
	w[0] = 20   // hand -> hidden
	w[34] = -10 // hidden bias
	w[35] = 20  // hidden -> output 0
	w[36] = -20 // hidden -> output 1
	w[37] = -10 // output 0 bias
	w[38] = 10  // output 1 bias
	require.NoError(t, net.SetWeights(w))
	return model.New(net, []gesture.Gesture{gesture.New("right"), {Name: "left", Hand: gesture.Left}})
}

func stroke(n int) geometry.Line {
	l := make(geometry.Line, n)
	for i := range l {
		l[i] = geometry.Point{X: float32(i) / float32(n)}
	}
	return l
}

func TestRecognize(t *testing.T) {
	s := store.New(afero.NewMemMapFs(), "/g", nil)
	require.NoError(t, s.SaveModel("net", fixed(t)))
	r, err := New(s, 0.98, 2)
	require.NoError(t, err)

	res, err := r.Recognize("net", stroke(30), gesture.Right, false)
	require.NoError(t, err)
	assert.Equal(t, "right", res.Gesture)
	assert.True(t, res.Recognized)
	assert.Len(t, res.Outputs, 2)

	res, err = r.Recognize("net", stroke(30), gesture.Left, true)
	require.NoError(t, err)
	assert.Equal(t, "left", res.Gesture)
	assert.Greater(t, res.Confidence, 0.98)
}

func TestRecognizeThreshold(t *testing.T) {
	s := store.New(afero.NewMemMapFs(), "/g", nil)
	require.NoError(t, s.SaveModel("net", fixed(t)))
	r, err := New(s, 1.0, 2)
	require.NoError(t, err)
	res, err := r.Recognize("net", stroke(30), gesture.Right, false)
	require.NoError(t, err)
	assert.False(t, res.Recognized)
}

func TestRecognizeCache(t *testing.T) {
	s := store.New(afero.NewMemMapFs(), "/g", nil)
	require.NoError(t, s.SaveModel("net", fixed(t)))
	r, err := New(s, 0.5, 1)
	require.NoError(t, err)
	_, err = r.Recognize("net", stroke(30), gesture.Right, false)
	require.NoError(t, err)

	// the cached model survives the file going away until forgotten
	require.NoError(t, s.DeleteSet("net"))
	_, err = r.Recognize("net", stroke(30), gesture.Right, false)
	require.NoError(t, err)
	r.Forget("net")
	_, err = r.Recognize("net", stroke(30), gesture.Right, false)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = New(s, 0.5, 0)
	assert.Error(t, err)
}
