package trainer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/neurlang/vrgesture/config"
	"github.com/neurlang/vrgesture/datasets"
	"github.com/neurlang/vrgesture/geometry"
	"github.com/neurlang/vrgesture/gesture"
	"github.com/neurlang/vrgesture/net/feedforward"
	"github.com/neurlang/vrgesture/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrainer(t *testing.T, epochs int) (*Trainer, *store.Store) {
	cfg := config.Default()
	cfg.Root = "/data"
	cfg.Learning.Epochs = epochs
	s := store.New(afero.NewMemMapFs(), cfg.Root, nil)
	return New(s, cfg, nil), s
}

// stroke draws n points along a straight line in direction dir with a small wobble
func stroke(n int, dir geometry.Point, wobble float64) geometry.Line {
	l := make(geometry.Line, n)
	for i := range l {
		f := float32(i) / float32(n-1)
		w := float32(0.02 * math.Sin(float64(i)+wobble))
		l[i] = geometry.Point{X: dir.X*f + w, Y: dir.Y*f - w, Z: dir.Z * f}
	}
	return l
}

func TestAddExample(t *testing.T) {
	tr, s := newTrainer(t, 1)

	recorded, err := tr.AddExample("net", stroke(geometry.MinPoints-1, geometry.Point{X: 1}, 0), gesture.Right, "swipe")
	require.NoError(t, err)
	assert.False(t, recorded)
	n, err := s.Count("net", "swipe")
	require.NoError(t, err)
	assert.Zero(t, n)

	recorded, err = tr.AddExample("net", stroke(40, geometry.Point{X: 1}, 0), gesture.Right, "swipe")
	require.NoError(t, err)
	assert.True(t, recorded)

	examples, err := store.Collect(s.ReadAll("net"))
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Len(t, examples[0].Data, 11)
	assert.False(t, examples[0].Raw)
	assert.Equal(t, gesture.Right, examples[0].Hand)

	_, err = tr.AddExample("net", stroke(40, geometry.Point{X: 1}, 0), gesture.Hand(5), "swipe")
	assert.Error(t, err)
}

func TestAddExampleRaw(t *testing.T) {
	tr, s := newTrainer(t, 1)
	tr.cfg.RawData = true
	_, err := tr.AddExample("net", stroke(40, geometry.Point{Y: 1}, 0), gesture.Left, "lift")
	require.NoError(t, err)
	examples, err := store.Collect(s.ReadAll("net"))
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Len(t, examples[0].Data, 40)
	assert.True(t, examples[0].Raw)
}

func TestTrainRecognizerNoData(t *testing.T) {
	tr, s := newTrainer(t, 10)
	require.NoError(t, s.SaveBank("net", []gesture.Gesture{gesture.New("swipe")}))

	_, err := tr.TrainRecognizer(context.Background(), "net")
	assert.True(t, errors.Is(err, ErrNoData))
	ok, err := s.HasModel("net")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.CreateGesture("net", "swipe"))
	_, err = tr.TrainRecognizer(context.Background(), "net")
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestTrainRecognizerUnknownLabel(t *testing.T) {
	tr, s := newTrainer(t, 10)
	require.NoError(t, s.SaveBank("net", []gesture.Gesture{gesture.New("swipe")}))
	_, err := tr.AddExample("net", stroke(20, geometry.Point{X: 1}, 0), gesture.Right, "wave")
	require.NoError(t, err)

	_, err = tr.TrainRecognizer(context.Background(), "net")
	assert.True(t, errors.Is(err, datasets.ErrUnknownLabel))
	ok, _ := s.HasModel("net")
	assert.False(t, ok)
}

func TestTrainRecognizerEmptyTrainSet(t *testing.T) {
	tr, s := newTrainer(t, 10)
	require.NoError(t, s.SaveBank("net", []gesture.Gesture{gesture.New("swipe")}))
	_, err := tr.AddExample("net", stroke(20, geometry.Point{X: 1}, 0), gesture.Right, "swipe")
	require.NoError(t, err)

	// one row, 80% of it rounds down to an empty train set
	_, err = tr.TrainRecognizer(context.Background(), "net")
	assert.True(t, errors.Is(err, feedforward.ErrInvalidTrainingSet))
}

func record(t *testing.T, tr *Trainer, s *store.Store) {
	bank := []gesture.Gesture{gesture.New("right"), gesture.New("up"), gesture.New("unused")}
	require.NoError(t, s.SaveBank("net", bank))
	for i := 0; i < 10; i++ {
		_, err := tr.AddExample("net", stroke(30+i, geometry.Point{X: 1}, float64(i)), gesture.Right, "right")
		require.NoError(t, err)
		_, err = tr.AddExample("net", stroke(30+i, geometry.Point{Y: 1}, float64(i)), gesture.Right, "up")
		require.NoError(t, err)
	}
}

func TestTrainRecognizer(t *testing.T) {
	tr, s := newTrainer(t, 1000)
	record(t, tr, s)

	result, err := tr.TrainRecognizer(context.Background(), "net")
	require.NoError(t, err)
	assert.Equal(t, 20, result.Examples)
	assert.Equal(t, 16, result.Train.Rows)
	assert.Equal(t, 4, result.Test.Rows)
	assert.GreaterOrEqual(t, result.Train.Accuracy, 0.95)
	assert.NotEmpty(t, result.RunID)

	a, err := s.LoadModel("net")
	require.NoError(t, err)
	assert.Equal(t, 34, a.NumInput)
	assert.Equal(t, 10, a.NumHidden)
	// a gesture without examples keeps its output
	assert.Equal(t, 3, a.NumOutput)
	assert.Equal(t, []string{"right", "up", "unused"}, a.Labels())
	assert.Equal(t, result.Model.Weights, a.Weights)

	// same data and seeds train the same weights
	again, err := tr.TrainRecognizer(context.Background(), "net")
	require.NoError(t, err)
	assert.Equal(t, result.Model.Weights, again.Model.Weights)
}

func TestTrainAsync(t *testing.T) {
	tr, s := newTrainer(t, 50)
	record(t, tr, s)

	var called string
	job := tr.TrainAsync(context.Background(), "net", func(set string, err error) {
		called = set
		assert.NoError(t, err)
	})
	result, err := job.Wait()
	require.NoError(t, err)
	assert.Equal(t, "net", called)
	assert.Equal(t, "net", result.Set)
	<-job.Done()
}

func TestTrainAsyncCanceled(t *testing.T) {
	tr, s := newTrainer(t, 1000000)
	record(t, tr, s)

	job := tr.TrainAsync(context.Background(), "net", nil)
	job.Cancel()
	job.Cancel()
	_, err := job.Wait()
	assert.True(t, errors.Is(err, context.Canceled))
	ok, _ := s.HasModel("net")
	assert.False(t, ok)
}

func TestEvaluate(t *testing.T) {
	net, err := feedforward.New(7, 2, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, Evaluation{}, Evaluate(net, nil))

	rows := []datasets.Row{
		{Features: make([]float64, 7), Output: []float64{1, 0}},
		{Features: make([]float64, 7), Output: []float64{0, 1}},
	}
	e := Evaluate(net, rows)
	assert.Equal(t, 2, e.Rows)
	assert.Equal(t, 1, e.Correct)
	assert.Equal(t, 0.5, e.Accuracy)
	assert.Greater(t, e.MSE, 0.0)
}
