package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spiral(n int) Line {
	l := make(Line, n)
	for i := range l {
		t := float64(i) / 7
		l[i] = Point{float32(math.Cos(t)), float32(math.Sin(t)), float32(t) * 0.1}
	}
	return l
}

func TestSubdivide(t *testing.T) {
	l := Line{{0, 0, 0}, {1, 0, 0}, {1, 2, 0}}
	s := Subdivide(l, 4)
	require.Len(t, s, 9)
	assert.Equal(t, l[0], s[0])
	assert.Equal(t, Point{0.25, 0, 0}, s[1])
	assert.Equal(t, l[1], s[4])
	assert.Equal(t, Point{1, 1, 0}, s[6])
	assert.Equal(t, l[2], s[8])

	assert.Equal(t, l, Subdivide(l, 1))
	assert.GreaterOrEqual(t, len(SubdivideTo(l, WorkingResolution)), WorkingResolution)
}

func TestResampleLength(t *testing.T) {
	for _, n := range []int{1, 2, 11, 12, 37, 100, 255, 256, 1000} {
		for _, count := range []int{2, 11, 20} {
			r, err := Resample(spiral(n), count)
			require.NoError(t, err)
			assert.Len(t, r, count, "n=%d count=%d", n, count)
		}
	}
}

func TestResampleKeepsEnds(t *testing.T) {
	l := spiral(53)
	r, err := Resample(l, 11)
	require.NoError(t, err)
	assert.Equal(t, l[0], r[0])
	assert.Equal(t, l[len(l)-1], r[len(r)-1])
}

func TestResampleIdempotent(t *testing.T) {
	for _, n := range []int{11, 29, 64, 300} {
		once, err := Resample(spiral(n), 11)
		require.NoError(t, err)
		twice, err := Resample(once, 11)
		require.NoError(t, err)
		for i := range once {
			assert.InDelta(t, once[i].X, twice[i].X, 1e-5)
			assert.InDelta(t, once[i].Y, twice[i].Y, 1e-5)
			assert.InDelta(t, once[i].Z, twice[i].Z, 1e-5)
		}
	}
}

// corner runs along x to (1, 0, 0) and then along y to (1, 1, 0). Points on
// the first leg get denser towards the start when slow is set.
func corner(n int, slow bool) Line {
	var l Line
	for i := 0; i < n; i++ {
		t := float32(i) / float32(n)
		if slow {
			t *= t
		}
		l = append(l, Point{X: t})
	}
	l = append(l, Point{X: 1})
	for i := 1; i <= n; i++ {
		l = append(l, Point{X: 1, Y: float32(i) / float32(n)})
	}
	return l
}

func gaps(l Line) []float64 {
	var o []float64
	for i := 1; i < len(l); i++ {
		o = append(o, float64(l[i].Sub(l[i-1]).Length()))
	}
	return o
}

func TestResampleEvenSpacing(t *testing.T) {
	// ten samples crowded at the start, then one far away
	var l Line
	for i := 0; i < 10; i++ {
		l = append(l, Point{X: float32(i) / 100})
	}
	l = append(l, Point{X: 10})

	r, err := Resample(l, 11)
	require.NoError(t, err)
	assert.Equal(t, l[0], r[0])
	assert.Equal(t, l[10], r[10])
	for i, g := range gaps(r) {
		assert.InDelta(t, 1, g, 1e-4, "gap %d", i)
	}

	r, err = Resample(corner(40, true), 11)
	require.NoError(t, err)
	g := gaps(r)
	for i := range g {
		assert.InDelta(t, g[0], g[i], 1e-4, "gap %d", i)
	}
}

func TestResampleDrawingSpeed(t *testing.T) {
	slow, err := Resample(corner(90, true), 11)
	require.NoError(t, err)
	fast, err := Resample(corner(3, false), 11)
	require.NoError(t, err)
	for i := range slow {
		assert.InDelta(t, slow[i].X, fast[i].X, 1e-4, "point %d", i)
		assert.InDelta(t, slow[i].Y, fast[i].Y, 1e-4, "point %d", i)
	}

	twice, err := Resample(slow, 11)
	require.NoError(t, err)
	for i := range slow {
		assert.InDelta(t, slow[i].X, twice[i].X, 1e-5, "point %d", i)
		assert.InDelta(t, slow[i].Y, twice[i].Y, 1e-5, "point %d", i)
	}
}

func TestDownResStill(t *testing.T) {
	l := Line{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}}
	r, err := DownRes(l, 5)
	require.NoError(t, err)
	assert.Equal(t, Line{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}, {1, 2, 3}, {1, 2, 3}}, r)
}

func TestResampleErrors(t *testing.T) {
	_, err := Resample(nil, 11)
	assert.True(t, errors.Is(err, ErrInsufficientData))
	_, err = Resample(spiral(20), 1)
	assert.Error(t, err)
}

func TestCapture(t *testing.T) {
	_, err := Capture(spiral(MinPoints-1), MinPoints, 11)
	assert.True(t, errors.Is(err, ErrInsufficientData))

	r, err := Capture(spiral(MinPoints), MinPoints, 11)
	require.NoError(t, err)
	assert.Len(t, r, 11)
}

func TestDownScale(t *testing.T) {
	l := Line{{2, 2, 2}, {6, 3, 2}, {4, 4, 3}}
	s := DownScale(l)
	require.Len(t, s, 3)
	min, max := s.Bounds()
	assert.InDelta(t, -1, min.X, 1e-6)
	assert.InDelta(t, 1, max.X, 1e-6)
	assert.InDelta(t, 0, min.Y+max.Y, 1e-6)
	assert.Equal(t, s, DownScale(s))

	still := DownScale(Line{{1, 1, 1}, {1, 1, 1}})
	assert.Equal(t, Line{{}, {}}, still)
}

func TestFlatten(t *testing.T) {
	f := Line{{1, 2, 3}, {4, 5, 6}}.Flatten([]float64{9})
	assert.Equal(t, []float64{9, 1, 2, 3, 4, 5, 6}, f)
}
