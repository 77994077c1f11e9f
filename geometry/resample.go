package geometry

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// MinPoints is the shortest capture that is still considered a gesture.
const MinPoints = 11

// WorkingResolution is the point count Subdivide grows a line towards
// before it is decimated.
const WorkingResolution = 256

// ErrInsufficientData is returned when a line is too short to be resampled
var ErrInsufficientData = errors.New("insufficient data")

// Subdivide inserts perSegment-1 evenly spaced points into every segment.
// The result has (len(l)-1)*perSegment+1 points and keeps every original point.
func Subdivide(l Line, perSegment int) Line {
	if len(l) < 2 || perSegment <= 1 {
		return append(Line(nil), l...)
	}
	o := make(Line, 0, (len(l)-1)*perSegment+1)
	for i := 0; i+1 < len(l); i++ {
		for s := 0; s < perSegment; s++ {
			o = append(o, l[i].Lerp(l[i+1], float32(s)/float32(perSegment)))
		}
	}
	return append(o, l[len(l)-1])
}

// SubdivideTo subdivides l uniformly so that it has at least resolution points
func SubdivideTo(l Line, resolution int) Line {
	if len(l) < 2 {
		return append(Line(nil), l...)
	}
	segments := len(l) - 1
	perSegment := (resolution - 1 + segments - 1) / segments
	return Subdivide(l, perSegment)
}

// DownRes reduces l to exactly count points spaced evenly along its path.
// Consecutive output points are one chord length apart, the chord chosen
// so that the first and the last point of l are kept. How densely l was
// sampled along the way does not matter, only its shape.
func DownRes(l Line, count int) (Line, error) {
	if count < 2 {
		return nil, errors.Errorf("down resolution to %d points", count)
	}
	if len(l) == 0 {
		return nil, errors.Wrap(ErrInsufficientData, "down resolution of empty line")
	}
	o := make(Line, count)
	w := newWalker(l)
	if !(w.length() > 0) {
		for k := range o {
			o[k] = l[0]
		}
		return o, nil
	}
	steps := count - 1
	points := make([]vec, steps)
	w.walk(w.chord(steps), steps, points)
	o[0] = l[0]
	for k := 1; k < steps; k++ {
		o[k] = points[k-1].point()
	}
	o[steps] = l[len(l)-1]
	return o, nil
}

// Resample turns l into exactly count points: subdivide, then down resolution.
// Its output is evenly spaced, so resampling it again returns the same
// points up to float32 rounding.
func Resample(l Line, count int) (Line, error) {
	if len(l) == 0 {
		return nil, errors.Wrap(ErrInsufficientData, "resample of empty line")
	}
	working := WorkingResolution
	if working < count {
		working = count
	}
	return DownRes(SubdivideTo(l, working), count)
}

// Capture applies the minimum length policy and resamples a freshly captured line.
// Lines shorter than minPoints fail with ErrInsufficientData.
func Capture(l Line, minPoints, count int) (Line, error) {
	if len(l) < minPoints {
		return nil, errors.Wrapf(ErrInsufficientData, "captured %d points, need %d", len(l), minPoints)
	}
	return Resample(l, count)
}

// DownScale centers l on its bounding box and scales it so that the longest
// axis spans [-1, 1]. The point count is not changed. A line without extent
// collapses to the origin.
func DownScale(l Line) Line {
	o := make(Line, len(l))
	if len(l) == 0 {
		return o
	}
	min, max := l.Bounds()
	center := min.Lerp(max, 0.5)
	half := math32.Max(max.X-min.X, math32.Max(max.Y-min.Y, max.Z-min.Z)) / 2
	if half <= 0 || math32.IsNaN(half) {
		return o
	}
	for i, p := range l {
		d := p.Sub(center)
		o[i] = Point{d.X / half, d.Y / half, d.Z / half}
	}
	return o
}
