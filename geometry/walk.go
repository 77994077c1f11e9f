package geometry

import "math"

// vec is a point in float64, used while walking a line so that repeated
// chord searches do not accumulate float32 rounding
type vec [3]float64

func toVec(p Point) vec {
	return vec{float64(p.X), float64(p.Y), float64(p.Z)}
}

func (v vec) point() Point {
	return Point{float32(v[0]), float32(v[1]), float32(v[2])}
}

func (v vec) sub(w vec) vec {
	return vec{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

func (v vec) add(w vec) vec {
	return vec{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

func (v vec) scale(t float64) vec {
	return vec{v[0] * t, v[1] * t, v[2] * t}
}

func (v vec) dot(w vec) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

func (v vec) dist(w vec) float64 {
	d := v.sub(w)
	return math.Sqrt(d.dot(d))
}

// walker steps along a polyline in chords of one length
type walker struct {
	v   []vec
	arc []float64 // arc length from the start to every vertex
}

func newWalker(l Line) *walker {
	w := &walker{v: make([]vec, len(l)), arc: make([]float64, len(l))}
	for i, p := range l {
		w.v[i] = toVec(p)
		if i > 0 {
			w.arc[i] = w.arc[i-1] + w.v[i].dist(w.v[i-1])
		}
	}
	return w
}

func (w *walker) length() float64 {
	return w.arc[len(w.arc)-1]
}

// walk takes steps chords of length d from the first vertex, each ending
// where the line first leaves the sphere of radius d around the previous
// point. The points are stored in dst when it is not nil. It returns the
// arc position of the last point; ok is false when the line ends first.
func (w *walker) walk(d float64, steps int, dst []vec) (pos float64, ok bool) {
	p, seg := w.v[0], 0
	for s := 0; s < steps; s++ {
		next := -1
		for j := seg; j+1 < len(w.v); j++ {
			if p.dist(w.v[j+1]) >= d {
				next = j
				break
			}
		}
		if next < 0 {
			return 0, false
		}
		a := w.v[next]
		e := w.v[next+1].sub(a)
		f := a.sub(p)
		// |f + t*e| = d with the segment end outside the sphere: the larger root
		t := 1.0
		if ee := e.dot(e); ee > 0 {
			b := e.dot(f)
			disc := b*b - ee*(f.dot(f)-d*d)
			t = (-b + math.Sqrt(math.Max(disc, 0))) / ee
			t = math.Min(math.Max(t, 0), 1)
		}
		p, seg = a.add(e.scale(t)), next
		if dst != nil {
			dst[s] = p
		}
	}
	return w.arc[seg] + w.v[seg].dist(p), true
}

// chord finds by bisection the chord length whose steps-th step ends on
// the last vertex. A chord is never longer than the arc it spans, so the
// mean arc length per step bounds it from above.
func (w *walker) chord(steps int) float64 {
	end := w.length()
	lo, hi := 0.0, end/float64(steps)
	for i := 0; i < 64 && lo < hi; i++ {
		mid := (lo + hi) / 2
		if pos, ok := w.walk(mid, steps, nil); ok && pos < end {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
