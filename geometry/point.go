// Package geometry resamples captured 3D hand paths into fixed-shape feature vectors
package geometry

import "github.com/chewxy/math32"

// Point is a single 3D sample of a hand path
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Lerp interpolates linearly between p (t=0) and q (t=1)
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		p.X + (q.X-p.X)*t,
		p.Y + (q.Y-p.Y)*t,
		p.Z + (q.Z-p.Z)*t,
	}
}

// Length returns the euclidean norm of p
func (p Point) Length() float32 {
	return math32.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Line is an ordered chronological sequence of points
type Line []Point

// Length returns the polyline arc length
func (l Line) Length() (o float32) {
	for i := 1; i < len(l); i++ {
		o += l[i].Sub(l[i-1]).Length()
	}
	return
}

// Flatten appends x, y, z of every point to dst
func (l Line) Flatten(dst []float64) []float64 {
	for _, p := range l {
		dst = append(dst, float64(p.X), float64(p.Y), float64(p.Z))
	}
	return dst
}

// Bounds returns the axis aligned bounding box of the line
func (l Line) Bounds() (min, max Point) {
	if len(l) == 0 {
		return
	}
	min, max = l[0], l[0]
	for _, p := range l[1:] {
		min.X, max.X = math32.Min(min.X, p.X), math32.Max(max.X, p.X)
		min.Y, max.Y = math32.Min(min.Y, p.Y), math32.Max(max.Y, p.Y)
		min.Z, max.Z = math32.Min(min.Z, p.Z), math32.Max(max.Z, p.Z)
	}
	return
}
