// Package geo provides the 3D vector arithmetic used throughout the
// trace-to-segment pipeline: positions, derived velocity/acceleration, and
// distance calculations.
package geo

import "gonum.org/v1/gonum/spatial/r3"

// Vec3 is a point or vector in simulation space, in metres.
type Vec3 = r3.Vec

// Sub returns a-b.
func Sub(a, b Vec3) Vec3 {
	return r3.Sub(a, b)
}

// Add returns a+b.
func Add(a, b Vec3) Vec3 {
	return r3.Add(a, b)
}

// Scale returns v scaled by s.
func Scale(s float64, v Vec3) Vec3 {
	return r3.Scale(s, v)
}

// Norm returns the Euclidean length of v.
func Norm(v Vec3) float64 {
	return r3.Norm(v)
}

// Dot returns the dot product of a and b.
func Dot(a, b Vec3) float64 {
	return r3.Dot(a, b)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec3) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Zero is the zero vector.
var Zero = Vec3{}
