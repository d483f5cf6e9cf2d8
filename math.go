// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// Vector is a 2D point or direction in skeleton space.
type Vector struct {
	X, Y float32
}

// Add returns the component-wise sum of the two vectors.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference of the two vectors.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

// Scale returns the vector scaled by s.
func (v Vector) Scale(s float32) Vector {
	return Vector{v.X * s, v.Y * s}
}

// Length returns the euclidean length of the vector.
func (v Vector) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Angle returns the direction of the vector in radians.
func (v Vector) Angle() float32 {
	return atan2(v.Y, v.X)
}

// Color is an RGBA tint with components in [0,1].
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the identity tint.
var ColorWhite = Color{1, 1, 1, 1}

// sin, cos and friends keep the float64 casts for the stdlib math calls in
// one place.
func sin(radians float32) float32 {
	return float32(math.Sin(float64(radians)))
}

func cos(radians float32) float32 {
	return float32(math.Cos(float64(radians)))
}

func atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

func acos(x float32) float32 {
	return float32(math.Acos(float64(x)))
}

func sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func fmod(x, y float32) float32 {
	return float32(math.Mod(float64(x), float64(y)))
}

func abs(x float32) float32 {
	return mgl.Abs(x)
}

// normalizeDegrees wraps an angle in degrees into (-180, 180].
func normalizeDegrees(angle float32) float32 {
	for angle > 180 {
		angle -= 360
	}
	for angle < -180 {
		angle += 360
	}
	return angle
}

// normalizeRadians wraps an angle in radians into (-pi, pi].
func normalizeRadians(angle float32) float32 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// saturate clamps f to [0,1].
func saturate(f float32) float32 {
	return mgl.Clamp(f, 0, 1)
}
