// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"sort"
)

// Timeline samples one kind of keyed value at a time and writes the result
// into the skeleton, scaled by the mix weight alpha in [0,1]. Time before
// the first frame is a no-op; time at or after the last frame uses the
// last frame's value.
type Timeline interface {
	Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32)

	// ClearIdentityFrames drops every frame past the first when all frames
	// carry the same value, preserving sampling semantics. Loaders call it
	// to shrink constant timelines.
	ClearIdentityFrames()
}

// CurveType selects the interpolation shape for the segment following a
// keyframe.
type CurveType int

const (
	CurveLinear CurveType = iota
	CurveStepped
	CurveBezier
)

// bezierSegments is the number of precomputed samples per Bezier curve.
const bezierSegments = 10

// Curve is a per-keyframe interpolation shape. Bezier curves precompute
// their samples with the same forward-difference scheme the path sampler
// uses, so CurvePercent is a table walk.
type Curve struct {
	ctype  CurveType
	bezier [bezierSegments]Vector
}

// SetLinear makes the segment interpolate linearly.
func (c *Curve) SetLinear() {
	c.ctype = CurveLinear
}

// SetStepped makes the segment hold the previous frame's value.
func (c *Curve) SetStepped() {
	c.ctype = CurveStepped
}

// Type returns the interpolation shape of the segment.
func (c *Curve) Type() CurveType {
	return c.ctype
}

// SetCurve makes the segment a cubic Bezier with the given control
// handles, both in the unit square.
func (c *Curve) SetCurve(c1, c2 Vector) {
	tmpx := (-c1.X*2 + c2.X) * 0.03
	tmpy := (-c1.Y*2 + c2.Y) * 0.03
	dddfx := ((c1.X-c2.X)*3 + 1) * 0.006
	dddfy := ((c1.Y-c2.Y)*3 + 1) * 0.006
	ddfx := tmpx*2 + dddfx
	ddfy := tmpy*2 + dddfy
	dfx := c1.X*0.3 + tmpx + dddfx*0.16666667
	dfy := c1.Y*0.3 + tmpy + dddfy*0.16666667
	x, y := dfx, dfy

	c.ctype = CurveBezier
	for i := 0; i < bezierSegments; i++ {
		c.bezier[i] = Vector{x, y}
		dfx += ddfx
		dfy += ddfy
		ddfx += dddfx
		ddfy += dddfy
		x += dfx
		y += dfy
	}
}

// CurvePercent maps a linear percent through the curve. The input is
// saturated to [0,1].
func (c *Curve) CurvePercent(percent float32) float32 {
	percent = saturate(percent)
	switch c.ctype {
	case CurveLinear:
		return percent
	case CurveStepped:
		return 0
	}

	prev := Vector{}
	for i := 0; i < bezierSegments; i++ {
		v := c.bezier[i]
		if v.X > percent {
			return prev.Y + (v.Y-prev.Y)*(percent-prev.X)/(v.X-prev.X)
		}
		prev = v
	}
	// The implicit last sample is (1,1).
	return prev.Y + (1-prev.Y)*(percent-prev.X)/(1-prev.X)
}

// findFrame returns the index of the first frame whose time is strictly
// greater than t. frameTime reports the time of frame i; frames must be
// sorted by time. Callers interpolate between index-1 and index.
func findFrame(count int, t float32, frameTime func(i int) float32) int {
	return sort.Search(count, func(i int) bool {
		return frameTime(i) > t
	})
}

// framePercent computes the normalized position of time between two frames
// and maps it through the previous frame's curve.
func framePercent(curve *Curve, prevTime, curTime, time float32) float32 {
	percent := 1 - (time-curTime)/(prevTime-curTime)
	return curve.CurvePercent(percent)
}
