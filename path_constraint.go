// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

// PositionMode controls how a path constraint's position value is
// interpreted.
type PositionMode int

const (
	PositionFixed PositionMode = iota
	PositionPercent
)

// SpacingMode controls how the spacing between driven bones is computed.
type SpacingMode int

const (
	SpacingLength SpacingMode = iota
	SpacingFixed
	SpacingPercent
)

// RotateMode controls how driven bones are rotated along the path.
type RotateMode int

const (
	RotateTangent RotateMode = iota
	RotateChain
	RotateChainScale
)

// PathConstraintData is the immutable definition of a path constraint: a
// chain of bones bound to the path attachment shown by a target slot.
type PathConstraintData struct {
	Name   string
	Bones  []*BoneData
	Target *SlotData

	PositionMode PositionMode
	SpacingMode  SpacingMode
	RotateMode   RotateMode

	OffsetRotation float32
	Position       float32
	Spacing        float32
	RotateMix      float32
	TranslateMix   float32
}

// NewPathConstraintData creates a path constraint definition with all
// mixes at zero.
func NewPathConstraintData(name string) *PathConstraintData {
	d := new(PathConstraintData)
	d.Name = name
	return d
}

// PathConstraint is the runtime state of a path constraint, including the
// scratch buffers reused across applications.
type PathConstraint struct {
	Data   *PathConstraintData
	Bones  []*Bone
	Target *Slot

	Position     float32
	Spacing      float32
	RotateMix    float32
	TranslateMix float32

	spaces    []float32
	positions []pathPosition
	world     []float32
	curves    []float32
	lengths   []float32
	segments  [10]float32
}

// pathPosition is one sampled point along the path, with the tangent angle
// when the rotate mode needs it.
type pathPosition struct {
	Pos     Vector
	Tangent float32
}

const (
	prevCurveNone   = -1
	prevCurveBefore = -2
	prevCurveAfter  = -3
)

func newPathConstraint(data *PathConstraintData, skeleton *Skeleton) *PathConstraint {
	c := new(PathConstraint)
	c.Data = data
	c.Position = data.Position
	c.Spacing = data.Spacing
	c.RotateMix = data.RotateMix
	c.TranslateMix = data.TranslateMix

	c.Bones = make([]*Bone, 0, len(data.Bones))
	for _, bd := range data.Bones {
		c.Bones = append(c.Bones, skeleton.Bones[bd.Index])
	}
	c.Target = skeleton.Slots[data.Target.Index]
	return c
}

func (c *PathConstraint) updatePose() {
	c.Apply()
}

// Apply samples the target slot's path attachment and rotates and places
// the driven bones along it.
func (c *PathConstraint) Apply() {
	translate := c.TranslateMix > 0
	rotate := c.RotateMix > 0
	if !translate && !rotate {
		return
	}

	path, ok := c.Target.Attachment().(*PathAttachment)
	if !ok {
		return
	}

	data := c.Data
	lengthSpacing := data.SpacingMode == SpacingLength
	rotateMode := data.RotateMode
	tangents := rotateMode == RotateTangent
	scale := rotateMode == RotateChainScale

	boneCount := len(c.Bones)
	spacesCount := boneCount + 1
	if tangents {
		spacesCount = boneCount
	}
	c.spaces = resizeFloats(c.spaces, spacesCount)

	if scale || lengthSpacing {
		if scale {
			c.lengths = resizeFloats(c.lengths, boneCount)
		}
		for i := 0; i < spacesCount-1; i++ {
			bone := c.Bones[i]
			length := bone.Data.Length
			x := length * bone.A
			y := length * bone.C
			length = sqrt(x*x + y*y)
			if scale {
				c.lengths[i] = length
			}
			if lengthSpacing {
				c.spaces[i+1] = max32(0, length+c.Spacing)
			} else {
				c.spaces[i+1] = c.Spacing
			}
		}
	} else {
		for i := 1; i < spacesCount; i++ {
			c.spaces[i] = c.Spacing
		}
	}

	c.computeWorldPositions(path, spacesCount, tangents)

	skeleton := c.Target.Bone.Skeleton
	bonePos := c.positions[0].Pos
	offsetRotation := data.OffsetRotation
	tip := scale && offsetRotation == 0

	for i, bone := range c.Bones {
		bone.WorldPos.X += (bonePos.X - skeleton.Translation.X - bone.WorldPos.X) * c.TranslateMix
		bone.WorldPos.Y += (bonePos.Y - skeleton.Translation.Y - bone.WorldPos.Y) * c.TranslateMix

		delta := c.positions[i+1].Pos.Sub(bonePos)

		if scale {
			length := c.lengths[i]
			if length != 0 {
				s := (delta.Length()/length-1)*c.RotateMix + 1
				bone.A *= s
				bone.C *= s
			}
		}

		bonePos = c.positions[i+1].Pos

		if rotate {
			a, b, cc, d := bone.A, bone.B, bone.C, bone.D

			var r float32
			switch {
			case tangents:
				r = c.positions[i].Tangent
			case c.spaces[i+1] == 0:
				r = c.positions[i+1].Tangent
			default:
				r = delta.Angle()
			}
			r -= atan2(cc, a) - mgl.DegToRad(offsetRotation)

			if tip {
				cosine, sine := cos(r), sin(r)
				length := bone.Data.Length
				bonePos.X += (length*(cosine*a-sine*cc) - delta.X) * c.RotateMix
				bonePos.Y += (length*(sine*a+cosine*cc) - delta.Y) * c.RotateMix
			}

			r = normalizeRadians(r) * c.RotateMix
			cosine, sine := cos(r), sin(r)
			bone.A = cosine*a - sine*cc
			bone.B = cosine*b - sine*d
			bone.C = sine*a + cosine*cc
			bone.D = sine*b + cosine*d
		}
	}
}

func (c *PathConstraint) addBeforePosition(pos float32, o int) {
	dx := c.world[2] - c.world[0]
	dy := c.world[3] - c.world[1]
	r := atan2(dy, dx)
	c.positions[o].Pos.X = c.world[0] + pos*cos(r)
	c.positions[o].Pos.Y = c.world[1] + pos*sin(r)
	c.positions[o].Tangent = r
}

func (c *PathConstraint) addAfterPosition(pos float32, i, o int) {
	dx := c.world[i+2] - c.world[i]
	dy := c.world[i+3] - c.world[i+1]
	r := atan2(dy, dx)
	c.positions[o].Pos.X = c.world[i+2] + pos*cos(r)
	c.positions[o].Pos.Y = c.world[i+3] + pos*sin(r)
	c.positions[o].Tangent = r
}

func (c *PathConstraint) addCurvePosition(p, x1, y1, cx1, cy1, cx2, cy2, x2, y2 float32, tangents bool, o int) {
	if p == 0 {
		p = 0.0001
	}
	tt := p * p
	ttt := tt * p
	u := 1 - p
	uu := u * u
	uuu := uu * u
	ut := u * p
	ut3 := ut * 3
	uut3 := u * ut3
	utt3 := ut3 * p
	x := x1*uuu + cx1*uut3 + cx2*utt3 + x2*ttt
	y := y1*uuu + cy1*uut3 + cy2*utt3 + y2*ttt
	c.positions[o].Pos = Vector{x, y}
	if tangents {
		c.positions[o].Tangent = atan2(y-(y1*uu+cy1*ut*2+cy2*tt), x-(x1*uu+cx1*ut*2+cx2*tt))
	}
}

func (c *PathConstraint) computeWorldPositions(path *PathAttachment, spacesCount int, tangents bool) {
	data := c.Data
	percentPosition := data.PositionMode == PositionPercent
	percentSpacing := data.SpacingMode == SpacingPercent

	c.positions = resizePositions(c.positions, spacesCount+1)

	closed := path.Closed
	verticesLength := path.WorldVerticesCount * 2
	curveCount := verticesLength / 6
	prevCurve := prevCurveNone
	position := c.Position

	if !path.ConstantSpeed {
		lengths := path.Lengths
		if closed {
			curveCount--
		} else {
			curveCount -= 2
		}
		pathLength := lengths[curveCount]
		if percentPosition {
			position *= pathLength
		}
		if percentSpacing {
			for i := range c.spaces[:spacesCount] {
				c.spaces[i] *= pathLength
			}
		}

		c.world = resizeFloats(c.world, 8)
		curve := 0
		for i := 0; i < spacesCount; i++ {
			space := c.spaces[i]
			position += space
			pos := position

			if closed {
				pos = fmod(pos, pathLength)
				if pos < 0 {
					pos += pathLength
				}
				curve = 0
			} else if pos < 0 {
				if prevCurve != prevCurveBefore {
					prevCurve = prevCurveBefore
					path.ComputeWorldVerticesRange(2, 4, c.Target, c.world, 0)
				}
				c.addBeforePosition(pos, i)
				continue
			} else if pos > pathLength {
				if prevCurve != prevCurveAfter {
					prevCurve = prevCurveAfter
					path.ComputeWorldVerticesRange(verticesLength-6, 4, c.Target, c.world, 0)
				}
				c.addAfterPosition(pos-pathLength, 0, i)
				continue
			}

			// Determine the curve containing the position.
			for ; ; curve++ {
				length := lengths[curve]
				if pos > length {
					continue
				}
				if curve == 0 {
					pos /= length
				} else {
					prev := lengths[curve-1]
					pos = (pos - prev) / (length - prev)
				}
				break
			}

			if curve != prevCurve {
				prevCurve = curve
				if closed && curve == curveCount {
					path.ComputeWorldVerticesRange(verticesLength-4, 4, c.Target, c.world, 0)
					path.ComputeWorldVerticesRange(0, 4, c.Target, c.world, 4)
				} else {
					path.ComputeWorldVerticesRange(curve*6+2, 8, c.Target, c.world, 0)
				}
			}

			c.addCurvePosition(pos, c.world[0], c.world[1], c.world[2], c.world[3], c.world[4], c.world[5], c.world[6], c.world[7],
				tangents || (i > 0 && space == 0), i)
		}
		return
	}

	// Uniform arc-length mode: compute actual world vertices first.
	if closed {
		verticesLength += 2
		c.world = resizeFloats(c.world, verticesLength)
		path.ComputeWorldVerticesRange(2, verticesLength-4, c.Target, c.world, 0)
		path.ComputeWorldVerticesRange(0, 2, c.Target, c.world, verticesLength-4)
		c.world[verticesLength-2] = c.world[0]
		c.world[verticesLength-1] = c.world[1]
	} else {
		curveCount--
		verticesLength -= 4
		c.world = resizeFloats(c.world, verticesLength)
		path.ComputeWorldVerticesRange(2, verticesLength, c.Target, c.world, 0)
	}

	// Arc length per curve via forward differencing.
	c.curves = resizeFloats(c.curves, curveCount)
	pathLength := float32(0)
	x1, y1 := c.world[0], c.world[1]
	var cx1, cy1, cx2, cy2, x2, y2 float32
	for i, w := 0, 2; i < curveCount; i, w = i+1, w+6 {
		cx1 = c.world[w]
		cy1 = c.world[w+1]
		cx2 = c.world[w+2]
		cy2 = c.world[w+3]
		x2 = c.world[w+4]
		y2 = c.world[w+5]
		tmpx := (x1 - cx1*2 + cx2) * 0.1875
		tmpy := (y1 - cy1*2 + cy2) * 0.1875
		dddfx := ((cx1-cx2)*3 - x1 + x2) * 0.09375
		dddfy := ((cy1-cy2)*3 - y1 + y2) * 0.09375
		ddfx := tmpx*2 + dddfx
		ddfy := tmpy*2 + dddfy
		dfx := (cx1-x1)*0.75 + tmpx + dddfx*0.16666667
		dfy := (cy1-y1)*0.75 + tmpy + dddfy*0.16666667
		pathLength += sqrt(dfx*dfx + dfy*dfy)
		dfx += ddfx
		dfy += ddfy
		ddfx += dddfx
		ddfy += dddfy
		pathLength += sqrt(dfx*dfx + dfy*dfy)
		dfx += ddfx
		dfy += ddfy
		pathLength += sqrt(dfx*dfx + dfy*dfy)
		dfx += ddfx + dddfx
		dfy += ddfy + dddfy
		pathLength += sqrt(dfx*dfx + dfy*dfy)
		c.curves[i] = pathLength
		x1 = x2
		y1 = y2
	}
	if percentPosition {
		position *= pathLength
	}
	if percentSpacing {
		for i := range c.spaces[:spacesCount] {
			c.spaces[i] *= pathLength
		}
	}

	curveLength := float32(0)
	curve, segment := 0, 0
	for i := 0; i < spacesCount; i++ {
		space := c.spaces[i]
		position += space
		p := position

		if closed {
			p = fmod(p, pathLength)
			if p < 0 {
				p += pathLength
			}
			curve = 0
		} else if p < 0 {
			c.addBeforePosition(p, i)
			continue
		} else if p > pathLength {
			c.addAfterPosition(p-pathLength, verticesLength-4, i)
			continue
		}

		// Determine the curve containing the position.
		for ; ; curve++ {
			length := c.curves[curve]
			if p > length {
				continue
			}
			if curve == 0 {
				p /= length
			} else {
				prev := c.curves[curve-1]
				p = (p - prev) / (length - prev)
			}
			break
		}

		// Segment lengths inside the curve, ten equal-parameter steps.
		if curve != prevCurve {
			prevCurve = curve
			ii := curve * 6
			x1 = c.world[ii]
			y1 = c.world[ii+1]
			cx1 = c.world[ii+2]
			cy1 = c.world[ii+3]
			cx2 = c.world[ii+4]
			cy2 = c.world[ii+5]
			x2 = c.world[ii+6]
			y2 = c.world[ii+7]
			tmpx := (x1 - cx1*2 + cx2) * 0.03
			tmpy := (y1 - cy1*2 + cy2) * 0.03
			dddfx := ((cx1-cx2)*3 - x1 + x2) * 0.006
			dddfy := ((cy1-cy2)*3 - y1 + y2) * 0.006
			ddfx := tmpx*2 + dddfx
			ddfy := tmpy*2 + dddfy
			dfx := (cx1-x1)*0.3 + tmpx + dddfx*0.16666667
			dfy := (cy1-y1)*0.3 + tmpy + dddfy*0.16666667
			curveLength = sqrt(dfx*dfx + dfy*dfy)
			c.segments[0] = curveLength
			for ii = 1; ii < 8; ii++ {
				dfx += ddfx
				dfy += ddfy
				ddfx += dddfx
				ddfy += dddfy
				curveLength += sqrt(dfx*dfx + dfy*dfy)
				c.segments[ii] = curveLength
			}
			dfx += ddfx
			dfy += ddfy
			curveLength += sqrt(dfx*dfx + dfy*dfy)
			c.segments[8] = curveLength
			dfx += ddfx + dddfx
			dfy += ddfy + dddfy
			curveLength += sqrt(dfx*dfx + dfy*dfy)
			c.segments[9] = curveLength
			segment = 0
		}

		// Weight by segment length.
		p *= curveLength
		for ; ; segment++ {
			length := c.segments[segment]
			if p > length {
				continue
			}
			if segment == 0 {
				p /= length
			} else {
				prev := c.segments[segment-1]
				p = float32(segment) + (p-prev)/(length-prev)
			}
			break
		}

		c.addCurvePosition(p*0.1, x1, y1, cx1, cy1, cx2, cy2, x2, y2, tangents || (i > 0 && space == 0), i)
	}
}

func resizeFloats(s []float32, n int) []float32 {
	if cap(s) < n {
		return make([]float32, n)
	}
	s = s[:n]
	for i := range s {
		s[i] = 0
	}
	return s
}

func resizePositions(s []pathPosition, n int) []pathPosition {
	if cap(s) < n {
		return make([]pathPosition, n)
	}
	return s[:n]
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
