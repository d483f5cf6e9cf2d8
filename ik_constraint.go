// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// IkConstraintData is the immutable definition of an inverse kinematics
// constraint: a one- or two-bone chain aimed at a target bone.
type IkConstraintData struct {
	Name          string
	Bones         []*BoneData
	Target        *BoneData
	BendDirection int
	Mix           float32
}

// NewIkConstraintData creates an IK constraint definition with full mix
// and a positive bend direction.
func NewIkConstraintData(name string) *IkConstraintData {
	d := new(IkConstraintData)
	d.Name = name
	d.BendDirection = 1
	d.Mix = 1
	return d
}

// IkConstraint is the runtime state of an IK constraint.
type IkConstraint struct {
	Data   *IkConstraintData
	Bones  []*Bone
	Target *Bone

	BendDirection int
	Mix           float32

	// level is the chain depth used to order IK application in the update
	// cache.
	level int
}

func newIkConstraint(data *IkConstraintData, skeleton *Skeleton) *IkConstraint {
	c := new(IkConstraint)
	c.Data = data
	c.BendDirection = data.BendDirection
	c.Mix = data.Mix

	c.Bones = make([]*Bone, 0, len(data.Bones))
	for _, bd := range data.Bones {
		c.Bones = append(c.Bones, skeleton.Bones[bd.Index])
	}
	c.Target = skeleton.Bones[data.Target.Index]
	return c
}

// Apply solves the constraint and rewrites the chain's world transforms.
func (c *IkConstraint) Apply() {
	switch len(c.Bones) {
	case 1:
		applyIk1(c.Bones[0], c.Target.WorldPos, c.Mix)
	case 2:
		applyIk2(c.Bones[0], c.Bones[1], c.Target.WorldPos, c.BendDirection, c.Mix)
	}
}

func (c *IkConstraint) updatePose() {
	c.Apply()
}

// applyIk1 rotates a single bone so its X axis points at the target,
// blended by alpha. The solve happens in the parent's local frame.
func applyIk1(bone *Bone, target Vector, alpha float32) {
	p := bone.Parent
	id := 1 / (p.A*p.D - p.B*p.C)
	x := target.X - p.WorldPos.X
	y := target.Y - p.WorldPos.Y
	tx := (x*p.D-y*p.B)*id - bone.Translation.X
	ty := (y*p.A-x*p.C)*id - bone.Translation.Y

	rotationIK := mgl.RadToDeg(atan2(ty, tx)) - bone.Shear.X - bone.Rotation
	if bone.Scale.X < 0 {
		rotationIK += 180
	}
	rotationIK = normalizeDegrees(rotationIK)

	bone.UpdateWorldTransformWith(bone.Translation, bone.Rotation+rotationIK*alpha, bone.Scale, bone.Shear)
}

// applyIk2 drives a two-bone chain toward the target with the given bend
// direction. Uniform parent scale solves with the law of cosines; a
// non-uniform parent scale turns the child tip's locus into an ellipse and
// the solve finds the intersection of that ellipse with the circle of
// reachable chain roots.
func applyIk2(parent, child *Bone, target Vector, bendDir int, alpha float32) {
	if alpha == 0 {
		child.UpdateWorldTransform()
		return
	}

	px, py := parent.Translation.X, parent.Translation.Y
	psx, psy := parent.Scale.X, parent.Scale.Y
	csx := child.Scale.X
	cx := child.Translation.X

	var o1, o2 float32
	s2 := float32(1)
	if psx < 0 {
		psx = -psx
		o1 = 180
		s2 = -1
	}
	if psy < 0 {
		psy = -psy
		s2 = -s2
	}
	if csx < 0 {
		csx = -csx
		o2 = 180
	}

	uniform := abs(psx-psy) <= 0.0001

	var cy, cwx, cwy float32
	if !uniform {
		cy = 0
		cwx = parent.A*cx + parent.WorldPos.X
		cwy = parent.C*cx + parent.WorldPos.Y
	} else {
		cy = child.Translation.Y
		cwx = parent.A*cx + parent.B*cy + parent.WorldPos.X
		cwy = parent.C*cx + parent.D*cy + parent.WorldPos.Y
	}

	pp := parent.Parent
	id := 1 / (pp.A*pp.D - pp.B*pp.C)
	x := target.X - pp.WorldPos.X
	y := target.Y - pp.WorldPos.Y
	tx := (x*pp.D-y*pp.B)*id - px
	ty := (y*pp.A-x*pp.C)*id - py
	x = cwx - pp.WorldPos.X
	y = cwy - pp.WorldPos.Y
	dx := (x*pp.D-y*pp.B)*id - px
	dy := (y*pp.A-x*pp.C)*id - py
	l1 := sqrt(dx*dx + dy*dy)
	l2 := child.Data.Length * csx

	var a1, a2 float32
	if uniform {
		l2 *= psx
		cosine := (tx*tx + ty*ty - l1*l1 - l2*l2) / (2 * l1 * l2)
		cosine = mgl.Clamp(cosine, -1, 1)
		a2 = acos(cosine) * float32(bendDir)
		a := l1 + l2*cosine
		b := l2 * sin(a2)
		a1 = atan2(ty*a-tx*b, tx*a+ty*b)
	} else {
		a := psx * l2
		b := psy * l2
		aa, bb := a*a, b*b
		ll := l1 * l1
		dd := tx*tx + ty*ty
		ta := atan2(ty, tx)
		c0 := bb*ll + aa*dd - aa*bb
		c1 := -2 * bb * l1
		c2 := bb - aa
		d := c1*c1 - 4*c2*c0

		solved := false
		if d >= 0 {
			q := sqrt(d)
			if c1 < 0 {
				q = -q
			}
			q = -(c1 + q) / 2
			r0, r1 := q/c2, c0/q
			r := r1
			if abs(r0) < abs(r1) {
				r = r0
			}
			if r*r <= dd {
				yy := sqrt(dd-r*r) * float32(bendDir)
				a1 = ta - atan2(yy, r)
				a2 = atan2(yy/psy, (r-l1)/psx)
				solved = true
			}
		}

		if !solved {
			// No crossing: pick the candidate on the ellipse closest to
			// (or farthest from) the target reach.
			var minAngle, minX, minY float32
			minDist := float32(math.MaxFloat32)
			var maxAngle, maxX, maxY float32
			maxDist := float32(0)

			xx := l1 + a
			dist := xx * xx
			if dist > maxDist {
				maxAngle = 0
				maxDist = dist
				maxX = xx
			}
			xx = l1 - a
			dist = xx * xx
			if dist < minDist {
				minAngle = math.Pi
				minDist = dist
				minX = xx
			}
			angle := acos(-a * l1 / (aa - bb))
			xx = a*cos(angle) + l1
			yy := b * sin(angle)
			dist = xx*xx + yy*yy
			if dist < minDist {
				minAngle = angle
				minDist = dist
				minX = xx
				minY = yy
			}
			if dist > maxDist {
				maxAngle = angle
				maxDist = dist
				maxX = xx
				maxY = yy
			}
			if dd <= (minDist+maxDist)/2 {
				a1 = ta - atan2(minY*float32(bendDir), minX)
				a2 = minAngle * float32(bendDir)
			} else {
				a1 = ta - atan2(maxY*float32(bendDir), maxX)
				a2 = maxAngle * float32(bendDir)
			}
		}
	}

	os := atan2(cy, cx) * s2
	a1 = normalizeDegrees((a1-os)*radDeg + o1 - parent.Rotation)
	parent.UpdateWorldTransformWith(Vector{px, py}, parent.Rotation+a1*alpha, parent.Scale, Vector{})

	a2 = normalizeDegrees(((a2+os)*radDeg-child.Shear.X)*s2 + o2 - child.Rotation)
	child.UpdateWorldTransformWith(Vector{cx, cy}, child.Rotation+a2*alpha, child.Scale, child.Shear)
}

const radDeg = 180 / math.Pi
