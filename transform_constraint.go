// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// TransformConstraintData is the immutable definition of a transform
// constraint: driven bones blend their world transform toward a target
// bone, offset by authored deltas.
type TransformConstraintData struct {
	Name   string
	Bones  []*BoneData
	Target *BoneData

	OffsetRotation    float32
	OffsetTranslation Vector
	OffsetScale       Vector
	OffsetShearY      float32

	RotateMix    float32
	TranslateMix float32
	ScaleMix     float32
	ShearMix     float32
}

// NewTransformConstraintData creates a transform constraint definition
// with all mixes at zero.
func NewTransformConstraintData(name string) *TransformConstraintData {
	d := new(TransformConstraintData)
	d.Name = name
	return d
}

// TransformConstraint is the runtime state of a transform constraint.
type TransformConstraint struct {
	Data   *TransformConstraintData
	Bones  []*Bone
	Target *Bone

	RotateMix    float32
	TranslateMix float32
	ScaleMix     float32
	ShearMix     float32
}

func newTransformConstraint(data *TransformConstraintData, skeleton *Skeleton) *TransformConstraint {
	c := new(TransformConstraint)
	c.Data = data
	c.RotateMix = data.RotateMix
	c.TranslateMix = data.TranslateMix
	c.ScaleMix = data.ScaleMix
	c.ShearMix = data.ShearMix

	c.Bones = make([]*Bone, 0, len(data.Bones))
	for _, bd := range data.Bones {
		c.Bones = append(c.Bones, skeleton.Bones[bd.Index])
	}
	c.Target = skeleton.Bones[data.Target.Index]
	return c
}

func (c *TransformConstraint) updatePose() {
	c.Apply()
}

// Apply blends each driven bone's world transform toward the target.
func (c *TransformConstraint) Apply() {
	target := c.Target
	for _, bone := range c.Bones {
		c.applyTo(bone, target)
	}
}

func (c *TransformConstraint) applyTo(bone, target *Bone) {
	if c.RotateMix > 0 {
		a, b, cc, d := bone.A, bone.B, bone.C, bone.D
		r := atan2(target.C, target.A) - atan2(cc, a) + mgl.DegToRad(c.Data.OffsetRotation)
		r = normalizeRadians(r)
		r *= c.RotateMix
		cosine, sine := cos(r), sin(r)
		bone.A = cosine*a - sine*cc
		bone.B = cosine*b - sine*d
		bone.C = sine*a + cosine*cc
		bone.D = sine*b + cosine*d
	}

	if c.TranslateMix > 0 {
		w := target.LocalToWorld(c.Data.OffsetTranslation)
		bone.WorldPos.X += (w.X - bone.WorldPos.X) * c.TranslateMix
		bone.WorldPos.Y += (w.Y - bone.WorldPos.Y) * c.TranslateMix
	}

	if c.ScaleMix > 0 {
		bs := sqrt(bone.A*bone.A + bone.C*bone.C)
		ts := sqrt(target.A*target.A + target.C*target.C)
		s := float32(0)
		if bs > 0.00001 {
			s = (bs + (ts-bs+c.Data.OffsetScale.X)*c.ScaleMix) / bs
		}
		bone.A *= s
		bone.C *= s

		bs = sqrt(bone.B*bone.B + bone.D*bone.D)
		ts = sqrt(target.B*target.B + target.D*target.D)
		s = 0
		if bs > 0.00001 {
			s = (bs + (ts-bs+c.Data.OffsetScale.Y)*c.ScaleMix) / bs
		}
		bone.B *= s
		bone.D *= s
	}

	if c.ShearMix > 0 {
		b, d := bone.B, bone.D
		by := atan2(d, b)
		r := atan2(target.D, target.B) - atan2(target.C, target.A) - (by - atan2(bone.C, bone.A))
		if r > math.Pi {
			r -= 2 * math.Pi
		} else if r < -math.Pi {
			r += 2 * math.Pi
		}
		r = by + (r+mgl.DegToRad(c.Data.OffsetShearY))*c.ShearMix
		s := sqrt(b*b + d*d)
		bone.B = cos(r) * s
		bone.D = sin(r) * s
	}
}
