// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

// BoneData is the immutable setup-pose definition of a bone. BoneData can
// be shared between many Skeleton instances.
type BoneData struct {
	Index  int
	Name   string
	Parent *BoneData

	// Length is the authored bone length, used by IK and path constraints.
	Length float32

	Translation Vector
	Rotation    float32
	Scale       Vector
	Shear       Vector

	InheritRotation bool
	InheritScale    bool
}

// NewBoneData creates a bone definition with identity setup transforms.
func NewBoneData(index int, name string, parent *BoneData) *BoneData {
	bd := new(BoneData)
	bd.Index = index
	bd.Name = name
	bd.Parent = parent
	bd.Scale = Vector{1, 1}
	bd.InheritRotation = true
	bd.InheritScale = true
	return bd
}

// Bone is the runtime pose of a BoneData within one Skeleton. The local
// transform fields are written by timelines; UpdateWorldTransform derives
// the 2x3 world matrix (A,B,C,D, WorldPos) from them and the parent chain.
type Bone struct {
	Data     *BoneData
	Skeleton *Skeleton
	Parent   *Bone
	Children []*Bone

	Translation Vector
	Rotation    float32
	Scale       Vector
	Shear       Vector

	// World matrix columns: X axis is (A,C), Y axis is (B,D).
	A, B, C, D float32
	WorldPos   Vector
	WorldSign  Vector

	// AppliedRotation and AppliedScale record the values the world matrix
	// was last composed from. Constraints overwrite the world matrix
	// directly, so descendants that re-compose must read these instead of
	// the plain local fields.
	AppliedRotation float32
	AppliedScale    Vector

	// sorted is scratch state for Skeleton.UpdateCache.
	sorted bool
}

func newBone(data *BoneData, skeleton *Skeleton, parent *Bone) *Bone {
	b := new(Bone)
	b.Data = data
	b.Skeleton = skeleton
	b.Parent = parent
	b.SetToSetupPose()
	return b
}

// SetToSetupPose resets the local transform to the bone definition.
func (b *Bone) SetToSetupPose() {
	b.Translation = b.Data.Translation
	b.Rotation = b.Data.Rotation
	b.Scale = b.Data.Scale
	b.Shear = b.Data.Shear
}

// UpdateWorldTransform composes the world matrix from the bone's current
// local transform.
func (b *Bone) UpdateWorldTransform() {
	b.UpdateWorldTransformWith(b.Translation, b.Rotation, b.Scale, b.Shear)
}

// UpdateWorldTransformWith composes the world matrix from the given local
// transform instead of the bone's own fields. Constraint solvers use this
// to re-pose a bone without disturbing its timeline-written locals.
func (b *Bone) UpdateWorldTransformWith(translation Vector, rotation float32, scale, shear Vector) {
	b.AppliedRotation = rotation
	b.AppliedScale = scale

	rotationX := mgl.DegToRad(rotation + shear.X)
	rotationY := mgl.DegToRad(rotation + 90 + shear.Y)
	la := cos(rotationX) * scale.X
	lb := cos(rotationY) * scale.Y
	lc := sin(rotationX) * scale.X
	ld := sin(rotationY) * scale.Y

	parent := b.Parent
	if parent == nil { // root bone
		skeleton := b.Skeleton
		if skeleton.FlipX {
			translation.X = -translation.X
			la = -la
			lb = -lb
		}
		if skeleton.FlipY != skeleton.yDown {
			translation.Y = -translation.Y
			lc = -lc
			ld = -ld
		}

		b.A = la
		b.B = lb
		b.C = lc
		b.D = ld
		b.WorldPos = translation
		b.WorldSign = Vector{signOf(scale.X), signOf(scale.Y)}
		return
	}

	pa, pb, pc, pd := parent.A, parent.B, parent.C, parent.D

	b.WorldPos.X = pa*translation.X + pb*translation.Y + parent.WorldPos.X
	b.WorldPos.Y = pc*translation.X + pd*translation.Y + parent.WorldPos.Y
	b.WorldSign = Vector{parent.WorldSign.X * signOf(scale.X), parent.WorldSign.Y * signOf(scale.Y)}

	if b.Data.InheritRotation && b.Data.InheritScale {
		b.A = pa*la + pb*lc
		b.B = pa*lb + pb*ld
		b.C = pc*la + pd*lc
		b.D = pc*lb + pd*ld
		return
	}

	if b.Data.InheritRotation { // no scale inheritance
		pa, pb, pc, pd = 1, 0, 0, 1
		for p := parent; p != nil; p = p.Parent {
			cosine := cos(mgl.DegToRad(p.AppliedRotation))
			sine := sin(mgl.DegToRad(p.AppliedRotation))
			temp := pa*cosine + pb*sine
			pb = pa*-sine + pb*cosine
			pa = temp
			temp = pc*cosine + pd*sine
			pd = pc*-sine + pd*cosine
			pc = temp

			if !p.Data.InheritRotation {
				break
			}
		}
		b.A = pa*la + pb*lc
		b.B = pa*lb + pb*ld
		b.C = pc*la + pd*lc
		b.D = pc*lb + pd*ld
	} else if b.Data.InheritScale { // no rotation inheritance
		pa, pb, pc, pd = 1, 0, 0, 1
		for p := parent; p != nil; p = p.Parent {
			r := p.Rotation
			psx, psy := p.AppliedScale.X, p.AppliedScale.Y
			cosine := cos(mgl.DegToRad(r))
			sine := sin(mgl.DegToRad(r))
			za := cosine * psx
			zb := -sine * psy
			zc := sine * psx
			zd := cosine * psy
			temp := pa*za + pb*zc
			pb = pa*zb + pb*zd
			pa = temp
			temp = pc*za + pd*zc
			pd = pc*zb + pd*zd
			pc = temp

			// Undo the rotation so only the scale contribution is kept.
			if psx < 0 {
				r = -r
			}
			cosine = cos(mgl.DegToRad(-r))
			sine = sin(mgl.DegToRad(-r))
			temp = pa*cosine + pb*sine
			pb = pa*-sine + pb*cosine
			pa = temp
			temp = pc*cosine + pd*sine
			pd = pc*-sine + pd*cosine
			pc = temp

			if !p.Data.InheritScale {
				break
			}
		}
		b.A = pa*la + pb*lc
		b.B = pa*lb + pb*ld
		b.C = pc*la + pd*lc
		b.D = pc*lb + pd*ld
	} else {
		b.A = la
		b.B = lb
		b.C = lc
		b.D = ld
	}

	if b.Skeleton.FlipX {
		b.A = -b.A
		b.B = -b.B
	}
	if b.Skeleton.FlipY != b.Skeleton.yDown {
		b.C = -b.C
		b.D = -b.D
	}
}

// WorldRotationX returns the world-space angle of the bone's X axis in
// degrees.
func (b *Bone) WorldRotationX() float32 {
	return mgl.RadToDeg(atan2(b.C, b.A))
}

// WorldRotationY returns the world-space angle of the bone's Y axis in
// degrees.
func (b *Bone) WorldRotationY() float32 {
	return mgl.RadToDeg(atan2(b.D, b.B))
}

// WorldScaleX returns the signed world-space scale along the bone's X axis.
func (b *Bone) WorldScaleX() float32 {
	return sqrt(b.A*b.A+b.C*b.C) * b.WorldSign.X
}

// WorldScaleY returns the signed world-space scale along the bone's Y axis.
func (b *Bone) WorldScaleY() float32 {
	return sqrt(b.B*b.B+b.D*b.D) * b.WorldSign.Y
}

// WorldToLocal transforms a world-space point into the bone's local frame.
func (b *Bone) WorldToLocal(world Vector) Vector {
	x := world.X - b.WorldPos.X
	y := world.Y - b.WorldPos.Y
	invDet := 1 / (b.A*b.D - b.B*b.C)
	return Vector{
		X: x*b.D*invDet - y*b.B*invDet,
		Y: y*b.A*invDet - x*b.C*invDet,
	}
}

// LocalToWorld transforms a point in the bone's local frame to world space.
func (b *Bone) LocalToWorld(local Vector) Vector {
	return Vector{
		X: local.X*b.A + local.Y*b.B + b.WorldPos.X,
		Y: local.X*b.C + local.Y*b.D + b.WorldPos.Y,
	}
}

func signOf(f float32) float32 {
	if f < 0 {
		return -1
	}
	return 1
}
