// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
)

const testEpsilon = 1e-4

func floatNear(t *testing.T, got, want float32, context string) {
	t.Helper()
	if !mgl.FloatEqualThreshold(got, want, testEpsilon) {
		t.Errorf("%s: expected %f, got %f", context, want, got)
	}
}

// buildChainData creates root -> arm -> forearm with the given arm
// translation and rotation.
func buildChainData() *SkeletonData {
	data := new(SkeletonData)
	root := NewBoneData(0, "root", nil)
	arm := NewBoneData(1, "arm", root)
	arm.Translation = Vector{10, 0}
	arm.Rotation = 30
	forearm := NewBoneData(2, "forearm", arm)
	forearm.Translation = Vector{5, 0}
	data.Bones = []*BoneData{root, arm, forearm}
	return data
}

func TestRigidParentChildWorldTransform(t *testing.T) {
	skel := NewSkeleton(buildChainData())
	skel.UpdateWorldTransform()

	arm := skel.FindBone("arm")
	if arm == nil {
		t.Fatal("expected to find the arm bone")
	}

	floatNear(t, arm.WorldPos.X, 10, "arm world X")
	floatNear(t, arm.WorldPos.Y, 0, "arm world Y")
	floatNear(t, arm.A, cos(mgl.DegToRad(30)), "arm matrix a")
	floatNear(t, arm.C, sin(mgl.DegToRad(30)), "arm matrix c")
}

func TestChildWorldPositionComposition(t *testing.T) {
	skel := NewSkeleton(buildChainData())
	skel.UpdateWorldTransform()

	// For every non-root bone: worldPos = parent.worldPos + parent.M * translation.
	for _, bone := range skel.Bones {
		parent := bone.Parent
		if parent == nil {
			continue
		}
		wantX := parent.A*bone.Translation.X + parent.B*bone.Translation.Y + parent.WorldPos.X
		wantY := parent.C*bone.Translation.X + parent.D*bone.Translation.Y + parent.WorldPos.Y
		floatNear(t, bone.WorldPos.X, wantX, bone.Data.Name+" world X")
		floatNear(t, bone.WorldPos.Y, wantY, bone.Data.Name+" world Y")
	}
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	skel := NewSkeleton(buildChainData())
	skel.UpdateWorldTransform()

	tests := []Vector{
		{0, 0},
		{3, -4},
		{-12.5, 7.25},
	}

	for _, bone := range skel.Bones {
		for _, v := range tests {
			got := bone.WorldToLocal(bone.LocalToWorld(v))
			floatNear(t, got.X, v.X, bone.Data.Name+" round trip X")
			floatNear(t, got.Y, v.Y, bone.Data.Name+" round trip Y")
		}
	}
}

func TestWorldRotationAndScale(t *testing.T) {
	data := new(SkeletonData)
	root := NewBoneData(0, "root", nil)
	root.Rotation = 45
	root.Scale = Vector{2, 3}
	data.Bones = []*BoneData{root}

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	bone := skel.Bones[0]
	floatNear(t, bone.WorldRotationX(), 45, "world rotation X")
	floatNear(t, bone.WorldScaleX(), 2, "world scale X")
	floatNear(t, bone.WorldScaleY(), 3, "world scale Y")
}

func TestShearParticipatesInLocalBasis(t *testing.T) {
	data := new(SkeletonData)
	root := NewBoneData(0, "root", nil)
	root.Shear = Vector{30, 0}
	data.Bones = []*BoneData{root}

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	bone := skel.Bones[0]
	floatNear(t, bone.A, cos(mgl.DegToRad(30)), "sheared matrix a")
	floatNear(t, bone.C, sin(mgl.DegToRad(30)), "sheared matrix c")
	// The Y axis is unaffected by an X shear.
	floatNear(t, bone.B, cos(mgl.DegToRad(90)), "sheared matrix b")
	floatNear(t, bone.D, sin(mgl.DegToRad(90)), "sheared matrix d")
}

func TestYDownFlipsRootBasis(t *testing.T) {
	SetYDown(true)
	defer SetYDown(false)

	data := new(SkeletonData)
	root := NewBoneData(0, "root", nil)
	root.Translation = Vector{0, 10}
	data.Bones = []*BoneData{root}

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	bone := skel.Bones[0]
	floatNear(t, bone.WorldPos.Y, -10, "y-down world Y")
	floatNear(t, bone.D, -1, "y-down matrix d")
}
