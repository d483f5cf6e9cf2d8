// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"testing"
)

// buildTransformData creates a target rotated 90 degrees at (50,20) and
// two independent driven bones.
func buildTransformData() *SkeletonData {
	data := new(SkeletonData)
	root := NewBoneData(0, "root", nil)
	driven1 := NewBoneData(1, "driven1", root)
	driven2 := NewBoneData(2, "driven2", root)
	target := NewBoneData(3, "target", nil)
	target.Translation = Vector{50, 20}
	target.Rotation = 90
	data.Bones = []*BoneData{root, driven1, driven2, target}

	tc := NewTransformConstraintData("mimic")
	tc.Bones = []*BoneData{driven1, driven2}
	tc.Target = target
	data.TransformConstraints = []*TransformConstraintData{tc}
	return data
}

func TestTransformConstraintRotate(t *testing.T) {
	data := buildTransformData()
	data.TransformConstraints[0].RotateMix = 1

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	for _, name := range []string{"driven1", "driven2"} {
		bone := skel.FindBone(name)
		floatNear(t, bone.WorldRotationX(), 90, name+" rotated to target")
	}
}

func TestTransformConstraintTranslate(t *testing.T) {
	data := buildTransformData()
	data.TransformConstraints[0].TranslateMix = 1

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	bone := skel.FindBone("driven1")
	floatNear(t, bone.WorldPos.X, 50, "driven world X")
	floatNear(t, bone.WorldPos.Y, 20, "driven world Y")
}

func TestTransformConstraintTranslateHalfMix(t *testing.T) {
	data := buildTransformData()
	data.TransformConstraints[0].TranslateMix = 0.5

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	bone := skel.FindBone("driven1")
	floatNear(t, bone.WorldPos.X, 25, "half mix world X")
	floatNear(t, bone.WorldPos.Y, 10, "half mix world Y")
}

func TestTransformConstraintOffsetTranslation(t *testing.T) {
	data := buildTransformData()
	data.TransformConstraints[0].TranslateMix = 1
	data.TransformConstraints[0].OffsetTranslation = Vector{5, 0}

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	// The offset is in the target's local frame; the target is rotated 90
	// degrees so local +X becomes world +Y.
	bone := skel.FindBone("driven1")
	floatNear(t, bone.WorldPos.X, 50, "offset world X")
	floatNear(t, bone.WorldPos.Y, 25, "offset world Y")
}

func TestTransformConstraintScale(t *testing.T) {
	data := buildTransformData()
	data.TransformConstraints[0].ScaleMix = 1
	data.Bones[3].Rotation = 0
	data.Bones[3].Scale = Vector{2, 1}

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	bone := skel.FindBone("driven1")
	floatNear(t, bone.WorldScaleX(), 2, "driven world scale X")
	floatNear(t, bone.WorldScaleY(), 1, "driven world scale Y")
}

func TestTransformConstraintSetupPoseReset(t *testing.T) {
	data := buildTransformData()
	data.TransformConstraints[0].RotateMix = 1
	skel := NewSkeleton(data)

	tc := skel.TransformConstraints[0]
	tc.RotateMix = 0.25
	tc.TranslateMix = 0.5
	skel.SetBonesToSetupPose()

	if tc.RotateMix != 1 || tc.TranslateMix != 0 {
		t.Error("expected the transform constraint to reset to its definition")
	}
}
