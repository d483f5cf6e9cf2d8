// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"testing"
)

// buildPathData creates a straight horizontal path from (0,0) to (100,0)
// shown by a slot on the root bone, with two driven bones and a tangent
// mode constraint positioned at 50 with spacing 50.
func buildPathData() *SkeletonData {
	data := new(SkeletonData)
	root := NewBoneData(0, "root", nil)
	b1 := NewBoneData(1, "link1", root)
	b2 := NewBoneData(2, "link2", root)
	data.Bones = []*BoneData{root, b1, b2}

	slot := NewSlotData(0, "rail", root)
	slot.AttachmentName = "rail"
	data.Slots = []*SlotData{slot}

	path := NewPathAttachment("rail")
	// Three vertices per control point: incoming handle, anchor, outgoing
	// handle. Collinear handles keep the spline an exact line.
	path.Vertices = []float32{
		-33, 0, 0, 0, 33, 0,
		67, 0, 100, 0, 133, 0,
	}
	path.WorldVerticesCount = 6
	path.ConstantSpeed = true

	skin := NewSkin("default")
	skin.AddAttachment(0, "rail", path)
	data.DefaultSkin = skin
	data.Skins = []*Skin{skin}

	pc := NewPathConstraintData("follow")
	pc.Bones = []*BoneData{b1, b2}
	pc.Target = slot
	pc.PositionMode = PositionFixed
	pc.SpacingMode = SpacingFixed
	pc.RotateMode = RotateTangent
	pc.Position = 50
	pc.Spacing = 50
	pc.RotateMix = 1
	pc.TranslateMix = 1
	data.PathConstraints = []*PathConstraintData{pc}
	return data
}

func TestPathConstraintTangentModeStraightPath(t *testing.T) {
	skel := NewSkeleton(buildPathData())
	skel.UpdateWorldTransform()

	b1 := skel.FindBone("link1")
	b2 := skel.FindBone("link2")

	if !nearWithin(b1.WorldPos.X, 50, 0.5) || !nearWithin(b1.WorldPos.Y, 0, 0.5) {
		t.Errorf("link1 expected near (50,0), got (%f,%f)", b1.WorldPos.X, b1.WorldPos.Y)
	}
	if !nearWithin(b2.WorldPos.X, 100, 0.5) || !nearWithin(b2.WorldPos.Y, 0, 0.5) {
		t.Errorf("link2 expected near (100,0), got (%f,%f)", b2.WorldPos.X, b2.WorldPos.Y)
	}
	if !nearWithin(b1.WorldRotationX(), 0, 0.5) || !nearWithin(b2.WorldRotationX(), 0, 0.5) {
		t.Errorf("expected both bones unrotated, got %f and %f", b1.WorldRotationX(), b2.WorldRotationX())
	}
}

func TestPathConstraintTranslateMixBlends(t *testing.T) {
	data := buildPathData()
	data.PathConstraints[0].TranslateMix = 0.5
	data.PathConstraints[0].RotateMix = 0

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	// Bones start at the origin, so a half mix lands halfway to the path
	// samples.
	b1 := skel.FindBone("link1")
	if !nearWithin(b1.WorldPos.X, 25, 0.5) {
		t.Errorf("link1 with half translate mix expected near 25, got %f", b1.WorldPos.X)
	}
}

func TestPathConstraintZeroMixesDoNothing(t *testing.T) {
	data := buildPathData()
	data.PathConstraints[0].TranslateMix = 0
	data.PathConstraints[0].RotateMix = 0

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	b1 := skel.FindBone("link1")
	floatNear(t, b1.WorldPos.X, 0, "unconstrained bone X")
	floatNear(t, b1.WorldPos.Y, 0, "unconstrained bone Y")
}

func TestPathConstraintIgnoresNonPathAttachment(t *testing.T) {
	data := buildPathData()
	data.Skins[0].entries[0].attachment = NewRegionAttachment("rail", "rail")
	data.Slots[0].AttachmentName = "rail"

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	b1 := skel.FindBone("link1")
	floatNear(t, b1.WorldPos.X, 0, "bone untouched without a path attachment")
}

func TestPathConstraintSetupPoseReset(t *testing.T) {
	skel := NewSkeleton(buildPathData())

	pc := skel.PathConstraints[0]
	pc.Position = 7
	pc.Spacing = 8
	pc.RotateMix = 0.1
	pc.TranslateMix = 0.2
	skel.SetBonesToSetupPose()

	if pc.Position != 50 || pc.Spacing != 50 || pc.RotateMix != 1 || pc.TranslateMix != 1 {
		t.Error("expected the path constraint to reset to its definition")
	}
}

func nearWithin(got, want, tolerance float32) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
