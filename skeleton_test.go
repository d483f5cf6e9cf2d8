// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"testing"
)

// buildForestData creates two bone trees with children authored before the
// update cache gets to sort them:
//
//	root (0) -> hip (1) -> legL (2)
//	                    -> legR (3)
//	prop (4)
func buildForestData() *SkeletonData {
	data := new(SkeletonData)
	root := NewBoneData(0, "root", nil)
	hip := NewBoneData(1, "hip", root)
	legL := NewBoneData(2, "legL", hip)
	legR := NewBoneData(3, "legR", hip)
	prop := NewBoneData(4, "prop", nil)
	data.Bones = []*BoneData{root, hip, legL, legR, prop}
	return data
}

func cacheBoneOrder(skel *Skeleton) []*Bone {
	var order []*Bone
	for _, entry := range skel.updateCache {
		if bone, ok := entry.(*Bone); ok {
			order = append(order, bone)
		}
	}
	return order
}

func TestUpdateCacheTopologicalOrder(t *testing.T) {
	skel := NewSkeleton(buildForestData())

	order := cacheBoneOrder(skel)
	if len(order) != len(skel.Bones) {
		t.Fatalf("expected %d bones in the cache, got %d", len(skel.Bones), len(order))
	}

	seen := make(map[*Bone]bool)
	for _, bone := range order {
		if bone.Parent != nil && !seen[bone.Parent] {
			t.Errorf("bone %s appeared before its parent", bone.Data.Name)
		}
		seen[bone] = true
	}
}

func TestUpdateCacheIdempotent(t *testing.T) {
	skel := NewSkeleton(buildForestData())
	first := cacheBoneOrder(skel)

	skel.UpdateCache()
	second := cacheBoneOrder(skel)

	if len(first) != len(second) {
		t.Fatalf("cache sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("cache entry %d changed between runs", i)
		}
	}
}

func TestClearedStateMatchesSetupPose(t *testing.T) {
	data := buildChainData()

	rotate := NewRotateTimeline(2)
	rotate.BoneIndex = 1
	rotate.Frames[0] = RotateFrame{Time: 0, Angle: 0}
	rotate.Frames[1] = RotateFrame{Time: 1, Angle: 90}
	data.Animations = []*Animation{NewAnimation("swing", []Timeline{rotate}, 1)}

	skel := NewSkeleton(data)
	state := NewAnimationState(NewAnimationStateData(data))

	// Pose the skeleton mid-animation, then clear and re-apply.
	state.SetAnimationByName(0, "swing", false)
	state.Update(0.5)
	state.Apply(skel)
	skel.UpdateWorldTransform()

	state.ClearTracks()
	skel.SetToSetupPose()
	state.Apply(skel)
	skel.UpdateWorldTransform()

	want := NewSkeleton(data)
	want.UpdateWorldTransform()

	for i, bone := range skel.Bones {
		ref := want.Bones[i]
		floatNear(t, bone.A, ref.A, bone.Data.Name+" matrix a")
		floatNear(t, bone.C, ref.C, bone.Data.Name+" matrix c")
		floatNear(t, bone.WorldPos.X, ref.WorldPos.X, bone.Data.Name+" world X")
		floatNear(t, bone.WorldPos.Y, ref.WorldPos.Y, bone.Data.Name+" world Y")
	}
}

func buildSkinnedData() *SkeletonData {
	data := new(SkeletonData)
	root := NewBoneData(0, "root", nil)
	data.Bones = []*BoneData{root}

	slot := NewSlotData(0, "body", root)
	slot.AttachmentName = "shirt"
	data.Slots = []*SlotData{slot}

	defaultSkin := NewSkin("default")
	defaultSkin.AddAttachment(0, "shirt", NewRegionAttachment("shirt", "shirt"))
	red := NewSkin("red")
	red.AddAttachment(0, "shirt", NewRegionAttachment("shirt-red", "shirt-red"))

	data.DefaultSkin = defaultSkin
	data.Skins = []*Skin{defaultSkin, red}
	return data
}

func TestSetSkinTwiceIsIdempotent(t *testing.T) {
	skel := NewSkeleton(buildSkinnedData())

	if !skel.SetSkinByName("red") {
		t.Fatal("expected the red skin to resolve")
	}
	first := skel.Slots[0].Attachment()

	if !skel.SetSkinByName("red") {
		t.Fatal("expected the red skin to resolve twice")
	}
	if skel.Slots[0].Attachment() != first {
		t.Error("setting the same skin twice changed the slot attachment")
	}
}

func TestSetSkinByNameUnknown(t *testing.T) {
	skel := NewSkeleton(buildSkinnedData())
	if skel.SetSkinByName("nope") {
		t.Error("expected an unknown skin name to fail")
	}
	if !skel.SetSkinByName("") {
		t.Error("expected an empty skin name to clear the skin")
	}
	if skel.Skin() != nil {
		t.Error("expected no active skin after clearing")
	}
}

func TestAttachmentLookupFallsBackToDefaultSkin(t *testing.T) {
	data := buildSkinnedData()
	data.DefaultSkin.AddAttachment(0, "scarf", NewRegionAttachment("scarf", "scarf"))
	skel := NewSkeleton(data)
	skel.SetSkinByName("red")

	// "shirt" exists by that name in both skins; "scarf" only in the
	// default skin, so it resolves through the fallback.
	if att := skel.AttachmentForSlotName("body", "shirt"); att == nil {
		t.Error("expected the active skin to resolve the attachment")
	}
	if att := skel.AttachmentForSlotName("body", "scarf"); att == nil {
		t.Error("expected the default skin to resolve the attachment")
	}
	if att := skel.AttachmentForSlotName("missing", "shirt"); att != nil {
		t.Error("expected an unknown slot to resolve to nil")
	}
}

func TestSetAttachment(t *testing.T) {
	skel := NewSkeleton(buildSkinnedData())

	if !skel.SetAttachment("body", "shirt") {
		t.Error("expected the attachment to resolve")
	}
	if skel.Slots[0].Attachment() == nil {
		t.Error("expected the slot to have an attachment")
	}
	if !skel.SetAttachment("body", "") {
		t.Error("expected clearing the attachment to succeed")
	}
	if skel.Slots[0].Attachment() != nil {
		t.Error("expected the slot attachment to clear")
	}
	if skel.SetAttachment("body", "nope") {
		t.Error("expected an unknown attachment to fail")
	}
	if skel.SetAttachment("nope", "shirt") {
		t.Error("expected an unknown slot to fail")
	}
}

func TestDrawOrderIdentityRoundTrip(t *testing.T) {
	data := new(SkeletonData)
	root := NewBoneData(0, "root", nil)
	data.Bones = []*BoneData{root}
	data.Slots = []*SlotData{
		NewSlotData(0, "a", root),
		NewSlotData(1, "b", root),
		NewSlotData(2, "c", root),
	}

	skel := NewSkeleton(data)
	before := append([]*Slot(nil), skel.DrawOrder...)

	skel.SetDrawOrder([]int{0, 1, 2})
	skel.ResetDrawOrder()

	for i, slot := range skel.DrawOrder {
		if slot != before[i] {
			t.Errorf("draw order entry %d changed after identity round trip", i)
		}
	}

	skel.SetDrawOrder([]int{2, 1, 0})
	if skel.DrawOrder[0] != skel.Slots[2] || skel.DrawOrder[2] != skel.Slots[0] {
		t.Error("SetDrawOrder did not reorder the slots")
	}
}

func TestFinders(t *testing.T) {
	skel := NewSkeleton(buildChainData())

	if skel.FindBone("arm") == nil || skel.FindBone("nope") != nil {
		t.Error("FindBone misbehaved")
	}
	if skel.FindBoneIndex("forearm") != 2 || skel.FindBoneIndex("nope") != -1 {
		t.Error("FindBoneIndex misbehaved")
	}
	if skel.FindSlot("nope") != nil {
		t.Error("FindSlot should return nil for unknown slots")
	}
	if skel.FindIkConstraint("nope") != nil || skel.FindTransformConstraint("nope") != nil ||
		skel.FindPathConstraint("nope") != nil {
		t.Error("constraint finders should return nil for unknown names")
	}
}
