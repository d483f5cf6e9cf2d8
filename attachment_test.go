// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"testing"
)

// buildMeshRig creates two bones at (0,0) and (20,0) with a slot on the
// first bone.
func buildMeshRig() *Skeleton {
	data := new(SkeletonData)
	root := NewBoneData(0, "root", nil)
	other := NewBoneData(1, "other", root)
	other.Translation = Vector{20, 0}
	data.Bones = []*BoneData{root, other}
	data.Slots = []*SlotData{NewSlotData(0, "skin", root)}

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()
	return skel
}

func TestComputeWorldVerticesRigid(t *testing.T) {
	skel := buildMeshRig()
	slot := skel.Slots[0]

	mesh := NewMeshAttachment("patch", "patch")
	mesh.Vertices = []float32{0, 0, 10, 0, 10, 10, 0, 10}
	mesh.WorldVerticesCount = 4
	slot.SetAttachment(mesh)

	out := make([]float32, 8)
	mesh.ComputeWorldVertices(slot, out)

	want := []float32{0, 0, 10, 0, 10, 10, 0, 10}
	for i := range want {
		floatNear(t, out[i], want[i], "rigid vertex")
	}
}

func TestComputeWorldVerticesRigidWithDeform(t *testing.T) {
	skel := buildMeshRig()
	slot := skel.Slots[0]

	mesh := NewMeshAttachment("patch", "patch")
	mesh.Vertices = []float32{0, 0, 10, 0}
	mesh.WorldVerticesCount = 2
	slot.SetAttachment(mesh)
	slot.AttachmentVertices = []Vector{{1, 2}, {3, 4}}

	out := make([]float32, 4)
	mesh.ComputeWorldVertices(slot, out)

	// Deform offsets replace the authored vertices entirely for rigid
	// attachments.
	want := []float32{1, 2, 3, 4}
	for i := range want {
		floatNear(t, out[i], want[i], "deformed rigid vertex")
	}
}

func TestComputeWorldVerticesWeighted(t *testing.T) {
	skel := buildMeshRig()
	slot := skel.Slots[0]

	// One vertex weighted half and half between the two bones, authored at
	// each bone's origin.
	mesh := NewMeshAttachment("patch", "patch")
	mesh.Bones = []int{2, 0, 1}
	mesh.Vertices = []float32{0, 0, 0.5, 0, 0, 0.5}
	mesh.WorldVerticesCount = 1
	slot.SetAttachment(mesh)

	out := make([]float32, 2)
	mesh.ComputeWorldVertices(slot, out)

	// Halfway between (0,0) and (20,0).
	floatNear(t, out[0], 10, "weighted vertex X")
	floatNear(t, out[1], 0, "weighted vertex Y")
}

func TestComputeWorldVerticesWeightedWithDeform(t *testing.T) {
	skel := buildMeshRig()
	slot := skel.Slots[0]

	mesh := NewMeshAttachment("patch", "patch")
	mesh.Bones = []int{1, 0}
	mesh.Vertices = []float32{5, 0, 1}
	mesh.WorldVerticesCount = 1
	slot.SetAttachment(mesh)
	slot.AttachmentVertices = []Vector{{0, 3}}

	out := make([]float32, 2)
	mesh.ComputeWorldVertices(slot, out)

	// Deform offsets add to the authored weighted vertices.
	floatNear(t, out[0], 5, "deformed weighted X")
	floatNear(t, out[1], 3, "deformed weighted Y")
}

func TestSkeletonTranslationOffsetsVertices(t *testing.T) {
	skel := buildMeshRig()
	skel.Translation = Vector{100, 50}
	slot := skel.Slots[0]

	mesh := NewMeshAttachment("patch", "patch")
	mesh.Vertices = []float32{0, 0}
	mesh.WorldVerticesCount = 1
	slot.SetAttachment(mesh)

	out := make([]float32, 2)
	mesh.ComputeWorldVertices(slot, out)
	floatNear(t, out[0], 100, "translated vertex X")
	floatNear(t, out[1], 50, "translated vertex Y")
}

func TestLinkedMeshMatchesClonedGeometry(t *testing.T) {
	skel := buildMeshRig()
	slot := skel.Slots[0]

	parent := NewMeshAttachment("base", "base")
	parent.Vertices = []float32{0, 0, 10, 0, 10, 10}
	parent.WorldVerticesCount = 3
	parent.Triangles = []int{0, 1, 2}
	parent.HullLength = 3

	// A linked mesh borrows the parent's buffers.
	linked := NewMeshAttachment("linked", "base")
	linked.SetParentMesh(parent)
	if linked.ParentMesh() != parent {
		t.Fatal("expected the linked mesh to record its parent")
	}

	// A cloned mesh copies them.
	cloned := NewMeshAttachment("cloned", "base")
	cloned.Vertices = append([]float32(nil), parent.Vertices...)
	cloned.WorldVerticesCount = parent.WorldVerticesCount
	cloned.Triangles = append([]int(nil), parent.Triangles...)

	outLinked := make([]float32, 6)
	outCloned := make([]float32, 6)

	slot.SetAttachment(linked)
	linked.ComputeWorldVertices(slot, outLinked)
	slot.SetAttachment(cloned)
	cloned.ComputeWorldVertices(slot, outCloned)

	for i := range outLinked {
		if outLinked[i] != outCloned[i] {
			t.Errorf("vertex float %d differs between linked and cloned meshes", i)
		}
	}
}

func TestRegionAttachmentWorldVertices(t *testing.T) {
	skel := buildMeshRig()

	region := NewRegionAttachment("quad", "quad")
	region.Size = Vector{10, 10}
	region.RegionSize = Vector{10, 10}
	region.RegionOriginalSize = Vector{10, 10}
	region.UpdateOffset()

	out := make([]float32, 8)
	region.ComputeWorldVertices(skel.Bones[0], out)

	// An unrotated, unscaled region centers on the bone.
	want := []float32{-5, -5, -5, 5, 5, 5, 5, -5}
	for i := range want {
		floatNear(t, out[i], want[i], "region corner")
	}
}

func TestRegionAttachmentUVs(t *testing.T) {
	region := NewRegionAttachment("quad", "quad")

	region.SetUVs(0.1, 0.2, 0.3, 0.4, false)
	floatNear(t, region.UVs[0].X, 0.1, "uv0 x")
	floatNear(t, region.UVs[0].Y, 0.4, "uv0 y")
	floatNear(t, region.UVs[2].X, 0.3, "uv2 x")
	floatNear(t, region.UVs[2].Y, 0.2, "uv2 y")

	region.SetUVs(0.1, 0.2, 0.3, 0.4, true)
	floatNear(t, region.UVs[0].X, 0.3, "rotated uv0 x")
	floatNear(t, region.UVs[0].Y, 0.4, "rotated uv0 y")
}

func TestMeshUpdateUVs(t *testing.T) {
	mesh := NewMeshAttachment("patch", "patch")
	mesh.WorldVerticesCount = 2
	mesh.RegionUVs = []Vector{{0, 0}, {1, 1}}
	mesh.RegionUV = Vector{0.5, 0.5}
	mesh.RegionUV2 = Vector{1, 1}

	mesh.UpdateUVs()
	floatNear(t, mesh.UVs[0].X, 0.5, "mesh uv0 x")
	floatNear(t, mesh.UVs[1].X, 1, "mesh uv1 x")
	floatNear(t, mesh.UVs[1].Y, 1, "mesh uv1 y")
}

func TestDeformTimelineAppliesToMatchingAttachment(t *testing.T) {
	skel := buildMeshRig()
	slot := skel.Slots[0]

	mesh := NewMeshAttachment("patch", "patch")
	mesh.Vertices = []float32{0, 0}
	mesh.WorldVerticesCount = 1
	slot.SetAttachment(mesh)

	timeline := NewDeformTimeline(2)
	timeline.SlotIndex = 0
	timeline.Attachment = mesh
	timeline.SetFrame(0, 0, []Vector{{0, 0}})
	timeline.SetFrame(1, 1, []Vector{{10, 0}})

	timeline.Apply(skel, 0, 0.5, nil, 1)
	if len(slot.AttachmentVertices) != 1 {
		t.Fatal("expected one deform vertex")
	}
	floatNear(t, slot.AttachmentVertices[0].X, 5, "deform halfway")

	// A different attachment in the slot suppresses the timeline.
	other := NewMeshAttachment("other", "other")
	slot.SetAttachment(other)
	timeline.Apply(skel, 0, 0.75, nil, 1)
	if len(slot.AttachmentVertices) != 0 {
		t.Error("expected no deform for a non-matching attachment")
	}
}

func TestDeformTimelineInheritedByChildMesh(t *testing.T) {
	skel := buildMeshRig()
	slot := skel.Slots[0]

	parent := NewMeshAttachment("base", "base")
	parent.Vertices = []float32{0, 0}
	parent.WorldVerticesCount = 1

	child := NewMeshAttachment("child", "base")
	child.InheritDeform = true
	child.SetParentMesh(parent)
	slot.SetAttachment(child)

	timeline := NewDeformTimeline(2)
	timeline.SlotIndex = 0
	timeline.Attachment = parent
	timeline.SetFrame(0, 0, []Vector{{0, 0}})
	timeline.SetFrame(1, 1, []Vector{{4, 0}})

	timeline.Apply(skel, 0, 0.5, nil, 1)
	if len(slot.AttachmentVertices) != 1 {
		t.Fatal("expected the child mesh to receive the parent's deform")
	}
	floatNear(t, slot.AttachmentVertices[0].X, 2, "inherited deform halfway")
}
