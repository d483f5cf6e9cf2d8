// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"testing"
)

func buildBoundsRig() (*Skeleton, *BoundingBoxAttachment) {
	data := new(SkeletonData)
	root := NewBoneData(0, "root", nil)
	data.Bones = []*BoneData{root}
	data.Slots = []*SlotData{NewSlotData(0, "hit", root)}

	skel := NewSkeleton(data)
	skel.UpdateWorldTransform()

	bb := NewBoundingBoxAttachment("box")
	bb.Vertices = []float32{0, 0, 10, 0, 10, 10, 0, 10}
	bb.WorldVerticesCount = 4
	skel.Slots[0].SetAttachment(bb)
	return skel, bb
}

func TestPolygonContainsPoint(t *testing.T) {
	polygon := &Polygon{Vertices: []Vector{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}

	tests := []struct {
		point  Vector
		inside bool
	}{
		{Vector{5, 5}, true},
		{Vector{0.1, 0.1}, true},
		{Vector{-1, 5}, false},
		{Vector{11, 5}, false},
		{Vector{5, -1}, false},
	}
	for _, test := range tests {
		if got := polygon.ContainsPoint(test.point); got != test.inside {
			t.Errorf("containsPoint(%v): expected %v, got %v", test.point, test.inside, got)
		}
	}
}

func TestPolygonIntersectsSegment(t *testing.T) {
	polygon := &Polygon{Vertices: []Vector{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}

	if !polygon.IntersectsSegment(Vector{-5, 5}, Vector{15, 5}) {
		t.Error("expected a crossing segment to intersect")
	}
	if polygon.IntersectsSegment(Vector{-5, 20}, Vector{15, 20}) {
		t.Error("expected a distant segment to miss")
	}
}

func TestSkeletonBoundsAabb(t *testing.T) {
	skel, bb := buildBoundsRig()

	bounds := NewSkeletonBounds()
	bounds.Update(skel, true)

	if !bounds.AabbContainsPoint(Vector{5, 5}) {
		t.Error("expected the aabb to contain an interior point")
	}
	if bounds.AabbContainsPoint(Vector{20, 20}) {
		t.Error("expected the aabb to exclude an exterior point")
	}
	if !bounds.AabbIntersectsSegment(Vector{-5, 5}, Vector{15, 5}) {
		t.Error("expected the aabb to intersect a crossing segment")
	}

	if got := bounds.ContainsPoint(Vector{5, 5}); got != bb {
		t.Error("expected containsPoint to return the bounding box attachment")
	}
	if got := bounds.ContainsPoint(Vector{50, 50}); got != nil {
		t.Error("expected containsPoint to miss outside the polygon")
	}
	if got := bounds.IntersectsSegment(Vector{-5, 5}, Vector{15, 5}); got != bb {
		t.Error("expected intersectsSegment to return the bounding box attachment")
	}
	if bounds.Polygon(bb) == nil {
		t.Error("expected a polygon for the bounding box")
	}
}

func TestSkeletonBoundsSkeletonOverlap(t *testing.T) {
	skelA, _ := buildBoundsRig()
	skelB, _ := buildBoundsRig()
	skelB.Translation = Vector{100, 100}

	boundsA := NewSkeletonBounds()
	boundsA.Update(skelA, true)
	boundsB := NewSkeletonBounds()
	boundsB.Update(skelB, true)

	if boundsA.AabbIntersectsBounds(boundsB) {
		t.Error("expected translated skeletons not to overlap")
	}

	skelB.Translation = Vector{5, 5}
	boundsB.Update(skelB, true)
	if !boundsA.AabbIntersectsBounds(boundsB) {
		t.Error("expected overlapping skeletons to report an overlap")
	}
}

func TestSkeletonBoundsSkipsOtherAttachments(t *testing.T) {
	skel, _ := buildBoundsRig()
	skel.Slots[0].SetAttachment(NewRegionAttachment("quad", "quad"))

	bounds := NewSkeletonBounds()
	bounds.Update(skel, true)
	if bounds.ContainsPoint(Vector{5, 5}) != nil {
		t.Error("expected no polygons without bounding box attachments")
	}
}
