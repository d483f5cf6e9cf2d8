// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"math"
)

// Polygon is a closed 2D polygon used for hit testing.
type Polygon struct {
	Vertices []Vector
}

// ContainsPoint reports whether the point lies inside the polygon using
// the even-odd crossing rule.
func (p *Polygon) ContainsPoint(pt Vector) bool {
	inside := false
	prevIndex := len(p.Vertices) - 1
	for i, v := range p.Vertices {
		prev := p.Vertices[prevIndex]
		if (v.Y < pt.Y && prev.Y >= pt.Y) || (prev.Y < pt.Y && v.Y >= pt.Y) {
			if v.X+(pt.Y-v.Y)/(prev.Y-v.Y)*(prev.X-v.X) < pt.X {
				inside = !inside
			}
		}
		prevIndex = i
	}
	return inside
}

// IntersectsSegment reports whether the segment from a to b crosses any
// polygon edge.
func (p *Polygon) IntersectsSegment(a, b Vector) bool {
	size := a.Sub(b)
	det1 := a.X*b.Y - a.Y*b.X

	bv := p.Vertices[len(p.Vertices)-1]
	for _, v := range p.Vertices {
		det2 := bv.X*v.Y - bv.Y*v.X
		vsize := bv.Sub(v)
		det3 := size.X*vsize.Y - size.Y*vsize.X
		x := (det1*vsize.X - size.X*det2) / det3
		if ((x >= bv.X && x <= v.X) || (x >= v.X && x <= bv.X)) &&
			((x >= a.X && x <= b.X) || (x >= b.X && x <= a.X)) {
			y := (det1*vsize.Y - size.Y*det2) / det3
			if ((y >= bv.Y && y <= v.Y) || (y >= v.Y && y <= bv.Y)) &&
				((y >= a.Y && y <= b.Y) || (y >= b.Y && y <= a.Y)) {
				return true
			}
		}
		bv = v
	}
	return false
}

// SkeletonBounds collects the world-space polygons of a skeleton's
// bounding box attachments and the axis-aligned box enclosing them.
type SkeletonBounds struct {
	min, max Vector

	boundingBoxes []*BoundingBoxAttachment
	polygons      []*Polygon
}

// NewSkeletonBounds creates an empty bounds tracker.
func NewSkeletonBounds() *SkeletonBounds {
	return new(SkeletonBounds)
}

// Update recomputes the polygons from the skeleton's current pose. When
// updateAabb is true, the enclosing axis-aligned box is refreshed too.
func (sb *SkeletonBounds) Update(skeleton *Skeleton, updateAabb bool) {
	sb.boundingBoxes = sb.boundingBoxes[:0]
	sb.polygons = sb.polygons[:0]

	sb.min = Vector{math.MaxFloat32, math.MaxFloat32}
	sb.max = Vector{-math.MaxFloat32, -math.MaxFloat32}

	scratch := make([]float32, 0, 16)
	for _, slot := range skeleton.Slots {
		bb, ok := slot.Attachment().(*BoundingBoxAttachment)
		if !ok {
			continue
		}

		polygon := &Polygon{Vertices: make([]Vector, bb.WorldVerticesCount)}
		scratch = resizeFloats(scratch, bb.WorldVerticesCount*2)
		bb.ComputeWorldVertices(slot, scratch)
		for i := range polygon.Vertices {
			polygon.Vertices[i] = Vector{scratch[i*2], scratch[i*2+1]}
		}

		sb.boundingBoxes = append(sb.boundingBoxes, bb)
		sb.polygons = append(sb.polygons, polygon)

		if updateAabb {
			for _, pv := range polygon.Vertices {
				if pv.X < sb.min.X {
					sb.min.X = pv.X
				}
				if pv.Y < sb.min.Y {
					sb.min.Y = pv.Y
				}
				if pv.X > sb.max.X {
					sb.max.X = pv.X
				}
				if pv.Y > sb.max.Y {
					sb.max.Y = pv.Y
				}
			}
		}
	}
}

// AabbContainsPoint reports whether the point is inside the axis-aligned
// box.
func (sb *SkeletonBounds) AabbContainsPoint(pt Vector) bool {
	return pt.X >= sb.min.X && pt.X <= sb.max.X && pt.Y >= sb.min.Y && pt.Y <= sb.max.Y
}

// AabbIntersectsSegment reports whether the segment from a to b crosses
// the axis-aligned box.
func (sb *SkeletonBounds) AabbIntersectsSegment(a, b Vector) bool {
	if (a.X <= sb.min.X && b.X <= sb.min.X) || (a.Y <= sb.min.Y && b.Y <= sb.min.Y) ||
		(a.X >= sb.max.X && b.X >= sb.max.X) || (a.Y >= sb.max.Y && b.Y >= sb.max.Y) {
		return false
	}

	m := (b.Y - a.Y) / (b.X - a.X)
	y := m*(sb.min.X-a.X) + a.Y
	if y > sb.min.Y && y < sb.max.Y {
		return true
	}
	y = m*(sb.max.X-a.X) + a.Y
	if y > sb.min.Y && y < sb.max.Y {
		return true
	}
	x := (sb.min.Y-a.Y)/m + a.X
	if x > sb.min.X && x < sb.max.X {
		return true
	}
	x = (sb.max.Y-a.Y)/m + a.X
	if x > sb.min.X && x < sb.max.X {
		return true
	}
	return false
}

// AabbIntersectsBounds reports whether the two axis-aligned boxes overlap.
func (sb *SkeletonBounds) AabbIntersectsBounds(other *SkeletonBounds) bool {
	return sb.min.X < other.max.X && sb.max.X > other.min.X &&
		sb.min.Y < other.max.Y && sb.max.Y > other.min.Y
}

// ContainsPoint returns the first bounding box attachment whose polygon
// contains the point, or nil.
func (sb *SkeletonBounds) ContainsPoint(pt Vector) *BoundingBoxAttachment {
	for i, polygon := range sb.polygons {
		if polygon.ContainsPoint(pt) {
			return sb.boundingBoxes[i]
		}
	}
	return nil
}

// IntersectsSegment returns the first bounding box attachment whose
// polygon the segment crosses, or nil.
func (sb *SkeletonBounds) IntersectsSegment(a, b Vector) *BoundingBoxAttachment {
	for i, polygon := range sb.polygons {
		if polygon.IntersectsSegment(a, b) {
			return sb.boundingBoxes[i]
		}
	}
	return nil
}

// Polygon returns the computed polygon of a bounding box attachment from
// the last Update, or nil.
func (sb *SkeletonBounds) Polygon(boundingBox *BoundingBoxAttachment) *Polygon {
	for i, bb := range sb.boundingBoxes {
		if bb == boundingBox {
			return sb.polygons[i]
		}
	}
	return nil
}
