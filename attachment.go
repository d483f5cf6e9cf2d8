// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

// AttachmentType discriminates the concrete attachment kinds.
type AttachmentType int

const (
	AttachmentRegion AttachmentType = iota
	AttachmentMesh
	AttachmentBoundingBox
	AttachmentPath
)

// Attachment is a visual or geometric payload bound to a slot through a
// skin: a textured quad, a deformable mesh, a bounding box polygon or a
// path spline.
type Attachment interface {
	Name() string
	Type() AttachmentType
}

// baseAttachment carries the identity shared by all attachment kinds.
type baseAttachment struct {
	name  string
	atype AttachmentType
}

func (a *baseAttachment) Name() string {
	return a.name
}

func (a *baseAttachment) Type() AttachmentType {
	return a.atype
}

// VertexAttachment is the shared vertex storage of mesh, bounding-box and
// path attachments.
//
// When Bones is empty, Vertices holds WorldVerticesCount (x,y) pairs in the
// slot bone's local space. Otherwise each logical vertex is encoded in
// Bones as a count N followed by N bone indices, with the matching N
// (x,y,weight) triples stored flat in Vertices; the world point is the
// weighted sum of each bone's transform applied to its (x,y).
type VertexAttachment struct {
	baseAttachment

	Bones              []int
	Vertices           []float32
	WorldVerticesCount int
}

// ComputeWorldVertices fills out with all of the attachment's world-space
// (x,y) pairs for the given slot. out must hold WorldVerticesCount*2
// floats.
func (va *VertexAttachment) ComputeWorldVertices(slot *Slot, out []float32) {
	va.ComputeWorldVerticesRange(0, va.WorldVerticesCount*2, slot, out, 0)
}

// ComputeWorldVerticesRange fills out[offset:offset+count] with world-space
// (x,y) pairs starting at the attachment-local float index start. When the
// slot's AttachmentVertices are present they replace the authored (x,y)
// pairs of a rigid attachment and are added to each bone-local (x,y) of a
// weighted attachment.
func (va *VertexAttachment) ComputeWorldVerticesRange(start, count int, slot *Slot, out []float32, offset int) {
	count += offset
	skeleton := slot.Bone.Skeleton
	x := skeleton.Translation.X
	y := skeleton.Translation.Y
	deform := slot.AttachmentVertices

	if len(va.Bones) == 0 {
		vertices := va.Vertices
		if len(deform) > 0 {
			vertices = nil // read pairs from the deform slice instead
		}
		bone := slot.Bone
		x += bone.WorldPos.X
		y += bone.WorldPos.Y
		for v, w := start, offset; w < count; v, w = v+2, w+2 {
			var vx, vy float32
			if vertices != nil {
				vx, vy = vertices[v], vertices[v+1]
			} else {
				d := deform[v>>1]
				vx, vy = d.X, d.Y
			}
			out[w] = vx*bone.A + vy*bone.B + x
			out[w+1] = vx*bone.C + vy*bone.D + y
		}
		return
	}

	// Skip the runs belonging to the vertices before start.
	v, skip := 0, 0
	for i := 0; i < start; i += 2 {
		n := va.Bones[v]
		v += n + 1
		skip += n
	}

	skeletonBones := skeleton.Bones
	if len(deform) == 0 {
		for w, b := offset, skip*3; w < count; w += 2 {
			wx, wy := x, y
			n := va.Bones[v]
			v++
			n += v
			for ; v < n; v, b = v+1, b+3 {
				bone := skeletonBones[va.Bones[v]]
				vx, vy, weight := va.Vertices[b], va.Vertices[b+1], va.Vertices[b+2]
				wx += (vx*bone.A + vy*bone.B + bone.WorldPos.X) * weight
				wy += (vx*bone.C + vy*bone.D + bone.WorldPos.Y) * weight
			}
			out[w] = wx
			out[w+1] = wy
		}
	} else {
		for w, b, f := offset, skip*3, skip; w < count; w += 2 {
			wx, wy := x, y
			n := va.Bones[v]
			v++
			n += v
			for ; v < n; v, b, f = v+1, b+3, f+1 {
				bone := skeletonBones[va.Bones[v]]
				vx := va.Vertices[b] + deform[f].X
				vy := va.Vertices[b+1] + deform[f].Y
				weight := va.Vertices[b+2]
				wx += (vx*bone.A + vy*bone.B + bone.WorldPos.X) * weight
				wy += (vx*bone.C + vy*bone.D + bone.WorldPos.Y) * weight
			}
			out[w] = wx
			out[w+1] = wy
		}
	}
}

// BoundingBoxAttachment is a polygon used for hit testing via
// SkeletonBounds.
type BoundingBoxAttachment struct {
	VertexAttachment
}

// NewBoundingBoxAttachment creates an empty bounding box attachment.
func NewBoundingBoxAttachment(name string) *BoundingBoxAttachment {
	bb := new(BoundingBoxAttachment)
	bb.name = name
	bb.atype = AttachmentBoundingBox
	return bb
}

// PathAttachment is a piecewise cubic Bezier spline that path constraints
// bind bone chains to. Each control point stores three vertices: the
// incoming handle, the anchor and the outgoing handle.
type PathAttachment struct {
	VertexAttachment

	// Lengths holds the authored cumulative length at the end of each
	// curve; used when ConstantSpeed is false.
	Lengths []float32

	Closed        bool
	ConstantSpeed bool
}

// NewPathAttachment creates an empty path attachment.
func NewPathAttachment(name string) *PathAttachment {
	p := new(PathAttachment)
	p.name = name
	p.atype = AttachmentPath
	return p
}
