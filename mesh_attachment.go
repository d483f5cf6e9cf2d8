// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

// MeshAttachment is a textured triangle mesh. Meshes with an empty bone
// list deform rigidly with the slot bone; meshes with the weighted vertex
// encoding skin across multiple bones. A mesh may link to a parent mesh
// and borrow its geometry (including its RegionUVs), keeping only its own
// atlas region, computed UVs and color.
type MeshAttachment struct {
	VertexAttachment

	// Path names the atlas region backing this attachment.
	Path string

	// RegionUVs are the authored UVs in [0,1] across the mesh; UVs are the
	// atlas-space coordinates produced by UpdateUVs.
	RegionUVs []Vector
	UVs       []Vector

	Triangles []int

	HullLength int
	Edges      []int
	Size       Vector
	Color      Color

	// InheritDeform lets deform timelines keyed on the parent mesh drive
	// this mesh too.
	InheritDeform bool

	// Atlas region UV rectangle used by UpdateUVs.
	RegionUV     Vector
	RegionUV2    Vector
	RegionRotate bool

	parentMesh *MeshAttachment
}

// NewMeshAttachment creates an empty mesh attachment.
func NewMeshAttachment(name, path string) *MeshAttachment {
	m := new(MeshAttachment)
	m.name = name
	m.atype = AttachmentMesh
	m.Path = path
	m.Color = ColorWhite
	return m
}

// UpdateUVs maps the authored RegionUVs into the atlas region's UV
// rectangle, compensating for a rotated region.
func (m *MeshAttachment) UpdateUVs() {
	size := m.RegionUV2.Sub(m.RegionUV)

	if cap(m.UVs) < m.WorldVerticesCount {
		m.UVs = make([]Vector, m.WorldVerticesCount)
	}
	m.UVs = m.UVs[:m.WorldVerticesCount]

	if m.RegionRotate {
		for i, ruv := range m.RegionUVs {
			m.UVs[i] = Vector{
				X: m.RegionUV.X + ruv.Y*size.X,
				Y: m.RegionUV.Y + size.Y - ruv.X*size.Y,
			}
		}
	} else {
		for i, ruv := range m.RegionUVs {
			m.UVs[i] = Vector{
				X: m.RegionUV.X + ruv.X*size.X,
				Y: m.RegionUV.Y + ruv.Y*size.Y,
			}
		}
	}
}

// ParentMesh returns the mesh this one links to, or nil.
func (m *MeshAttachment) ParentMesh() *MeshAttachment {
	return m.parentMesh
}

// SetParentMesh links this mesh to a parent and borrows its geometry. The
// slices are shared, not copied; the parent owns them.
func (m *MeshAttachment) SetParentMesh(parentMesh *MeshAttachment) {
	m.parentMesh = parentMesh
	if parentMesh == nil {
		return
	}

	m.WorldVerticesCount = parentMesh.WorldVerticesCount

	m.Bones = parentMesh.Bones
	m.Vertices = parentMesh.Vertices

	m.RegionUVs = parentMesh.RegionUVs
	m.Triangles = parentMesh.Triangles

	m.HullLength = parentMesh.HullLength
	m.Edges = parentMesh.Edges
	m.Size = parentMesh.Size
}
