// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

// RegionAttachment is a textured quad. The four local corner offsets and
// UVs are precomputed from the authored transform and the atlas region
// metadata so per-frame vertex computation is four matrix applies.
type RegionAttachment struct {
	baseAttachment

	// Path names the atlas region backing this attachment.
	Path string

	Translation Vector
	Rotation    float32
	Scale       Vector
	Size        Vector
	Color       Color

	// Offset holds the four rotated and scaled corner positions local to
	// the slot bone, in the order bottom-left, top-left, top-right,
	// bottom-right. Refreshed by UpdateOffset.
	Offset [4]Vector
	UVs    [4]Vector

	// Atlas region metadata used by UpdateOffset to account for whitespace
	// stripping.
	RegionOffset       Vector
	RegionSize         Vector
	RegionOriginalSize Vector
	RegionRotate       bool
}

// NewRegionAttachment creates a region attachment with identity transforms.
func NewRegionAttachment(name, path string) *RegionAttachment {
	r := new(RegionAttachment)
	r.name = name
	r.atype = AttachmentRegion
	r.Path = path
	r.Scale = Vector{1, 1}
	r.Color = ColorWhite
	return r
}

// SetUVs assigns the four texture coordinates from an atlas region's UV
// rectangle, compensating for a rotated region.
func (r *RegionAttachment) SetUVs(u, v, u2, v2 float32, rotate bool) {
	if rotate {
		r.UVs[1] = Vector{u, v2}
		r.UVs[2] = Vector{u, v}
		r.UVs[3] = Vector{u2, v}
		r.UVs[0] = Vector{u2, v2}
	} else {
		r.UVs[0] = Vector{u, v2}
		r.UVs[1] = Vector{u, v}
		r.UVs[2] = Vector{u2, v}
		r.UVs[3] = Vector{u2, v2}
	}
}

// UpdateOffset recomputes the four local corner offsets from the authored
// transform and region metadata. Call after changing any of them.
func (r *RegionAttachment) UpdateOffset() {
	regionScaleX := r.Size.X / r.RegionOriginalSize.X * r.Scale.X
	regionScaleY := r.Size.Y / r.RegionOriginalSize.Y * r.Scale.Y
	localX := -r.Size.X/2*r.Scale.X + r.RegionOffset.X*regionScaleX
	localY := -r.Size.Y/2*r.Scale.Y + r.RegionOffset.Y*regionScaleY
	localX2 := localX + r.RegionSize.X*regionScaleX
	localY2 := localY + r.RegionSize.Y*regionScaleY
	radians := mgl.DegToRad(r.Rotation)
	cosine, sine := cos(radians), sin(radians)
	localXCos := localX*cosine + r.Translation.X
	localXSin := localX * sine
	localYCos := localY*cosine + r.Translation.Y
	localYSin := localY * sine
	localX2Cos := localX2*cosine + r.Translation.X
	localX2Sin := localX2 * sine
	localY2Cos := localY2*cosine + r.Translation.Y
	localY2Sin := localY2 * sine
	r.Offset[0] = Vector{localXCos - localYSin, localYCos + localXSin}
	r.Offset[1] = Vector{localXCos - localY2Sin, localY2Cos + localXSin}
	r.Offset[2] = Vector{localX2Cos - localY2Sin, localY2Cos + localX2Sin}
	r.Offset[3] = Vector{localX2Cos - localYSin, localYCos + localX2Sin}
}

// ComputeWorldVertices fills out with the quad's four world-space corners
// as eight floats in Offset order.
func (r *RegionAttachment) ComputeWorldVertices(bone *Bone, out []float32) {
	x := bone.Skeleton.Translation.X + bone.WorldPos.X
	y := bone.Skeleton.Translation.Y + bone.WorldPos.Y

	for i, o := range r.Offset {
		out[i*2] = o.X*bone.A + o.Y*bone.B + x
		out[i*2+1] = o.X*bone.C + o.Y*bone.D + y
	}
}
