// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"math"
)

///////////////////////////////////////////////////////////////////////////////

// RotateFrame is one keyframe of a RotateTimeline.
type RotateFrame struct {
	Time  float32
	Angle float32
	Curve Curve
}

// RotateTimeline keys a bone's local rotation as a delta from the setup
// pose.
type RotateTimeline struct {
	BoneIndex int
	Frames    []RotateFrame
}

// NewRotateTimeline creates a rotate timeline with framesCount zeroed
// frames.
func NewRotateTimeline(framesCount int) *RotateTimeline {
	return &RotateTimeline{Frames: make([]RotateFrame, framesCount)}
}

// Apply writes the sampled rotation into the bone scaled by alpha.
func (t *RotateTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	frames := t.Frames
	if time < frames[0].Time {
		return
	}

	bone := skeleton.Bones[t.BoneIndex]

	if time >= frames[len(frames)-1].Time {
		amount := bone.Data.Rotation + frames[len(frames)-1].Angle - bone.Rotation
		bone.Rotation += normalizeDegrees(amount) * alpha
		return
	}

	cur := findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })
	curFrame := &frames[cur]
	prevFrame := &frames[cur-1]
	percent := framePercent(&prevFrame.Curve, prevFrame.Time, curFrame.Time, time)

	amount := normalizeDegrees(curFrame.Angle - prevFrame.Angle)
	amount = bone.Data.Rotation + (prevFrame.Angle + amount*percent) - bone.Rotation
	bone.Rotation += normalizeDegrees(amount) * alpha
}

// ClearIdentityFrames drops trailing frames when all angles are equal.
func (t *RotateTimeline) ClearIdentityFrames() {
	angle := t.Frames[0].Angle
	for _, f := range t.Frames[1:] {
		if f.Angle != angle {
			return
		}
	}
	t.Frames = t.Frames[:1]
}

///////////////////////////////////////////////////////////////////////////////

// TranslateFrame is one keyframe of a TranslateTimeline.
type TranslateFrame struct {
	Time        float32
	Translation Vector
	Curve       Curve
}

// TranslateTimeline keys a bone's local translation as a delta from the
// setup pose.
type TranslateTimeline struct {
	BoneIndex int
	Frames    []TranslateFrame
}

// NewTranslateTimeline creates a translate timeline with framesCount
// zeroed frames.
func NewTranslateTimeline(framesCount int) *TranslateTimeline {
	return &TranslateTimeline{Frames: make([]TranslateFrame, framesCount)}
}

// Apply writes the sampled translation into the bone scaled by alpha.
func (t *TranslateTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	frames := t.Frames
	if time < frames[0].Time {
		return
	}

	bone := skeleton.Bones[t.BoneIndex]

	if time >= frames[len(frames)-1].Time {
		last := frames[len(frames)-1].Translation
		bone.Translation.X += (bone.Data.Translation.X + last.X - bone.Translation.X) * alpha
		bone.Translation.Y += (bone.Data.Translation.Y + last.Y - bone.Translation.Y) * alpha
		return
	}

	cur := findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })
	curFrame := &frames[cur]
	prevFrame := &frames[cur-1]
	percent := framePercent(&prevFrame.Curve, prevFrame.Time, curFrame.Time, time)

	bone.Translation.X += (bone.Data.Translation.X +
		prevFrame.Translation.X + (curFrame.Translation.X-prevFrame.Translation.X)*percent -
		bone.Translation.X) * alpha
	bone.Translation.Y += (bone.Data.Translation.Y +
		prevFrame.Translation.Y + (curFrame.Translation.Y-prevFrame.Translation.Y)*percent -
		bone.Translation.Y) * alpha
}

// ClearIdentityFrames drops trailing frames when all translations are
// equal.
func (t *TranslateTimeline) ClearIdentityFrames() {
	translation := t.Frames[0].Translation
	for _, f := range t.Frames[1:] {
		if f.Translation != translation {
			return
		}
	}
	t.Frames = t.Frames[:1]
}

///////////////////////////////////////////////////////////////////////////////

// ScaleFrame is one keyframe of a ScaleTimeline.
type ScaleFrame struct {
	Time  float32
	Scale Vector
	Curve Curve
}

// ScaleTimeline keys a bone's local scale as a factor over the setup pose.
type ScaleTimeline struct {
	BoneIndex int
	Frames    []ScaleFrame
}

// NewScaleTimeline creates a scale timeline with framesCount zeroed
// frames.
func NewScaleTimeline(framesCount int) *ScaleTimeline {
	return &ScaleTimeline{Frames: make([]ScaleFrame, framesCount)}
}

// Apply writes the sampled scale into the bone scaled by alpha.
func (t *ScaleTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	frames := t.Frames
	if time < frames[0].Time {
		return
	}

	bone := skeleton.Bones[t.BoneIndex]

	if time >= frames[len(frames)-1].Time {
		last := frames[len(frames)-1].Scale
		bone.Scale.X += (bone.Data.Scale.X*last.X - bone.Scale.X) * alpha
		bone.Scale.Y += (bone.Data.Scale.Y*last.Y - bone.Scale.Y) * alpha
		return
	}

	cur := findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })
	curFrame := &frames[cur]
	prevFrame := &frames[cur-1]
	percent := framePercent(&prevFrame.Curve, prevFrame.Time, curFrame.Time, time)

	bone.Scale.X += (bone.Data.Scale.X*
		(prevFrame.Scale.X+(curFrame.Scale.X-prevFrame.Scale.X)*percent) -
		bone.Scale.X) * alpha
	bone.Scale.Y += (bone.Data.Scale.Y*
		(prevFrame.Scale.Y+(curFrame.Scale.Y-prevFrame.Scale.Y)*percent) -
		bone.Scale.Y) * alpha
}

// ClearIdentityFrames drops trailing frames when all scales are equal.
func (t *ScaleTimeline) ClearIdentityFrames() {
	scale := t.Frames[0].Scale
	for _, f := range t.Frames[1:] {
		if f.Scale != scale {
			return
		}
	}
	t.Frames = t.Frames[:1]
}

///////////////////////////////////////////////////////////////////////////////

// ShearFrame is one keyframe of a ShearTimeline.
type ShearFrame struct {
	Time  float32
	Shear Vector
	Curve Curve
}

// ShearTimeline keys a bone's local shear as a delta from the setup pose.
type ShearTimeline struct {
	BoneIndex int
	Frames    []ShearFrame
}

// NewShearTimeline creates a shear timeline with framesCount zeroed
// frames.
func NewShearTimeline(framesCount int) *ShearTimeline {
	return &ShearTimeline{Frames: make([]ShearFrame, framesCount)}
}

// Apply writes the sampled shear into the bone scaled by alpha.
func (t *ShearTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	frames := t.Frames
	if time < frames[0].Time {
		return
	}

	bone := skeleton.Bones[t.BoneIndex]

	if time >= frames[len(frames)-1].Time {
		last := frames[len(frames)-1].Shear
		bone.Shear.X += (bone.Data.Shear.X + last.X - bone.Shear.X) * alpha
		bone.Shear.Y += (bone.Data.Shear.Y + last.Y - bone.Shear.Y) * alpha
		return
	}

	cur := findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })
	curFrame := &frames[cur]
	prevFrame := &frames[cur-1]
	percent := framePercent(&prevFrame.Curve, prevFrame.Time, curFrame.Time, time)

	bone.Shear.X += (bone.Data.Shear.X +
		prevFrame.Shear.X + (curFrame.Shear.X-prevFrame.Shear.X)*percent -
		bone.Shear.X) * alpha
	bone.Shear.Y += (bone.Data.Shear.Y +
		prevFrame.Shear.Y + (curFrame.Shear.Y-prevFrame.Shear.Y)*percent -
		bone.Shear.Y) * alpha
}

// ClearIdentityFrames drops trailing frames when all shears are equal.
func (t *ShearTimeline) ClearIdentityFrames() {
	shear := t.Frames[0].Shear
	for _, f := range t.Frames[1:] {
		if f.Shear != shear {
			return
		}
	}
	t.Frames = t.Frames[:1]
}

///////////////////////////////////////////////////////////////////////////////

// ColorFrame is one keyframe of a ColorTimeline.
type ColorFrame struct {
	Time  float32
	Color Color
	Curve Curve
}

// ColorTimeline keys a slot's tint.
type ColorTimeline struct {
	SlotIndex int
	Frames    []ColorFrame
}

// NewColorTimeline creates a color timeline with framesCount zeroed
// frames.
func NewColorTimeline(framesCount int) *ColorTimeline {
	return &ColorTimeline{Frames: make([]ColorFrame, framesCount)}
}

// Apply writes the sampled color into the slot; alpha below one lerps each
// channel toward the sampled color.
func (t *ColorTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	frames := t.Frames
	if time < frames[0].Time {
		return
	}

	var color Color
	if time >= frames[len(frames)-1].Time {
		color = frames[len(frames)-1].Color
	} else {
		cur := findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })
		curFrame := &frames[cur]
		prevFrame := &frames[cur-1]
		percent := framePercent(&prevFrame.Curve, prevFrame.Time, curFrame.Time, time)

		color.R = prevFrame.Color.R + (curFrame.Color.R-prevFrame.Color.R)*percent
		color.G = prevFrame.Color.G + (curFrame.Color.G-prevFrame.Color.G)*percent
		color.B = prevFrame.Color.B + (curFrame.Color.B-prevFrame.Color.B)*percent
		color.A = prevFrame.Color.A + (curFrame.Color.A-prevFrame.Color.A)*percent
	}

	slot := skeleton.Slots[t.SlotIndex]
	if alpha < 1 {
		slot.Color.R += (color.R - slot.Color.R) * alpha
		slot.Color.G += (color.G - slot.Color.G) * alpha
		slot.Color.B += (color.B - slot.Color.B) * alpha
		slot.Color.A += (color.A - slot.Color.A) * alpha
	} else {
		slot.Color = color
	}
}

// ClearIdentityFrames drops trailing frames when all colors are equal.
func (t *ColorTimeline) ClearIdentityFrames() {
	color := t.Frames[0].Color
	for _, f := range t.Frames[1:] {
		if f.Color != color {
			return
		}
	}
	t.Frames = t.Frames[:1]
}

///////////////////////////////////////////////////////////////////////////////

// AttachmentFrame is one keyframe of an AttachmentTimeline.
type AttachmentFrame struct {
	Time           float32
	AttachmentName string
}

// AttachmentTimeline swaps a slot's attachment by name. Frames snap: the
// frame at or before the sampled time wins.
type AttachmentTimeline struct {
	SlotIndex int
	Frames    []AttachmentFrame
}

// NewAttachmentTimeline creates an attachment timeline with framesCount
// zeroed frames.
func NewAttachmentTimeline(framesCount int) *AttachmentTimeline {
	return &AttachmentTimeline{Frames: make([]AttachmentFrame, framesCount)}
}

// Apply sets the slot attachment named by the frame at or before time.
func (t *AttachmentTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	frames := t.Frames
	if time < frames[0].Time {
		return
	}

	var frame *AttachmentFrame
	if time >= frames[len(frames)-1].Time {
		frame = &frames[len(frames)-1]
	} else {
		frame = &frames[findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })-1]
	}

	var attachment Attachment
	if frame.AttachmentName != "" {
		attachment = skeleton.AttachmentForSlotIndex(t.SlotIndex, frame.AttachmentName)
	}
	skeleton.Slots[t.SlotIndex].SetAttachment(attachment)
}

// ClearIdentityFrames drops trailing frames when all names are equal.
func (t *AttachmentTimeline) ClearIdentityFrames() {
	name := t.Frames[0].AttachmentName
	for _, f := range t.Frames[1:] {
		if f.AttachmentName != name {
			return
		}
	}
	t.Frames = t.Frames[:1]
}

///////////////////////////////////////////////////////////////////////////////

// EventFrame is one keyframe of an EventTimeline.
type EventFrame struct {
	Time  float32
	Event Event
}

// EventTimeline collects user events fired between the last applied time
// and the current one.
type EventTimeline struct {
	Frames []EventFrame
}

// NewEventTimeline creates an event timeline with framesCount zeroed
// frames.
func NewEventTimeline(framesCount int) *EventTimeline {
	return &EventTimeline{Frames: make([]EventFrame, framesCount)}
}

// Apply appends every event with lastTime < frame time <= time to events.
// When lastTime > time the animation looped: the range is split into
// (lastTime, +inf) followed by (-inf, time].
func (t *EventTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	if events == nil || len(t.Frames) == 0 {
		return
	}

	frames := t.Frames
	if lastTime > time {
		t.fireRange(lastTime, float32(math.MaxFloat32), events)
		lastTime = -1
	} else if lastTime >= frames[len(frames)-1].Time {
		return
	}
	if time < frames[0].Time {
		return
	}

	t.fireRange(lastTime, time, events)
}

func (t *EventTimeline) fireRange(after, upTo float32, events *[]*Event) {
	frames := t.Frames
	i := findFrame(len(frames), after, func(i int) float32 { return frames[i].Time })
	for ; i < len(frames) && frames[i].Time <= upTo; i++ {
		*events = append(*events, &frames[i].Event)
	}
}

// ClearIdentityFrames is a no-op; an event timeline is never identity.
func (t *EventTimeline) ClearIdentityFrames() {}

///////////////////////////////////////////////////////////////////////////////

// DrawOrderFrame is one keyframe of a DrawOrderTimeline. A nil DrawOrder
// restores the setup order.
type DrawOrderFrame struct {
	Time      float32
	DrawOrder []int
}

// DrawOrderTimeline snaps the skeleton's draw order.
type DrawOrderTimeline struct {
	Frames []DrawOrderFrame
}

// NewDrawOrderTimeline creates a draw-order timeline with framesCount
// zeroed frames.
func NewDrawOrderTimeline(framesCount int) *DrawOrderTimeline {
	return &DrawOrderTimeline{Frames: make([]DrawOrderFrame, framesCount)}
}

// SetFrame assigns one keyframe; drawOrder is copied and may be nil to
// restore the setup order.
func (t *DrawOrderTimeline) SetFrame(frameIndex int, time float32, drawOrder []int) {
	frame := &t.Frames[frameIndex]
	frame.Time = time
	if drawOrder == nil {
		frame.DrawOrder = nil
		return
	}
	frame.DrawOrder = append([]int(nil), drawOrder...)
}

// Apply sets the draw order from the frame at or before time.
func (t *DrawOrderTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	frames := t.Frames
	if time < frames[0].Time {
		return
	}

	var frame *DrawOrderFrame
	if time >= frames[len(frames)-1].Time {
		frame = &frames[len(frames)-1]
	} else {
		frame = &frames[findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })-1]
	}

	if frame.DrawOrder != nil {
		skeleton.SetDrawOrder(frame.DrawOrder)
	} else {
		skeleton.ResetDrawOrder()
	}
}

// ClearIdentityFrames drops trailing frames when every frame carries the
// same order.
func (t *DrawOrderTimeline) ClearIdentityFrames() {
	order := t.Frames[0].DrawOrder
	for _, f := range t.Frames[1:] {
		if !equalIntSlices(order, f.DrawOrder) {
			return
		}
	}
	t.Frames = t.Frames[:1]
}

func equalIntSlices(a, b []int) bool {
	if (a == nil) != (b == nil) || len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

///////////////////////////////////////////////////////////////////////////////

// DeformFrame is one keyframe of a DeformTimeline: a full set of vertex
// offsets for the keyed attachment.
type DeformFrame struct {
	Time     float32
	Vertices []Vector
	Curve    Curve
}

// DeformTimeline keys per-vertex offsets for one attachment of one slot.
// It only applies while the slot shows that attachment, or a mesh that
// inherits its deform from it.
type DeformTimeline struct {
	SlotIndex  int
	Attachment Attachment
	Frames     []DeformFrame
}

// NewDeformTimeline creates a deform timeline with framesCount zeroed
// frames.
func NewDeformTimeline(framesCount int) *DeformTimeline {
	return &DeformTimeline{Frames: make([]DeformFrame, framesCount)}
}

// SetFrame assigns one keyframe; vertices are copied.
func (t *DeformTimeline) SetFrame(frameIndex int, time float32, vertices []Vector) {
	frame := &t.Frames[frameIndex]
	frame.Time = time
	frame.Vertices = append(frame.Vertices[:0], vertices...)
}

// Apply blends the sampled vertex offsets into the slot's deform state.
func (t *DeformTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	frames := t.Frames
	if time < frames[0].Time {
		return
	}

	slot := skeleton.Slots[t.SlotIndex]
	if slot.Attachment() != t.Attachment {
		// The slot shows something else; only a child mesh inheriting this
		// attachment's deform still applies.
		mesh, ok := slot.Attachment().(*MeshAttachment)
		if !ok || !mesh.InheritDeform || Attachment(mesh.ParentMesh()) != t.Attachment {
			return
		}
	}

	vertexCount := len(frames[0].Vertices)
	if len(slot.AttachmentVertices) != vertexCount {
		// The slot's deform state was reset; there is nothing to mix with.
		alpha = 1
		slot.AttachmentVertices = slot.AttachmentVertices[:0]
	}
	for len(slot.AttachmentVertices) < vertexCount {
		slot.AttachmentVertices = append(slot.AttachmentVertices, Vector{})
	}
	slotVertices := slot.AttachmentVertices

	if time >= frames[len(frames)-1].Time {
		last := frames[len(frames)-1].Vertices
		if alpha < 1 {
			for i := range slotVertices {
				slotVertices[i].X += (last[i].X - slotVertices[i].X) * alpha
				slotVertices[i].Y += (last[i].Y - slotVertices[i].Y) * alpha
			}
		} else {
			copy(slotVertices, last)
		}
		return
	}

	cur := findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })
	curFrame := &frames[cur]
	prevFrame := &frames[cur-1]
	percent := framePercent(&prevFrame.Curve, prevFrame.Time, curFrame.Time, time)

	prevVertices := prevFrame.Vertices
	curVertices := curFrame.Vertices

	if alpha < 1 {
		for i := range slotVertices {
			px, py := prevVertices[i].X, prevVertices[i].Y
			slotVertices[i].X += (px + (curVertices[i].X-px)*percent - slotVertices[i].X) * alpha
			slotVertices[i].Y += (py + (curVertices[i].Y-py)*percent - slotVertices[i].Y) * alpha
		}
	} else {
		for i := range slotVertices {
			px, py := prevVertices[i].X, prevVertices[i].Y
			slotVertices[i].X = px + (curVertices[i].X-px)*percent
			slotVertices[i].Y = py + (curVertices[i].Y-py)*percent
		}
	}
}

// ClearIdentityFrames drops trailing frames when every frame carries the
// same vertices.
func (t *DeformTimeline) ClearIdentityFrames() {
	vertices := t.Frames[0].Vertices
	for _, f := range t.Frames[1:] {
		if len(f.Vertices) != len(vertices) {
			return
		}
		for i := range vertices {
			if f.Vertices[i] != vertices[i] {
				return
			}
		}
	}
	t.Frames = t.Frames[:1]
}

///////////////////////////////////////////////////////////////////////////////

// IkConstraintFrame is one keyframe of an IkConstraintTimeline.
type IkConstraintFrame struct {
	Time          float32
	Mix           float32
	BendDirection int
	Curve         Curve
}

// IkConstraintTimeline keys an IK constraint's mix and bend direction. The
// mix lerps; the bend direction snaps from the previous frame.
type IkConstraintTimeline struct {
	IkConstraintIndex int
	Frames            []IkConstraintFrame
}

// NewIkConstraintTimeline creates an IK timeline with framesCount zeroed
// frames.
func NewIkConstraintTimeline(framesCount int) *IkConstraintTimeline {
	return &IkConstraintTimeline{Frames: make([]IkConstraintFrame, framesCount)}
}

// Apply writes the sampled mix and bend direction into the constraint.
func (t *IkConstraintTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	frames := t.Frames
	if time < frames[0].Time {
		return
	}

	constraint := skeleton.IkConstraints[t.IkConstraintIndex]

	if time >= frames[len(frames)-1].Time {
		last := &frames[len(frames)-1]
		constraint.Mix += (last.Mix - constraint.Mix) * alpha
		constraint.BendDirection = last.BendDirection
		return
	}

	cur := findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })
	curFrame := &frames[cur]
	prevFrame := &frames[cur-1]
	percent := framePercent(&prevFrame.Curve, prevFrame.Time, curFrame.Time, time)

	mix := prevFrame.Mix + (curFrame.Mix-prevFrame.Mix)*percent
	constraint.Mix += (mix - constraint.Mix) * alpha
	constraint.BendDirection = prevFrame.BendDirection
}

// ClearIdentityFrames drops trailing frames when all mixes and bend
// directions are equal.
func (t *IkConstraintTimeline) ClearIdentityFrames() {
	mix := t.Frames[0].Mix
	bendDirection := t.Frames[0].BendDirection
	for _, f := range t.Frames[1:] {
		if f.Mix != mix || f.BendDirection != bendDirection {
			return
		}
	}
	t.Frames = t.Frames[:1]
}

///////////////////////////////////////////////////////////////////////////////

// TransformConstraintFrame is one keyframe of a
// TransformConstraintTimeline.
type TransformConstraintFrame struct {
	Time         float32
	RotateMix    float32
	TranslateMix float32
	ScaleMix     float32
	ShearMix     float32
	Curve        Curve
}

// TransformConstraintTimeline keys a transform constraint's four mixes.
type TransformConstraintTimeline struct {
	TransformConstraintIndex int
	Frames                   []TransformConstraintFrame
}

// NewTransformConstraintTimeline creates a transform constraint timeline
// with framesCount zeroed frames.
func NewTransformConstraintTimeline(framesCount int) *TransformConstraintTimeline {
	return &TransformConstraintTimeline{Frames: make([]TransformConstraintFrame, framesCount)}
}

// Apply writes the sampled mixes into the constraint scaled by alpha.
func (t *TransformConstraintTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	frames := t.Frames
	if time < frames[0].Time {
		return
	}

	constraint := skeleton.TransformConstraints[t.TransformConstraintIndex]

	if time >= frames[len(frames)-1].Time {
		last := &frames[len(frames)-1]
		constraint.RotateMix += (last.RotateMix - constraint.RotateMix) * alpha
		constraint.TranslateMix += (last.TranslateMix - constraint.TranslateMix) * alpha
		constraint.ScaleMix += (last.ScaleMix - constraint.ScaleMix) * alpha
		constraint.ShearMix += (last.ShearMix - constraint.ShearMix) * alpha
		return
	}

	cur := findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })
	curFrame := &frames[cur]
	prevFrame := &frames[cur-1]
	percent := framePercent(&prevFrame.Curve, prevFrame.Time, curFrame.Time, time)

	rotate := prevFrame.RotateMix
	translate := prevFrame.TranslateMix
	scale := prevFrame.ScaleMix
	shear := prevFrame.ShearMix
	constraint.RotateMix += (rotate + (curFrame.RotateMix-rotate)*percent - constraint.RotateMix) * alpha
	constraint.TranslateMix += (translate + (curFrame.TranslateMix-translate)*percent - constraint.TranslateMix) * alpha
	constraint.ScaleMix += (scale + (curFrame.ScaleMix-scale)*percent - constraint.ScaleMix) * alpha
	constraint.ShearMix += (shear + (curFrame.ShearMix-shear)*percent - constraint.ShearMix) * alpha
}

// ClearIdentityFrames drops trailing frames when all four mixes are equal.
func (t *TransformConstraintTimeline) ClearIdentityFrames() {
	first := t.Frames[0]
	for _, f := range t.Frames[1:] {
		if f.RotateMix != first.RotateMix || f.TranslateMix != first.TranslateMix ||
			f.ScaleMix != first.ScaleMix || f.ShearMix != first.ShearMix {
			return
		}
	}
	t.Frames = t.Frames[:1]
}

///////////////////////////////////////////////////////////////////////////////

// PathConstraintValueFrame is one keyframe of a single-value path
// constraint timeline.
type PathConstraintValueFrame struct {
	Time  float32
	Value float32
	Curve Curve
}

// applyPathValue lerps the keyed scalar into the constraint field.
func applyPathValue(frames []PathConstraintValueFrame, time, alpha float32, value *float32) {
	if time < frames[0].Time {
		return
	}

	if time >= frames[len(frames)-1].Time {
		*value += (frames[len(frames)-1].Value - *value) * alpha
		return
	}

	cur := findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })
	curFrame := &frames[cur]
	prevFrame := &frames[cur-1]
	percent := framePercent(&prevFrame.Curve, prevFrame.Time, curFrame.Time, time)

	v := prevFrame.Value + (curFrame.Value-prevFrame.Value)*percent
	*value += (v - *value) * alpha
}

func clearIdentityValueFrames(frames []PathConstraintValueFrame) []PathConstraintValueFrame {
	value := frames[0].Value
	for _, f := range frames[1:] {
		if f.Value != value {
			return frames
		}
	}
	return frames[:1]
}

// PathConstraintPositionTimeline keys a path constraint's position.
type PathConstraintPositionTimeline struct {
	PathConstraintIndex int
	Frames              []PathConstraintValueFrame
}

// NewPathConstraintPositionTimeline creates a position timeline with
// framesCount zeroed frames.
func NewPathConstraintPositionTimeline(framesCount int) *PathConstraintPositionTimeline {
	return &PathConstraintPositionTimeline{Frames: make([]PathConstraintValueFrame, framesCount)}
}

// Apply writes the sampled position into the constraint scaled by alpha.
func (t *PathConstraintPositionTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	constraint := skeleton.PathConstraints[t.PathConstraintIndex]
	applyPathValue(t.Frames, time, alpha, &constraint.Position)
}

// ClearIdentityFrames drops trailing frames when all values are equal.
func (t *PathConstraintPositionTimeline) ClearIdentityFrames() {
	t.Frames = clearIdentityValueFrames(t.Frames)
}

// PathConstraintSpacingTimeline keys a path constraint's spacing.
type PathConstraintSpacingTimeline struct {
	PathConstraintIndex int
	Frames              []PathConstraintValueFrame
}

// NewPathConstraintSpacingTimeline creates a spacing timeline with
// framesCount zeroed frames.
func NewPathConstraintSpacingTimeline(framesCount int) *PathConstraintSpacingTimeline {
	return &PathConstraintSpacingTimeline{Frames: make([]PathConstraintValueFrame, framesCount)}
}

// Apply writes the sampled spacing into the constraint scaled by alpha.
func (t *PathConstraintSpacingTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	constraint := skeleton.PathConstraints[t.PathConstraintIndex]
	applyPathValue(t.Frames, time, alpha, &constraint.Spacing)
}

// ClearIdentityFrames drops trailing frames when all values are equal.
func (t *PathConstraintSpacingTimeline) ClearIdentityFrames() {
	t.Frames = clearIdentityValueFrames(t.Frames)
}

///////////////////////////////////////////////////////////////////////////////

// PathConstraintMixFrame is one keyframe of a PathConstraintMixTimeline.
type PathConstraintMixFrame struct {
	Time         float32
	RotateMix    float32
	TranslateMix float32
	Curve        Curve
}

// PathConstraintMixTimeline keys a path constraint's rotate and translate
// mixes.
type PathConstraintMixTimeline struct {
	PathConstraintIndex int
	Frames              []PathConstraintMixFrame
}

// NewPathConstraintMixTimeline creates a mix timeline with framesCount
// zeroed frames.
func NewPathConstraintMixTimeline(framesCount int) *PathConstraintMixTimeline {
	return &PathConstraintMixTimeline{Frames: make([]PathConstraintMixFrame, framesCount)}
}

// Apply writes the sampled mixes into the constraint scaled by alpha.
func (t *PathConstraintMixTimeline) Apply(skeleton *Skeleton, lastTime, time float32, events *[]*Event, alpha float32) {
	frames := t.Frames
	if time < frames[0].Time {
		return
	}

	constraint := skeleton.PathConstraints[t.PathConstraintIndex]

	if time >= frames[len(frames)-1].Time {
		last := &frames[len(frames)-1]
		constraint.RotateMix += (last.RotateMix - constraint.RotateMix) * alpha
		constraint.TranslateMix += (last.TranslateMix - constraint.TranslateMix) * alpha
		return
	}

	cur := findFrame(len(frames), time, func(i int) float32 { return frames[i].Time })
	curFrame := &frames[cur]
	prevFrame := &frames[cur-1]
	percent := framePercent(&prevFrame.Curve, prevFrame.Time, curFrame.Time, time)

	rotate := prevFrame.RotateMix
	translate := prevFrame.TranslateMix
	constraint.RotateMix += (rotate + (curFrame.RotateMix-rotate)*percent - constraint.RotateMix) * alpha
	constraint.TranslateMix += (translate + (curFrame.TranslateMix-translate)*percent - constraint.TranslateMix) * alpha
}

// ClearIdentityFrames drops trailing frames when both mixes are equal.
func (t *PathConstraintMixTimeline) ClearIdentityFrames() {
	first := t.Frames[0]
	for _, f := range t.Frames[1:] {
		if f.RotateMix != first.RotateMix || f.TranslateMix != first.TranslateMix {
			return
		}
	}
	t.Frames = t.Frames[:1]
}
