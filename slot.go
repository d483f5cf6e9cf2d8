// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

// SlotData is the immutable definition of a draw-order slot.
type SlotData struct {
	Index    int
	Name     string
	BoneData *BoneData

	Color Color

	// AttachmentName is the setup-pose attachment, looked up through the
	// active skin when the slot is reset. Empty means no attachment.
	AttachmentName string
}

// NewSlotData creates a slot definition with a white setup tint.
func NewSlotData(index int, name string, boneData *BoneData) *SlotData {
	sd := new(SlotData)
	sd.Index = index
	sd.Name = name
	sd.BoneData = boneData
	sd.Color = ColorWhite
	return sd
}

// Slot is the runtime state of a SlotData: the current tint, the current
// attachment and any per-vertex deform offsets written by deform timelines.
type Slot struct {
	Data *SlotData
	Bone *Bone

	Color Color

	// AttachmentVertices holds deform offsets for the current attachment.
	// It is cleared whenever the attachment changes.
	AttachmentVertices []Vector

	attachment     Attachment
	attachmentTime float32
}

func newSlot(data *SlotData, bone *Bone) *Slot {
	s := new(Slot)
	s.Data = data
	s.Bone = bone
	s.SetToSetupPose()
	return s
}

// Attachment returns the slot's current attachment or nil.
func (s *Slot) Attachment() Attachment {
	return s.attachment
}

// SetAttachment changes the current attachment and resets the deform
// state. Setting the same attachment again is a no-op.
func (s *Slot) SetAttachment(attachment Attachment) {
	if attachment == s.attachment {
		return
	}
	s.attachment = attachment
	s.attachmentTime = s.Bone.Skeleton.Time
	s.AttachmentVertices = s.AttachmentVertices[:0]
}

// SetAttachmentTime rewinds the attachment clock so AttachmentTime reports
// the given value.
func (s *Slot) SetAttachmentTime(time float32) {
	s.attachmentTime = s.Bone.Skeleton.Time - time
}

// AttachmentTime returns the skeleton time elapsed since the current
// attachment was set.
func (s *Slot) AttachmentTime() float32 {
	return s.Bone.Skeleton.Time - s.attachmentTime
}

// SetToSetupPose resets the tint and re-resolves the setup attachment
// through the skeleton's skins.
func (s *Slot) SetToSetupPose() {
	s.Color = s.Data.Color

	if s.Data.AttachmentName == "" {
		s.SetAttachment(nil)
		return
	}

	s.attachment = nil
	s.SetAttachment(s.Bone.Skeleton.AttachmentForSlotIndex(s.Data.Index, s.Data.AttachmentName))
}
