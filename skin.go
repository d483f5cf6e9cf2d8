// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

// Skin maps (slot index, attachment name) pairs to concrete attachments.
// The entry list keeps authoring order so attachment names can be listed
// per slot.
type Skin struct {
	Name    string
	entries []skinEntry
}

type skinEntry struct {
	slotIndex  int
	name       string
	attachment Attachment
}

// NewSkin creates an empty skin.
func NewSkin(name string) *Skin {
	s := new(Skin)
	s.Name = name
	return s
}

// AddAttachment binds an attachment to a slot under a logical name.
func (s *Skin) AddAttachment(slotIndex int, name string, attachment Attachment) {
	s.entries = append(s.entries, skinEntry{slotIndex, name, attachment})
}

// Attachment returns the attachment bound to the slot under the given name
// or nil if the skin has no such entry.
func (s *Skin) Attachment(slotIndex int, name string) Attachment {
	for i := range s.entries {
		e := &s.entries[i]
		if e.slotIndex == slotIndex && e.name == name {
			return e.attachment
		}
	}
	return nil
}

// AttachmentName returns the name of the attachmentIndex-th entry for the
// slot, or "" if there are not that many entries.
func (s *Skin) AttachmentName(slotIndex int, attachmentIndex int) string {
	i := 0
	for _, e := range s.entries {
		if e.slotIndex == slotIndex {
			if i == attachmentIndex {
				return e.name
			}
			i++
		}
	}
	return ""
}

// attachAll re-points every slot whose current attachment came from
// oldSkin to this skin's attachment of the same name. Slots showing
// attachments from other sources are left alone.
func (s *Skin) attachAll(skeleton *Skeleton, oldSkin *Skin) {
	for _, e := range oldSkin.entries {
		slot := skeleton.Slots[e.slotIndex]
		if slot.Attachment() == e.attachment {
			if replacement := s.Attachment(e.slotIndex, e.name); replacement != nil {
				slot.SetAttachment(replacement)
			}
		}
	}
}
