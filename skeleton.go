// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

// poseUpdater is one step of the precomputed update cache: either a bone
// world-transform update or a constraint application.
type poseUpdater interface {
	updatePose()
}

// Skeleton is the runtime instance of a SkeletonData: the mutable pose.
// A Skeleton must be confined to one goroutine at a time; the definition
// it points at is immutable and can be shared freely.
type Skeleton struct {
	Data *SkeletonData

	Bones []*Bone
	Slots []*Slot

	// DrawOrder lists the slots in render order. It is a separate slice
	// that starts in setup (Slots) order until a draw-order timeline or
	// SetDrawOrder reorders it.
	DrawOrder []*Slot

	IkConstraints        []*IkConstraint
	TransformConstraints []*TransformConstraint
	PathConstraints      []*PathConstraint

	// Translation offsets every computed world vertex; a host can use it
	// to place the skeleton without touching the root bone.
	Translation Vector
	Color       Color
	Time        float32
	FlipX       bool
	FlipY       bool

	skin                *Skin
	updateCache         []poseUpdater
	ikConstraintsSorted []*IkConstraint
	yDown               bool
}

// NewSkeleton creates the runtime pose for a skeleton definition. The
// Y-axis convention flag is snapshotted here; change it with SetYDown
// before creating skeletons.
func NewSkeleton(data *SkeletonData) *Skeleton {
	skel := new(Skeleton)
	skel.Data = data
	skel.Color = ColorWhite
	skel.yDown = yDown

	skel.Bones = make([]*Bone, 0, len(data.Bones))
	for _, bd := range data.Bones {
		var parent *Bone
		if bd.Parent != nil {
			parent = skel.Bones[bd.Parent.Index]
		}
		bone := newBone(bd, skel, parent)
		if parent != nil {
			parent.Children = append(parent.Children, bone)
		}
		skel.Bones = append(skel.Bones, bone)
	}

	skel.Slots = make([]*Slot, 0, len(data.Slots))
	skel.DrawOrder = make([]*Slot, 0, len(data.Slots))
	for _, sd := range data.Slots {
		slot := newSlot(sd, skel.Bones[sd.BoneData.Index])
		skel.Slots = append(skel.Slots, slot)
		skel.DrawOrder = append(skel.DrawOrder, slot)
	}

	for _, ikd := range data.IkConstraints {
		skel.IkConstraints = append(skel.IkConstraints, newIkConstraint(ikd, skel))
	}
	for _, tcd := range data.TransformConstraints {
		skel.TransformConstraints = append(skel.TransformConstraints, newTransformConstraint(tcd, skel))
	}
	for _, pcd := range data.PathConstraints {
		skel.PathConstraints = append(skel.PathConstraints, newPathConstraint(pcd, skel))
	}

	skel.UpdateCache()
	return skel
}

// UpdateCache rebuilds the ordered list of bone updates and constraint
// applications. Call after changing the active skin or anything that
// affects which bones a constraint can reach.
func (skel *Skeleton) UpdateCache() {
	skel.updateCache = skel.updateCache[:0]

	for _, bone := range skel.Bones {
		bone.sorted = false
	}

	// IK constraints run first, shallowest chains first. Insertion sort
	// keeps authoring order for equal levels.
	sorted := skel.ikConstraintsSorted[:0]
	sorted = append(sorted, skel.IkConstraints...)
	for _, ik := range sorted {
		level := 0
		for bone := ik.Bones[0].Parent; bone != nil; bone = bone.Parent {
			level++
		}
		ik.level = level
	}
	for i := 1; i < len(sorted); i++ {
		ik := sorted[i]
		ii := i - 1
		for ; ii >= 0; ii-- {
			if sorted[ii].level <= ik.level {
				break
			}
			sorted[ii+1] = sorted[ii]
		}
		sorted[ii+1] = ik
	}
	skel.ikConstraintsSorted = sorted

	for _, ik := range sorted {
		skel.sortBone(ik.Target)

		constrained := ik.Bones
		parent := constrained[0]
		skel.sortBone(parent)

		skel.updateCache = append(skel.updateCache, ik)

		sortReset(parent.Children)
		constrained[len(constrained)-1].sorted = true
	}

	for _, constraint := range skel.PathConstraints {
		slot := constraint.Target
		slotIndex := slot.Data.Index
		slotBone := slot.Bone

		// The target slot's attachment can change at runtime, so cover the
		// path attachments of every skin that could be activated.
		if skel.skin != nil {
			skel.sortPathConstraintAttachment(skel.skin, slotIndex, slotBone)
		}
		if skel.Data.DefaultSkin != nil && skel.Data.DefaultSkin != skel.skin {
			skel.sortPathConstraintAttachment(skel.Data.DefaultSkin, slotIndex, slotBone)
		}
		for _, skin := range skel.Data.Skins {
			skel.sortPathConstraintAttachment(skin, slotIndex, slotBone)
		}
		skel.sortPathConstraintAttachmentBones(slot.Attachment(), slotBone)

		for _, bone := range constraint.Bones {
			skel.sortBone(bone)
		}

		skel.updateCache = append(skel.updateCache, constraint)

		for _, bone := range constraint.Bones {
			sortReset(bone.Children)
		}
		for _, bone := range constraint.Bones {
			bone.sorted = true
		}
	}

	for _, constraint := range skel.TransformConstraints {
		skel.sortBone(constraint.Target)

		for _, bone := range constraint.Bones {
			skel.sortBone(bone)
		}

		skel.updateCache = append(skel.updateCache, constraint)

		for _, bone := range constraint.Bones {
			sortReset(bone.Children)
		}
		for _, bone := range constraint.Bones {
			bone.sorted = true
		}
	}

	for _, bone := range skel.Bones {
		skel.sortBone(bone)
	}
}

func (skel *Skeleton) sortBone(bone *Bone) {
	if bone.sorted {
		return
	}
	if bone.Parent != nil {
		skel.sortBone(bone.Parent)
	}
	bone.sorted = true
	skel.updateCache = append(skel.updateCache, bone)
}

func (skel *Skeleton) sortPathConstraintAttachment(skin *Skin, slotIndex int, slotBone *Bone) {
	for i := range skin.entries {
		e := &skin.entries[i]
		if e.slotIndex == slotIndex {
			skel.sortPathConstraintAttachmentBones(e.attachment, slotBone)
		}
	}
}

func (skel *Skeleton) sortPathConstraintAttachmentBones(attachment Attachment, slotBone *Bone) {
	path, ok := attachment.(*PathAttachment)
	if !ok {
		return
	}
	if len(path.Bones) == 0 {
		skel.sortBone(slotBone)
		return
	}

	// Walk the weighted encoding: a count, then that many bone indices.
	pathBones := path.Bones
	for i := 0; i < len(pathBones); {
		n := pathBones[i]
		i++
		for lim := i + n; i < lim; i++ {
			skel.sortBone(skel.Bones[pathBones[i]])
		}
	}
}

func sortReset(bones []*Bone) {
	for _, bone := range bones {
		if bone.sorted {
			sortReset(bone.Children)
		}
		bone.sorted = false
	}
}

// UpdateWorldTransform walks the update cache, computing bone world
// transforms and applying constraints in dependency order.
func (skel *Skeleton) UpdateWorldTransform() {
	for _, entry := range skel.updateCache {
		entry.updatePose()
	}
}

// Update advances the skeleton clock used for attachment timing.
func (skel *Skeleton) Update(delta float32) {
	skel.Time += delta
}

// SetToSetupPose resets bones, constraints, slots and draw order to the
// setup pose.
func (skel *Skeleton) SetToSetupPose() {
	skel.SetBonesToSetupPose()
	skel.SetSlotsToSetupPose()
}

// SetBonesToSetupPose resets all bone local transforms and constraint
// mixes to their definitions.
func (skel *Skeleton) SetBonesToSetupPose() {
	for _, bone := range skel.Bones {
		bone.SetToSetupPose()
	}
	for _, ik := range skel.IkConstraints {
		ik.BendDirection = ik.Data.BendDirection
		ik.Mix = ik.Data.Mix
	}
	for _, tc := range skel.TransformConstraints {
		tc.RotateMix = tc.Data.RotateMix
		tc.TranslateMix = tc.Data.TranslateMix
		tc.ScaleMix = tc.Data.ScaleMix
		tc.ShearMix = tc.Data.ShearMix
	}
	for _, pc := range skel.PathConstraints {
		pc.Position = pc.Data.Position
		pc.Spacing = pc.Data.Spacing
		pc.RotateMix = pc.Data.RotateMix
		pc.TranslateMix = pc.Data.TranslateMix
	}
}

// SetSlotsToSetupPose resets slot colors and attachments and restores the
// setup draw order.
func (skel *Skeleton) SetSlotsToSetupPose() {
	skel.DrawOrder = skel.DrawOrder[:0]
	for _, slot := range skel.Slots {
		slot.SetToSetupPose()
		skel.DrawOrder = append(skel.DrawOrder, slot)
	}
}

// ResetDrawOrder restores the setup draw order without touching slot
// state.
func (skel *Skeleton) ResetDrawOrder() {
	skel.DrawOrder = skel.DrawOrder[:0]
	for _, slot := range skel.Slots {
		skel.DrawOrder = append(skel.DrawOrder, slot)
	}
}

// SetDrawOrder reorders the slots for rendering; drawOrder[i] is the slot
// index to draw at position i and must have one entry per slot.
func (skel *Skeleton) SetDrawOrder(drawOrder []int) {
	for i, slotIndex := range drawOrder {
		skel.DrawOrder[i] = skel.Slots[slotIndex]
	}
}

// FindBone returns the runtime bone with the given name or nil.
func (skel *Skeleton) FindBone(name string) *Bone {
	for _, b := range skel.Bones {
		if b.Data.Name == name {
			return b
		}
	}
	return nil
}

// FindBoneIndex returns the index of the named bone or -1.
func (skel *Skeleton) FindBoneIndex(name string) int {
	for i, b := range skel.Bones {
		if b.Data.Name == name {
			return i
		}
	}
	return -1
}

// FindSlot returns the runtime slot with the given name or nil.
func (skel *Skeleton) FindSlot(name string) *Slot {
	for _, s := range skel.Slots {
		if s.Data.Name == name {
			return s
		}
	}
	return nil
}

// FindSlotIndex returns the index of the named slot or -1.
func (skel *Skeleton) FindSlotIndex(name string) int {
	for i, s := range skel.Slots {
		if s.Data.Name == name {
			return i
		}
	}
	return -1
}

// FindIkConstraint returns the runtime IK constraint with the given name
// or nil.
func (skel *Skeleton) FindIkConstraint(name string) *IkConstraint {
	for _, c := range skel.IkConstraints {
		if c.Data.Name == name {
			return c
		}
	}
	return nil
}

// FindTransformConstraint returns the runtime transform constraint with
// the given name or nil.
func (skel *Skeleton) FindTransformConstraint(name string) *TransformConstraint {
	for _, c := range skel.TransformConstraints {
		if c.Data.Name == name {
			return c
		}
	}
	return nil
}

// FindPathConstraint returns the runtime path constraint with the given
// name or nil.
func (skel *Skeleton) FindPathConstraint(name string) *PathConstraint {
	for _, c := range skel.PathConstraints {
		if c.Data.Name == name {
			return c
		}
	}
	return nil
}

// Skin returns the active skin or nil.
func (skel *Skeleton) Skin() *Skin {
	return skel.skin
}

// SetSkinByName activates the named skin, or clears the active skin when
// name is empty. Returns false if no skin has that name.
func (skel *Skeleton) SetSkinByName(name string) bool {
	if name == "" {
		skel.SetSkin(nil)
		return true
	}
	skin := skel.Data.FindSkin(name)
	if skin == nil {
		return false
	}
	skel.SetSkin(skin)
	return true
}

// SetSkin activates a skin. If a skin was already active, slots showing
// its attachments are re-pointed to the new skin's attachments of the same
// name; otherwise slots with a setup attachment name resolve it through
// the new skin.
func (skel *Skeleton) SetSkin(skin *Skin) {
	if skin != nil {
		if skel.skin != nil {
			skin.attachAll(skel, skel.skin)
		} else {
			for i, slot := range skel.Slots {
				if slot.Data.AttachmentName == "" {
					continue
				}
				if attachment := skin.Attachment(i, slot.Data.AttachmentName); attachment != nil {
					slot.SetAttachment(attachment)
				}
			}
		}
	}
	skel.skin = skin
}

// AttachmentForSlotName resolves an attachment by slot name through the
// active skin with fallback to the default skin. Returns nil when not
// found.
func (skel *Skeleton) AttachmentForSlotName(slotName, attachmentName string) Attachment {
	return skel.AttachmentForSlotIndex(skel.Data.FindSlotIndex(slotName), attachmentName)
}

// AttachmentForSlotIndex resolves an attachment by slot index through the
// active skin with fallback to the default skin. Returns nil when not
// found.
func (skel *Skeleton) AttachmentForSlotIndex(slotIndex int, attachmentName string) Attachment {
	if slotIndex == -1 {
		return nil
	}
	if skel.skin != nil {
		if attachment := skel.skin.Attachment(slotIndex, attachmentName); attachment != nil {
			return attachment
		}
	}
	if skel.Data.DefaultSkin != nil {
		if attachment := skel.Data.DefaultSkin.Attachment(slotIndex, attachmentName); attachment != nil {
			return attachment
		}
	}
	return nil
}

// SetAttachment changes the named slot's attachment, resolving the
// attachment name through the skins. An empty attachment name clears the
// slot. Returns false if the slot does not exist or the attachment cannot
// be resolved.
func (skel *Skeleton) SetAttachment(slotName, attachmentName string) bool {
	for i, slot := range skel.Slots {
		if slot.Data.Name != slotName {
			continue
		}
		if attachmentName == "" {
			slot.SetAttachment(nil)
			return true
		}
		attachment := skel.AttachmentForSlotIndex(i, attachmentName)
		if attachment == nil {
			return false
		}
		slot.SetAttachment(attachment)
		return true
	}
	return false
}

func (b *Bone) updatePose() {
	b.UpdateWorldTransform()
}
