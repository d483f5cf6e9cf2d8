// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

// SkeletonData is the immutable definition a loader produces: the full rig
// description plus its skins, events, animations and constraints. It can
// be shared between any number of Skeleton instances and across threads.
type SkeletonData struct {
	Version string
	Hash    string

	Size Vector

	Bones []*BoneData
	Slots []*SlotData

	Skins       []*Skin
	DefaultSkin *Skin

	Events     []*EventData
	Animations []*Animation

	IkConstraints        []*IkConstraintData
	TransformConstraints []*TransformConstraintData
	PathConstraints      []*PathConstraintData
}

// FindBone returns the bone definition with the given name or nil.
func (sd *SkeletonData) FindBone(name string) *BoneData {
	for _, b := range sd.Bones {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// FindBoneIndex returns the index of the named bone or -1.
func (sd *SkeletonData) FindBoneIndex(name string) int {
	for i, b := range sd.Bones {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// FindSlot returns the slot definition with the given name or nil.
func (sd *SkeletonData) FindSlot(name string) *SlotData {
	for _, s := range sd.Slots {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// FindSlotIndex returns the index of the named slot or -1.
func (sd *SkeletonData) FindSlotIndex(name string) int {
	for i, s := range sd.Slots {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// FindSkin returns the skin with the given name or nil.
func (sd *SkeletonData) FindSkin(name string) *Skin {
	for _, s := range sd.Skins {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// FindEvent returns the event definition with the given name or nil.
func (sd *SkeletonData) FindEvent(name string) *EventData {
	for _, e := range sd.Events {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// FindAnimation returns the animation with the given name or nil.
func (sd *SkeletonData) FindAnimation(name string) *Animation {
	for _, a := range sd.Animations {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// FindIkConstraint returns the IK constraint definition with the given
// name or nil.
func (sd *SkeletonData) FindIkConstraint(name string) *IkConstraintData {
	for _, c := range sd.IkConstraints {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindTransformConstraint returns the transform constraint definition with
// the given name or nil.
func (sd *SkeletonData) FindTransformConstraint(name string) *TransformConstraintData {
	for _, c := range sd.TransformConstraints {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindPathConstraint returns the path constraint definition with the given
// name or nil.
func (sd *SkeletonData) FindPathConstraint(name string) *PathConstraintData {
	for _, c := range sd.PathConstraints {
		if c.Name == name {
			return c
		}
	}
	return nil
}
