// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

import (
	"github.com/tbogdala/groggy"
)

// EventType identifies the kind of callback delivered to a Listener.
type EventType int

const (
	// AnimStart fires when a track entry becomes current.
	AnimStart EventType = iota

	// AnimEnd fires when a track entry is replaced or its track cleared.
	AnimEnd

	// AnimComplete fires each time an animation finishes a loop or a
	// non-looping animation reaches its end time.
	AnimComplete

	// AnimEvent carries a user event fired by an event timeline.
	AnimEvent
)

// Listener receives playback notifications. event is non-nil only for
// AnimEvent; loopCount is meaningful only for AnimComplete.
type Listener func(state *AnimationState, trackIndex int, eventType EventType, event *Event, loopCount int)

// TrackEntry is one playback record on an AnimationState track. The
// current entry owns its previous chain (the animation being mixed out)
// and its next chain (queued animations).
type TrackEntry struct {
	Animation *Animation

	Loop      bool
	Delay     float32
	Time      float32
	LastTime  float32
	EndTime   float32
	TimeScale float32

	MixTime     float32
	MixDuration float32
	Mix         float32

	// Listener receives this entry's notifications before the state-wide
	// listener.
	Listener Listener

	state    *AnimationState
	previous *TrackEntry
	next     *TrackEntry
}

// Previous returns the entry being crossfaded out, or nil.
func (e *TrackEntry) Previous() *TrackEntry {
	return e.previous
}

// Next returns the queued entry that follows this one, or nil.
func (e *TrackEntry) Next() *TrackEntry {
	return e.next
}

// TrackEntryFactory allocates and recycles track entries. The default
// factory allocates from the heap; TrackEntryPool recycles from fixed-size
// pages.
type TrackEntryFactory interface {
	NewEntry(state *AnimationState, animation *Animation) *TrackEntry
	FreeEntry(entry *TrackEntry)
}

type heapTrackEntryFactory struct{}

func (heapTrackEntryFactory) NewEntry(state *AnimationState, animation *Animation) *TrackEntry {
	return newTrackEntry(state, animation)
}

func (heapTrackEntryFactory) FreeEntry(entry *TrackEntry) {}

func newTrackEntry(state *AnimationState, animation *Animation) *TrackEntry {
	e := new(TrackEntry)
	e.state = state
	e.Animation = animation
	e.LastTime = -1
	e.TimeScale = 1
	e.Mix = 1
	return e
}

// AnimationState is a multi-track animation mixer: each track plays one
// animation, optionally crossfading from the previous one and queueing
// followers. Apply composes the tracks into a skeleton in index order.
type AnimationState struct {
	Data *AnimationStateData

	TimeScale float32
	Listener  Listener

	// Tracks is sparse; entries can be nil.
	Tracks []*TrackEntry

	factory TrackEntryFactory
	events  []*Event
}

// NewAnimationState creates an animation state with heap-allocated track
// entries.
func NewAnimationState(data *AnimationStateData) *AnimationState {
	return NewAnimationStateWithFactory(data, heapTrackEntryFactory{})
}

// NewAnimationStateWithFactory creates an animation state that allocates
// track entries through the given factory.
func NewAnimationStateWithFactory(data *AnimationStateData, factory TrackEntryFactory) *AnimationState {
	s := new(AnimationState)
	s.Data = data
	s.TimeScale = 1
	s.factory = factory
	s.events = make([]*Event, 0, 64)
	return s
}

// freeEntry releases an entry and, recursively, the previous chain it
// owns.
func (s *AnimationState) freeEntry(entry *TrackEntry) {
	if entry == nil {
		return
	}
	if entry.previous != nil {
		s.freeEntry(entry.previous)
		entry.previous = nil
	}
	s.factory.FreeEntry(entry)
}

// freeEntryChain releases an entry, its previous chain and every queued
// follower.
func (s *AnimationState) freeEntryChain(entry *TrackEntry) {
	for entry != nil {
		next := entry.next
		s.freeEntry(entry)
		entry = next
	}
}

// Update advances all track clocks by delta seconds, promotes queued
// entries whose delay expired and retires finished non-looping entries.
func (s *AnimationState) Update(delta float32) {
	delta *= s.TimeScale
	for i := 0; i < len(s.Tracks); i++ {
		current := s.Tracks[i]
		if current == nil {
			continue
		}

		current.Time += delta * current.TimeScale
		if current.previous != nil {
			previousDelta := delta * current.previous.TimeScale
			current.previous.Time += previousDelta
			current.MixTime += previousDelta
		}

		if current.next != nil {
			current.next.Time = current.LastTime - current.next.Delay
			if current.next.Time >= 0 {
				s.setCurrent(i, current.next)
			}
		} else if !current.Loop && current.LastTime >= current.EndTime {
			// A non-looping animation past its end with nothing queued
			// releases the track.
			s.ClearTrack(i)
		}
	}
}

// Apply poses the skeleton from every track in index order, draining
// fired events through the listeners.
func (s *AnimationState) Apply(skeleton *Skeleton) {
	for i := 0; i < len(s.Tracks); i++ {
		current := s.Tracks[i]
		if current == nil {
			continue
		}

		s.events = s.events[:0]

		time := current.Time
		if !current.Loop && time > current.EndTime {
			time = current.EndTime
		}

		previous := current.previous
		if previous == nil {
			current.Animation.Mix(skeleton, current.LastTime, time, current.Loop, &s.events, current.Mix)
		} else {
			alpha := current.MixTime / current.MixDuration * current.Mix

			previousTime := previous.Time
			if !previous.Loop && previousTime > previous.EndTime {
				previousTime = previous.EndTime
			}
			previous.Animation.Apply(skeleton, previousTime, previousTime, previous.Loop, nil)

			if alpha >= 1 {
				alpha = 1
				s.freeEntry(current.previous)
				current.previous = nil
			}
			current.Animation.Mix(skeleton, current.LastTime, time, current.Loop, &s.events, alpha)
		}

		entryChanged := false
		for _, event := range s.events {
			if current.Listener != nil {
				current.Listener(s, i, AnimEvent, event, 0)
				if s.Tracks[i] != current {
					entryChanged = true
					break
				}
			}
			if s.Listener != nil {
				s.Listener(s, i, AnimEvent, event, 0)
				if s.Tracks[i] != current {
					entryChanged = true
					break
				}
			}
		}
		if entryChanged {
			// A listener swapped the current entry; its state is no longer
			// ours to advance.
			continue
		}

		// Detect completion of the animation or of one loop iteration.
		var completed bool
		if current.Loop {
			completed = fmod(current.LastTime, current.EndTime) > fmod(time, current.EndTime)
		} else {
			completed = current.LastTime < current.EndTime && time >= current.EndTime
		}
		if completed {
			count := int(time / current.EndTime)
			if current.Listener != nil {
				current.Listener(s, i, AnimComplete, nil, count)
				if s.Tracks[i] != current {
					continue
				}
			}
			if s.Listener != nil {
				s.Listener(s, i, AnimComplete, nil, count)
				if s.Tracks[i] != current {
					continue
				}
			}
		}

		current.LastTime = current.Time
	}
}

// ClearTracks clears every track, firing AnimEnd for each active entry.
func (s *AnimationState) ClearTracks() {
	for i := 0; i < len(s.Tracks); i++ {
		s.ClearTrack(i)
	}
	s.Tracks = s.Tracks[:0]
}

// ClearTrack clears one track, firing AnimEnd for its active entry.
func (s *AnimationState) ClearTrack(trackIndex int) {
	if trackIndex >= len(s.Tracks) {
		return
	}
	current := s.Tracks[trackIndex]
	if current == nil {
		return
	}

	if current.Listener != nil {
		current.Listener(s, trackIndex, AnimEnd, nil, 0)
	}
	if s.Listener != nil {
		s.Listener(s, trackIndex, AnimEnd, nil, 0)
	}

	s.Tracks[trackIndex] = nil
	s.freeEntryChain(current)
}

func (s *AnimationState) expandToIndex(index int) *TrackEntry {
	if index < len(s.Tracks) {
		return s.Tracks[index]
	}
	for len(s.Tracks) <= index {
		s.Tracks = append(s.Tracks, nil)
	}
	return nil
}

func (s *AnimationState) setCurrent(index int, entry *TrackEntry) {
	current := s.expandToIndex(index)

	if current != nil {
		previous := current.previous
		current.previous = nil

		if current.Listener != nil {
			current.Listener(s, index, AnimEnd, nil, 0)
		}
		if s.Listener != nil {
			s.Listener(s, index, AnimEnd, nil, 0)
		}

		entry.MixDuration = s.Data.Mix(current.Animation, entry.Animation)
		if entry.MixDuration > 0 {
			entry.MixTime = 0
			// If a mix was still in progress, fade from the closer of the
			// two animations.
			if previous != nil && current.MixTime/current.MixDuration < 0.5 {
				entry.previous = previous
				previous = current
			} else {
				entry.previous = current
			}
		} else {
			s.factory.FreeEntry(current)
		}

		if previous != nil {
			s.factory.FreeEntry(previous)
		}
	}

	s.Tracks[index] = entry

	if entry.Listener != nil {
		entry.Listener(s, index, AnimStart, nil, 0)
		if s.Tracks[index] != entry {
			return
		}
	}
	if s.Listener != nil {
		s.Listener(s, index, AnimStart, nil, 0)
	}
}

// SetAnimation sets the current animation of a track, discarding any
// queued entries. A crossfade begins if mixing data defines a duration for
// the transition.
func (s *AnimationState) SetAnimation(trackIndex int, animation *Animation, loop bool) *TrackEntry {
	current := s.expandToIndex(trackIndex)
	if current != nil {
		s.freeEntryChain(current.next)
		current.next = nil
	}

	entry := s.factory.NewEntry(s, animation)
	entry.Loop = loop
	entry.EndTime = animation.Duration

	s.setCurrent(trackIndex, entry)
	return entry
}

// SetAnimationByName is SetAnimation with a name lookup. An unknown name
// is a programming error; it is logged and nil is returned.
func (s *AnimationState) SetAnimationByName(trackIndex int, animationName string, loop bool) *TrackEntry {
	animation := s.Data.SkeletonData.FindAnimation(animationName)
	if animation == nil {
		groggy.Logsf("ERROR", "SetAnimationByName failed to find an animation named %s.", animationName)
		return nil
	}
	return s.SetAnimation(trackIndex, animation, loop)
}

// AddAnimation queues an animation after the current or last queued entry
// of a track. A delay <= 0 is adjusted so the animation begins one
// crossfade duration before its predecessor ends.
func (s *AnimationState) AddAnimation(trackIndex int, animation *Animation, loop bool, delay float32) *TrackEntry {
	entry := s.factory.NewEntry(s, animation)
	entry.Loop = loop
	entry.EndTime = animation.Duration

	last := s.expandToIndex(trackIndex)
	if last != nil {
		for last.next != nil {
			last = last.next
		}
		last.next = entry
	} else {
		s.Tracks[trackIndex] = entry
	}

	if delay <= 0 {
		if last != nil {
			delay += last.EndTime - s.Data.Mix(last.Animation, animation)
		} else {
			delay = 0
		}
	}
	entry.Delay = delay

	return entry
}

// AddAnimationByName is AddAnimation with a name lookup. An unknown name
// is a programming error; it is logged and nil is returned.
func (s *AnimationState) AddAnimationByName(trackIndex int, animationName string, loop bool, delay float32) *TrackEntry {
	animation := s.Data.SkeletonData.FindAnimation(animationName)
	if animation == nil {
		groggy.Logsf("ERROR", "AddAnimationByName failed to find an animation named %s.", animationName)
		return nil
	}
	return s.AddAnimation(trackIndex, animation, loop, delay)
}

// Current returns the active entry of a track or nil.
func (s *AnimationState) Current(trackIndex int) *TrackEntry {
	if trackIndex >= len(s.Tracks) {
		return nil
	}
	return s.Tracks[trackIndex]
}
