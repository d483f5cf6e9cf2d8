// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

// Animation is an ordered bundle of timelines with a total duration.
// Animations are immutable after loading and safe to share.
type Animation struct {
	Name      string
	Duration  float32
	Timelines []Timeline
}

// NewAnimation creates an animation; duration should be the maximum frame
// time across the timelines.
func NewAnimation(name string, timelines []Timeline, duration float32) *Animation {
	a := new(Animation)
	a.Name = name
	a.Timelines = timelines
	a.Duration = duration
	return a
}

// Apply poses the skeleton at the given time with full weight. lastTime is
// the previous applied time, used for event emission; fired events are
// appended to events when non-nil.
func (a *Animation) Apply(skeleton *Skeleton, lastTime, time float32, loop bool, events *[]*Event) {
	a.Mix(skeleton, lastTime, time, loop, events, 1)
}

// Mix poses the skeleton at the given time blended into the current pose
// by alpha. When loop is true both times wrap modulo the duration.
func (a *Animation) Mix(skeleton *Skeleton, lastTime, time float32, loop bool, events *[]*Event, alpha float32) {
	if loop && a.Duration != 0 {
		time = fmod(time, a.Duration)
		if lastTime > 0 {
			lastTime = fmod(lastTime, a.Duration)
		}
	}

	for _, timeline := range a.Timelines {
		timeline.Apply(skeleton, lastTime, time, events, alpha)
	}
}

// ClearIdentityFrames collapses constant timelines to a single frame.
func (a *Animation) ClearIdentityFrames() {
	for _, timeline := range a.Timelines {
		timeline.ClearIdentityFrames()
	}
}
