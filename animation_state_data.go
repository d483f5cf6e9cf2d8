// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

package spindle

// AnimationStateData stores the crossfade durations to use between pairs
// of animations, plus a default for pairs without an entry.
type AnimationStateData struct {
	SkeletonData *SkeletonData
	DefaultMix   float32

	mixes map[mixKey]float32
}

type mixKey struct {
	from, to *Animation
}

// NewAnimationStateData creates mixing data for a skeleton definition.
func NewAnimationStateData(skeletonData *SkeletonData) *AnimationStateData {
	d := new(AnimationStateData)
	d.SkeletonData = skeletonData
	d.mixes = make(map[mixKey]float32)
	return d
}

// SetMix sets the crossfade duration used when transitioning between the
// two animations.
func (d *AnimationStateData) SetMix(from, to *Animation, duration float32) {
	d.mixes[mixKey{from, to}] = duration
}

// SetMixByName looks up both animations in the skeleton data and sets
// their crossfade duration. Unknown names are ignored.
func (d *AnimationStateData) SetMixByName(fromName, toName string, duration float32) {
	from := d.SkeletonData.FindAnimation(fromName)
	if from == nil {
		return
	}
	to := d.SkeletonData.FindAnimation(toName)
	if to == nil {
		return
	}
	d.SetMix(from, to, duration)
}

// Mix returns the crossfade duration for the pair, or DefaultMix when none
// was set.
func (d *AnimationStateData) Mix(from, to *Animation) float32 {
	if duration, ok := d.mixes[mixKey{from, to}]; ok {
		return duration
	}
	return d.DefaultMix
}
