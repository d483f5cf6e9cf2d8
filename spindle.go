// Copyright 2016, Timothy Bogdala <tdb@animal-machine.com>
// See the LICENSE file for more details.

/*

Spindle is a runtime library for 2D skeletal animation. It evaluates
keyframed animations against a hierarchical rig of bones, slots and
attachments and produces world-space transforms and vertices that a
renderer can draw.

*/

package spindle

// yDown selects the Y-axis convention used when computing root bone world
// transforms. It is read by Skeleton at creation time; set it before
// creating skeletons. The default is a math-style Y-up axis.
var yDown bool

// SetYDown sets the process-wide Y-axis convention. True means screen
// style coordinates where Y grows downward.
func SetYDown(down bool) {
	yDown = down
}

// IsYDown returns the currently configured Y-axis convention.
func IsYDown() bool {
	return yDown
}
