package config

import "time"

// View resolution in logical units. Rendering scales to the terminal.
const (
	ViewWidth  = 120
	ViewHeight = 80 // sub-pixels, so 40 terminal rows
)

// Upper bound on the render area; larger terminals get a centered frame.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Frame timing.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Probe motion.
const (
	ProbeSpeed    = 40.0 // logical units per second
	ProbeSubSteps = 4    // resolve passes per frame so fast moves do not tunnel
)

// ContactListLimit caps how many contacts the HUD lists.
const ContactListLimit = 6

// EvaluateWorkers bounds the goroutines used for pairwise scene checks.
const EvaluateWorkers = 4
