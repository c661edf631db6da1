// Package animation mirrors the animation types exposed by the generated
// CubbyFlow wrappers, so consumers can be written and tested against the
// same contract.
package animation

// DefaultTimeInterval is the frame interval of a zero-configured Frame.
const DefaultTimeInterval = 1.0 / 60.0

// Frame is an animation frame: its index and the interval it covers.
type Frame struct {
	Index                 int
	TimeIntervalInSeconds float64
}

// NewFrame returns frame 0 at 60 frames per second.
func NewFrame() Frame {
	return Frame{TimeIntervalInSeconds: DefaultTimeInterval}
}

// TimeInSeconds returns the elapsed time at the start of the frame.
func (f Frame) TimeInSeconds() float64 {
	return float64(f.Index) * f.TimeIntervalInSeconds
}

// Advance moves the frame forward by delta frames.
func (f *Frame) Advance(delta int) {
	f.Index += delta
}
