// Package testdata provides canned landmark sequences for pipeline tests.
package testdata

import "github.com/ayusman/mudra/internal/detector"

// Frame is one detector result in a scripted sequence. A nil Hands slice
// means no hand was detected that frame.
type Frame struct {
	Hands []detector.HandLandmarks
}

// hand wraps a single HandLandmarks into a frame.
func hand(h detector.HandLandmarks) Frame {
	return Frame{Hands: []detector.HandLandmarks{h}}
}

// absent is a frame with no detected hand.
func absent() Frame {
	return Frame{}
}

// SteadyHand returns a sequence of frames with an open hand resting at the
// given position.
func SteadyHand(cx, cy float64, frames int) []Frame {
	seq := make([]Frame, frames)
	for i := range seq {
		seq[i] = hand(detector.OpenHand(cx, cy))
	}
	return seq
}

// Sweep returns a sequence moving an open hand from (x0, y0) to (x1, y1)
// in evenly spaced steps.
func Sweep(x0, y0, x1, y1 float64, frames int) []Frame {
	seq := make([]Frame, frames)
	for i := range seq {
		t := float64(i) / float64(frames-1)
		seq[i] = hand(detector.OpenHand(x0+(x1-x0)*t, y0+(y1-y0)*t))
	}
	return seq
}

// Click returns a debounce-friendly click sequence at the given position:
// the hand settles open, pinches for pinchFrames, then opens again.
func Click(cx, cy float64, pinchFrames int) []Frame {
	var seq []Frame
	seq = append(seq, SteadyHand(cx, cy, 2)...)
	for i := 0; i < pinchFrames; i++ {
		seq = append(seq, hand(detector.PinchedHand(cx, cy)))
	}
	seq = append(seq, SteadyHand(cx, cy, 3)...)
	return seq
}

// Dropout returns a sequence where the hand disappears mid-tracking and
// reappears at a different position.
func Dropout(beforeX, beforeY, afterX, afterY float64, gap int) []Frame {
	var seq []Frame
	seq = append(seq, SteadyHand(beforeX, beforeY, 3)...)
	for i := 0; i < gap; i++ {
		seq = append(seq, absent())
	}
	seq = append(seq, SteadyHand(afterX, afterY, 3)...)
	return seq
}
