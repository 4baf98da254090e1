// The loop package provides a simple per-frame render loop.
//
package loop

import (
	"time"
)

// EventProcessor wraps the ProcessEvents method.
//
// It is up to the implementation to either poll events or wait for events.
//
// Graphical applications that need to swap buffers should swap their buffers in
// their ProcessEvents method, before actually processing events.
//
type EventProcessor interface {
	ProcessEvents() (quit bool)
}

// Drawer is implemented by applications driven by a Loop.
//
type Drawer interface {
	EventProcessor
	Draw()
}

// FrameStarter is the interface implemented by any Drawer that wants the time
// stamp at the beginning of each loop iteration.
//
type FrameStarter interface {
	FrameStart(time.Time)
}

// Loop calls ProcessEvents then Draw until ProcessEvents returns true.
//
// The zero value runs as fast as ProcessEvents returns (usually limited by
// vsync).
//
type Loop struct {
	minFT time.Duration
	now   func() time.Time
}

// MinFrameTime sets the minimum frame time of subsequent calls to Run.
//
// If the t value is greater than 0, the frame rate will be clamped
// to time.Second/t.
//
func (l *Loop) MinFrameTime(t time.Duration) {
	l.minFT = t
}

// Run runs the loop until a quits. It returns the number of frames drawn.
//
func (l *Loop) Run(a Drawer) (frames int) {
	frameTime := l.now
	if frameTime == nil {
		frameTime = time.Now
	}
	if l.minFT > 0 {
		t := time.NewTicker(l.minFT)
		defer t.Stop()
		frameTime = func() time.Time { return <-t.C }
	}
	fStart, _ := a.(FrameStarter)
	for !a.ProcessEvents() {
		now := frameTime()
		if fStart != nil {
			fStart.FrameStart(now)
		}
		a.Draw()
		frames++
	}
	return frames
}
