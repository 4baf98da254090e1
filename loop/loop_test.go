package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type app struct {
	frames int
	quitAt int
	events int
	starts []time.Time
}

func (a *app) ProcessEvents() bool {
	a.events++
	return a.frames >= a.quitAt
}

func (a *app) Draw() { a.frames++ }

type timedApp struct{ app }

func (a *timedApp) FrameStart(t time.Time) { a.starts = append(a.starts, t) }

func TestRun(t *testing.T) {
	var l Loop
	a := &app{quitAt: 5}
	assert.Equal(t, 5, l.Run(a))
	assert.Equal(t, 5, a.frames)
	assert.Equal(t, 6, a.events)

	a = &app{quitAt: 0}
	assert.Equal(t, 0, l.Run(a))
}

func TestFrameStart(t *testing.T) {
	t0 := time.Unix(0, 0)
	n := 0
	l := Loop{now: func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Millisecond)
	}}
	a := &timedApp{app{quitAt: 3}}
	l.Run(a)
	assert.Equal(t, []time.Time{
		t0.Add(time.Millisecond),
		t0.Add(2 * time.Millisecond),
		t0.Add(3 * time.Millisecond),
	}, a.starts)
}

func TestMinFrameTime(t *testing.T) {
	var l Loop
	l.MinFrameTime(time.Millisecond)
	a := &timedApp{app{quitAt: 3}}
	start := time.Now()
	l.Run(a)
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Millisecond)
	for i := 1; i < len(a.starts); i++ {
		assert.True(t, a.starts[i].After(a.starts[i-1]))
	}
}

func TestMinFrameTimeAcrossRuns(t *testing.T) {
	const ft = 10 * time.Millisecond
	var l Loop
	l.MinFrameTime(ft)
	l.Run(&app{quitAt: 3})
	// same value again keeps the limit
	l.MinFrameTime(ft)
	start := time.Now()
	assert.Equal(t, 3, l.Run(&app{quitAt: 3}))
	assert.GreaterOrEqual(t, time.Since(start), 3*ft)

	l.MinFrameTime(0)
	start = time.Now()
	l.Run(&app{quitAt: 3})
	assert.Less(t, time.Since(start), 3*ft)
}
