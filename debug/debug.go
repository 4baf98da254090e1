// Package debug provides frame statistics for on-screen diagnostics.
//
package debug

import (
	"fmt"
	"time"

	"github.com/db47h/letterbox"
)

// number of samples averaged by a Timer. Must be a power of two.
const samples = 32

// Timer keeps a moving average of the last 32 durations added to it.
//
type Timer struct {
	times [samples]time.Duration
	index int
	n     int
	last  time.Time
}

// Add adds a sample.
//
func (t *Timer) Add(dt time.Duration) {
	t.times[t.index] = dt
	t.index = (t.index + 1) & (samples - 1)
	if t.n < samples {
		t.n++
	}
}

// Tick adds the time elapsed since the previous call to Tick. The first call
// only records now.
//
func (t *Timer) Tick(now time.Time) {
	if !t.last.IsZero() {
		t.Add(now.Sub(t.last))
	}
	t.last = now
}

// Average returns the average of the samples added so far.
//
func (t *Timer) Average() time.Duration {
	if t.n == 0 {
		return 0
	}
	var avg time.Duration
	for _, dt := range t.times[:t.n] {
		avg += dt
	}
	return avg / time.Duration(t.n)
}

// AveragePerSecond returns the number of average durations per second, that
// is frames per second for a frame timer. It returns 0 when no samples have
// been added.
//
func (t *Timer) AveragePerSecond() float64 {
	avg := t.Average()
	if avg == 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// Info formats the HUD line showing the screen and virtual cursor positions
// along with the frame rate.
//
func Info(screen, virtual letterbox.Point, fps float64) string {
	return fmt.Sprintf("screen %v virtual %v %.0f fps", screen, virtual, fps)
}
