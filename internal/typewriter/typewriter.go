// Package typewriter reveals a string one character per tick.
package typewriter

import (
	"context"
	"time"
)

// DefaultInterval is the delay between two revealed characters
const DefaultInterval = 100 * time.Millisecond

// Typewriter walks from the empty string through every prefix of its target.
// It is driven from one goroutine and is not safe for concurrent use.
type Typewriter struct {
	interval time.Duration
	target   []rune
	shown    int
	done     bool
}

// New creates a typewriter with the given interval
func New(interval time.Duration) *Typewriter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Typewriter{interval: interval}
}

// Interval returns the delay between two characters
func (t *Typewriter) Interval() time.Duration {
	return t.interval
}

// Start resets the typewriter to an empty prefix of target. An empty target
// is done immediately.
func (t *Typewriter) Start(target string) {
	t.target = []rune(target)
	t.shown = 0
	t.done = len(t.target) == 0
}

// Tick reveals one more character. It returns false, and changes nothing,
// once the whole target is shown.
func (t *Typewriter) Tick() bool {
	if t.done {
		return false
	}
	t.shown++
	if t.shown >= len(t.target) {
		t.done = true
	}
	return true
}

// Text returns the revealed prefix
func (t *Typewriter) Text() string {
	return string(t.target[:t.shown])
}

// Target returns the full string being revealed
func (t *Typewriter) Target() string {
	return string(t.target)
}

// Done reports whether the whole target is shown
func (t *Typewriter) Done() bool {
	return t.done
}

// Run ticks on a timer until the target is shown or ctx is cancelled,
// calling onChange after every tick. The timer is stopped on return.
func (t *Typewriter) Run(ctx context.Context, onChange func(text string, done bool)) {
	if t.done {
		return
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Tick()
			if onChange != nil {
				onChange(t.Text(), t.done)
			}
			if t.done {
				return
			}
		}
	}
}

// PrefixAt returns what a typewriter started on s shows once elapsed has
// passed, and whether it is done by then
func PrefixAt(s string, elapsed, interval time.Duration) (string, bool) {
	runes := []rune(s)
	if interval <= 0 {
		interval = DefaultInterval
	}
	if elapsed < 0 {
		elapsed = 0
	}

	n := int(elapsed / interval)
	if n >= len(runes) {
		return s, true
	}
	return string(runes[:n]), false
}
