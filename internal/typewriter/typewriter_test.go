package typewriter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTick_WalksEveryPrefix(t *testing.T) {
	tw := New(time.Millisecond)
	tw.Start("héllo")

	want := []string{"", "h", "hé", "hél", "héll", "héllo"}
	for i, prefix := range want {
		assert.Equal(t, prefix, tw.Text(), "step %d", i)
		assert.Equal(t, i == len(want)-1, tw.Done(), "step %d", i)
		if i < len(want)-1 {
			assert.True(t, tw.Tick())
		}
	}

	assert.False(t, tw.Tick())
	assert.Equal(t, "héllo", tw.Text())
}

func TestStart_RestartResetsFully(t *testing.T) {
	tw := New(time.Millisecond)
	tw.Start("abc")
	for tw.Tick() {
	}
	require.True(t, tw.Done())

	tw.Start("xy")
	assert.Equal(t, "", tw.Text())
	assert.False(t, tw.Done())
	assert.Equal(t, "xy", tw.Target())

	tw.Tick()
	assert.Equal(t, "x", tw.Text())
}

func TestStart_EmptyTargetIsDone(t *testing.T) {
	tw := New(0)
	tw.Start("")

	assert.True(t, tw.Done())
	assert.False(t, tw.Tick())
	assert.Equal(t, DefaultInterval, tw.Interval())
}

func TestPrefixAt(t *testing.T) {
	const s = "Hello, world"
	const interval = 50 * time.Millisecond
	n := len(s)

	for k := 0; k < n; k++ {
		text, done := PrefixAt(s, time.Duration(k)*interval, interval)
		assert.Equal(t, s[:k], text, "k=%d", k)
		assert.False(t, done, "k=%d", k)

		// just before the next tick nothing more is shown
		text, _ = PrefixAt(s, time.Duration(k+1)*interval-time.Nanosecond, interval)
		assert.Equal(t, s[:k], text, "k=%d", k)
	}

	text, done := PrefixAt(s, time.Duration(n)*interval, interval)
	assert.Equal(t, s, text)
	assert.True(t, done)

	_, done = PrefixAt(s, time.Duration(n)*interval-time.Nanosecond, interval)
	assert.False(t, done)

	_, done = PrefixAt(s, time.Hour, interval)
	assert.True(t, done)
}

func TestTickMatchesPrefixAt(t *testing.T) {
	const s = "typewriter"
	interval := 10 * time.Millisecond
	tw := New(interval)
	tw.Start(s)

	for k := 0; k <= len(s); k++ {
		want, wantDone := PrefixAt(s, time.Duration(k)*interval, interval)
		assert.Equal(t, want, tw.Text())
		assert.Equal(t, wantDone, tw.Done())
		tw.Tick()
	}
}

func TestRun_TicksUntilDone(t *testing.T) {
	tw := New(time.Millisecond)
	tw.Start("abcd")

	var seen []string
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tw.Run(ctx, func(text string, done bool) {
		seen = append(seen, text)
	})

	assert.Equal(t, []string{"a", "ab", "abc", "abcd"}, seen)
	assert.True(t, tw.Done())
}

func TestRun_StopsOnCancel(t *testing.T) {
	tw := New(time.Hour)
	tw.Start("never")

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		tw.Run(ctx, nil)
		close(finished)
	}()
	cancel()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, "", tw.Text())
}
