package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rainfolio.dev/internal/events"
)

var navSections = []string{"about", "experience", "education", "projects"}

// pageLayout stacks the nav sections 1000px apart
func pageLayout() Layout {
	return Layout{
		{ID: "about", Rect: Rect{Top: 0, Height: 1000}},
		{ID: "experience", Rect: Rect{Top: 1000, Height: 1000}},
		{ID: "education", Rect: Rect{Top: 2000, Height: 1000}},
		{ID: "projects", Rect: Rect{Top: 3000, Height: 1000}},
	}
}

type harness struct {
	scroll  *events.Signal[events.Scroll]
	resize  *events.Signal[events.Resize]
	tracker *Tracker
	changes []Snapshot
}

func newHarness(t *testing.T, sections []string) *harness {
	t.Helper()
	h := &harness{
		scroll: events.NewSignal[events.Scroll](),
		resize: events.NewSignal[events.Resize](),
	}
	h.tracker = NewTracker(DefaultOptions(sections), h.scroll, h.resize)
	h.tracker.OnChange(func(s Snapshot) { h.changes = append(h.changes, s) })
	t.Cleanup(h.tracker.Close)
	return h
}

func TestRatio(t *testing.T) {
	vp := Viewport{ScrollY: 500, Height: 1000}

	assert.InDelta(t, 1.0, Ratio(Rect{Top: 600, Height: 100}, vp, Margin{}), 1e-9)
	assert.InDelta(t, 0.5, Ratio(Rect{Top: 400, Height: 200}, vp, Margin{}), 1e-9)
	assert.InDelta(t, 0.0, Ratio(Rect{Top: 1500, Height: 200}, vp, Margin{}), 1e-9)
	assert.InDelta(t, 0.0, Ratio(Rect{Top: 0, Height: 500}, vp, Margin{}), 1e-9)

	// band 900..950
	band := Margin{Top: 0.40, Bottom: 0.55}
	assert.InDelta(t, 0.05, Ratio(Rect{Top: 500, Height: 1000}, vp, band), 1e-9)
	assert.InDelta(t, 0.0, Ratio(Rect{Top: 950, Height: 100}, vp, band), 1e-9)

	assert.InDelta(t, 1.0, Ratio(Rect{Top: 920, Height: 0}, vp, band), 1e-9)
	assert.InDelta(t, 0.0, Ratio(Rect{Top: 100, Height: 0}, vp, band), 1e-9)
}

func TestObserver_ReportsOnlyChanges(t *testing.T) {
	root := NewRoot(pageLayout(), Viewport{Height: 1000})

	var got [][]Entry
	obs := root.NewObserver(ObserverOptions{Threshold: 0.1}, func(e []Entry) { got = append(got, e) })
	obs.Observe("about")
	obs.Observe("experience")
	obs.Observe("about")
	assert.Equal(t, []string{"about", "experience"}, obs.Targets())

	root.Notify()
	require.Len(t, got, 1)
	assert.Equal(t, []Entry{
		{ID: "about", Ratio: 1, Intersecting: true},
		{ID: "experience", Ratio: 0, Intersecting: false},
	}, got[0])

	// 5% of experience is not enough to cross the threshold
	root.Update(Viewport{ScrollY: 50, Height: 1000})
	assert.Len(t, got, 1)

	root.Update(Viewport{ScrollY: 150, Height: 1000})
	require.Len(t, got, 2)
	assert.Equal(t, "experience", got[1][0].ID)
	assert.True(t, got[1][0].Intersecting)

	obs.Disconnect()
	root.Update(Viewport{ScrollY: 3000, Height: 1000})
	assert.Len(t, got, 2)
	assert.Empty(t, obs.Targets())
}

func TestTracker_ActiveSectionIsTheOneInTheBand(t *testing.T) {
	h := newHarness(t, navSections)
	h.resize.Emit(events.Resize{Width: 1280, Height: 1000})
	assert.Equal(t, "", h.tracker.Snapshot().Active)
	h.tracker.Start(pageLayout())
	assert.Equal(t, "about", h.tracker.Snapshot().Active)

	// band is 2500..2550, inside education only
	h.scroll.Emit(events.Scroll{Y: 2100})
	assert.Equal(t, "education", h.tracker.Snapshot().Active)

	h.scroll.Emit(events.Scroll{Y: 700})
	assert.Equal(t, "experience", h.tracker.Snapshot().Active)
}

func TestTracker_ActiveStaysUntilAnotherSectionEnters(t *testing.T) {
	h := newHarness(t, []string{"a", "b"})
	h.resize.Emit(events.Resize{Height: 1000})
	h.tracker.Start(Layout{
		{ID: "a", Rect: Rect{Top: 0, Height: 500}},
		{ID: "b", Rect: Rect{Top: 2000, Height: 500}},
	})
	assert.Equal(t, "a", h.tracker.Snapshot().Active)

	// band 1400..1450 hits nothing
	h.scroll.Emit(events.Scroll{Y: 1000})
	assert.Equal(t, "a", h.tracker.Snapshot().Active)
}

func TestTracker_LastEnteringSectionWins(t *testing.T) {
	h := newHarness(t, []string{"a", "b"})
	h.resize.Emit(events.Resize{Height: 1000})

	// both sit in the 400..450 band at once
	h.tracker.Start(Layout{
		{ID: "a", Rect: Rect{Top: 400, Height: 20}},
		{ID: "b", Rect: Rect{Top: 430, Height: 10}},
	})
	assert.Equal(t, "b", h.tracker.Snapshot().Active)
}

func TestTracker_FadeInIsMonotonic(t *testing.T) {
	h := newHarness(t, navSections)
	h.resize.Emit(events.Resize{Height: 1000})
	h.tracker.Start(pageLayout())

	assert.Equal(t, []string{"about"}, h.tracker.Snapshot().Visible)
	assert.Equal(t, []string{"experience", "education", "projects"}, h.tracker.Tracked())

	h.scroll.Emit(events.Scroll{Y: 2500})
	assert.Equal(t, []string{"about", "education", "projects"}, h.tracker.Snapshot().Visible)

	for _, y := range []float64{0, 3000, 400, 0} {
		h.scroll.Emit(events.Scroll{Y: y})
		for _, id := range []string{"about", "education", "projects"} {
			assert.Contains(t, h.tracker.Snapshot().Visible, id)
		}
	}
	// a section reached by scrolling back is picked up too
	assert.Equal(t, navSections, h.tracker.Snapshot().Visible)
	assert.Empty(t, h.tracker.Tracked())
}

func TestTracker_FadeNeedsTenPercent(t *testing.T) {
	h := newHarness(t, navSections)
	h.resize.Emit(events.Resize{Height: 1000})
	h.tracker.Start(pageLayout())

	// 9% of experience on screen
	h.scroll.Emit(events.Scroll{Y: 90})
	assert.NotContains(t, h.tracker.Snapshot().Visible, "experience")

	h.scroll.Emit(events.Scroll{Y: 100})
	assert.Contains(t, h.tracker.Snapshot().Visible, "experience")
}

func TestTracker_ScrollTopFollowsOffset(t *testing.T) {
	h := newHarness(t, navSections)
	h.resize.Emit(events.Resize{Height: 800})

	for _, y := range []float64{0, 799, 800, 801, 5000, 800, 12} {
		h.scroll.Emit(events.Scroll{Y: y})
		assert.Equal(t, y > 800, h.tracker.Snapshot().ShowScrollTop, "scroll %v", y)
	}

	// a taller window can flip it without scrolling
	h.scroll.Emit(events.Scroll{Y: 900})
	assert.True(t, h.tracker.Snapshot().ShowScrollTop)
	h.resize.Emit(events.Resize{Height: 1200})
	assert.False(t, h.tracker.Snapshot().ShowScrollTop)
}

func TestTracker_MissingSectionsAreSkipped(t *testing.T) {
	h := newHarness(t, navSections)
	h.resize.Emit(events.Resize{Height: 1000})

	layout := Layout{
		{ID: "about", Rect: Rect{Top: 0, Height: 1000}},
		{ID: "projects", Rect: Rect{Top: 1000, Height: 1000}},
	}
	h.tracker.Start(layout)

	assert.Equal(t, []string{"projects"}, h.tracker.Tracked())
	h.scroll.Emit(events.Scroll{Y: 1000})
	assert.Equal(t, []string{"about", "projects"}, h.tracker.Snapshot().Visible)
	assert.Equal(t, "projects", h.tracker.Snapshot().Active)
}

func TestTracker_RelayoutMovesSections(t *testing.T) {
	h := newHarness(t, navSections)
	h.resize.Emit(events.Resize{Height: 1000})
	h.tracker.Start(pageLayout())
	h.scroll.Emit(events.Scroll{Y: 2100})
	require.Equal(t, "education", h.tracker.Snapshot().Active)

	// projects grows upward into the band
	moved := pageLayout()
	moved[2].Height = 400
	moved[3].Top = 2400
	h.tracker.Relayout(moved)

	assert.Equal(t, "projects", h.tracker.Snapshot().Active)
}

func TestTracker_NoCallbacksAfterClose(t *testing.T) {
	h := newHarness(t, navSections)
	h.resize.Emit(events.Resize{Height: 1000})
	h.tracker.Start(pageLayout())
	before := len(h.changes)
	require.Positive(t, before)

	h.tracker.Close()
	h.tracker.Close()
	assert.Equal(t, 0, h.scroll.Len())
	assert.Equal(t, 0, h.resize.Len())

	h.scroll.Emit(events.Scroll{Y: 3000})
	h.resize.Emit(events.Resize{Height: 10})
	h.tracker.Relayout(pageLayout())

	assert.Len(t, h.changes, before)
}

func TestTracker_OnChangeOncePerEvent(t *testing.T) {
	h := newHarness(t, navSections)
	h.resize.Emit(events.Resize{Height: 1000})
	h.tracker.Start(pageLayout())
	h.changes = nil

	// fade-in, active and scroll-to-top all change on this one event
	h.scroll.Emit(events.Scroll{Y: 2050})
	require.Len(t, h.changes, 1)
	assert.Equal(t, Snapshot{
		Visible:       []string{"about", "education"},
		Active:        "education",
		ShowScrollTop: true,
	}, h.changes[0])
}
