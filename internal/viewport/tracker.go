package viewport

import (
	"rainfolio.dev/internal/events"
)

// Options configures a Tracker
type Options struct {
	// Sections are the navigable section ids, in page order
	Sections []string
	// FadeThreshold is the visible fraction at which a section fades in
	FadeThreshold float64
	// Band is the central strip a section must reach to become active
	Band Margin
}

// DefaultOptions tracks the given sections with a 10% fade-in threshold and
// a band that ignores the top 40% and bottom 55% of the viewport
func DefaultOptions(sections []string) Options {
	return Options{
		Sections:      sections,
		FadeThreshold: 0.10,
		Band:          Margin{Top: 0.40, Bottom: 0.55},
	}
}

// Snapshot is the derived UI state
type Snapshot struct {
	Visible       []string `json:"visible"`
	Active        string   `json:"active"`
	ShowScrollTop bool     `json:"show_scroll_top"`
}

// Tracker derives three independent pieces of state from passive scroll,
// resize and intersection notifications:
//
//   - fade-in: a section becomes visible the first time FadeThreshold of it
//     is on screen, and stays visible
//   - active section: the section most recently reported entering the
//     central band; callback order breaks ties, so the last one wins
//   - scroll-to-top: true while the scroll offset exceeds one viewport height
type Tracker struct {
	opts Options
	root *Root

	fade *Observer
	nav  *Observer

	visible   map[string]bool
	active    string
	scrollTop bool

	onChange func(Snapshot)
	dirty    bool
	unsubs   []func()
	started  bool
	closed   bool
}

// NewTracker creates a tracker subscribed to scroll and resize. Either
// signal may be nil. Close releases the subscriptions.
func NewTracker(opts Options, scroll *events.Signal[events.Scroll], resize *events.Signal[events.Resize]) *Tracker {
	if opts.FadeThreshold <= 0 || opts.FadeThreshold > 1 {
		opts.FadeThreshold = 0.10
	}

	t := &Tracker{
		opts:    opts,
		root:    NewRoot(nil, Viewport{}),
		visible: make(map[string]bool),
	}

	if scroll != nil {
		t.unsubs = append(t.unsubs, scroll.Subscribe(t.handleScroll))
	}
	if resize != nil {
		t.unsubs = append(t.unsubs, resize.Subscribe(t.handleResize))
	}
	return t
}

// OnChange registers fn to be called after any change of the snapshot
func (t *Tracker) OnChange(fn func(Snapshot)) {
	t.onChange = fn
}

// Start registers the observers against layout. Sections that are not in
// the layout are skipped; content may lag behind the navigation config.
func (t *Tracker) Start(layout Layout) {
	if t.closed || t.started {
		return
	}
	t.started = true

	t.fade = t.root.NewObserver(ObserverOptions{Threshold: t.opts.FadeThreshold}, t.handleFade)
	t.nav = t.root.NewObserver(ObserverOptions{Margin: t.opts.Band}, t.handleNav)

	for _, id := range t.opts.Sections {
		if _, ok := layout.Find(id); !ok {
			continue
		}
		t.fade.Observe(id)
		t.nav.Observe(id)
	}

	t.root.SetLayout(layout)
	t.flush()
}

// Started reports whether Start has registered the observers
func (t *Tracker) Started() bool {
	return t.started
}

// Relayout updates the section rectangles after the page reflowed.
// Only sections registered by Start are tracked.
func (t *Tracker) Relayout(layout Layout) {
	if t.closed {
		return
	}
	t.root.SetLayout(layout)
	t.flush()
}

// Viewport returns the viewport as last reported
func (t *Tracker) Viewport() Viewport {
	return t.root.Viewport()
}

// Tracked returns the section ids that are still watched for fade-in
func (t *Tracker) Tracked() []string {
	if t.fade == nil {
		return nil
	}
	return t.fade.Targets()
}

// Snapshot returns the current state
func (t *Tracker) Snapshot() Snapshot {
	visible := make([]string, 0, len(t.visible))
	for _, id := range t.opts.Sections {
		if t.visible[id] {
			visible = append(visible, id)
		}
	}
	return Snapshot{
		Visible:       visible,
		Active:        t.active,
		ShowScrollTop: t.scrollTop,
	}
}

// Close disconnects the observers and releases the subscriptions. No
// callback fires after Close returns.
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.closed = true

	if t.fade != nil {
		t.fade.Disconnect()
	}
	if t.nav != nil {
		t.nav.Disconnect()
	}
	for _, unsub := range t.unsubs {
		unsub()
	}
	t.unsubs = nil
	t.onChange = nil
}

func (t *Tracker) handleScroll(ev events.Scroll) {
	if t.closed {
		return
	}
	vp := t.root.Viewport()
	vp.ScrollY = ev.Y
	t.move(vp)
}

func (t *Tracker) handleResize(ev events.Resize) {
	if t.closed {
		return
	}
	vp := t.root.Viewport()
	vp.Width = float64(ev.Width)
	vp.Height = float64(ev.Height)
	t.move(vp)
}

func (t *Tracker) move(vp Viewport) {
	t.root.Update(vp)

	scrollTop := vp.ScrollY > vp.Height
	if scrollTop != t.scrollTop {
		t.scrollTop = scrollTop
		t.dirty = true
	}
	t.flush()
}

func (t *Tracker) handleFade(entries []Entry) {
	for _, e := range entries {
		if !e.Intersecting {
			continue
		}
		if !t.visible[e.ID] {
			t.visible[e.ID] = true
			t.dirty = true
		}
		t.fade.Unobserve(e.ID)
	}
}

func (t *Tracker) handleNav(entries []Entry) {
	for _, e := range entries {
		if e.Intersecting && t.active != e.ID {
			t.active = e.ID
			t.dirty = true
		}
	}
}

func (t *Tracker) flush() {
	if !t.dirty {
		return
	}
	t.dirty = false
	if t.onChange != nil {
		t.onChange(t.Snapshot())
	}
}
