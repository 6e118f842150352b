// Package viewport derives UI state from scroll position and from how much of
// each page section intersects the viewport. Root and Observer mirror the
// browser's IntersectionObserver, evaluated against a layout the client
// reports rather than against a live DOM.
package viewport

// Rect is the vertical extent of an element in document coordinates
type Rect struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Bottom returns the document offset of the element's lower edge
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Element is a laid-out section of the page
type Element struct {
	ID string `json:"id"`
	Rect
}

// Layout is the ordered list of elements on the page
type Layout []Element

// Find returns the element with the given id
func (l Layout) Find(id string) (Element, bool) {
	for _, el := range l {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// Viewport is the visible window onto the document
type Viewport struct {
	ScrollY float64 `json:"scroll_y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Margin shrinks the root box by a fraction of the viewport height from the
// top and from the bottom, like a negative CSS rootMargin in percent
type Margin struct {
	Top    float64
	Bottom float64
}

// ObserverOptions configures an Observer
type ObserverOptions struct {
	// Threshold is the minimum visible fraction of the element that counts
	// as intersecting. Zero means any overlap at all.
	Threshold float64
	Margin    Margin
}

// Entry describes a target whose intersecting state changed
type Entry struct {
	ID           string
	Ratio        float64
	Intersecting bool
}

// Callback receives the entries of one evaluation, in observation order
type Callback func([]Entry)

// Ratio returns the fraction of rect that lies inside the viewport after the
// margin is applied
func Ratio(rect Rect, vp Viewport, m Margin) float64 {
	rootTop := vp.ScrollY + m.Top*vp.Height
	rootBottom := vp.ScrollY + vp.Height - m.Bottom*vp.Height
	if rootBottom < rootTop {
		return 0
	}

	top := max(rect.Top, rootTop)
	bottom := min(rect.Bottom(), rootBottom)

	if rect.Height <= 0 {
		if rect.Top >= rootTop && rect.Top <= rootBottom {
			return 1
		}
		return 0
	}
	if bottom <= top {
		return 0
	}
	return (bottom - top) / rect.Height
}

func (o ObserverOptions) intersecting(ratio float64) bool {
	if o.Threshold <= 0 {
		return ratio > 0
	}
	return ratio >= o.Threshold
}

type target struct {
	id    string
	known bool // false until the first evaluation reported it
	state bool
}

// Observer watches a set of targets for changes of intersecting state
type Observer struct {
	root    *Root
	opts    ObserverOptions
	cb      Callback
	targets []*target
	active  bool
}

// Observe starts watching id. The next evaluation always reports it once,
// whatever its state.
func (o *Observer) Observe(id string) {
	if !o.active {
		return
	}
	for _, t := range o.targets {
		if t.id == id {
			return
		}
	}
	o.targets = append(o.targets, &target{id: id})
}

// Unobserve stops watching id
func (o *Observer) Unobserve(id string) {
	for i, t := range o.targets {
		if t.id == id {
			o.targets = append(o.targets[:i], o.targets[i+1:]...)
			return
		}
	}
}

// Targets returns the ids currently watched
func (o *Observer) Targets() []string {
	ids := make([]string, len(o.targets))
	for i, t := range o.targets {
		ids[i] = t.id
	}
	return ids
}

// Disconnect stops watching every target and detaches from the root. The
// callback is never invoked afterwards.
func (o *Observer) Disconnect() {
	if !o.active {
		return
	}
	o.active = false
	o.targets = nil
	o.root.detach(o)
}

func (o *Observer) evaluate(vp Viewport, layout Layout) {
	var entries []Entry
	for _, t := range o.targets {
		el, ok := layout.Find(t.id)
		if !ok {
			continue
		}
		ratio := Ratio(el.Rect, vp, o.opts.Margin)
		state := o.opts.intersecting(ratio)
		if t.known && t.state == state {
			continue
		}
		t.known = true
		t.state = state
		entries = append(entries, Entry{ID: t.id, Ratio: ratio, Intersecting: state})
	}

	if len(entries) > 0 && o.active {
		o.cb(entries)
	}
}

// Root holds the current viewport and layout and evaluates its observers.
// Like the browser's observer machinery it is driven from one goroutine.
type Root struct {
	vp        Viewport
	layout    Layout
	observers []*Observer
}

// NewRoot creates a root for the given initial layout and viewport
func NewRoot(layout Layout, vp Viewport) *Root {
	return &Root{vp: vp, layout: layout}
}

// NewObserver creates an observer attached to the root
func (r *Root) NewObserver(opts ObserverOptions, cb Callback) *Observer {
	o := &Observer{root: r, opts: opts, cb: cb, active: true}
	r.observers = append(r.observers, o)
	return o
}

func (r *Root) detach(o *Observer) {
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Viewport returns the current viewport
func (r *Root) Viewport() Viewport {
	return r.vp
}

// Layout returns the current layout
func (r *Root) Layout() Layout {
	return r.layout
}

// Update moves the viewport and notifies observers of any changes
func (r *Root) Update(vp Viewport) {
	r.vp = vp
	r.Notify()
}

// SetLayout replaces the layout and notifies observers of any changes
func (r *Root) SetLayout(layout Layout) {
	r.layout = layout
	r.Notify()
}

// Notify evaluates every observer in registration order
func (r *Root) Notify() {
	observers := make([]*Observer, len(r.observers))
	copy(observers, r.observers)
	for _, o := range observers {
		if o.active {
			o.evaluate(r.vp, r.layout)
		}
	}
}
