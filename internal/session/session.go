// Package session hosts one view of the page per WebSocket connection. A
// session owns everything that changes while the page is open: the
// background animator, the viewport tracker, the hero typewriter and the
// ui.State.
//
// Concurrency model: a single event loop goroutine owns all of that state.
// A reader goroutine only decodes client messages into the inbox and a
// writer goroutine only encodes the outbox, so no mutexes are needed.
package session

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rainfolio.dev/internal/animator"
	"rainfolio.dev/internal/events"
	"rainfolio.dev/internal/models"
	"rainfolio.dev/internal/services"
	"rainfolio.dev/internal/typewriter"
	"rainfolio.dev/internal/ui"
	"rainfolio.dev/internal/viewport"
)

// Conn is the transport of a session. *websocket.Conn satisfies it.
type Conn interface {
	NextReader() (messageType int, r io.Reader, err error)
	WriteJSON(v any) error
	Close() error
}

// errDisconnected ends the reader when the page goes away
var errDisconnected = errors.New("client disconnected")

// Options configures every session a Manager creates
type Options struct {
	Rain animator.Options
	// FrameInterval is how often the animator is offered a frame, like the
	// browser's frame requests. The animator throttles itself below that.
	FrameInterval time.Duration
	TypeInterval  time.Duration
	Viewport      viewport.Options
	// OutboxSize bounds queued messages; frames are dropped when it is full
	OutboxSize int
	Limits     Limits
}

// DefaultOptions returns the stock session settings
func DefaultOptions() Options {
	return Options{
		Rain:          animator.DefaultOptions(),
		FrameInterval: time.Second / 60,
		TypeInterval:  typewriter.DefaultInterval,
		Viewport:      viewport.DefaultOptions(models.SectionNames(models.Sections)),
		OutboxSize:    64,
		Limits:        DefaultLimits(),
	}
}

// Session is one open page
type Session struct {
	id       string
	conn     Conn
	opts     Options
	logger   *zap.Logger
	projects *services.ProjectService
	profile  *services.ProfileService

	inbox   chan Inbound
	outbox  chan Outbound
	reload  chan struct{}
	dropped int

	// owned by the event loop
	scroll   *events.Signal[events.Scroll]
	resize   *events.Signal[events.Resize]
	surface  *strokes
	rain     *animator.Rain
	tracker  *viewport.Tracker
	writer   *typewriter.Typewriter
	typeTick *time.Ticker
	state    *ui.State
	layout   viewport.Layout
	pending  *viewport.Snapshot
}

func newSession(id uuid.UUID, conn Conn, opts Options, projects *services.ProjectService, profile *services.ProfileService, logger *zap.Logger) (*Session, error) {
	defaults := DefaultOptions()
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaults.FrameInterval
	}
	if len(opts.Viewport.Sections) == 0 {
		opts.Viewport = defaults.Viewport
	}
	opts.Limits = opts.Limits.withDefaults()

	s := &Session{
		id:       id.String(),
		conn:     conn,
		opts:     opts,
		logger:   logger.With(zap.String("session_id", id.String())),
		projects: projects,
		profile:  profile,
		inbox:    make(chan Inbound, 16),
		outbox:   make(chan Outbound, max(opts.OutboxSize, 1)),
		reload:   make(chan struct{}, 1),
		scroll:   events.NewSignal[events.Scroll](),
		resize:   events.NewSignal[events.Resize](),
		surface:  &strokes{},
		writer:   typewriter.New(opts.TypeInterval),
	}

	rainOpts := opts.Rain
	if rainOpts.Seed == 0 {
		rainOpts.Seed = binary.BigEndian.Uint64(id[:8])
	}
	rain, err := animator.New(s.surface, rainOpts)
	if err != nil {
		return nil, fmt.Errorf("create animator: %w", err)
	}
	rain.Bind(s.resize)
	s.rain = rain

	sections := make([]models.SectionID, len(opts.Viewport.Sections))
	for i, name := range opts.Viewport.Sections {
		sections[i] = models.SectionID(name)
	}
	s.state = ui.NewState(sections)

	s.tracker = viewport.NewTracker(opts.Viewport, s.scroll, s.resize)
	s.tracker.OnChange(func(snap viewport.Snapshot) {
		s.pending = &snap
	})

	return s, nil
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// notifyReload tells the loop that the content changed. Never blocks.
func (s *Session) notifyReload() {
	select {
	case s.reload <- struct{}{}:
	default:
	}
}

// Run serves the session until the client disconnects or ctx is cancelled.
// A normal disconnect is not an error.
func (s *Session) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.readLoop(gctx) })
	g.Go(func() error { return s.writeLoop(gctx) })
	g.Go(func() error { return s.loop(gctx) })

	// a blocked read only returns once the connection is closed
	go func() {
		<-gctx.Done()
		_ = s.conn.Close()
	}()

	err := g.Wait()
	if errors.Is(err, errDisconnected) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// readLoop decodes client frames into the inbox. Only transport errors end
// the session; a frame that is not a valid message becomes msgInvalid.
func (s *Session) readLoop(ctx context.Context) error {
	for {
		_, r, err := s.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("session read failed", zap.Error(err))
			}
			return errDisconnected
		}
		data, err := io.ReadAll(r)
		if err != nil {
			s.logger.Debug("session read failed", zap.Error(err))
			return errDisconnected
		}

		var msg Inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			msg = Inbound{Type: msgInvalid, Text: err.Error()}
		}

		select {
		case s.inbox <- msg:
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Session) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-s.outbox:
			if err := s.conn.WriteJSON(msg); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%w: %v", errDisconnected, err)
			}
		}
	}
}

func (s *Session) loop(ctx context.Context) error {
	defer s.teardown()

	frames := time.NewTicker(s.opts.FrameInterval)
	defer frames.Stop()

	s.send(ctx, MsgHello, Hello{
		SessionID:  s.id,
		Sections:   s.opts.Viewport.Sections,
		Categories: models.Categories,
		CellSize:   s.rain.Options().CellSize,
		FPS:        s.rain.Options().FPS,
	})
	s.send(ctx, MsgState, s.state.Snapshot())
	s.startTyping(ctx, s.profile.Greeting())

	for {
		var typeC <-chan time.Time
		if s.typeTick != nil {
			typeC = s.typeTick.C
		}

		select {
		case <-ctx.Done():
			return nil

		case msg := <-s.inbox:
			s.handle(ctx, msg)

		case now := <-frames.C:
			s.frame(now)

		case <-typeC:
			s.writer.Tick()
			s.send(ctx, MsgTypewriter, Typewriter{Text: s.writer.Text(), Done: s.writer.Done()})
			if s.writer.Done() {
				s.stopTyping()
			}

		case <-s.reload:
			s.sendProjects(ctx, s.state.Filter())
		}

		s.flushViewport(ctx)
	}
}

func (s *Session) handle(ctx context.Context, msg Inbound) {
	if err := s.opts.Limits.check(msg); err != nil {
		s.sendError(ctx, err)
		return
	}

	switch msg.Type {
	case MsgResize:
		s.resize.Emit(events.Resize{Width: msg.Width, Height: msg.Height})

	case MsgScroll:
		s.scroll.Emit(events.Scroll{Y: msg.Y})

	case MsgLayout:
		s.layout = msg.Sections
		if s.tracker.Started() {
			s.tracker.Relayout(msg.Sections)
		} else {
			s.tracker.Start(msg.Sections)
		}

	case MsgFilter:
		category, _, err := s.projects.FilterByName(msg.Category)
		if err != nil {
			s.sendError(ctx, err)
			return
		}
		if changed, _ := s.state.SetFilter(category); changed {
			s.send(ctx, MsgState, s.state.Snapshot())
		}
		s.sendProjects(ctx, category)

	case MsgMenu:
		if msg.Open == nil {
			s.sendError(ctx, errors.New("menu: open is required"))
			return
		}
		if s.state.SetMenuOpen(*msg.Open) {
			s.send(ctx, MsgState, s.state.Snapshot())
		}

	case MsgMenuToggle:
		s.state.ToggleMenu()
		s.send(ctx, MsgState, s.state.Snapshot())

	case MsgNavigate:
		if err := s.state.Navigate(msg.Section); err != nil {
			s.sendError(ctx, err)
			return
		}
		s.send(ctx, MsgState, s.state.Snapshot())
		if el, ok := s.layout.Find(string(msg.Section)); ok {
			s.send(ctx, MsgScrollTo, ScrollTo{Top: el.Top, Behavior: "smooth"})
		}

	case MsgScrollToTop:
		s.send(ctx, MsgScrollTo, ScrollTo{Top: 0, Behavior: "smooth"})

	case MsgRetype:
		text := msg.Text
		if text == "" {
			text = s.profile.Greeting()
		}
		s.startTyping(ctx, text)

	case msgInvalid:
		s.sendError(ctx, fmt.Errorf("invalid message: %s", msg.Text))

	default:
		s.sendError(ctx, fmt.Errorf("unknown message type %q", msg.Type))
	}
}

// frame offers the animator a frame and ships whatever it drew
func (s *Session) frame(now time.Time) {
	if s.rain.Columns() == 0 {
		return
	}
	if !s.rain.Frame(now) {
		return
	}
	f := s.surface.take()

	// frames are only decoration, drop them rather than stall the loop
	select {
	case s.outbox <- Outbound{Type: MsgFrame, Data: f}:
	default:
		s.dropped++
		if s.dropped%100 == 1 {
			s.logger.Debug("dropping frames, client is slow", zap.Int("dropped", s.dropped))
		}
	}
}

func (s *Session) startTyping(ctx context.Context, text string) {
	s.stopTyping()
	s.writer.Start(text)
	s.send(ctx, MsgTypewriter, Typewriter{Text: s.writer.Text(), Done: s.writer.Done()})
	if !s.writer.Done() {
		s.typeTick = time.NewTicker(s.writer.Interval())
	}
}

func (s *Session) stopTyping() {
	if s.typeTick != nil {
		s.typeTick.Stop()
		s.typeTick = nil
	}
}

// flushViewport sends the tracker's latest snapshot and folds it into the
// ui state
func (s *Session) flushViewport(ctx context.Context) {
	if s.pending == nil {
		return
	}
	snap := *s.pending
	s.pending = nil

	s.send(ctx, MsgViewport, snap)

	changed := s.state.SetScrolledPast(snap.ShowScrollTop)
	if active, err := s.state.SetActive(models.SectionID(snap.Active)); err == nil && active {
		changed = true
	}
	if changed {
		s.send(ctx, MsgState, s.state.Snapshot())
	}
}

func (s *Session) sendProjects(ctx context.Context, category models.Category) {
	projects, err := s.projects.Filter(category)
	if err != nil {
		s.sendError(ctx, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	s.send(ctx, MsgProjects, Projects{Category: category, Projects: projects})
}

func (s *Session) sendError(ctx context.Context, err error) {
	s.logger.Debug("rejected client message", zap.Error(err))
	s.send(ctx, MsgError, ErrorData{Message: err.Error()})
}

func (s *Session) send(ctx context.Context, typ string, data any) {
	select {
	case s.outbox <- Outbound{Type: typ, Data: data}:
	case <-ctx.Done():
	}
}

// teardown releases every subscription and timer. Nothing the session owns
// fires afterwards.
func (s *Session) teardown() {
	s.stopTyping()
	s.rain.Stop()
	s.tracker.Close()
	s.scroll.Close()
	s.resize.Close()
	s.pending = nil
}
