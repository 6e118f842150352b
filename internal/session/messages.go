package session

import (
	"rainfolio.dev/internal/models"
	"rainfolio.dev/internal/ui"
	"rainfolio.dev/internal/viewport"
)

// Client message types
const (
	MsgResize      = "resize"
	MsgScroll      = "scroll"
	MsgLayout      = "layout"
	MsgFilter      = "filter"
	MsgMenu        = "menu"
	MsgMenuToggle  = "menu.toggle"
	MsgNavigate    = "navigate"
	MsgScrollToTop = "scroll_to_top"
	MsgRetype      = "retype"

	// msgInvalid is produced by the reader for a frame it could not decode
	msgInvalid = "invalid"
)

// Server message types
const (
	MsgHello      = "hello"
	MsgFrame      = "frame"
	MsgTypewriter = "typewriter"
	MsgViewport   = "viewport"
	MsgState      = "state"
	MsgProjects   = "projects"
	MsgScrollTo   = "scroll_to"
	MsgError      = "error"
)

// Inbound is any message the page sends. Only the fields of its type are set.
type Inbound struct {
	Type     string           `json:"type"`
	Width    int              `json:"width,omitempty"`
	Height   int              `json:"height,omitempty"`
	Y        float64          `json:"y,omitempty"`
	Sections viewport.Layout  `json:"sections,omitempty"`
	Category string           `json:"category,omitempty"`
	Open     *bool            `json:"open,omitempty"`
	Section  models.SectionID `json:"section,omitempty"`
	Text     string           `json:"text,omitempty"`
}

// Outbound is the envelope of every message sent to the page
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hello opens every session
type Hello struct {
	SessionID  string            `json:"session_id"`
	Sections   []string          `json:"sections"`
	Categories []models.Category `json:"categories"`
	CellSize   int               `json:"cell_size"`
	FPS        int               `json:"fps"`
}

// Glyph is one character drawn at pixel (X, Y)
type Glyph struct {
	X int    `json:"x"`
	Y int    `json:"y"`
	G string `json:"g"`
}

// Frame is one drawn animator frame: overlay black at Fade, then the glyphs
type Frame struct {
	Fade   float64 `json:"fade"`
	Glyphs []Glyph `json:"glyphs"`
}

// Typewriter is the revealed part of the hero greeting
type Typewriter struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Projects is the filtered project list
type Projects struct {
	Category models.Category  `json:"category"`
	Projects []models.Project `json:"projects"`
}

// ScrollTo asks the page to scroll
type ScrollTo struct {
	Top      float64 `json:"top"`
	Behavior string  `json:"behavior"`
}

// ErrorData reports a rejected client message
type ErrorData struct {
	Message string `json:"message"`
}

// State mirrors ui.Snapshot on the wire
type State = ui.Snapshot
