package session

import (
	"fmt"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"rainfolio.dev/internal/viewport"
)

// Limits bounds what a page may report about itself. Messages outside
// them get an error reply and never reach the animator or the tracker.
type Limits struct {
	// MaxViewport caps the reported viewport width and height, in px
	MaxViewport int
	// MaxDocument caps scroll offsets and section extents, in px
	MaxDocument float64
	// MaxSections caps the number of elements in a layout message
	MaxSections int
	// MaxText caps the length of a retype target, in characters
	MaxText int
}

// DefaultLimits returns limits generous enough for any real screen
func DefaultLimits() Limits {
	return Limits{
		MaxViewport: 8192,
		MaxDocument: 1_000_000,
		MaxSections: 64,
		MaxText:     280,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxViewport <= 0 {
		l.MaxViewport = d.MaxViewport
	}
	if l.MaxDocument <= 0 {
		l.MaxDocument = d.MaxDocument
	}
	if l.MaxSections <= 0 {
		l.MaxSections = d.MaxSections
	}
	if l.MaxText <= 0 {
		l.MaxText = d.MaxText
	}
	return l
}

// check rejects a client message whose values fall outside the limits
func (l Limits) check(msg Inbound) error {
	switch msg.Type {
	case MsgResize:
		if err := validation.Validate(msg.Width, validation.Min(0), validation.Max(l.MaxViewport)); err != nil {
			return fmt.Errorf("resize: width %w", err)
		}
		if err := validation.Validate(msg.Height, validation.Min(0), validation.Max(l.MaxViewport)); err != nil {
			return fmt.Errorf("resize: height %w", err)
		}

	case MsgScroll:
		if err := validation.Validate(msg.Y, validation.Min(-l.MaxDocument), validation.Max(l.MaxDocument)); err != nil {
			return fmt.Errorf("scroll: y %w", err)
		}

	case MsgLayout:
		if err := validation.Validate(len(msg.Sections), validation.Max(l.MaxSections)); err != nil {
			return fmt.Errorf("layout: section count %w", err)
		}
		for _, el := range msg.Sections {
			if err := l.checkElement(el); err != nil {
				return fmt.Errorf("layout: section %q: %w", el.ID, err)
			}
		}

	case MsgRetype:
		if n := utf8.RuneCountInString(msg.Text); n > l.MaxText {
			return fmt.Errorf("retype: text has %d characters, at most %d allowed", n, l.MaxText)
		}
	}
	return nil
}

func (l Limits) checkElement(el viewport.Element) error {
	return validation.ValidateStruct(&el.Rect,
		validation.Field(&el.Rect.Top, validation.Min(0.0), validation.Max(l.MaxDocument)),
		validation.Field(&el.Rect.Height, validation.Min(0.0), validation.Max(l.MaxDocument)),
	)
}
