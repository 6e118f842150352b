// Package ui holds the transient state of one open page.
package ui

import (
	"fmt"

	"rainfolio.dev/internal/apperr"
	"rainfolio.dev/internal/models"
)

// Snapshot is the wire form of State
type Snapshot struct {
	Active       models.SectionID `json:"active"`
	Filter       models.Category  `json:"filter"`
	ScrolledPast bool             `json:"scrolled_past"`
	MenuOpen     bool             `json:"menu_open"`
}

// State is owned by a single view and discarded with it. Every setter
// rejects values outside its enum and reports whether anything changed.
type State struct {
	sections     []models.SectionID
	active       models.SectionID
	filter       models.Category
	scrolledPast bool
	menuOpen     bool
}

// NewState creates a state for a page with the given sections. The filter
// starts at "All" and no section is active.
func NewState(sections []models.SectionID) *State {
	if len(sections) == 0 {
		sections = models.Sections
	}
	return &State{sections: sections, filter: models.CategoryAll}
}

// HasSection reports whether id is one of the page's sections
func (s *State) HasSection(id models.SectionID) bool {
	for _, known := range s.sections {
		if known == id {
			return true
		}
	}
	return false
}

// SetActive marks id as the active section. SectionNone clears it.
func (s *State) SetActive(id models.SectionID) (bool, error) {
	if id != models.SectionNone && !s.HasSection(id) {
		return false, fmt.Errorf("%q: %w", id, apperr.ErrUnknownSection)
	}
	if s.active == id {
		return false, nil
	}
	s.active = id
	return true, nil
}

// SetFilter selects the project category filter
func (s *State) SetFilter(c models.Category) (bool, error) {
	valid := false
	for _, known := range models.Categories {
		if known == c {
			valid = true
			break
		}
	}
	if !valid {
		return false, fmt.Errorf("%q: %w", c, apperr.ErrUnknownCategory)
	}
	if s.filter == c {
		return false, nil
	}
	s.filter = c
	return true, nil
}

// SetScrolledPast records whether the page is scrolled past one viewport
func (s *State) SetScrolledPast(v bool) bool {
	if s.scrolledPast == v {
		return false
	}
	s.scrolledPast = v
	return true
}

// SetMenuOpen opens or closes the mobile menu
func (s *State) SetMenuOpen(v bool) bool {
	if s.menuOpen == v {
		return false
	}
	s.menuOpen = v
	return true
}

// ToggleMenu flips the mobile menu
func (s *State) ToggleMenu() {
	s.menuOpen = !s.menuOpen
}

// Navigate follows a nav link: the menu closes. The active section is left
// to the viewport tracker, which reports it once the page has scrolled.
func (s *State) Navigate(id models.SectionID) error {
	if !s.HasSection(id) {
		return fmt.Errorf("%q: %w", id, apperr.ErrUnknownSection)
	}
	s.menuOpen = false
	return nil
}

// Active returns the active section
func (s *State) Active() models.SectionID { return s.active }

// Filter returns the selected category
func (s *State) Filter() models.Category { return s.filter }

// Snapshot returns a copy of the state
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Active:       s.active,
		Filter:       s.filter,
		ScrolledPast: s.scrolledPast,
		MenuOpen:     s.menuOpen,
	}
}
