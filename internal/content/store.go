package content

import (
	"sync"

	"rainfolio.dev/internal/models"
)

// Store holds the current content. Readers get the snapshot that was
// current when they asked; a reload swaps the whole snapshot at once.
type Store struct {
	mu      sync.RWMutex
	content *models.Content
	version int
}

// NewStore creates a store holding c
func NewStore(c *models.Content) *Store {
	if c == nil {
		c = &models.Content{}
	}
	return &Store{content: c, version: 1}
}

// Content returns the current snapshot. Callers must not modify it.
func (s *Store) Content() *models.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// Projects returns the current project list
func (s *Store) Projects() []models.Project {
	return s.Content().Projects
}

// Profile returns the current profile
func (s *Store) Profile() models.Profile {
	return s.Content().Profile
}

// Experience returns the current work history
func (s *Store) Experience() []models.Experience {
	return s.Content().Experience
}

// Education returns the current education entries
func (s *Store) Education() []models.Education {
	return s.Content().Education
}

// Version counts the snapshots the store has held
func (s *Store) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Replace swaps in a new snapshot
func (s *Store) Replace(c *models.Content) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = c
	s.version++
}
