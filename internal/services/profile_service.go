package services

import (
	"rainfolio.dev/internal/models"
)

// ProfileSource supplies the biography, work history and education
type ProfileSource interface {
	Profile() models.Profile
	Experience() []models.Experience
	Education() []models.Education
}

// ProfileService serves the non-project sections of the page
type ProfileService struct {
	source ProfileSource
}

// NewProfileService creates a new ProfileService
func NewProfileService(source ProfileSource) *ProfileService {
	return &ProfileService{source: source}
}

// Profile returns the biography
func (s *ProfileService) Profile() models.Profile {
	return s.source.Profile()
}

// Experience returns the work history, most recent first as stored
func (s *ProfileService) Experience() []models.Experience {
	return s.source.Experience()
}

// Education returns the education entries
func (s *ProfileService) Education() []models.Education {
	return s.source.Education()
}

// Greeting returns the text the hero typewriter reveals, falling back to
// the name when no greeting is configured
func (s *ProfileService) Greeting() string {
	p := s.source.Profile()
	if p.Greeting != "" {
		return p.Greeting
	}
	if p.Name != "" {
		return "Hi, I'm " + p.Name + "."
	}
	return ""
}
