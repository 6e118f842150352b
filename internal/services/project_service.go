package services

import (
	"fmt"

	"rainfolio.dev/internal/apperr"
	"rainfolio.dev/internal/models"
)

// ProjectSource supplies the current project list
type ProjectSource interface {
	Projects() []models.Project
}

// ProjectService handles project-related operations
type ProjectService struct {
	source ProjectSource
}

// NewProjectService creates a new ProjectService
func NewProjectService(source ProjectSource) *ProjectService {
	return &ProjectService{source: source}
}

// GetAll returns all projects
func (s *ProjectService) GetAll() []models.Project {
	return s.source.Projects()
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	projects := s.source.Projects()
	for i := range projects {
		if projects[i].ID == id {
			p := projects[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", id, apperr.ErrNotFound)
}

// Filter returns the projects filed under category, in their original
// order. CategoryAll returns the full list unchanged.
func (s *ProjectService) Filter(category models.Category) ([]models.Project, error) {
	projects := s.source.Projects()
	if category == models.CategoryAll {
		return projects, nil
	}
	if !isCategory(category) {
		return nil, fmt.Errorf("%q: %w", category, apperr.ErrUnknownCategory)
	}

	matched := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// FilterByName parses name as a category and filters by it
func (s *ProjectService) FilterByName(name string) (models.Category, []models.Project, error) {
	category, ok := models.ParseCategory(name)
	if !ok {
		return "", nil, fmt.Errorf("%q: %w", name, apperr.ErrUnknownCategory)
	}
	projects, err := s.Filter(category)
	return category, projects, err
}

func isCategory(c models.Category) bool {
	for _, known := range models.Categories {
		if known == c {
			return true
		}
	}
	return false
}
