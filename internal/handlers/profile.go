package handlers

import (
	"net/http"

	"rainfolio.dev/internal/models"
	"rainfolio.dev/internal/services"
)

// ProfileHandler serves the biography, work history and education
type ProfileHandler struct {
	profileService *services.ProfileService
	sections       []string
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(ps *services.ProfileService, sections []string) *ProfileHandler {
	return &ProfileHandler{profileService: ps, sections: sections}
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.profileService.Profile())
}

// ListExperience handles GET /api/experience
func (h *ProfileHandler) ListExperience(w http.ResponseWriter, r *http.Request) {
	experience := h.profileService.Experience()
	if experience == nil {
		experience = []models.Experience{}
	}
	respondJSON(w, http.StatusOK, experience)
}

// ListEducation handles GET /api/education
func (h *ProfileHandler) ListEducation(w http.ResponseWriter, r *http.Request) {
	education := h.profileService.Education()
	if education == nil {
		education = []models.Education{}
	}
	respondJSON(w, http.StatusOK, education)
}

// ListSections handles GET /api/sections
func (h *ProfileHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sections)
}
