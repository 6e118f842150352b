package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"rainfolio.dev/internal/models"
	"rainfolio.dev/internal/services"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: ps}
}

// ListProjects handles GET /api/projects[?category=C]
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	_, projects, err := h.projectService.FilterByName(r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	respondJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.projectService.GetByID(id)
	if err != nil {
		respondError(w, statusFor(err), "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// ListCategories handles GET /api/categories
func (h *ProjectHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.Categories)
}
