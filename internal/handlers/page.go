package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"rainfolio.dev/internal/content"
	"rainfolio.dev/internal/models"
	"rainfolio.dev/internal/services"
	"rainfolio.dev/web"
)

// pageData is what index.html renders
type pageData struct {
	Profile    models.Profile
	Greeting   string
	Experience []models.Experience
	Education  []models.Education
	Projects   []models.Project
	Categories []models.Category
	Filter     models.Category
	Sections   []string
}

// PageHandler renders the single page
type PageHandler struct {
	projectService *services.ProjectService
	profileService *services.ProfileService
	sections       []string
	tmpl           *template.Template
	logger         *zap.Logger
}

// NewPageHandler parses the embedded templates
func NewPageHandler(ps *services.ProjectService, prof *services.ProfileService, sections []string, logger *zap.Logger) (*PageHandler, error) {
	tmpl, err := web.Templates(template.FuncMap{
		"markdown": content.MarkdownOrText,
	})
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{
		projectService: ps,
		profileService: prof,
		sections:       sections,
		tmpl:           tmpl,
		logger:         logger,
	}, nil
}

// Index handles GET /[?category=C]. The filter is applied server-side so
// the page is complete without a session.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	category, projects, err := h.projectService.FilterByName(r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	data := pageData{
		Profile:    h.profileService.Profile(),
		Greeting:   h.profileService.Greeting(),
		Experience: h.profileService.Experience(),
		Education:  h.profileService.Education(),
		Projects:   projects,
		Categories: models.Categories,
		Filter:     category,
		Sections:   h.sections,
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		h.logger.Error("render page", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
