package models

import "strings"

// Category is the closed set a project is filed under
type Category string

const (
	CategoryAll     Category = "All"
	CategoryWeb     Category = "Web"
	CategorySystems Category = "Systems"
	CategoryData    Category = "Data"
	CategoryTools   Category = "Tools"
)

// Categories lists every filter choice, "All" first
var Categories = []Category{CategoryAll, CategoryWeb, CategorySystems, CategoryData, CategoryTools}

// ParseCategory matches a category name case-insensitively. An empty name
// is "All".
func ParseCategory(name string) (Category, bool) {
	if strings.TrimSpace(name) == "" {
		return CategoryAll, true
	}
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(name)) {
			return c, true
		}
	}
	return "", false
}

// Project represents a portfolio project
type Project struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Category    Category `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
	Skills      []string `json:"skills" yaml:"skills"`
	RepoURL     string   `json:"repo_url,omitempty" yaml:"repo_url"`
	LiveURL     string   `json:"live_url,omitempty" yaml:"live_url"`
	Year        int      `json:"year,omitempty" yaml:"year"`
	Featured    bool     `json:"featured,omitempty" yaml:"featured"`
}

// ProjectList wraps the array of projects
type ProjectList struct {
	Projects []Project `json:"projects" yaml:"projects"`
}
