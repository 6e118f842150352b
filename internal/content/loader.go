// Package content loads the static page content (profile, projects, work
// history, education) from a data directory and keeps it current.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"rainfolio.dev/internal/models"
)

// Document names inside the data directory, without extension
const (
	DocProfile    = "profile"
	DocProjects   = "projects"
	DocExperience = "experience"
	DocEducation  = "education"
)

// Documents lists every document Load reads
var Documents = []string{DocProfile, DocProjects, DocExperience, DocEducation}

// extensions are tried in order; the first file that exists wins
var extensions = []string{".json", ".yaml", ".yml"}

// Load reads every document from dir. A missing document leaves its
// section empty. Records are not validated: absent fields stay blank.
func Load(dir string) (*models.Content, error) {
	c := &models.Content{}

	if _, err := readDoc(dir, DocProfile, &c.Profile); err != nil {
		return nil, err
	}

	var projects models.ProjectList
	if _, err := readDoc(dir, DocProjects, &projects); err != nil {
		return nil, err
	}
	c.Projects = projects.Projects

	var experience models.ExperienceList
	if _, err := readDoc(dir, DocExperience, &experience); err != nil {
		return nil, err
	}
	c.Experience = experience.Experience

	var education models.EducationList
	if _, err := readDoc(dir, DocEducation, &education); err != nil {
		return nil, err
	}
	c.Education = education.Education

	return c, nil
}

// IsDocument reports whether path names one of the content documents
func IsDocument(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]

	for _, doc := range Documents {
		if doc != name {
			continue
		}
		for _, e := range extensions {
			if e == ext {
				return true
			}
		}
	}
	return false
}

// readDoc decodes <dir>/<name>.<ext> into out and reports whether a file
// was found
func readDoc[T any](dir, name string, out *T) (bool, error) {
	for _, ext := range extensions {
		path := filepath.Join(dir, name+ext)

		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if ext == ".json" {
			err = json.Unmarshal(data, out)
		} else {
			err = yaml.Unmarshal(data, out)
		}
		if err != nil {
			return false, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return true, nil
	}
	return false, nil
}
