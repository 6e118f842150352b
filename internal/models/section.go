package models

// SectionID names a navigable section of the page
type SectionID string

// SectionNone means no section is active yet
const SectionNone SectionID = ""

const (
	SectionAbout      SectionID = "about"
	SectionExperience SectionID = "experience"
	SectionEducation  SectionID = "education"
	SectionProjects   SectionID = "projects"
)

// Sections is the navigation order
var Sections = []SectionID{SectionAbout, SectionExperience, SectionEducation, SectionProjects}

// SectionNames returns the given sections as plain strings
func SectionNames(ids []SectionID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return names
}
