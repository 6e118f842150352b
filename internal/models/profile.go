package models

// Link is an outbound profile link
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Profile is the biography shown in the about section
type Profile struct {
	Name     string `json:"name" yaml:"name"`
	Headline string `json:"headline" yaml:"headline"`
	// Greeting is revealed by the typewriter in the hero banner
	Greeting string `json:"greeting" yaml:"greeting"`
	About    string `json:"about" yaml:"about"`
	Email    string `json:"email,omitempty" yaml:"email"`
	Links    []Link `json:"links,omitempty" yaml:"links"`
}

// Experience is one position in the work history
type Experience struct {
	Role       string   `json:"role" yaml:"role"`
	Company    string   `json:"company" yaml:"company"`
	Location   string   `json:"location,omitempty" yaml:"location"`
	Start      string   `json:"start" yaml:"start"`
	End        string   `json:"end,omitempty" yaml:"end"`
	Highlights []string `json:"highlights" yaml:"highlights"`
	Skills     []string `json:"skills,omitempty" yaml:"skills"`
}

// ExperienceList wraps the array of positions
type ExperienceList struct {
	Experience []Experience `json:"experience" yaml:"experience"`
}

// Education is one degree or certification
type Education struct {
	Degree      string   `json:"degree" yaml:"degree"`
	Institution string   `json:"institution" yaml:"institution"`
	Start       string   `json:"start" yaml:"start"`
	End         string   `json:"end,omitempty" yaml:"end"`
	Highlights  []string `json:"highlights,omitempty" yaml:"highlights"`
}

// EducationList wraps the array of education entries
type EducationList struct {
	Education []Education `json:"education" yaml:"education"`
}

// Content is everything the page shows
type Content struct {
	Profile    Profile      `json:"profile"`
	Projects   []Project    `json:"projects"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}
