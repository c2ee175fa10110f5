package profile

// Profile is the versionless source of all résumé content.
type Profile struct {
	PersonalInfo    PersonalInfo     `json:"personal_info"`
	Education       []Education      `json:"education"`
	SkillsPool      []Skill          `json:"skills_pool,omitempty"`
	TechnicalSkills []SkillCategory  `json:"technical_skills,omitempty"`
	Projects        []Project        `json:"projects"`
	Publications    []Publication    `json:"publications"`
	Certifications  []string         `json:"certifications"`
	PhDResearch     *PhDResearch     `json:"phd_research,omitempty"`
	WorkExperience  []WorkExperience `json:"work_experience,omitempty"`
}

// PersonalInfo holds name and contact details.
type PersonalInfo struct {
	Name     string       `json:"name"`
	Title    string       `json:"title,omitempty"`
	Email    string       `json:"email,omitempty"`
	Phone    string       `json:"phone,omitempty"`
	Location string       `json:"location,omitempty"`
	Website  string       `json:"website,omitempty"`
	Social   []SocialLink `json:"social,omitempty"`
}

// SocialLink is one labeled profile link, kept in document order.
type SocialLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Education is a degree entry.
type Education struct {
	Degree      string   `json:"degree"`
	Institution string   `json:"institution"`
	Period      string   `json:"period"`
	Research    string   `json:"research,omitempty"`
	GPA         string   `json:"gpa,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// Skill is an entry of the skills pool, keyed by ID.
type Skill struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Level    int          `json:"level"`
	Details  DetailGroups `json:"details"`
}

// DetailGroups holds the recognized labeled sub-lists of a skill.
type DetailGroups struct {
	TechStack    []string `json:"tech_stack,omitempty"`
	CoreSkills   []string `json:"core_skills,omitempty"`
	Methodology  []string `json:"methodology,omitempty"`
	UseScenarios []string `json:"use_scenarios,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

// SkillCategory is a legacy technical_skills category, keyed by ID.
type SkillCategory struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Items []SkillItem `json:"items"`
}

// SkillItem is a skill inside a legacy category.
type SkillItem struct {
	Name     string   `json:"name"`
	Level    int      `json:"level"`
	Keywords []string `json:"keywords,omitempty"`
}

// Project is a portfolio entry.
type Project struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Features    []string    `json:"features,omitempty"`
	TechStack   string      `json:"tech_stack,omitempty"`
	CaseStudies []CaseStudy `json:"case_studies,omitempty"`
}

// CaseStudy is a titled list of details attached to a project.
type CaseStudy struct {
	Title   string   `json:"title"`
	Details []string `json:"details"`
}

// Publication types.
const (
	PublicationPaper  = "Paper"
	PublicationPoster = "Poster"
)

// Publication is a paper or poster.
type Publication struct {
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Venue   string `json:"venue"`
	Year    string `json:"year"`
	Type    string `json:"type"`
}

// PhDResearch groups research highlights by section.
type PhDResearch struct {
	Sections []ResearchSection `json:"sections"`
}

// ResearchSection is a titled group of research points.
type ResearchSection struct {
	Title string         `json:"title"`
	Items []ResearchItem `json:"items"`
}

// ResearchItem is a research point with an optional elaboration.
type ResearchItem struct {
	Point  string `json:"point"`
	Detail string `json:"detail,omitempty"`
}

// WorkExperience is a job entry.
type WorkExperience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location,omitempty"`
	Period           string   `json:"period"`
	Type             string   `json:"type,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
}
