package profile

import (
	"strconv"
	"strings"

	"github.com/nikogura/resume-versions/pkg/document"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Decode builds a Profile from a raw document.  Decoding is lenient: fields of
// the wrong shape are left empty, since shape problems are reported by the
// validator rather than here.  Only a non-object document is an error.
func Decode(doc document.Raw) (p Profile, err error) {
	if !doc.IsObject() {
		err = errors.New("profile document must be a JSON object")
		return p, err
	}

	root := doc.Root()
	p = Profile{
		PersonalInfo:    decodePersonalInfo(root.Get("personal_info")),
		Education:       decodeEducation(root.Get("education")),
		SkillsPool:      decodeSkillsPool(root.Get("skills_pool")),
		TechnicalSkills: decodeTechnicalSkills(root.Get("technical_skills")),
		Projects:        decodeProjects(root.Get("projects")),
		Publications:    decodePublications(root.Get("publications")),
		Certifications:  document.Strings(root.Get("certifications")),
		PhDResearch:     decodePhDResearch(root.Get("phd_research")),
		WorkExperience:  decodeWorkExperience(root.Get("work_experience")),
	}

	return p, err
}

func decodePersonalInfo(v gjson.Result) (info PersonalInfo) {
	if !v.IsObject() {
		return info
	}

	info = PersonalInfo{
		Name:     document.Text(v.Get("name")),
		Title:    document.Text(v.Get("title")),
		Email:    document.Text(v.Get("email")),
		Phone:    document.Text(v.Get("phone")),
		Location: document.Text(v.Get("location")),
		Website:  document.Text(v.Get("website")),
	}

	for _, entry := range document.Entries(v.Get("social")) {
		url := document.Text(entry.Value)
		if url == "" {
			continue
		}
		info.Social = append(info.Social, SocialLink{Label: entry.Key, URL: url})
	}

	return info
}

func decodeEducation(v gjson.Result) (education []Education) {
	education = make([]Education, 0)
	if !v.IsArray() {
		return education
	}

	for _, item := range v.Array() {
		if !item.IsObject() {
			continue
		}
		education = append(education, Education{
			Degree:      document.Text(item.Get("degree")),
			Institution: document.Text(item.Get("institution")),
			Period:      document.Text(item.Get("period")),
			Research:    document.Text(item.Get("research")),
			GPA:         scalarText(item.Get("gpa")),
			Highlights:  optionalStrings(item.Get("highlights")),
		})
	}

	return education
}

func decodeSkillsPool(v gjson.Result) (pool []Skill) {
	pool = make([]Skill, 0)
	for _, entry := range document.Entries(v) {
		if !entry.Value.IsObject() {
			continue
		}

		skill := Skill{
			ID:       entry.Key,
			Name:     document.Text(entry.Value.Get("name")),
			Category: document.Text(entry.Value.Get("category")),
			Level:    level(entry.Value.Get("level")),
		}
		for _, key := range DetailGroupKeys() {
			skill.Details.set(key, optionalStrings(document.Field(entry.Value, key)))
		}

		pool = append(pool, skill)
	}
	return pool
}

func decodeTechnicalSkills(v gjson.Result) (categories []SkillCategory) {
	categories = make([]SkillCategory, 0)
	for _, entry := range document.Entries(v) {
		if !entry.Value.IsObject() {
			continue
		}

		category := SkillCategory{
			ID:    entry.Key,
			Title: document.Text(entry.Value.Get("title")),
			Items: make([]SkillItem, 0),
		}
		for _, item := range entry.Value.Get("items").Array() {
			if !item.IsObject() {
				continue
			}
			category.Items = append(category.Items, SkillItem{
				Name:     document.Text(item.Get("name")),
				Level:    level(item.Get("level")),
				Keywords: optionalStrings(item.Get("keywords")),
			})
		}

		categories = append(categories, category)
	}
	return categories
}

func decodeProjects(v gjson.Result) (projects []Project) {
	projects = make([]Project, 0)
	if !v.IsArray() {
		return projects
	}

	for _, item := range v.Array() {
		if !item.IsObject() {
			continue
		}

		project := Project{
			ID:          scalarText(item.Get("id")),
			Title:       document.Text(item.Get("title")),
			Description: document.Text(item.Get("description")),
			Features:    optionalStrings(item.Get("features")),
			TechStack:   joinList(item.Get("tech_stack")),
		}
		for _, cs := range item.Get("items").Array() {
			if !cs.IsObject() {
				continue
			}
			project.CaseStudies = append(project.CaseStudies, CaseStudy{
				Title:   document.Text(cs.Get("title")),
				Details: document.Strings(cs.Get("details")),
			})
		}

		projects = append(projects, project)
	}
	return projects
}

func decodePublications(v gjson.Result) (publications []Publication) {
	publications = make([]Publication, 0)
	if !v.IsArray() {
		return publications
	}

	for _, item := range v.Array() {
		if !item.IsObject() {
			continue
		}
		publications = append(publications, Publication{
			Title:   document.Text(item.Get("title")),
			Authors: joinList(item.Get("authors")),
			Venue:   document.Text(item.Get("venue")),
			Year:    scalarText(item.Get("year")),
			Type:    document.Text(item.Get("type")),
		})
	}
	return publications
}

func decodePhDResearch(v gjson.Result) (research *PhDResearch) {
	if !v.IsObject() {
		return research
	}

	research = &PhDResearch{Sections: make([]ResearchSection, 0)}
	for _, section := range v.Get("sections").Array() {
		if !section.IsObject() {
			continue
		}

		rs := ResearchSection{
			Title: document.Text(section.Get("title")),
			Items: make([]ResearchItem, 0),
		}
		for _, item := range section.Get("items").Array() {
			switch {
			case item.IsObject():
				rs.Items = append(rs.Items, ResearchItem{
					Point:  document.Text(item.Get("point")),
					Detail: document.Text(item.Get("detail")),
				})
			case item.Type == gjson.String:
				rs.Items = append(rs.Items, ResearchItem{Point: item.Str})
			}
		}

		research.Sections = append(research.Sections, rs)
	}
	return research
}

func decodeWorkExperience(v gjson.Result) (jobs []WorkExperience) {
	jobs = make([]WorkExperience, 0)
	if !v.IsArray() {
		return jobs
	}

	for _, item := range v.Array() {
		if !item.IsObject() {
			continue
		}
		jobs = append(jobs, WorkExperience{
			Title:            document.Text(item.Get("title")),
			Company:          document.Text(item.Get("company")),
			Location:         document.Text(item.Get("location")),
			Period:           document.Text(item.Get("period")),
			Type:             document.Text(item.Get("type")),
			Responsibilities: optionalStrings(item.Get("responsibilities")),
			Achievements:     optionalStrings(item.Get("achievements")),
		})
	}
	return jobs
}

// level returns an integer level in [1,5], or 0 when unset or out of range.
func level(v gjson.Result) (lvl int) {
	if !document.IsInteger(v) {
		return lvl
	}
	n := int(v.Int())
	if n >= 1 && n <= 5 {
		lvl = n
	}
	return lvl
}

// scalarText renders strings and numbers as text; years and ids show up as both.
func scalarText(v gjson.Result) (text string) {
	switch v.Type {
	case gjson.String:
		text = v.Str
	case gjson.Number:
		if document.IsInteger(v) {
			text = strconv.FormatInt(v.Int(), 10)
		} else {
			text = v.Raw
		}
	}
	return text
}

// joinList accepts either a display string or a list joined with ", ".
func joinList(v gjson.Result) (text string) {
	if v.IsArray() {
		text = strings.Join(document.Strings(v), ", ")
		return text
	}
	text = document.Text(v)
	return text
}

func optionalStrings(v gjson.Result) (values []string) {
	if !v.IsArray() {
		return values
	}
	values = document.Strings(v)
	if len(values) == 0 {
		values = nil
	}
	return values
}
