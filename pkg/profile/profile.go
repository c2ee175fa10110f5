package profile

// Section names a profile can carry data for.
const (
	SectionSummary         = "summary"
	SectionTechnicalSkills = "technical_skills"
	SectionProjects        = "projects"
	SectionPhDResearch     = "phd_research"
	SectionEducation       = "education"
	SectionPublications    = "publications"
	SectionCertifications  = "certifications"
	SectionWorkExperience  = "work_experience"
)

// CanonicalSections is the section list used when a version set declares none.
func CanonicalSections() (sections []string) {
	sections = []string{
		SectionSummary,
		SectionTechnicalSkills,
		SectionProjects,
		SectionPhDResearch,
		SectionEducation,
		SectionPublications,
		SectionCertifications,
	}
	return sections
}

// RenderableSections lists every section name the projector knows how to fill.
func RenderableSections() (sections []string) {
	sections = append(CanonicalSections(), SectionWorkExperience)
	return sections
}

// UsesSkillsPool reports whether skills are selected by skill id rather than
// by legacy category id.
func (p *Profile) UsesSkillsPool() (ok bool) {
	ok = len(p.SkillsPool) > 0
	return ok
}

// SkillIDs returns the selectable skill ids in document order: skills_pool
// keys when a pool exists, else technical_skills category keys.
func (p *Profile) SkillIDs() (ids []string) {
	ids = make([]string, 0)
	if p.UsesSkillsPool() {
		for _, s := range p.SkillsPool {
			ids = append(ids, s.ID)
		}
		return ids
	}
	for _, c := range p.TechnicalSkills {
		ids = append(ids, c.ID)
	}
	return ids
}

// SkillCategories returns the distinct categories of the skills pool in order
// of first appearance, or the legacy category ids.
func (p *Profile) SkillCategories() (categories []string) {
	categories = make([]string, 0)
	if !p.UsesSkillsPool() {
		categories = p.SkillIDs()
		return categories
	}
	seen := make(map[string]struct{})
	for _, s := range p.SkillsPool {
		if _, ok := seen[s.Category]; ok || s.Category == "" {
			continue
		}
		seen[s.Category] = struct{}{}
		categories = append(categories, s.Category)
	}
	return categories
}

// Skill looks up a pool skill by id.
func (p *Profile) Skill(id string) (skill Skill, ok bool) {
	for _, s := range p.SkillsPool {
		if s.ID == id {
			skill = s
			ok = true
			return skill, ok
		}
	}
	return skill, ok
}

// Category looks up a legacy skill category by id.
func (p *Profile) Category(id string) (category SkillCategory, ok bool) {
	for _, c := range p.TechnicalSkills {
		if c.ID == id {
			category = c
			ok = true
			return category, ok
		}
	}
	return category, ok
}

// HasProject reports whether a project with the id exists.
func (p *Profile) HasProject(id string) (ok bool) {
	for _, project := range p.Projects {
		if project.ID == id && id != "" {
			ok = true
			return ok
		}
	}
	return ok
}

// HasSection reports whether the profile carries non-empty data for a section.
// The summary lives on versions, so it is never reported here.
func (p *Profile) HasSection(name string) (ok bool) {
	switch name {
	case SectionTechnicalSkills:
		ok = len(p.SkillsPool) > 0 || len(p.TechnicalSkills) > 0
	case SectionProjects:
		ok = len(p.Projects) > 0
	case SectionPhDResearch:
		ok = p.PhDResearch != nil && len(p.PhDResearch.Sections) > 0
	case SectionEducation:
		ok = len(p.Education) > 0
	case SectionPublications:
		ok = len(p.Publications) > 0
	case SectionCertifications:
		ok = len(p.Certifications) > 0
	case SectionWorkExperience:
		ok = len(p.WorkExperience) > 0
	}
	return ok
}
