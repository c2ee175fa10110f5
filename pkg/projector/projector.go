package projector

import (
	"slices"

	"github.com/nikogura/resume-versions/pkg/merger"
	"github.com/nikogura/resume-versions/pkg/profile"
	"github.com/samber/lo"
)

// OtherCategory groups pool skills that declare no category.
const OtherCategory = "other"

// SkillEntry is one rendered skill.
type SkillEntry struct {
	ID           string                `json:"id,omitempty"`
	Name         string                `json:"name"`
	Level        int                   `json:"level"`
	DetailGroups []profile.DetailGroup `json:"detail_groups"`
}

// SkillGroup is a titled group of skills.
type SkillGroup struct {
	Category string       `json:"category"`
	Title    string       `json:"title"`
	Items    []SkillEntry `json:"items"`
}

// RenderModel is the render-ready content of one version.
type RenderModel struct {
	VersionKey         string                   `json:"version_key"`
	DisplayName        string                   `json:"display_name"`
	ThemeClass         string                   `json:"theme_class"`
	ThemeColor         string                   `json:"theme_color"`
	Icon               string                   `json:"icon"`
	Summary            *string                  `json:"summary"`
	SectionsOrder      []string                 `json:"sections_order"`
	Skills             []SkillGroup             `json:"skills"`
	Projects           []profile.Project        `json:"projects"`
	PersonalInfo       profile.PersonalInfo     `json:"personal_info"`
	Education          []profile.Education      `json:"education"`
	Publications       []profile.Publication    `json:"publications"`
	Certifications     []string                 `json:"certifications"`
	PhDResearch        *profile.PhDResearch     `json:"phd_research"`
	WorkExperience     []profile.WorkExperience `json:"work_experience"`
	IncludeCoverLetter bool                     `json:"include_cover_letter"`
}

// Project derives the render model of a version.  It reads the model only, so
// repeated calls return equal results.  The returned slices are copies and
// may be modified freely.  An unknown key returns an error that
// matches merger.ErrVersionNotFound.
func Project(model *merger.Model, key string) (rm RenderModel, err error) {
	version, err := model.Version(key)
	if err != nil {
		return rm, err
	}

	projects, err := model.Projects(key)
	if err != nil {
		return rm, err
	}

	p := model.Profile()

	rm = RenderModel{
		VersionKey:         key,
		DisplayName:        version.DisplayName,
		ThemeClass:         model.ThemeClass(key),
		ThemeColor:         version.ThemeColor,
		Icon:               version.Icon,
		Skills:             skillGroups(p, version.SkillsFocus),
		Projects:           copyProjects(projects),
		PersonalInfo:       copyPersonalInfo(p.PersonalInfo),
		Education:          copyEducation(p.Education),
		Publications:       slices.Clone(p.Publications),
		Certifications:     slices.Clone(p.Certifications),
		PhDResearch:        copyPhDResearch(p.PhDResearch),
		WorkExperience:     copyWorkExperience(p.WorkExperience),
		IncludeCoverLetter: version.IncludeCoverLetter,
	}

	if version.Summary != "" {
		summary := version.Summary
		rm.Summary = &summary
	}

	rm.SectionsOrder = sectionsOrder(p, version.SectionsOrder, rm)

	return rm, err
}

// ProjectOrDefault projects key, or the default version when key is unknown.
// fellBack reports whether the default was used.
func ProjectOrDefault(model *merger.Model, key string) (rm RenderModel, fellBack bool, err error) {
	if !model.HasVersion(key) {
		key = model.DefaultVersionKey()
		fellBack = true
	}

	rm, err = Project(model, key)
	return rm, fellBack, err
}

// sectionsOrder keeps the recognized sections of a version that have something
// to show, without duplicates, in the version's order.
func sectionsOrder(p *profile.Profile, requested []string, rm RenderModel) (sections []string) {
	recognized := profile.RenderableSections()

	sections = lo.Filter(lo.Uniq(requested), func(name string, _ int) (ok bool) {
		if !lo.Contains(recognized, name) {
			return ok
		}
		switch name {
		case profile.SectionSummary:
			ok = rm.Summary != nil
		case profile.SectionTechnicalSkills:
			ok = len(rm.Skills) > 0
		case profile.SectionProjects:
			ok = len(rm.Projects) > 0
		default:
			ok = p.HasSection(name)
		}
		return ok
	})

	return sections
}

func skillGroups(p *profile.Profile, focus []string) (groups []SkillGroup) {
	if !p.UsesSkillsPool() {
		groups = categoryGroups(p, focus)
		return groups
	}

	groups = make([]SkillGroup, 0)
	index := make(map[string]int)

	for _, id := range focus {
		skill, ok := p.Skill(id)
		if !ok {
			continue
		}

		category := skill.Category
		if category == "" {
			category = OtherCategory
		}

		i, seen := index[category]
		if !seen {
			i = len(groups)
			index[category] = i
			groups = append(groups, SkillGroup{
				Category: category,
				Title:    profile.Title(category),
				Items:    make([]SkillEntry, 0),
			})
		}

		groups[i].Items = append(groups[i].Items, SkillEntry{
			ID:           skill.ID,
			Name:         skill.Name,
			Level:        skill.Level,
			DetailGroups: skill.Details.List(),
		})
	}

	return groups
}

func categoryGroups(p *profile.Profile, focus []string) (groups []SkillGroup) {
	groups = make([]SkillGroup, 0, len(focus))

	for _, id := range focus {
		category, ok := p.Category(id)
		if !ok {
			continue
		}

		title := category.Title
		if title == "" {
			title = profile.Title(id)
		}

		items := make([]SkillEntry, 0, len(category.Items))
		for _, item := range category.Items {
			details := profile.DetailGroups{Keywords: item.Keywords}
			items = append(items, SkillEntry{
				Name:         item.Name,
				Level:        item.Level,
				DetailGroups: details.List(),
			})
		}

		groups = append(groups, SkillGroup{
			Category: id,
			Title:    title,
			Items:    items,
		})
	}

	return groups
}
