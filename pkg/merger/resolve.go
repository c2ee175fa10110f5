package merger

import (
	"strings"

	"github.com/nikogura/resume-versions/pkg/document"
	"github.com/nikogura/resume-versions/pkg/profile"
	"github.com/nikogura/resume-versions/pkg/validator"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// Version defaults.
const (
	DefaultThemeColor    = "#666666"
	DefaultIcon          = "fas fa-file-alt"
	DefaultProjectsLimit = 5
)

// DefaultSectionsOrder is used by versions that declare no sections_order.
func DefaultSectionsOrder() (sections []string) {
	sections = []string{
		profile.SectionSummary,
		profile.SectionTechnicalSkills,
		profile.SectionProjects,
		profile.SectionEducation,
	}
	return sections
}

// ResolvedVersion is a version entry with defaults applied and references
// checked against the profile.
type ResolvedVersion struct {
	Key                  string            `json:"key"`
	DisplayName          string            `json:"display_name"`
	ThemeColor           string            `json:"theme_color"`
	Icon                 string            `json:"icon"`
	Summary              string            `json:"summary"`
	SkillsFocus          []string          `json:"skills_focus"`
	SectionsOrder        []string          `json:"sections_order"`
	ProjectsLimit        int               `json:"projects_limit"`
	IncludeProjects      []string          `json:"include_projects,omitempty"`
	DescriptionOverrides map[string]string `json:"project_descriptions,omitempty"`
	IncludeCoverLetter   bool              `json:"include_cover_letter"`
}

func (m *Model) resolveVersion(key string, entry gjson.Result) (version ResolvedVersion) {
	version = ResolvedVersion{
		Key:                  key,
		DisplayName:          document.Text(validator.VersionField(entry, "display_name")),
		ThemeColor:           DefaultThemeColor,
		Icon:                 DefaultIcon,
		Summary:              document.Text(validator.VersionField(entry, "summary")),
		SectionsOrder:        DefaultSectionsOrder(),
		ProjectsLimit:        DefaultProjectsLimit,
		DescriptionOverrides: make(map[string]string),
	}

	if version.DisplayName == "" {
		version.DisplayName = key
	}

	color := entry.Get("theme_color")
	if document.Present(color) {
		if color.Type == gjson.String && validator.IsHexColor(color.Str) {
			version.ThemeColor = color.Str
		} else {
			m.warn("Version %q: invalid theme_color %q, using %s", key, color.String(), DefaultThemeColor)
		}
	}

	if icon := document.Text(entry.Get("icon")); icon != "" {
		version.Icon = icon
	}

	version.SkillsFocus = m.resolveFocus(key, validator.VersionField(entry, "skills_focus", "selected_skills"))

	if order := validator.VersionField(entry, "sections_order"); order.IsArray() {
		if sections := document.Strings(order); len(sections) > 0 {
			version.SectionsOrder = sections
		}
	}

	if limit := validator.VersionField(entry, "projects_limit"); document.IsInteger(limit) {
		version.ProjectsLimit = max(int(limit.Int()), 0)
	}

	if include := validator.VersionField(entry, "include_projects"); include.IsArray() {
		version.IncludeProjects = lo.Uniq(lo.Filter(document.Strings(include), func(id string, _ int) (ok bool) {
			ok = m.profile.HasProject(id)
			return ok
		}))
	}

	for _, override := range document.Entries(entry.Get("content_overrides.project_descriptions")) {
		if override.Value.Type != gjson.String || !m.profile.HasProject(override.Key) {
			continue
		}
		version.DescriptionOverrides[override.Key] = override.Value.Str
	}

	if cover := validator.VersionField(entry, "include_cover_letter"); cover.Type == gjson.True {
		version.IncludeCoverLetter = true
	}

	return version
}

// resolveFocus keeps the focus ids the profile knows.  Unknown ids are dropped
// with a single warning; an unusable list selects every id.
func (m *Model) resolveFocus(key string, focus gjson.Result) (ids []string) {
	available := m.profile.SkillIDs()

	if !focus.IsArray() {
		ids = available
		return ids
	}

	requested := document.Strings(focus)
	kept, dropped := lo.FilterReject(requested, func(id string, _ int) (ok bool) {
		ok = lo.Contains(available, id)
		return ok
	})
	kept = lo.Uniq(kept)

	switch {
	case len(kept) == 0 && len(dropped) > 0:
		m.warn("Version %q: unknown skill ids [%s] dropped, no valid skills left, using all available [%s]",
			key, strings.Join(dropped, ", "), strings.Join(available, ", "))
		ids = available
	case len(kept) == 0:
		m.warn("Version %q: skills_focus selects nothing, using all available [%s]",
			key, strings.Join(available, ", "))
		ids = available
	case len(dropped) > 0:
		m.warn("Version %q: unknown skill ids [%s] dropped, available [%s]",
			key, strings.Join(dropped, ", "), strings.Join(available, ", "))
		ids = kept
	default:
		ids = kept
	}

	return ids
}
