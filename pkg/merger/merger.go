package merger

import (
	"fmt"

	"github.com/nikogura/resume-versions/pkg/document"
	"github.com/nikogura/resume-versions/pkg/profile"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// DefaultThemeBase prefixes version keys to form theme class names.
const DefaultThemeBase = "theme-"

// ErrVersionNotFound is returned by lookups for a version key the model does not carry.
var ErrVersionNotFound = errors.New("version not found")

// StructuralError means no meaningful merge is possible.
type StructuralError struct {
	Message string
}

func (e *StructuralError) Error() (msg string) {
	msg = e.Message
	return msg
}

func structural(format string, args ...interface{}) (err error) {
	err = &StructuralError{Message: fmt.Sprintf(format, args...)}
	return err
}

// Config is the version-set configuration with defaults applied.
type Config struct {
	DefaultVersion    string   `json:"default_version"`
	ThemeBase         string   `json:"theme_base"`
	AvailableSections []string `json:"available_sections"`
	SkillCategories   []string `json:"skill_categories"`
}

// Model is the merged, immutable view of a profile and its version set.
type Model struct {
	profile     profile.Profile
	config      Config
	keys        []string
	versions    map[string]ResolvedVersion
	defaultKey  string
	warnings    []string
	versionsRaw string
}

// Merge combines a profile document with a version-set document.  Only
// structural problems fail; everything softer is recorded as a warning on the
// returned model.
func Merge(profileDoc, versionSet document.Raw) (model *Model, err error) {
	if !profileDoc.IsObject() {
		err = structural("Profile must be an object")
		return model, err
	}

	versions := versionSet.Get("versions")
	if !versions.Exists() || !versions.IsObject() {
		err = structural("Missing required section: versions")
		return model, err
	}

	entries := document.Entries(versions)
	if len(entries) == 0 {
		err = structural("At least one version configuration is required")
		return model, err
	}

	p, err := profile.Decode(profileDoc)
	if err != nil {
		err = errors.Wrap(err, "failed to decode profile")
		return model, err
	}

	m := &Model{
		profile:     p,
		keys:        make([]string, 0, len(entries)),
		versions:    make(map[string]ResolvedVersion, len(entries)),
		warnings:    make([]string, 0),
		versionsRaw: versions.Raw,
	}

	m.config = m.resolveConfig(versionSet)

	for _, entry := range entries {
		if !entry.Value.IsObject() {
			err = structural("Version %q: Configuration must be an object", entry.Key)
			return model, err
		}
		m.keys = append(m.keys, entry.Key)
		m.versions[entry.Key] = m.resolveVersion(entry.Key, entry.Value)
	}

	m.defaultKey = m.keys[0]
	if m.config.DefaultVersion != "" {
		if _, ok := m.versions[m.config.DefaultVersion]; ok {
			m.defaultKey = m.config.DefaultVersion
		} else {
			m.warn("Default version %q not found, falling back to %q", m.config.DefaultVersion, m.defaultKey)
		}
	}
	m.config.DefaultVersion = m.defaultKey

	model = m
	return model, err
}

// MergeLegacy merges a single combined document carrying both the profile and
// the versions.
func MergeLegacy(doc document.Raw) (model *Model, err error) {
	model, err = Merge(doc, doc)
	return model, err
}

func (m *Model) warn(format string, args ...interface{}) {
	m.warnings = append(m.warnings, fmt.Sprintf(format, args...))
}

func (m *Model) resolveConfig(versionSet document.Raw) (config Config) {
	raw := versionSet.Get("config")
	if !raw.Exists() {
		raw = versionSet.Get("version_config")
	}

	config = Config{
		ThemeBase:         DefaultThemeBase,
		AvailableSections: profile.CanonicalSections(),
		SkillCategories:   m.profile.SkillIDs(),
	}

	if !raw.IsObject() {
		return config
	}

	config.DefaultVersion = document.Text(raw.Get("default_version"))

	if base := raw.Get("theme_base"); base.Type == gjson.String {
		config.ThemeBase = base.Str
	}

	if sections := raw.Get("available_sections"); sections.IsArray() {
		config.AvailableSections = document.Strings(sections)
	}

	if categories := raw.Get("skill_categories"); categories.IsArray() {
		config.SkillCategories = document.Strings(categories)
	}

	return config
}

// Profile returns the shared profile.  Callers must treat it as read-only.
func (m *Model) Profile() (p *profile.Profile) {
	p = &m.profile
	return p
}

// Config returns the resolved version-set configuration.
func (m *Model) Config() (config Config) {
	config = m.config
	config.AvailableSections = append([]string(nil), m.config.AvailableSections...)
	config.SkillCategories = append([]string(nil), m.config.SkillCategories...)
	return config
}

// VersionKeys lists the version keys in document order.
func (m *Model) VersionKeys() (keys []string) {
	keys = append([]string(nil), m.keys...)
	return keys
}

// DefaultVersionKey returns the configured default key, or the first key when
// the configured one is absent or unknown.
func (m *Model) DefaultVersionKey() (key string) {
	key = m.defaultKey
	return key
}

// HasVersion reports whether the model carries a version key.
func (m *Model) HasVersion(key string) (ok bool) {
	_, ok = m.versions[key]
	return ok
}

// Version returns the resolved version for a key.
func (m *Model) Version(key string) (version ResolvedVersion, err error) {
	version, ok := m.versions[key]
	if !ok {
		err = errors.Wrapf(ErrVersionNotFound, "version %q", key)
		return version, err
	}
	return version, err
}

// Warnings returns every warning collected while merging.
func (m *Model) Warnings() (warnings []string) {
	warnings = append([]string(nil), m.warnings...)
	return warnings
}

// Projects returns the effective project list of a version: profile projects
// in source order, restricted to include_projects when set, with description
// overrides applied, capped at the projects limit.
func (m *Model) Projects(key string) (projects []profile.Project, err error) {
	version, err := m.Version(key)
	if err != nil {
		return projects, err
	}

	projects = make([]profile.Project, 0, min(version.ProjectsLimit, len(m.profile.Projects)))
	for _, project := range m.profile.Projects {
		if len(projects) >= version.ProjectsLimit {
			break
		}
		if version.IncludeProjects != nil && !lo.Contains(version.IncludeProjects, project.ID) {
			continue
		}
		if override, ok := version.DescriptionOverrides[project.ID]; ok {
			project.Description = override
		}
		projects = append(projects, project)
	}

	return projects, err
}

// SkillOrder returns the effective skill selection of a version: its focus
// list, else every skill id in profile order.
func (m *Model) SkillOrder(key string) (ids []string, err error) {
	version, err := m.Version(key)
	if err != nil {
		return ids, err
	}

	ids = append([]string(nil), version.SkillsFocus...)
	return ids, err
}

// Theme pairs a version with its color for an external theming step.
type Theme struct {
	VersionKey    string `json:"version_key"`
	ThemeColorHex string `json:"theme_color"`
	ClassName     string `json:"class_name"`
}

// Themes lists the theme of every version in key order.
func (m *Model) Themes() (themes []Theme) {
	themes = lo.Map(m.keys, func(key string, _ int) (theme Theme) {
		theme = Theme{
			VersionKey:    key,
			ThemeColorHex: m.versions[key].ThemeColor,
			ClassName:     m.ThemeClass(key),
		}
		return theme
	})
	return themes
}

// ThemeClass returns the theme class name of a version key.
func (m *Model) ThemeClass(key string) (class string) {
	class = m.config.ThemeBase + key
	return class
}
