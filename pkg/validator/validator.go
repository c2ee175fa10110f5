package validator

import (
	"fmt"
	"regexp"

	"github.com/nikogura/resume-versions/pkg/document"
	"github.com/nikogura/resume-versions/pkg/profile"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ErrNoDocument is returned when Validate is called without a document.
var ErrNoDocument = errors.New("no document to validate")

var hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// IsHexColor reports whether s is a #RGB or #RRGGBB color.
func IsHexColor(s string) (ok bool) {
	ok = hexColor.MatchString(s)
	return ok
}

// Result holds every finding of a validation pass.
type Result struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type checker struct {
	errors   []string
	warnings []string
}

func (c *checker) addError(format string, args ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

func (c *checker) addWarning(format string, args ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

// Validate checks the structure of a combined profile and version-set document,
// or a legacy single document.  All checks run; findings accumulate.  The input
// is never modified.
func Validate(doc document.Raw) (result Result, err error) {
	if len(doc) == 0 {
		err = ErrNoDocument
		return result, err
	}

	c := &checker{
		errors:   make([]string, 0),
		warnings: make([]string, 0),
	}

	root := doc.Root()
	c.checkTopLevel(root)

	if root.IsObject() {
		configKey := "config"
		config := root.Get(configKey)
		if !config.Exists() {
			configKey = "version_config"
			config = root.Get(configKey)
		}
		if config.Exists() {
			c.checkVersionConfig(configKey, config)
		}

		if versions := root.Get("versions"); versions.Exists() {
			c.checkVersions(versions)
		}

		c.checkCoreSections(root)
	}

	result = Result{
		IsValid:  len(c.errors) == 0,
		Errors:   c.errors,
		Warnings: c.warnings,
	}
	return result, err
}

func (c *checker) checkTopLevel(root gjson.Result) {
	if !root.IsObject() {
		c.addError("Data must be a valid object")
		return
	}

	if !document.Present(root.Get("versions")) {
		c.addError("Missing required section: versions")
	}

	for _, section := range []string{profile.SectionEducation, profile.SectionTechnicalSkills, profile.SectionProjects} {
		present := document.Present(root.Get(section))
		if section == profile.SectionTechnicalSkills && document.Present(root.Get("skills_pool")) {
			present = true
		}
		if !present {
			c.addWarning("Recommended section missing: %s", section)
		}
	}
}

func (c *checker) checkVersionConfig(key string, config gjson.Result) {
	if !config.IsObject() {
		c.addWarning("%s should be an object", key)
		return
	}

	for _, field := range []string{"default_version", "theme_base"} {
		v := config.Get(field)
		if document.Present(v) && v.Type != gjson.String {
			c.addError("%s.%s must be a string", key, field)
		}
	}

	for _, field := range []string{"available_sections", "skill_categories"} {
		v := config.Get(field)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if !v.IsArray() {
			c.addError("%s.%s must be an array", key, field)
			continue
		}
		if len(v.Array()) == 0 {
			c.addWarning("%s.%s is empty", key, field)
		}
	}
}

func (c *checker) checkVersions(versions gjson.Result) {
	if !versions.IsObject() {
		c.addError("versions must be an object")
		return
	}

	entries := document.Entries(versions)
	if len(entries) == 0 {
		c.addError("At least one version configuration is required")
		return
	}

	for _, entry := range entries {
		c.checkVersion(entry.Key, entry.Value)
	}
}

type requiredField struct {
	name     string
	aliases  []string
	wantType string
}

//nolint:gochecknoglobals // Field table
var requiredVersionFields = []requiredField{
	{name: "display_name", wantType: "string"},
	{name: "summary", wantType: "string"},
	{name: "skills_focus", aliases: []string{"selected_skills"}, wantType: "array"},
	{name: "sections_order", wantType: "array"},
}

// VersionField finds a version field at the top level of the entry or inside
// content_config, trying aliases in order.  content_config wins.
func VersionField(version gjson.Result, name string, aliases ...string) (value gjson.Result) {
	contentConfig := version.Get("content_config")
	for _, key := range append([]string{name}, aliases...) {
		if contentConfig.IsObject() {
			value = document.Field(contentConfig, key)
			if value.Exists() {
				return value
			}
		}
	}
	for _, key := range append([]string{name}, aliases...) {
		value = document.Field(version, key)
		if value.Exists() {
			return value
		}
	}
	return value
}

func (c *checker) checkVersion(key string, version gjson.Result) {
	ctx := fmt.Sprintf("Version %q", key)

	if !version.IsObject() {
		c.addError("%s: Configuration must be an object", ctx)
		return
	}

	for _, field := range requiredVersionFields {
		value := VersionField(version, field.name, field.aliases...)
		if !document.Present(value) {
			c.addError("%s: Missing required field %q", ctx, field.name)
			continue
		}
		if !hasType(value, field.wantType) {
			c.addError("%s: Field %q must be of type %s", ctx, field.name, field.wantType)
			continue
		}
		if field.wantType == "array" {
			c.checkStringArray(ctx, field.name, value)
		}
	}

	if color := version.Get("theme_color"); document.Present(color) {
		if color.Type != gjson.String || !IsHexColor(color.Str) {
			c.addError("%s: Invalid theme_color format %q", ctx, color.String())
		}
	}

	if icon := version.Get("icon"); document.Present(icon) && icon.Type != gjson.String {
		c.addError("%s: icon must be a string", ctx)
	}

	if limit := VersionField(version, "projects_limit"); limit.Exists() && limit.Type != gjson.Null && !document.IsInteger(limit) {
		c.addError("%s: projects_limit must be an integer", ctx)
	}

	if include := VersionField(version, "include_projects"); include.Exists() && include.Type != gjson.Null && !include.IsArray() {
		c.addError("%s: include_projects must be an array", ctx)
	}

	for _, field := range []string{"project_focus", "content_config", "content_overrides"} {
		v := version.Get(field)
		if v.Exists() && v.Type != gjson.Null && !v.IsObject() {
			c.addError("%s: %s must be an object", ctx, field)
		}
	}

	overrides := version.Get("content_overrides.project_descriptions")
	if overrides.Exists() && overrides.Type != gjson.Null {
		if !overrides.IsObject() {
			c.addError("%s: content_overrides.project_descriptions must be an object", ctx)
			return
		}
		for _, entry := range document.Entries(overrides) {
			if entry.Value.Type != gjson.String {
				c.addError("%s: project description override %q must be a string", ctx, entry.Key)
			}
		}
	}
}

func (c *checker) checkStringArray(ctx, field string, arr gjson.Result) {
	items := arr.Array()
	if len(items) == 0 {
		c.addWarning("%s: %s array is empty", ctx, field)
		return
	}
	for i, item := range items {
		if item.Type != gjson.String {
			c.addError("%s: All %s items must be strings (item %d is %s)", ctx, field, i+1, document.TypeName(item))
		}
	}
}

func hasType(value gjson.Result, want string) (ok bool) {
	switch want {
	case "string":
		ok = value.Type == gjson.String
	case "array":
		ok = value.IsArray()
	case "object":
		ok = value.IsObject()
	case "number":
		ok = value.Type == gjson.Number
	case "boolean":
		ok = value.Type == gjson.True || value.Type == gjson.False
	}
	return ok
}
