package merger

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nikogura/resume-versions/pkg/document"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const testProfile = `{
  "personal_info": {"name": "Test User"},
  "skills_pool": {
    "python": {"name": "Python", "category": "languages", "level": 5},
    "react": {"name": "React", "category": "web", "level": 3},
    "go": {"name": "Go", "category": "languages", "level": 4}
  },
  "projects": [
    {"id": "p1", "title": "A", "description": "first"},
    {"id": "p2", "title": "B", "description": "second"},
    {"id": "p3", "title": "C", "description": "third"}
  ],
  "publications": [{"title": "T", "authors": "A", "venue": "V", "year": 2020, "type": "Paper"}]
}`

const testVersions = `{
  "config": {"default_version": "research", "theme_base": "t-"},
  "versions": {
    "research": {
      "display_name": "Research",
      "summary": "Researcher",
      "theme_color": "#1a73e8",
      "content_config": {"skills_focus": ["python", "go"], "sections_order": ["summary", "projects"], "projects_limit": 2},
      "content_overrides": {"project_descriptions": {"p2": "override", "ghost": "dangling"}}
    },
    "engineering": {
      "display_name": "Engineering",
      "summary": "Engineer",
      "skills_focus": ["react"],
      "include_projects": ["p3", "p1", "missing"],
      "projects_limit": 10
    }
  }
}`

func mergeTest(t *testing.T, profileDoc, versionSet string) (model *Model) {
	t.Helper()
	model, err := Merge(document.Raw(profileDoc), document.Raw(versionSet))
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	return model
}

func TestMerge(t *testing.T) {
	model := mergeTest(t, testProfile, testVersions)

	expectedKeys := []string{"research", "engineering"}
	if !reflect.DeepEqual(model.VersionKeys(), expectedKeys) {
		t.Errorf("Expected keys %v, got %v", expectedKeys, model.VersionKeys())
	}

	if model.DefaultVersionKey() != "research" {
		t.Errorf("Expected default 'research', got '%s'", model.DefaultVersionKey())
	}

	if len(model.Warnings()) != 0 {
		t.Errorf("Expected no warnings, got %v", model.Warnings())
	}

	research, err := model.Version("research")
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}

	if research.ProjectsLimit != 2 {
		t.Errorf("Expected limit 2, got %d", research.ProjectsLimit)
	}

	if research.Icon != DefaultIcon {
		t.Errorf("Expected default icon, got '%s'", research.Icon)
	}

	if _, ok := research.DescriptionOverrides["ghost"]; ok {
		t.Error("Expected dangling override to be dropped")
	}

	engineering, _ := model.Version("engineering")
	if engineering.ThemeColor != DefaultThemeColor {
		t.Errorf("Expected default theme color, got '%s'", engineering.ThemeColor)
	}

	if !reflect.DeepEqual(engineering.SectionsOrder, DefaultSectionsOrder()) {
		t.Errorf("Expected default sections order, got %v", engineering.SectionsOrder)
	}

	expectedInclude := []string{"p3", "p1"}
	if !reflect.DeepEqual(engineering.IncludeProjects, expectedInclude) {
		t.Errorf("Expected include list %v, got %v", expectedInclude, engineering.IncludeProjects)
	}
}

func TestProjectsScenario(t *testing.T) {
	model := mergeTest(t, testProfile, testVersions)

	projects, err := model.Projects("research")
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}

	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(projects))
	}

	if projects[0].ID != "p1" || projects[0].Description != "first" {
		t.Errorf("Expected p1 unchanged, got %+v", projects[0])
	}

	if projects[1].ID != "p2" || projects[1].Description != "override" {
		t.Errorf("Expected p2 with override, got %+v", projects[1])
	}

	// The profile itself is untouched.
	if model.Profile().Projects[1].Description != "second" {
		t.Errorf("Expected profile description to stay 'second', got '%s'", model.Profile().Projects[1].Description)
	}
}

func TestProjectsIncludeKeepsSourceOrder(t *testing.T) {
	model := mergeTest(t, testProfile, testVersions)

	projects, err := model.Projects("engineering")
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}

	expected := []string{"p1", "p3"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("Expected %v, got %v", expected, ids)
	}
}

func TestProjectsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit string
		want  int
	}{
		{name: "zero", limit: `0`, want: 0},
		{name: "one", limit: `1`, want: 1},
		{name: "larger than list", limit: `50`, want: 3},
		{name: "huge", limit: `1000000000000`, want: 3},
		{name: "negative", limit: `-3`, want: 0},
		{name: "non-integer", limit: `2.5`, want: 3},
		{name: "string", limit: `"2"`, want: 3},
		{name: "absent", limit: ``, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := ""
			if tt.limit != "" {
				limit = `, "projects_limit": ` + tt.limit
			}
			versions := `{"versions": {"v": {"display_name": "V", "summary": "S"` + limit + `}}}`
			model := mergeTest(t, testProfile, versions)

			projects, err := model.Projects("v")
			if err != nil {
				t.Fatalf("Projects failed: %v", err)
			}

			if len(projects) != tt.want {
				t.Errorf("Expected %d projects, got %d", tt.want, len(projects))
			}

			version, _ := model.Version("v")
			if len(projects) > version.ProjectsLimit {
				t.Errorf("Projects %d exceed limit %d", len(projects), version.ProjectsLimit)
			}
		})
	}
}

func TestMergeStructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		profile  string
		versions string
		message  string
	}{
		{name: "profile not an object", profile: `[]`, versions: `{"versions": {"v": {}}}`, message: "Profile must be an object"},
		{name: "versions absent", profile: `{}`, versions: `{"config": {}}`, message: "Missing required section: versions"},
		{name: "versions not an object", profile: `{}`, versions: `{"versions": []}`, message: "Missing required section: versions"},
		{name: "versions empty", profile: `{}`, versions: `{"versions": {}}`, message: "At least one version configuration is required"},
		{name: "entry not an object", profile: `{}`, versions: `{"versions": {"v": "x"}}`, message: `Version "v": Configuration must be an object`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge(document.Raw(tt.profile), document.Raw(tt.versions))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var structuralErr *StructuralError
			if !errors.As(err, &structuralErr) {
				t.Fatalf("Expected StructuralError, got %T: %v", err, err)
			}

			if structuralErr.Message != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, structuralErr.Message)
			}
		})
	}
}

func TestMergeDefaultsWithoutConfig(t *testing.T) {
	model := mergeTest(t, testProfile, `{"versions": {"a": {"display_name": "A"}, "b": {}}}`)

	if model.DefaultVersionKey() != "a" {
		t.Errorf("Expected first key 'a' as default, got '%s'", model.DefaultVersionKey())
	}

	config := model.Config()
	if config.ThemeBase != DefaultThemeBase {
		t.Errorf("Expected theme base %q, got %q", DefaultThemeBase, config.ThemeBase)
	}

	if len(config.AvailableSections) != 7 {
		t.Errorf("Expected the canonical 7 sections, got %v", config.AvailableSections)
	}

	expectedCategories := []string{"python", "react", "go"}
	if !reflect.DeepEqual(config.SkillCategories, expectedCategories) {
		t.Errorf("Expected skill categories %v, got %v", expectedCategories, config.SkillCategories)
	}

	b, _ := model.Version("b")
	if b.DisplayName != "b" {
		t.Errorf("Expected display name to fall back to the key, got '%s'", b.DisplayName)
	}

	if !reflect.DeepEqual(b.SkillsFocus, expectedCategories) {
		t.Errorf("Expected absent focus to select every skill, got %v", b.SkillsFocus)
	}

	if len(model.Warnings()) != 0 {
		t.Errorf("Expected no warnings, got %v", model.Warnings())
	}
}

func TestMergeInvalidDefaultVersion(t *testing.T) {
	versions := `{"version_config": {"default_version": "nope"}, "versions": {"first": {}, "second": {}}}`
	model := mergeTest(t, testProfile, versions)

	if model.DefaultVersionKey() != "first" {
		t.Errorf("Expected fallback to 'first', got '%s'", model.DefaultVersionKey())
	}

	warnings := model.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"nope"`) {
		t.Errorf("Expected one warning naming the invalid default, got %v", warnings)
	}

	if _, err := model.Version(model.DefaultVersionKey()); err != nil {
		t.Errorf("Expected fallback key to resolve, got %v", err)
	}
}

func TestSkillsFocusFallback(t *testing.T) {
	model := mergeTest(t, testProfile, `{"versions": {"v": {"skills_focus": ["rust", "cobol"]}}}`)

	order, err := model.SkillOrder("v")
	if err != nil {
		t.Fatalf("SkillOrder failed: %v", err)
	}

	expected := []string{"python", "react", "go"}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("Expected full skill set %v, got %v", expected, order)
	}

	warnings := model.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("Expected exactly one warning, got %v", warnings)
	}

	for _, id := range []string{"rust", "cobol", "python", "react", "go"} {
		if !strings.Contains(warnings[0], id) {
			t.Errorf("Expected warning to name %q, got %q", id, warnings[0])
		}
	}
}

func TestSkillsFocusPartialDrop(t *testing.T) {
	model := mergeTest(t, testProfile, `{"versions": {"v": {"content_config": {"selected_skills": ["go", "rust", "python", "go"]}}}}`)

	order, _ := model.SkillOrder("v")
	expected := []string{"go", "python"}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("Expected %v, got %v", expected, order)
	}

	warnings := model.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "rust") {
		t.Errorf("Expected one warning naming 'rust', got %v", warnings)
	}
}

func TestSkillsFocusRoundTrip(t *testing.T) {
	model := mergeTest(t, testProfile, `{"versions": {"v": {"skills_focus": ["react", "python"]}}}`)

	order, _ := model.SkillOrder("v")
	expected := []string{"react", "python"}
	if !reflect.DeepEqual(order, expected) {
		t.Errorf("Expected focus order preserved %v, got %v", expected, order)
	}

	if len(model.Warnings()) != 0 {
		t.Errorf("Expected no warnings, got %v", model.Warnings())
	}
}

func TestLegacyCategoryFocus(t *testing.T) {
	doc := `{
	  "version_config": {"default_version": "web"},
	  "technical_skills": {"ai_ml": {"title": "AI", "items": []}, "web": {"title": "Web", "items": []}},
	  "versions": {"ai": {"skills_focus": ["ai_ml"]}, "web": {"skills_focus": ["web", "mobile"]}}
	}`

	model, err := MergeLegacy(document.Raw(doc))
	if err != nil {
		t.Fatalf("MergeLegacy failed: %v", err)
	}

	if model.DefaultVersionKey() != "web" {
		t.Errorf("Expected default 'web', got '%s'", model.DefaultVersionKey())
	}

	order, _ := model.SkillOrder("web")
	if !reflect.DeepEqual(order, []string{"web"}) {
		t.Errorf("Expected [web], got %v", order)
	}

	if len(model.Warnings()) != 1 {
		t.Errorf("Expected one warning for 'mobile', got %v", model.Warnings())
	}
}

func TestInvalidThemeColor(t *testing.T) {
	model := mergeTest(t, testProfile, `{"versions": {"v": {"theme_color": "zzz"}}}`)

	version, _ := model.Version("v")
	if version.ThemeColor != DefaultThemeColor {
		t.Errorf("Expected default color, got '%s'", version.ThemeColor)
	}

	if len(model.Warnings()) != 1 {
		t.Errorf("Expected one warning, got %v", model.Warnings())
	}
}

func TestVersionNotFound(t *testing.T) {
	model := mergeTest(t, testProfile, testVersions)

	_, err := model.Version("missing")
	if !errors.Is(err, ErrVersionNotFound) {
		t.Errorf("Expected ErrVersionNotFound, got %v", err)
	}

	_, err = model.Projects("missing")
	if !errors.Is(err, ErrVersionNotFound) {
		t.Errorf("Expected ErrVersionNotFound from Projects, got %v", err)
	}
}

func TestThemes(t *testing.T) {
	model := mergeTest(t, testProfile, testVersions)

	expected := []Theme{
		{VersionKey: "research", ThemeColorHex: "#1a73e8", ClassName: "t-research"},
		{VersionKey: "engineering", ThemeColorHex: DefaultThemeColor, ClassName: "t-engineering"},
	}
	if !reflect.DeepEqual(model.Themes(), expected) {
		t.Errorf("Expected %v, got %v", expected, model.Themes())
	}
}

func TestStats(t *testing.T) {
	model := mergeTest(t, testProfile, testVersions)

	stats := model.Stats()
	if stats.VersionCount != 2 || stats.ProjectCount != 3 || stats.PublicationCount != 1 || stats.SkillCount != 3 {
		t.Errorf("Unexpected counts: %+v", stats)
	}

	expectedSkills := []string{"python", "go", "react"}
	if !reflect.DeepEqual(stats.SkillIDs, expectedSkills) {
		t.Errorf("Expected skill union %v, got %v", expectedSkills, stats.SkillIDs)
	}

	expectedSections := []string{"summary", "projects", "technical_skills", "education"}
	if !reflect.DeepEqual(stats.Sections, expectedSections) {
		t.Errorf("Expected section union %v, got %v", expectedSections, stats.Sections)
	}

	versionStats := model.VersionStats()
	if len(versionStats) != 2 || versionStats[0].ProjectCount != 2 || versionStats[1].ProjectCount != 2 {
		t.Errorf("Unexpected version stats: %+v", versionStats)
	}
}

func TestExport(t *testing.T) {
	model := mergeTest(t, testProfile, testVersions)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	data, err := model.Export("engineering", now)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if !gjson.ValidBytes(data) {
		t.Fatalf("Expected valid JSON, got %s", data)
	}

	exported := gjson.ParseBytes(data)

	if got := exported.Get("current_version").String(); got != "engineering" {
		t.Errorf("Expected current_version 'engineering', got '%s'", got)
	}

	if got := exported.Get("exported_at").String(); got != "2024-05-01T12:00:00Z" {
		t.Errorf("Expected exported_at timestamp, got '%s'", got)
	}

	if got := exported.Get("version_config.theme_base").String(); got != "t-" {
		t.Errorf("Expected theme_base 't-', got '%s'", got)
	}

	if got := exported.Get("versions.research.content_config.projects_limit").Int(); got != 2 {
		t.Errorf("Expected versions passed through, got limit %d", got)
	}

	data, err = model.Export("unknown", now)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if got := gjson.GetBytes(data, "current_version").String(); got != "research" {
		t.Errorf("Expected unknown current version to export as default, got '%s'", got)
	}
}
