package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/nikogura/resume-versions/pkg/loader"
	"github.com/nikogura/resume-versions/pkg/merger"
	"github.com/pkg/errors"
)

const testProfile = `{
  "personal_info": {"name": "Test User"},
  "education": [{"degree": "PhD", "institution": "U", "period": "2018-2022"}],
  "skills_pool": {"go": {"name": "Go", "category": "languages", "level": 4}},
  "projects": [{"id": "p1", "title": "A"}]
}`

const testVersions = `{
  "config": {"default_version": "research"},
  "versions": {
    "research": {"display_name": "Research", "summary": "R", "skills_focus": ["go"], "sections_order": ["summary", "projects"]},
    "engineering": {"display_name": "Engineering", "summary": "E", "skills_focus": ["rust"], "sections_order": ["projects"]}
  }
}`

func testLogger() (logger *log.Logger, buf *bytes.Buffer) {
	buf = &bytes.Buffer{}
	logger = log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
	return logger, buf
}

func writeDocs(t *testing.T, profile, versions string) (sources loader.Sources) {
	t.Helper()
	dir := t.TempDir()
	sources = loader.Sources{
		Profile:  filepath.Join(dir, "profile.json"),
		Versions: filepath.Join(dir, "versions.json"),
	}
	if err := os.WriteFile(sources.Profile, []byte(profile), 0600); err != nil {
		t.Fatalf("Failed to write profile: %v", err)
	}
	if err := os.WriteFile(sources.Versions, []byte(versions), 0600); err != nil {
		t.Fatalf("Failed to write versions: %v", err)
	}
	return sources
}

func TestControllerLoad(t *testing.T) {
	logger, buf := testLogger()
	c := NewController(writeDocs(t, testProfile, testVersions), "", logger)

	err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Current() != "research" {
		t.Errorf("Expected current 'research', got '%s'", c.Current())
	}

	if c.Legacy() {
		t.Error("Expected separated documents")
	}

	if !c.Validation().IsValid {
		t.Errorf("Expected valid documents, got %v", c.Validation().Errors)
	}

	// The unknown skill in engineering is reported through the logger.
	if !strings.Contains(buf.String(), "rust") {
		t.Errorf("Expected merge warning in log, got:\n%s", buf.String())
	}

	rm, err := c.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if rm.VersionKey != "research" || rm.Summary == nil || *rm.Summary != "R" {
		t.Errorf("Unexpected render model: %+v", rm)
	}
}

func TestControllerPreferred(t *testing.T) {
	logger, _ := testLogger()
	c := NewController(writeDocs(t, testProfile, testVersions), "engineering", logger)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Current() != "engineering" {
		t.Errorf("Expected preferred 'engineering', got '%s'", c.Current())
	}
}

func TestControllerSwitch(t *testing.T) {
	logger, _ := testLogger()
	c := NewController(writeDocs(t, testProfile, testVersions), "", logger)

	if err := c.Switch("research"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded before load, got %v", err)
	}

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	before, _ := c.Model()

	if err := c.Switch("engineering"); err != nil {
		t.Fatalf("Switch failed: %v", err)
	}

	after, _ := c.Model()
	if before != after {
		t.Error("Expected switch to keep the same model")
	}

	if c.Current() != "engineering" {
		t.Errorf("Expected 'engineering', got '%s'", c.Current())
	}

	err := c.Switch("missing")
	if !errors.Is(err, merger.ErrVersionNotFound) {
		t.Errorf("Expected ErrVersionNotFound, got %v", err)
	}

	if c.Current() != "engineering" {
		t.Errorf("Expected selection unchanged after failed switch, got '%s'", c.Current())
	}
}

func TestControllerReloadKeepsSelection(t *testing.T) {
	logger, _ := testLogger()
	sources := writeDocs(t, testProfile, testVersions)
	c := NewController(sources, "", logger)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := c.Switch("engineering"); err != nil {
		t.Fatalf("Switch failed: %v", err)
	}

	first, _ := c.Model()

	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	second, _ := c.Model()
	if first == second {
		t.Error("Expected reload to build a new model")
	}

	if c.Current() != "engineering" {
		t.Errorf("Expected selection kept across reload, got '%s'", c.Current())
	}

	// A reload that fails structurally leaves the previous model in place.
	if err := os.WriteFile(sources.Versions, []byte(`{"versions": {}}`), 0600); err != nil {
		t.Fatalf("Failed to rewrite versions: %v", err)
	}

	err := c.Reload(context.Background())
	var structuralErr *merger.StructuralError
	if !errors.As(err, &structuralErr) {
		t.Fatalf("Expected StructuralError, got %v", err)
	}

	third, _ := c.Model()
	if third != second {
		t.Error("Expected failed reload to keep the previous model")
	}
}

func TestControllerRenderVersion(t *testing.T) {
	logger, buf := testLogger()
	c := NewController(writeDocs(t, testProfile, testVersions), "", logger)

	if _, err := c.RenderVersion("research"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Expected ErrNotLoaded, got %v", err)
	}

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rm, err := c.RenderVersion("nope")
	if err != nil {
		t.Fatalf("RenderVersion failed: %v", err)
	}

	if rm.VersionKey != "research" {
		t.Errorf("Expected fallback to 'research', got '%s'", rm.VersionKey)
	}

	if !strings.Contains(buf.String(), "Version not found") {
		t.Errorf("Expected fallback warning in log, got:\n%s", buf.String())
	}
}

func TestControllerLegacy(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "resume.json")
	doc := `{
	  "version_config": {"default_version": "b"},
	  "technical_skills": {"web": {"title": "Web", "items": []}},
	  "versions": {"a": {"display_name": "A"}, "b": {"display_name": "B"}}
	}`
	if err := os.WriteFile(legacy, []byte(doc), 0600); err != nil {
		t.Fatalf("Failed to write legacy document: %v", err)
	}

	logger, _ := testLogger()
	c := NewController(loader.Sources{Profile: filepath.Join(dir, "missing.json"), Versions: legacy, Legacy: legacy}, "", logger)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !c.Legacy() {
		t.Error("Expected legacy fallback")
	}

	if c.Current() != "b" {
		t.Errorf("Expected default 'b', got '%s'", c.Current())
	}

	// Missing required version fields are reported but do not block the merge.
	if c.Validation().IsValid {
		t.Error("Expected validation errors for incomplete versions")
	}
}

func TestControllerConcurrentReads(t *testing.T) {
	logger, _ := testLogger()
	c := NewController(writeDocs(t, testProfile, testVersions), "", logger)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "research"
			if i%2 == 0 {
				key = "engineering"
			}
			_ = c.Switch(key)
			if _, err := c.Render(); err != nil {
				t.Errorf("Render failed: %v", err)
			}
		}(i)
	}
	wg.Wait()
}
