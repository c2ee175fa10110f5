package document

import (
	"reflect"
	"testing"
)

func TestKeysPreservesDocumentOrder(t *testing.T) {
	doc := Raw(`{"versions":{"zeta":{},"alpha":{},"mid":{}}}`)

	keys := Keys(doc.Get("versions"))
	expected := []string{"zeta", "alpha", "mid"}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("Expected keys %v, got %v", expected, keys)
	}
}

func TestKeysNonObject(t *testing.T) {
	keys := Keys(Raw(`[1,2]`).Root())
	if len(keys) != 0 {
		t.Errorf("Expected no keys for an array, got %v", keys)
	}
}

func TestFieldLiteralKey(t *testing.T) {
	doc := Raw(`{"a.b":"dotted","a":{"b":"nested"}}`)

	got := Text(Field(doc.Root(), "a.b"))
	if got != "dotted" {
		t.Errorf("Expected literal key lookup to return 'dotted', got '%s'", got)
	}
}

func TestIsInteger(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{name: "integer", json: `{"v":3}`, want: true},
		{name: "whole float", json: `{"v":3.0}`, want: true},
		{name: "fraction", json: `{"v":3.5}`, want: false},
		{name: "numeric string", json: `{"v":"3"}`, want: false},
		{name: "missing", json: `{}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsInteger(Raw(tt.json).Get("v"))
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPresent(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{name: "string", json: `{"v":"x"}`, want: true},
		{name: "empty string", json: `{"v":""}`, want: false},
		{name: "zero", json: `{"v":0}`, want: false},
		{name: "null", json: `{"v":null}`, want: false},
		{name: "false", json: `{"v":false}`, want: false},
		{name: "empty array", json: `{"v":[]}`, want: true},
		{name: "missing", json: `{}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Present(Raw(tt.json).Get("v"))
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	profile := Raw(`{"projects":[{"id":"p1","title":"A"}]}`)
	versions := Raw(`{"config":{"default_version":"ai"},"versions":{"ai":{"display_name":"AI"}}}`)

	combined, err := Compose(profile, versions)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if combined.Get("projects.0.id").String() != "p1" {
		t.Error("Expected profile members to be kept")
	}

	if combined.Get("versions.ai.display_name").String() != "AI" {
		t.Error("Expected versions to be copied")
	}

	if combined.Get("version_config.default_version").String() != "ai" {
		t.Error("Expected config to be copied as version_config")
	}

	// Inputs are left untouched.
	if profile.Get("versions").Exists() {
		t.Error("Compose mutated the profile document")
	}
}

func TestComposeNonObjectProfile(t *testing.T) {
	combined, err := Compose(Raw(`[]`), Raw(`{"versions":{"a":{}}}`))
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if !combined.Get("versions.a").Exists() {
		t.Error("Expected versions to be set on an empty object")
	}
}

func TestParseJSON(t *testing.T) {
	doc, err := Parse("profile.json", []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.Get("a").Int() != 1 {
		t.Errorf("Expected a=1, got %s", doc.Get("a").Raw)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse("profile.json", []byte(`not json`))
	if err == nil {
		t.Error("Expected error parsing invalid JSON, got nil")
	}
}

func TestParseYAML(t *testing.T) {
	content := `
versions:
  research:
    display_name: Research
    projects_limit: 3
    skills_focus:
      - ai_ml
  engineering:
    display_name: "Engineering"
    draft: true
    ratio: 0.5
    note: ~
`

	doc, err := Parse("versions.yaml", []byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	keys := Keys(doc.Get("versions"))
	expected := []string{"research", "engineering"}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("Expected keys %v, got %v", expected, keys)
	}

	if !IsInteger(doc.Get("versions.research.projects_limit")) {
		t.Error("Expected projects_limit to convert to a JSON integer")
	}

	if doc.Get("versions.research.skills_focus.0").String() != "ai_ml" {
		t.Error("Expected sequence to convert to array")
	}

	if !doc.Get("versions.engineering.draft").Bool() {
		t.Error("Expected boolean to convert")
	}

	if doc.Get("versions.engineering.ratio").Float() != 0.5 {
		t.Error("Expected float to convert")
	}

	if doc.Get("versions.engineering.note").Type.String() != "Null" {
		t.Errorf("Expected null, got %s", doc.Get("versions.engineering.note").Type)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse("versions.yml", []byte("a: [unclosed"))
	if err == nil {
		t.Error("Expected error parsing invalid YAML, got nil")
	}
}

func TestTypeName(t *testing.T) {
	doc := Raw(`{"s":"x","n":1,"a":[],"o":{},"b":true,"z":null}`)

	tests := map[string]string{
		"s":       "string",
		"n":       "number",
		"a":       "array",
		"o":       "object",
		"b":       "boolean",
		"z":       "null",
		"missing": "missing",
	}

	for key, want := range tests {
		got := TypeName(doc.Get(key))
		if got != want {
			t.Errorf("Expected type %s for %s, got %s", want, key, got)
		}
	}
}
