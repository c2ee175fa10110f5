package profile

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Recognized detail group keys, in display order.
const (
	DetailTechStack    = "tech_stack"
	DetailCoreSkills   = "core_skills"
	DetailMethodology  = "methodology"
	DetailUseScenarios = "use_scenarios"
	DetailKeywords     = "keywords"
)

// DetailGroupKeys lists the recognized detail groups in display order.
func DetailGroupKeys() (keys []string) {
	keys = []string{DetailTechStack, DetailCoreSkills, DetailMethodology, DetailUseScenarios, DetailKeywords}
	return keys
}

// DetailGroup is a labeled sub-list of strings attached to a skill.
type DetailGroup struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Items []string `json:"items"`
}

// Label turns a snake_case key into its display label, e.g. "TECH STACK".
func Label(key string) (label string) {
	label = cases.Upper(language.Und).String(strings.ReplaceAll(key, "_", " "))
	return label
}

// Title turns a snake_case key into a title-cased heading, e.g. "Phd Research".
func Title(key string) (title string) {
	title = cases.Title(language.Und).String(strings.ReplaceAll(key, "_", " "))
	return title
}

// Get returns the items stored under a recognized key.
func (d DetailGroups) Get(key string) (items []string) {
	switch key {
	case DetailTechStack:
		items = d.TechStack
	case DetailCoreSkills:
		items = d.CoreSkills
	case DetailMethodology:
		items = d.Methodology
	case DetailUseScenarios:
		items = d.UseScenarios
	case DetailKeywords:
		items = d.Keywords
	}
	return items
}

func (d *DetailGroups) set(key string, items []string) {
	switch key {
	case DetailTechStack:
		d.TechStack = items
	case DetailCoreSkills:
		d.CoreSkills = items
	case DetailMethodology:
		d.Methodology = items
	case DetailUseScenarios:
		d.UseScenarios = items
	case DetailKeywords:
		d.Keywords = items
	}
}

// List returns the non-empty groups in display order.
func (d DetailGroups) List() (groups []DetailGroup) {
	groups = make([]DetailGroup, 0)
	for _, key := range DetailGroupKeys() {
		items := d.Get(key)
		if len(items) == 0 {
			continue
		}
		groups = append(groups, DetailGroup{
			Key:   key,
			Label: Label(key),
			Items: append([]string(nil), items...),
		})
	}
	return groups
}
