package validator

import (
	"fmt"

	"github.com/nikogura/resume-versions/pkg/document"
	"github.com/nikogura/resume-versions/pkg/profile"
	"github.com/tidwall/gjson"
)

func (c *checker) checkCoreSections(root gjson.Result) {
	if v := root.Get("education"); v.Exists() {
		c.checkEducation(v)
	}
	if v := root.Get("technical_skills"); v.Exists() {
		c.checkTechnicalSkills(v)
	}
	if v := root.Get("skills_pool"); v.Exists() {
		c.checkSkillsPool(v)
	}
	if v := root.Get("projects"); v.Exists() {
		c.checkProjects(v)
	}
	if v := root.Get("publications"); v.Exists() {
		c.checkPublications(v)
	}
	if v := root.Get("phd_research"); v.Exists() {
		c.checkPhDResearch(v)
	}
	if v := root.Get("certifications"); v.Exists() {
		c.checkCertifications(v)
	}
	if v := root.Get("work_experience"); v.Exists() {
		c.checkWorkExperience(v)
	}
}

// requireFields adds one error per missing field of an object item.
func (c *checker) requireFields(ctx string, item gjson.Result, fields ...string) {
	for _, field := range fields {
		if !document.Present(item.Get(field)) {
			c.addError("%s: Missing %s field", ctx, field)
		}
	}
}

// optionalArray adds an error when a present field is not an array.
func (c *checker) optionalArray(ctx string, item gjson.Result, field string) {
	v := item.Get(field)
	if v.Exists() && v.Type != gjson.Null && !v.IsArray() {
		c.addError("%s: %s must be an array", ctx, field)
	}
}

// checkLevel adds an error when a present level is not an integer in [1,5].
func (c *checker) checkLevel(ctx string, item gjson.Result) {
	v := item.Get("level")
	if !v.Exists() || v.Type == gjson.Null {
		return
	}
	if !document.IsInteger(v) || v.Int() < 1 || v.Int() > 5 {
		c.addError("%s: level must be an integer between 1 and 5", ctx)
	}
}

func (c *checker) checkEducation(education gjson.Result) {
	if !education.IsArray() {
		c.addError("education must be an array")
		return
	}

	for i, item := range education.Array() {
		ctx := fmt.Sprintf("Education item %d", i+1)
		if !item.IsObject() {
			c.addError("%s: must be an object", ctx)
			continue
		}
		c.requireFields(ctx, item, "degree", "institution", "period")
		c.optionalArray(ctx, item, "highlights")
	}
}

func (c *checker) checkTechnicalSkills(skills gjson.Result) {
	if !skills.IsObject() {
		c.addError("technical_skills must be an object")
		return
	}

	for _, entry := range document.Entries(skills) {
		ctx := fmt.Sprintf("Skill category %q", entry.Key)
		if !entry.Value.IsObject() {
			c.addError("%s: must be an object", ctx)
			continue
		}

		c.requireFields(ctx, entry.Value, "title")

		items := entry.Value.Get("items")
		if !items.IsArray() {
			c.addError("%s: items must be an array", ctx)
			continue
		}

		for i, item := range items.Array() {
			itemCtx := fmt.Sprintf("%s, item %d", ctx, i+1)
			if !item.IsObject() {
				c.addError("%s: must be an object", itemCtx)
				continue
			}
			c.requireFields(itemCtx, item, "name")
			c.checkLevel(itemCtx, item)
			c.optionalArray(itemCtx, item, "keywords")
		}
	}
}

func (c *checker) checkSkillsPool(pool gjson.Result) {
	if !pool.IsObject() {
		c.addError("skills_pool must be an object")
		return
	}

	recognized := make(map[string]struct{})
	for _, key := range profile.DetailGroupKeys() {
		recognized[key] = struct{}{}
	}

	for _, entry := range document.Entries(pool) {
		ctx := fmt.Sprintf("Skill %q", entry.Key)
		if !entry.Value.IsObject() {
			c.addError("%s: must be an object", ctx)
			continue
		}

		c.requireFields(ctx, entry.Value, "name")
		c.checkLevel(ctx, entry.Value)

		for _, field := range document.Entries(entry.Value) {
			if _, ok := recognized[field.Key]; ok {
				if field.Value.Type == gjson.Null {
					continue
				}
				if !field.Value.IsArray() {
					c.addError("%s: %s must be an array", ctx, field.Key)
					continue
				}
				for _, s := range field.Value.Array() {
					if s.Type != gjson.String {
						c.addError("%s: All %s items must be strings", ctx, field.Key)
						break
					}
				}
				continue
			}
			if field.Value.IsArray() {
				c.addWarning("%s: unrecognized detail group %q is ignored", ctx, field.Key)
			}
		}
	}
}

func (c *checker) checkProjects(projects gjson.Result) {
	if !projects.IsArray() {
		c.addError("projects must be an array")
		return
	}

	seen := make(map[string]int)
	for i, item := range projects.Array() {
		ctx := fmt.Sprintf("Project %d", i+1)
		if !item.IsObject() {
			c.addError("%s: must be an object", ctx)
			continue
		}

		c.requireFields(ctx, item, "title")
		c.optionalArray(ctx, item, "features")
		c.optionalArray(ctx, item, "items")

		id := item.Get("id").String()
		if id == "" {
			continue
		}
		if first, dup := seen[id]; dup {
			c.addError("%s: duplicate id %q (first used by project %d)", ctx, id, first)
			continue
		}
		seen[id] = i + 1
	}
}

func (c *checker) checkPublications(publications gjson.Result) {
	if !publications.IsArray() {
		c.addError("publications must be an array")
		return
	}

	for i, item := range publications.Array() {
		ctx := fmt.Sprintf("Publication %d", i+1)
		if !item.IsObject() {
			c.addError("%s: must be an object", ctx)
			continue
		}

		c.requireFields(ctx, item, "title", "authors", "venue", "year", "type")

		if year := item.Get("year"); document.Present(year) && !document.IsInteger(year) {
			c.addWarning("%s: Year should be a valid integer", ctx)
		}

		pubType := item.Get("type")
		if pubType.Type == gjson.String && pubType.Str != "" &&
			pubType.Str != profile.PublicationPaper && pubType.Str != profile.PublicationPoster {
			c.addWarning("%s: type %q is neither %s nor %s", ctx, pubType.Str, profile.PublicationPaper, profile.PublicationPoster)
		}
	}
}

func (c *checker) checkPhDResearch(research gjson.Result) {
	if !research.IsObject() {
		c.addError("phd_research must be an object")
		return
	}

	sections := research.Get("sections")
	if !sections.IsArray() {
		c.addError("phd_research.sections must be an array")
		return
	}

	for i, section := range sections.Array() {
		ctx := fmt.Sprintf("PhD research section %d", i+1)
		if !section.IsObject() {
			c.addError("%s: must be an object", ctx)
			continue
		}
		c.requireFields(ctx, section, "title")
		if !section.Get("items").IsArray() {
			c.addError("%s: items must be an array", ctx)
		}
	}
}

func (c *checker) checkCertifications(certifications gjson.Result) {
	if !certifications.IsArray() {
		c.addError("certifications must be an array")
		return
	}

	for i, item := range certifications.Array() {
		if item.Type != gjson.String {
			c.addError("Certification %d: must be a string", i+1)
		}
	}
}

func (c *checker) checkWorkExperience(jobs gjson.Result) {
	if !jobs.IsArray() {
		c.addError("work_experience must be an array")
		return
	}

	for i, item := range jobs.Array() {
		ctx := fmt.Sprintf("Work experience item %d", i+1)
		if !item.IsObject() {
			c.addError("%s: must be an object", ctx)
			continue
		}
		c.requireFields(ctx, item, "title", "company")
		c.optionalArray(ctx, item, "responsibilities")
		c.optionalArray(ctx, item, "achievements")
	}
}
