package renderer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nikogura/resume-versions/pkg/profile"
	"github.com/nikogura/resume-versions/pkg/projector"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// JSON encodes a render model for an external renderer.
func JSON(rm projector.RenderModel) (data []byte, err error) {
	data, err = json.MarshalIndent(rm, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal render model")
		return data, err
	}
	return data, err
}

// WriteJSON writes the render model as JSON to outputPath.
func WriteJSON(rm projector.RenderModel, outputPath string) (err error) {
	data, err := JSON(rm)
	if err != nil {
		return err
	}

	err = writeFile(outputPath, data)
	if err != nil {
		err = errors.Wrap(err, "failed to write render model")
		return err
	}
	return err
}

// Markdown renders a plain markdown résumé, one section per entry of the
// sections order.
func Markdown(rm projector.RenderModel) (content string) {
	var b strings.Builder

	info := rm.PersonalInfo
	fmt.Fprintf(&b, "# %s\n\n", info.Name)
	if info.Title != "" {
		fmt.Fprintf(&b, "**%s**\n\n", info.Title)
	}

	contact := lo.Compact([]string{info.Email, info.Phone, info.Location, info.Website})
	for _, link := range info.Social {
		contact = append(contact, fmt.Sprintf("[%s](%s)", profile.Title(link.Label), link.URL))
	}
	if len(contact) > 0 {
		b.WriteString(strings.Join(contact, " | "))
		b.WriteString("\n\n")
	}

	for _, section := range rm.SectionsOrder {
		writeSection(&b, rm, section)
	}

	content = strings.TrimRight(b.String(), "\n") + "\n"
	return content
}

func writeSection(b *strings.Builder, rm projector.RenderModel, section string) {
	switch section {
	case profile.SectionSummary:
		if rm.Summary == nil {
			return
		}
		heading(b, "Summary")
		fmt.Fprintf(b, "%s\n\n", *rm.Summary)

	case profile.SectionTechnicalSkills:
		heading(b, "Technical Skills")
		for _, group := range rm.Skills {
			fmt.Fprintf(b, "### %s\n\n", group.Title)
			for _, skill := range group.Items {
				fmt.Fprintf(b, "- **%s**%s\n", skill.Name, levelSuffix(skill.Level))
				for _, detail := range skill.DetailGroups {
					fmt.Fprintf(b, "  - %s: %s\n", detail.Label, strings.Join(detail.Items, ", "))
				}
			}
			b.WriteString("\n")
		}

	case profile.SectionProjects:
		heading(b, "Projects")
		for _, project := range rm.Projects {
			fmt.Fprintf(b, "### %s\n\n", project.Title)
			if project.Description != "" {
				fmt.Fprintf(b, "%s\n\n", project.Description)
			}
			if project.TechStack != "" {
				fmt.Fprintf(b, "*%s*\n\n", project.TechStack)
			}
			bullets(b, project.Features)
			for _, study := range project.CaseStudies {
				fmt.Fprintf(b, "**%s**\n\n", study.Title)
				bullets(b, study.Details)
			}
		}

	case profile.SectionPhDResearch:
		if rm.PhDResearch == nil {
			return
		}
		heading(b, "PhD Research")
		for _, s := range rm.PhDResearch.Sections {
			fmt.Fprintf(b, "### %s\n\n", s.Title)
			for _, item := range s.Items {
				if item.Detail != "" {
					fmt.Fprintf(b, "- **%s**: %s\n", item.Point, item.Detail)
					continue
				}
				fmt.Fprintf(b, "- %s\n", item.Point)
			}
			b.WriteString("\n")
		}

	case profile.SectionEducation:
		heading(b, "Education")
		for _, e := range rm.Education {
			fmt.Fprintf(b, "### %s\n\n", e.Degree)
			fmt.Fprintf(b, "%s, %s\n\n", e.Institution, e.Period)
			if e.Research != "" {
				fmt.Fprintf(b, "Research: %s\n\n", e.Research)
			}
			if e.GPA != "" {
				fmt.Fprintf(b, "GPA: %s\n\n", e.GPA)
			}
			bullets(b, e.Highlights)
		}

	case profile.SectionPublications:
		heading(b, "Publications")
		for _, p := range rm.Publications {
			fmt.Fprintf(b, "- %s. *%s*. %s, %s. (%s)\n", p.Authors, p.Title, p.Venue, p.Year, p.Type)
		}
		b.WriteString("\n")

	case profile.SectionCertifications:
		heading(b, "Certifications")
		bullets(b, rm.Certifications)

	case profile.SectionWorkExperience:
		heading(b, "Work Experience")
		for _, job := range rm.WorkExperience {
			fmt.Fprintf(b, "### %s, %s\n\n", job.Title, job.Company)
			if meta := lo.Compact([]string{job.Location, job.Period, job.Type}); len(meta) > 0 {
				fmt.Fprintf(b, "%s\n\n", strings.Join(meta, " | "))
			}
			bullets(b, job.Responsibilities)
			bullets(b, job.Achievements)
		}
	}
}

func heading(b *strings.Builder, title string) {
	fmt.Fprintf(b, "## %s\n\n", title)
}

func bullets(b *strings.Builder, items []string) {
	if len(items) == 0 {
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func levelSuffix(level int) (suffix string) {
	if level > 0 {
		suffix = fmt.Sprintf(" (%d/5)", level)
	}
	return suffix
}
