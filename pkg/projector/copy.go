package projector

import (
	"slices"

	"github.com/nikogura/resume-versions/pkg/profile"
)

// The copy helpers give every render model its own slices so callers can
// edit one without touching the shared profile.  Nil stays nil.

func copyPersonalInfo(info profile.PersonalInfo) (out profile.PersonalInfo) {
	out = info
	out.Social = slices.Clone(info.Social)
	return out
}

func copyProjects(projects []profile.Project) (out []profile.Project) {
	if projects == nil {
		return out
	}

	out = make([]profile.Project, len(projects))
	for i, project := range projects {
		project.Features = slices.Clone(project.Features)
		if project.CaseStudies != nil {
			studies := make([]profile.CaseStudy, len(project.CaseStudies))
			for j, study := range project.CaseStudies {
				study.Details = slices.Clone(study.Details)
				studies[j] = study
			}
			project.CaseStudies = studies
		}
		out[i] = project
	}
	return out
}

func copyEducation(education []profile.Education) (out []profile.Education) {
	if education == nil {
		return out
	}

	out = make([]profile.Education, len(education))
	for i, e := range education {
		e.Highlights = slices.Clone(e.Highlights)
		out[i] = e
	}
	return out
}

func copyPhDResearch(research *profile.PhDResearch) (out *profile.PhDResearch) {
	if research == nil {
		return out
	}

	out = &profile.PhDResearch{}
	if research.Sections != nil {
		out.Sections = make([]profile.ResearchSection, len(research.Sections))
		for i, section := range research.Sections {
			section.Items = slices.Clone(section.Items)
			out.Sections[i] = section
		}
	}
	return out
}

func copyWorkExperience(jobs []profile.WorkExperience) (out []profile.WorkExperience) {
	if jobs == nil {
		return out
	}

	out = make([]profile.WorkExperience, len(jobs))
	for i, job := range jobs {
		job.Responsibilities = slices.Clone(job.Responsibilities)
		job.Achievements = slices.Clone(job.Achievements)
		out[i] = job
	}
	return out
}
