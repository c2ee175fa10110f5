package merger

import (
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Export renders the version configuration as a standalone JSON document:
// the resolved config, the version entries as given, the current version and
// the export time.
func (m *Model) Export(current string, now time.Time) (data []byte, err error) {
	if !m.HasVersion(current) {
		current = m.defaultKey
	}

	data = []byte("{}")

	data, err = sjson.SetBytes(data, "version_config", m.Config())
	if err != nil {
		err = errors.Wrap(err, "failed to set version_config")
		return data, err
	}

	data, err = sjson.SetRawBytes(data, "versions", []byte(m.versionsRaw))
	if err != nil {
		err = errors.Wrap(err, "failed to set versions")
		return data, err
	}

	data, err = sjson.SetBytes(data, "current_version", current)
	if err != nil {
		err = errors.Wrap(err, "failed to set current_version")
		return data, err
	}

	data, err = sjson.SetBytes(data, "exported_at", now.UTC().Format(time.RFC3339))
	if err != nil {
		err = errors.Wrap(err, "failed to set exported_at")
		return data, err
	}

	data = pretty.Pretty(data)
	return data, err
}

// Stats summarizes the merged model.
type Stats struct {
	VersionCount     int      `json:"version_count"`
	ProjectCount     int      `json:"project_count"`
	PublicationCount int      `json:"publication_count"`
	SkillCount       int      `json:"skill_count"`
	WarningCount     int      `json:"warning_count"`
	Sections         []string `json:"sections"`
	SkillIDs         []string `json:"skill_ids"`
}

// VersionStats summarizes one resolved version.
type VersionStats struct {
	Key          string `json:"key"`
	DisplayName  string `json:"display_name"`
	SkillCount   int    `json:"skill_count"`
	ProjectCount int    `json:"project_count"`
	SectionCount int    `json:"section_count"`
}

// Stats returns counts over the profile and the union of sections and skill
// ids used by any version.
func (m *Model) Stats() (stats Stats) {
	versions := lo.Map(m.keys, func(key string, _ int) (version ResolvedVersion) {
		version = m.versions[key]
		return version
	})

	stats = Stats{
		VersionCount:     len(m.keys),
		ProjectCount:     len(m.profile.Projects),
		PublicationCount: len(m.profile.Publications),
		SkillCount:       len(m.profile.SkillIDs()),
		WarningCount:     len(m.warnings),
		Sections: lo.Uniq(lo.FlatMap(versions, func(v ResolvedVersion, _ int) (sections []string) {
			sections = v.SectionsOrder
			return sections
		})),
		SkillIDs: lo.Uniq(lo.FlatMap(versions, func(v ResolvedVersion, _ int) (ids []string) {
			ids = v.SkillsFocus
			return ids
		})),
	}
	return stats
}

// VersionStats summarizes every version in key order.
func (m *Model) VersionStats() (stats []VersionStats) {
	stats = make([]VersionStats, 0, len(m.keys))
	for _, key := range m.keys {
		version := m.versions[key]
		projects, _ := m.Projects(key)
		stats = append(stats, VersionStats{
			Key:          key,
			DisplayName:  version.DisplayName,
			SkillCount:   len(version.SkillsFocus),
			ProjectCount: len(projects),
			SectionCount: len(version.SectionsOrder),
		})
	}
	return stats
}
