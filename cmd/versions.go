package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nikogura/resume-versions/pkg/merger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var versionsJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the résumé versions",
	Long: `List every version with its display name, skill, project and section counts.
The default version is marked with *.

Example:
  resume-versions versions
  resume-versions versions --json`,
	RunE: runVersions,
}

//nolint:gochecknoglobals // Cobra boilerplate
var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the theme color and class of each version",
	Long: `Print the theme class name and color of each version for an external
theming step.  The output is JSON.`,
	RunE: runThemes,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(themesCmd)
	versionsCmd.Flags().BoolVar(&versionsJSON, "json", false, "Print statistics as JSON")
}

func loadModel() (model *merger.Model, current string, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	_, controller, _, err := setupController(ctx)
	if err != nil {
		return model, current, err
	}

	model, err = controller.Model()
	if err != nil {
		return model, current, err
	}

	current = controller.Current()
	return model, current, err
}

func runVersions(cmd *cobra.Command, args []string) (err error) {
	model, current, err := loadModel()
	if err != nil {
		return err
	}

	if versionsJSON {
		out := struct {
			Stats    merger.Stats          `json:"stats"`
			Versions []merger.VersionStats `json:"versions"`
		}{
			Stats:    model.Stats(),
			Versions: model.VersionStats(),
		}
		err = printJSON(out)
		return err
	}

	fmt.Println(versionsTable(model, current))

	stats := model.Stats()
	fmt.Printf("\n%d version(s), %d project(s), %d publication(s), %d skill(s)\n",
		stats.VersionCount, stats.ProjectCount, stats.PublicationCount, stats.SkillCount)
	if stats.WarningCount > 0 {
		fmt.Printf("%d merge warning(s), run with --verbose or validate for details\n", stats.WarningCount)
	}

	return err
}

func versionsTable(model *merger.Model, current string) (rendered string) {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0)
	for _, vs := range model.VersionStats() {
		marker := ""
		if vs.Key == current {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			vs.Key,
			vs.DisplayName,
			strconv.Itoa(vs.SkillCount),
			strconv.Itoa(vs.ProjectCount),
			strconv.Itoa(vs.SectionCount),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "KEY", "NAME", "SKILLS", "PROJECTS", "SECTIONS").
		Rows(rows...).
		StyleFunc(func(row, col int) (style lipgloss.Style) {
			if row == table.HeaderRow {
				style = headerStyle
				return style
			}
			style = cellStyle
			return style
		})

	rendered = t.Render()
	return rendered
}

func runThemes(cmd *cobra.Command, args []string) (err error) {
	model, _, err := loadModel()
	if err != nil {
		return err
	}

	err = printJSON(model.Themes())
	return err
}

func printJSON(v interface{}) (err error) {
	var data []byte
	data, err = json.MarshalIndent(v, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal output")
		return err
	}

	fmt.Println(string(data))
	return err
}
