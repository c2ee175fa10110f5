package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikogura/resume-versions/pkg/app"
	"github.com/nikogura/resume-versions/pkg/config"
	"github.com/nikogura/resume-versions/pkg/merger"
	"github.com/nikogura/resume-versions/pkg/projector"
	"github.com/nikogura/resume-versions/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var renderFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var renderOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var renderStdout bool

//nolint:gochecknoglobals // Cobra boilerplate
var renderAll bool

//nolint:gochecknoglobals // Cobra boilerplate
var renderKeepMarkdown bool

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render [version]",
	Short: "Render one or all résumé versions",
	Long: `Render the content of a résumé version as JSON for an external renderer,
as markdown, or as PDF through pandoc.

Without a version argument the configured default version is rendered.  An
unknown version falls back to the default with a warning.

Example:
  resume-versions render
  resume-versions render research --format markdown --stdout
  resume-versions render --all --format pdf --output-dir ~/Documents/resumes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "Output format: json, markdown or pdf (default from config)")
	renderCmd.Flags().StringVar(&renderOutputDir, "output-dir", "", "Output directory (default from config)")
	renderCmd.Flags().BoolVar(&renderStdout, "stdout", false, "Print to stdout instead of writing files (json and markdown only)")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "Render every version")
	renderCmd.Flags().BoolVar(&renderKeepMarkdown, "keep-markdown", false, "Keep markdown files after PDF generation")
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	cfg, controller, _, err := setupController(ctx)
	if err != nil {
		return err
	}

	format := getFormat(renderFormat, cfg.Defaults.Format)
	if format == config.FormatPDF && renderStdout {
		err = errors.New("--stdout is not supported for pdf output")
		return err
	}

	var models []projector.RenderModel
	models, err = selectRenderModels(controller, args)
	if err != nil {
		return err
	}

	outDir := getOutputDir(renderOutputDir, cfg.Defaults.OutputDir)

	keys := make([]string, 0, len(models))
	for _, rm := range models {
		keys = append(keys, rm.VersionKey)
	}

	var bases map[string]string
	bases, err = outputBases(cfg.Name, outDir, keys)
	if err != nil {
		return err
	}

	for _, rm := range models {
		err = renderOne(cfg, rm, format, bases[rm.VersionKey])
		if err != nil {
			return err
		}
	}

	return err
}

func selectRenderModels(controller *app.Controller, args []string) (models []projector.RenderModel, err error) {
	if renderAll {
		var model *merger.Model
		model, err = controller.Model()
		if err != nil {
			return models, err
		}
		for _, key := range model.VersionKeys() {
			var rm projector.RenderModel
			rm, err = projector.Project(model, key)
			if err != nil {
				return models, err
			}
			models = append(models, rm)
		}
		return models, err
	}

	var rm projector.RenderModel
	if len(args) == 1 {
		rm, err = controller.RenderVersion(args[0])
	} else {
		rm, err = controller.Render()
	}
	if err != nil {
		return models, err
	}

	models = append(models, rm)
	return models, err
}

// outputBases maps each version key to its output path without extension.
// Keys that sanitize to the same file name are rejected.
func outputBases(name, outDir string, keys []string) (bases map[string]string, err error) {
	bases = make(map[string]string, len(keys))
	owners := make(map[string]string, len(keys))

	for _, key := range keys {
		base := filepath.Join(outDir, fmt.Sprintf("%s-%s", sanitizeFilename(name), sanitizeFilename(key)))
		if owner, taken := owners[base]; taken && owner != key {
			err = errors.Errorf("versions %q and %q both render to %s", owner, key, base)
			return bases, err
		}
		owners[base] = key
		bases[key] = base
	}

	return bases, err
}

func renderOne(cfg config.Config, rm projector.RenderModel, format, base string) (err error) {

	switch format {
	case config.FormatJSON:
		if renderStdout {
			var data []byte
			data, err = renderer.JSON(rm)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return err
		}
		path := base + ".json"
		err = renderer.WriteJSON(rm, path)
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s: %s\n", rm.DisplayName, path)

	case config.FormatMarkdown:
		content := renderer.Markdown(rm)
		if renderStdout {
			fmt.Print(content)
			return err
		}
		path := base + ".md"
		err = renderer.WriteMarkdown(content, path)
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s: %s\n", rm.DisplayName, path)

	case config.FormatPDF:
		err = renderPDF(cfg, rm, base)
		if err != nil {
			return err
		}

	default:
		err = errors.Errorf("unsupported format: %s", format)
		return err
	}

	return err
}

func renderPDF(cfg config.Config, rm projector.RenderModel, base string) (err error) {
	if cfg.Pandoc.TemplatePath == "" {
		err = errors.New("pandoc.template_path is required in config for pdf output")
		return err
	}

	mdPath := base + ".md"
	pdfPath := base + ".pdf"

	err = renderer.WriteMarkdown(renderer.Markdown(rm), mdPath)
	if err != nil {
		return err
	}

	variables := map[string]string{
		"themecolor":   strings.TrimPrefix(rm.ThemeColor, "#"),
		"versionname":  rm.DisplayName,
		"themeclass":   rm.ThemeClass,
		"resumeauthor": rm.PersonalInfo.Name,
	}

	var pdfSpinner *spinner
	if !getVerbose() {
		pdfSpinner = newSpinner(fmt.Sprintf("Rendering %s PDF...", rm.DisplayName))
		pdfSpinner.start()
	}

	err = renderer.RenderPDF(mdPath, pdfPath, cfg.Pandoc.TemplatePath, variables)

	if pdfSpinner != nil {
		pdfSpinner.stopSpinner()
	}

	if err != nil {
		err = errors.Wrapf(err, "failed to render %s", rm.VersionKey)
		return err
	}

	if !renderKeepMarkdown {
		err = renderer.CleanupMarkdown(mdPath)
		if err != nil {
			return err
		}
	}

	fmt.Printf("✓ %s: %s\n", rm.DisplayName, pdfPath)
	return err
}

func getFormat(flagValue, configValue string) (format string) {
	format = flagValue
	if format == "" {
		format = configValue
	}
	if format == "" {
		format = config.FormatJSON
	}
	return format
}

func getOutputDir(flagValue, configValue string) (outDir string) {
	outDir = flagValue
	if outDir == "" {
		outDir = configValue
	}
	return outDir
}

func sanitizeFilename(name string) (sanitized string) {
	sanitized = strings.ToLower(name)

	// Replace spaces and special chars with hyphens
	sanitized = strings.Map(func(r rune) (result rune) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	// Remove consecutive hyphens
	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	sanitized = strings.Trim(sanitized, "-")
	if sanitized == "" {
		sanitized = "resume"
	}

	return sanitized
}

// spinner prints a progress indicator until stopped.
type spinner struct {
	message string
	stop    chan struct{}
	done    chan struct{}
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	return s
}

func (s *spinner) start() {
	go func() {
		defer close(s.done)

		chars := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Printf("%s ", s.message)
		for i := 0; ; i++ {
			select {
			case <-s.stop:
				fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+2))
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", s.message, chars[i%len(chars)])
			}
		}
	}()
}

func (s *spinner) stopSpinner() {
	close(s.stop)
	<-s.done
}
