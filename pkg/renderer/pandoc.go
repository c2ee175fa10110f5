package renderer

import (
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
)

// RenderPDF converts markdown to PDF using pandoc with a LaTeX template.
// Each entry of variables is passed to the template with -V.
func RenderPDF(markdownPath, outputPath, templatePath string, variables map[string]string) (err error) {
	// Validate pandoc exists
	err = checkPandocExists()
	if err != nil {
		return err
	}

	// Validate input files exist
	err = validateFiles(markdownPath, templatePath)
	if err != nil {
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	args := []string{
		"-f", "markdown",
		"-t", "pdf",
		"-o", outputPath,
		"--template", templatePath,
		"--number-sections=false",
	}
	args = append(args, pandocVariables(variables)...)
	args = append(args, markdownPath)

	//nolint:noctx // Context not available for exec.Command - pandoc is a long-running subprocess
	cmd := exec.Command("pandoc", args...)

	// Let the template find companion files next to it
	templateDir := filepath.Dir(templatePath)
	texinputs := templateDir + ":" + os.Getenv("TEXINPUTS")
	cmd.Env = append(os.Environ(), "TEXINPUTS="+texinputs)

	// Capture output
	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "pandoc failed: %s", string(output))
		return err
	}

	return err
}

// pandocVariables turns variables into -V arguments in key order.
func pandocVariables(variables map[string]string) (args []string) {
	args = make([]string, 0, 2*len(variables))
	for _, key := range slices.Sorted(maps.Keys(variables)) {
		args = append(args, "-V", key+"="+variables[key])
	}
	return args
}

// checkPandocExists verifies pandoc is installed.
func checkPandocExists() (err error) {
	//nolint:noctx // Context not available for version check
	cmd := exec.Command("pandoc", "--version")
	err = cmd.Run()
	if err != nil {
		err = errors.New("pandoc not found in PATH (install pandoc to generate PDFs)")
		return err
	}
	return err
}

// validateFiles checks that required files exist.
func validateFiles(paths ...string) (err error) {
	for _, path := range paths {
		_, err = os.Stat(path)
		if os.IsNotExist(err) {
			err = errors.Errorf("file not found: %s", path)
			return err
		}
	}
	return err
}

// WriteMarkdown writes markdown content to a file.
func WriteMarkdown(content, outputPath string) (err error) {
	err = writeFile(outputPath, []byte(content))
	if err != nil {
		err = errors.Wrap(err, "failed to write markdown")
		return err
	}
	return err
}

// CleanupMarkdown removes markdown files after PDF generation.
func CleanupMarkdown(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove markdown file: %s", path)
			return err
		}
	}
	return err
}

func writeFile(outputPath string, data []byte) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write file: %s", outputPath)
		return err
	}

	return err
}
