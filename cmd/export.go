package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nikogura/resume-versions/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var exportOutput string

//nolint:gochecknoglobals // Cobra boilerplate
var exportCmd = &cobra.Command{
	Use:   "export [version]",
	Short: "Export the resolved version configuration",
	Long: `Export the version configuration as a standalone JSON document with the
resolved config, the version entries, the current version and a timestamp.

Example:
  resume-versions export
  resume-versions export research --output versions-export.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Create $HOME/.resume-versions/config.json (or the file named by --config)
with placeholder document locations.`,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(initCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	model, current, err := loadModel()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		current = args[0]
	}

	var data []byte
	data, err = model.Export(current, time.Now())
	if err != nil {
		err = errors.Wrap(err, "failed to export configuration")
		return err
	}

	if exportOutput == "" {
		fmt.Print(string(data))
		return err
	}

	dir := filepath.Dir(exportOutput)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", dir)
		return err
	}

	err = os.WriteFile(exportOutput, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write export: %s", exportOutput)
		return err
	}

	fmt.Printf("✓ Exported to %s\n", exportOutput)
	return err
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	path := getConfigFile()
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	err = config.InitConfig(path)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created %s\n", path)
	fmt.Println("Edit documents.profile and documents.versions to point at your documents.")
	return err
}
