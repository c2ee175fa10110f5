package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nikogura/resume-versions/pkg/document"
	"github.com/nikogura/resume-versions/pkg/loader"
	"github.com/nikogura/resume-versions/pkg/validator"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var validateJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the documents for structural problems",
	Long: `Validate the profile and version-set documents and print every error and
warning found.  Errors make the command fail; warnings do not.

Example:
  resume-versions validate
  resume-versions validate --profile profile.json --versions versions.yaml
  resume-versions validate --legacy resume.json --json`,
	RunE: runValidate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the result as JSON")
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	docs, err := loader.Load(ctx, cfg.Sources())
	if err != nil {
		err = errors.Wrap(err, "failed to load documents")
		return err
	}

	combined := docs.Profile
	if docs.Legacy {
		logger.Warn("Validating legacy combined document", "reason", docs.FallbackReason)
	} else {
		combined, err = document.Compose(docs.Profile, docs.Versions)
		if err != nil {
			return err
		}
	}

	var result validator.Result
	result, err = validator.Validate(combined)
	if err != nil {
		return err
	}

	if validateJSON {
		var data []byte
		data, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			err = errors.Wrap(err, "failed to marshal validation result")
			return err
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(validator.Report(result, validator.DefaultReportStyles()))
	}

	if !result.IsValid {
		err = errors.Errorf("validation failed with %d error(s)", len(result.Errors))
		return err
	}

	return err
}
