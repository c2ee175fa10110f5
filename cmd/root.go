package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/nikogura/resume-versions/pkg/app"
	"github.com/nikogura/resume-versions/pkg/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var documentFlags config.DocumentsConfig

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resume-versions",
	Short: "Validate, merge and render audience-targeted résumé versions",
	Long: `resume-versions combines a versionless profile document with a version-set
document and produces render-ready content for each résumé version.

Documents are JSON or YAML, read from files or http(s) URLs.  A single legacy
document carrying both the profile and the versions is used as a fallback.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.resume-versions/config.json)")
	rootCmd.PersistentFlags().StringVar(&documentFlags.Profile, "profile", "", "Profile document (file or URL)")
	rootCmd.PersistentFlags().StringVar(&documentFlags.Versions, "versions", "", "Version-set document (file or URL)")
	rootCmd.PersistentFlags().StringVar(&documentFlags.Legacy, "legacy", "", "Legacy combined document used as fallback (file or URL)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// newLogger builds the stderr logger shared by all commands.
func newLogger() (logger *log.Logger) {
	level := log.InfoLevel
	if getVerbose() {
		level = log.DebugLevel
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return logger
}

// loadConfig reads the config file with document flags applied on top.
func loadConfig() (cfg config.Config, err error) {
	cfg, err = config.Load(getConfigFile(), documentFlags)
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, err
	}
	return cfg, err
}

// setupController loads config and documents and returns a ready controller.
func setupController(ctx context.Context) (cfg config.Config, controller *app.Controller, logger *log.Logger, err error) {
	logger = newLogger()

	cfg, err = loadConfig()
	if err != nil {
		return cfg, controller, logger, err
	}

	logger.Debug("Loading documents",
		"profile", cfg.Documents.Profile,
		"versions", cfg.Documents.Versions,
		"legacy", cfg.Documents.Legacy,
	)

	controller = app.NewController(cfg.Sources(), cfg.Defaults.Version, logger)

	err = controller.Load(ctx)
	if err != nil {
		return cfg, controller, logger, err
	}

	return cfg, controller, logger, err
}
