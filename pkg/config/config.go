package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikogura/resume-versions/pkg/loader"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the render command.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// Environment variables that override document locations.
const (
	EnvProfile  = "RESUME_VERSIONS_PROFILE"
	EnvVersions = "RESUME_VERSIONS_VERSIONS"
	EnvLegacy   = "RESUME_VERSIONS_LEGACY"
)

// ErrNotFound is returned when the config file does not exist and nothing
// else names the documents.
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration.
type Config struct {
	Name      string          `json:"name" yaml:"name"`
	Documents DocumentsConfig `json:"documents" yaml:"documents"`
	Defaults  DefaultConfig   `json:"defaults" yaml:"defaults"`
	Pandoc    PandocConfig    `json:"pandoc" yaml:"pandoc"`
}

// DocumentsConfig names where the résumé documents live.  Each is a file
// path or an http(s) URL.
type DocumentsConfig struct {
	Profile  string `json:"profile" yaml:"profile"`
	Versions string `json:"versions" yaml:"versions"`
	Legacy   string `json:"legacy,omitempty" yaml:"legacy,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	Format    string `json:"format,omitempty" yaml:"format,omitempty"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// PandocConfig holds pandoc-related configuration.
type PandocConfig struct {
	TemplatePath string `json:"template_path,omitempty" yaml:"template_path,omitempty"`
}

// Sources returns the loader view of the configured documents.
func (c *Config) Sources() (sources loader.Sources) {
	sources = loader.Sources{
		Profile:  c.Documents.Profile,
		Versions: c.Documents.Versions,
		Legacy:   c.Documents.Legacy,
	}
	return sources
}

// DefaultPath returns ~/.resume-versions/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".resume-versions", "config.json")
	return path, err
}

// Load reads configuration from file, then applies environment variable
// overrides and finally the non-empty fields of overrides.  A missing file is
// only an error when no document location is known afterwards.
func Load(configPath string, overrides DocumentsConfig) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	missing := false
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = parse(path, data)
		if err != nil {
			return cfg, err
		}
	case os.IsNotExist(err):
		err = nil
		missing = true
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	cfg.applyDocuments(envDocuments())
	cfg.applyDocuments(overrides)

	if missing && !cfg.Documents.configured() {
		err = errors.Wrapf(ErrNotFound, "%s (run 'resume-versions init' to create)", path)
		return cfg, err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func parse(path string, data []byte) (cfg Config, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}
	return cfg, err
}

func envDocuments() (docs DocumentsConfig) {
	docs = DocumentsConfig{
		Profile:  os.Getenv(EnvProfile),
		Versions: os.Getenv(EnvVersions),
		Legacy:   os.Getenv(EnvLegacy),
	}
	return docs
}

func (c *Config) applyDocuments(docs DocumentsConfig) {
	if docs.Profile != "" {
		c.Documents.Profile = docs.Profile
	}
	if docs.Versions != "" {
		c.Documents.Versions = docs.Versions
	}
	if docs.Legacy != "" {
		c.Documents.Legacy = docs.Legacy
	}
}

func (d DocumentsConfig) configured() (ok bool) {
	ok = (d.Profile != "" && d.Versions != "") || d.Legacy != ""
	return ok
}

// Validate checks that the documents are named and fills in defaults.
func (c *Config) Validate() (err error) {
	if !c.Documents.configured() {
		err = errors.New("documents.profile and documents.versions, or documents.legacy, are required")
		return err
	}

	switch c.Defaults.Format {
	case "":
		c.Defaults.Format = FormatJSON
	case FormatJSON, FormatMarkdown, FormatPDF:
	default:
		err = errors.Errorf("unsupported defaults.format: %s", c.Defaults.Format)
		return err
	}

	if c.Defaults.Format == FormatPDF && c.Pandoc.TemplatePath == "" {
		err = errors.New("pandoc.template_path is required for pdf output")
		return err
	}

	if c.Name == "" {
		c.Name = "resume"
	}

	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "./output"
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		Name: "your-name",
		Documents: DocumentsConfig{
			Profile:  filepath.Join(dir, "profile.json"),
			Versions: filepath.Join(dir, "versions.json"),
		},
		Defaults: DefaultConfig{
			Format:    FormatJSON,
			OutputDir: "./output",
		},
		Pandoc: PandocConfig{
			TemplatePath: filepath.Join(dir, "resume-template.latex"),
		},
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
