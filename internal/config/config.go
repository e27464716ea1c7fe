package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhevm-examples/exgen/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys. Nested keys use viper's dot notation.
const (
	KeyCatalog      = "catalog"
	KeySourceRoot   = "source_root"
	KeyTemplateDir  = "template_dir"
	KeyDocsOutput   = "docs.output"
	KeyDocsAPI      = "docs.api"
	KeyDocsGuide    = "docs.guide"
	KeySummaryPath  = "summary.path"
	KeyBatchWorkers = "batch.parallel"
)

// Settings is the resolved configuration for one invocation.
type Settings struct {
	// Catalog is the path of a YAML or TOML catalog file. Empty selects the
	// embedded default catalog.
	Catalog string `mapstructure:"catalog"`
	// SourceRoot is the directory that example artifact paths are relative to.
	SourceRoot string `mapstructure:"source_root"`
	// TemplateDir is the base template directory. Empty selects the embedded
	// Hardhat template.
	TemplateDir string          `mapstructure:"template_dir"`
	Docs        DocsSettings    `mapstructure:"docs"`
	Summary     SummarySettings `mapstructure:"summary"`
	Batch       BatchSettings   `mapstructure:"batch"`
}

// DocsSettings controls documentation output.
type DocsSettings struct {
	Output string `mapstructure:"output"`
	API    bool   `mapstructure:"api"`
	Guide  bool   `mapstructure:"guide"`
}

// SummarySettings controls the shared SUMMARY.md index.
type SummarySettings struct {
	// Path overrides the index location used by the create commands.
	// Empty means SUMMARY.md next to the generated project.
	Path string `mapstructure:"path"`
}

// BatchSettings controls generate-docs --all.
type BatchSettings struct {
	Parallel int `mapstructure:"parallel"`
}

// Dir returns the path to the exgen config directory (~/.exgen/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the user config file (~/.exgen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// SetDefaults registers the built-in default for every setting.
func SetDefaults() {
	viper.SetDefault(KeyCatalog, "")
	viper.SetDefault(KeySourceRoot, ".")
	viper.SetDefault(KeyTemplateDir, "")
	viper.SetDefault(KeyDocsOutput, "docs")
	viper.SetDefault(KeyDocsAPI, false)
	viper.SetDefault(KeyDocsGuide, false)
	viper.SetDefault(KeySummaryPath, "")
	viper.SetDefault(KeyBatchWorkers, 1)
}

// Load initializes Viper to read from the config file and environment.
// A project file in the working directory takes the place of the user file.
func Load() {
	SetDefaults()

	configFile := FilePath()
	if _, err := os.Stat(branding.ProjectFile()); err == nil {
		configFile = branding.ProjectFile()
	}
	viper.SetConfigFile(configFile)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current unmarshals the loaded configuration into Settings.
func Current() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if s.Batch.Parallel < 1 {
		s.Batch.Parallel = 1
	}
	return &s, nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair to the user config file and applies
// it to the running process. Only keys already in the user file and the
// new key are written; defaults, environment values, and project file
// values stay out of it.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	user := viper.New()
	user.SetConfigFile(configFile)
	user.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := user.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	user.Set(key, value)
	if err := user.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, value)
	return nil
}
