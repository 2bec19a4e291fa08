// Package projectconfig provides the ProjectConfig struct and loader for
// .foodhub.yaml configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/foodhub/foodhub/internal/validation"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up from the working directory.
const FileName = ".foodhub.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultDatasetPath = "zomato.csv"
	DefaultColumns     = "B:N"
	DefaultPreviewRows = 50

	DefaultServerPort = 8501

	DefaultTopN = 3
)

// ErrInvalidConfig is returned when the file does not match the schema.
var ErrInvalidConfig = errors.New("invalid configuration")

// DatasetConfig says where the restaurant table lives.
type DatasetConfig struct {
	Path        string `yaml:"path,omitempty"`
	Sheet       string `yaml:"sheet,omitempty"`
	Columns     string `yaml:"columns,omitempty"`
	MaxRows     int    `yaml:"max_rows,omitempty"`
	PreviewRows int    `yaml:"preview_rows,omitempty"`
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// DefaultsConfig holds defaults for interactive controls.
type DefaultsConfig struct {
	TopN int `yaml:"top_n,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .foodhub.yaml.
type ProjectConfig struct {
	Dataset  DatasetConfig  `yaml:"dataset,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`

	// Source is the file the values were read from, empty for defaults.
	Source string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Dataset: DatasetConfig{
			Path:        DefaultDatasetPath,
			Columns:     DefaultColumns,
			PreviewRows: DefaultPreviewRows,
		},
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
		Defaults: DefaultsConfig{
			TopN: DefaultTopN,
		},
	}
}

// Load finds .foodhub.yaml by walking up from startDir (max 10 levels),
// validates and unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	p, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return LoadFile(p)
}

// LoadFile reads the configuration at path. A relative dataset path is
// resolved against the directory holding the file.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Source = path
	if p := cfg.Dataset.Path; p != "" && !filepath.IsAbs(p) && !strings.Contains(p, "://") {
		cfg.Dataset.Path = filepath.Join(filepath.Dir(path), p)
	}
	return cfg, nil
}

func parse(data []byte) (*ProjectConfig, error) {
	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("%w:\n  %s", ErrInvalidConfig, strings.Join(errs, "\n  "))
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .foodhub.yaml (max 10
// levels) and returns its path. Returns os.ErrNotExist if none is found.
func findConfigFile(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Dataset
	if src.Dataset.Path != "" {
		dst.Dataset.Path = src.Dataset.Path
	}
	if src.Dataset.Sheet != "" {
		dst.Dataset.Sheet = src.Dataset.Sheet
	}
	if src.Dataset.Columns != "" {
		dst.Dataset.Columns = src.Dataset.Columns
	}
	if src.Dataset.MaxRows != 0 {
		dst.Dataset.MaxRows = src.Dataset.MaxRows
	}
	if src.Dataset.PreviewRows != 0 {
		dst.Dataset.PreviewRows = src.Dataset.PreviewRows
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if len(src.Server.AllowedOrigins) > 0 {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}

	// Defaults
	if src.Defaults.TopN != 0 {
		dst.Defaults.TopN = src.Defaults.TopN
	}
}
