package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file location configuration.
type Paths struct {
	// DataPath is the base directory session pose files are resolved under.
	DataPath string `toml:"data_path"`
	// SkeletonPath locates the connectivity description document.
	SkeletonPath string `toml:"skeleton_path"`
	// MetadataFile locates the per-session categorical table. Relative values
	// resolve under DataPath.
	MetadataFile string `toml:"metadata_file"`
	LogDir       string `toml:"log_dir"`
}

// Metadata contains configuration for parsing the per-session table.
type Metadata struct {
	Delimiter  string `toml:"delimiter"`
	IDColumn   string `toml:"id_column"`
	PathColumn string `toml:"path_column"`
}

// Merge contains configuration for the merge engine.
type Merge struct {
	// Workers bounds concurrent session loads. Zero means one per CPU.
	Workers int `toml:"workers"`
	// Format is the default pose file format tag.
	Format string `toml:"format"`
}

// Catalog contains configuration for the merge-run provenance store.
type Catalog struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // Default: <log_dir>/catalog.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for posekit.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Metadata Metadata `toml:"metadata"`
	Merge    Merge    `toml:"merge"`
	Catalog  Catalog  `toml:"catalog"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/posekit/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("posekit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataPath, err = expandPath(c.Paths.DataPath); err != nil {
		return fmt.Errorf("paths.data_path: %w", err)
	}
	if c.Paths.SkeletonPath, err = expandPath(c.Paths.SkeletonPath); err != nil {
		return fmt.Errorf("paths.skeleton_path: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	if strings.TrimSpace(c.Paths.MetadataFile) == "" {
		c.Paths.MetadataFile = defaultMetadataFile
	}
	if strings.HasPrefix(c.Paths.MetadataFile, "~") || filepath.IsAbs(c.Paths.MetadataFile) {
		if c.Paths.MetadataFile, err = expandPath(c.Paths.MetadataFile); err != nil {
			return fmt.Errorf("paths.metadata_file: %w", err)
		}
	} else {
		c.Paths.MetadataFile = filepath.Join(c.Paths.DataPath, c.Paths.MetadataFile)
	}

	if strings.TrimSpace(c.Catalog.Path) == "" {
		c.Catalog.Path = filepath.Join(c.Paths.LogDir, "catalog.db")
	} else if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}

	if strings.TrimSpace(c.Metadata.IDColumn) == "" {
		c.Metadata.IDColumn = defaultIDColumn
	}
	if strings.TrimSpace(c.Metadata.PathColumn) == "" {
		c.Metadata.PathColumn = defaultPathColumn
	}
	if strings.TrimSpace(c.Metadata.Delimiter) == "" {
		c.Metadata.Delimiter = ","
	}

	if strings.TrimSpace(c.Merge.Format) == "" {
		c.Merge.Format = defaultMergeFormat
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataPath, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ResolveDataPath resolves a session file path against the data directory.
// Absolute paths pass through untouched.
func (c *Config) ResolveDataPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Paths.DataPath, path)
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// ExpandPath expands a user-supplied path, including tilde shortcuts, to an
// absolute cleaned path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
