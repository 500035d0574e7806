// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is a config file in the working directory, checked when the default is missing.
	legacyConfigPath = "config.json"

	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultTopK         = 5
	DefaultPreviewChars = 200
	defaultLogFile      = "docsearch.log"
)

// ErrInvalidConfig marks configuration values that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the top-level application configuration.
type Config struct {
	Root         string   `json:"root,omitempty" mapstructure:"root"`
	DataDir      string   `json:"dataDir,omitempty" mapstructure:"dataDir"`
	StorageDir   string   `json:"storageDir,omitempty" mapstructure:"storageDir"`
	ChunkSize    int      `json:"chunkSize" mapstructure:"chunkSize"`
	ChunkOverlap int      `json:"chunkOverlap" mapstructure:"chunkOverlap"`
	TopK         int      `json:"topK" mapstructure:"topK"`
	Extensions   []string `json:"extensions,omitempty" mapstructure:"extensions"`
	ExcludeGlobs []string `json:"excludeGlobs,omitempty" mapstructure:"excludeGlobs"`
	PreviewChars int      `json:"previewChars" mapstructure:"previewChars"`
	LogFile      string   `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug        bool     `json:"debug" mapstructure:"debug"`
	JSONMode     bool     `json:"jsonMode" mapstructure:"jsonMode"`
	ConfigPath   string   `json:"-" mapstructure:"-"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Root:         ".",
		DataDir:      "data",
		StorageDir:   "storage",
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		TopK:         DefaultTopK,
		Extensions:   []string{".md", ".txt"},
		PreviewChars: DefaultPreviewChars,
		LogFile:      defaultLogFile,
	}
}

// Validate rejects values that would break chunking or retrieval.
func (c Config) Validate() error {
	switch {
	case c.ChunkSize <= 0:
		return fmt.Errorf("%w: chunkSize must be greater than zero, got %d", ErrInvalidConfig, c.ChunkSize)
	case c.ChunkOverlap < 0:
		return fmt.Errorf("%w: chunkOverlap must be zero or greater, got %d", ErrInvalidConfig, c.ChunkOverlap)
	case c.ChunkOverlap >= c.ChunkSize:
		return fmt.Errorf("%w: chunkOverlap (%d) must be smaller than chunkSize (%d)", ErrInvalidConfig, c.ChunkOverlap, c.ChunkSize)
	case c.TopK < 0:
		return fmt.Errorf("%w: topK must be zero or greater, got %d", ErrInvalidConfig, c.TopK)
	case c.PreviewChars < 0:
		return fmt.Errorf("%w: previewChars must be zero or greater, got %d", ErrInvalidConfig, c.PreviewChars)
	}
	return nil
}

// ProjectRoot returns the directory holding the data and storage folders.
func (c Config) ProjectRoot() string {
	if root := strings.TrimSpace(c.Root); root != "" {
		return root
	}
	return "."
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
// Fields missing from the file keep their defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

func loadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := ValidateDocument(data); err != nil {
		return Config{}, err
	}

	config := Defaults()
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&config); err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}
