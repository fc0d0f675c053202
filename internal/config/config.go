package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/quantalogic/lorem-ipsum-generator/pkg/render"
	"github.com/quantalogic/lorem-ipsum-generator/pkg/utils"
)

var (
	ErrConfigFileNotFound    = errors.New("config file not found")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
	ErrInvalidPort           = errors.New("invalid server port")
)

// CurrentVersion of the config file.
const CurrentVersion = 1

// FileName is the config file looked up in the search paths.
const FileName = "lorem.toml"

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version   int       `koanf:"version"`
	Server    Server    `koanf:"server"`
	Generator Generator `koanf:"generator"`
	Debug     Debug     `koanf:"debug"`
}

// Server contains HTTP listener configuration.
type Server struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	// Timeouts in milliseconds.
	ReadTimeout     int `koanf:"read_timeout"`
	WriteTimeout    int `koanf:"write_timeout"`
	ShutdownTimeout int `koanf:"shutdown_timeout"`
}

// Generator contains text generation settings.
type Generator struct {
	// Seed makes every request without its own seed reproducible. Zero means random.
	Seed int64 `koanf:"seed"`
	// VocabularyFile is a TOML file with a `words` array replacing the built-in vocabulary.
	VocabularyFile string `koanf:"vocabulary_file"`
	// WatchVocabulary reloads VocabularyFile when it changes.
	WatchVocabulary bool `koanf:"watch_vocabulary"`
	// DefaultFormat is json, text or html. Empty means json. Load stores the
	// normalized value.
	DefaultFormat string `koanf:"default_format"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Server: Server{
			Host:            "",
			Port:            8080,
			ReadTimeout:     5000,
			WriteTimeout:    10000,
			ShutdownTimeout: 5000,
		},
		Generator: Generator{
			DefaultFormat: string(render.FormatJSON),
		},
		Debug: Debug{
			LogLevel: "info",
		},
	}
}

// Addr returns the listen address.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ReadTimeoutDuration returns the read timeout as a time.Duration.
func (s Server) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Millisecond
}

// WriteTimeoutDuration returns the write timeout as a time.Duration.
func (s Server) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Millisecond
}

// ShutdownTimeoutDuration returns the shutdown timeout as a time.Duration.
func (s Server) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Millisecond
}

// SeedPtr returns the configured seed, or nil when requests should be random.
func (g Generator) SeedPtr() *int64 {
	if g.Seed == 0 {
		return nil
	}
	seed := g.Seed
	return &seed
}

// SearchPaths lists the locations checked for FileName, in order.
func SearchPaths() []string {
	paths := []string{".", "config"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".lorem"))
	}
	return append(paths, "/etc/lorem")
}

// Load reads the configuration. An explicit path must exist; otherwise the
// search paths are tried and defaults are used when nothing is found.
// Returns the config along with the file it was read from ("" for defaults).
func Load(path string) (*Config, string, error) {
	if path == "" {
		for _, dir := range SearchPaths() {
			candidate := filepath.Join(dir, FileName)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return Default(), "", nil
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", path, err)
	}

	config := Default()
	if err := k.Unmarshal("", config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}

	return config, path, nil
}

// Validate checks values that would otherwise fail later at startup and
// normalizes the default format.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w (got: %d, expected: %d)", ErrConfigVersionMismatch, c.Version, CurrentVersion)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}
	format := render.FormatJSON
	if c.Generator.DefaultFormat != "" {
		f, err := render.ParseFormat(c.Generator.DefaultFormat)
		if err != nil {
			return err
		}
		format = f
	}
	c.Generator.DefaultFormat = string(format)
	return nil
}

// LoadVocabulary reads a TOML file of the form `words = ["..."]`.
func LoadVocabulary(path string) (*utils.WordBank, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load vocabulary %s: %w", path, err)
	}

	wb, err := utils.NewWordBankFromWords(k.Strings("words"))
	if err != nil {
		return nil, fmt.Errorf("invalid vocabulary %s: %w", path, err)
	}
	return wb, nil
}
