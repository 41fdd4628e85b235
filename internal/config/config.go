package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	BasePath        string     `yaml:"base_path"`
	InputSubfolder  string     `yaml:"input_subfolder"`
	OutputSubfolder string     `yaml:"output_subfolder"`
	LogsSubfolder   string     `yaml:"logs_subfolder"`
	LogFilename     string     `yaml:"log_filename"`
	InputFiles      []string   `yaml:"input_files"`
	Sort            SortConfig `yaml:"sort"`
}

// SortConfig holds the sort settings applied to every input file.
type SortConfig struct {
	Delimiter string      `yaml:"delimiter"`
	Fields    []FieldSpec `yaml:"fields"`
	Order     string      `yaml:"order"`
}

// FieldSpec names a column to sort by, its declared type, and direction.
type FieldSpec struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`  // "auto", "text", "number", "date"
	Order string `yaml:"order"` // "asc" or "desc"
}

// InputDir returns the directory holding input CSV files.
func (c *Config) InputDir() string { return filepath.Join(c.BasePath, c.InputSubfolder) }

// OutputDir returns the directory sorted files are written to.
func (c *Config) OutputDir() string { return filepath.Join(c.BasePath, c.OutputSubfolder) }

// LogsDir returns the directory holding log files.
func (c *Config) LogsDir() string { return filepath.Join(c.BasePath, c.LogsSubfolder) }

// LogFile returns the full path of the persistent log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.LogsDir(), c.LogFilename+".log")
}

// DelimiterRune returns the configured delimiter as a rune.
func (s SortConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(s.Delimiter)
	return r
}

// EnsureDirs creates the input, output and logs directories if absent.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.InputDir(), c.OutputDir(), c.LogsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.InputSubfolder == "" {
		cfg.InputSubfolder = "INPUT"
	}
	if cfg.OutputSubfolder == "" {
		cfg.OutputSubfolder = "OUTPUT"
	}
	if cfg.LogsSubfolder == "" {
		cfg.LogsSubfolder = "LOGS"
	}
	if cfg.LogFilename == "" {
		cfg.LogFilename = "csv_sorter"
	}
	if cfg.Sort.Delimiter == "" {
		cfg.Sort.Delimiter = ";"
	}
	if cfg.Sort.Order == "" {
		cfg.Sort.Order = "asc"
	}
	for i := range cfg.Sort.Fields {
		if cfg.Sort.Fields[i].Type == "" {
			cfg.Sort.Fields[i].Type = "auto"
		}
		if cfg.Sort.Fields[i].Order == "" {
			cfg.Sort.Fields[i].Order = cfg.Sort.Order
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if base := os.Getenv("CSVSORT_BASE_PATH"); base != "" {
		cfg.BasePath = base
	}
	if delim := os.Getenv("CSVSORT_DELIMITER"); delim != "" {
		cfg.Sort.Delimiter = delim
	}
	if order := os.Getenv("CSVSORT_ORDER"); order != "" {
		cfg.Sort.Order = order
	}
	if name := os.Getenv("CSVSORT_LOG_FILENAME"); name != "" {
		cfg.LogFilename = name
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path is required")
	}
	if len(c.InputFiles) == 0 {
		return fmt.Errorf("input_files must list at least one file")
	}
	if utf8.RuneCountInString(c.Sort.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Sort.Delimiter)
	}
	if err := validOrder(c.Sort.Order); err != nil {
		return err
	}
	if len(c.Sort.Fields) == 0 {
		return fmt.Errorf("sort.fields must list at least one field")
	}
	for _, f := range c.Sort.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("sort field with empty name")
		}
		switch f.Type {
		case "auto", "text", "number", "date":
		default:
			return fmt.Errorf("field %q: unknown type %q", f.Name, f.Type)
		}
		if err := validOrder(f.Order); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return nil
}

func validOrder(order string) error {
	if order != "asc" && order != "desc" {
		return fmt.Errorf("order must be \"asc\" or \"desc\", got %q", order)
	}
	return nil
}
