package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up in the working directory.
const FileName = "ea.toml"

// Config holds the settings shared by all commands.
type Config struct {
	Dir           string   `toml:"dir"`
	OutDir        string   `toml:"out_dir"`
	MaxDepth      int      `toml:"max_depth"`
	Workers       int      `toml:"workers"`
	SemanticRoles []string `toml:"semantic_roles"`
	CSVDelimiter  string   `toml:"csv_delimiter"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a TOML config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Dir == "" {
		c.Dir = "essays"
	}
	if c.OutDir == "" {
		c.OutDir = filepath.Join(c.Dir, "out")
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = 64
	}
	if c.Workers < 1 {
		c.Workers = 4
	}
	if c.CSVDelimiter == "" {
		c.CSVDelimiter = ";"
	}
}

func (c *Config) validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if utf8.RuneCountInString(c.CSVDelimiter) != 1 {
		return fmt.Errorf("csv_delimiter must be a single character, got %q", c.CSVDelimiter)
	}
	return nil
}

// Write stores the config as TOML at path.
func (c *Config) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encoding config: %w", err)
	}
	return f.Close()
}

// DBPath is the location of the conversion history database.
func (c *Config) DBPath() string {
	return filepath.Join(c.Dir, "ea.db")
}

// Delimiter returns the CSV field separator.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return r
}

// RoleSet returns the semantic role tags with '*' and '+' markers removed.
func (c *Config) RoleSet() map[string]bool {
	set := make(map[string]bool, len(c.SemanticRoles))
	for _, tag := range c.SemanticRoles {
		set[strings.TrimRight(tag, "*+")] = true
	}
	return set
}
