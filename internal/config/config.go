package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file at the repo root.
const FileName = "cofrinho.yaml"

// Config represents the top-level cofrinho.yaml configuration.
type Config struct {
	Owner      OwnerConfig      `yaml:"owner"`
	Locale     LocaleConfig     `yaml:"locale"`
	Import     ImportConfig     `yaml:"import"`
	Categories CategoriesConfig `yaml:"categories"`
	Insight    InsightConfig    `yaml:"insight"`
	Git        GitConfig        `yaml:"git"`
}

// OwnerConfig identifies whose money this is.
type OwnerConfig struct {
	Name string `yaml:"name"`
}

// LocaleConfig fixes currency rendering.
type LocaleConfig struct {
	Currency string `yaml:"currency"`
}

// ImportConfig selects the statement parser.
type ImportConfig struct {
	Format string `yaml:"format"`
}

// CategoriesConfig names the fallback categories used when no keyword matches.
type CategoriesConfig struct {
	OtherID  string `yaml:"other_id"`
	IncomeID string `yaml:"income_id"`
}

// InsightConfig controls the financial tip generator.
type InsightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a cofrinho.yaml file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(ownerName string) *Config {
	return &Config{
		Owner:  OwnerConfig{Name: ownerName},
		Locale: LocaleConfig{Currency: "BRL"},
		Import: ImportConfig{Format: "nubank"},
		Categories: CategoriesConfig{
			OtherID:  "7",
			IncomeID: "8",
		},
		Insight: InsightConfig{
			Enabled: true,
			Model:   "gemini-2.5-flash",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Cofrinho",
			AuthorEmail: "cofrinho@localhost",
		},
	}
}

// Validate rejects settings the rest of the program cannot honor.
func (c *Config) Validate() error {
	if c.Locale.Currency != "BRL" {
		return fmt.Errorf("unsupported currency %q: only BRL is supported", c.Locale.Currency)
	}
	if c.Import.Format == "" {
		return errors.New("import.format must not be empty")
	}
	if c.Categories.OtherID == "" || c.Categories.IncomeID == "" {
		return errors.New("categories.other_id and categories.income_id must be set")
	}
	return nil
}

// LoadEnv loads <repoRoot>/.env into the process environment. Variables
// already set win. A missing file is not an error.
func LoadEnv(repoRoot string) error {
	path := filepath.Join(repoRoot, ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// APIKey returns the text-generation API key, preferring GEMINI_API_KEY.
func APIKey() string {
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		return k
	}
	return os.Getenv("GOOGLE_API_KEY")
}
