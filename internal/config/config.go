// Package config provides configuration management for mlang.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/mlang-cli/pkg/mlang"
)

// DefaultHighlightCSS styles the rendered markers in an editor or preview page.
const DefaultHighlightCSS = `span.multilang-begin, span.multilang-end {
  padding: 1px 4px;
  border-radius: 3px;
  font-family: monospace;
  font-size: 0.85em;
  color: #333;
  background-color: #ffd966;
}
span.multilang-begin.fallback, span.multilang-end.fallback {
  background-color: #f4cccc;
}`

// Language is one entry of the language menu.
type Language struct {
	ISO   string `yaml:"iso" json:"iso"`
	Label string `yaml:"label,omitempty" json:"label"`
}

// Config holds the mlang configuration.
type Config struct {
	Languages         []Language `yaml:"languages,omitempty"`
	RequireMultilang2 bool       `yaml:"require_multilang2"`
	FallbackSpan      bool       `yaml:"fallback_span"`
	ShowFallbackOther bool       `yaml:"show_fallback_other"`
	Highlight         bool       `yaml:"highlight"`
	HighlightCSS      string     `yaml:"highlight_css,omitempty"`
	SplitBlocks       bool       `yaml:"split_blocks"`
	LegacyDir         bool       `yaml:"legacy_dir"`
	RTLLanguages      []string   `yaml:"rtl_languages,omitempty"`
	OutputFormat      string     `yaml:"output_format,omitempty"`
}

// Default returns a configuration with the default settings.
func Default() *Config {
	return &Config{
		RequireMultilang2: true,
		ShowFallbackOther: true,
	}
}

// Validate checks that all language codes are well formed.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Languages))
	for _, lang := range c.Languages {
		iso := strings.TrimSpace(lang.ISO)
		if iso == "" {
			return errors.New("language iso is required")
		}
		if err := ValidateISO(iso); err != nil {
			return err
		}
		if seen[strings.ToLower(iso)] {
			return fmt.Errorf("duplicate language: %s", iso)
		}
		seen[strings.ToLower(iso)] = true
	}

	switch c.OutputFormat {
	case "", "table", "json", "plain":
	default:
		return fmt.Errorf("invalid output_format: %s", c.OutputFormat)
	}

	return nil
}

// ValidateISO checks that iso is a BCP 47 language tag or a reserved code.
func ValidateISO(iso string) error {
	if iso == mlang.LangOther || iso == mlang.LangRemove {
		return nil
	}
	code := strings.ReplaceAll(iso, "_", "-")
	if _, err := language.Parse(code); err == nil {
		return nil
	}
	// Local variants like de_du only need a known base language
	base, _, _ := strings.Cut(code, "-")
	if _, err := language.ParseBase(base); err != nil {
		return fmt.Errorf("invalid language %q: %w", iso, err)
	}
	return nil
}

// LanguageList returns the language menu sorted by label, with the "other"
// entry appended when enabled. A menu with fewer than two entries is
// disabled and returned as nil.
func (c *Config) LanguageList() []Language {
	langs := make([]Language, 0, len(c.Languages)+1)
	for _, lang := range c.Languages {
		if lang.ISO == mlang.LangOther {
			continue
		}
		if lang.Label == "" {
			lang.Label = displayName(lang.ISO)
		}
		langs = append(langs, lang)
	}
	sort.SliceStable(langs, func(i, j int) bool {
		return langs[i].Label < langs[j].Label
	})

	if c.ShowFallbackOther {
		langs = append(langs, Language{ISO: mlang.LangOther, Label: "Other"})
	}
	if len(langs) < 2 {
		return nil
	}
	return langs
}

// displayName returns the name of the language in itself, e.g. "Deutsch",
// for entries without a configured label.
func displayName(iso string) string {
	base, _, _ := strings.Cut(strings.ReplaceAll(iso, "_", "-"), "-")
	tag, err := language.Parse(base)
	if err != nil {
		return iso
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return iso
}

// CSS returns the highlight CSS, or the empty string when highlighting is off.
func (c *Config) CSS() string {
	if !c.Highlight {
		return ""
	}
	if css := strings.TrimSpace(c.HighlightCSS); css != "" {
		return css
	}
	return DefaultHighlightCSS
}

// RenderOptions maps the configuration onto the render pass options.
func (c *Config) RenderOptions() mlang.RenderOptions {
	return mlang.RenderOptions{
		FallbackSpan:  c.FallbackSpan,
		SplitAtBlocks: c.SplitBlocks,
	}
}

// StripOptions maps the configuration onto the strip pass options.
func (c *Config) StripOptions() mlang.StripOptions {
	rtl := c.RTLLanguages
	if len(rtl) == 0 {
		rtl = mlang.DefaultRTLLanguages
	}
	return mlang.StripOptions{
		LegacyDir:    c.LegacyDir,
		RTLLanguages: rtl,
	}
}

// ApplyOptions maps the configuration onto marker insertion options. Without
// the multilang2 filter, inserted markers are fallback markers.
func (c *Config) ApplyOptions() mlang.ApplyOptions {
	return mlang.ApplyOptions{Fallback: !c.RequireMultilang2}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if langs := os.Getenv("MLANG_LANGUAGES"); langs != "" {
		c.Languages = ParseLanguages(langs)
	}
	if v, ok := getEnvBool("MLANG_FALLBACK_SPAN"); ok {
		c.FallbackSpan = v
	}
	if v, ok := getEnvBool("MLANG_SPLIT_BLOCKS"); ok {
		c.SplitBlocks = v
	}
	if v, ok := getEnvBool("MLANG_HIGHLIGHT"); ok {
		c.Highlight = v
	}
}

// ParseLanguages parses a comma separated list of iso[:label] entries.
func ParseLanguages(s string) []Language {
	var langs []Language
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		iso, label, _ := strings.Cut(entry, ":")
		langs = append(langs, Language{
			ISO:   strings.TrimSpace(iso),
			Label: strings.TrimSpace(label),
		})
	}
	return langs
}

// FormatLanguages renders languages as a list ParseLanguages reads back.
func FormatLanguages(langs []Language) string {
	parts := make([]string, 0, len(langs))
	for _, lang := range langs {
		if lang.Label != "" {
			parts = append(parts, lang.ISO+":"+lang.Label)
		} else {
			parts = append(parts, lang.ISO)
		}
	}
	return strings.Join(parts, ", ")
}

// getEnvBool returns the boolean value of an env var and whether it was set
// to a valid value.
func getEnvBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mlang", "config.yml")
	}

	// Fall back to ~/.config/mlang/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mlang", "config.yml")
	}

	return filepath.Join(home, ".config", "mlang", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with restricted permissions (user read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path. Settings missing
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		// If file doesn't exist, start with the defaults
		cfg = Default()
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
