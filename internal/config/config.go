package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config represents the prscore configuration.
type Config struct {
	Format       string      `json:"format" validate:"oneof=text json markdown md sarif"`
	MinScore     int         `json:"minScore" validate:"gte=0,lte=100"`
	Profile      string      `json:"profile,omitempty"`
	TodoScope    string      `json:"todoScope" validate:"oneof=patch added"`
	Concurrency  int         `json:"concurrency" validate:"gte=1,lte=64"`
	ContextLines int         `json:"contextLines" validate:"gte=0"`
	MaxDiffBytes int         `json:"maxDiffBytes" validate:"gte=0"`
	Include      []string    `json:"include"`
	Exclude      []string    `json:"exclude"`
	ShowPatch    bool        `json:"showPatch"`
	RedactPaths  []string    `json:"redactPaths,omitempty"`
	Lint         LintConfig  `json:"lint"`
	Cache        CacheConfig `json:"cache"`
}

// LintConfig controls the external lint tool.
type LintConfig struct {
	Enabled        bool     `json:"enabled"`
	Command        string   `json:"command" validate:"required_if=Enabled true"`
	Args           []string `json:"args,omitempty"`
	TimeoutSeconds int      `json:"timeoutSeconds" validate:"gte=1,lte=600"`
}

// CacheConfig controls caching of lint results.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds" validate:"gte=0"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format:       "text",
		TodoScope:    "patch",
		Concurrency:  4,
		ContextLines: 3,
		Include:      []string{"**/*"},
		Exclude:      []string{"vendor/**", "**/node_modules/**", "**/dist/**"},
		MaxDiffBytes: 500000,
		RedactPaths:  []string{"**/.env", "**/.env.*", "**/*secrets*", "**/*.pem", "**/*.key"},
		Lint: LintConfig{
			Enabled:        true,
			Command:        "pyflakes",
			TimeoutSeconds: 10,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
	}
}

var validate = validator.New()

// Validate reports every invalid field of cfg in one error.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// ConfigDir returns the platform-appropriate config directory for prscore.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "prscore"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "prscore"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "prscore"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "prscore"), nil
	default:
		return filepath.Join(home, ".config", "prscore"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile returns the defaults overlaid with the config file. A missing
// file is not an error. Keys absent from the file keep their default, so
// booleans set to false in the file do take effect.
func LoadFile() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only flags the user set should be present).
// The merged config is validated.
func Load(overrides map[string]string) (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKeys maps environment variables to config keys understood by SetField.
var envKeys = []struct {
	env string
	key string
}{
	{"PRSCORE_FORMAT", "format"},
	{"PRSCORE_MIN_SCORE", "minScore"},
	{"PRSCORE_PROFILE", "profile"},
	{"PRSCORE_TODO_SCOPE", "todoScope"},
	{"PRSCORE_CONCURRENCY", "concurrency"},
	{"PRSCORE_CONTEXT_LINES", "contextLines"},
	{"PRSCORE_LINT", "lint.enabled"},
	{"PRSCORE_LINT_COMMAND", "lint.command"},
	{"PRSCORE_LINT_TIMEOUT", "lint.timeoutSeconds"},
	{"PRSCORE_CACHE", "cache.enabled"},
	{"PRSCORE_CACHE_DIR", "cache.dir"},
}

func mergeEnv(cfg *Config) error {
	for _, e := range envKeys {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, e.key, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for _, key := range Keys() {
		v, ok := overrides[key]
		if !ok || v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return fmt.Errorf("flag %s: %w", key, err)
		}
	}
	return nil
}

// Keys lists the keys accepted by SetField.
func Keys() []string {
	return []string{
		"format", "minScore", "profile", "todoScope", "concurrency",
		"contextLines", "maxDiffBytes", "include", "exclude", "showPatch", "redactPaths",
		"lint.enabled", "lint.command", "lint.args", "lint.timeoutSeconds",
		"cache.enabled", "cache.dir", "cache.ttlSeconds",
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
// List values are comma separated.
func SetField(cfg *Config, key, value string) error {
	var err error
	switch key {
	case "format":
		cfg.Format = value
	case "minScore":
		cfg.MinScore, err = atoi(key, value)
	case "profile":
		cfg.Profile = value
	case "todoScope":
		cfg.TodoScope = value
	case "concurrency":
		cfg.Concurrency, err = atoi(key, value)
	case "contextLines":
		cfg.ContextLines, err = atoi(key, value)
	case "maxDiffBytes":
		cfg.MaxDiffBytes, err = atoi(key, value)
	case "include":
		cfg.Include = splitList(value)
	case "exclude":
		cfg.Exclude = splitList(value)
	case "showPatch":
		cfg.ShowPatch, err = parseBool(key, value)
	case "redactPaths":
		cfg.RedactPaths = splitList(value)
	case "lint.enabled":
		cfg.Lint.Enabled, err = parseBool(key, value)
	case "lint.command":
		cfg.Lint.Command = value
	case "lint.args":
		cfg.Lint.Args = splitList(value)
	case "lint.timeoutSeconds":
		cfg.Lint.TimeoutSeconds, err = atoi(key, value)
	case "cache.enabled":
		cfg.Cache.Enabled, err = parseBool(key, value)
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		cfg.Cache.TTLSeconds, err = atoi(key, value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return err
}

func atoi(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%s must be true or false: %w", key, err)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
