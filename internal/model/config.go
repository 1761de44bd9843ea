package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// API modes selecting one of the two configured origins.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Identity storage backends.
const (
	IdentityBackendLocal   = "local"
	IdentityBackendKeyring = "keyring"
	IdentityBackendMemory  = "memory"
)

// EnvPrefix is the prefix for environment overrides (STUDENTPRO_API_MODE, ...).
const EnvPrefix = "STUDENTPRO"

const (
	defaultDevURL  = "http://127.0.0.1:5000"
	defaultProdURL = "https://student-pro-1wgo.onrender.com"
)

// APIConfig holds the remote API origin settings.
type APIConfig struct {
	// Mode is "development" or "production".
	Mode string `mapstructure:"mode" yaml:"mode"`

	// DevURL is the local-development origin.
	DevURL string `mapstructure:"dev_url" yaml:"dev_url"`

	// ProdURL is the deployed-production origin.
	ProdURL string `mapstructure:"prod_url" yaml:"prod_url"`

	// BaseURL, when set, overrides both origins.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// ResolveBaseURL returns the origin for the configured mode. It is called
// once at startup; nothing downstream looks at Mode again.
func (c APIConfig) ResolveBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if c.Mode == ModeDevelopment {
		return strings.TrimRight(c.DevURL, "/")
	}
	return strings.TrimRight(c.ProdURL, "/")
}

// IdentityConfig selects where the user identifier and token are kept.
type IdentityConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite file used by the local backend.
	Path string `mapstructure:"path" yaml:"path"`

	// KeyringDir is the directory used by the keyring file backend.
	KeyringDir string `mapstructure:"keyring_dir" yaml:"keyring_dir"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	// File receives log output while the terminal UI owns the screen.
	File  string `mapstructure:"file" yaml:"file"`
	Debug bool   `mapstructure:"debug" yaml:"debug"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	Identity IdentityConfig `mapstructure:"identity" yaml:"identity"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// ConfigDir returns ~/.config/studentpro, or the working directory when the
// home directory cannot be determined.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "studentpro")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/studentpro/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		API: APIConfig{
			Mode:    ModeProduction,
			DevURL:  defaultDevURL,
			ProdURL: defaultProdURL,
		},
		Identity: IdentityConfig{
			Backend:    IdentityBackendLocal,
			Path:       filepath.Join(dir, "local.db"),
			KeyringDir: filepath.Join(dir, "credentials"),
		},
		Log: LogConfig{
			File: filepath.Join(dir, "studentpro.log"),
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with STUDENTPRO_ override file values. If
// the file does not exist, defaults plus environment overrides are returned.
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults double as the key registry AutomaticEnv needs for Unmarshal.
	v.SetDefault("api.mode", def.API.Mode)
	v.SetDefault("api.dev_url", def.API.DevURL)
	v.SetDefault("api.prod_url", def.API.ProdURL)
	v.SetDefault("api.base_url", "")
	v.SetDefault("identity.backend", def.Identity.Backend)
	v.SetDefault("identity.path", def.Identity.Path)
	v.SetDefault("identity.keyring_dir", def.Identity.KeyringDir)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.debug", false)

	if err := v.ReadInConfig(); err != nil {
		_, isPathErr := err.(*os.PathError)
		_, isNotFound := err.(viper.ConfigFileNotFoundError)
		if !isPathErr && !isNotFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks enumerated fields.
func (c *AppConfig) Validate() error {
	switch c.API.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return fmt.Errorf("api.mode must be %q or %q, got %q",
			ModeDevelopment, ModeProduction, c.API.Mode)
	}

	switch c.Identity.Backend {
	case IdentityBackendLocal, IdentityBackendKeyring, IdentityBackendMemory:
	default:
		return fmt.Errorf("unknown identity.backend %q", c.Identity.Backend)
	}

	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("identity", cfg.Identity)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
