package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	Server ServerConfig `yaml:"server"`

	// LogFile receives logs in interactive mode, where the terminal is taken
	LogFile string `yaml:"log_file,omitempty"`
}

type ServerConfig struct {
	Addr          string `yaml:"addr"`
	CSRFKey       string `yaml:"csrf_key,omitempty"`
	SecureCookies bool   `yaml:"secure_cookies"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider: "gemini",
		Model:    "gemini-3-flash-preview",
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "promptforge"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the default config file. It returns nil, nil when there is none.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file, returning nil, nil when it does not exist.
// Fields the file leaves out keep their defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve builds the effective configuration: the file at path (or the
// default location when path is empty), then .env, then the environment.
// Only the default file may be absent.
func Resolve(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = LoadFrom(path)
		if err == nil && cfg == nil {
			err = fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
		}
	} else {
		cfg, err = Load()
	}
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. API keys are looked
// up as PROMPTFORGE_API_KEY, then the provider's own variable, then API_KEY.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return v
	}

	if v := get("PROMPTFORGE_PROVIDER"); v != "" {
		if v != c.Provider {
			// Switching provider drops the file's model unless one is given
			c.Model = ""
		}
		c.Provider = v
	}
	if v := get("PROMPTFORGE_MODEL"); v != "" {
		c.Model = v
	}
	if v := get("PROMPTFORGE_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := get("PROMPTFORGE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := get("PROMPTFORGE_CSRF_KEY"); v != "" {
		c.Server.CSRFKey = v
	}

	keys := []string{"PROMPTFORGE_API_KEY"}
	if p := GetProvider(c.Provider); p != nil && p.EnvVar != "" {
		keys = append(keys, p.EnvVar)
	}
	keys = append(keys, "API_KEY")
	for _, k := range keys {
		if v := get(k); v != "" {
			c.APIKey = v
			break
		}
	}

	if c.Model == "" {
		if p := GetProvider(c.Provider); p != nil {
			c.Model = p.DefaultModel
		}
	}
}

// Validate reports every configuration problem at once. A missing API key
// is not one of them: the generation client reports it when it is needed.
func (c *Config) Validate() error {
	var errs []error

	provider := GetProvider(c.Provider)
	if provider == nil {
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}
	if c.Provider == "custom" && c.BaseURL == "" {
		errs = append(errs, errors.New("custom provider requires base_url"))
	}
	if c.Server.CSRFKey != "" && len(c.Server.CSRFKey) < 32 {
		errs = append(errs, errors.New("server.csrf_key must be at least 32 characters"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// HasCredential reports whether the configured provider can be called
func (c *Config) HasCredential() bool {
	p := GetProvider(c.Provider)
	if p == nil || !p.NeedsAPIKey {
		return true
	}
	return c.APIKey != ""
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
