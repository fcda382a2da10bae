package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "GITPROBE_CONFIG"

type Config struct {
	FallbackBranch string `toml:"fallback_branch"`
	Remote         string `toml:"remote"`
	GitBinary      string `toml:"git_binary"`
	GHBinary       string `toml:"gh_binary"`
	Host           string `toml:"host"`
	NoreplyDomain  string `toml:"noreply_domain"` // empty means users.noreply.<host>
	APIBaseURL     string `toml:"api_base_url"`
	UserAgent      string `toml:"user_agent"`
	WorkDir        string `toml:"work_dir"`
	LogLevel       string `toml:"log_level"`
	LogJSON        bool   `toml:"log_json"`
}

func DefaultConfig() *Config {
	return &Config{
		FallbackBranch: "master",
		Remote:         "origin",
		GitBinary:      "git",
		GHBinary:       "gh",
		Host:           "github.com",
		APIBaseURL:     "https://api.github.com/",
		UserAgent:      "github-user-fetcher/1.0",
		LogLevel:       "info",
	}
}

func GitprobeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".gitprobe"), nil
}

// ConfigPath honours GITPROBE_CONFIG, then ~/.gitprobe/config.toml.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return expandPath(p), nil
	}
	dir, err := GitprobeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at the default location, creating it with defaults
// when it does not exist yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads path, creating it with defaults when missing. Keys absent
// from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		if err := SaveFile(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cfg.WorkDir = expandPath(cfg.WorkDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func SaveFile(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// Validate rejects settings the probes cannot run without.
func (c *Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"git_binary", c.GitBinary},
		{"host", c.Host},
		{"api_base_url", c.APIBaseURL},
		{"fallback_branch", c.FallbackBranch},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s must not be empty", r.key)
		}
	}
	return nil
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
