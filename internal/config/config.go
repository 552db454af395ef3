package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Sources Sources `yaml:"sources"`
	Output  Output  `yaml:"output"`
	Server  Server  `yaml:"server"`
	Logging Logging `yaml:"logging"`
}

type Sources struct {
	SenateWatch      SenateWatch      `yaml:"senate_watch"`
	HouseDisclosures HouseDisclosures `yaml:"house_disclosures"`
	CongressAPI      CongressAPI      `yaml:"congress_api"`
}

// SenateWatch configures the structured Senate trade feed.
type SenateWatch struct {
	Enabled  bool   `yaml:"enabled"`
	IndexURL string `yaml:"index_url"`
}

// HouseDisclosures configures the free-text disclosure scraper. When
// FeedURL is set, detail links come from an RSS/Atom filing feed instead
// of the index page.
type HouseDisclosures struct {
	Enabled  bool   `yaml:"enabled"`
	IndexURL string `yaml:"index_url"`
	FeedURL  string `yaml:"feed_url"`
	MaxPages int    `yaml:"max_pages"`
}

// CongressAPI configures the authenticated member/committee API.
type CongressAPI struct {
	Enabled   bool   `yaml:"enabled"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for congresstrading.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "congresstrading")
}

// DataDir returns the XDG data directory for congresstrading.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "congresstrading")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/congresstrading/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'congresstrading init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Sources: Sources{
			SenateWatch: SenateWatch{
				Enabled:  true,
				IndexURL: "https://api.github.com/repos/timothycarambat/senate-stock-watcher-data/contents/data",
			},
			HouseDisclosures: HouseDisclosures{
				Enabled:  true,
				IndexURL: "https://clerk.house.gov/FinancialDisclosure",
				MaxPages: 10,
			},
			CongressAPI: CongressAPI{
				Enabled:   true,
				BaseURL:   "https://api.propublica.org/congress/v1",
				APIKeyEnv: "CONGRESS_API_KEY",
			},
		},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Sources.HouseDisclosures.MaxPages <= 0 {
		cfg.Sources.HouseDisclosures.MaxPages = 10
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
