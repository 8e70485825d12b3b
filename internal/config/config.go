package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the pano client.
//
// Fields:
//   - APIOrigin: scheme://host[:port] of the site backend; "/api" is appended
//     by the API client.
//   - DataDir: directory for the local state database and log file.
//   - IdleTimeout: how long the session may sit without input before it is
//     logged out.
type Config struct {
	APIOrigin   string
	DataDir     string
	IdleTimeout time.Duration
}

type fileConfig struct {
	APIOrigin   string `yaml:"api_origin"`
	IdleTimeout string `yaml:"idle_timeout"`
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIOrigin = "http://localhost:3001"
	c.IdleTimeout = 10 * time.Minute
	home, _ := os.UserHomeDir()
	c.DataDir = filepath.Join(home, ".pano")
}

// Load constructs a Config from defaults, then an optional config.yml in the
// data directory, then environment variables. Later sources win. A local
// .env file, if present, is folded into the environment first.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()

	if dir := strings.TrimSpace(os.Getenv("PANO_DATA_DIR")); dir != "" {
		cfg.DataDir = dir
	}

	cfg.applyFile(filepath.Join(cfg.DataDir, "config.yml"))
	cfg.applyEnv()
	return cfg
}

// applyFile overlays values from a YAML file. A missing or malformed file is
// ignored; the config file is optional.
func (c *Config) applyFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return
	}

	if fc.APIOrigin != "" {
		c.APIOrigin = fc.APIOrigin
	}
	if fc.IdleTimeout != "" {
		if d, err := time.ParseDuration(fc.IdleTimeout); err == nil && d > 0 {
			c.IdleTimeout = d
		}
	}
}

func (c *Config) applyEnv() {
	if origin := strings.TrimSpace(os.Getenv("PANO_API_ORIGIN")); origin != "" {
		c.APIOrigin = origin
	}
	if raw := strings.TrimSpace(os.Getenv("PANO_IDLE_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			c.IdleTimeout = d
		}
	}
}
