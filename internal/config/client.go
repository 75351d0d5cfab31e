package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Client holds the settings of the inventory command line client.
type Client struct {
	APIURL      string        `yaml:"api_url"`
	SessionPath string        `yaml:"session_path"`
	Timeout     time.Duration `yaml:"timeout"`
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file"`
}

func defaultClient() *Client {
	sessionPath := "session.db"
	if home, err := os.UserHomeDir(); err == nil {
		sessionPath = filepath.Join(home, ".inventory", "session.db")
	}
	return &Client{
		APIURL:      "http://localhost:8080/api",
		SessionPath: sessionPath,
		LogLevel:    "warn",
	}
}

// LoadClient layers defaults, the optional YAML file at path and the environment,
// in that order.
func LoadClient(path string) (*Client, error) {
	cfg := defaultClient()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read client config")
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse client config %s", path)
		}
	}

	cfg.APIURL = getEnvOrDefault("INVENTORY_API_URL", cfg.APIURL)
	cfg.SessionPath = getEnvOrDefault("INVENTORY_SESSION_PATH", cfg.SessionPath)
	cfg.Timeout = getDurationOrDefault("INVENTORY_TIMEOUT", cfg.Timeout)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnvOrDefault("LOG_FILE", cfg.LogFile)

	return cfg, nil
}
