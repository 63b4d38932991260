package config

import (
	"os"
	"time"
)

const (
	defaultPath = "./config/config.yaml"

	envPath       = "NEWSGATE_CONFIG"
	envBackendURL = "NEWSGATE_BACKEND_URL"
)

type Config struct {
	Server  Server  `yaml:"server"`
	Backend Backend `yaml:"backend"`
	Session Session `yaml:"session"`
	Log     Log     `yaml:"log"`
	CLI     CLI     `yaml:"cli"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Backend struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// RateLimit caps outbound calls per second. Zero disables the limit.
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

type Session struct {
	Lifetime          time.Duration `yaml:"lifetime"`
	InactivityTimeout time.Duration `yaml:"inactivity_timeout"`
	CookieName        string        `yaml:"cookie_name"`
	// StorePath persists web sessions to a JSON file. Empty keeps them in memory.
	StorePath           string `yaml:"store_path"`
	VerifyProfile       bool   `yaml:"verify_profile"`
	ClearOnRoleMismatch bool   `yaml:"clear_on_role_mismatch"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type CLI struct {
	// SessionPath is the device session file. Empty resolves under the XDG
	// config directory.
	SessionPath string `yaml:"session_path"`
}

func Default() *Config {
	return &Config{
		Server: Server{
			Host: "localhost",
			Port: 8123,
		},
		Backend: Backend{
			BaseURL: "http://localhost:3000/api",
			Timeout: 15 * time.Second,
			Burst:   1,
		},
		Session: Session{
			Lifetime:            24 * time.Hour,
			CookieName:          "newsgate_session",
			VerifyProfile:       true,
			ClearOnRoleMismatch: true,
		},
		Log: Log{
			Level:       "info",
			Development: true,
		},
	}
}

// New loads the file named by NEWSGATE_CONFIG, falling back to
// ./config/config.yaml. A missing default file is not an error.
func New() (*Config, error) {
	return Load(os.Getenv(envPath))
}

// Load reads path over the defaults. An empty path tries the default
// location and keeps the defaults when nothing is there.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = defaultPath
	}

	if err := readFile(path, cfg); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, err
		}
	}

	if u := os.Getenv(envBackendURL); u != "" {
		cfg.Backend.BaseURL = u
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
