package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	errNoBackendURL = errors.New("backend base_url is required")
	errBadPort      = errors.New("server port out of range")
)

func readFile(path string, cfg *Config) error {
	filename, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(yamlFile, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}

	return nil
}

func (c *Config) validate() error {
	if c.Backend.BaseURL == "" {
		return errNoBackendURL
	}
	if _, err := url.ParseRequestURI(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("backend base_url: %w", err)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errBadPort
	}
	if c.Backend.Burst < 1 {
		c.Backend.Burst = 1
	}
	return nil
}
