package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds defaults that command-line flags override.
type Config struct {
	Format    string `toml:"format"`
	Workers   int    `toml:"workers"`
	Strict    bool   `toml:"strict"`
	Interning bool   `toml:"interning"`
}

func defaultConfig() Config {
	return Config{
		Format:    "text",
		Interning: true,
	}
}

// loadConfig reads path over the defaults. An empty path yields the
// defaults.
func loadConfig(path string) (Config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := checkFormat(c.Format); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	if c.Workers < 0 {
		return c, fmt.Errorf("config %s: workers must not be negative", path)
	}
	return c, nil
}

func checkFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
}
