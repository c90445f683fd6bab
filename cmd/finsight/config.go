package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the finsight CLI.
type Config struct {
	Model                  ModelConfig `yaml:"model"`
	Feed                   FeedConfig  `yaml:"feed"`
	Store                  StoreConfig `yaml:"store"`
	MaxConcurrentToolCalls int         `yaml:"maxConcurrentToolCalls"`
	LogLevel               string      `yaml:"logLevel"`
}

// ModelConfig selects and parameterizes the reasoning backend.
type ModelConfig struct {
	Provider  string `yaml:"provider"` // "anthropic" or "openai"
	Name      string `yaml:"name"`     // provider model id; empty uses the adapter default
	APIKey    string `yaml:"apiKey"`   // empty falls back to the provider's env variable
	MaxTokens int64  `yaml:"maxTokens"`
}

// FeedConfig points at the financial data provider.
type FeedConfig struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
}

// StoreConfig configures result persistence.
type StoreConfig struct {
	Path string `yaml:"path"` // sqlite path, empty keeps results in memory
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		Model:    ModelConfig{Provider: "anthropic", MaxTokens: 4096},
		Feed:     FeedConfig{BaseURL: "https://financialmodelingprep.com/api/v3"},
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
