// Package config loads SDK environment configuration from an optional
// YAML file with environment-variable fallback. The library itself takes
// everything it needs as arguments; this package exists for the example
// programs and for applications that want file-driven setup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dclex/dclex-go/dclex/types"
)

// Config SDK environment configuration
type Config struct {
	APIBaseURL string      `yaml:"api_base_url"`
	RPCURL     string      `yaml:"rpc_url"`
	ChainID    types.Chain `yaml:"chain_id"`

	// Exactly one of PrivateKey or Mnemonic is expected.
	PrivateKey string `yaml:"private_key"`
	Mnemonic   string `yaml:"mnemonic"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Defaults for the staging environment.
const (
	DefaultAPIBaseURL = "https://api.stg.dclex.com"
	DefaultChainID    = types.ChainSepolia
)

// Load reads the file at path (skipped when empty) and then applies
// environment-variable overrides: DCLEX_API_BASE_URL, DCLEX_RPC_URL,
// DCLEX_CHAIN_ID, DCLEX_PRIVATE_KEY, DCLEX_MNEMONIC, DCLEX_LOG_LEVEL,
// DCLEX_LOG_FILE.
func Load(path string) (*Config, error) {
	cfg := &Config{
		APIBaseURL: DefaultAPIBaseURL,
		ChainID:    DefaultChainID,
		LogLevel:   "info",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.APIBaseURL, "DCLEX_API_BASE_URL")
	setString(&cfg.RPCURL, "DCLEX_RPC_URL")
	setString(&cfg.PrivateKey, "DCLEX_PRIVATE_KEY")
	setString(&cfg.Mnemonic, "DCLEX_MNEMONIC")
	setString(&cfg.LogLevel, "DCLEX_LOG_LEVEL")
	setString(&cfg.LogFile, "DCLEX_LOG_FILE")

	if v := strings.TrimSpace(os.Getenv("DCLEX_CHAIN_ID")); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.ChainID = types.Chain(id)
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if c.RPCURL == "" {
		return fmt.Errorf("rpc_url is required")
	}
	if c.PrivateKey == "" && c.Mnemonic == "" {
		return fmt.Errorf("one of private_key or mnemonic is required")
	}
	if c.PrivateKey != "" && c.Mnemonic != "" {
		return fmt.Errorf("private_key and mnemonic are mutually exclusive")
	}
	return nil
}
