package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ballotz/ballotz/internal/hash"
)

type Config struct {
	Election ElectionConfig `mapstructure:"election"`
	Node     NodeConfig     `mapstructure:"node"`
	Hash     HashConfig     `mapstructure:"hash"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
}

type ElectionConfig struct {
	Name string `mapstructure:"name"`
}

type NodeConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

type HashConfig struct {
	Algorithm string `mapstructure:"algorithm"`
}

type LedgerConfig struct {
	AllowEmptyBlocks bool `mapstructure:"allow_empty_blocks"`
}

type AlertsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SlackWebhook string `mapstructure:"slack_webhook"`
}

// Load reads the YAML config at configPath, expanding ${VAR}
// references from the environment. A missing file is not an error:
// the defaults describe a usable single-machine setup.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if expanded := os.ExpandEnv(val); expanded != val {
			v.Set(key, expanded)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Election.Name == "" {
		c.Election.Name = "election"
	}
	if c.Node.DataDir == "" {
		c.Node.DataDir = "data"
	}
	if c.Hash.Algorithm == "" {
		c.Hash.Algorithm = hash.AlgorithmSHA256
	}

	validAlgorithms := map[string]bool{
		hash.AlgorithmSHA256:     true,
		hash.AlgorithmBlake2b256: true,
	}
	if !validAlgorithms[c.Hash.Algorithm] {
		return fmt.Errorf("invalid hash algorithm: %s (valid options: %s, %s)",
			c.Hash.Algorithm, hash.AlgorithmSHA256, hash.AlgorithmBlake2b256)
	}

	return nil
}
