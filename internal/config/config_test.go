package config

import (
	"os"
	"testing"

	"github.com/ballotz/ballotz/internal/hash"
)

func TestLoad(t *testing.T) {
	configContent := `
election:
  name: city-council-2026

node:
  data_dir: /tmp/ballotz

hash:
  algorithm: blake2b_256

ledger:
  allow_empty_blocks: true

alerts:
  enabled: false
`

	tmpfile, err := os.CreateTemp("", "ballotz-test-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(configContent)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Election.Name != "city-council-2026" {
		t.Errorf("expected election.name=city-council-2026, got %s", cfg.Election.Name)
	}
	if cfg.Node.DataDir != "/tmp/ballotz" {
		t.Errorf("expected data_dir=/tmp/ballotz, got %s", cfg.Node.DataDir)
	}
	if cfg.Hash.Algorithm != hash.AlgorithmBlake2b256 {
		t.Errorf("expected blake2b_256, got %s", cfg.Hash.Algorithm)
	}
	if !cfg.Ledger.AllowEmptyBlocks {
		t.Error("expected allow_empty_blocks=true")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("Load of missing file should fall back to defaults: %v", err)
	}

	if cfg.Election.Name != "election" {
		t.Errorf("expected default election name, got %s", cfg.Election.Name)
	}
	if cfg.Node.DataDir != "data" {
		t.Errorf("expected default data dir, got %s", cfg.Node.DataDir)
	}
	if cfg.Hash.Algorithm != hash.AlgorithmSHA256 {
		t.Errorf("expected default algorithm sha256, got %s", cfg.Hash.Algorithm)
	}
	if cfg.Ledger.AllowEmptyBlocks {
		t.Error("empty blocks should be disallowed by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Election: ElectionConfig{Name: "test"},
				Node:     NodeConfig{DataDir: "/data"},
				Hash:     HashConfig{Algorithm: hash.AlgorithmSHA256},
			},
			wantErr: false,
		},
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "invalid hash algorithm",
			config: Config{
				Hash: HashConfig{Algorithm: "md5"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
