package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tripcal/tripcal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, config.Default()) {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.LookupEnabled {
		t.Error("lookups must default to off")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripcal.yml")
	doc := `
api_key: test-key
lookup_enabled: true
languages:
  Asia/Tokyo: ja
  default: en
requests_per_hour: 120
burst_size: 5
output_dir: /tmp/out
concurrency: 8
verbose: true
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "test-key" || !cfg.LookupEnabled {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Languages["Asia/Tokyo"] != "ja" || cfg.Languages["default"] != "en" {
		t.Errorf("Languages = %v", cfg.Languages)
	}
	if cfg.RequestsPerHour != 120 || cfg.BurstSize != 5 || cfg.Concurrency != 8 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.OutputDir != "/tmp/out" || !cfg.Verbose {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripcal.yml")
	if err := os.WriteFile(path, []byte("api_key: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestNormalize(t *testing.T) {
	cfg := config.Config{
		APIKey:          "key",
		LookupEnabled:   true,
		Concurrency:     -3,
		RequestsPerHour: -1,
	}
	cfg.Normalize()
	if cfg.Concurrency != 1 {
		t.Errorf("Concurrency = %d", cfg.Concurrency)
	}
	if cfg.RequestsPerHour != 0 {
		t.Errorf("RequestsPerHour = %d", cfg.RequestsPerHour)
	}
	if cfg.BurstSize != 1 {
		t.Errorf("BurstSize = %d", cfg.BurstSize)
	}
	if !cfg.LookupEnabled {
		t.Error("lookups should stay enabled with an api key")
	}

	cfg.APIKey = ""
	cfg.Normalize()
	if cfg.LookupEnabled {
		t.Error("lookups must be forced off without an api key")
	}
}
