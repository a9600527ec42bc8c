// This test file verifies the configuration loading logic using Viper.

package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults when no config file", func(t *testing.T) {
		// Ensure no config file exists for this test
		os.Remove("config.yml")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		// Check if default values are set
		if cfg.BatchSize != 50 {
			t.Errorf("Expected default batch size 50, got %d", cfg.BatchSize)
		}
		if cfg.CacheTTLSeconds != 300 {
			t.Errorf("Expected default cache TTL 300, got %d", cfg.CacheTTLSeconds)
		}
		if cfg.Cap != nil {
			t.Errorf("Expected no cap by default, got %d", *cfg.Cap)
		}
		if cfg.Output.Path != "./demo-share" {
			t.Errorf("Expected default output path './demo-share', got '%s'", cfg.Output.Path)
		}
		if cfg.Manifest.Enabled {
			t.Error("Expected manifest to be disabled by default")
		}
		if len(cfg.Generator.Departments) == 0 {
			t.Error("Expected a default department list")
		}
	})

	t.Run("Loads from config file", func(t *testing.T) {
		// Create a temporary config file for this test
		configContent := `
batch_size: 100
cap: 5000
output:
  path: "/tmp/test-share"
identity:
  domain: "corp.example.com"
unknown_setting: "should be ignored"
`
		// Create the config file in the current directory so Viper can find it.
		// Note: `t.TempDir()` is not used here because Viper looks in the CWD.
		configPath := "config.yml"
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write test config file: %v", err)
		}
		// Clean up the file after the test
		defer os.Remove(configPath)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned an error: %v", err)
		}

		// Check if values from the file were loaded
		if cfg.BatchSize != 100 {
			t.Errorf("Expected batch size 100, got %d", cfg.BatchSize)
		}
		if cfg.Cap == nil || *cfg.Cap != 5000 {
			t.Errorf("Expected cap 5000, got %v", cfg.Cap)
		}
		if cfg.Output.Path != "/tmp/test-share" {
			t.Errorf("Expected output path '/tmp/test-share', got '%s'", cfg.Output.Path)
		}
		if cfg.Identity.Domain != "corp.example.com" {
			t.Errorf("Expected domain 'corp.example.com', got '%s'", cfg.Identity.Domain)
		}
		// Untouched keys keep their defaults
		if cfg.CacheTTLSeconds != 300 {
			t.Errorf("Expected default cache TTL of 300, got %d", cfg.CacheTTLSeconds)
		}
	})
}
