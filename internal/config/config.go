// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml. Every field has a
// safe default; no field is required.
type Config struct {
	BatchSize       int    `mapstructure:"batch_size"`
	MaxWorkers      int    `mapstructure:"max_workers"` // 0 = derive from CPU count and work size
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
	Cap             *int64 `mapstructure:"cap"` // nil = no cap
	Port            int    `mapstructure:"port"`
	ReportInterval  int    `mapstructure:"report_interval_seconds"`
	Output          struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"output"`
	Manifest struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"manifest"`
	Generator struct {
		Seed           int64    `mapstructure:"seed"` // 0 = time-based
		Departments    []string `mapstructure:"departments"`
		FilesPerFolder int      `mapstructure:"files_per_folder"`
		FolderDepth    int      `mapstructure:"folder_depth"`
		ClutterPercent int      `mapstructure:"clutter_percent"`
	} `mapstructure:"generator"`
	Identity struct {
		Domain        string `mapstructure:"domain"`
		Fallback      string `mapstructure:"fallback"`       // policy: "department" or "all"
		FallbackOwner string `mapstructure:"fallback_owner"` // used when the directory is unreachable
	} `mapstructure:"identity"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")

	// --- Environment Variable Overrides ---
	// e.g. DEMODATA_OUTPUT_PATH will override the `output.path` key.
	viper.SetEnvPrefix("DEMODATA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("batch_size", 50)
	viper.SetDefault("max_workers", 0)
	viper.SetDefault("cache_ttl_seconds", 300)
	viper.SetDefault("port", 8080)
	viper.SetDefault("report_interval_seconds", 2)
	viper.SetDefault("output.path", "./demo-share")
	viper.SetDefault("manifest.enabled", false)
	viper.SetDefault("manifest.path", "./demodata.db")
	viper.SetDefault("generator.seed", 0)
	viper.SetDefault("generator.departments", []string{
		"Finance", "Engineering", "HR", "Legal", "Marketing", "Sales", "IT",
	})
	viper.SetDefault("generator.files_per_folder", 25)
	viper.SetDefault("generator.folder_depth", 3)
	viper.SetDefault("generator.clutter_percent", 10)
	viper.SetDefault("identity.domain", "demo.local")
	viper.SetDefault("identity.fallback", "department")
	viper.SetDefault("identity.fallback_owner", "AllEmployees")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
