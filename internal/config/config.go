package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	LogoHarnessConfigPathEnvVar = "LOGO_HARNESS_CONFIG_PATH" // Environment variable for config path
)

// Config holds all configuration for the application
type Config struct {
	// Debug enables verbose logging and additional debug information
	Debug bool `mapstructure:"debug"`

	// Fixtures configuration
	Fixtures struct {
		// Dir is the directory searched for fixture files by prefix
		Dir string `mapstructure:"dir"`
	} `mapstructure:"fixtures"`

	// Output configuration
	Output struct {
		// Dir is where the renderer is asked to write its images
		Dir string `mapstructure:"dir"`
		// RasterName and VectorName are the output filenames within Dir
		RasterName string `mapstructure:"raster_name"`
		VectorName string `mapstructure:"vector_name"`
	} `mapstructure:"output"`

	// Canvas configuration
	Canvas struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"canvas"`

	// Renderer configuration
	Renderer struct {
		// Command is the executable used to launch the renderer
		Command string `mapstructure:"command"`
		// Args are prepended before the positional renderer arguments
		Args []string `mapstructure:"args"`
		// Timeout bounds a single invocation; zero disables the bound
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"renderer"`

	// Server configuration
	Server struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`
}

// Load initializes and returns the configuration from all sources:
// 1. Command-line flags (highest priority)
// 2. Environment variables (prefixed with LOGO_HARNESS_)
// 3. Configuration file (lowest priority)
func Load(configPath string) (*Config, error) {
	// Check for environment variable config path if not explicitly provided
	if configPath == "" {
		if envPath := os.Getenv(LogoHarnessConfigPathEnvVar); envPath != "" {
			if _, err := os.Stat(envPath); os.IsNotExist(err) {
				return nil, fmt.Errorf("config file specified in %s not found: %s", LogoHarnessConfigPathEnvVar, envPath)
			}
			configPath = envPath
		}
	} else {
		// Verify explicitly provided config file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	}
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config.yml in the current directory
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Read environment variables
	v.SetEnvPrefix("LOGO_HARNESS")
	v.AutomaticEnv()
	// Replace dots with underscores in env vars
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		} else if configPath != "" {
			// Only error if config file was explicitly specified
			return nil, fmt.Errorf("specified config file not found: %s", configPath)
		}
		// If no config file was specified, we'll use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks configuration values that have no sensible fallback
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d: dimensions must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Renderer.Command == "" {
		return fmt.Errorf("renderer command must not be empty")
	}
	if c.Renderer.Timeout < 0 {
		return fmt.Errorf("renderer timeout must not be negative")
	}
	return nil
}

// setDefaults sets default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Fixture defaults
	v.SetDefault("fixtures.dir", "logo_examples")

	// Output defaults
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.raster_name", "output.png")
	v.SetDefault("output.vector_name", "output.svg")

	// Canvas defaults
	v.SetDefault("canvas.width", 200)
	v.SetDefault("canvas.height", 200)

	// Renderer defaults: a cargo project is built and run in one step,
	// so the first invocation may include compile time
	v.SetDefault("renderer.command", "cargo")
	v.SetDefault("renderer.args", []string{"run", "--"})
	v.SetDefault("renderer.timeout", "0s")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
}
