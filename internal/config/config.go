// Package config loads loadingbar settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all loadingbar configuration
type Config struct {
	Bar  BarConfig  `mapstructure:"bar" yaml:"bar"`
	Demo DemoConfig `mapstructure:"demo" yaml:"demo"`
}

// BarConfig holds rendering settings
type BarConfig struct {
	RTL bool `mapstructure:"rtl" yaml:"rtl"`
	// Width of 0 sizes the bar to the terminal
	Width int `mapstructure:"width" yaml:"width"`
}

// DemoConfig holds animation settings
type DemoConfig struct {
	Steps    int           `mapstructure:"steps" yaml:"steps"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

// LoadConfigWithFile loads configuration from a specific file if provided.
// Otherwise it reads loadingbar.yaml from workDir, falling back to the
// global config file when the working directory has none.
func LoadConfigWithFile(workDir, configFile string) (*Config, error) {
	if configFile != "" {
		return LoadConfigFromPath(configFile)
	}

	if _, err := os.Stat(filepath.Join(workDir, ConfigName+".yaml")); err == nil {
		return LoadConfig(workDir)
	}

	globalPath, err := GlobalConfigPath()
	if err != nil {
		return LoadConfig(workDir)
	}
	return LoadConfigFromPath(globalPath)
}

// LoadConfig loads configuration from loadingbar.yaml in the given directory.
// If no config file exists, defaults are returned.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Read config file (ignore not found errors)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadConfigFromPath loads configuration from a specific file path.
// A missing file yields defaults.
func LoadConfigFromPath(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return unmarshal(v)
		}
		return nil, err
	}

	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot drive a bar.
func (c *Config) Validate() error {
	if c.Bar.Width < 0 {
		return fmt.Errorf("%w: bar.width must not be negative, got %d", ErrInvalidConfig, c.Bar.Width)
	}
	if c.Demo.Steps <= 0 {
		return fmt.Errorf("%w: demo.steps must be positive, got %d", ErrInvalidConfig, c.Demo.Steps)
	}
	if c.Demo.Interval < 0 {
		return fmt.Errorf("%w: demo.interval must not be negative, got %s", ErrInvalidConfig, c.Demo.Interval)
	}
	return nil
}

// YAML renders the configuration as a loadingbar.yaml document.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}

// setDefaults sets all default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("bar.rtl", DefaultRTL)
	v.SetDefault("bar.width", DefaultWidth)

	v.SetDefault("demo.steps", DefaultSteps)
	v.SetDefault("demo.interval", DefaultInterval)
}
