package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dm/regprobe/internal/probe"
)

// Config is the optional YAML configuration file. CLI flags override
// whatever is loaded here.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Run      RunConfig      `yaml:"run"`
	Log      LogConfig      `yaml:"log"`
}

type RegistryConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	RequestTimeout time.Duration `yaml:"-"`
	RawTimeout     string        `yaml:"request_timeout"`
}

type RunConfig struct {
	Workers  int    `yaml:"workers"`
	TestType string `yaml:"test_type"`

	Duration    time.Duration `yaml:"-"`
	RawDuration string        `yaml:"duration"`

	MonitorInterval     time.Duration `yaml:"-"`
	HealthInterval      time.Duration `yaml:"-"`
	ConsistencyInterval time.Duration `yaml:"-"`
	SessionInterval     time.Duration `yaml:"-"`

	RawMonitorInterval     string `yaml:"monitor_interval"`
	RawHealthInterval      string `yaml:"health_interval"`
	RawConsistencyInterval string `yaml:"consistency_interval"`
	RawSessionInterval     string `yaml:"session_interval"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns a Config with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.setDefaults(); err != nil {
		// Defaults are constants; parsing them cannot fail.
		panic(err)
	}
	return cfg
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// parseInterval resolves a raw duration string against a default.
func parseInterval(name, raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", name, raw, err)
	}
	return d, nil
}

func (c *Config) setDefaults() error {
	if c.Registry.URL == "" {
		c.Registry.URL = "http://localhost:7000"
	}

	var err error
	if c.Registry.RequestTimeout, err = parseInterval("request_timeout", c.Registry.RawTimeout, 10*time.Second); err != nil {
		return err
	}
	if c.Run.Duration, err = parseInterval("duration", c.Run.RawDuration, 60*time.Second); err != nil {
		return err
	}
	if c.Run.MonitorInterval, err = parseInterval("monitor_interval", c.Run.RawMonitorInterval, 5*time.Second); err != nil {
		return err
	}
	if c.Run.HealthInterval, err = parseInterval("health_interval", c.Run.RawHealthInterval, 10*time.Second); err != nil {
		return err
	}
	if c.Run.ConsistencyInterval, err = parseInterval("consistency_interval", c.Run.RawConsistencyInterval, 15*time.Second); err != nil {
		return err
	}
	if c.Run.SessionInterval, err = parseInterval("session_interval", c.Run.RawSessionInterval, 20*time.Second); err != nil {
		return err
	}

	if c.Run.Workers == 0 {
		c.Run.Workers = 10
	}
	if c.Run.TestType == "" {
		c.Run.TestType = string(probe.TestAll)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "regprobe.log"
	}
	return nil
}

func (c *Config) validate() error {
	if c.Run.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", c.Run.Duration)
	}
	if c.Run.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Run.Workers)
	}
	if _, err := probe.ParseTestType(c.Run.TestType); err != nil {
		return err
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (debug|info|warn|error)", c.Log.Level)
	}
	return nil
}
