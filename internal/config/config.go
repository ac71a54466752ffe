package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Source is the default locator: a published sheet URL or a local file.
	// Empty means the built-in sample data.
	Source      string `mapstructure:"source" yaml:"source"`
	CacheTTLSec int    `mapstructure:"cache_ttl_sec" yaml:"cache_ttl_sec"`
	XLSXSheet   string `mapstructure:"xlsx_sheet" yaml:"xlsx_sheet"`
	TopReasons  int    `mapstructure:"top_reasons" yaml:"top_reasons"`
	ListenAddr  string `mapstructure:"listen_addr" yaml:"listen_addr"`

	// HTTP/Retry configuration
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`
}

// CacheTTL returns the memoization window for loaded sources.
func (g *Global) CacheTTL() time.Duration {
	return time.Duration(g.CacheTTLSec) * time.Second
}

// HTTPTimeout returns the per-request timeout for remote sources.
func (g *Global) HTTPTimeout() time.Duration {
	return time.Duration(g.HTTPTimeoutSec) * time.Second
}

// RetryBaseDelay returns the initial retry backoff.
func (g *Global) RetryBaseDelay() time.Duration {
	return time.Duration(g.RetryBaseDelayMs) * time.Millisecond
}

// RetryMaxDelay returns the retry backoff cap.
func (g *Global) RetryMaxDelay() time.Duration {
	return time.Duration(g.RetryMaxDelayMs) * time.Millisecond
}

// DefaultPath returns ~/.actionboard/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".actionboard", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.actionboard/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file (cfgFile or ~/.actionboard/config.yaml) > defaults.
// A .env file in the working directory is read first, if present.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ACTIONBOARD")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source", "")
	v.SetDefault("cache_ttl_sec", 3600)
	v.SetDefault("xlsx_sheet", "")
	v.SetDefault("top_reasons", 5)
	v.SetDefault("listen_addr", "127.0.0.1:8080")
	// HTTP/retry defaults
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.CacheTTLSec <= 0 {
		c.CacheTTLSec = 3600
	}
	if c.TopReasons <= 0 {
		c.TopReasons = 5
	}
	return &c, nil
}
