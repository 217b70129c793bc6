package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses yaml scalars like "500ms" or "5s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int      `yaml:"port"`
		ReadTimeout     Duration `yaml:"read_timeout"`
		WriteTimeout    Duration `yaml:"write_timeout"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout"`
		CORSOrigins     []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	AlphaVantage struct {
		APIKey       string   `yaml:"api_key"`
		BaseURL      string   `yaml:"base_url"`
		QueryTimeout Duration `yaml:"query_timeout"`
		PacingDelay  Duration `yaml:"pacing_delay"`
		MaxAttempts  int      `yaml:"max_attempts"`
	} `yaml:"alphavantage"`
	Gemini struct {
		APIKey          string   `yaml:"api_key"`
		Model           string   `yaml:"model"`
		MaxOutputTokens int      `yaml:"max_output_tokens"`
		Temperature     float64  `yaml:"temperature"`
		Timeout         Duration `yaml:"timeout"`
	} `yaml:"gemini"`
	Auth struct {
		VerifyURL string   `yaml:"verify_url"`
		Timeout   Duration `yaml:"timeout"`
	} `yaml:"auth"`
	Redis struct {
		Addr         string   `yaml:"addr"`
		Password     string   `yaml:"password"`
		DB           int      `yaml:"db"`
		PoolSize     int      `yaml:"pool_size"`
		MinIdleConns int      `yaml:"min_idle_conns"`
		PoolTimeout  Duration `yaml:"pool_timeout"`
		KeyPrefix    string   `yaml:"key_prefix"`
	} `yaml:"redis"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		if p, perr := strconv.Atoi(v); perr == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		c.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("AUTH_VERIFY_URL"); v != "" {
		c.Auth.VerifyURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.AlphaVantage.BaseURL == "" {
		return fmt.Errorf("alphavantage.base_url is required")
	}
	if c.AlphaVantage.MaxAttempts <= 0 {
		return fmt.Errorf("alphavantage.max_attempts must be positive")
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required")
	}
	return nil
}
