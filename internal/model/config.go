package model

import (
	"runtime"
	"time"
)

// Config is the complete runtime configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Gateway GatewayConfig `yaml:"gateway" mapstructure:"gateway"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
}

// ServerConfig controls the inbound HTTP surface
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// GatewayConfig controls the outbound model gateway
type GatewayConfig struct {
	Mode        string `yaml:"mode" mapstructure:"mode"`         // gateway, fixture, failing
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"` // OpenAI-compatible API root
	Model       string `yaml:"model" mapstructure:"model"`
	APIKey      string `yaml:"api_key" mapstructure:"api_key"` // Prefer VERDICT_GATEWAY_API_KEY / LOVABLE_API_KEY
	Timeout     int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	HTTPProxy   string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy  string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy     string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	FixturePath string `yaml:"fixture_path,omitempty" mapstructure:"fixture_path"` // fixture mode only
	FailKind    string `yaml:"fail_kind,omitempty" mapstructure:"fail_kind"`       // failing mode only
}

// LoggingConfig controls the zap logger
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json, console
}

// BatchConfig controls the batch command
type BatchConfig struct {
	Concurrency int           `yaml:"concurrency" mapstructure:"concurrency"`
	RPS         float64       `yaml:"rps" mapstructure:"rps"` // 0 disables pacing
	Burst       int           `yaml:"burst" mapstructure:"burst"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Gateway: GatewayConfig{
			Mode:    "gateway",
			BaseURL: "https://ai.gateway.lovable.dev/v1",
			Model:   "google/gemini-3-flash-preview",
			Timeout: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Batch: BatchConfig{
			Concurrency: runtime.NumCPU(),
			RPS:         0,
			Burst:       1,
			Timeout:     10 * time.Minute,
		},
	}
}
