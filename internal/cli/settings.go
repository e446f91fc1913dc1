package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/verdict/internal/model"
	"github.com/spf13/viper"
)

const (
	envPrefix     = "VERDICT"
	configDirName = ".verdict"
	apiKeyEnv     = "LOVABLE_API_KEY"
)

// configureViper wires defaults, environment variables and the config file
// into v. A missing default config file is not an error; a missing file
// passed explicitly is.
func configureViper(v *viper.Viper, path string) error {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gateway.api_key", envPrefix+"_GATEWAY_API_KEY", apiKeyEnv); err != nil {
		return fmt.Errorf("bind api key env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(filepath.Join(home, configDirName))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// setDefaults registers every config key so env overrides are visible to
// Unmarshal
func setDefaults(v *viper.Viper) {
	d := model.DefaultConfig()

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)

	v.SetDefault("gateway.mode", d.Gateway.Mode)
	v.SetDefault("gateway.base_url", d.Gateway.BaseURL)
	v.SetDefault("gateway.model", d.Gateway.Model)
	v.SetDefault("gateway.api_key", d.Gateway.APIKey)
	v.SetDefault("gateway.timeout", d.Gateway.Timeout)
	v.SetDefault("gateway.http_proxy", d.Gateway.HTTPProxy)
	v.SetDefault("gateway.https_proxy", d.Gateway.HTTPSProxy)
	v.SetDefault("gateway.no_proxy", d.Gateway.NoProxy)
	v.SetDefault("gateway.fixture_path", d.Gateway.FixturePath)
	v.SetDefault("gateway.fail_kind", d.Gateway.FailKind)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("batch.concurrency", d.Batch.Concurrency)
	v.SetDefault("batch.rps", d.Batch.RPS)
	v.SetDefault("batch.burst", d.Batch.Burst)
	v.SetDefault("batch.timeout", d.Batch.Timeout)
}

// loadConfig resolves the layered configuration into a model.Config
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Gateway.APIKey = strings.TrimSpace(cfg.Gateway.APIKey)
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// currentConfig loads configuration from the global viper instance
func currentConfig() (*model.Config, error) {
	return loadConfig(viper.GetViper())
}

// redactedConfig returns a copy of cfg safe to print
func redactedConfig(cfg *model.Config) *model.Config {
	out := *cfg
	if out.Gateway.APIKey != "" {
		out.Gateway.APIKey = "********"
	}
	return &out
}
