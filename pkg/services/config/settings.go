package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "ATLAS"

type Settings struct {
	Server   ServerSettings   `mapstructure:"server"`
	Upstream UpstreamSettings `mapstructure:"upstream"`
	Display  DisplaySettings  `mapstructure:"display"`
	Log      LogSettings      `mapstructure:"log"`
}

type ServerSettings struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type UpstreamSettings struct {
	Profile string        `mapstructure:"profile"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

type DisplaySettings struct {
	Currency string `mapstructure:"currency"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

var defaults = map[string]any{
	"server.host":             "127.0.0.1",
	"server.port":             "8080",
	"server.shutdown_timeout": 10 * time.Second,
	"upstream.profile":        "default",
	"upstream.timeout":        15 * time.Second,
	"upstream.retries":        2,
	"display.currency":        "",
	"log.level":               "info",
	"log.pretty":              false,
}

// LoadSettings reads settings from an optional YAML file and ATLAS_* environment variables,
// e.g. ATLAS_SERVER_PORT. An empty path uses defaults and the environment only.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &cfg, nil
}
