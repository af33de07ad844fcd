// Package config loads runtime settings from an optional YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mahmudulbisd/stockgen-ai-pro/common"
	"github.com/spf13/viper"
)

const historyFileName = "stock_gen_results_v2.json"

// Config holds all application configuration.
type Config struct {
	APIKey         string        `mapstructure:"api_key"`
	OpenAI         OpenAIConfig  `mapstructure:"openai" validate:"required"`
	Gemini         GeminiConfig  `mapstructure:"gemini" validate:"required"`
	Log            LogConfig     `mapstructure:"log"`
	Server         ServerConfig  `mapstructure:"server" validate:"required"`
	History        HistoryConfig `mapstructure:"history" validate:"required"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

type OpenAIConfig struct {
	Model   string `mapstructure:"model" validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

type GeminiConfig struct {
	Model string `mapstructure:"model" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type HistoryConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"api_key":         "API_KEY",
	"openai.model":    "OPENAI_MODEL",
	"openai.base_url": "OPENAI_BASE_URL",
	"gemini.model":    "GEMINI_MODEL",
	"log.level":       "LOG_LEVEL",
	"server.addr":     "HTTP_ADDR",
	"request_timeout": "REQUEST_TIMEOUT",
	"history.path":    "HISTORY_PATH",
}

// Load reads configuration. Environment variables take precedence over the
// file at path, which is optional; an empty path skips it. A missing API key
// is not an error here, it is reported when generation is attempted.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.LogLevel(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("gemini.model", "gemini-3-flash-preview")
	v.SetDefault("log.level", "info")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("request_timeout", 90*time.Second)
	v.SetDefault("history.path", defaultHistoryPath())
}

func defaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return historyFileName
	}
	return filepath.Join(dir, "stockgen", historyFileName)
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (common.LogLevel, error) {
	return common.ParseLogLevel(c.Log.Level)
}
