package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL はHabitica v3 APIのエンドポイント
const DefaultBaseURL = "https://habitica.com/api/v3"

// ErrMissingCredentials はHABITICA_USER_IDまたはHABITICA_API_TOKENが未設定の場合に返す
var ErrMissingCredentials = errors.New("HABITICA_USER_ID and HABITICA_API_TOKEN environment variables are required")

// Config は環境変数から読み込む設定
type Config struct {
	UserID       string        `mapstructure:"user_id"`
	APIToken     string        `mapstructure:"api_token"`
	BaseURL      string        `mapstructure:"base_url"`
	Lang         string        `mapstructure:"lang"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ValidateArgs bool          `mapstructure:"validate_args"`
	LogLevel     string        `mapstructure:"log_level"`
}

// Load は環境変数から設定を読み込む。認証情報がなければエラー
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("lang", "en")
	v.SetDefault("timeout", "0s")
	v.SetDefault("validate_args", false)
	v.SetDefault("log_level", "info")

	// BindEnvは最初の空でない変数を使うので、MCP_LANGがLANGより優先
	bindings := map[string][]string{
		"user_id":       {"HABITICA_USER_ID"},
		"api_token":     {"HABITICA_API_TOKEN"},
		"base_url":      {"HABITICA_BASE_URL"},
		"lang":          {"MCP_LANG", "LANG"},
		"timeout":       {"HABITICA_TIMEOUT"},
		"validate_args": {"MCP_VALIDATE_ARGS"},
		"log_level":     {"LOG_LEVEL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.UserID = strings.TrimSpace(cfg.UserID)
	cfg.APIToken = strings.TrimSpace(cfg.APIToken)
	if cfg.UserID == "" || cfg.APIToken == "" {
		return nil, ErrMissingCredentials
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &cfg, nil
}
