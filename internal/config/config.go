// Package config loads runtime settings from GUARDIAO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Prefix is prepended to every environment variable name.
const Prefix = "GUARDIAO"

// Config holds the settings shared by the CLI and the MCP server.
// Environment variables are parsed from the GUARDIAO_ prefix.
type Config struct {
	// Backend
	APIURL      string        `envconfig:"API_URL" default:"http://127.0.0.1:8000"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// Local state; empty means ~/.guardiao
	DataDir string `envconfig:"DATA_DIR" default:""`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`

	// Voice; empty commands disable recognition / narration
	STTCommand string `envconfig:"STT_COMMAND" default:""`
	TTSCommand string `envconfig:"TTS_COMMAND" default:""`
	VoiceLang  string `envconfig:"VOICE_LANG" default:"pt-BR"`

	// MCP server
	MCPAddr          string        `envconfig:"MCP_ADDR" default:":11546"`
	MCPServerName    string        `envconfig:"MCP_SERVER_NAME" default:"guardiao-mcp"`
	MCPServerVersion string        `envconfig:"MCP_SERVER_VERSION" default:"0.1.0"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_URL: %q", c.APIURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	return nil
}

// EnvFileVar names the dotenv file read before the environment; default ".env".
const EnvFileVar = "GUARDIAO_ENV_FILE"

// loadEnvFile merges the dotenv file into the environment without overriding
// variables already set. A missing file is not an error.
func loadEnvFile() error {
	path := os.Getenv(EnvFileVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("env file loaded")
	return nil
}

// New creates a Config by parsing environment variables.
// Example: GUARDIAO_API_URL, GUARDIAO_STT_COMMAND
func New() (*Config, error) {
	var cfg Config

	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("api_url", cfg.APIURL).
		Dur("http_timeout", cfg.HTTPTimeout).
		Str("data_dir", cfg.DataDir).
		Str("log_level", cfg.LogLevel).
		Bool("stt_configured", cfg.STTCommand != "").
		Bool("tts_configured", cfg.TTSCommand != "").
		Str("voice_lang", cfg.VoiceLang).
		Msg("configuration loaded")

	return &cfg, nil
}
