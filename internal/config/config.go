// Package config loads runtime settings from defaults, an optional YAML
// file, and PANTRY_* environment variables, in increasing precedence.
// Command-line flags bound to the returned viper instance win over all.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	KeyPort             = "port"
	KeyDBPath           = "db_path"
	KeyLogLevel         = "log_level"
	KeyLogFormat        = "log_format"
	KeyNearExpiryDays   = "near_expiry_days"
	KeyRefreshInterval  = "refresh_interval"
	KeyWriteRateLimit   = "write_rate_limit"
	KeyAllowedOrigins   = "allowed_origins"
	KeyBackupDir        = "backup_dir"
	KeyBackupPassphrase = "backup_passphrase"
	KeyBackupKeep       = "backup_keep"

	envPrefix = "PANTRY"
)

var (
	ErrDBPathEmpty     = errors.New("db_path must not be empty")
	ErrPortInvalid     = errors.New("port must be between 1 and 65535")
	ErrHorizonNegative = errors.New("near_expiry_days must not be negative")
	ErrLogFormat       = errors.New("log_format must be text or json")
)

type Config struct {
	Port             int
	DBPath           string
	LogLevel         string
	LogFormat        string
	NearExpiryDays   int
	RefreshInterval  time.Duration
	WriteRateLimit   int
	AllowedOrigins   []string
	BackupDir        string
	BackupPassphrase string
	BackupKeep       int
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPort, 8080)
	v.SetDefault(KeyDBPath, "pantry.db")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyNearExpiryDays, 7)
	v.SetDefault(KeyRefreshInterval, time.Hour)
	v.SetDefault(KeyWriteRateLimit, 120)
	v.SetDefault(KeyAllowedOrigins, "")
	v.SetDefault(KeyBackupDir, "backups")
	v.SetDefault(KeyBackupPassphrase, "")
	v.SetDefault(KeyBackupKeep, 7)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads configFile when it is non-empty and decodes the settings.
// A named file that does not exist is an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:             v.GetInt(KeyPort),
		DBPath:           strings.TrimSpace(v.GetString(KeyDBPath)),
		LogLevel:         v.GetString(KeyLogLevel),
		LogFormat:        strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		NearExpiryDays:   v.GetInt(KeyNearExpiryDays),
		RefreshInterval:  v.GetDuration(KeyRefreshInterval),
		WriteRateLimit:   v.GetInt(KeyWriteRateLimit),
		AllowedOrigins:   splitList(v.Get(KeyAllowedOrigins)),
		BackupDir:        v.GetString(KeyBackupDir),
		BackupPassphrase: v.GetString(KeyBackupPassphrase),
		BackupKeep:       v.GetInt(KeyBackupKeep),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList accepts a YAML list or a comma-separated string.
func splitList(raw any) []string {
	var parts []string
	switch val := raw.(type) {
	case []any:
		for _, p := range val {
			parts = append(parts, fmt.Sprint(p))
		}
	case []string:
		parts = val
	case string:
		parts = strings.Split(val, ",")
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return ErrDBPathEmpty
	}
	if c.Port < 1 || c.Port > 65535 {
		return ErrPortInvalid
	}
	if c.NearExpiryDays < 0 {
		return ErrHorizonNegative
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return ErrLogFormat
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
