// Package config loads process-level options: where the data lives, logging
// and write timeouts. User preferences such as timezone live in the storage
// settings table instead.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/storage"
)

// EnvPrefix namespaces environment overrides, e.g. HEYBUDDY_STORAGE
const EnvPrefix = "HEYBUDDY"

// Config is the process configuration
type Config struct {
	Storage      string        `mapstructure:"storage"`
	Debug        bool          `mapstructure:"debug"`
	LogDir       string        `mapstructure:"log_dir"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// Load reads an optional .env file, then the YAML config at cfgFile (or
// ~/.config/heybuddy/config.yaml), then HEYBUDDY_* environment variables.
// Missing files are not errors.
func Load(cfgFile, envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("storage", constants.DefaultConfigPath)
	v.SetDefault("debug", false)
	v.SetDefault("log_dir", "")
	v.SetDefault("write_timeout", constants.DefaultWriteTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		v.AddConfigPath(ExpandPath(constants.DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = constants.DefaultWriteTimeout
	}

	if storage.DetectKind(cfg.Storage) == storage.KindSQLite || storage.DetectKind(cfg.Storage) == storage.KindJSON {
		cfg.Storage = ExpandPath(cfg.Storage)
	}
	cfg.LogDir = ExpandPath(cfg.LogDir)
	return &cfg, nil
}

// ConfigDir is where logs, backups and the lockfile go: the directory of a
// file-backed store, or the default config directory for server backends.
func (c *Config) ConfigDir() string {
	switch storage.DetectKind(c.Storage) {
	case storage.KindSQLite, storage.KindJSON:
		return filepath.Dir(c.Storage)
	default:
		return ExpandPath(constants.DefaultConfigDir)
	}
}
