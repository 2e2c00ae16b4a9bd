// Package config loads dreamlog settings.
// Priority: flags > ENV > YAML > defaults (via env-default tags).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/julianstephens/dreamlog/internal/constants"
)

type Config struct {
	Store  string       `yaml:"store"  env:"DREAMLOG_STORE" env-default:"~/.config/dreamlog/dreamlog.db"`
	Debug  bool         `yaml:"debug"  env:"DREAMLOG_DEBUG"`
	Backup BackupConfig `yaml:"backup"`
}

type BackupConfig struct {
	Max  int  `yaml:"max"  env:"DREAMLOG_BACKUP_MAX"  env-default:"14"`
	// Auto has no env-default: cleanenv would apply it over an explicit
	// "auto: false". Load seeds it to true instead.
	Auto bool `yaml:"auto" env:"DREAMLOG_AUTO_BACKUP"`
}

// Load reads configuration from the YAML file at path and the environment.
// An empty path means the default location, which may be absent; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Config{Backup: BackupConfig{Auto: true}}

	explicitPath := path != ""
	if !explicitPath {
		path = constants.DefaultConfigFile
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	cfg.Store, err = ExpandPath(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("config: store: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Store) == "" {
		errs = append(errs, errors.New("store path is required"))
	}
	if c.Backup.Max < 1 {
		errs = append(errs, fmt.Errorf("backup.max must be at least 1, got %d", c.Backup.Max))
	}
	return errors.Join(errs...)
}

// Dir is the directory holding the store, its logs, backups and lockfile
func (c *Config) Dir() string {
	return filepath.Dir(c.Store)
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
