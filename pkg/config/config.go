package config

import (
	"errors"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/shearluck21/todo-wo-tracker/pkg/db"
)

// DefaultConfigFileName is where the app looks for its config.
const DefaultConfigFileName = "config.toml"

const (
	defaultDBName  = "tracker.db"
	defaultLogName = "tracker.log"
)

// Config is the on-disk TOML configuration.
type Config struct {
	DBPath   string `toml:"db_path"`
	LogPath  string `toml:"log_path"`
	LogLevel string `toml:"log_level"`
	// Domain selects the record flavor: "task" or "workorder".
	Domain string `toml:"domain"`
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// no file exists. Missing or unrecognized fields fall back to defaults.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}

		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBName
	}

	if cfg.LogPath == "" {
		cfg.LogPath = defaultLogName
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.Domain != db.DomainTask && cfg.Domain != db.DomainWorkOrder {
		cfg.Domain = db.DomainTask
	}

	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:   defaultDBName,
		LogPath:  defaultLogName,
		LogLevel: "info",
		Domain:   db.DomainTask,
	}
}
