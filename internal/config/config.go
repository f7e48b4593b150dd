package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"holdemtable-server/internal/util"
)

// TableConfig describes a table the server creates at startup
type TableConfig struct {
	Name       string `yaml:"name"`
	SmallBlind int    `yaml:"smallBlind" envconfig:"small_blind"`
	BigBlind   int    `yaml:"bigBlind" envconfig:"big_blind"`
	MinBuyIn   int    `yaml:"minBuyIn" envconfig:"min_buy_in"`
	MaxBuyIn   int    `yaml:"maxBuyIn" envconfig:"max_buy_in"`
	MaxSeats   int    `yaml:"maxSeats" envconfig:"max_seats"`
}

// Config provides configuration for the hold'em table server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Tables []TableConfig `yaml:"tables"`
}

var config Config

// DefaultConfig returns the configuration with default values
func DefaultConfig() Config {
	cfg := Config{
		PGDSN:          "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath: "./sql",
	}
	cfg.Tables = []TableConfig{
		{
			Name:       "Main Table",
			SmallBlind: 25,
			BigBlind:   50,
			MinBuyIn:   1000,
			MaxBuyIn:   10000,
			MaxSeats:   9,
		},
	}

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error; the defaults are used and the
// environment can still override them.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("HTS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("hts", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
