package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the per-work configuration read from <work>/.littera/config.yml.
// Unlike the teacher's global server config, Littera has no shared instance
// config: every Work carries its own cluster settings.
type Config struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Log      LogConfig      `mapstructure:"log"`
}

// PostgresConfig describes the embedded cluster bound to one Work.
type PostgresConfig struct {
	DataDir string `mapstructure:"data_dir"`
	Port    int    `mapstructure:"port"`
	DBName  string `mapstructure:"db_name"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads <litteraDir>/config.yml, applying defaults for any field the
// file omits. litteraDir is the work's .littera directory, already
// validated to exist by the caller (see internal/storage.ResolveWork).
func Load(litteraDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(litteraDir, "config.yml"))
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("littera")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config.yml: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("postgres.data_dir", "pgdata")
	v.SetDefault("postgres.db_name", "littera")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// DataSourceName returns the local-socket-free loopback connection string
// for this Work's cluster (§4.1 "listen_addresses='127.0.0.1' only").
func (c *Config) DataSourceName() string {
	return fmt.Sprintf("postgres://postgres@127.0.0.1:%d/%s?sslmode=disable", c.Postgres.Port, c.Postgres.DBName)
}

// TestMode reports whether the process is running under a test harness,
// via the convention original_source/db/workdb.py used for PYTEST_CURRENT_TEST:
// when set, the idle lease defaults to zero so no background watcher is needed.
func TestMode() bool {
	return os.Getenv("LITTERA_TEST_MODE") != ""
}

// LeaseSeconds is how long the embedded cluster stays up after a command
// completes, before storage.Cluster's idle timer stops it. Zero disables
// the idle-keep-alive behavior entirely (always stop after the command).
func LeaseSeconds() time.Duration {
	if raw := os.Getenv("LITTERA_PG_LEASE_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	if TestMode() {
		return 0
	}
	return 30 * time.Second
}

// CommandTimeout bounds a single Command Surface invocation, covering
// cluster readiness polling plus the command's own Data Access calls.
func CommandTimeout() time.Duration {
	if raw := os.Getenv("LITTERA_COMMAND_TIMEOUT_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return 30 * time.Second
}
